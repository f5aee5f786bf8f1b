// Package preview shows a rendered frame in the terminal using half-block
// characters, two image rows per terminal row.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// upperHalfBlock is drawn with fg = top pixel and bg = bottom pixel
const upperHalfBlock = "▀"

// CellSetter is the part of a uv.Screen that Draw needs
type CellSetter interface {
	SetCell(x, y int, c *uv.Cell)
}

// Draw scales the frame to cols x rows terminal cells by nearest neighbour
// and draws it with half blocks
func Draw(scr CellSetter, frame *renderer.Frame, cols, rows int) {
	if cols <= 0 || rows <= 0 || frame.Width == 0 || frame.Height == 0 {
		return
	}
	img := frame.ToImage(renderer.DisplayGamma)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, bottom := cellColors(img, col, row, cols, rows)
			scr.SetCell(col, row, &uv.Cell{
				Content: upperHalfBlock,
				Width:   1,
				Style: uv.Style{
					Fg: top,
					Bg: bottom,
				},
			})
		}
	}
}

// cellColors picks the image pixels shown in the top and bottom half of a cell
func cellColors(img *image.RGBA, col, row, cols, rows int) (top, bottom color.RGBA) {
	bounds := img.Bounds()
	x := col * bounds.Dx() / cols
	topY := (2 * row) * bounds.Dy() / (2 * rows)
	bottomY := (2*row + 1) * bounds.Dy() / (2 * rows)
	return img.RGBAAt(x, topY), img.RGBAAt(x, bottomY)
}

// Show draws the frame on the alternate screen and waits for a key press,
// a resize redraws it. Returns when a key is pressed or ctx is done.
func Show(ctx context.Context, frame *renderer.Frame) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	redraw := func() error {
		term.Erase()
		term.Resize(width, height)
		Draw(term, frame, width, height)
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		return nil
	}
	if err := redraw(); err != nil {
		return err
	}

	events := term.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				if err := redraw(); err != nil {
					return err
				}
			case uv.KeyPressEvent:
				return nil
			}
		}
	}
}
