package server

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ConsoleMessage is one renderer log line forwarded to the browser console
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Pass      int       `json:"pass"` // 0 before the first pass starts
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger for one render stream. Each line is
// echoed to the server log tagged with the render ID and offered to the
// console channel without blocking the render.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage

	mu      sync.Mutex
	pass    int
	dropped int
}

// NewWebLogger creates a logger for the render identified by renderID
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) *WebLogger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// RenderID returns the identifier stamped on every message
func (wl *WebLogger) RenderID() string {
	return wl.renderID
}

// Dropped returns how many lines were skipped because the console was full
func (wl *WebLogger) Dropped() int {
	wl.mu.Lock()
	defer wl.mu.Unlock()
	return wl.dropped
}

// Printf implements core.Logger
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Printf("[%s] %s", wl.renderID, message)

	wl.mu.Lock()
	defer wl.mu.Unlock()

	// The progressive renderer announces each pass with "Pass N: ..."
	var pass int
	if _, err := fmt.Sscanf(message, "Pass %d", &pass); err == nil && pass > wl.pass {
		wl.pass = pass
	}

	if wl.consoleChan == nil {
		return
	}
	msg := ConsoleMessage{
		RenderID:  wl.renderID,
		Pass:      wl.pass,
		Message:   message,
		Timestamp: time.Now(),
		Level:     messageLevel(message),
	}
	select {
	case wl.consoleChan <- msg:
	default:
		wl.dropped++
	}
}

// messageLevel classifies a renderer log line for console styling
func messageLevel(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "failed"), strings.Contains(lower, "error"):
		return "error"
	case strings.Contains(lower, "cancelled"):
		return "warning"
	default:
		return "info"
	}
}
