package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestDefaultCamera_Basis(t *testing.T) {
	camera := DefaultCamera(160, 120)

	if math.Abs(camera.Direction.Length()-1) > 1e-12 {
		t.Errorf("Expected unit view direction, got length %f", camera.Direction.Length())
	}

	expectedCX := 160 * DefaultFieldOfView / 120
	if math.Abs(camera.CX.X-expectedCX) > 1e-12 || camera.CX.Y != 0 || camera.CX.Z != 0 {
		t.Errorf("Expected CX (%f, 0, 0), got %v", expectedCX, camera.CX)
	}

	if math.Abs(camera.CY.Length()-DefaultFieldOfView) > 1e-12 {
		t.Errorf("Expected |CY| = %f, got %f", DefaultFieldOfView, camera.CY.Length())
	}
	if math.Abs(camera.CY.Dot(camera.CX)) > 1e-12 || math.Abs(camera.CY.Dot(camera.Direction)) > 1e-12 {
		t.Errorf("Expected CY perpendicular to CX and the view direction, got %v", camera.CY)
	}
	if camera.CY.Y <= 0 {
		t.Errorf("Expected CY to point up, got %v", camera.CY)
	}
}

func TestCamera_GetRay(t *testing.T) {
	width, height := 64, 48
	camera := DefaultCamera(width, height)

	// The center pixel looks straight along the view direction
	center := camera.GetRay(width/2, height/2, width, height)
	if center.Origin != camera.Origin {
		t.Errorf("Expected origin %v, got %v", camera.Origin, center.Origin)
	}
	if math.Abs(center.Direction.Subtract(camera.Direction).Length()) > 1e-12 {
		t.Errorf("Expected center ray along %v, got %v", camera.Direction, center.Direction)
	}

	tests := []struct {
		name       string
		x, y       int
		rightwards bool
		upwards    bool
	}{
		{"bottom left", 0, 0, false, false},
		{"bottom right", width - 1, 0, true, false},
		{"top left", 0, height - 1, false, true},
		{"top right", width - 1, height - 1, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.x, tt.y, width, height)
			if math.Abs(ray.Direction.Length()-1) > 1e-12 {
				t.Errorf("Expected unit direction, got length %f", ray.Direction.Length())
			}
			if (ray.Direction.X > 0) != tt.rightwards {
				t.Errorf("Expected rightwards=%v, got direction %v", tt.rightwards, ray.Direction)
			}
			if (ray.Direction.Y > center.Direction.Y) != tt.upwards {
				t.Errorf("Expected upwards=%v, got direction %v", tt.upwards, ray.Direction)
			}
		})
	}
}

func TestNewCamera_AspectRatio(t *testing.T) {
	camera := NewCamera(core.Vec3{}, core.NewVec3(0, 0, -2), 200, 100, 0.5)

	if camera.Direction != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected normalized direction, got %v", camera.Direction)
	}
	if math.Abs(camera.CX.X-1.0) > 1e-12 {
		t.Errorf("Expected CX.X = 1.0 for a 2:1 image, got %f", camera.CX.X)
	}
	if math.Abs(camera.CY.Y-0.5) > 1e-12 {
		t.Errorf("Expected CY = (0, 0.5, 0), got %v", camera.CY)
	}
}
