package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "pair.json")
	if err := os.WriteFile(jsonPath, []byte(twoSphereJSON), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	tests := []struct {
		name        string
		input       string
		expectError bool
		spheres     int
	}{
		{"cornell", "cornell", false, 8},
		{"cornell-gray", "cornell-gray", false, 8},
		{"light-only", "light-only", false, 1},
		{"sphere-grid", "sphere-grid", false, 41},
		{"json file", jsonPath, false, 2},
		{"unknown name", "nonexistent", true, 0},
		{"empty name", "", true, 0},
		{"unsupported extension", filepath.Join(dir, "scene.pbrt"), true, 0},
		{"missing json", filepath.Join(dir, "missing.json"), true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q, but got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.input, err)
			}
			if len(s.Spheres) != tt.spheres {
				t.Errorf("Expected %d spheres, got %d", tt.spheres, len(s.Spheres))
			}
		})
	}
}

func TestBuiltinNames(t *testing.T) {
	names := BuiltinNames()
	expected := []string{"cornell", "cornell-gray", "light-only", "sphere-grid"}
	if len(names) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, names)
		}
	}
}
