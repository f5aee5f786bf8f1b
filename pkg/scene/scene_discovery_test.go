package scene

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cornell-gray", "Cornell Gray"},
		{"sphere_grid", "Sphere Grid"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

// writeScenesDir creates a scenes directory with one JSON scene, one glTF
// placeholder and an unrelated file
func writeScenesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"two-spheres.json": twoSphereJSON,
		"model.gltf":       "{}",
		"notes.txt":        "not a scene",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0755); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	return dir
}

func TestListFileScenes(t *testing.T) {
	scenes, err := ListFileScenes(writeScenesDir(t))
	if err != nil {
		t.Fatalf("ListFileScenes() error: %v", err)
	}

	expected := []SceneInfo{
		{ID: "file:model.gltf", DisplayName: "Model", Group: "Scene Files", Type: "gltf"},
		{ID: "file:two-spheres.json", DisplayName: "Two Spheres", Group: "Scene Files", Type: "json"},
	}
	if len(scenes) != len(expected) {
		t.Fatalf("Expected %d scenes, got %v", len(expected), scenes)
	}
	for i, want := range expected {
		got := scenes[i]
		if got.ID != want.ID || got.DisplayName != want.DisplayName || got.Group != want.Group || got.Type != want.Type {
			t.Errorf("Scene %d = %+v, want %+v", i, got, want)
		}
		if got.FilePath == "" {
			t.Errorf("Scene %d missing FilePath", i)
		}
	}
}

func TestListFileScenes_MissingDirectory(t *testing.T) {
	scenes, err := ListFileScenes(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Errorf("ListFileScenes() error: %v", err)
	}
	if scenes == nil || len(scenes) != 0 {
		t.Errorf("Expected empty slice, got %v", scenes)
	}
}

func TestListAllScenes(t *testing.T) {
	groups, err := ListAllScenes(writeScenesDir(t))
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}

	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "Built-in Scenes" || len(groups[0].Scenes) != len(BuiltinNames()) {
		t.Errorf("Unexpected built-in group %+v", groups[0])
	}
	for i, name := range BuiltinNames() {
		if groups[0].Scenes[i].ID != name || groups[0].Scenes[i].Type != "builtin" {
			t.Errorf("Built-in scene %d = %+v, want ID %s", i, groups[0].Scenes[i], name)
		}
	}
	if groups[1].Name != "Scene Files" || len(groups[1].Scenes) != 2 {
		t.Errorf("Unexpected file group %+v", groups[1])
	}

	onlyBuiltin, err := ListAllScenes(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("ListAllScenes() error: %v", err)
	}
	if len(onlyBuiltin) != 1 {
		t.Errorf("Expected only the built-in group, got %d groups", len(onlyBuiltin))
	}
}

func TestResolve(t *testing.T) {
	dir := writeScenesDir(t)

	tests := []struct {
		name        string
		id          string
		expectError bool
		spheres     int
	}{
		{"builtin", "cornell", false, 8},
		{"scene file", "file:two-spheres.json", false, 2},
		{"unlisted file", "file:notes.txt", true, 0},
		{"missing file", "file:missing.json", true, 0},
		{"path traversal", "file:../two-spheres.json", true, 0},
		{"nested path", "file:sub/two-spheres.json", true, 0},
		{"empty file name", "file:", true, 0},
		{"raw path", filepath.Join(dir, "two-spheres.json"), true, 0},
		{"unknown", "nonexistent", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Resolve(dir, tt.id)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q, but got none", tt.id)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.id, err)
			}
			if len(s.Spheres) != tt.spheres {
				t.Errorf("Expected %d spheres, got %d", tt.spheres, len(s.Spheres))
			}
		})
	}
}
