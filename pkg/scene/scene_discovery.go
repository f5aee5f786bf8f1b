package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilePrefix marks scene IDs that refer to files in a scenes directory
const FilePrefix = "file:"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin", "json" or "gltf"
	FilePath    string `json:"-"`           // Path to the scene file, never sent to clients
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ListFileScenes scans dir for .json, .gltf and .glb scene files. A missing
// directory yields an empty list.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []SceneInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		var kind string
		switch ext {
		case ".json":
			kind = "json"
		case ".gltf", ".glb":
			kind = "gltf"
		default:
			continue
		}
		base := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		scenes = append(scenes, SceneInfo{
			ID:          FilePrefix + entry.Name(),
			DisplayName: titleCase(base),
			Group:       "Scene Files",
			Type:        kind,
			FilePath:    filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the files found in
// dir, grouped by category
func ListAllScenes(dir string) ([]SceneGroup, error) {
	var builtin []SceneInfo
	for _, name := range BuiltinNames() {
		builtin = append(builtin, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Group:       "Built-in Scenes",
			Type:        "builtin",
		})
	}
	groups := []SceneGroup{{Name: "Built-in Scenes", Scenes: builtin}}

	files, err := ListFileScenes(dir)
	if err != nil {
		return nil, err
	}
	if len(files) > 0 {
		groups = append(groups, SceneGroup{Name: "Scene Files", Scenes: files})
	}
	return groups, nil
}

// Resolve loads a scene by ID: a built-in name, or FilePrefix followed by the
// name of a file inside dir. Paths that leave dir are rejected.
func Resolve(dir, id string) (*Scene, error) {
	if ctor, ok := builtins[id]; ok {
		return ctor(), nil
	}

	name, ok := strings.CutPrefix(id, FilePrefix)
	if !ok {
		return nil, fmt.Errorf("unknown scene: %s", id)
	}
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("invalid scene file name: %q", name)
	}

	files, err := ListFileScenes(dir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == id {
			return Load(info.FilePath)
		}
	}
	return nil, fmt.Errorf("unknown scene: %s", id)
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-gray" -> "Cornell Gray"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
