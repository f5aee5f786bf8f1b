package scene

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// builtins maps scene names to their constructors
var builtins = map[string]func() *Scene{
	"cornell":      NewCornellScene,
	"cornell-gray": NewCornellGrayScene,
	"light-only":   NewLightOnlyScene,
	"sphere-grid":  NewSphereGridScene,
}

// BuiltinNames returns the names of the built-in scenes in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load resolves a built-in scene name or a path to a .gltf, .glb or .json file
func Load(nameOrPath string) (*Scene, error) {
	if ctor, ok := builtins[nameOrPath]; ok {
		return ctor(), nil
	}

	switch strings.ToLower(filepath.Ext(nameOrPath)) {
	case ".gltf", ".glb":
		return LoadGLTF(nameOrPath)
	case ".json":
		return LoadJSON(nameOrPath)
	case "":
		return nil, fmt.Errorf("unknown scene %q (built-in scenes: %s)", nameOrPath, strings.Join(BuiltinNames(), ", "))
	default:
		return nil, fmt.Errorf("unsupported scene format: %s (use .gltf, .glb or .json)", filepath.Ext(nameOrPath))
	}
}
