package scene

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// defaultAlbedo is used for nodes without a material
var defaultAlbedo = core.NewVec3(0.75, 0.75, 0.75)

// GLTFLoader converts glTF/GLB documents into sphere scenes. Every node that
// references a mesh is treated as a unit sphere placed by its transform: the
// translation is the center and the largest absolute scale is the radius.
type GLTFLoader struct {
	Accelerate bool // build a BVH over the loaded spheres
}

// LoadGLTF loads a .gltf or .glb file with default options
func LoadGLTF(path string) (*Scene, error) {
	return (&GLTFLoader{}).Load(path)
}

// Load opens the document and builds the scene
func (l *GLTFLoader) Load(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	s, err := l.FromDocument(filepath.Base(path), doc)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

// FromDocument builds a scene from an already decoded document
func (l *GLTFLoader) FromDocument(name string, doc *gltf.Document) (*Scene, error) {
	builder := NewBuilder(name).Accelerate(l.Accelerate)

	for i, node := range doc.Nodes {
		if node.Mesh == nil {
			continue
		}
		if *node.Mesh < 0 || *node.Mesh >= len(doc.Meshes) {
			return nil, fmt.Errorf("node %d (%q) references missing mesh %d", i, node.Name, *node.Mesh)
		}

		center, radius := nodePlacement(node)
		albedo, emission := defaultAlbedo, core.Vec3{}
		if mat := primaryMaterial(doc, doc.Meshes[*node.Mesh]); mat != nil {
			albedo, emission = materialColors(mat)
		}

		sphere := geometry.NewSphere(radius, center, albedo)
		if emission.IsZero() {
			builder.Add(sphere)
		} else {
			builder.AddLight(sphere, emission)
		}
	}

	return builder.Build()
}

// nodePlacement extracts center and radius from the node's TRS or matrix
func nodePlacement(node *gltf.Node) (core.Vec3, float64) {
	if node.Matrix != gltf.DefaultMatrix && node.Matrix != ([16]float64{}) {
		m := node.Matrix // column-major
		center := core.NewVec3(m[12], m[13], m[14])
		sx := core.NewVec3(m[0], m[1], m[2]).Length()
		sy := core.NewVec3(m[4], m[5], m[6]).Length()
		sz := core.NewVec3(m[8], m[9], m[10]).Length()
		return center, math.Max(sx, math.Max(sy, sz))
	}

	t, s := node.Translation, node.Scale
	radius := math.Max(math.Abs(s[0]), math.Max(math.Abs(s[1]), math.Abs(s[2])))
	return core.NewVec3(t[0], t[1], t[2]), radius
}

// primaryMaterial returns the material of the mesh's first primitive that has one
func primaryMaterial(doc *gltf.Document, mesh *gltf.Mesh) *gltf.Material {
	for _, prim := range mesh.Primitives {
		if prim.Material != nil && *prim.Material >= 0 && *prim.Material < len(doc.Materials) {
			return doc.Materials[*prim.Material]
		}
	}
	return nil
}

// materialColors maps base color to albedo and emissive factor (times the
// optional "emissiveStrength" extra) to emission
func materialColors(mat *gltf.Material) (albedo, emission core.Vec3) {
	albedo = defaultAlbedo
	if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		c := pbr.BaseColorFactor
		albedo = core.NewVec3(c[0], c[1], c[2])
	}

	e := mat.EmissiveFactor
	emission = core.NewVec3(e[0], e[1], e[2])
	if extras, ok := mat.Extras.(map[string]any); ok {
		if strength, ok := extras["emissiveStrength"].(float64); ok {
			emission = emission.Multiply(strength)
		}
	}
	return albedo, emission
}
