package geometry

import (
	"math"
	"sort"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Leaf threshold: if we have this many or fewer spheres, store them in a leaf node
const leafThreshold = 4

// BVHNode represents a node in the bounding volume hierarchy
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Indices     []int // sphere indices for leaf nodes (nil for internal nodes)
}

// BVH is a bounding volume hierarchy over an indexed list of spheres.
// Hit results are identical to a linear scan, including the earliest-index tie-break.
type BVH struct {
	Root    *BVHNode
	spheres []*Sphere
}

// NewBVH constructs a BVH over the given spheres. The slice is not modified.
func NewBVH(spheres []*Sphere) *BVH {
	if len(spheres) == 0 {
		return &BVH{}
	}

	indices := make([]int, len(spheres))
	for i := range indices {
		indices[i] = i
	}

	bvh := &BVH{spheres: spheres}
	bvh.Root = bvh.build(indices)
	return bvh
}

// build recursively splits indices at the median along the longest axis
func (bvh *BVH) build(indices []int) *BVHNode {
	box := bvh.boxOf(indices[0])
	for _, idx := range indices[1:] {
		box = box.Union(bvh.boxOf(idx))
	}

	if len(indices) <= leafThreshold {
		return &BVHNode{BoundingBox: box, Indices: indices}
	}

	splitAxis := box.LongestAxis()
	sort.SliceStable(indices, func(i, j int) bool {
		return axis(bvh.spheres[indices[i]].Center, splitAxis) < axis(bvh.spheres[indices[j]].Center, splitAxis)
	})

	mid := len(indices) / 2
	return &BVHNode{
		BoundingBox: box,
		Left:        bvh.build(indices[:mid]),
		Right:       bvh.build(indices[mid:]),
	}
}

// boxOf returns a sphere's bounds padded by Epsilon so rounding never culls a valid hit
func (bvh *BVH) boxOf(idx int) AABB {
	box := bvh.spheres[idx].BoundingBox()
	pad := core.NewVec3(Epsilon, Epsilon, Epsilon).Multiply(math.Max(1, bvh.spheres[idx].Radius*1e-9))
	return NewAABB(box.Min.Subtract(pad), box.Max.Add(pad))
}

// Hit returns the nearest hit distance and the index of the sphere hit
func (bvh *BVH) Hit(ray core.Ray) (float64, int, bool) {
	if bvh.Root == nil {
		return 0, -1, false
	}
	bestT := math.Inf(1)
	bestIdx := -1
	bvh.hitNode(bvh.Root, ray, &bestT, &bestIdx)
	return bestT, bestIdx, bestIdx >= 0
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, bestT *float64, bestIdx *int) {
	if !node.BoundingBox.Hit(ray, 0, *bestT) {
		return
	}

	if node.Indices != nil {
		for _, idx := range node.Indices {
			t, ok := bvh.spheres[idx].Intersect(ray)
			if !ok {
				continue
			}
			if t < *bestT || (t == *bestT && idx < *bestIdx) {
				*bestT = t
				*bestIdx = idx
			}
		}
		return
	}

	bvh.hitNode(node.Left, ray, bestT, bestIdx)
	bvh.hitNode(node.Right, ray, bestT, bestIdx)
}

// Depth returns the maximum depth of the tree (a single leaf has depth 1)
func (bvh *BVH) Depth() int {
	var depth func(n *BVHNode) int
	depth = func(n *BVHNode) int {
		if n == nil {
			return 0
		}
		return 1 + max(depth(n.Left), depth(n.Right))
	}
	return depth(bvh.Root)
}
