package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// linearHit is the reference scan the BVH must agree with
func linearHit(spheres []*Sphere, ray core.Ray) (float64, int, bool) {
	bestT := math.Inf(1)
	bestIdx := -1
	for i, s := range spheres {
		if t, ok := s.Intersect(ray); ok && t < bestT {
			bestT, bestIdx = t, i
		}
	}
	return bestT, bestIdx, bestIdx >= 0
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	var spheres []*Sphere
	for i := 0; i < 60; i++ {
		center := core.NewVec3(random.Float64()*40-20, random.Float64()*40-20, random.Float64()*40-20)
		spheres = append(spheres, NewSphere(0.5+random.Float64()*3, center, gray))
	}
	bvh := NewBVH(spheres)

	if bvh.Depth() < 2 {
		t.Fatalf("Expected a multi-level tree for %d spheres, got depth %d", len(spheres), bvh.Depth())
	}

	for i := 0; i < 2000; i++ {
		origin := core.NewVec3(random.Float64()*80-40, random.Float64()*80-40, random.Float64()*80-40)
		dir := core.SampleUniformSphere(core.NewVec2(random.Float64(), random.Float64()))
		ray := core.NewRay(origin, dir)

		wantT, wantIdx, wantHit := linearHit(spheres, ray)
		gotT, gotIdx, gotHit := bvh.Hit(ray)

		if wantHit != gotHit {
			t.Fatalf("Ray %d: linear hit=%t, bvh hit=%t", i, wantHit, gotHit)
		}
		if wantHit && (wantIdx != gotIdx || math.Abs(wantT-gotT) > 1e-12) {
			t.Fatalf("Ray %d: linear (%d, %f), bvh (%d, %f)", i, wantIdx, wantT, gotIdx, gotT)
		}
	}
}

func TestBVH_TieKeepsEarliestIndex(t *testing.T) {
	// Identical spheres produce exactly equal distances
	var spheres []*Sphere
	for i := 0; i < 10; i++ {
		spheres = append(spheres, NewSphere(1, core.NewVec3(float64(i%5)*10, 0, 0), gray))
	}
	bvh := NewBVH(spheres)

	ray := core.NewRay(core.NewVec3(20, 0, 10), core.NewVec3(0, 0, -1))
	_, idx, ok := bvh.Hit(ray)
	if !ok {
		t.Fatal("Expected hit")
	}
	if idx != 2 {
		t.Errorf("Expected earliest duplicate index 2, got %d", idx)
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	if _, _, ok := bvh.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))); ok {
		t.Error("Empty BVH should never report a hit")
	}
}

func TestAABB_Hit(t *testing.T) {
	box := NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      core.Ray
		expected bool
	}{
		{"straight on", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), true},
		{"from inside", core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), true},
		{"parallel outside", core.NewRay(core.NewVec3(2, 0, 5), core.NewVec3(0, 0, -1)), false},
		{"behind origin", core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, 0, math.Inf(1)); got != tt.expected {
				t.Errorf("Expected %t, got %t", tt.expected, got)
			}
		})
	}
}
