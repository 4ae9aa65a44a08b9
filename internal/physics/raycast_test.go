package physics_test

import (
	"math"
	"math/rand"
	"testing"

	"voxelgrid/internal/face"
	"voxelgrid/internal/physics"
	"voxelgrid/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// newTestWorld loads chunks in [-r, r] on each axis and registers stone.
func newTestWorld(r int) (*world.World, physics.VoxelFunc, world.Voxel) {
	w := world.NewWorld()
	for x := -r; x <= r; x++ {
		for y := -r; y <= r; y++ {
			for z := -r; z <= r; z++ {
				w.AddChunk(world.ChunkPos{x, y, z}, world.NewChunk(world.DefaultLayout))
			}
		}
	}
	reg := world.NewMaterialRegistry()
	stone := world.Voxel{Material: uint32(reg.Register("stone", true))}
	isSolid := func(p *world.Pointer) bool { return reg.IsSolid(p.Material(w)) }
	return w, isSolid, stone
}

func TestRaycast(t *testing.T) {
	w, isSolid, stone := newTestWorld(1)

	// Place a block at (5, 0, 0)
	w.SetVoxel(world.BlockPos{5, 0, 0}, stone)

	start := mgl64.Vec3{0.5, 0.5, 0.5}
	dir := mgl64.Vec3{1, 0, 0}
	minDist := 0.1
	maxDist := 10.0

	result := physics.Raycast(w, start, dir, minDist, maxDist, isSolid)
	if !result.Hit {
		t.Fatalf("Expected hit, got miss")
	}
	if result.HitPosition != (world.BlockPos{5, 0, 0}) {
		t.Errorf("Expected hit at {5,0,0}, got %v", result.HitPosition)
	}
	if result.AdjacentPosition != (world.BlockPos{4, 0, 0}) {
		t.Errorf("Expected adjacent at {4,0,0}, got %v", result.AdjacentPosition)
	}
	// Ray starts at X=0.5 and hits the X=5 boundary.
	if result.Distance != 4.5 {
		t.Errorf("Expected distance 4.5, got %f", result.Distance)
	}
	if result.Face != face.NegX || result.Point != (mgl64.Vec3{5, 0.5, 0.5}) {
		t.Errorf("Expected -X face at {5,0.5,0.5}, got %v at %v", result.Face, result.Point)
	}

	// Missing (max dist)
	if r := physics.Raycast(w, start, dir, minDist, 4.0, isSolid); r.Hit {
		t.Errorf("Expected miss due to maxDist, got hit at %v", r.HitPosition)
	}

	// Missing (wrong direction)
	if r := physics.Raycast(w, start, mgl64.Vec3{0, 1, 0}, minDist, maxDist, isSolid); r.Hit {
		t.Errorf("Expected miss, got hit at %v", r.HitPosition)
	}

	// Mixed direction: crossings on all three axes coincide, ties resolve X, Y, Z.
	w.SetVoxel(world.BlockPos{2, 2, 2}, stone)
	diag := physics.Raycast(w, start, mgl64.Vec3{1, 1, 1}.Normalize(), minDist, maxDist, isSolid)
	if !diag.Hit || diag.HitPosition != (world.BlockPos{2, 2, 2}) {
		t.Fatalf("Expected hit at {2,2,2}, got %+v", diag)
	}
	if diag.Face != face.NegZ || math.Abs(diag.Distance-1.5*math.Sqrt(3)) > 1e-9 {
		t.Errorf("diagonal hit: face %v distance %f", diag.Face, diag.Distance)
	}
}

func TestRaycastIgnoresStartVoxelAndMinDistance(t *testing.T) {
	w, isSolid, stone := newTestWorld(0)
	for _, x := range []int{0, 1, 2} {
		w.SetVoxel(world.BlockPos{x, 0, 0}, stone)
	}
	start := mgl64.Vec3{0.5, 0.5, 0.5}

	r := physics.Raycast(w, start, mgl64.Vec3{1, 0, 0}, 0.1, 10, isSolid)
	if r.HitPosition != (world.BlockPos{1, 0, 0}) {
		t.Errorf("hit %v, want {1,0,0}", r.HitPosition)
	}
	r = physics.Raycast(w, start, mgl64.Vec3{1, 0, 0}, 0.6, 10, isSolid)
	if r.HitPosition != (world.BlockPos{2, 0, 0}) || r.Distance != 1.5 {
		t.Errorf("hit %v at %f, want {2,0,0} at 1.5", r.HitPosition, r.Distance)
	}
}

func TestRaycastSkipsEmptyChunks(t *testing.T) {
	w := world.NewWorld()
	for _, x := range []int{0, 1, 3} {
		w.AddChunk(world.ChunkPos{x, 0, 0}, world.NewChunk(world.DefaultLayout))
	}
	solid := map[world.BlockPos]bool{{50, 0, 0}: true}
	w.SetVoxel(world.BlockPos{50, 0, 0}, world.Voxel{Material: 1})
	isSolid := func(p *world.Pointer) bool { return solid[p.WorldPos()] }

	// Chunk 0 and 1 have no data, chunk 2 is not loaded.
	r := physics.Raycast(w, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{1, 0, 0}, 0, 64, isSolid)
	if !r.Hit || r.HitPosition != (world.BlockPos{50, 0, 0}) || r.Distance != 49.5 {
		t.Fatalf("got %+v, want hit at {50,0,0} distance 49.5", r)
	}
	if r.AdjacentPosition != (world.BlockPos{49, 0, 0}) {
		t.Errorf("adjacent = %v", r.AdjacentPosition)
	}
}

func TestRaycastAdjacentAcrossChunkBorder(t *testing.T) {
	w, isSolid, stone := newTestWorld(1)
	w.SetVoxel(world.BlockPos{16, 0, 0}, stone)
	w.SetVoxel(world.BlockPos{-1, 0, 0}, stone)
	start := mgl64.Vec3{0.5, 0.5, 0.5}

	tests := []struct {
		dir           mgl64.Vec3
		hit, adjacent world.BlockPos
		face          face.Face
		distance      float64
	}{
		{mgl64.Vec3{1, 0, 0}, world.BlockPos{16, 0, 0}, world.BlockPos{15, 0, 0}, face.NegX, 15.5},
		{mgl64.Vec3{-1, 0, 0}, world.BlockPos{-1, 0, 0}, world.BlockPos{0, 0, 0}, face.PosX, 0.5},
	}
	for _, tt := range tests {
		r := physics.Raycast(w, start, tt.dir, 0.1, 32, isSolid)
		if !r.Hit || r.HitPosition != tt.hit || r.Distance != tt.distance {
			t.Errorf("dir %v: got %+v, want hit at %v distance %f", tt.dir, r, tt.hit, tt.distance)
			continue
		}
		if r.AdjacentPosition != tt.adjacent || r.Face != tt.face {
			t.Errorf("dir %v: adjacent %v face %v, want %v face %v", tt.dir, r.AdjacentPosition, r.Face, tt.adjacent, tt.face)
		}
		if world.BlockToChunkPos(r.HitPosition) == world.BlockToChunkPos(r.AdjacentPosition) {
			t.Errorf("dir %v: hit and adjacent share a chunk", tt.dir)
		}
	}
}

func TestRaycastInReach(t *testing.T) {
	w, isSolid, stone := newTestWorld(0)
	w.SetVoxel(world.BlockPos{5, 0, 0}, stone)
	w.SetVoxel(world.BlockPos{0, 0, 6}, stone)
	start := mgl64.Vec3{0.5, 0.5, 0.5}

	near := physics.Raycast(w, start, mgl64.Vec3{1, 0, 0}, physics.MinReachDistance, 16, isSolid)
	if !near.Hit || !near.InReach() {
		t.Errorf("hit at %f should be in reach", near.Distance)
	}
	far := physics.Raycast(w, start, mgl64.Vec3{0, 0, 1}, physics.MinReachDistance, 16, isSolid)
	if !far.Hit || far.InReach() {
		t.Errorf("hit at %f should be out of reach", far.Distance)
	}
	if (physics.RaycastResult{}).InReach() {
		t.Error("a miss is never in reach")
	}
}

func TestRayCastFirstStep(t *testing.T) {
	r := physics.NewRayCast(nil, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{1, 0, 0})
	r.Step()
	p := r.Pointer()
	if p.WorldPos() != (world.BlockPos{1, 0, 0}) {
		t.Errorf("pointer at %v, want {1,0,0}", p.WorldPos())
	}
	if r.BreachedFace() != face.PosX || r.DistanceTraveled() != 0.5 {
		t.Errorf("breached %v at %f, want +X at 0.5", r.BreachedFace(), r.DistanceTraveled())
	}
	if r.FaceIntersection() != (mgl64.Vec3{1, 0.5, 0.5}) {
		t.Errorf("intersection = %v", r.FaceIntersection())
	}

	r.ResetDistanceCounter()
	if r.DistanceTraveled() != 0 {
		t.Error("ResetDistanceCounter did not zero the distance")
	}
}

func TestRayCastNegativeOrigin(t *testing.T) {
	r := physics.NewRayCast(nil, mgl64.Vec3{-0.5, 2.25, 0}, mgl64.Vec3{-1, 0, 0})
	p := r.Pointer()
	if p.WorldPos() != (world.BlockPos{-1, 2, 0}) {
		t.Fatalf("start voxel %v", p.WorldPos())
	}
	r.Step()
	r.Step()
	p = r.Pointer()
	if p.WorldPos() != (world.BlockPos{-3, 2, 0}) || r.DistanceTraveled() != 1.5 {
		t.Errorf("after two steps: %v at %f", p.WorldPos(), r.DistanceTraveled())
	}
	if r.BreachedFace() != face.NegX {
		t.Errorf("breached %v", r.BreachedFace())
	}
}

func TestRayCastDistanceIncreases(t *testing.T) {
	// X crosses on half-integers while Y and Z cross on odd and even
	// integers, so no two axes ever tie.
	r := physics.NewRayCast(nil, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{1, 0.5, 0.25})
	last := r.DistanceTraveled()
	for i := range 300 {
		before := r.Pointer()
		r.Step()
		after := r.Pointer()
		if d := r.DistanceTraveled(); d <= last {
			t.Fatalf("step %d: distance %f after %f", i, d, last)
		}
		last = r.DistanceTraveled()
		want := before.WorldPos().Add(world.BlockPos(r.BreachedFace().Towards()))
		if after.WorldPos() != want {
			t.Fatalf("step %d: moved to %v, want %v", i, after.WorldPos(), want)
		}
	}
}

func TestSkipChunkMatchesSteps(t *testing.T) {
	cases := []struct {
		origin, dir mgl64.Vec3
	}{
		{mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{1, 0.5, 0.25}},
		{mgl64.Vec3{3.5, 7.5, 9.5}, mgl64.Vec3{-1, 0.5, -0.25}},
		{mgl64.Vec3{-20.5, 1.5, 4}, mgl64.Vec3{0.25, -1, 0}},
	}
	for _, c := range cases {
		stepped := physics.NewRayCast(nil, c.origin, c.dir)
		skipped := physics.NewRayCast(nil, c.origin, c.dir)

		for chunk := range 3 {
			start := stepped.Pointer()
			for p := stepped.Pointer(); p.Outer == start.Outer; p = stepped.Pointer() {
				stepped.Step()
			}
			skipped.SkipChunk()
			compareRays(t, c.dir, chunk, stepped, skipped)
		}
		// The pending crossings must agree too.
		for i := range 40 {
			stepped.Step()
			skipped.Step()
			compareRays(t, c.dir, 100+i, stepped, skipped)
		}
	}
}

// Arbitrary directions accumulate crossing distances differently in Step
// and SkipChunk, so distances agree only up to rounding while the voxels
// visited must be identical.
func TestSkipChunkMatchesStepsRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for i := range 2000 {
		origin := mgl64.Vec3{rng.Float64()*64 - 32, rng.Float64()*64 - 32, rng.Float64()*64 - 32}
		dir := mgl64.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
		if dir.Len() < 1e-6 {
			continue
		}
		dir = dir.Normalize()

		stepped := physics.NewRayCast(nil, origin, dir)
		skipped := physics.NewRayCast(nil, origin, dir)
		for chunk := range 3 {
			start := stepped.Pointer()
			for p := stepped.Pointer(); p.Outer == start.Outer; p = stepped.Pointer() {
				stepped.Step()
			}
			skipped.SkipChunk()
			compareRaysApprox(t, i, chunk, stepped, skipped)
		}
		for n := range 50 {
			stepped.Step()
			skipped.Step()
			compareRaysApprox(t, i, 100+n, stepped, skipped)
		}
	}
}

func compareRaysApprox(t *testing.T, ray, at int, want, got *physics.RayCast) {
	t.Helper()
	wp, gp := want.Pointer(), got.Pointer()
	if wp.WorldPos() != gp.WorldPos() || want.BreachedFace() != got.BreachedFace() {
		t.Fatalf("ray %d #%d: skip reached %v via %v, steps reached %v via %v", ray, at,
			gp.WorldPos(), got.BreachedFace(), wp.WorldPos(), want.BreachedFace())
	}
	if d := math.Abs(want.DistanceTraveled() - got.DistanceTraveled()); d > 1e-9 {
		t.Fatalf("ray %d #%d: distances differ by %g", ray, at, d)
	}
}

func compareRays(t *testing.T, dir mgl64.Vec3, at int, want, got *physics.RayCast) {
	t.Helper()
	wp, gp := want.Pointer(), got.Pointer()
	if wp.WorldPos() != gp.WorldPos() {
		t.Fatalf("dir %v #%d: skip reached %v, steps reached %v", dir, at, gp.WorldPos(), wp.WorldPos())
	}
	if want.BreachedFace() != got.BreachedFace() || want.DistanceTraveled() != got.DistanceTraveled() {
		t.Fatalf("dir %v #%d: skip %v@%f, steps %v@%f", dir, at,
			got.BreachedFace(), got.DistanceTraveled(), want.BreachedFace(), want.DistanceTraveled())
	}
}

func TestRayCastWarp(t *testing.T) {
	w, _, _ := newTestWorld(1)
	r := physics.NewRayCast(w, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 0, 1})
	for range 5 {
		r.Step()
	}

	r.SetOrigin(mgl64.Vec3{-3.5, 17.5, 2.5})
	p := r.Pointer()
	if p.WorldPos() != (world.BlockPos{-4, 17, 2}) || r.DistanceTraveled() != 0 {
		t.Fatalf("SetOrigin: %v at %f", p.WorldPos(), r.DistanceTraveled())
	}
	if p.CachedChunk() != w.GetChunk(world.ChunkPos{-1, 1, 0}) {
		t.Error("pointer cache not re-seated")
	}

	r.Step()
	r.SetDirection(mgl64.Vec3{0, -1, 0})
	p = r.Pointer()
	if p.WorldPos() != (world.BlockPos{-4, 17, 2}) {
		t.Errorf("SetDirection left the pointer at %v", p.WorldPos())
	}
	r.Step()
	if r.BreachedFace() != face.NegY || r.DistanceTraveled() != 0.5 {
		t.Errorf("after SetDirection: %v at %f", r.BreachedFace(), r.DistanceTraveled())
	}
	if r.Origin() != (mgl64.Vec3{-3.5, 17.5, 2.5}) || r.Direction() != (mgl64.Vec3{0, -1, 0}) {
		t.Errorf("origin/direction = %v / %v", r.Origin(), r.Direction())
	}
}
