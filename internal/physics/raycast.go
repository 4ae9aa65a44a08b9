package physics

import (
	"math"

	"voxelgrid/internal/face"
	"voxelgrid/internal/profiling"
	"voxelgrid/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// Reach limits for a body interacting with the voxels it looks at.
const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

// VoxelFunc reports a property of the voxel under a pointer, typically
// whether it is solid. Implementations resolve the chunk with p.GetChunk.
type VoxelFunc func(p *world.Pointer) bool

// RayCast walks the voxels pierced by a ray, one face crossing per Step,
// following "A Fast Voxel Traversal Algorithm for Ray Tracing" (Amanatides &
// Woo). The direction must have at least one non-zero component; a zero
// direction never advances.
type RayCast struct {
	world   *world.World
	pointer world.Pointer

	origin    mgl64.Vec3
	direction mgl64.Vec3

	// Face crossed when the ray breaches a boundary on each axis.
	axisFaces [face.AxisCount]face.Face
	// Distance along the ray between two boundaries of one axis.
	crossStep [face.AxisCount]float64
	// Distance along the ray at which the next boundary of each axis is crossed.
	distAtCross [face.AxisCount]float64

	breachedFace     face.Face
	distanceTraveled float64

	// MaxChunkHops bounds neighbor-link walking when the pointer moves.
	MaxChunkHops int
}

// NewRayCast starts a ray at origin. w may be nil for a detached ray.
func NewRayCast(w *world.World, origin, direction mgl64.Vec3) *RayCast {
	r := &RayCast{world: w, MaxChunkHops: world.DefaultMaxChunkHops}
	r.Warp(origin, direction)
	return r
}

// Warp restarts the ray from a new origin and direction.
func (r *RayCast) Warp(origin, direction mgl64.Vec3) {
	r.pointer.SetWorldPosRegional(r.world, world.FloorBlockPos(origin), r.MaxChunkHops)
	r.origin = origin
	r.setDirection(direction)
	r.resetCrossings()
}

// SetOrigin restarts the ray from origin, keeping its direction.
func (r *RayCast) SetOrigin(origin mgl64.Vec3) {
	r.Warp(origin, r.direction)
}

// SetDirection restarts the ray from its origin in a new direction.
func (r *RayCast) SetDirection(direction mgl64.Vec3) {
	r.Warp(r.origin, direction)
}

func (r *RayCast) setDirection(d mgl64.Vec3) {
	r.direction = d
	for _, a := range face.Axes() {
		r.axisFaces[a] = face.FromParts(a, face.SignOf(d[a]))
		r.crossStep[a] = math.Abs(1 / d[a])
	}
}

func (r *RayCast) resetCrossings() {
	for _, a := range face.Axes() {
		d, o := r.direction[a], r.origin[a]
		switch {
		case d == 0:
			// Never crosses on this axis.
			r.distAtCross[a] = math.Inf(1)
		case d > 0:
			r.distAtCross[a] = r.crossStep[a] * (math.Floor(o) + 1 - o)
		default:
			r.distAtCross[a] = r.crossStep[a] * (o - math.Floor(o))
		}
	}
	r.breachedFace = r.axisFaces[face.AxisX]
	r.distanceTraveled = 0
}

// Origin returns the ray origin.
func (r *RayCast) Origin() mgl64.Vec3 {
	return r.origin
}

// Direction returns the ray direction.
func (r *RayCast) Direction() mgl64.Vec3 {
	return r.direction
}

// Pointer returns a copy of the pointer at the current voxel.
func (r *RayCast) Pointer() world.Pointer {
	return r.pointer
}

// BreachedFace returns the face crossed by the last Step or SkipChunk.
func (r *RayCast) BreachedFace() face.Face {
	return r.breachedFace
}

// DistanceTraveled returns the ray distance at the last crossing.
func (r *RayCast) DistanceTraveled() float64 {
	return r.distanceTraveled
}

// ResetDistanceCounter zeroes DistanceTraveled without moving the ray.
func (r *RayCast) ResetDistanceCounter() {
	r.distanceTraveled = 0
}

// FaceIntersection returns the world-space point of the last crossing.
func (r *RayCast) FaceIntersection() mgl64.Vec3 {
	return r.origin.Add(r.direction.Mul(r.distanceTraveled))
}

// closestAxis returns the axis whose next crossing is nearest. Ties go to the
// lower axis.
func (r *RayCast) closestAxis() face.Axis {
	best := face.AxisX
	for _, a := range face.Axes()[1:] {
		if r.distAtCross[a] < r.distAtCross[best] {
			best = a
		}
	}
	return best
}

// Step advances the ray into the next voxel, crossing exactly one face.
func (r *RayCast) Step() {
	a := r.closestAxis()
	r.breachedFace = r.axisFaces[a]
	r.distanceTraveled = r.distAtCross[a]
	r.pointer.Step(r.breachedFace)
	r.distAtCross[a] += r.crossStep[a]
}

// SkipChunk advances the ray to the first voxel outside the current chunk in
// one pointer move. The resulting voxel and breached face match calling Step
// until the pointer leaves the chunk; crossing distances match up to
// rounding. Callers use it to pass through chunks known to be empty.
func (r *RayCast) SkipChunk() {
	var (
		exit  [face.AxisCount]float64
		edge  [face.AxisCount]int
		delta world.BlockPos
	)
	exitAxis := face.AxisX
	for _, a := range face.Axes() {
		exit[a] = math.Inf(1)
		if r.direction[a] == 0 {
			continue
		}
		edge[a] = r.pointer.Inner.DistToEdge(a, r.axisFaces[a].Sign())
		exit[a] = r.distAtCross[a] + r.crossStep[a]*float64(edge[a])
		if exit[a] < exit[exitAxis] {
			exitAxis = a
		}
	}
	t := exit[exitAxis]

	for _, a := range face.Axes() {
		if r.direction[a] == 0 {
			continue
		}
		var n int
		if a == exitAxis {
			n = edge[a] + 1
		} else {
			n = min(crossingsUntil(r.distAtCross[a], r.crossStep[a], t, a < exitAxis), edge[a])
		}
		delta[a] = n * r.axisFaces[a].Sign()
		r.distAtCross[a] += float64(n) * r.crossStep[a]
	}

	r.breachedFace = r.axisFaces[exitAxis]
	r.distanceTraveled = t
	r.pointer.MoveBy(delta, r.world, r.MaxChunkHops)
}

// crossingsUntil counts the crossings next, next+step, ... lying before t.
// A crossing exactly at t counts only when inclusive is set.
func crossingsUntil(next, step, t float64, inclusive bool) int {
	if next > t || (next == t && !inclusive) {
		return 0
	}
	n := int(math.Floor((t-next)/step)) + 1
	if !inclusive && next+float64(n-1)*step >= t {
		n--
	}
	return n
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      world.BlockPos
	AdjacentPosition world.BlockPos
	// Face of the hit voxel the ray entered through.
	Face     face.Face
	Point    mgl64.Vec3
	Distance float64
	Hit      bool
}

// InReach reports whether the ray hit a voxel no farther than MaxReachDistance.
func (r RaycastResult) InReach() bool {
	return r.Hit && r.Distance <= MaxReachDistance
}

// Raycast finds the first voxel for which isSolid holds between minDist and
// maxDist along the ray. The voxel containing start is never reported.
// Chunks that are unloaded or have no voxel data are skipped whole.
// maxDist must be finite.
func Raycast(w *world.World, start, direction mgl64.Vec3, minDist, maxDist float64, isSolid VoxelFunc) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	r := NewRayCast(w, start, direction)

	for {
		if c := r.pointer.GetChunk(w); c == nil || !c.Voxels.HasData() {
			r.SkipChunk()
		} else {
			r.Step()
		}
		if r.distanceTraveled > maxDist {
			return RaycastResult{}
		}
		if r.distanceTraveled < minDist || !isSolid(&r.pointer) {
			continue
		}
		entered := r.breachedFace.Inverse()
		adj := r.pointer.NeighborBy(entered, 1, 0)
		return RaycastResult{
			HitPosition:      r.pointer.WorldPos(),
			AdjacentPosition: adj.WorldPos(),
			Face:             entered,
			Point:            r.FaceIntersection(),
			Distance:         r.distanceTraveled,
			Hit:              true,
		}
	}
}
