package physics

import (
	"voxelgrid/internal/face"
	"voxelgrid/internal/profiling"
	"voxelgrid/internal/world"
)

// MovableBody is a voxel-aligned box that moves through the grid one axis at a
// time, stopping at the first voxel hasCollided reports. Position is the
// box's minimum corner; dimensions are passed per call.
type MovableBody struct {
	world    *world.World
	position world.BlockPos
	pointer  world.Pointer

	// MaxChunkHops bounds neighbor-link walking when the pointer moves.
	MaxChunkHops int
}

// NewMovableBody places a body at pos. w may be nil for a detached body.
func NewMovableBody(w *world.World, pos world.BlockPos) *MovableBody {
	b := &MovableBody{world: w, MaxChunkHops: world.DefaultMaxChunkHops}
	b.SetPosition(pos)
	return b
}

// Position returns the minimum corner of the body.
func (b *MovableBody) Position() world.BlockPos {
	return b.position
}

// Pointer returns a copy of the pointer at the body's minimum corner.
func (b *MovableBody) Pointer() world.Pointer {
	return b.pointer
}

// SetPosition teleports the body without collision checks.
func (b *MovableBody) SetPosition(pos world.BlockPos) {
	b.position = pos
	b.pointer.SetWorldPosRegional(b.world, pos, b.MaxChunkHops)
}

// WarpBy moves the body by delta without collision checks.
func (b *MovableBody) WarpBy(delta world.BlockPos) {
	b.position = b.position.Add(delta)
	b.pointer.MoveBy(delta, b.world, b.MaxChunkHops)
}

// Sweep returns how far the body could move along axis, up to delta, before
// a voxel on its leading face collides. The result has the sign of delta.
// The body is not moved.
func (b *MovableBody) Sweep(dims world.BlockPos, hasCollided VoxelFunc, axis face.Axis, delta int) int {
	if delta == 0 {
		return 0
	}
	travel := face.FromParts(axis, delta)
	maxDistance := delta
	if delta < 0 {
		maxDistance = -delta
	}

	// Root the traces on the first layer of voxels past the leading face.
	root := b.pointer
	if delta > 0 {
		root.StepBy(travel, dims[axis], b.MaxChunkHops)
	} else {
		root.Step(travel)
	}

	ortho := face.OrthoAxes(axis)
	aFace := face.FromParts(ortho[0], 1)
	bFace := face.FromParts(ortho[1], 1)

	aAligned := root
	for a := 0; a < dims[ortho[0]]; a++ {
		bAligned := aAligned
		for bi := 0; bi < dims[ortho[1]]; bi++ {
			trace := bAligned
			for dist := 0; dist < maxDistance; dist++ {
				if hasCollided(&trace) {
					maxDistance = dist
					break
				}
				trace.Step(travel)
			}
			bAligned.Step(bFace)
		}
		aAligned.Step(aFace)
	}

	if delta < 0 {
		return -maxDistance
	}
	return maxDistance
}

// MoveOn moves the body along axis by at most delta voxels and returns the
// signed distance actually moved.
func (b *MovableBody) MoveOn(dims world.BlockPos, hasCollided VoxelFunc, axis face.Axis, delta int) int {
	if delta == 0 {
		return 0
	}
	defer profiling.Track("physics.MoveOn")()
	moved := b.Sweep(dims, hasCollided, axis, delta)
	if moved != 0 {
		var step world.BlockPos
		step[axis] = moved
		b.WarpBy(step)
	}
	return moved
}

// MoveBy moves the body along X, then Y, then Z, each axis starting from where
// the previous one stopped. Diagonal corners can therefore be clipped.
// It returns the distance moved per axis.
func (b *MovableBody) MoveBy(dims world.BlockPos, hasCollided VoxelFunc, delta world.BlockPos) world.BlockPos {
	var moved world.BlockPos
	for _, a := range face.Axes() {
		moved[a] = b.MoveOn(dims, hasCollided, a, delta[a])
	}
	return moved
}

// Overlaps checks if any voxel inside the body collides.
func (b *MovableBody) Overlaps(dims world.BlockPos, hasCollided VoxelFunc) bool {
	zPtr := b.pointer
	for z := 0; z < dims[2]; z++ {
		yPtr := zPtr
		for y := 0; y < dims[1]; y++ {
			xPtr := yPtr
			for x := 0; x < dims[0]; x++ {
				if hasCollided(&xPtr) {
					return true
				}
				xPtr.Step(face.PosX)
			}
			yPtr.Step(face.PosY)
		}
		zPtr.Step(face.PosZ)
	}
	return false
}

// OnGround reports whether the body is resting on a colliding voxel.
func (b *MovableBody) OnGround(dims world.BlockPos, hasCollided VoxelFunc) bool {
	return b.Sweep(dims, hasCollided, face.AxisY, -1) == 0
}
