package world

import (
	"fmt"
	"iter"

	"voxelgrid/internal/face"
)

const (
	// BitsPerAxis is the width of one packed component of a ChunkIndex.
	BitsPerAxis = 4
	// ChunkEdge is the edge length of a chunk in voxels.
	ChunkEdge = 1 << BitsPerAxis
	// ChunkVolume is the number of voxels in a chunk.
	ChunkVolume = ChunkEdge * ChunkEdge * ChunkEdge

	componentMask = ChunkEdge - 1
)

// ChunkIndex is the packed address of a voxel inside its chunk:
// x | y<<BitsPerAxis | z<<2*BitsPerAxis. Every component stays in [0, ChunkEdge).
type ChunkIndex int

// IndexFromChunkPos packs chunk-local coordinates. Components must be in
// [0, ChunkEdge); this is only checked in voxeldebug builds.
func IndexFromChunkPos(x, y, z int) ChunkIndex {
	if debugChecks && (uint(x) >= ChunkEdge || uint(y) >= ChunkEdge || uint(z) >= ChunkEdge) {
		panic(fmt.Sprintf("world: chunk-local position (%d, %d, %d) out of range", x, y, z))
	}
	return ChunkIndex(x | y<<BitsPerAxis | z<<(2*BitsPerAxis))
}

// Vector unpacks the index into chunk-local coordinates.
func (i ChunkIndex) Vector() [3]int {
	return [3]int{
		int(i) & componentMask,
		int(i>>BitsPerAxis) & componentMask,
		int(i>>(2*BitsPerAxis)) & componentMask,
	}
}

// Component returns a single chunk-local coordinate.
func (i ChunkIndex) Component(a face.Axis) int {
	return int(i>>(BitsPerAxis*uint(a))) & componentMask
}

// withComponent replaces one component; v must already be in range.
func (i ChunkIndex) withComponent(a face.Axis, v int) ChunkIndex {
	shift := BitsPerAxis * uint(a)
	return i&^(componentMask<<shift) | ChunkIndex(v<<shift)
}

// Add moves the index by delta voxels along a, wrapping at the chunk edge.
// traversed is the number of chunk boundaries crossed (negative when moving
// towards -a), i.e. floor((component+delta) / ChunkEdge).
func (i ChunkIndex) Add(a face.Axis, delta int) (next ChunkIndex, traversed int) {
	raw := i.Component(a) + delta
	traversed = floorDiv(raw, ChunkEdge)
	return i.withComponent(a, floorMod(raw, ChunkEdge)), traversed
}

// AddFace moves the index by delta voxels out of face f.
func (i ChunkIndex) AddFace(f face.Face, delta int) (ChunkIndex, int) {
	return i.Add(f.Axis(), f.Sign()*delta)
}

// EdgeFace reports the chunk face the voxel touches on axis a, if any.
func (i ChunkIndex) EdgeFace(a face.Axis) (face.Face, bool) {
	switch i.Component(a) {
	case 0:
		return face.FromParts(a, -1), true
	case ChunkEdge - 1:
		return face.FromParts(a, 1), true
	}
	return 0, false
}

// DistToEdge returns how many voxels separate the index from the last voxel of
// the chunk along a in the direction of sign.
func (i ChunkIndex) DistToEdge(a face.Axis, sign int) int {
	c := i.Component(a)
	if sign > 0 {
		return ChunkEdge - 1 - c
	}
	return c
}

// AllIndices yields every index of a chunk in ascending order: x varies
// fastest, then y, then z.
func AllIndices() iter.Seq[ChunkIndex] {
	return func(yield func(ChunkIndex) bool) {
		for i := ChunkIndex(0); i < ChunkVolume; i++ {
			if !yield(i) {
				return
			}
		}
	}
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the remainder matching floorDiv; the result has the sign of b.
func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
