package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BlockPos is an absolute voxel coordinate.
type BlockPos [3]int

// ChunkPos is the position of a chunk in the chunk grid. Increasing a
// component by one moves ChunkEdge voxels along that axis.
type ChunkPos [3]int

func (p BlockPos) X() int { return p[0] }
func (p BlockPos) Y() int { return p[1] }
func (p BlockPos) Z() int { return p[2] }

// Add returns p + o.
func (p BlockPos) Add(o BlockPos) BlockPos {
	return BlockPos{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

// Sub returns p - o.
func (p BlockPos) Sub(o BlockPos) BlockPos {
	return BlockPos{p[0] - o[0], p[1] - o[1], p[2] - o[2]}
}

// Vec returns the position as a float vector at the voxel's minimum corner.
func (p BlockPos) Vec() mgl64.Vec3 {
	return mgl64.Vec3{float64(p[0]), float64(p[1]), float64(p[2])}
}

func (p ChunkPos) X() int { return p[0] }
func (p ChunkPos) Y() int { return p[1] }
func (p ChunkPos) Z() int { return p[2] }

// Add returns p + o.
func (p ChunkPos) Add(o ChunkPos) ChunkPos {
	return ChunkPos{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

// BlockToChunkPos returns the chunk containing a voxel. The arithmetic shift
// floors, so negative coordinates land in the right chunk.
func BlockToChunkPos(p BlockPos) ChunkPos {
	return ChunkPos{p[0] >> BitsPerAxis, p[1] >> BitsPerAxis, p[2] >> BitsPerAxis}
}

// BlockToChunkIndex returns the chunk-local index of a voxel.
func BlockToChunkIndex(p BlockPos) ChunkIndex {
	return IndexFromChunkPos(p[0]&componentMask, p[1]&componentMask, p[2]&componentMask)
}

// SplitBlockPos converts a voxel coordinate into its chunk and local index.
func SplitBlockPos(p BlockPos) (ChunkPos, ChunkIndex) {
	return BlockToChunkPos(p), BlockToChunkIndex(p)
}

// ChunkRoot returns the voxel coordinate of a chunk's minimum corner.
func ChunkRoot(c ChunkPos) BlockPos {
	return BlockPos{c[0] << BitsPerAxis, c[1] << BitsPerAxis, c[2] << BitsPerAxis}
}

// JoinBlockPos is the inverse of SplitBlockPos.
func JoinBlockPos(c ChunkPos, i ChunkIndex) BlockPos {
	v := i.Vector()
	return ChunkRoot(c).Add(BlockPos(v))
}

// FloorBlockPos returns the voxel containing a world-space point.
func FloorBlockPos(v mgl64.Vec3) BlockPos {
	return BlockPos{
		int(math.Floor(v[0])),
		int(math.Floor(v[1])),
		int(math.Floor(v[2])),
	}
}
