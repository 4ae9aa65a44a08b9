package world

import (
	"fmt"

	"voxelgrid/internal/face"
	"voxelgrid/internal/profiling"
)

// World indexes chunks by coordinate and keeps their neighbor links in sync.
// It is not safe for concurrent use.
type World struct {
	chunks   map[ChunkPos]*Chunk
	modCount uint64 // Increases on any chunk add/remove
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{chunks: make(map[ChunkPos]*Chunk)}
}

// AddChunk inserts a New chunk at pos and links it to its loaded face
// neighbors. It panics if pos is occupied or the chunk was already used.
func (w *World) AddChunk(pos ChunkPos, c *Chunk) {
	defer profiling.Track("world.AddChunk")()
	if _, ok := w.chunks[pos]; ok {
		panic(fmt.Sprintf("world: chunk %v already present", pos))
	}
	if c.status != ChunkNew {
		panic(fmt.Sprintf("world: cannot add %s chunk at %v", c.status, pos))
	}

	c.markInWorld(pos)
	w.chunks[pos] = c
	w.modCount++

	for _, f := range face.Faces() {
		t := f.Towards()
		if n, ok := w.chunks[pos.Add(ChunkPos(t))]; ok {
			c.linkNeighbor(f, n)
		}
	}
}

// RemoveChunk unlinks and evicts the chunk at pos, marking it Freed.
// It returns false if no chunk was there.
func (w *World) RemoveChunk(pos ChunkPos) bool {
	defer profiling.Track("world.RemoveChunk")()
	c, ok := w.chunks[pos]
	if !ok {
		return false
	}
	c.unlinkNeighbors()
	delete(w.chunks, pos)
	w.modCount++
	c.markFreed()
	return true
}

// GetChunk returns the chunk at pos, or nil.
func (w *World) GetChunk(pos ChunkPos) *Chunk {
	return w.chunks[pos]
}

// HasChunk checks if a chunk exists at pos.
func (w *World) HasChunk(pos ChunkPos) bool {
	_, ok := w.chunks[pos]
	return ok
}

// Len returns the number of loaded chunks.
func (w *World) Len() int {
	return len(w.chunks)
}

// GetModCount returns the current modification count of the chunk map.
func (w *World) GetModCount() uint64 {
	return w.modCount
}

// GetAllChunks returns every loaded chunk. Order is unspecified.
func (w *World) GetAllChunks() []*Chunk {
	chunks := make([]*Chunk, 0, len(w.chunks))
	for _, c := range w.chunks {
		chunks = append(chunks, c)
	}
	return chunks
}

// EvictFarChunks removes chunks whose XZ distance from center exceeds radius
// (in chunks). Returns number of removed chunks.
func (w *World) EvictFarChunks(center ChunkPos, radius int) int {
	defer profiling.Track("world.EvictFarChunks")()
	var far []ChunkPos
	for pos := range w.chunks {
		dx := pos[0] - center[0]
		dz := pos[2] - center[2]
		if dx*dx+dz*dz > radius*radius {
			far = append(far, pos)
		}
	}
	for _, pos := range far {
		w.RemoveChunk(pos)
	}
	return len(far)
}

// GetVoxel reads the voxel at an absolute position.
func (w *World) GetVoxel(pos BlockPos) (Voxel, bool) {
	outer, inner := SplitBlockPos(pos)
	c := w.chunks[outer]
	if c == nil {
		return Voxel{}, false
	}
	return c.Voxels.Get(inner)
}

// SetVoxel writes the voxel at an absolute position, allocating the chunk's
// buffer if needed. Returns false if the chunk is not loaded.
func (w *World) SetVoxel(pos BlockPos, v Voxel) bool {
	outer, inner := SplitBlockPos(pos)
	c := w.chunks[outer]
	if c == nil {
		return false
	}
	c.Voxels.Set(inner, v)
	return true
}
