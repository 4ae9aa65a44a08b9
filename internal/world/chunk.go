package world

import (
	"voxelgrid/internal/face"
)

// ChunkStatus tracks where a chunk is in its lifecycle.
type ChunkStatus uint8

const (
	// ChunkNew chunks have never been added to a World.
	ChunkNew ChunkStatus = iota
	// ChunkInWorld chunks are linked into a World.
	ChunkInWorld
	// ChunkFreed chunks were removed and must not be used for traversal.
	ChunkFreed
)

func (s ChunkStatus) String() string {
	switch s {
	case ChunkNew:
		return "new"
	case ChunkInWorld:
		return "in-world"
	case ChunkFreed:
		return "freed"
	}
	return "unknown"
}

// Chunk is a ChunkEdge³ cube of voxels and a node of the chunk adjacency
// graph. Neighbor links are non-owning; the World map owns every chunk.
type Chunk struct {
	status    ChunkStatus
	pos       ChunkPos
	neighbors [face.Count]*Chunk
	dirty     bool

	// Voxels holds the chunk's voxel records.
	Voxels VoxelData
	// UserData carries the consumer's per-chunk payload (mesh state etc.).
	UserData any
}

// NewChunk creates a chunk whose voxel buffer will use layout l.
func NewChunk(l VoxelLayout) *Chunk {
	return &Chunk{Voxels: NewVoxelData(l)}
}

// Status returns the lifecycle status.
func (c *Chunk) Status() ChunkStatus {
	return c.status
}

// InWorld reports whether the chunk is currently linked into a World.
func (c *Chunk) InWorld() bool {
	return c.status == ChunkInWorld
}

// Pos returns the chunk coordinate. Only meaningful while InWorld.
func (c *Chunk) Pos() ChunkPos {
	return c.pos
}

// GetNeighbor returns the chunk adjacent across f, or nil.
func (c *Chunk) GetNeighbor(f face.Face) *Chunk {
	return c.neighbors[f]
}

// IsDirty returns whether the chunk is queued for re-meshing.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

func (c *Chunk) markInWorld(pos ChunkPos) {
	c.pos = pos
	c.status = ChunkInWorld
}

func (c *Chunk) markFreed() {
	c.status = ChunkFreed
}

// linkNeighbor links c and other symmetrically across f.
func (c *Chunk) linkNeighbor(f face.Face, other *Chunk) {
	c.neighbors[f] = other
	other.neighbors[f.Inverse()] = c
}

// unlinkNeighbors clears every link to and from c. Clearing our own slots
// keeps a freed chunk from holding other freed chunks reachable.
func (c *Chunk) unlinkNeighbors() {
	for _, f := range face.Faces() {
		if n := c.neighbors[f]; n != nil {
			n.neighbors[f.Inverse()] = nil
			c.neighbors[f] = nil
		}
	}
}
