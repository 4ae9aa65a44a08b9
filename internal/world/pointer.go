package world

import (
	"fmt"

	"voxelgrid/internal/face"
)

// DefaultMaxChunkHops bounds how many neighbor links a single step may walk
// before the pointer gives up its chunk cache and falls back to a lookup.
const DefaultMaxChunkHops = 2

// Pointer is a cursor onto one voxel. Outer and Inner always denote a valid
// voxel; the cached chunk is only a hint that is revalidated on use, so a
// Pointer survives its chunk being removed from the World.
//
// Pointers are plain values: copy them freely.
type Pointer struct {
	Outer ChunkPos
	Inner ChunkIndex
	chunk *Chunk
}

// NewPointer creates a pointer at pos. With a non-nil World the chunk cache
// is populated immediately; otherwise it is filled lazily by GetChunk.
func NewPointer(w *World, pos BlockPos) Pointer {
	var p Pointer
	p.SetWorldPos(pos)
	if w != nil {
		p.Refresh(w)
	}
	return p
}

// PointerInChunk creates a pointer at index i of chunk c, which must be in a
// world.
func PointerInChunk(c *Chunk, i ChunkIndex) Pointer {
	var p Pointer
	p.SetPosInChunk(c, i)
	return p
}

// WorldPos returns the absolute voxel position.
func (p Pointer) WorldPos() BlockPos {
	return JoinBlockPos(p.Outer, p.Inner)
}

// SetWorldPos moves the pointer to pos and drops the chunk cache.
func (p *Pointer) SetWorldPos(pos BlockPos) {
	p.Outer, p.Inner = SplitBlockPos(pos)
	p.chunk = nil
}

// SetWorldPosRegional moves the pointer to pos by walking neighbor links from
// the current chunk, which avoids a map lookup when pos is close by. Without
// a valid cache it falls back to a full refresh.
func (p *Pointer) SetWorldPosRegional(w *World, pos BlockPos, maxHops int) {
	if p.liveChunk() == nil {
		p.SetWorldPos(pos)
		if w != nil {
			p.Refresh(w)
		}
		return
	}
	p.MoveBy(pos.Sub(p.WorldPos()), w, maxHops)
}

// SetPosInChunk points at index i of chunk c. The chunk must be in a world,
// since Pos is meaningless otherwise; voxeldebug builds panic, other builds
// leave the pointer detached at the stale position.
func (p *Pointer) SetPosInChunk(c *Chunk, i ChunkIndex) {
	if debugChecks && !c.InWorld() {
		panic(fmt.Sprintf("world: pointer into chunk with status %v", c.Status()))
	}
	p.Outer = c.Pos()
	p.Inner = i
	p.chunk = nil
	if c.InWorld() {
		p.chunk = c
	}
}

// Step moves one voxel out of face f.
func (p *Pointer) Step(f face.Face) *Pointer {
	return p.StepBy(f, 1, DefaultMaxChunkHops)
}

// StepBy moves magnitude voxels out of face f; magnitude may exceed the chunk
// edge or be negative. The chunk cache follows neighbor links for each chunk
// boundary crossed. If that takes more than maxHops links, or a link is
// missing, the cache is dropped instead.
func (p *Pointer) StepBy(f face.Face, magnitude, maxHops int) *Pointer {
	a := f.Axis()
	next, traversed := p.Inner.Add(a, f.Sign()*magnitude)
	p.Inner = next
	if traversed != 0 {
		p.Outer[a] += traversed
		hops := traversed
		if hops < 0 {
			hops = -hops
		}
		p.chunk = p.walk(face.FromParts(a, traversed), hops, maxHops)
	}
	return p
}

// Neighbor returns a copy of the pointer moved one voxel out of face f.
func (p *Pointer) Neighbor(f face.Face) Pointer {
	n := *p
	n.Step(f)
	return n
}

// NeighborBy is the copying form of StepBy.
func (p *Pointer) NeighborBy(f face.Face, magnitude, maxHops int) Pointer {
	n := *p
	n.StepBy(f, magnitude, maxHops)
	return n
}

// MoveBy moves the pointer by delta, one axis at a time in X, Y, Z order. Each
// axis gets its own maxHops budget. When w is non-nil and the cache was lost
// on the way, the pointer re-attaches with a lookup.
func (p *Pointer) MoveBy(delta BlockPos, w *World, maxHops int) *Pointer {
	for _, a := range face.Axes() {
		if delta[a] != 0 {
			p.StepBy(face.FromParts(a, 1), delta[a], maxHops)
		}
	}
	if w != nil && p.liveChunk() == nil {
		p.Refresh(w)
	}
	return p
}

// GetChunk returns the chunk the pointer is in, or nil if it isn't loaded.
// A stale cache is replaced by a lookup in w; w may be nil for a
// cache-only query.
func (p *Pointer) GetChunk(w *World) *Chunk {
	if c := p.liveChunk(); c != nil {
		return c
	}
	if w == nil {
		p.chunk = nil
		return nil
	}
	p.chunk = w.GetChunk(p.Outer)
	return p.chunk
}

// CachedChunk returns the cached chunk without validating it.
func (p *Pointer) CachedChunk() *Chunk {
	return p.chunk
}

// Refresh re-reads the chunk from w and reports whether one is loaded.
func (p *Pointer) Refresh(w *World) bool {
	p.chunk = w.GetChunk(p.Outer)
	return p.chunk != nil
}

// Detach drops the chunk cache.
func (p *Pointer) Detach() {
	p.chunk = nil
}

// Voxel reads the voxel under the pointer.
func (p *Pointer) Voxel(w *World) (Voxel, bool) {
	c := p.GetChunk(w)
	if c == nil {
		return Voxel{}, false
	}
	return c.Voxels.Get(p.Inner)
}

// Material reads the material id under the pointer; unloaded voxels are Air.
func (p *Pointer) Material(w *World) MaterialID {
	c := p.GetChunk(w)
	if c == nil {
		return Air
	}
	m, _ := c.Voxels.Material(p.Inner)
	return MaterialID(m)
}

// SetVoxel writes the voxel under the pointer, allocating the chunk's buffer
// if needed. Returns false if the chunk is not loaded.
func (p *Pointer) SetVoxel(w *World, v Voxel) bool {
	c := p.GetChunk(w)
	if c == nil {
		return false
	}
	c.Voxels.Set(p.Inner, v)
	return true
}

func (p *Pointer) liveChunk() *Chunk {
	if p.chunk != nil && p.chunk.InWorld() {
		return p.chunk
	}
	return nil
}

// walk follows hops links out of f from the cached chunk.
func (p *Pointer) walk(f face.Face, hops, maxHops int) *Chunk {
	c := p.liveChunk()
	if c == nil || hops > maxHops {
		return nil
	}
	for ; hops > 0 && c != nil; hops-- {
		c = c.neighbors[f]
	}
	return c
}
