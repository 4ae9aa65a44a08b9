package world

import (
	"github.com/gammazero/deque"

	"voxelgrid/internal/face"
)

// DirtyQueue collects chunks whose mesh must be rebuilt, in the order they
// were first flagged. A chunk's dirty flag marks it as queued, so flagging
// twice is free. Only Pop clears the flag.
type DirtyQueue struct {
	queue deque.Deque[*Chunk]
}

// FlagChunk queues c. Nil and freed chunks are ignored.
func (q *DirtyQueue) FlagChunk(c *Chunk) {
	if c == nil || c.dirty || c.status == ChunkFreed {
		return
	}
	c.dirty = true
	q.queue.PushBack(c)
}

// FlagChunkNeighbor queues the chunk adjacent to c across f, if loaded.
func (q *DirtyQueue) FlagChunkNeighbor(c *Chunk, f face.Face) {
	q.FlagChunk(c.GetNeighbor(f))
}

// FlagChunkAndNeighbors queues c and every loaded neighbor, e.g. after c was
// added to the world and its border faces changed visibility.
func (q *DirtyQueue) FlagChunkAndNeighbors(c *Chunk) {
	q.FlagChunk(c)
	for _, f := range face.Faces() {
		q.FlagChunkNeighbor(c, f)
	}
}

// FlagVoxelFace queues whichever chunk owns the voxel across face f of voxel i.
func (q *DirtyQueue) FlagVoxelFace(c *Chunk, i ChunkIndex, f face.Face) {
	if _, traversed := i.AddFace(f, 1); traversed != 0 {
		q.FlagChunkNeighbor(c, f)
		return
	}
	q.FlagChunk(c)
}

// FlagVoxel queues c plus every neighbor sharing a face with voxel i.
func (q *DirtyQueue) FlagVoxel(c *Chunk, i ChunkIndex) {
	q.FlagChunk(c)
	for _, a := range face.Axes() {
		if f, ok := i.EdgeFace(a); ok {
			q.FlagChunkNeighbor(c, f)
		}
	}
}

// Len returns the number of queued chunks, including any freed since.
func (q *DirtyQueue) Len() int {
	return q.queue.Len()
}

// Pop returns the oldest queued chunk still in use and clears its dirty flag.
func (q *DirtyQueue) Pop() (*Chunk, bool) {
	for q.queue.Len() > 0 {
		c := q.queue.PopFront()
		c.dirty = false
		if c.status == ChunkFreed {
			continue
		}
		return c, true
	}
	return nil, false
}

// Drain pops every queued chunk into fn and returns how many were handled.
func (q *DirtyQueue) Drain(fn func(*Chunk)) int {
	n := 0
	for {
		c, ok := q.Pop()
		if !ok {
			return n
		}
		fn(c)
		n++
	}
}
