package main

import (
	"voxelgrid/internal/face"
	"voxelgrid/internal/world"
)

// meshStats is what the probe stores in Chunk.UserData after "meshing".
type meshStats struct {
	Solid        int
	VisibleFaces int
	Rebuilds     int
}

// countVisibleFaces counts the faces of solid voxels in c that border a
// non-solid voxel, looking across chunk borders through neighbor links.
// Unloaded neighbors count as open.
func countVisibleFaces(c *world.Chunk, isSolid func(p *world.Pointer) bool) (solid, faces int) {
	if c.Voxels.IsEmpty() {
		return 0, 0
	}
	for i := range world.AllIndices() {
		p := world.PointerInChunk(c, i)
		if !isSolid(&p) {
			continue
		}
		solid++
		for _, f := range face.Faces() {
			n := p.Neighbor(f)
			if !isSolid(&n) {
				faces++
			}
		}
	}
	return solid, faces
}

// remesh refreshes the mesh stats of a dequeued chunk.
func remesh(c *world.Chunk, isSolid func(p *world.Pointer) bool) {
	prev, _ := c.UserData.(meshStats)
	solid, faces := countVisibleFaces(c, isSolid)
	c.UserData = meshStats{Solid: solid, VisibleFaces: faces, Rebuilds: prev.Rebuilds + 1}
}
