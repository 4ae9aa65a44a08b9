package main

import (
	"voxelgrid/internal/config"
	"voxelgrid/internal/physics"
	"voxelgrid/internal/world"
)

// ProbeComponents holds everything a probe run works on
type ProbeComponents struct {
	World     *world.World
	Materials *world.MaterialRegistry
	Dirty     *world.DirtyQueue
	Body      *physics.MovableBody
	Layout    world.VoxelLayout
	IsSolid   physics.VoxelFunc

	stone world.MaterialID
	water world.MaterialID
}

// Floor chunks sit at chunk y=-1; pillars grow out of chunk y=0.
const (
	floorChunkY  = -1
	pillarHeight = 4
)

func setupProbe(s config.GridSettings) (*ProbeComponents, error) {
	layout := world.VoxelLayout{
		MaterialBytes: world.ByteWidth(s.MaterialBytes),
		AuxBytes:      world.ByteWidth(s.AuxBytes),
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	reg := world.NewMaterialRegistry()
	p := &ProbeComponents{
		World:     world.NewWorld(),
		Materials: reg,
		Dirty:     &world.DirtyQueue{},
		Layout:    layout,
		stone:     reg.Register("stone", true),
		water:     reg.Register("water", false),
	}
	p.IsSolid = func(ptr *world.Pointer) bool {
		return reg.IsSolid(ptr.Material(p.World))
	}

	p.loadAround(world.ChunkPos{}, s.LoadRadius)

	// Spawn in the air above the origin and let the first tick drop the body.
	p.Body = physics.NewMovableBody(p.World, world.BlockPos{0, 12, 0})
	p.Body.MaxChunkHops = s.MaxChunkHops
	return p, nil
}

// loadAround adds any missing chunk within radius (XZ) of center, two chunk
// layers tall, and queues it and its neighbors for meshing.
func (p *ProbeComponents) loadAround(center world.ChunkPos, radius int) int {
	added := 0
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			if dx*dx+dz*dz > radius*radius {
				continue
			}
			for y := floorChunkY; y <= 0; y++ {
				pos := world.ChunkPos{center.X() + dx, y, center.Z() + dz}
				if p.World.HasChunk(pos) {
					continue
				}
				c := world.NewChunk(p.Layout)
				p.populate(pos, c)
				p.World.AddChunk(pos, c)
				p.Dirty.FlagChunkAndNeighbors(c)
				added++
			}
		}
	}
	return added
}

// populate fills floor chunks with stone and puts a stone pillar with a water
// cap in every third surface chunk. Other surface chunks stay unallocated.
func (p *ProbeComponents) populate(pos world.ChunkPos, c *world.Chunk) {
	if pos.Y() == floorChunkY {
		c.Voxels.Fill(world.Voxel{Material: uint32(p.stone)})
		return
	}
	if (pos.X()+pos.Z())%3 != 0 {
		return
	}
	mid := world.ChunkEdge / 2
	for y := 0; y < pillarHeight; y++ {
		c.Voxels.Set(world.IndexFromChunkPos(mid, y, mid), world.Voxel{Material: uint32(p.stone)})
	}
	c.Voxels.Set(world.IndexFromChunkPos(mid, pillarHeight, mid), world.Voxel{Material: uint32(p.water), Aux: 7})
}
