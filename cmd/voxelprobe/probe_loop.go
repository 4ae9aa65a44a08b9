package main

import (
	"log"
	"time"

	"voxelgrid/internal/config"
	"voxelgrid/internal/face"
	"voxelgrid/internal/physics"
	"voxelgrid/internal/profiling"
	"voxelgrid/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// Body size in voxels and where the "eye" sits inside it.
var (
	bodyDims  = world.BlockPos{1, 2, 1}
	eyeOffset = mgl64.Vec3{0.5, 1.6, 0.5}
	lookDir   = mgl64.Vec3{1, -0.5, 0.25}.Normalize()
)

// ProbeLoop walks a body across the grid, casting rays, digging what they hit
// and streaming chunks around the body, one tick at a time.
type ProbeLoop struct {
	p      *ProbeComponents
	center world.ChunkPos

	ticks    int
	hits     int
	dug      int
	loaded   int
	evicted  int
	rebuilds int
	slowTick time.Duration
}

// NewProbeLoop creates a loop centered on the body's starting chunk.
func NewProbeLoop(p *ProbeComponents) *ProbeLoop {
	return &ProbeLoop{
		p:      p,
		center: world.BlockToChunkPos(p.Body.Position()),
	}
}

// Tick advances the probe once.
func (l *ProbeLoop) Tick() {
	start := time.Now()
	profiling.ResetFrame()
	l.ticks++

	l.moveBody()
	l.castRay()
	l.streamChunks()
	l.rebuilds += l.p.Dirty.Drain(func(c *world.Chunk) { remesh(c, l.p.IsSolid) })

	if d := time.Since(start); d > l.slowTick {
		l.slowTick = d
		if d > 5*time.Millisecond {
			log.Printf("Slow tick %d: %v (world %v, physics %v). Top tasks: %s", l.ticks, d,
				profiling.SumWithPrefix("world."), profiling.SumWithPrefix("physics."), profiling.TopN(5))
		}
	}
}

// moveBody drops the body onto the ground and walks it along +X, stepping
// sideways around pillars.
func (l *ProbeLoop) moveBody() {
	b := l.p.Body
	b.MoveOn(bodyDims, l.p.IsSolid, face.AxisY, -4)
	if !b.OnGround(bodyDims, l.p.IsSolid) {
		return
	}
	moved := b.MoveBy(bodyDims, l.p.IsSolid, world.BlockPos{3, 0, 0})
	if moved.X() < 3 {
		b.MoveOn(bodyDims, l.p.IsSolid, face.AxisZ, 2)
	}
}

// castRay looks ahead and down from the eye; every fourth hit within reach
// is dug out.
func (l *ProbeLoop) castRay() {
	w := l.p.World
	eye := l.p.Body.Position().Vec().Add(eyeOffset)
	res := physics.Raycast(w, eye, lookDir, physics.MinReachDistance, config.GetSettings().RayMaxDistance, l.p.IsSolid)
	if !res.Hit {
		return
	}
	l.hits++
	if l.hits%4 != 0 || !res.InReach() {
		return
	}

	ptr := world.NewPointer(w, res.HitPosition)
	if ptr.SetVoxel(w, world.Voxel{}) {
		l.p.Dirty.FlagVoxel(ptr.GetChunk(w), ptr.Inner)
		l.dug++
	}
}

// streamChunks loads around the body once it enters a new chunk and evicts
// chunks beyond the eviction radius.
func (l *ProbeLoop) streamChunks() {
	center := world.BlockToChunkPos(l.p.Body.Position())
	center[1] = 0
	if center == l.center {
		return
	}
	l.center = center
	l.loaded += l.p.loadAround(center, config.GetLoadRadius())
	l.evicted += l.p.World.EvictFarChunks(center, config.GetEvictRadius())
}

// Report logs the run totals.
func (l *ProbeLoop) Report() {
	b := l.p.Body
	log.Printf("ticks=%d body=%v chunks=%d loaded=%d evicted=%d", l.ticks, b.Position(), l.p.World.Len(), l.loaded, l.evicted)
	log.Printf("ray hits=%d dug=%d remeshed=%d slowest tick=%v", l.hits, l.dug, l.rebuilds, l.slowTick)

	var faces int
	for _, c := range l.p.World.GetAllChunks() {
		if s, ok := c.UserData.(meshStats); ok {
			faces += s.VisibleFaces
		}
	}
	log.Printf("visible faces=%d modcount=%d", faces, l.p.World.GetModCount())
}
