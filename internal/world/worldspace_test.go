package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWorldSpaceRoundTrip(t *testing.T) {
	for x := -40; x <= 40; x += 3 {
		for y := -40; y <= 40; y += 5 {
			for z := -40; z <= 40; z += 7 {
				p := BlockPos{x, y, z}
				root := ChunkRoot(BlockToChunkPos(p))
				got := root.Add(BlockPos(BlockToChunkIndex(p).Vector()))
				if got != p {
					t.Fatalf("round trip of %v gave %v", p, got)
				}
				c, i := SplitBlockPos(p)
				if JoinBlockPos(c, i) != p {
					t.Fatalf("JoinBlockPos(SplitBlockPos(%v)) = %v", p, JoinBlockPos(c, i))
				}
			}
		}
	}
}

func TestBlockToChunkPosNegative(t *testing.T) {
	cases := map[BlockPos]ChunkPos{
		{0, 0, 0}:      {0, 0, 0},
		{15, 16, -1}:   {0, 1, -1},
		{-16, -17, 31}: {-1, -2, 1},
	}
	for p, want := range cases {
		if got := BlockToChunkPos(p); got != want {
			t.Errorf("BlockToChunkPos(%v) = %v, want %v", p, got, want)
		}
	}
	if v := BlockToChunkIndex(BlockPos{-1, -16, 17}).Vector(); v != [3]int{15, 0, 1} {
		t.Errorf("BlockToChunkIndex = %v, want [15 0 1]", v)
	}
}

func TestFloorBlockPos(t *testing.T) {
	got := FloorBlockPos(mgl64.Vec3{0.5, -0.5, -2})
	if got != (BlockPos{0, -1, -2}) {
		t.Errorf("FloorBlockPos = %v, want [0 -1 -2]", got)
	}
}
