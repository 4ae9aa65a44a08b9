package world

import "testing"

func TestMaterialRegistry(t *testing.T) {
	r := NewMaterialRegistry()
	stone := r.Register("stone", true)
	water := r.Register("water", false)

	if stone != 1 || water != 2 || r.Len() != 3 {
		t.Fatalf("ids = %d, %d; len %d", stone, water, r.Len())
	}
	if !r.IsSolid(stone) || r.IsSolid(water) || r.IsSolid(Air) || r.IsSolid(99) {
		t.Error("unexpected solidity")
	}
	if id, ok := r.ByName("water"); !ok || id != water {
		t.Errorf("ByName(water) = %d, %v", id, ok)
	}
	if m, ok := r.Lookup(Air); !ok || m.Name != "air" {
		t.Errorf("Lookup(Air) = %+v, %v", m, ok)
	}
	mustPanic(t, "duplicate", func() { r.Register("stone", false) })
}
