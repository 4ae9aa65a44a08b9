package world

import "fmt"

// MaterialID is the value stored in a voxel's material field. 0 is air.
type MaterialID uint32

// Air is the reserved empty material.
const Air MaterialID = 0

// Material describes a registered material.
type Material struct {
	Name  string
	Solid bool
}

// MaterialRegistry assigns ids to materials in registration order.
type MaterialRegistry struct {
	materials []Material
	byName    map[string]MaterialID
}

// NewMaterialRegistry returns a registry holding only air.
func NewMaterialRegistry() *MaterialRegistry {
	return &MaterialRegistry{
		materials: []Material{{Name: "air"}},
		byName:    map[string]MaterialID{"air": Air},
	}
}

// Register adds a material and returns its id. Names must be unique.
func (r *MaterialRegistry) Register(name string, solid bool) MaterialID {
	if _, ok := r.byName[name]; ok {
		panic(fmt.Sprintf("world: material %q registered twice", name))
	}
	id := MaterialID(len(r.materials))
	r.materials = append(r.materials, Material{Name: name, Solid: solid})
	r.byName[name] = id
	return id
}

// Lookup returns the material registered under id.
func (r *MaterialRegistry) Lookup(id MaterialID) (Material, bool) {
	if int(id) >= len(r.materials) {
		return Material{}, false
	}
	return r.materials[id], true
}

// ByName returns the id registered for name.
func (r *MaterialRegistry) ByName(name string) (MaterialID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// IsSolid reports whether id names a solid material. Unknown ids are not solid.
func (r *MaterialRegistry) IsSolid(id MaterialID) bool {
	m, ok := r.Lookup(id)
	return ok && m.Solid
}

// Len returns the number of registered materials, air included.
func (r *MaterialRegistry) Len() int {
	return len(r.materials)
}
