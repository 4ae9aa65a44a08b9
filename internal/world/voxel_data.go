package world

import (
	"encoding/binary"
	"fmt"
)

// ByteWidth is the width of one voxel field in bytes: 1, 2 or 4.
type ByteWidth uint8

// Valid reports whether w is a supported field width.
func (w ByteWidth) Valid() bool {
	return w == 1 || w == 2 || w == 4
}

func (w ByteWidth) max() uint64 {
	return 1<<(8*uint(w)) - 1
}

// VoxelLayout describes how a voxel record is packed: material id first,
// then auxiliary data, both little-endian.
type VoxelLayout struct {
	MaterialBytes ByteWidth
	AuxBytes      ByteWidth
}

// DefaultLayout packs a 16-bit material id and 16 bits of aux data.
var DefaultLayout = VoxelLayout{MaterialBytes: 2, AuxBytes: 2}

// Stride is the size of one voxel record.
func (l VoxelLayout) Stride() int {
	return int(l.MaterialBytes) + int(l.AuxBytes)
}

// Validate returns an error for unsupported field widths.
func (l VoxelLayout) Validate() error {
	if !l.MaterialBytes.Valid() {
		return fmt.Errorf("world: material width %d not in {1,2,4}", l.MaterialBytes)
	}
	if !l.AuxBytes.Valid() {
		return fmt.Errorf("world: aux width %d not in {1,2,4}", l.AuxBytes)
	}
	return nil
}

// Voxel is one decoded voxel record.
type Voxel struct {
	Material uint32
	Aux      uint32
}

// VoxelData is a chunk's flat voxel buffer, addressed by ChunkIndex. The
// buffer is allocated lazily; until then every read reports absence.
type VoxelData struct {
	layout VoxelLayout
	buf    []byte
}

// NewVoxelData returns an unallocated store with the given layout.
// It panics if the layout is invalid.
func NewVoxelData(l VoxelLayout) VoxelData {
	if err := l.Validate(); err != nil {
		panic(err)
	}
	return VoxelData{layout: l}
}

// Layout returns the current record layout.
func (d *VoxelData) Layout() VoxelLayout {
	return d.layout
}

// Allocate (re)creates a zeroed buffer for layout l, discarding existing data.
func (d *VoxelData) Allocate(l VoxelLayout) {
	if err := l.Validate(); err != nil {
		panic(err)
	}
	d.layout = l
	d.buf = make([]byte, l.Stride()*ChunkVolume)
}

// EnsureAllocated allocates the buffer with the current layout if missing.
func (d *VoxelData) EnsureAllocated() {
	if d.buf == nil {
		d.Allocate(d.layout)
	}
}

// EnsureLayout makes sure the buffer exists with layout l, reallocating
// (and dropping data) on a layout change.
func (d *VoxelData) EnsureLayout(l VoxelLayout) {
	if d.buf == nil || d.layout != l {
		d.Allocate(l)
	}
}

// HasData reports whether the buffer is allocated.
func (d *VoxelData) HasData() bool {
	return d.buf != nil
}

// Release frees the buffer.
func (d *VoxelData) Release() {
	d.buf = nil
}

// Raw exposes the packed buffer, nil when unallocated. Its length is
// Layout().Stride() * ChunkVolume.
func (d *VoxelData) Raw() []byte {
	return d.buf
}

// IsEmpty reports whether every voxel has material 0. Unallocated stores are empty.
func (d *VoxelData) IsEmpty() bool {
	if d.buf == nil {
		return true
	}
	stride := d.layout.Stride()
	mw := int(d.layout.MaterialBytes)
	for off := 0; off < len(d.buf); off += stride {
		for _, b := range d.buf[off : off+mw] {
			if b != 0 {
				return false
			}
		}
	}
	return true
}

// Material returns the material id at i.
func (d *VoxelData) Material(i ChunkIndex) (uint32, bool) {
	if d.buf == nil {
		return 0, false
	}
	return getUint(d.buf[int(i)*d.layout.Stride():], d.layout.MaterialBytes), true
}

// Aux returns the auxiliary data at i.
func (d *VoxelData) Aux(i ChunkIndex) (uint32, bool) {
	if d.buf == nil {
		return 0, false
	}
	off := int(i)*d.layout.Stride() + int(d.layout.MaterialBytes)
	return getUint(d.buf[off:], d.layout.AuxBytes), true
}

// Get decodes the record at i.
func (d *VoxelData) Get(i ChunkIndex) (Voxel, bool) {
	if d.buf == nil {
		return Voxel{}, false
	}
	off := int(i) * d.layout.Stride()
	return Voxel{
		Material: getUint(d.buf[off:], d.layout.MaterialBytes),
		Aux:      getUint(d.buf[off+int(d.layout.MaterialBytes):], d.layout.AuxBytes),
	}, true
}

// SetMaterial stores a material id. Values wider than the field are
// truncated. Returns false when the buffer is not allocated.
func (d *VoxelData) SetMaterial(i ChunkIndex, v uint32) bool {
	if d.buf == nil {
		return false
	}
	checkFits(v, d.layout.MaterialBytes)
	putUint(d.buf[int(i)*d.layout.Stride():], d.layout.MaterialBytes, v)
	return true
}

// SetAux stores auxiliary data; see SetMaterial.
func (d *VoxelData) SetAux(i ChunkIndex, v uint32) bool {
	if d.buf == nil {
		return false
	}
	checkFits(v, d.layout.AuxBytes)
	putUint(d.buf[int(i)*d.layout.Stride()+int(d.layout.MaterialBytes):], d.layout.AuxBytes, v)
	return true
}

// Set stores a full record, allocating the buffer if needed.
func (d *VoxelData) Set(i ChunkIndex, v Voxel) {
	d.EnsureAllocated()
	d.SetMaterial(i, v.Material)
	d.SetAux(i, v.Aux)
}

// Fill writes v into every voxel, allocating the buffer if needed.
func (d *VoxelData) Fill(v Voxel) {
	d.EnsureAllocated()
	for i := range AllIndices() {
		d.SetMaterial(i, v.Material)
		d.SetAux(i, v.Aux)
	}
}

func checkFits(v uint32, w ByteWidth) {
	if debugChecks && uint64(v) > w.max() {
		panic(fmt.Sprintf("world: value %d does not fit in %d bytes", v, w))
	}
}

func getUint(b []byte, w ByteWidth) uint32 {
	switch w {
	case 1:
		return uint32(b[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(b))
	default:
		return binary.LittleEndian.Uint32(b)
	}
}

func putUint(b []byte, w ByteWidth, v uint32) {
	switch w {
	case 1:
		b[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(v))
	default:
		binary.LittleEndian.PutUint32(b, v)
	}
}
