package face

// Axis identifies one of the three grid axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// AxisCount is the number of grid axes.
const AxisCount = 3

// Face identifies one of the six faces of a voxel (or chunk).
// Even values point along the positive direction of their axis, odd values
// along the negative one, so Axis is f>>1 and the inverse face is f^1.
type Face uint8

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// Count is the number of cube faces.
const Count = 6

var (
	axes  = [AxisCount]Axis{AxisX, AxisY, AxisZ}
	faces = [Count]Face{PosX, NegX, PosY, NegY, PosZ, NegZ}

	// Order must stay fixed: mesh winding depends on it.
	orthoAxes = [AxisCount][2]Axis{
		AxisX: {AxisY, AxisZ},
		AxisY: {AxisX, AxisZ},
		AxisZ: {AxisX, AxisY},
	}

	faceNames = [Count]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}
	axisNames = [AxisCount]string{"X", "Y", "Z"}
)

// Axes returns the axes in iteration order X, Y, Z.
func Axes() []Axis {
	return axes[:]
}

// Faces returns all six faces in ordinal order.
func Faces() []Face {
	return faces[:]
}

// OrthoAxes returns the two axes orthogonal to a, in a fixed order.
func OrthoAxes(a Axis) [2]Axis {
	return orthoAxes[a]
}

// FromParts builds the face lying on axis a in the direction of sign.
// Any non-negative sign is treated as positive.
func FromParts(a Axis, sign int) Face {
	if sign >= 0 {
		return Face(a << 1)
	}
	return Face(a<<1 | 1)
}

// SignOf returns +1 for strictly positive values and -1 otherwise.
func SignOf(v float64) int {
	if v > 0 {
		return 1
	}
	return -1
}

// Axis returns the axis the face lies on.
func (f Face) Axis() Axis {
	return Axis(f >> 1)
}

// Sign returns +1 for positive faces and -1 for negative faces.
func (f Face) Sign() int {
	return 1 - 2*int(f&1)
}

// Inverse returns the opposite face.
func (f Face) Inverse() Face {
	return f ^ 1
}

// Towards returns the unit vector pointing out of the face.
func (f Face) Towards() [3]int {
	var v [3]int
	v[f.Axis()] = f.Sign()
	return v
}

func (f Face) String() string {
	if int(f) < Count {
		return faceNames[f]
	}
	return "invalid"
}

func (a Axis) String() string {
	if int(a) < AxisCount {
		return axisNames[a]
	}
	return "invalid"
}
