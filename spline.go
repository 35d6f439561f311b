package uim

import "math/bits"

// Attribute identifies one per-sample value a [Spline] or sensor
// [ChannelData] stream can carry.
type Attribute int

const (
	AttrX Attribute = iota
	AttrY
	AttrZ
	AttrSize
	AttrRotation
	AttrRed
	AttrGreen
	AttrBlue
	AttrAlpha
	AttrScaleX
	AttrScaleY
	AttrScaleZ
	AttrOffsetX
	AttrOffsetY
	AttrOffsetZ
	AttrTangentX
	AttrTangentY

	// Sensor-plane attributes (spec.md §4.5): these never appear in a
	// spline's layout mask, only in a requested strided-array layout,
	// and are resolved through the stroke's sensor-data mapping.
	AttrTimestamp
	AttrPressure
	AttrAltitude
	AttrAzimuth
	AttrRadiusX
	AttrRadiusY
	AttrSensorRotation
)

// LayoutMask is the 17-bit set selecting which spline attributes are
// present per sample (spec.md §3.4).
type LayoutMask uint32

// Bit values, in the order spec.md §3.4 lists them. These match
// original_source/uim/model/inkdata/strokes.py's LayoutMask enum
// exactly, since they are wire-format constants, not source-language
// artifacts.
const (
	MaskX LayoutMask = 1 << iota
	MaskY
	MaskZ
	MaskSize
	MaskRotation
	MaskRed
	MaskGreen
	MaskBlue
	MaskAlpha
	MaskScaleX
	MaskScaleY
	MaskScaleZ
	MaskOffsetX
	MaskOffsetY
	MaskOffsetZ
	MaskTangentX
	MaskTangentY
)

var splineAttrBits = map[Attribute]LayoutMask{
	AttrX: MaskX, AttrY: MaskY, AttrZ: MaskZ, AttrSize: MaskSize, AttrRotation: MaskRotation,
	AttrRed: MaskRed, AttrGreen: MaskGreen, AttrBlue: MaskBlue, AttrAlpha: MaskAlpha,
	AttrScaleX: MaskScaleX, AttrScaleY: MaskScaleY, AttrScaleZ: MaskScaleZ,
	AttrOffsetX: MaskOffsetX, AttrOffsetY: MaskOffsetY, AttrOffsetZ: MaskOffsetZ,
	AttrTangentX: MaskTangentX, AttrTangentY: MaskTangentY,
}

var attributeNames = map[Attribute]string{
	AttrX: "X", AttrY: "Y", AttrZ: "Z", AttrSize: "SIZE", AttrRotation: "ROTATION",
	AttrRed: "RED", AttrGreen: "GREEN", AttrBlue: "BLUE", AttrAlpha: "ALPHA",
	AttrScaleX: "SCALE_X", AttrScaleY: "SCALE_Y", AttrScaleZ: "SCALE_Z",
	AttrOffsetX: "OFFSET_X", AttrOffsetY: "OFFSET_Y", AttrOffsetZ: "OFFSET_Z",
	AttrTangentX: "TANGENT_X", AttrTangentY: "TANGENT_Y",
	AttrTimestamp: "TIMESTAMP", AttrPressure: "PRESSURE", AttrAltitude: "ALTITUDE",
	AttrAzimuth: "AZIMUTH", AttrRadiusX: "RADIUS_X", AttrRadiusY: "RADIUS_Y",
	AttrSensorRotation: "ROTATION_SENSOR",
}

// String returns the attribute's wire-vocabulary name, e.g. "SCALE_X".
func (a Attribute) String() string {
	if name, ok := attributeNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsSensorAttribute reports whether a is resolved from the referenced
// sensor-data frame rather than from the spline.
func IsSensorAttribute(a Attribute) bool {
	_, ok := splineAttrBits[a]
	return !ok
}

// AttributeMask returns the single-bit mask for a, and false if a is a
// sensor-plane attribute with no mask bit of its own.
func AttributeMask(a Attribute) (LayoutMask, bool) {
	bit, ok := splineAttrBits[a]
	return bit, ok
}

// Has reports whether the mask selects attribute a.
func (m LayoutMask) Has(a Attribute) bool {
	bit, ok := splineAttrBits[a]
	return ok && m&bit != 0
}

// Stride is the number of values stored per sample: the population
// count of the mask's set bits (spec.md §4.5).
func (m LayoutMask) Stride() int {
	return bits.OnesCount32(uint32(m))
}

// Offset returns the position of attribute a within one sample's
// stride, i.e. the popcount of the mask bits below a's bit. The
// caller must have already checked Has(a).
func (m LayoutMask) Offset(a Attribute) int {
	bit, ok := splineAttrBits[a]
	if !ok {
		return -1
	}
	return bits.OnesCount32(uint32(m) & (uint32(bit) - 1))
}

// Attributes returns the attributes selected by m, in bit order.
func (m LayoutMask) Attributes() []Attribute {
	order := []Attribute{AttrX, AttrY, AttrZ, AttrSize, AttrRotation, AttrRed, AttrGreen, AttrBlue,
		AttrAlpha, AttrScaleX, AttrScaleY, AttrScaleZ, AttrOffsetX, AttrOffsetY, AttrOffsetZ,
		AttrTangentX, AttrTangentY}
	var out []Attribute
	for _, a := range order {
		if m.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Spline is a Catmull-Rom spline: a flat, per-sample-strided value
// array selected by layout_mask, plus the active start/end subsegment
// (spec.md §3.4).
type Spline struct {
	LayoutMask LayoutMask
	Values     []float64 // length == LayoutMask.Stride() * SampleCount()
	TStart     float64   // in [0,1]
	TEnd       float64   // in [0,1]
}

// SampleCount returns the number of samples encoded in Values.
func (s *Spline) SampleCount() int {
	stride := s.LayoutMask.Stride()
	if stride == 0 {
		return 0
	}
	return len(s.Values) / stride
}

// At returns the value of attribute a at sample i, and whether the
// spline's layout mask carries that attribute at all.
func (s *Spline) At(sample int, a Attribute) (float64, bool) {
	if !s.LayoutMask.Has(a) {
		return 0, false
	}
	stride := s.LayoutMask.Stride()
	off := s.LayoutMask.Offset(a)
	idx := sample*stride + off
	if idx < 0 || idx >= len(s.Values) {
		return 0, false
	}
	return s.Values[idx], true
}

// BoundsXY returns the min/max of the X and Y channels across all
// samples, used for stroke and group bounding-box computation
// (spec.md §4.8). ok is false for a spline with no samples or no X/Y.
func (s *Spline) BoundsXY() (minX, minY, maxX, maxY float64, ok bool) {
	n := s.SampleCount()
	if n == 0 || !s.LayoutMask.Has(AttrX) || !s.LayoutMask.Has(AttrY) {
		return 0, 0, 0, 0, false
	}
	for i := 0; i < n; i++ {
		x, _ := s.At(i, AttrX)
		y, _ := s.At(i, AttrY)
		if i == 0 {
			minX, maxX, minY, maxY = x, x, y, y
			continue
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	return minX, minY, maxX, maxY, true
}
