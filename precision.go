package uim

// PrecisionScheme packs five per-channel integer decimal precisions
// (position, size, rotation, scale, offset) into a single 32-bit mask,
// per spec.md §4.2. Each field is 6 bits wide (0..63), at shifts 0, 6,
// 12, 18, 24. See DESIGN.md for why this is wider than the 4-bit fields
// used by original_source/uim/codec/context/scheme.py.
type PrecisionScheme uint32

const (
	precisionShiftPosition = 0
	precisionShiftSize     = 6
	precisionShiftRotation = 12
	precisionShiftScale    = 18
	precisionShiftOffset   = 24
	precisionFieldMask     = 0x3F
)

// NewPrecisionScheme builds a scheme from its five subfields. Values
// outside 0..63 are masked down silently, matching the packed-bitfield
// semantics of the wire format.
func NewPrecisionScheme(position, size, rotation, scale, offset int) PrecisionScheme {
	return PrecisionScheme(
		uint32(position&precisionFieldMask)<<precisionShiftPosition |
			uint32(size&precisionFieldMask)<<precisionShiftSize |
			uint32(rotation&precisionFieldMask)<<precisionShiftRotation |
			uint32(scale&precisionFieldMask)<<precisionShiftScale |
			uint32(offset&precisionFieldMask)<<precisionShiftOffset,
	)
}

func (p PrecisionScheme) Position() int { return int(p>>precisionShiftPosition) & precisionFieldMask }
func (p PrecisionScheme) Size() int     { return int(p>>precisionShiftSize) & precisionFieldMask }
func (p PrecisionScheme) Rotation() int { return int(p>>precisionShiftRotation) & precisionFieldMask }
func (p PrecisionScheme) Scale() int    { return int(p>>precisionShiftScale) & precisionFieldMask }
func (p PrecisionScheme) Offset() int   { return int(p>>precisionShiftOffset) & precisionFieldMask }

// IsZero reports whether every subfield is zero, in which case no
// stream is scaled and values are encoded as unscaled floats.
func (p PrecisionScheme) IsZero() bool { return p == 0 }
