package uim

import "math"

// Stroke is a Random-Id leaf value: one spline plus the style and
// optional sensor-data linkage that let it be re-rendered (spec.md
// §3.4/§4.5).
type Stroke struct {
	ID ID

	Spline Spline
	Style  *Style

	// SensorDataID, when non-nil, is the frame this stroke's raw
	// samples were captured from. SensorDataOffset is the index of the
	// first sensor sample the spline's first point corresponds to;
	// SensorDataMapping maps each spline sample index to a sensor
	// sample index, for strokes resampled away from 1:1 correspondence.
	SensorDataID      *ID
	SensorDataOffset  int
	SensorDataMapping []int

	RandomSeed uint64

	// Precision, when non-nil, overrides the model-level precision
	// scheme for decoding this stroke's packed values.
	Precision *PrecisionScheme
}

// NewStroke returns a Stroke with a freshly assigned Random-Id.
func NewStroke(spline Spline, style *Style) *Stroke {
	return &Stroke{ID: NewRandomID(), Spline: spline, Style: style}
}

// MissingDataPolicy controls how [Stroke.ExportStrided] handles a
// requested attribute the stroke's layout mask doesn't carry
// (spec.md §4.6).
type MissingDataPolicy int

const (
	FillWithZeros MissingDataPolicy = iota
	FillWithNaN
	SkipStroke
	ThrowOnMissing
)

// sensorChannelTypeFor returns the well-known channel type a
// sensor-plane attribute resolves through, and false for a spline
// attribute (which has no channel type of its own).
func sensorChannelTypeFor(a Attribute) (SensorChannelType, bool) {
	switch a {
	case AttrTimestamp:
		return ChannelTimestamp, true
	case AttrPressure:
		return ChannelPressure, true
	case AttrAltitude:
		return ChannelAltitude, true
	case AttrAzimuth:
		return ChannelAzimuth, true
	case AttrRadiusX:
		return ChannelRadiusX, true
	case AttrRadiusY:
		return ChannelRadiusY, true
	case AttrSensorRotation:
		return ChannelRotation, true
	default:
		return "", false
	}
}

// resolveSensorChannel finds the channel data, within the stroke's
// own linked sensor-data frame, whose declared channel type matches
// channelType. It returns false if the stroke carries no sensor-data
// link, the frame can't be found, or no channel of that type is
// present in it.
func resolveSensorChannel(m *InkModel, s *Stroke, channelType SensorChannelType) (*ChannelData, bool) {
	if m == nil || s.SensorDataID == nil {
		return nil, false
	}
	frame, err := m.SensorData.Get(*s.SensorDataID)
	if err != nil {
		return nil, false
	}
	for _, cd := range frame.Channels {
		ch, err := m.InputConfig.Channel(cd.SensorChannelID)
		if err != nil {
			continue
		}
		if ch.Type == channelType {
			return cd, true
		}
	}
	return nil, false
}

// sensorSampleIndex maps a spline sample index to its index within a
// linked sensor channel's Values: through SensorDataMapping if the
// stroke has been resampled away from 1:1 correspondence, otherwise
// offset by SensorDataOffset.
func (s *Stroke) sensorSampleIndex(sampleIdx int) int {
	if sampleIdx < len(s.SensorDataMapping) {
		return s.SensorDataMapping[sampleIdx]
	}
	return s.SensorDataOffset + sampleIdx
}

func fillValue(policy MissingDataPolicy) float64 {
	if policy == FillWithNaN {
		return math.NaN()
	}
	return 0
}

// ExportStrided returns the stroke's samples laid out as one flat
// array strided by len(attrs), in the requested attribute order. A
// spline attribute is read straight from the stroke's own Spline; a
// sensor-plane attribute (TIMESTAMP, PRESSURE, ALTITUDE, AZIMUTH,
// RADIUS_X/Y, ROTATION_SENSOR) is resolved through m, by finding the
// stroke's linked [SensorData] frame and the channel within it whose
// declared type matches, then indexed per sample via
// [Stroke.sensorSampleIndex]. m may be nil if every requested
// attribute is a spline attribute. An attribute that can't be
// resolved this way is handled per policy: zero-filled, NaN-filled, or
// (SkipStroke / ThrowOnMissing) turned into a skip or error reported
// via ok/err.
//
// ThrowOnMissing and SkipStroke both cause a stroke lacking any
// requested attribute to be excluded; they differ only in that
// ThrowOnMissing additionally returns a non-nil error, for callers
// that want to distinguish "intentionally sparse export" from "caller
// asked for data that isn't there".
func (s *Stroke) ExportStrided(m *InkModel, attrs []Attribute, policy MissingDataPolicy) (values []float64, ok bool, err error) {
	channels := make([]*ChannelData, len(attrs))
	for i, a := range attrs {
		if !IsSensorAttribute(a) {
			if s.Spline.LayoutMask.Has(a) {
				continue
			}
		} else if channelType, known := sensorChannelTypeFor(a); known {
			if cd, found := resolveSensorChannel(m, s, channelType); found {
				channels[i] = cd
				continue
			}
		}
		switch policy {
		case SkipStroke:
			return nil, false, nil
		case ThrowOnMissing:
			return nil, false, &OutOfRangeError{Field: "attribute", Value: a}
		}
	}

	n := s.Spline.SampleCount()
	out := make([]float64, 0, n*len(attrs))
	for i := 0; i < n; i++ {
		for j, a := range attrs {
			if cd := channels[j]; cd != nil {
				if idx := s.sensorSampleIndex(i); idx >= 0 && idx < len(cd.Values) {
					out = append(out, cd.Values[idx])
					continue
				}
				out = append(out, fillValue(policy))
				continue
			}
			if v, has := s.Spline.At(i, a); has {
				out = append(out, v)
				continue
			}
			out = append(out, fillValue(policy))
		}
	}
	return out, true, nil
}

// BoundingBox returns the stroke's axis-aligned bounds in its own
// spline's X/Y coordinates, or ok=false if the spline carries no X/Y
// samples (spec.md §4.8).
func (s *Stroke) BoundingBox() (minX, minY, maxX, maxY float64, ok bool) {
	return s.Spline.BoundsXY()
}
