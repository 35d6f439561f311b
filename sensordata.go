package uim

// SensorState is the stylus/touch tracking state a frame was captured
// in.
type SensorState byte

const (
	StatePlane SensorState = iota
	StateHovering
	StateInVolume
	StateVolumeHovering
	StateStartTracking
	StateStopTracking
)

// ChannelData holds one channel's raw sample values for a
// [SensorData] frame, always surfaced as absolute values in memory.
// For a TIMESTAMP channel the first on-wire value is absolute
// milliseconds and the rest are positive deltas; every other channel
// is absolute in memory but delta-encoded on the wire relative to its
// own first sample (spec.md §3.3).
type ChannelData struct {
	SensorChannelID ID
	Values          []float64
}

// SensorData is a Random-Id frame of raw per-sample data, immutable
// once inserted into a [SensorDataRepository] (spec.md §3.3).
type SensorData struct {
	ID                  ID
	InputContextID      ID
	State               SensorState
	TimestampFirstMs    float64
	Channels            []*ChannelData
}

// ChannelByID returns the frame's channel data for the given sensor
// channel id, or nil if the frame carries no such channel.
func (s *SensorData) ChannelByID(id ID) *ChannelData {
	for _, c := range s.Channels {
		if c.SensorChannelID == id {
			return c
		}
	}
	return nil
}

// deltaEncode returns the first-difference stream of vs: the first
// element unchanged, each subsequent element replaced by its
// difference from the previous absolute value.
func deltaEncode(vs []float64) []float64 {
	if len(vs) == 0 {
		return nil
	}
	out := make([]float64, len(vs))
	out[0] = vs[0]
	for i := 1; i < len(vs); i++ {
		out[i] = vs[i] - vs[i-1]
	}
	return out
}

// deltaDecode reverses [deltaEncode].
func deltaDecode(vs []float64) []float64 {
	if len(vs) == 0 {
		return nil
	}
	out := make([]float64, len(vs))
	out[0] = vs[0]
	for i := 1; i < len(vs); i++ {
		out[i] = out[i-1] + vs[i]
	}
	return out
}

// SensorDataRepository maps Random-Id to immutable sensor-data frames,
// preserving insertion order for round-trip stability (spec.md §4.4).
type SensorDataRepository struct {
	order []*SensorData
	byID  map[ID]*SensorData
}

// NewSensorDataRepository returns an empty repository.
func NewSensorDataRepository() *SensorDataRepository {
	return &SensorDataRepository{byID: make(map[ID]*SensorData)}
}

// Add inserts a frame, assigning it a random id if it doesn't already
// have one.
func (r *SensorDataRepository) Add(frame *SensorData) ID {
	if frame.ID.IsZero() {
		frame.ID = NewRandomID()
	}
	if _, seen := r.byID[frame.ID]; !seen {
		r.order = append(r.order, frame)
	}
	r.byID[frame.ID] = frame
	return frame.ID
}

// Get looks up a frame by id.
func (r *SensorDataRepository) Get(id ID) (*SensorData, error) {
	if f, ok := r.byID[id]; ok {
		return f, nil
	}
	return nil, &NotFoundError{Kind: "sensor data", Key: id.SForm()}
}

// All returns every frame in insertion order.
func (r *SensorDataRepository) All() []*SensorData { return r.order }

// Len reports how many frames the repository holds.
func (r *SensorDataRepository) Len() int { return len(r.order) }
