// uim - a library for reading and writing Universal Ink Model files
// Copyright (C) 2026 UIM Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package uim

import "math"

// KV is an ordered string key/value pair. Environment, device, and
// provider properties are kept as slices of KV rather than maps:
// iteration order feeds the Hash-Id digest, so insertion order must be
// preserved (spec.md §9 "Dynamic config maps").
type KV struct {
	Key, Value string
}

// Environment is a Hash-Id value object: an ordered list of (key,
// value) string pairs describing the capture environment (OS, app,
// screen DPI, and similar).
type Environment struct {
	Properties []KV
}

// ID recomputes the Hash-Id for this environment's current content.
func (e *Environment) ID() ID {
	comps := make([]Component, 0, 2*len(e.Properties))
	for _, kv := range e.Properties {
		comps = append(comps, StringComponent(kv.Key), StringComponent(kv.Value))
	}
	return NewHashID("Environment", comps...)
}

// InputProviderType enumerates the kinds of ink input hardware.
type InputProviderType byte

const (
	ProviderPen InputProviderType = iota
	ProviderTouch
	ProviderMouse
	ProviderController
)

// InkInputProvider is a Hash-Id value object describing one class of
// input hardware.
type InkInputProvider struct {
	Type       InputProviderType
	Properties []KV
}

func (p *InkInputProvider) ID() ID {
	comps := []Component{IntComponent(int64(p.Type))}
	for _, kv := range p.Properties {
		comps = append(comps, StringComponent(kv.Key), StringComponent(kv.Value))
	}
	return NewHashID("InkInputProvider", comps...)
}

// InputDevice is a Hash-Id value object describing one physical input
// device.
type InputDevice struct {
	Properties []KV
}

func (d *InputDevice) ID() ID {
	comps := make([]Component, 0, 2*len(d.Properties))
	for _, kv := range d.Properties {
		comps = append(comps, StringComponent(kv.Key), StringComponent(kv.Value))
	}
	return NewHashID("InputDevice", comps...)
}

// SensorChannelType is the URI naming a channel's physical quantity
// (e.g. "will://input/3.0/channel/X").
type SensorChannelType string

// Well-known sensor channel type URIs.
const (
	ChannelX         SensorChannelType = "will://input/3.0/channel/X"
	ChannelY         SensorChannelType = "will://input/3.0/channel/Y"
	ChannelZ         SensorChannelType = "will://input/3.0/channel/Z"
	ChannelTimestamp SensorChannelType = "will://input/3.0/channel/Timestamp"
	ChannelPressure  SensorChannelType = "will://input/3.0/channel/Pressure"
	ChannelRadiusX   SensorChannelType = "will://input/3.0/channel/RadiusX"
	ChannelRadiusY   SensorChannelType = "will://input/3.0/channel/RadiusY"
	ChannelAzimuth   SensorChannelType = "will://input/3.0/channel/Azimuth"
	ChannelAltitude  SensorChannelType = "will://input/3.0/channel/Altitude"
	ChannelRotation  SensorChannelType = "will://input/3.0/channel/Rotation"
)

// Metric is the physical unit family a sensor channel is measured in.
type Metric byte

const (
	MetricLength Metric = iota
	MetricTime
	MetricForce
	MetricAngle
	MetricNormalized
)

// SensorChannel is a Hash-Id value object describing one raw-sample
// channel: its physical meaning, wire resolution, declared bounds, and
// which provider/device it belongs to.
type SensorChannel struct {
	Type       SensorChannelType
	Metric     Metric
	Resolution float64 // power-of-10 scale applied before delta-encoding
	Min, Max   float64
	Precision  int // decimal digits of precision
	Index      int
	Name       string
	DataType   string
	ProviderID *ID
	DeviceID   *ID
}

func (c *SensorChannel) ID() ID {
	providerTok := AbsentComponent
	if c.ProviderID != nil {
		providerTok = StringComponent(c.ProviderID.SForm())
	}
	deviceTok := AbsentComponent
	if c.DeviceID != nil {
		deviceTok = StringComponent(c.DeviceID.SForm())
	}
	return NewHashID("SensorChannel",
		StringComponent(string(c.Type)),
		IntComponent(int64(c.Metric)),
		FloatComponent(c.Resolution),
		FloatComponent(c.Min),
		FloatComponent(c.Max),
		IntComponent(int64(c.Precision)),
		IntComponent(int64(c.Index)),
		StringComponent(c.Name),
		StringComponent(c.DataType),
		providerTok,
		deviceTok,
	)
}

// InRange reports whether v lies within [Min, Max], when both bounds
// are finite; otherwise every value is accepted (spec.md §8 "Channel
// value bounds"). A channel whose Min and Max are both zero is treated
// as unbounded.
func (c *SensorChannel) InRange(v float64) bool {
	if (c.Min == 0 && c.Max == 0) || math.IsInf(c.Min, 0) || math.IsInf(c.Max, 0) {
		return true
	}
	return v >= c.Min && v <= c.Max
}

// SensorChannelsContext is a Hash-Id value object grouping the
// channels sampled together by one provider/device pairing.
type SensorChannelsContext struct {
	Channels         []*SensorChannel
	SamplingRateHint *int
	LatencyMs        *float64
	ProviderID       *ID
	DeviceID         *ID
}

func (c *SensorChannelsContext) ID() ID {
	comps := make([]Component, 0, len(c.Channels)+4)
	for _, ch := range c.Channels {
		comps = append(comps, StringComponent(ch.ID().SForm()))
	}
	if c.SamplingRateHint != nil {
		comps = append(comps, IntComponent(int64(*c.SamplingRateHint)))
	} else {
		comps = append(comps, AbsentComponent)
	}
	if c.LatencyMs != nil {
		comps = append(comps, FloatComponent(*c.LatencyMs))
	} else {
		comps = append(comps, AbsentComponent)
	}
	if c.ProviderID != nil {
		comps = append(comps, StringComponent(c.ProviderID.SForm()))
	} else {
		comps = append(comps, AbsentComponent)
	}
	if c.DeviceID != nil {
		comps = append(comps, StringComponent(c.DeviceID.SForm()))
	} else {
		comps = append(comps, AbsentComponent)
	}
	return NewHashID("SensorChannelsContext", comps...)
}

// SensorContext is a Hash-Id value object grouping one or more
// channel contexts.
type SensorContext struct {
	ChannelsContexts []*SensorChannelsContext
}

func (c *SensorContext) ID() ID {
	comps := make([]Component, 0, len(c.ChannelsContexts))
	for _, cc := range c.ChannelsContexts {
		comps = append(comps, StringComponent(cc.ID().SForm()))
	}
	return NewHashID("SensorContext", comps...)
}

// InputContext is a Hash-Id value object pairing one environment with
// one sensor context.
type InputContext struct {
	EnvironmentID   ID
	SensorContextID ID
}

func (c *InputContext) ID() ID {
	return NewHashID("InputContext",
		StringComponent(c.EnvironmentID.SForm()),
		StringComponent(c.SensorContextID.SForm()),
	)
}
