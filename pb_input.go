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

import "google.golang.org/protobuf/encoding/protowire"

// Wire field numbers for the INPT chunk's InputConfigData message and
// its nested messages (spec.md §4.9 Table 1, item 1). SensorChannel
// and SensorChannelsContext have no top-level list: like
// [InputConfigRepository], they are only reachable transitively
// through a SensorContext's channel contexts.
const (
	fKVKey   protowire.Number = 1
	fKVValue protowire.Number = 2

	fEnvProperties protowire.Number = 1

	fProviderType       protowire.Number = 1
	fProviderProperties protowire.Number = 2

	fDeviceProperties protowire.Number = 1

	fChanType       protowire.Number = 1
	fChanMetric     protowire.Number = 2
	fChanResolution protowire.Number = 3
	fChanMin        protowire.Number = 4
	fChanMax        protowire.Number = 5
	fChanPrecision  protowire.Number = 6
	fChanIndex      protowire.Number = 7
	fChanName       protowire.Number = 8
	fChanDataType   protowire.Number = 9
	fChanProviderID protowire.Number = 10
	fChanDeviceID   protowire.Number = 11

	fCCChannels      protowire.Number = 1
	fCCSamplingRate  protowire.Number = 2
	fCCLatencyMs     protowire.Number = 3
	fCCProviderID    protowire.Number = 4
	fCCDeviceID      protowire.Number = 5
	fCCHasSampling   protowire.Number = 6
	fCCHasLatency    protowire.Number = 7

	fSCChannelContexts protowire.Number = 1

	fICEnvironmentID   protowire.Number = 1
	fICSensorContextID protowire.Number = 2

	fSDID             protowire.Number = 1
	fSDInputContextID protowire.Number = 2
	fSDState          protowire.Number = 3
	fSDTimestamp      protowire.Number = 4
	fSDChannels       protowire.Number = 5

	fCDSensorChannelID protowire.Number = 1
	fCDDeltas          protowire.Number = 2

	fICDEnvironments   protowire.Number = 1
	fICDProviders      protowire.Number = 2
	fICDDevices        protowire.Number = 3
	fICDSensorContexts protowire.Number = 4
	fICDInputContexts  protowire.Number = 5
	fICDSensorData     protowire.Number = 6
)

func marshalKV(kv KV) []byte {
	var b []byte
	b = appendTagString(b, fKVKey, kv.Key)
	b = appendTagString(b, fKVValue, kv.Value)
	return b
}

func unmarshalKV(buf []byte) (KV, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return KV{}, err
	}
	var kv KV
	for _, f := range fields {
		switch f.Num {
		case fKVKey:
			kv.Key = string(f.Buf)
		case fKVValue:
			kv.Value = string(f.Buf)
		}
	}
	return kv, nil
}

func marshalEnvironment(e *Environment) []byte {
	var b []byte
	for _, kv := range e.Properties {
		b = appendTagMessage(b, fEnvProperties, marshalKV(kv))
	}
	return b
}

func unmarshalEnvironment(buf []byte) (*Environment, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	e := &Environment{}
	for _, f := range fields {
		if f.Num == fEnvProperties {
			kv, err := unmarshalKV(f.Buf)
			if err != nil {
				return nil, err
			}
			e.Properties = append(e.Properties, kv)
		}
	}
	return e, nil
}

func marshalProvider(p *InkInputProvider) []byte {
	var b []byte
	b = appendTagVarint(b, fProviderType, uint64(p.Type))
	for _, kv := range p.Properties {
		b = appendTagMessage(b, fProviderProperties, marshalKV(kv))
	}
	return b
}

func unmarshalProvider(buf []byte) (*InkInputProvider, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	p := &InkInputProvider{}
	for _, f := range fields {
		switch f.Num {
		case fProviderType:
			p.Type = InputProviderType(f.U64)
		case fProviderProperties:
			kv, err := unmarshalKV(f.Buf)
			if err != nil {
				return nil, err
			}
			p.Properties = append(p.Properties, kv)
		}
	}
	return p, nil
}

func marshalDevice(d *InputDevice) []byte {
	var b []byte
	for _, kv := range d.Properties {
		b = appendTagMessage(b, fDeviceProperties, marshalKV(kv))
	}
	return b
}

func unmarshalDevice(buf []byte) (*InputDevice, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	d := &InputDevice{}
	for _, f := range fields {
		if f.Num == fDeviceProperties {
			kv, err := unmarshalKV(f.Buf)
			if err != nil {
				return nil, err
			}
			d.Properties = append(d.Properties, kv)
		}
	}
	return d, nil
}

func marshalChannel(c *SensorChannel) []byte {
	var b []byte
	b = appendTagString(b, fChanType, string(c.Type))
	b = appendTagVarint(b, fChanMetric, uint64(c.Metric))
	b = appendTagDouble(b, fChanResolution, c.Resolution)
	b = appendTagDouble(b, fChanMin, c.Min)
	b = appendTagDouble(b, fChanMax, c.Max)
	b = appendTagVarint(b, fChanPrecision, uint64(c.Precision))
	b = appendTagVarint(b, fChanIndex, uint64(c.Index))
	b = appendTagString(b, fChanName, c.Name)
	b = appendTagString(b, fChanDataType, c.DataType)
	if c.ProviderID != nil {
		b = appendTagID(b, fChanProviderID, *c.ProviderID)
	}
	if c.DeviceID != nil {
		b = appendTagID(b, fChanDeviceID, *c.DeviceID)
	}
	return b
}

func unmarshalChannel(buf []byte) (*SensorChannel, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	c := &SensorChannel{}
	for _, f := range fields {
		switch f.Num {
		case fChanType:
			c.Type = SensorChannelType(f.Buf)
		case fChanMetric:
			c.Metric = Metric(f.U64)
		case fChanResolution:
			c.Resolution = f.Double()
		case fChanMin:
			c.Min = f.Double()
		case fChanMax:
			c.Max = f.Double()
		case fChanPrecision:
			c.Precision = int(f.U64)
		case fChanIndex:
			c.Index = int(f.U64)
		case fChanName:
			c.Name = string(f.Buf)
		case fChanDataType:
			c.DataType = string(f.Buf)
		case fChanProviderID:
			id := f.ID()
			c.ProviderID = &id
		case fChanDeviceID:
			id := f.ID()
			c.DeviceID = &id
		}
	}
	return c, nil
}

func marshalChannelsContext(cc *SensorChannelsContext) []byte {
	var b []byte
	for _, ch := range cc.Channels {
		b = appendTagMessage(b, fCCChannels, marshalChannel(ch))
	}
	if cc.SamplingRateHint != nil {
		b = appendTagBool(b, fCCHasSampling, true)
		b = appendTagVarint(b, fCCSamplingRate, uint64(*cc.SamplingRateHint))
	}
	if cc.LatencyMs != nil {
		b = appendTagBool(b, fCCHasLatency, true)
		b = appendTagDouble(b, fCCLatencyMs, *cc.LatencyMs)
	}
	if cc.ProviderID != nil {
		b = appendTagID(b, fCCProviderID, *cc.ProviderID)
	}
	if cc.DeviceID != nil {
		b = appendTagID(b, fCCDeviceID, *cc.DeviceID)
	}
	return b
}

func unmarshalChannelsContext(buf []byte) (*SensorChannelsContext, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	cc := &SensorChannelsContext{}
	var hasSampling, hasLatency bool
	var samplingRate uint64
	var latency float64
	for _, f := range fields {
		switch f.Num {
		case fCCChannels:
			ch, err := unmarshalChannel(f.Buf)
			if err != nil {
				return nil, err
			}
			cc.Channels = append(cc.Channels, ch)
		case fCCSamplingRate:
			samplingRate = f.U64
		case fCCLatencyMs:
			latency = f.Double()
		case fCCHasSampling:
			hasSampling = f.Bool()
		case fCCHasLatency:
			hasLatency = f.Bool()
		case fCCProviderID:
			id := f.ID()
			cc.ProviderID = &id
		case fCCDeviceID:
			id := f.ID()
			cc.DeviceID = &id
		}
	}
	if hasSampling {
		v := int(samplingRate)
		cc.SamplingRateHint = &v
	}
	if hasLatency {
		cc.LatencyMs = &latency
	}
	return cc, nil
}

func marshalSensorContext(sc *SensorContext) []byte {
	var b []byte
	for _, cc := range sc.ChannelsContexts {
		b = appendTagMessage(b, fSCChannelContexts, marshalChannelsContext(cc))
	}
	return b
}

func unmarshalSensorContext(buf []byte) (*SensorContext, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	sc := &SensorContext{}
	for _, f := range fields {
		if f.Num == fSCChannelContexts {
			cc, err := unmarshalChannelsContext(f.Buf)
			if err != nil {
				return nil, err
			}
			sc.ChannelsContexts = append(sc.ChannelsContexts, cc)
		}
	}
	return sc, nil
}

func marshalInputContext(ic *InputContext) []byte {
	var b []byte
	b = appendTagID(b, fICEnvironmentID, ic.EnvironmentID)
	b = appendTagID(b, fICSensorContextID, ic.SensorContextID)
	return b
}

func unmarshalInputContext(buf []byte) (*InputContext, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	ic := &InputContext{}
	for _, f := range fields {
		switch f.Num {
		case fICEnvironmentID:
			ic.EnvironmentID = f.ID()
		case fICSensorContextID:
			ic.SensorContextID = f.ID()
		}
	}
	return ic, nil
}

func marshalChannelData(cd *ChannelData) []byte {
	var b []byte
	b = appendTagID(b, fCDSensorChannelID, cd.SensorChannelID)
	b = appendPackedDoubles(b, fCDDeltas, deltaEncode(cd.Values))
	return b
}

func unmarshalChannelData(buf []byte) (*ChannelData, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	cd := &ChannelData{}
	for _, f := range fields {
		switch f.Num {
		case fCDSensorChannelID:
			cd.SensorChannelID = f.ID()
		case fCDDeltas:
			deltas, err := consumePackedDoubles(f.Buf)
			if err != nil {
				return nil, err
			}
			cd.Values = deltaDecode(deltas)
		}
	}
	return cd, nil
}

func marshalSensorData(sd *SensorData) []byte {
	var b []byte
	b = appendTagID(b, fSDID, sd.ID)
	b = appendTagID(b, fSDInputContextID, sd.InputContextID)
	b = appendTagVarint(b, fSDState, uint64(sd.State))
	b = appendTagDouble(b, fSDTimestamp, sd.TimestampFirstMs)
	for _, c := range sd.Channels {
		b = appendTagMessage(b, fSDChannels, marshalChannelData(c))
	}
	return b
}

func unmarshalSensorData(buf []byte) (*SensorData, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	sd := &SensorData{}
	for _, f := range fields {
		switch f.Num {
		case fSDID:
			sd.ID = f.ID()
		case fSDInputContextID:
			sd.InputContextID = f.ID()
		case fSDState:
			sd.State = SensorState(f.U64)
		case fSDTimestamp:
			sd.TimestampFirstMs = f.Double()
		case fSDChannels:
			cd, err := unmarshalChannelData(f.Buf)
			if err != nil {
				return nil, err
			}
			sd.Channels = append(sd.Channels, cd)
		}
	}
	return sd, nil
}

// marshalInputConfigData serializes the whole INPT chunk payload: the
// input-configuration repository plus every sensor-data frame.
func marshalInputConfigData(cfg *InputConfigRepository, sensor *SensorDataRepository) []byte {
	var b []byte
	for _, e := range cfg.Environments() {
		b = appendTagMessage(b, fICDEnvironments, marshalEnvironment(e))
	}
	for _, p := range cfg.Providers() {
		b = appendTagMessage(b, fICDProviders, marshalProvider(p))
	}
	for _, d := range cfg.Devices() {
		b = appendTagMessage(b, fICDDevices, marshalDevice(d))
	}
	for _, sc := range cfg.SensorContexts() {
		b = appendTagMessage(b, fICDSensorContexts, marshalSensorContext(sc))
	}
	for _, ic := range cfg.InputContexts() {
		b = appendTagMessage(b, fICDInputContexts, marshalInputContext(ic))
	}
	for _, sd := range sensor.All() {
		b = appendTagMessage(b, fICDSensorData, marshalSensorData(sd))
	}
	return b
}

// unmarshalInputConfigData reverses [marshalInputConfigData], rebuilding
// both repositories. Hash-Id value objects are re-inserted through the
// repository's idempotent Add* methods, which recompute each one's id
// from its decoded content rather than trusting anything from the wire
// (spec.md §4.9 "re-hashes Hash-Id objects defensively").
func unmarshalInputConfigData(buf []byte) (*InputConfigRepository, *SensorDataRepository, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, nil, err
	}
	cfg := NewInputConfigRepository()
	sensor := NewSensorDataRepository()
	for _, f := range fields {
		switch f.Num {
		case fICDEnvironments:
			e, err := unmarshalEnvironment(f.Buf)
			if err != nil {
				return nil, nil, err
			}
			cfg.AddEnvironment(e)
		case fICDProviders:
			p, err := unmarshalProvider(f.Buf)
			if err != nil {
				return nil, nil, err
			}
			cfg.AddProvider(p)
		case fICDDevices:
			d, err := unmarshalDevice(f.Buf)
			if err != nil {
				return nil, nil, err
			}
			cfg.AddDevice(d)
		case fICDSensorContexts:
			sc, err := unmarshalSensorContext(f.Buf)
			if err != nil {
				return nil, nil, err
			}
			cfg.AddSensorContext(sc)
		case fICDInputContexts:
			ic, err := unmarshalInputContext(f.Buf)
			if err != nil {
				return nil, nil, err
			}
			cfg.AddInputContext(ic)
		case fICDSensorData:
			sd, err := unmarshalSensorData(f.Buf)
			if err != nil {
				return nil, nil, err
			}
			sensor.Add(sd)
		}
	}
	return cfg, sensor, nil
}
