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

package uim_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/digink/uim"
)

// inputConfigFixture is the YAML shape of a test input-configuration
// fixture: one environment, one device, and one sensor channel, kept
// separate from the wire format so fixtures stay readable by hand.
type inputConfigFixture struct {
	Environment map[string]string `yaml:"environment"`
	Device      map[string]string `yaml:"device"`
	Channel     struct {
		Type       string  `yaml:"type"`
		Resolution float64 `yaml:"resolution"`
		Name       string  `yaml:"name"`
		DataType   string  `yaml:"data_type"`
	} `yaml:"channel"`
}

const penFixtureYAML = `
environment:
  os: "android-14"
  app: "com.example.notes"
device:
  manufacturer: "Acme"
  model: "Stylus One"
channel:
  type: "will://input/3.0/channel/Pressure"
  resolution: 4095
  name: "pressure"
  data_type: "uint16"
`

func orderedKV(m map[string]string, keys []string) []uim.KV {
	kvs := make([]uim.KV, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, uim.KV{Key: k, Value: m[k]})
	}
	return kvs
}

func TestInputConfigRepositoryFromYAMLFixture(t *testing.T) {
	var fixture inputConfigFixture
	require.NoError(t, yaml.Unmarshal([]byte(penFixtureYAML), &fixture))

	env := &uim.Environment{Properties: orderedKV(fixture.Environment, []string{"os", "app"})}
	device := &uim.InputDevice{Properties: orderedKV(fixture.Device, []string{"manufacturer", "model"})}
	channel := &uim.SensorChannel{
		Type:       uim.SensorChannelType(fixture.Channel.Type),
		Resolution: fixture.Channel.Resolution,
		Name:       fixture.Channel.Name,
		DataType:   fixture.Channel.DataType,
	}

	repo := uim.NewInputConfigRepository()
	envID := repo.AddEnvironment(env)
	deviceID := repo.AddDevice(device)
	channel.DeviceID = &deviceID

	gotEnv, err := repo.Environment(envID)
	require.NoError(t, err)
	require.Equal(t, env, gotEnv)

	gotDevice, err := repo.Device(deviceID)
	require.NoError(t, err)
	require.Equal(t, device, gotDevice)

	// Re-decoding the same fixture and re-inserting must land on the
	// same Hash-Id: the whole point of a content-addressed repository
	// is that describing the same environment twice never duplicates it.
	var reloaded inputConfigFixture
	require.NoError(t, yaml.Unmarshal([]byte(penFixtureYAML), &reloaded))
	againEnv := &uim.Environment{Properties: orderedKV(reloaded.Environment, []string{"os", "app"})}
	require.Equal(t, envID, repo.AddEnvironment(againEnv))
	require.Len(t, repo.Environments(), 1)

	channelCtx := &uim.SensorChannelsContext{Channels: []*uim.SensorChannel{channel}, DeviceID: &deviceID}
	sensorCtx := &uim.SensorContext{ChannelsContexts: []*uim.SensorChannelsContext{channelCtx}}
	sensorCtxID := repo.AddSensorContext(sensorCtx)

	inputCtx := &uim.InputContext{EnvironmentID: envID, SensorContextID: sensorCtxID}
	inputCtxID := repo.AddInputContext(inputCtx)

	ids, err := repo.AllChannelIDsFor(inputCtxID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	require.Equal(t, channel.ID(), ids[0])
}

func TestInputConfigRepositoryRejectsUnknownInputContext(t *testing.T) {
	repo := uim.NewInputConfigRepository()
	_, err := repo.AllChannelIDsFor(uim.NewRandomID())
	require.Error(t, err)
}
