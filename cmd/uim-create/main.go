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

// Command uim-create builds a small single-stroke document (the same
// shape as spec.md's scenario 2: one pen provider, one device, one
// TIMESTAMP-only channel context, one sensor-data frame, one vector
// brush, one stroke, one main-tree root) and writes it to the path
// given on the command line, mirroring the teacher's demo/* commands
// that construct a minimal PDF by hand and write it out.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/digink/uim"
)

func main() {
	compress := flag.String("compress", "none", "chunk compression: none, zip, or lzma")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: uim-create [-compress none|zip|lzma] <out.uim>")
		os.Exit(1)
	}

	m, err := buildSampleModel()
	check(err)

	compression, err := parseCompression(*compress)
	check(err)

	data, err := uim.EncodeCompressed(m, compression)
	check(err)

	check(os.WriteFile(flag.Arg(0), data, 0o644))
}

func parseCompression(s string) (uim.CompressionType, error) {
	switch s {
	case "none":
		return uim.CompressionNone, nil
	case "zip":
		return uim.CompressionZIP, nil
	case "lzma":
		return uim.CompressionLZMA, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

func buildSampleModel() (*uim.InkModel, error) {
	m := uim.NewInkModel()
	m.UnitScaleFactor = 1.0

	provider := &uim.InkInputProvider{Type: uim.ProviderPen}
	device := &uim.InputDevice{Properties: []uim.KV{
		{Key: uim.DeviceManufacturerProperty, Value: "Acme"},
		{Key: uim.DeviceModelProperty, Value: "Stylus One"},
	}}
	channel := &uim.SensorChannel{
		Type: uim.ChannelTimestamp, Metric: uim.MetricTime, Resolution: 1, Min: 0, Max: 0,
		Precision: 0, Index: 0, Name: "timestamp", DataType: "uint32",
	}
	providerID := m.InputConfig.AddProvider(provider)
	deviceID := m.InputConfig.AddDevice(device)
	channel.ProviderID = &providerID
	channel.DeviceID = &deviceID
	channelCtx := &uim.SensorChannelsContext{Channels: []*uim.SensorChannel{channel}, ProviderID: &providerID, DeviceID: &deviceID}
	sensorCtx := &uim.SensorContext{ChannelsContexts: []*uim.SensorChannelsContext{channelCtx}}
	env := &uim.Environment{}

	sensorCtxID := m.InputConfig.AddSensorContext(sensorCtx)
	envID := m.InputConfig.AddEnvironment(env)
	inputCtx := &uim.InputContext{EnvironmentID: envID, SensorContextID: sensorCtxID}
	inputCtxID := m.InputConfig.AddInputContext(inputCtx)

	sensorData := &uim.SensorData{
		ID:               uim.NewRandomID(),
		InputContextID:   inputCtxID,
		TimestampFirstMs: 100,
		Channels: []*uim.ChannelData{
			{SensorChannelID: channel.ID(), Values: []float64{100, 107, 115}},
		},
	}
	m.SensorData.Add(sensorData)

	brush := &uim.VectorBrush{
		Name:    "app://qa-test-app/vector-brush/MyTriangleBrush",
		Spacing: 1,
		Prototypes: []*uim.VectorBrushPrototype{
			{MinScale: 0, Points: []uim.BrushPoint{
				{X: 0, Y: 0, Size: 1, Alpha: 1},
				{X: 1, Y: 0, Size: 1, Alpha: 1},
				{X: 0.5, Y: 1, Size: 1, Alpha: 1},
			}},
		},
	}
	if err := m.Brushes.AddVectorBrush(brush); err != nil {
		return nil, err
	}

	mask := uim.MaskX | uim.MaskY | uim.MaskSize
	spline := uim.Spline{LayoutMask: mask, Values: []float64{10, 10, 1, 20, 10, 1, 20, 20, 1}}
	style := uim.NewStyle(brush.Name, nil)
	stroke := uim.NewStroke(spline, style)
	stroke.SensorDataID = &sensorData.ID
	m.Strokes.Add(stroke)

	tree := uim.NewInkTree("")
	if err := m.SetMainTree(tree); err != nil {
		return nil, err
	}
	root := uim.NewStrokeGroupNode()
	if err := tree.SetRoot(m, root); err != nil {
		return nil, err
	}
	ref := uim.NewStrokeRefNode(stroke.ID, nil)
	if _, err := tree.AddChild(m, tree.RootIndex, ref); err != nil {
		return nil, err
	}

	return m, nil
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
