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
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/digink/uim"
)

func TestExportStridedResolvesSensorAttributeFromLinkedFrame(t *testing.T) {
	m := uim.NewInkModel()

	pressure := &uim.SensorChannel{Type: uim.ChannelPressure, Name: "pressure"}
	pressureID := m.InputConfig.AddChannel(pressure)

	frame := &uim.SensorData{
		Channels: []*uim.ChannelData{
			{SensorChannelID: pressureID, Values: []float64{0.1, 0.4, 0.9}},
		},
	}
	frameID := m.SensorData.Add(frame)

	stroke := uim.NewStroke(uim.Spline{LayoutMask: uim.MaskX | uim.MaskY, Values: []float64{0, 0, 1, 1, 2, 2}}, nil)
	stroke.SensorDataID = &frameID
	m.Strokes.Add(stroke)

	values, ok, err := stroke.ExportStrided(m, []uim.Attribute{uim.AttrX, uim.AttrPressure}, uim.FillWithZeros)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float64{0, 0.1, 1, 0.4, 2, 0.9}, values)
}

func TestExportStridedAppliesSensorDataOffset(t *testing.T) {
	m := uim.NewInkModel()

	timestamp := &uim.SensorChannel{Type: uim.ChannelTimestamp, Name: "timestamp"}
	tsID := m.InputConfig.AddChannel(timestamp)

	frame := &uim.SensorData{
		Channels: []*uim.ChannelData{
			{SensorChannelID: tsID, Values: []float64{100, 150, 200, 250, 300}},
		},
	}
	frameID := m.SensorData.Add(frame)

	stroke := uim.NewStroke(uim.Spline{LayoutMask: uim.MaskX, Values: []float64{0, 1, 2}}, nil)
	stroke.SensorDataID = &frameID
	stroke.SensorDataOffset = 2
	m.Strokes.Add(stroke)

	values, ok, err := stroke.ExportStrided(m, []uim.Attribute{uim.AttrTimestamp}, uim.FillWithZeros)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float64{200, 250, 300}, values)
}

func TestExportStridedMissingSensorDataFallsBackToPolicy(t *testing.T) {
	stroke := uim.NewStroke(uim.Spline{LayoutMask: uim.MaskX, Values: []float64{0, 1, 2}}, nil)

	zeroFilled, ok, err := stroke.ExportStrided(nil, []uim.Attribute{uim.AttrX, uim.AttrPressure}, uim.FillWithZeros)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []float64{0, 0, 1, 0, 2, 0}, zeroFilled)

	nanFilled, ok, err := stroke.ExportStrided(nil, []uim.Attribute{uim.AttrPressure}, uim.FillWithNaN)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, nanFilled, 3)
	for _, v := range nanFilled {
		require.True(t, math.IsNaN(v))
	}

	_, ok, err = stroke.ExportStrided(nil, []uim.Attribute{uim.AttrPressure}, uim.SkipStroke)
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = stroke.ExportStrided(nil, []uim.Attribute{uim.AttrPressure}, uim.ThrowOnMissing)
	require.Error(t, err)
}
