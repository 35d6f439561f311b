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

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/digink/uim"
)

// buildSampleModel constructs a small but representative model: one
// main-tree stroke group with two stroke-ref children, a view tree
// referencing one of them, a property, and a semantic triple.
func buildSampleModel(t *testing.T) *uim.InkModel {
	m := uim.NewInkModel()

	mask := uim.MaskX | uim.MaskY | uim.MaskSize
	spline := uim.Spline{
		LayoutMask: mask,
		Values:     []float64{0, 0, 1, 1, 1, 1, 2, 2, 0.5},
		TStart:     0,
		TEnd:       1,
	}
	props := &uim.PathPointProperties{Size: 1, Red: 0.2, Green: 0.4, Blue: 0.6, Alpha: 1}
	style := uim.NewStyle("will://brush/3.0/default", props)
	stroke := uim.NewStroke(spline, style)
	m.Strokes.Add(stroke)

	root := uim.NewStrokeGroupNode()
	require.NoError(t, m.SetMainTree(uim.NewInkTree("")))
	require.NoError(t, m.MainTree.SetRoot(m, root))
	ref := uim.NewStrokeRefNode(stroke.ID, nil)
	_, err := m.MainTree.AddChild(m, m.MainTree.RootIndex, ref)
	require.NoError(t, err)

	view := uim.NewInkTree("hwr")
	viewRoot := uim.NewStrokeRefNode(stroke.ID, nil)
	require.NoError(t, view.SetRoot(m, viewRoot))
	require.NoError(t, m.AddView(view))

	m.AddProperty("author", "jane")
	require.NoError(t, m.AddTriple(uim.Triple{
		Subject:   viewRoot.URI,
		Predicate: uim.PredRDFHasType,
		Object:    uim.SegmentationWord,
	}))

	return m
}

func TestEncodeParseRoundTrip(t *testing.T) {
	m := buildSampleModel(t)

	encoded, err := uim.Encode(m)
	require.NoError(t, err)

	decoded, err := uim.Parse(encoded)
	require.NoError(t, err)

	if decoded.Strokes.Len() != m.Strokes.Len() {
		t.Fatalf("stroke count: got %d, want %d", decoded.Strokes.Len(), m.Strokes.Len())
	}
	origStroke := m.Strokes.All()[0]
	gotStroke, err := decoded.Strokes.Get(origStroke.ID)
	require.NoError(t, err)
	if d := cmp.Diff(origStroke.Spline, gotStroke.Spline); d != "" {
		t.Errorf("spline mismatch after round trip: %s", d)
	}
	if d := cmp.Diff(*origStroke.Style.Properties, *gotStroke.Style.Properties); d != "" {
		t.Errorf("style properties mismatch after round trip: %s", d)
	}

	if decoded.MainTree == nil || len(decoded.MainTree.Nodes) != len(m.MainTree.Nodes) {
		t.Fatalf("main tree shape mismatch")
	}
	view, err := decoded.ViewByName("hwr")
	require.NoError(t, err)
	if len(view.Nodes) != 1 {
		t.Fatalf("view tree shape mismatch: got %d nodes, want 1", len(view.Nodes))
	}

	if d := cmp.Diff(m.Properties, decoded.Properties); d != "" {
		t.Errorf("properties mismatch after round trip: %s", d)
	}

	gotTriples := decoded.Triples.All()
	require.Len(t, gotTriples, 1)
	require.Equal(t, uim.PredRDFHasType, gotTriples[0].Predicate)
	require.Equal(t, uim.SegmentationWord, gotTriples[0].Object)
	require.Equal(t, view.Nodes[view.RootIndex].URI, gotTriples[0].Subject)
}

// buildRepetitiveModel returns a model with many near-identical stroke
// samples, compressible enough that even the smallest flate frame
// format beats the raw encoding (scenario 6's "compressed form is
// demonstrably smaller" requirement).
func buildRepetitiveModel(t *testing.T) *uim.InkModel {
	m := uim.NewInkModel()
	mask := uim.MaskX | uim.MaskY
	values := make([]float64, 0, 2000)
	for i := 0; i < 1000; i++ {
		values = append(values, 1.0, 1.0)
	}
	stroke := uim.NewStroke(uim.Spline{LayoutMask: mask, Values: values, TStart: 0, TEnd: 1}, nil)
	m.Strokes.Add(stroke)
	root := uim.NewStrokeGroupNode()
	require.NoError(t, m.SetMainTree(uim.NewInkTree("")))
	require.NoError(t, m.MainTree.SetRoot(m, root))
	ref := uim.NewStrokeRefNode(stroke.ID, nil)
	_, err := m.MainTree.AddChild(m, m.MainTree.RootIndex, ref)
	require.NoError(t, err)
	return m
}

func TestEncodeCompressedRoundTrip(t *testing.T) {
	m := buildRepetitiveModel(t)

	raw, err := uim.EncodeCompressed(m, uim.CompressionNone)
	require.NoError(t, err)
	zipped, err := uim.EncodeCompressed(m, uim.CompressionZIP)
	require.NoError(t, err)
	lzma, err := uim.EncodeCompressed(m, uim.CompressionLZMA)
	require.NoError(t, err)

	if len(zipped) >= len(raw) {
		t.Errorf("zip-compressed form not smaller: %d vs %d", len(zipped), len(raw))
	}
	if len(lzma) >= len(raw) {
		t.Errorf("lzma-tagged form not smaller: %d vs %d", len(lzma), len(raw))
	}

	decoded, err := uim.Parse(lzma)
	require.NoError(t, err)
	require.Equal(t, m.Strokes.Len(), decoded.Strokes.Len())
}

func TestParseRejectsBadMagic(t *testing.T) {
	_, err := uim.Parse([]byte("not a uim file at all"))
	require.Error(t, err)
	var fmtErr *uim.FormatError
	require.ErrorAs(t, err, &fmtErr)
}

func TestParseRejectsTruncated(t *testing.T) {
	m := buildSampleModel(t)
	encoded, err := uim.Encode(m)
	require.NoError(t, err)

	_, err = uim.Parse(encoded[:len(encoded)-4])
	require.Error(t, err)
}

func TestParseRejectsSensorDataFrameWithUnresolvableInputContext(t *testing.T) {
	m := buildSampleModel(t)
	m.SensorData.Add(&uim.SensorData{InputContextID: uim.NewRandomID()})

	encoded, err := uim.Encode(m)
	require.NoError(t, err)

	_, err = uim.Parse(encoded)
	require.Error(t, err)

	decoded, err := uim.ParseWithOptions(encoded, uim.ParseOptions{Lenient: true})
	require.NoError(t, err)
	require.Equal(t, 0, decoded.SensorData.Len())
}

func TestParseRejectsSensorDataFrameWithForeignChannel(t *testing.T) {
	m := buildSampleModel(t)

	sensorCtx := &uim.SensorContext{ChannelsContexts: []*uim.SensorChannelsContext{
		{Channels: []*uim.SensorChannel{{Type: uim.ChannelPressure, Name: "pressure"}}},
	}}
	sensorCtxID := m.InputConfig.AddSensorContext(sensorCtx)
	inputCtx := &uim.InputContext{SensorContextID: sensorCtxID}
	inputCtxID := m.InputConfig.AddInputContext(inputCtx)

	foreignChannel := &uim.SensorChannel{Type: uim.ChannelAltitude, Name: "altitude"}
	foreignChannelID := m.InputConfig.AddChannel(foreignChannel)

	frame := &uim.SensorData{
		InputContextID: inputCtxID,
		Channels:       []*uim.ChannelData{{SensorChannelID: foreignChannelID, Values: []float64{1}}},
	}
	m.SensorData.Add(frame)

	encoded, err := uim.Encode(m)
	require.NoError(t, err)

	_, err = uim.Parse(encoded)
	require.Error(t, err)

	decoded, err := uim.ParseWithOptions(encoded, uim.ParseOptions{Lenient: true})
	require.NoError(t, err)
	require.Equal(t, 0, decoded.SensorData.Len())
}

func TestAddChildRejectsStrokeMissingFromMainTree(t *testing.T) {
	m := uim.NewInkModel()
	view := uim.NewInkTree("hwr")
	require.NoError(t, view.SetRoot(m, uim.NewStrokeGroupNode()))

	ref := uim.NewStrokeRefNode(uim.NewRandomID(), nil)
	_, err := view.AddChild(m, view.RootIndex, ref)
	require.Error(t, err)
	var missing *uim.MissingStrokeInMainTreeError
	require.ErrorAs(t, err, &missing)
}
