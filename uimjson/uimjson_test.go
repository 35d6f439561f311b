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

package uimjson_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/digink/uim"
	"github.com/digink/uim/uimjson"
)

func buildModel(t *testing.T) *uim.InkModel {
	t.Helper()
	m := uim.NewInkModel()
	mask := uim.MaskX | uim.MaskY
	stroke := uim.NewStroke(uim.Spline{LayoutMask: mask, Values: []float64{0, 0, 1, 1, 2, 0}},
		uim.NewStyle("will://brush/3.0/pen", nil))
	m.Strokes.Add(stroke)
	m.AddProperty("author", "ada")

	require.NoError(t, m.SetMainTree(uim.NewInkTree("")))
	root := uim.NewStrokeGroupNode()
	require.NoError(t, m.MainTree.SetRoot(m, root))
	ref := uim.NewStrokeRefNode(stroke.ID, nil)
	_, err := m.MainTree.AddChild(m, m.MainTree.RootIndex, ref)
	require.NoError(t, err)

	m.Triples.Add(uim.Triple{Subject: m.MainTree.Root().URI, Predicate: uim.PredRDFHasType, Object: uim.SegmentationTextLine})
	return m
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	m := buildModel(t)
	data, err := uimjson.Marshal(m)
	require.NoError(t, err)

	got, err := uimjson.Unmarshal(data)
	require.NoError(t, err)

	require.Equal(t, m.Version, got.Version)
	require.Equal(t, 1, got.Strokes.Len())
	gotStroke := got.Strokes.All()[0]
	origStroke := m.Strokes.All()[0]
	require.Equal(t, origStroke.Spline.Values, gotStroke.Spline.Values)
	require.Equal(t, origStroke.Spline.LayoutMask, gotStroke.Spline.LayoutMask)

	require.NotNil(t, got.MainTree)
	require.Equal(t, 1, len(got.MainTree.Root().Children))
	require.Equal(t, 1, got.Triples.Len())
}

func TestUnmarshalRejectsMalformedDocument(t *testing.T) {
	_, err := uimjson.Unmarshal([]byte(`{"version": "3.1.0"}`))
	require.Error(t, err)
}

func TestUnmarshalRejectsInvalidJSON(t *testing.T) {
	_, err := uimjson.Unmarshal([]byte(`not json`))
	require.Error(t, err)
}

func TestExportStrokesCSVWritesOneRowPerSample(t *testing.T) {
	m := buildModel(t)
	var buf bytes.Buffer
	layout := []uim.Attribute{uim.AttrX, uim.AttrY}
	require.NoError(t, uimjson.ExportStrokesCSV(&buf, m, layout, uim.FillWithZeros))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Equal(t, "idx,X,Y", lines[0])
	require.Len(t, lines, 1+m.Strokes.All()[0].Spline.SampleCount())
}
