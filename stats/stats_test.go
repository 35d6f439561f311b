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

package stats_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/digink/uim"
	"github.com/digink/uim/stats"
)

func TestAnalyzeCountsStrokesAndPoints(t *testing.T) {
	m := uim.NewInkModel()
	mask := uim.MaskX | uim.MaskY
	stroke := uim.NewStroke(uim.Spline{LayoutMask: mask, Values: []float64{0, 0, 1, 1, 2, 2}}, uim.NewStyle("will://brush/3.0/a", nil))
	m.Strokes.Add(stroke)
	root := uim.NewStrokeGroupNode()
	require.NoError(t, m.SetMainTree(uim.NewInkTree("")))
	require.NoError(t, m.MainTree.SetRoot(m, root))
	ref := uim.NewStrokeRefNode(stroke.ID, nil)
	_, err := m.MainTree.AddChild(m, m.MainTree.RootIndex, ref)
	require.NoError(t, err)

	summary := stats.Analyze(m)
	require.Equal(t, 1, summary.StrokesCount)
	require.Equal(t, 3, summary.PointsCount.Total)
	require.Equal(t, 3, summary.PointsCount.Min)
	require.Equal(t, 3, summary.PointsCount.Max)

	usage, ok := summary.Brushes["will://brush/3.0/a"]
	require.True(t, ok)
	require.Equal(t, 1, usage.StrokesCount)
	require.Equal(t, float64(100), usage.Percent)

	require.Equal(t, uim.BBox{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2},
		uim.BBox{MinX: summary.DocumentBounds.Left, MinY: summary.DocumentBounds.Top,
			MaxX: summary.DocumentBounds.Right, MaxY: summary.DocumentBounds.Bottom})
}

func TestAnalyzeEmptyModel(t *testing.T) {
	m := uim.NewInkModel()
	summary := stats.Analyze(m)
	require.Equal(t, 0, summary.StrokesCount)
	require.Equal(t, stats.DocumentBounds{}, summary.DocumentBounds)
}
