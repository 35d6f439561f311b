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

package resample_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/digink/uim"
	"github.com/digink/uim/resample"
)

func TestSpacingEvensOutSamples(t *testing.T) {
	mask := uim.MaskX | uim.MaskY
	spline := uim.Spline{LayoutMask: mask, Values: []float64{0, 0, 10, 0, 10, 10}}

	out := resample.Spacing(spline, 1)
	n := out.SampleCount()
	require.Greater(t, n, spline.SampleCount())

	x0, _ := out.At(0, uim.AttrX)
	y0, _ := out.At(0, uim.AttrY)
	require.InDelta(t, 0, x0, 1e-9)
	require.InDelta(t, 0, y0, 1e-9)

	xLast, _ := out.At(n-1, uim.AttrX)
	yLast, _ := out.At(n-1, uim.AttrY)
	require.InDelta(t, 10, xLast, 1e-9)
	require.InDelta(t, 10, yLast, 1e-9)
}

func TestSpacingRequiresXY(t *testing.T) {
	spline := uim.Spline{LayoutMask: uim.MaskSize, Values: []float64{1, 2, 3}}
	out := resample.Spacing(spline, 1)
	require.Equal(t, spline, out)
}
