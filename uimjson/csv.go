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

package uimjson

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/digink/uim"
)

// DefaultCSVLayout is the attribute order used by [ExportStrokesCSV]
// when the caller doesn't supply one: X/Y/size/rotation/colour, then
// the sensor-plane attributes, matching the column order
// original_source/uim/model/helpers/serialize.py's
// serialize_sensor_data_csv produces for an unfiltered export.
var DefaultCSVLayout = []uim.Attribute{
	uim.AttrX, uim.AttrY, uim.AttrSize, uim.AttrRotation,
	uim.AttrRed, uim.AttrGreen, uim.AttrBlue, uim.AttrAlpha,
	uim.AttrTimestamp, uim.AttrPressure,
}

// ExportStrokesCSV writes one row per stroke sample to w: a leading
// stroke index column, then one column per attribute in layout (or
// [DefaultCSVLayout] if nil). A stroke that can't satisfy policy for
// every requested attribute is skipped, mirroring
// [uim.Stroke.ExportStrided]'s own skip/error semantics.
func ExportStrokesCSV(w io.Writer, m *uim.InkModel, layout []uim.Attribute, policy uim.MissingDataPolicy) error {
	if layout == nil {
		layout = DefaultCSVLayout
	}
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(layout)+1)
	header = append(header, "idx")
	for _, a := range layout {
		header = append(header, a.String())
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for idx, stroke := range m.Strokes.All() {
		values, ok, err := stroke.ExportStrided(m, layout, policy)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		stride := len(layout)
		row := make([]string, 0, stride+1)
		for i := 0; i < len(values); i += stride {
			row = row[:0]
			row = append(row, strconv.Itoa(idx))
			for _, v := range values[i : i+stride] {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
