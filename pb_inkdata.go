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

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Wire field numbers for the INKD chunk's InkData message and its
// nested messages (spec.md §4.9 Table 1, item 3).
const (
	fPPPSize     protowire.Number = 1
	fPPPRed      protowire.Number = 2
	fPPPGreen    protowire.Number = 3
	fPPPBlue     protowire.Number = 4
	fPPPAlpha    protowire.Number = 5
	fPPPRotation protowire.Number = 6
	fPPPScaleX   protowire.Number = 7
	fPPPScaleY   protowire.Number = 8
	fPPPScaleZ   protowire.Number = 9
	fPPPOffsetX  protowire.Number = 10
	fPPPOffsetY  protowire.Number = 11
	fPPPOffsetZ  protowire.Number = 12

	fSplLayoutMask  protowire.Number = 1
	fSplTStart      protowire.Number = 2
	fSplTEnd        protowire.Number = 3
	fSplSampleCount protowire.Number = 4
	fSplStreams     protowire.Number = 5
	fSplColors      protowire.Number = 6

	fStreamAttr    protowire.Number = 1
	fStreamVarint  protowire.Number = 2
	fStreamIValues protowire.Number = 3
	fStreamDValues protowire.Number = 4

	fStrokeID            protowire.Number = 1
	fStrokeSpline        protowire.Number = 2
	fStrokePropsIndex    protowire.Number = 3
	fStrokeBrushURI      protowire.Number = 4
	fStrokeParticleSeed  protowire.Number = 5
	fStrokeRenderModeURI protowire.Number = 6
	fStrokeSensorDataID  protowire.Number = 7
	fStrokeSensorOffset  protowire.Number = 8
	fStrokeSensorMapping protowire.Number = 9
	fStrokeRandomSeed    protowire.Number = 10
	fStrokePrecision     protowire.Number = 11
	fStrokeHasSensorData protowire.Number = 12

	fInkDataPalette protowire.Number = 1
	fInkDataStrokes protowire.Number = 2
)

// nonColorAttrOrder and colorAttrOrder fix the canonical order that
// spline attribute streams and packed per-sample colour bytes are
// emitted in, independent of the layout mask's bit positions (spec.md
// §4.5).
var nonColorAttrOrder = []Attribute{
	AttrX, AttrY, AttrZ, AttrSize, AttrRotation,
	AttrScaleX, AttrScaleY, AttrScaleZ,
	AttrOffsetX, AttrOffsetY, AttrOffsetZ,
	AttrTangentX, AttrTangentY,
}

var colorAttrOrder = []Attribute{AttrRed, AttrGreen, AttrBlue, AttrAlpha}

func presentAttrs(mask LayoutMask, order []Attribute) []Attribute {
	var out []Attribute
	for _, a := range order {
		if mask.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// attrPrecisionDigits maps a spline attribute to the precision-scheme
// subfield governing its fixed-point scale (spec.md §4.2, §4.5).
// Colour attributes are never scaled this way: they are stored as
// 8-bit bytes regardless of the precision scheme.
func attrPrecisionDigits(a Attribute, p PrecisionScheme) int {
	switch a {
	case AttrX, AttrY, AttrZ, AttrTangentX, AttrTangentY:
		return p.Position()
	case AttrSize:
		return p.Size()
	case AttrRotation:
		return p.Rotation()
	case AttrScaleX, AttrScaleY, AttrScaleZ:
		return p.Scale()
	case AttrOffsetX, AttrOffsetY, AttrOffsetZ:
		return p.Offset()
	}
	return 0
}

func marshalPathPointProperties(p *PathPointProperties) []byte {
	var b []byte
	b = appendTagDouble(b, fPPPSize, p.Size)
	b = appendTagDouble(b, fPPPRed, p.Red)
	b = appendTagDouble(b, fPPPGreen, p.Green)
	b = appendTagDouble(b, fPPPBlue, p.Blue)
	b = appendTagDouble(b, fPPPAlpha, p.Alpha)
	b = appendTagDouble(b, fPPPRotation, p.Rotation)
	b = appendTagDouble(b, fPPPScaleX, p.ScaleX)
	b = appendTagDouble(b, fPPPScaleY, p.ScaleY)
	b = appendTagDouble(b, fPPPScaleZ, p.ScaleZ)
	b = appendTagDouble(b, fPPPOffsetX, p.OffsetX)
	b = appendTagDouble(b, fPPPOffsetY, p.OffsetY)
	b = appendTagDouble(b, fPPPOffsetZ, p.OffsetZ)
	return b
}

func unmarshalPathPointProperties(buf []byte) (*PathPointProperties, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	p := &PathPointProperties{}
	for _, f := range fields {
		switch f.Num {
		case fPPPSize:
			p.Size = f.Double()
		case fPPPRed:
			p.Red = f.Double()
		case fPPPGreen:
			p.Green = f.Double()
		case fPPPBlue:
			p.Blue = f.Double()
		case fPPPAlpha:
			p.Alpha = f.Double()
		case fPPPRotation:
			p.Rotation = f.Double()
		case fPPPScaleX:
			p.ScaleX = f.Double()
		case fPPPScaleY:
			p.ScaleY = f.Double()
		case fPPPScaleZ:
			p.ScaleZ = f.Double()
		case fPPPOffsetX:
			p.OffsetX = f.Double()
		case fPPPOffsetY:
			p.OffsetY = f.Double()
		case fPPPOffsetZ:
			p.OffsetZ = f.Double()
		}
	}
	return p, nil
}

func marshalSplineStream(a Attribute, values []float64, digits int) []byte {
	var b []byte
	b = appendTagVarint(b, fStreamAttr, uint64(a))
	if digits > 0 {
		scale := math.Pow10(digits)
		ints := make([]int64, len(values))
		for i, v := range values {
			ints[i] = int64(math.Round(v * scale))
		}
		deltas := make([]int64, len(ints))
		if len(ints) > 0 {
			deltas[0] = ints[0]
			for i := 1; i < len(ints); i++ {
				deltas[i] = ints[i] - ints[i-1]
			}
		}
		b = appendTagBool(b, fStreamVarint, true)
		b = appendPackedZigzag(b, fStreamIValues, deltas)
	} else {
		b = appendTagBool(b, fStreamVarint, false)
		b = appendPackedDoubles(b, fStreamDValues, values)
	}
	return b
}

func unmarshalSplineStream(buf []byte, precision PrecisionScheme) (Attribute, []float64, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return 0, nil, err
	}
	var attr Attribute
	var isVarint bool
	var raw []byte
	var rawNum protowire.Number
	for _, f := range fields {
		switch f.Num {
		case fStreamAttr:
			attr = Attribute(f.U64)
		case fStreamVarint:
			isVarint = f.Bool()
		case fStreamIValues, fStreamDValues:
			raw = f.Buf
			rawNum = f.Num
		}
	}
	if isVarint && rawNum == fStreamIValues {
		deltas, err := consumePackedZigzag(raw)
		if err != nil {
			return 0, nil, err
		}
		digits := attrPrecisionDigits(attr, precision)
		scale := math.Pow10(digits)
		out := make([]float64, len(deltas))
		var acc int64
		for i, d := range deltas {
			acc += d
			if i == 0 {
				acc = d
			}
			out[i] = float64(acc) / scale
		}
		return attr, out, nil
	}
	out, err := consumePackedDoubles(raw)
	if err != nil {
		return 0, nil, err
	}
	return attr, out, nil
}

func marshalSpline(s *Spline, precision PrecisionScheme) []byte {
	var b []byte
	b = appendTagVarint(b, fSplLayoutMask, uint64(s.LayoutMask))
	b = appendTagDouble(b, fSplTStart, s.TStart)
	b = appendTagDouble(b, fSplTEnd, s.TEnd)
	n := s.SampleCount()
	b = appendTagVarint(b, fSplSampleCount, uint64(n))
	for _, a := range presentAttrs(s.LayoutMask, nonColorAttrOrder) {
		stream := make([]float64, n)
		for i := 0; i < n; i++ {
			v, _ := s.At(i, a)
			stream[i] = v
		}
		digits := attrPrecisionDigits(a, precision)
		b = appendTagMessage(b, fSplStreams, marshalSplineStream(a, stream, digits))
	}
	colors := presentAttrs(s.LayoutMask, colorAttrOrder)
	if len(colors) > 0 {
		buf := make([]byte, 0, n*len(colors))
		for i := 0; i < n; i++ {
			for _, a := range colors {
				v, _ := s.At(i, a)
				buf = append(buf, ColorFloatToByte(v))
			}
		}
		b = appendTagBytes(b, fSplColors, buf)
	}
	return b
}

func unmarshalSpline(buf []byte, precision PrecisionScheme) (*Spline, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	s := &Spline{}
	streams := make(map[Attribute][]float64)
	var n int
	var colorBuf []byte
	for _, f := range fields {
		switch f.Num {
		case fSplLayoutMask:
			s.LayoutMask = LayoutMask(f.U64)
		case fSplTStart:
			s.TStart = f.Double()
		case fSplTEnd:
			s.TEnd = f.Double()
		case fSplSampleCount:
			n = int(f.U64)
		case fSplStreams:
			a, values, err := unmarshalSplineStream(f.Buf, precision)
			if err != nil {
				return nil, err
			}
			streams[a] = values
		case fSplColors:
			colorBuf = f.Buf
		}
	}
	colors := presentAttrs(s.LayoutMask, colorAttrOrder)
	if len(colors) > 0 {
		idx := 0
		for _, a := range colors {
			streams[a] = make([]float64, n)
		}
		for i := 0; i < n; i++ {
			for _, a := range colors {
				if idx >= len(colorBuf) {
					return nil, wireErr("spline colors")
				}
				streams[a][i] = ColorByteToFloat(colorBuf[idx])
				idx++
			}
		}
	}
	stride := s.LayoutMask.Stride()
	values := make([]float64, stride*n)
	for i := 0; i < n; i++ {
		for _, a := range s.LayoutMask.Attributes() {
			off := s.LayoutMask.Offset(a)
			stream := streams[a]
			if i < len(stream) {
				values[i*stride+off] = stream[i]
			}
		}
	}
	s.Values = values
	return s, nil
}

// paletteBuilder deduplicates [PathPointProperties] by Hash-Id while
// encoding strokes, so the wire carries each distinct style's geometry
// once (spec.md §4.9 Table 1 "indexed style palette").
type paletteBuilder struct {
	entries []*PathPointProperties
	index   map[ID]int
}

func newPaletteBuilder() *paletteBuilder {
	return &paletteBuilder{index: make(map[ID]int)}
}

func (pb *paletteBuilder) indexOf(p *PathPointProperties) int {
	id := p.ID()
	if i, ok := pb.index[id]; ok {
		return i
	}
	i := len(pb.entries)
	pb.entries = append(pb.entries, p)
	pb.index[id] = i
	return i
}

func marshalStroke(s *Stroke, pb *paletteBuilder) []byte {
	var b []byte
	b = appendTagID(b, fStrokeID, s.ID)
	b = appendTagMessage(b, fStrokeSpline, marshalSpline(&s.Spline, s.effectivePrecision()))
	if s.Style != nil {
		if s.Style.Properties != nil {
			b = appendTagVarint(b, fStrokePropsIndex, uint64(pb.indexOf(s.Style.Properties)))
		}
		b = appendTagString(b, fStrokeBrushURI, s.Style.BrushURI)
		b = appendTagVarint(b, fStrokeParticleSeed, s.Style.ParticlesRandomSeed)
		b = appendTagString(b, fStrokeRenderModeURI, s.Style.RenderModeURI)
	}
	if s.SensorDataID != nil {
		b = appendTagBool(b, fStrokeHasSensorData, true)
		b = appendTagID(b, fStrokeSensorDataID, *s.SensorDataID)
		b = appendTagVarint(b, fStrokeSensorOffset, uint64(s.SensorDataOffset))
		if len(s.SensorDataMapping) > 0 {
			ints := make([]int64, len(s.SensorDataMapping))
			for i, v := range s.SensorDataMapping {
				ints[i] = int64(v)
			}
			b = appendPackedZigzag(b, fStrokeSensorMapping, ints)
		}
	}
	b = appendTagVarint(b, fStrokeRandomSeed, s.RandomSeed)
	if s.Precision != nil {
		b = appendTagVarint(b, fStrokePrecision, uint64(*s.Precision))
	}
	return b
}

// effectivePrecision returns the stroke's own precision scheme override,
// or the zero scheme when it carries none (spec.md §3.4).
func (s *Stroke) effectivePrecision() PrecisionScheme {
	if s.Precision != nil {
		return *s.Precision
	}
	return PrecisionScheme(0)
}

func unmarshalStroke(buf []byte, palette []*PathPointProperties) (*Stroke, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	s := &Stroke{Style: &Style{}}
	var propsIndex = -1
	var hasSensorData bool
	var mappingRaw []byte
	var splineRaw []byte
	var precision PrecisionScheme
	for _, f := range fields {
		switch f.Num {
		case fStrokeID:
			s.ID = f.ID()
		case fStrokeSpline:
			splineRaw = f.Buf
		case fStrokePropsIndex:
			propsIndex = int(f.U64)
		case fStrokeBrushURI:
			s.Style.BrushURI = string(f.Buf)
		case fStrokeParticleSeed:
			s.Style.ParticlesRandomSeed = f.U64
		case fStrokeRenderModeURI:
			s.Style.RenderModeURI = string(f.Buf)
		case fStrokeHasSensorData:
			hasSensorData = f.Bool()
		case fStrokeSensorDataID:
			id := f.ID()
			s.SensorDataID = &id
		case fStrokeSensorOffset:
			s.SensorDataOffset = int(f.U64)
		case fStrokeSensorMapping:
			mappingRaw = f.Buf
		case fStrokeRandomSeed:
			s.RandomSeed = f.U64
		case fStrokePrecision:
			precision = PrecisionScheme(f.U64)
			s.Precision = &precision
		}
	}
	if !hasSensorData {
		s.SensorDataID = nil
	}
	if mappingRaw != nil {
		ints, err := consumePackedZigzag(mappingRaw)
		if err != nil {
			return nil, err
		}
		s.SensorDataMapping = make([]int, len(ints))
		for i, v := range ints {
			s.SensorDataMapping[i] = int(v)
		}
	}
	if propsIndex >= 0 && propsIndex < len(palette) {
		s.Style.Properties = palette[propsIndex]
	}
	spline, err := unmarshalSpline(splineRaw, s.effectivePrecision())
	if err != nil {
		return nil, err
	}
	s.Spline = *spline
	return s, nil
}

// marshalInkData serializes the whole INKD chunk payload: the
// deduplicated path-point-properties palette followed by every stroke.
func marshalInkData(strokes []*Stroke) []byte {
	pb := newPaletteBuilder()
	var strokeBufs [][]byte
	for _, s := range strokes {
		strokeBufs = append(strokeBufs, marshalStroke(s, pb))
	}
	var b []byte
	for _, p := range pb.entries {
		b = appendTagMessage(b, fInkDataPalette, marshalPathPointProperties(p))
	}
	for _, sb := range strokeBufs {
		b = appendTagMessage(b, fInkDataStrokes, sb)
	}
	return b
}

func unmarshalInkData(buf []byte) ([]*Stroke, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	var palette []*PathPointProperties
	var strokeBufs [][]byte
	for _, f := range fields {
		switch f.Num {
		case fInkDataPalette:
			p, err := unmarshalPathPointProperties(f.Buf)
			if err != nil {
				return nil, err
			}
			palette = append(palette, p)
		case fInkDataStrokes:
			strokeBufs = append(strokeBufs, f.Buf)
		}
	}
	strokes := make([]*Stroke, 0, len(strokeBufs))
	for _, sb := range strokeBufs {
		s, err := unmarshalStroke(sb, palette)
		if err != nil {
			return nil, err
		}
		strokes = append(strokes, s)
	}
	return strokes, nil
}
