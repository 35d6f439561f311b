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

// Wire field numbers for the BRSH chunk's Brushes message and its
// nested messages (spec.md §4.9 Table 1, item 2).
const (
	fBPX        protowire.Number = 1
	fBPY        protowire.Number = 2
	fBPSize     protowire.Number = 3
	fBPRotation protowire.Number = 4
	fBPRed      protowire.Number = 5
	fBPGreen    protowire.Number = 6
	fBPBlue     protowire.Number = 7
	fBPAlpha    protowire.Number = 8

	fVBPPoints   protowire.Number = 1
	fVBPURI      protowire.Number = 2
	fVBPMinScale protowire.Number = 3

	fVBName       protowire.Number = 1
	fVBPrototypes protowire.Number = 2
	fVBSpacing    protowire.Number = 3

	fRBName          protowire.Number = 1
	fRBSpacing       protowire.Number = 2
	fRBScatterX      protowire.Number = 3
	fRBScatterY      protowire.Number = 4
	fRBRotation      protowire.Number = 5
	fRBRasterOpacity protowire.Number = 6
	fRBBlendMode     protowire.Number = 7
	fRBShapeInline   protowire.Number = 8
	fRBShapeURI      protowire.Number = 9
	fRBFillInline    protowire.Number = 10
	fRBFillURI       protowire.Number = 11
	fRBFillWidth     protowire.Number = 12
	fRBFillHeight    protowire.Number = 13
	fRBRandomizeFill protowire.Number = 14

	fBrushesVector protowire.Number = 1
	fBrushesRaster protowire.Number = 2
)

func marshalBrushPoint(p BrushPoint) []byte {
	var b []byte
	b = appendTagDouble(b, fBPX, p.X)
	b = appendTagDouble(b, fBPY, p.Y)
	b = appendTagDouble(b, fBPSize, p.Size)
	b = appendTagDouble(b, fBPRotation, p.Rotation)
	b = appendTagDouble(b, fBPRed, p.Red)
	b = appendTagDouble(b, fBPGreen, p.Green)
	b = appendTagDouble(b, fBPBlue, p.Blue)
	b = appendTagDouble(b, fBPAlpha, p.Alpha)
	return b
}

func unmarshalBrushPoint(buf []byte) (BrushPoint, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return BrushPoint{}, err
	}
	var p BrushPoint
	for _, f := range fields {
		switch f.Num {
		case fBPX:
			p.X = f.Double()
		case fBPY:
			p.Y = f.Double()
		case fBPSize:
			p.Size = f.Double()
		case fBPRotation:
			p.Rotation = f.Double()
		case fBPRed:
			p.Red = f.Double()
		case fBPGreen:
			p.Green = f.Double()
		case fBPBlue:
			p.Blue = f.Double()
		case fBPAlpha:
			p.Alpha = f.Double()
		}
	}
	return p, nil
}

func marshalVectorBrushPrototype(p *VectorBrushPrototype) []byte {
	var b []byte
	for _, pt := range p.Points {
		b = appendTagMessage(b, fVBPPoints, marshalBrushPoint(pt))
	}
	if p.URI != "" {
		b = appendTagString(b, fVBPURI, p.URI)
	}
	b = appendTagDouble(b, fVBPMinScale, p.MinScale)
	return b
}

func unmarshalVectorBrushPrototype(buf []byte) (*VectorBrushPrototype, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	p := &VectorBrushPrototype{}
	for _, f := range fields {
		switch f.Num {
		case fVBPPoints:
			pt, err := unmarshalBrushPoint(f.Buf)
			if err != nil {
				return nil, err
			}
			p.Points = append(p.Points, pt)
		case fVBPURI:
			p.URI = string(f.Buf)
		case fVBPMinScale:
			p.MinScale = f.Double()
		}
	}
	return p, nil
}

func marshalVectorBrush(b *VectorBrush) []byte {
	var out []byte
	out = appendTagString(out, fVBName, b.Name)
	for _, p := range b.Prototypes {
		out = appendTagMessage(out, fVBPrototypes, marshalVectorBrushPrototype(p))
	}
	out = appendTagDouble(out, fVBSpacing, b.Spacing)
	return out
}

func unmarshalVectorBrush(buf []byte) (*VectorBrush, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	b := &VectorBrush{}
	for _, f := range fields {
		switch f.Num {
		case fVBName:
			b.Name = string(f.Buf)
		case fVBPrototypes:
			p, err := unmarshalVectorBrushPrototype(f.Buf)
			if err != nil {
				return nil, err
			}
			b.Prototypes = append(b.Prototypes, p)
		case fVBSpacing:
			b.Spacing = f.Double()
		}
	}
	return b, nil
}

func marshalRasterBrush(b *RasterBrush) []byte {
	var out []byte
	out = appendTagString(out, fRBName, b.Name)
	out = appendTagDouble(out, fRBSpacing, b.Spacing)
	out = appendTagDouble(out, fRBScatterX, b.ScatterX)
	out = appendTagDouble(out, fRBScatterY, b.ScatterY)
	out = appendTagVarint(out, fRBRotation, uint64(b.Rotation))
	out = appendTagDouble(out, fRBRasterOpacity, b.RasterOpacity)
	out = appendTagVarint(out, fRBBlendMode, uint64(b.BlendMode))
	if len(b.ShapeTextureInline) > 0 {
		out = appendTagBytes(out, fRBShapeInline, b.ShapeTextureInline)
	}
	if b.ShapeTextureURI != "" {
		out = appendTagString(out, fRBShapeURI, b.ShapeTextureURI)
	}
	if len(b.FillTextureInline) > 0 {
		out = appendTagBytes(out, fRBFillInline, b.FillTextureInline)
	}
	if b.FillTextureURI != "" {
		out = appendTagString(out, fRBFillURI, b.FillTextureURI)
	}
	out = appendTagDouble(out, fRBFillWidth, b.FillWidth)
	out = appendTagDouble(out, fRBFillHeight, b.FillHeight)
	out = appendTagBool(out, fRBRandomizeFill, b.RandomizeFill)
	return out
}

func unmarshalRasterBrush(buf []byte) (*RasterBrush, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	b := &RasterBrush{}
	for _, f := range fields {
		switch f.Num {
		case fRBName:
			b.Name = string(f.Buf)
		case fRBSpacing:
			b.Spacing = f.Double()
		case fRBScatterX:
			b.ScatterX = f.Double()
		case fRBScatterY:
			b.ScatterY = f.Double()
		case fRBRotation:
			b.Rotation = RotationMode(f.U64)
		case fRBRasterOpacity:
			b.RasterOpacity = f.Double()
		case fRBBlendMode:
			b.BlendMode = BlendMode(f.U64)
		case fRBShapeInline:
			b.ShapeTextureInline = append([]byte(nil), f.Buf...)
		case fRBShapeURI:
			b.ShapeTextureURI = string(f.Buf)
		case fRBFillInline:
			b.FillTextureInline = append([]byte(nil), f.Buf...)
		case fRBFillURI:
			b.FillTextureURI = string(f.Buf)
		case fRBFillWidth:
			b.FillWidth = f.Double()
		case fRBFillHeight:
			b.FillHeight = f.Double()
		case fRBRandomizeFill:
			b.RandomizeFill = f.Bool()
		}
	}
	return b, nil
}

// marshalBrushes serializes the whole BRSH chunk payload.
func marshalBrushes(repo *BrushRepository) []byte {
	var b []byte
	for _, vb := range repo.VectorBrushes() {
		b = appendTagMessage(b, fBrushesVector, marshalVectorBrush(vb))
	}
	for _, rb := range repo.RasterBrushes() {
		b = appendTagMessage(b, fBrushesRaster, marshalRasterBrush(rb))
	}
	return b
}

func unmarshalBrushes(buf []byte) (*BrushRepository, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	repo := NewBrushRepository()
	for _, f := range fields {
		switch f.Num {
		case fBrushesVector:
			vb, err := unmarshalVectorBrush(f.Buf)
			if err != nil {
				return nil, err
			}
			if err := repo.AddVectorBrush(vb); err != nil {
				return nil, err
			}
		case fBrushesRaster:
			rb, err := unmarshalRasterBrush(f.Buf)
			if err != nil {
				return nil, err
			}
			if err := repo.AddRasterBrush(rb); err != nil {
				return nil, err
			}
		}
	}
	return repo, nil
}
