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
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// This file holds the low-level protobuf wire-format helpers shared by
// every pb_*.go section codec (spec.md §4.9 Table 1). There is no
// .proto/protoc step anywhere in this module: messages are built and
// consumed directly against the wire with
// google.golang.org/protobuf/encoding/protowire, the same package the
// generated code that real protobuf schemas compile to itself calls
// into. That keeps the module wire-compatible with the published
// 3.1.0 schema's field numbers without carrying a code generator.

func wireErr(context string) error {
	return &FormatError{Err: fmt.Errorf("truncated protobuf field in %s", context)}
}

func appendTagVarint(dst []byte, num protowire.Number, v uint64) []byte {
	dst = protowire.AppendTag(dst, num, protowire.VarintType)
	return protowire.AppendVarint(dst, v)
}

func appendTagZigzag(dst []byte, num protowire.Number, v int64) []byte {
	dst = protowire.AppendTag(dst, num, protowire.VarintType)
	return protowire.AppendVarint(dst, protowire.EncodeZigZag(v))
}

func appendTagBool(dst []byte, num protowire.Number, v bool) []byte {
	var x uint64
	if v {
		x = 1
	}
	return appendTagVarint(dst, num, x)
}

func appendTagDouble(dst []byte, num protowire.Number, v float64) []byte {
	dst = protowire.AppendTag(dst, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(dst, math.Float64bits(v))
}

func appendTagBytes(dst []byte, num protowire.Number, v []byte) []byte {
	dst = protowire.AppendTag(dst, num, protowire.BytesType)
	return protowire.AppendBytes(dst, v)
}

func appendTagString(dst []byte, num protowire.Number, v string) []byte {
	dst = protowire.AppendTag(dst, num, protowire.BytesType)
	return protowire.AppendString(dst, v)
}

func appendTagMessage(dst []byte, num protowire.Number, msg []byte) []byte {
	return appendTagBytes(dst, num, msg)
}

func appendTagID(dst []byte, num protowire.Number, id ID) []byte {
	return appendTagBytes(dst, num, id[:])
}

// appendPackedDoubles appends a length-delimited field of concatenated
// IEEE-754 doubles, the "packed repeated" encoding protobuf uses for
// scalar numeric fields.
func appendPackedDoubles(dst []byte, num protowire.Number, vs []float64) []byte {
	buf := make([]byte, 0, 8*len(vs))
	for _, v := range vs {
		buf = protowire.AppendFixed64(buf, math.Float64bits(v))
	}
	return appendTagBytes(dst, num, buf)
}

func consumePackedDoubles(b []byte) ([]float64, error) {
	if len(b)%8 != 0 {
		return nil, wireErr("packed double array")
	}
	out := make([]float64, len(b)/8)
	for i := range out {
		bits, n := protowire.ConsumeFixed64(b[i*8:])
		if n < 0 {
			return nil, wireErr("packed double array")
		}
		out[i] = math.Float64frombits(bits)
	}
	return out, nil
}

// appendPackedZigzag appends a length-delimited field of concatenated
// zigzag-encoded signed varints, used for precision-scaled delta
// streams (spec.md §4.5).
func appendPackedZigzag(dst []byte, num protowire.Number, vs []int64) []byte {
	var buf []byte
	for _, v := range vs {
		buf = protowire.AppendVarint(buf, protowire.EncodeZigZag(v))
	}
	return appendTagBytes(dst, num, buf)
}

func consumePackedZigzag(b []byte) ([]int64, error) {
	var out []int64
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, wireErr("packed varint array")
		}
		out = append(out, protowire.DecodeZigZag(v))
		b = b[n:]
	}
	return out, nil
}

// pbField is one decoded top-level field of a message: the scalar
// value for Varint/Fixed32/Fixed64 wire types, or the inner payload
// for a length-delimited (Bytes) field.
type pbField struct {
	Num protowire.Number
	Typ protowire.Type
	U64 uint64
	Buf []byte
}

// Double reinterprets a Fixed64 field's bits as a float64.
func (f pbField) Double() float64 { return math.Float64frombits(f.U64) }

// Bool reinterprets a Varint field as a boolean.
func (f pbField) Bool() bool { return f.U64 != 0 }

// ID reinterprets a Bytes field as a 16-byte identifier. Fields
// shorter than 16 bytes (never emitted by this encoder, but tolerated
// from other producers) are zero-padded on the right.
func (f pbField) ID() ID {
	var id ID
	copy(id[:], f.Buf)
	return id
}

// parseFields splits a message payload into its top-level fields,
// without interpreting field numbers: every pb_*.go Unmarshal function
// ranges over the result and switches on Num, accumulating repeated
// fields and skipping anything it doesn't recognize (forward
// compatibility with future minor versions, matching the decoder
// contract in spec.md §4.9 "unknown chunk id").
func parseFields(b []byte) ([]pbField, error) {
	var out []pbField
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, wireErr("tag")
		}
		b = b[n:]
		switch typ {
		case protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, wireErr("varint")
			}
			out = append(out, pbField{Num: num, Typ: typ, U64: v})
			b = b[m:]
		case protowire.Fixed32Type:
			v, m := protowire.ConsumeFixed32(b)
			if m < 0 {
				return nil, wireErr("fixed32")
			}
			out = append(out, pbField{Num: num, Typ: typ, U64: uint64(v)})
			b = b[m:]
		case protowire.Fixed64Type:
			v, m := protowire.ConsumeFixed64(b)
			if m < 0 {
				return nil, wireErr("fixed64")
			}
			out = append(out, pbField{Num: num, Typ: typ, U64: v})
			b = b[m:]
		case protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, wireErr("bytes")
			}
			out = append(out, pbField{Num: num, Typ: typ, Buf: v})
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, wireErr("unknown wire type")
			}
			b = b[m:]
		}
	}
	return out, nil
}
