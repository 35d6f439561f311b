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

// Wire field numbers for the KNWG chunk's TripleStore message (spec.md
// §4.9 Table 1, item 5) and the PRPS chunk's Properties message (item
// 6, sharing [KV] with the input-configuration section).
const (
	fTripleSubject   protowire.Number = 1
	fTriplePredicate protowire.Number = 2
	fTripleObject    protowire.Number = 3

	fTriplesList protowire.Number = 1

	fPropsList protowire.Number = 1
)

func marshalTriple(t Triple) []byte {
	var b []byte
	b = appendTagString(b, fTripleSubject, t.Subject)
	b = appendTagString(b, fTriplePredicate, t.Predicate)
	b = appendTagString(b, fTripleObject, t.Object)
	return b
}

func unmarshalTriple(buf []byte) (Triple, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return Triple{}, err
	}
	var t Triple
	for _, f := range fields {
		switch f.Num {
		case fTripleSubject:
			t.Subject = string(f.Buf)
		case fTriplePredicate:
			t.Predicate = string(f.Buf)
		case fTripleObject:
			t.Object = string(f.Buf)
		}
	}
	return t, nil
}

func marshalTripleStore(store *TripleStore) []byte {
	var b []byte
	for _, t := range store.All() {
		b = appendTagMessage(b, fTriplesList, marshalTriple(t))
	}
	return b
}

func unmarshalTripleStore(buf []byte) (*TripleStore, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	store := NewTripleStore()
	for _, f := range fields {
		if f.Num == fTriplesList {
			t, err := unmarshalTriple(f.Buf)
			if err != nil {
				return nil, err
			}
			store.Add(t)
		}
	}
	return store, nil
}

func marshalProperties(kvs []KV) []byte {
	var b []byte
	for _, kv := range kvs {
		b = appendTagMessage(b, fPropsList, marshalKV(kv))
	}
	return b
}

func unmarshalProperties(buf []byte) ([]KV, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	var out []KV
	for _, f := range fields {
		if f.Num == fPropsList {
			kv, err := unmarshalKV(f.Buf)
			if err != nil {
				return nil, err
			}
			out = append(out, kv)
		}
	}
	return out, nil
}
