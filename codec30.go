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
	"google.golang.org/protobuf/encoding/protowire"
)

// Wire field numbers for the single large protobuf message that fills
// the DATA chunk of a legacy UIM 3.0.0 file (spec.md §4.9 "Version
// 3.0.0"). There is no separate HEAD-carried section list in 3.0.0:
// every section the 3.1.0 codec splits across INPT/BRSH/INKD/INKS/
// KNWG/PRPS chunks instead lives inline in this one message, reusing
// the same nested message shapes.
const (
	fLegacyInputConfig protowire.Number = 1
	fLegacySensorData  protowire.Number = 2
	fLegacyBrushes     protowire.Number = 3
	fLegacyInkData     protowire.Number = 4
	fLegacyMainTree    protowire.Number = 5
	fLegacyViews       protowire.Number = 6
	fLegacyTriples     protowire.Number = 7
	fLegacyProperties  protowire.Number = 8
)

// decode30 interprets the single protobuf message carried by a legacy
// UIM 3.0.0 file's DATA chunk, normalizing it into the same InkModel
// shape decode31 produces (spec.md §4.9). View-tree node URIs are
// rewritten from their legacy form ("uim:<uuid>/<tree>") into the
// 3.1.0 form ("uim:<tree>/<uuid>") as the tree is built, and every
// triple subject wire string matching the legacy form is rewritten to
// match (spec.md §4.7, §8 "Legacy upgrade").
func decode30(payload []byte, header riffHeader, opts ParseOptions) (*InkModel, error) {
	payload, err := decompressPayload(payload, header.Compression)
	if err != nil {
		return nil, &FormatError{Chunk: chunkDATA, Err: err}
	}
	fields, err := parseFields(payload)
	if err != nil {
		return nil, &FormatError{Chunk: chunkDATA, Err: err}
	}

	m := NewInkModel()
	m.Version = header.Version

	var mainEntries []*serializedNode
	var viewBufs [][]byte
	var legacyURIs map[string]string // legacy URI -> upgraded 3.1.0 URI

	for _, f := range fields {
		switch f.Num {
		case fLegacyInputConfig:
			cfg, err := unmarshalLegacyInputConfig(f.Buf)
			if err != nil {
				return nil, &FormatError{Chunk: chunkDATA, Err: err}
			}
			m.InputConfig = cfg
		case fLegacySensorData:
			sd, err := unmarshalSensorData(f.Buf)
			if err != nil {
				return nil, &FormatError{Chunk: chunkDATA, Err: err}
			}
			m.SensorData.Add(sd)
		case fLegacyBrushes:
			brushes, err := unmarshalBrushes(f.Buf)
			if err != nil {
				return nil, &FormatError{Chunk: chunkDATA, Err: err}
			}
			m.Brushes = brushes
		case fLegacyInkData:
			strokes, err := unmarshalInkData(f.Buf)
			if err != nil {
				return nil, &FormatError{Chunk: chunkDATA, Err: err}
			}
			for _, s := range strokes {
				m.Strokes.Add(s)
			}
		case fLegacyMainTree:
			_, entries, err := unmarshalTree(f.Buf)
			if err != nil {
				return nil, &FormatError{Chunk: chunkDATA, Err: err}
			}
			mainEntries = entries
		case fLegacyViews:
			viewBufs = append(viewBufs, f.Buf)
		case fLegacyTriples:
			store, err := unmarshalTripleStore(f.Buf)
			if err != nil {
				return nil, &FormatError{Chunk: chunkDATA, Err: err}
			}
			m.Triples = store
		case fLegacyProperties:
			props, err := unmarshalProperties(f.Buf)
			if err != nil {
				return nil, &FormatError{Chunk: chunkDATA, Err: err}
			}
			m.Properties = props
		}
	}

	if mainEntries != nil {
		t, err := buildTree(m, "", mainEntries)
		if err != nil {
			return nil, &FormatError{Chunk: chunkDATA, Err: err}
		}
		m.MainTree = t
	}

	legacyURIs = make(map[string]string)
	for _, vb := range viewBufs {
		name, entries, err := unmarshalTree(vb)
		if err != nil {
			return nil, &FormatError{Chunk: chunkDATA, Err: err}
		}
		for _, e := range entries {
			legacyURIs[legacyNodeURI(name, e.id)] = nodeURI(name, e.id)
		}
		t, err := buildTree(m, name, entries)
		if err != nil {
			return nil, &FormatError{Chunk: chunkDATA, Err: err}
		}
		m.ViewTrees[name] = t
		m.viewOrder = append(m.viewOrder, name)
	}

	upgradeLegacyTripleSubjects(m, legacyURIs)

	if err := validateCrossReferences(m); err != nil {
		if !opts.Lenient {
			return nil, err
		}
		if err := repairLeniently(m, err); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// upgradeLegacyTripleSubjects rewrites every triple subject that
// matches a legacy view-node URI to its upgraded 3.1.0 form. Unlike
// node URIs — which [buildTree] already assigns in upgraded form from
// (tree name, id), independent of how the 3.0.0 wire form spelled
// them — triple subjects are literal strings on the wire and need an
// explicit rewrite pass (spec.md §4.7, §8 "Legacy upgrade").
func upgradeLegacyTripleSubjects(m *InkModel, legacyURIs map[string]string) {
	if len(legacyURIs) == 0 {
		return
	}
	old := m.Triples.All()
	upgraded := NewTripleStore()
	for _, t := range old {
		if newSubject, ok := legacyURIs[t.Subject]; ok {
			t.Subject = newSubject
		}
		upgraded.Add(t)
	}
	m.Triples = upgraded
}

// unmarshalLegacyInputConfig adapts the 3.1.0 INPT-chunk decoder for
// the legacy message, which carries the same InputConfigData shape but
// without the trailing sensor-data list (split out as its own legacy
// field number instead).
func unmarshalLegacyInputConfig(buf []byte) (*InputConfigRepository, error) {
	cfg, _, err := unmarshalInputConfigData(buf)
	return cfg, err
}
