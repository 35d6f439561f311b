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
	"encoding/binary"
	"errors"
	"log"
)

// ParseOptions controls decoder leniency (spec.md §7 "lenient-decode
// mode").
type ParseOptions struct {
	// Lenient, when true, downgrades a post-parse ConsistencyError
	// (a dangling id, a stroke referenced by a view but missing
	// from the main tree) to a dropped reference instead of
	// aborting the decode.
	Lenient bool
}

// Encode serializes m as a UIM 3.1.0 binary file with no compression
// (spec.md §4.9 "Encoder contract"). Use [EncodeCompressed] to choose
// a compression scheme.
func Encode(m *InkModel) ([]byte, error) {
	return EncodeCompressed(m, CompressionNone)
}

// EncodeCompressed serializes m as a UIM 3.1.0 binary file, applying
// compression to every non-header chunk payload (spec.md §4.9).
func EncodeCompressed(m *InkModel, compression CompressionType) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	sections := [][2]any{
		{chunkINPT, marshalInputConfigData(m.InputConfig, m.SensorData)},
		{chunkBRSH, marshalBrushes(m.Brushes)},
		{chunkINKD, marshalInkData(m.Strokes.All())},
		{chunkINKS, marshalInkStructure(m)},
		{chunkKNWG, marshalTripleStore(m.Triples)},
		{chunkPRPS, marshalProperties(m.Properties)},
	}

	var body []byte
	head := riffHeader{Version: V3_1_0, ContentType: ContentTypeProtobuf, Compression: compression}
	body = writeChunk(body, chunkHEAD, head.encode())
	body = writeChunk(body, chunkDATA, nil)
	for _, sec := range sections {
		id := sec[0].(string)
		payload := sec[1].([]byte)
		compressed, err := compressPayload(payload, compression)
		if err != nil {
			return nil, err
		}
		body = writeChunk(body, id, compressed)
	}

	out := make([]byte, 0, 12+len(body))
	out = append(out, riffMagic...)
	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(4+len(body)))
	out = append(out, sizeBuf[:]...)
	out = append(out, uinkMagic...)
	out = append(out, body...)
	return out, nil
}

// Parse reads a UIM binary file, auto-detecting its on-disk version
// (3.0.0 or 3.1.0) from the HEAD chunk and normalizing either into the
// same in-memory [InkModel] shape (spec.md §4.9).
func Parse(data []byte) (*InkModel, error) {
	return ParseWithOptions(data, ParseOptions{})
}

// ParseWithOptions is [Parse] with explicit leniency control.
func ParseWithOptions(data []byte, opts ParseOptions) (*InkModel, error) {
	if len(data) < 12 || string(data[0:4]) != riffMagic || string(data[8:12]) != uinkMagic {
		return nil, &FormatError{Err: errBadMagic}
	}
	totalSize := binary.LittleEndian.Uint32(data[4:8])
	if uint64(totalSize) > uint64(len(data)-8) {
		return nil, &FormatError{Err: errTruncated}
	}
	body := data[12 : 8+totalSize]

	chunks, err := readChunks(body)
	if err != nil {
		return nil, err
	}
	if len(chunks) < 2 || chunks[0].ID != chunkHEAD {
		return nil, &FormatError{Err: errBadHeaderChunk}
	}
	header, err := decodeHeader(chunks[0].Payload)
	if err != nil {
		return nil, err
	}
	if chunks[1].ID != chunkDATA {
		return nil, &FormatError{Chunk: chunkDATA, Err: errBadHeaderChunk}
	}

	switch header.Version.Major {
	case 3:
		switch header.Version.Minor {
		case 1:
			return decode31(chunks[2:], header, opts)
		case 0:
			return decode30(chunks[1].Payload, header, opts)
		}
	}
	return nil, &UnsupportedVersionError{Major: header.Version.Major, Minor: header.Version.Minor, Patch: header.Version.Patch}
}

// decode31 interprets the chunked body of a UIM 3.1.0 file (spec.md
// §4.9). Unknown chunk ids are skipped, per the decoder contract.
func decode31(chunks []riffChunk, header riffHeader, opts ParseOptions) (*InkModel, error) {
	m := NewInkModel()
	m.Version = header.Version

	for _, c := range chunks {
		payload, err := decompressPayload(c.Payload, header.Compression)
		if err != nil {
			return nil, &FormatError{Chunk: c.ID, Err: err}
		}
		switch c.ID {
		case chunkINPT:
			cfg, sensor, err := unmarshalInputConfigData(payload)
			if err != nil {
				return nil, &FormatError{Chunk: c.ID, Err: err}
			}
			m.InputConfig = cfg
			m.SensorData = sensor
		case chunkBRSH:
			brushes, err := unmarshalBrushes(payload)
			if err != nil {
				return nil, &FormatError{Chunk: c.ID, Err: err}
			}
			m.Brushes = brushes
		case chunkINKD:
			strokes, err := unmarshalInkData(payload)
			if err != nil {
				return nil, &FormatError{Chunk: c.ID, Err: err}
			}
			for _, s := range strokes {
				m.Strokes.Add(s)
			}
		case chunkINKS:
			if err := unmarshalInkStructure(m, payload); err != nil {
				return nil, &FormatError{Chunk: c.ID, Err: err}
			}
		case chunkKNWG:
			store, err := unmarshalTripleStore(payload)
			if err != nil {
				return nil, &FormatError{Chunk: c.ID, Err: err}
			}
			m.Triples = store
		case chunkPRPS:
			props, err := unmarshalProperties(payload)
			if err != nil {
				return nil, &FormatError{Chunk: c.ID, Err: err}
			}
			m.Properties = props
		}
		// Unknown chunk id: skip silently (size was already
		// consumed by readChunks).
	}

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

// repairLeniently implements the lenient-decode downgrade path (spec.md
// §7): every ConsistencyError validateCrossReferences can raise is
// downgraded to a logged warning plus a dropped reference, re-checking
// after each repair since dropping one dangling reference can surface
// another (e.g. dropping a stray main-tree node can orphan a view that
// referenced its stroke). Gives up and returns err unchanged if a
// violation has no known repair, rather than pretending the decode
// succeeded.
func repairLeniently(m *InkModel, err error) error {
	budget := len(m.SensorData.All()) + len(m.Triples.All()) + countTreeNodes(m) + 1
	for i := 0; i < budget; i++ {
		if err == nil {
			return nil
		}
		if !repairOne(m, err) {
			return err
		}
		err = validateCrossReferences(m)
	}
	return err
}

func countTreeNodes(m *InkModel) int {
	n := 0
	if m.MainTree != nil {
		n += len(m.MainTree.Nodes)
	}
	for _, t := range m.ViewTrees {
		n += len(t.Nodes)
	}
	return n
}

// repairOne drops whatever single reference caused err and logs the
// repair, reporting whether it recognized the violation.
func repairOne(m *InkModel, err error) bool {
	var ce *ConsistencyError
	if !errors.As(err, &ce) {
		return false
	}
	switch inner := ce.Err.(type) {
	case *NotFoundError:
		switch inner.Kind {
		case "input context", "sensor context", "sensor channel":
			return dropSensorDataFrame(m, ce.Where)
		case "stroke":
			return dropNodeByURI(m, m.MainTree, ce.Where)
		case "node":
			log.Printf("uim: lenient decode dropping dangling triple subject %s", ce.Where)
			m.Triples.RemoveForSubject(ce.Where)
			return true
		}
	case *MissingStrokeInMainTreeError:
		for _, t := range m.ViewTrees {
			if dropNodeByURI(m, t, ce.Where) {
				return true
			}
		}
	}
	return false
}

// dropSensorDataFrame removes the sensor-data frame identified by
// sForm (its [ID.SForm] string) from the model.
func dropSensorDataFrame(m *InkModel, sForm string) bool {
	kept := NewSensorDataRepository()
	dropped := false
	for _, sd := range m.SensorData.All() {
		if sd.ID.SForm() == sForm {
			dropped = true
			continue
		}
		kept.Add(sd)
	}
	if !dropped {
		return false
	}
	log.Printf("uim: lenient decode dropping sensor-data frame %s with an unresolvable input context or channel", sForm)
	m.SensorData = kept
	return true
}

// dropNodeByURI finds the node addressed by uri in tree and detaches
// its subtree, if tree contains it.
func dropNodeByURI(m *InkModel, tree *InkTree, uri string) bool {
	if tree == nil {
		return false
	}
	for i, n := range tree.Nodes {
		if n != nil && n.URI == uri {
			log.Printf("uim: lenient decode dropping node %s referencing a missing or unregistered stroke", uri)
			_ = tree.Unregister(m, i)
			return true
		}
	}
	return false
}

// validateCrossReferences checks the post-parse invariants spec.md §7
// calls out explicitly: a sensor_data_frame.input_context_id must
// resolve, and every channel id within a frame must belong to the
// context it references (spec.md §3.2/§3.3), on top of the checks
// [InkModel.Validate] already performs.
func validateCrossReferences(m *InkModel) error {
	for _, sd := range m.SensorData.All() {
		validIDs, err := m.InputConfig.AllChannelIDsFor(sd.InputContextID)
		if err != nil {
			return &ConsistencyError{Where: sd.ID.SForm(), Err: err}
		}
		for _, c := range sd.Channels {
			found := false
			for _, v := range validIDs {
				if v == c.SensorChannelID {
					found = true
					break
				}
			}
			if !found {
				return &ConsistencyError{Where: sd.ID.SForm(), Err: &NotFoundError{Kind: "sensor channel", Key: c.SensorChannelID.SForm()}}
			}
		}
	}
	return m.Validate()
}

