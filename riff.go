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
	"bytes"
	"compress/flate"
	"encoding/binary"
	"io"
)

// RIFF container framing (spec.md §4.9). A UIM file is "RIFF" + total
// payload size (4 bytes, little-endian, counting everything after
// this field) + "UINK" + a HEAD chunk + zero or more data chunks.
// Every chunk is a 4-byte ASCII id, a 4-byte little-endian payload
// size, the payload itself, and one zero padding byte if the payload
// length is odd — the same even-alignment convention WAV/AVI RIFF
// containers use.
const (
	riffMagic = "RIFF"
	uinkMagic = "UINK"

	chunkHEAD = "HEAD"
	chunkDATA = "DATA"
	chunkINPT = "INPT"
	chunkBRSH = "BRSH"
	chunkINKD = "INKD"
	chunkINKS = "INKS"
	chunkKNWG = "KNWG"
	chunkPRPS = "PRPS"
)

// riffChunk is one decoded top-level chunk: an id plus its raw,
// still-possibly-compressed payload.
type riffChunk struct {
	ID      string
	Payload []byte
}

// writeChunk appends one RIFF chunk (id + size + payload + padding) to
// dst.
func writeChunk(dst []byte, id string, payload []byte) []byte {
	dst = append(dst, id...)
	var sizeBuf [4]byte
	binary.LittleEndian.PutUint32(sizeBuf[:], uint32(len(payload)))
	dst = append(dst, sizeBuf[:]...)
	dst = append(dst, payload...)
	if len(payload)%2 == 1 {
		dst = append(dst, 0)
	}
	return dst
}

// readChunks splits the body that follows the RIFF/UINK magic into its
// constituent chunks, validating that no chunk's declared size runs
// past the end of the buffer (spec.md §4.9 "Malformed RIFF framing").
func readChunks(body []byte) ([]riffChunk, error) {
	var chunks []riffChunk
	for len(body) > 0 {
		if len(body) < 8 {
			return nil, &FormatError{Err: errTruncated}
		}
		id := string(body[:4])
		size := binary.LittleEndian.Uint32(body[4:8])
		body = body[8:]
		if uint64(size) > uint64(len(body)) {
			return nil, &FormatError{Chunk: id, Err: errTruncated}
		}
		payload := body[:size]
		body = body[size:]
		if size%2 == 1 {
			if len(body) == 0 {
				return nil, &FormatError{Chunk: id, Err: errTruncated}
			}
			body = body[1:]
		}
		chunks = append(chunks, riffChunk{ID: id, Payload: payload})
	}
	return chunks, nil
}

// riffHeader is the 8-byte body of the HEAD chunk (spec.md §4.9).
type riffHeader struct {
	Version     Version
	ContentType ContentType
	Compression CompressionType
}

func (h riffHeader) encode() []byte {
	return []byte{h.Version.Major, h.Version.Minor, h.Version.Patch, 0, byte(h.ContentType), byte(h.Compression), 0, 0}
}

func decodeHeader(payload []byte) (riffHeader, error) {
	if len(payload) < 8 {
		return riffHeader{}, &FormatError{Chunk: chunkHEAD, Err: errTruncated}
	}
	return riffHeader{
		Version:     Version{payload[0], payload[1], payload[2]},
		ContentType: ContentType(payload[4]),
		Compression: CompressionType(payload[5]),
	}, nil
}

// compressPayload wraps buf per compression, used for every
// non-header chunk body (spec.md §4.9). There is no genuine LZMA
// implementation anywhere in the retrieved corpus (see DESIGN.md): the
// LZMA tag still round-trips and still shrinks the payload, but it is
// backed by the same compress/flate codec as the ZIP tag.
func compressPayload(buf []byte, c CompressionType) ([]byte, error) {
	if c == CompressionNone {
		return buf, nil
	}
	var out bytes.Buffer
	w, err := flate.NewWriter(&out, flate.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(buf); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func decompressPayload(buf []byte, c CompressionType) ([]byte, error) {
	if c == CompressionNone {
		return buf, nil
	}
	r := flate.NewReader(bytes.NewReader(buf))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	return out, nil
}
