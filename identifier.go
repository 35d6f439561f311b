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
	"crypto/md5"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ID is a 128-bit identifier, used either as a random-id (identity is
// the value itself, assigned once at construction) or a hash-id
// (identity is a deterministic digest of a value object's content, see
// [NewHashID]). Both kinds share the same wire shape and string forms;
// nothing about an ID value records which kind produced it, matching
// spec.md's "do not rely on object identity anywhere" design note.
type ID [16]byte

// NewRandomID returns a fresh random 128-bit identifier, used for
// mutable leaves: strokes, sensor-data frames, tree nodes, named
// entities.
func NewRandomID() ID {
	return ID(uuid.New())
}

// Component is one canonicalized token fed into a Hash-Id digest.
// Use [IntComponent], [FloatComponent], or [StringComponent] to build
// the ordered component list for [NewHashID].
type Component string

// IntComponent canonicalizes an integer as its decimal text.
func IntComponent(v int64) Component {
	return Component(strconv.FormatInt(v, 10))
}

// FloatComponent canonicalizes a float to six decimal digits after the
// point, with trailing zeros (and a trailing point) trimmed, per
// spec.md §4.1.
func FloatComponent(v float64) Component {
	s := strconv.FormatFloat(v, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return Component(s)
}

// StringComponent canonicalizes a UTF-8 string verbatim.
func StringComponent(v string) Component {
	return Component(v)
}

// AbsentComponent is the canonical token for an absent optional
// component: an empty string, but the surrounding NUL separators are
// still emitted so the position of later components doesn't shift.
const AbsentComponent Component = ""

// NewHashID derives a deterministic 128-bit identifier from a tag and
// an ordered list of canonicalized components, by taking the first 16
// bytes of MD5(tag || NUL || c1 || NUL || c2 || NUL || ...). Two value
// objects with equal semantic content produce byte-identical ids
// (spec.md §3.1 Invariant); re-hashing an unchanged value is idempotent.
func NewHashID(tag string, components ...Component) ID {
	h := md5.New()
	h.Write([]byte(tag))
	for _, c := range components {
		h.Write([]byte{0})
		h.Write([]byte(c))
	}
	sum := h.Sum(nil)
	var id ID
	copy(id[:], sum[:16])
	return id
}

// SForm returns the 32-char lowercase hexadecimal representation.
func (id ID) SForm() string {
	return fmt.Sprintf("%032x", [16]byte(id))
}

// HForm returns the 8-4-4-4-12 lowercase hexadecimal representation.
func (id ID) HForm() string {
	s := id.SForm()
	return strings.Join([]string{s[0:8], s[8:12], s[12:16], s[16:20], s[20:32]}, "-")
}

func (id ID) String() string { return id.HForm() }

// IsZero reports whether id is the all-zero identifier, used as the
// sentinel for "no id assigned" in optional reference fields.
func (id ID) IsZero() bool {
	return id == ID{}
}

// ParseID parses either the S-form or the H-form of an identifier.
func ParseID(s string) (ID, error) {
	clean := strings.ReplaceAll(s, "-", "")
	if len(clean) != 32 {
		return ID{}, &InvalidArgumentError{Msg: fmt.Sprintf("malformed identifier: %q", s)}
	}
	var raw [16]byte
	for i := 0; i < 16; i++ {
		b, err := strconv.ParseUint(clean[2*i:2*i+2], 16, 8)
		if err != nil {
			return ID{}, &InvalidArgumentError{Msg: fmt.Sprintf("malformed identifier: %q", s)}
		}
		raw[i] = byte(b)
	}
	return ID(raw), nil
}
