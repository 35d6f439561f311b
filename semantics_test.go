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

package uim_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/digink/uim"
)

func TestTripleStoreAddPreservesDuplicates(t *testing.T) {
	store := uim.NewTripleStore()
	triple := uim.Triple{
		Subject:   "uim:ne/deadbeefdeadbeefdeadbeefdeadbeef",
		Predicate: uim.SemanticHasType,
		Object:    "entity-type",
	}
	store.Add(triple)
	store.Add(triple)

	require.Equal(t, 2, store.Len())
	require.Equal(t, []uim.Triple{triple, triple}, store.All())
}

func TestEncodeParseRoundTripPreservesDuplicateTriples(t *testing.T) {
	m := buildSampleModel(t)
	dup := m.Triples.All()[0]
	m.Triples.Add(dup)
	require.Equal(t, 2, m.Triples.Len())

	encoded, err := uim.Encode(m)
	require.NoError(t, err)
	decoded, err := uim.Parse(encoded)
	require.NoError(t, err)

	require.Equal(t, 2, decoded.Triples.Len())
	require.Equal(t, m.Triples.All(), decoded.Triples.All())
}
