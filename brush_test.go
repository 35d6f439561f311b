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

func newTriangleBrush(name string) *uim.VectorBrush {
	return &uim.VectorBrush{
		Name: name,
		Prototypes: []*uim.VectorBrushPrototype{
			{Points: []uim.BrushPoint{{X: 0, Y: 0, Size: 1, Alpha: 1}, {X: 1, Y: 0, Size: 1, Alpha: 1}}},
		},
	}
}

func TestVectorBrushLookupAndRemoval(t *testing.T) {
	repo := uim.NewBrushRepository()
	brush := newTriangleBrush("app://qa-test-app/vector-brush/Triangle")
	require.NoError(t, repo.AddVectorBrush(brush))

	got, ok := repo.VectorBrushByName(brush.Name)
	require.True(t, ok)
	require.Equal(t, brush, got)

	repo.RemoveVectorBrush(brush.Name)
	_, ok = repo.VectorBrushByName(brush.Name)
	require.False(t, ok)
}

func TestRemoveVectorBrushIsNoOpOnUnknownName(t *testing.T) {
	repo := uim.NewBrushRepository()
	require.NotPanics(t, func() { repo.RemoveVectorBrush("app://unknown/vector-brush/Nope") })
}

func TestRemoveRasterBrushIsNoOpOnUnknownName(t *testing.T) {
	repo := uim.NewBrushRepository()
	require.NotPanics(t, func() { repo.RemoveRasterBrush("app://unknown/raster-brush/Nope") })
}

func TestAddVectorBrushReplacesSameName(t *testing.T) {
	repo := uim.NewBrushRepository()
	name := "app://qa-test-app/vector-brush/Triangle"
	first := newTriangleBrush(name)
	second := newTriangleBrush(name)
	second.Spacing = 2

	require.NoError(t, repo.AddVectorBrush(first))
	require.NoError(t, repo.AddVectorBrush(second))

	require.Len(t, repo.VectorBrushes(), 1)
	got, ok := repo.VectorBrushByName(name)
	require.True(t, ok)
	require.Equal(t, second, got)
}
