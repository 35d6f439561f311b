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

package extract_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/digink/uim"
	"github.com/digink/uim/extract"
)

func buildTextModel(t *testing.T) *uim.InkModel {
	t.Helper()
	m := uim.NewInkModel()
	mask := uim.MaskX | uim.MaskY
	stroke := uim.NewStroke(uim.Spline{LayoutMask: mask, Values: []float64{0, 0, 1, 1}}, uim.NewStyle("will://brush/3.0/pen", nil))
	m.Strokes.Add(stroke)

	require.NoError(t, m.SetMainTree(uim.NewInkTree("")))
	root := uim.NewStrokeGroupNode()
	require.NoError(t, m.MainTree.SetRoot(m, root))
	ref := uim.NewStrokeRefNode(stroke.ID, nil)
	_, err := m.MainTree.AddChild(m, m.MainTree.RootIndex, ref)
	require.NoError(t, err)

	hwr := uim.NewInkTree(string(uim.ViewHWR))
	require.NoError(t, m.AddView(hwr))
	line := uim.NewStrokeGroupNode()
	require.NoError(t, hwr.SetRoot(m, line))
	word := uim.NewStrokeGroupNode()
	wordIdx, err := hwr.AddChild(m, hwr.RootIndex, word)
	require.NoError(t, err)
	wordRef := uim.NewStrokeRefNode(stroke.ID, nil)
	_, err = hwr.AddChild(m, wordIdx, wordRef)
	require.NoError(t, err)

	m.Triples.Add(uim.Triple{Subject: line.URI, Predicate: uim.PredRDFHasType, Object: uim.SegmentationTextLine})
	m.Triples.Add(uim.Triple{Subject: word.URI, Predicate: uim.PredRDFHasType, Object: uim.SegmentationWord})
	m.Triples.Add(uim.Triple{Subject: word.URI, Predicate: uim.PredSemanticIs, Object: "hello"})

	return m
}

func TestTextLinesCollectsWordsAndStrokes(t *testing.T) {
	m := buildTextModel(t)
	lines, err := extract.TextLines(m, string(uim.ViewHWR))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Len(t, lines[0].Words, 1)
	require.Equal(t, "hello", lines[0].Words[0].Text)
	require.Len(t, lines[0].Words[0].StrokeIDs, 1)
}

func TestTextLinesUnknownView(t *testing.T) {
	m := buildTextModel(t)
	_, err := extract.TextLines(m, "does-not-exist")
	require.Error(t, err)
}

func TestNamedEntitiesFiltersSegmentationSubjects(t *testing.T) {
	m := buildTextModel(t)
	m.Triples.Add(uim.Triple{Subject: "uim://entity/1", Predicate: uim.SemanticHasNamedEntity, Object: "will://semantic/3.0/PersonEntity"})
	m.Triples.Add(uim.Triple{Subject: "uim://entity/1", Predicate: uim.SemanticHasLabel, Object: "Ada Lovelace"})

	entities := extract.NamedEntities(m)
	require.Len(t, entities, 1)
	require.Equal(t, "uim://entity/1", entities[0].URI)
	require.Equal(t, "Ada Lovelace", entities[0].Label)
}
