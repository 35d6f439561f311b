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

func TestSetMainTreeRejectsSecondCall(t *testing.T) {
	m := uim.NewInkModel()
	require.NoError(t, m.SetMainTree(uim.NewInkTree("")))
	require.Error(t, m.SetMainTree(uim.NewInkTree("")))
}

func TestSetMainTreeRejectsNamedTree(t *testing.T) {
	m := uim.NewInkModel()
	require.Error(t, m.SetMainTree(uim.NewInkTree("hwr")))
}

func TestAddViewRejectsDuplicateName(t *testing.T) {
	m := uim.NewInkModel()
	require.NoError(t, m.AddView(uim.NewInkTree("hwr")))
	require.Error(t, m.AddView(uim.NewInkTree("hwr")))
}

func TestAddViewRejectsEmptyName(t *testing.T) {
	m := uim.NewInkModel()
	require.Error(t, m.AddView(uim.NewInkTree("")))
}

func TestRemoveViewUnregistersNodes(t *testing.T) {
	m := uim.NewInkModel()
	require.NoError(t, m.SetMainTree(uim.NewInkTree("")))
	root := uim.NewStrokeGroupNode()
	require.NoError(t, m.MainTree.SetRoot(m, root))
	stroke := uim.NewStroke(uim.Spline{LayoutMask: uim.MaskX | uim.MaskY, Values: []float64{0, 0, 1, 1}}, nil)
	m.Strokes.Add(stroke)
	_, err := m.MainTree.AddChild(m, m.MainTree.RootIndex, uim.NewStrokeRefNode(stroke.ID, nil))
	require.NoError(t, err)

	view := uim.NewInkTree("hwr")
	viewRoot := uim.NewStrokeRefNode(stroke.ID, nil)
	require.NoError(t, view.SetRoot(m, viewRoot))
	require.NoError(t, m.AddView(view))

	rootURI := viewRoot.URI
	require.NoError(t, m.RemoveView("hwr"))
	_, err = m.NodeByURI(rootURI)
	require.Error(t, err)
	_, err = m.ViewByName("hwr")
	require.Error(t, err)
}

func TestAddPropertyAllowsDuplicateKeys(t *testing.T) {
	m := uim.NewInkModel()
	m.AddProperty("author", "jane")
	m.AddProperty("author", "john")
	require.Len(t, m.Properties, 2)

	m.RemoveProperty("author")
	require.Len(t, m.Properties, 1)
	require.Equal(t, "john", m.Properties[0].Value)
}

func TestAddTripleRejectsUnregisteredNodeURI(t *testing.T) {
	m := uim.NewInkModel()
	err := m.AddTriple(uim.Triple{
		Subject:   "uim:deadbeefdeadbeefdeadbeefdeadbeef",
		Predicate: uim.PredRDFHasType,
		Object:    uim.SegmentationWord,
	})
	require.Error(t, err)
}

func TestAddTripleAcceptsNonNodeSubject(t *testing.T) {
	m := uim.NewInkModel()
	err := m.AddTriple(uim.Triple{
		Subject:   "uim:ne/deadbeefdeadbeefdeadbeefdeadbeef",
		Predicate: uim.SemanticHasType,
		Object:    "entity-type",
	})
	require.NoError(t, err)
	require.Equal(t, 1, m.Triples.Len())
}

// TestAddTripleRejectsDanglingSubjectInReservedlyNamedView covers the
// views whose names happen to start with the same letter as a
// reserved "uim:" prefix (ViewSegmentation "seg" vs. "uim:stroke/",
// ViewNER "ner" vs. "uim:ne/", ViewMainSensorTree "sdm" vs. nothing
// reserved at all): a dangling subject inside any of them must still
// be caught by invariant I5, not waved through because its view name
// happens to share a first letter with a reserved prefix.
func TestAddTripleRejectsDanglingSubjectInReservedlyNamedView(t *testing.T) {
	for _, viewName := range []string{string(uim.ViewSegmentation), string(uim.ViewNER), string(uim.ViewMainSensorTree)} {
		t.Run(viewName, func(t *testing.T) {
			m := uim.NewInkModel()
			require.NoError(t, m.AddView(uim.NewInkTree(viewName)))

			dangling := "uim:" + viewName + "/deadbeefdeadbeefdeadbeefdeadbeef"
			err := m.AddTriple(uim.Triple{
				Subject:   dangling,
				Predicate: uim.PredRDFHasType,
				Object:    uim.SegmentationWord,
			})
			require.Error(t, err)
		})
	}
}

func TestValidateRejectsDanglingSubjectInReservedlyNamedView(t *testing.T) {
	m := uim.NewInkModel()
	require.NoError(t, m.AddView(uim.NewInkTree(string(uim.ViewSegmentation))))
	m.Triples.Add(uim.Triple{
		Subject:   "uim:seg/deadbeefdeadbeefdeadbeefdeadbeef",
		Predicate: uim.PredRDFHasType,
		Object:    uim.SegmentationWord,
	})
	require.Error(t, m.Validate())
}

func TestValidateCatchesViewStrokeMissingFromMainTree(t *testing.T) {
	m := uim.NewInkModel()
	require.NoError(t, m.SetMainTree(uim.NewInkTree("")))
	require.NoError(t, m.MainTree.SetRoot(m, uim.NewStrokeGroupNode()))

	strayID := uim.NewRandomID()
	view := uim.NewInkTree("hwr")
	require.NoError(t, view.SetRoot(m, uim.NewStrokeRefNode(strayID, nil)))
	m.ViewTrees["hwr"] = view

	require.Error(t, m.Validate())
}

// TestNamedEntityAndStrokeSubjectURIsSurviveRoundTrip exercises the
// "HWR view with named entity" scenario (spec.md §6, scenario 3): a
// word group in a view carries a PART_OF_NAMED_ENTITY triple pointing
// at a named-entity subject URI, and a stroke carries a triple against
// its own stroke-subject URI rather than any tree node's URI.
func TestNamedEntityAndStrokeSubjectURIsSurviveRoundTrip(t *testing.T) {
	m := uim.NewInkModel()
	require.NoError(t, m.SetMainTree(uim.NewInkTree("")))
	require.NoError(t, m.MainTree.SetRoot(m, uim.NewStrokeGroupNode()))

	stroke := uim.NewStroke(uim.Spline{LayoutMask: uim.MaskX | uim.MaskY, Values: []float64{0, 0, 1, 1}}, nil)
	m.Strokes.Add(stroke)
	_, err := m.MainTree.AddChild(m, m.MainTree.RootIndex, uim.NewStrokeRefNode(stroke.ID, nil))
	require.NoError(t, err)

	view := uim.NewInkTree(string(uim.ViewHWR))
	wordGroup := uim.NewStrokeGroupNode()
	require.NoError(t, view.SetRoot(m, wordGroup))
	_, err = view.AddChild(m, view.RootIndex, uim.NewStrokeRefNode(stroke.ID, nil))
	require.NoError(t, err)
	require.NoError(t, m.AddView(view))

	_, neURI := m.NewNamedEntitySubject()
	require.NoError(t, m.AddTriple(uim.Triple{Subject: wordGroup.URI, Predicate: uim.PredSemanticIs, Object: uim.SegmentationWord}))
	require.NoError(t, m.AddTriple(uim.Triple{Subject: wordGroup.URI, Predicate: uim.SemanticHasNamedEntity, Object: neURI}))
	require.NoError(t, m.AddTriple(uim.Triple{Subject: neURI, Predicate: uim.SemanticHasLabel, Object: "Ink"}))
	require.NoError(t, m.AddTriple(uim.Triple{Subject: neURI, Predicate: uim.SemanticHasArticle, Object: "https://en.wikipedia.org/wiki/Ink"}))

	strokeSubject := uim.StrokeSubjectURI(stroke.ID)
	require.NoError(t, m.AddTriple(uim.Triple{Subject: strokeSubject, Predicate: uim.SemanticHasCategory, Object: "handwriting"}))

	viewSubject := uim.ViewSubjectURI(view.Name)
	require.NoError(t, m.AddTriple(uim.Triple{Subject: viewSubject, Predicate: uim.PredRDFHasType, Object: uim.SegmentationTextLine}))

	require.NoError(t, m.Validate())

	encoded, err := uim.Encode(m)
	require.NoError(t, err)
	decoded, err := uim.Parse(encoded)
	require.NoError(t, err)
	require.Equal(t, m.Triples.All(), decoded.Triples.All())
}

func TestStrokeRepositoryAssignsIDAndDedupes(t *testing.T) {
	repo := uim.NewStrokeRepository()
	stroke := uim.NewStroke(uim.Spline{LayoutMask: uim.MaskX | uim.MaskY, Values: []float64{0, 0}}, nil)
	require.False(t, stroke.ID.IsZero())
	// Clear the constructor-assigned ID so Add has to assign one.
	stroke.ID = uim.ID{}

	id := repo.Add(stroke)
	require.False(t, id.IsZero())
	require.Equal(t, 1, repo.Len())

	repo.Add(stroke)
	require.Equal(t, 1, repo.Len())

	got, err := repo.Get(id)
	require.NoError(t, err)
	require.Same(t, stroke, got)
}
