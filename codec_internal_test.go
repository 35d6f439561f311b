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

import "testing"

// These exercise repairOne/repairLeniently directly against violation
// shapes that a well-formed encode can never reproduce (Encode already
// runs the same checks Validate performs), so they build the dangling
// state in memory rather than round-tripping through Parse.

func TestRepairOneDropsMainTreeNodeMissingStroke(t *testing.T) {
	m := NewInkModel()
	if err := m.SetMainTree(NewInkTree("")); err != nil {
		t.Fatal(err)
	}
	node := NewStrokeRefNode(NewRandomID(), nil)
	if err := m.MainTree.SetRoot(m, node); err != nil {
		t.Fatal(err)
	}

	ce := &ConsistencyError{Where: node.URI, Err: &NotFoundError{Kind: "stroke", Key: "missing"}}
	if !repairOne(m, ce) {
		t.Fatal("expected repairOne to recognize a missing-stroke main-tree violation")
	}
	if _, err := m.NodeByURI(node.URI); err == nil {
		t.Fatal("node should have been unregistered")
	}
	if m.MainTree.RootIndex != -1 {
		t.Fatal("main tree should have lost its root")
	}
}

func TestRepairOneDropsViewNodeMissingFromMainTree(t *testing.T) {
	m := NewInkModel()
	view := NewInkTree("hwr")
	node := NewStrokeRefNode(NewRandomID(), nil)
	// SetRoot, unlike AddChild, does not enforce main-tree membership,
	// which is how this situation can reach a decoded model: the wire
	// form simply lists a view stroke-ref whose stroke never appears
	// in the main tree's own chunk.
	if err := view.SetRoot(m, node); err != nil {
		t.Fatal(err)
	}
	if err := m.AddView(view); err != nil {
		t.Fatal(err)
	}

	ce := &ConsistencyError{Where: node.URI, Err: &MissingStrokeInMainTreeError{StrokeID: node.StrokeID.SForm()}}
	if !repairOne(m, ce) {
		t.Fatal("expected repairOne to recognize a view stroke missing from the main tree")
	}
	if _, err := m.NodeByURI(node.URI); err == nil {
		t.Fatal("node should have been unregistered")
	}
}

func TestRepairOneDropsDanglingTripleSubject(t *testing.T) {
	m := NewInkModel()
	m.Triples.Add(Triple{Subject: "uim:deadbeefdeadbeefdeadbeefdeadbeef", Predicate: PredRDFHasType, Object: SegmentationWord})

	ce := &ConsistencyError{Where: "uim:deadbeefdeadbeefdeadbeefdeadbeef", Err: &NotFoundError{Kind: "node", Key: "uim:deadbeefdeadbeefdeadbeefdeadbeef"}}
	if !repairOne(m, ce) {
		t.Fatal("expected repairOne to recognize a dangling triple subject")
	}
	if m.Triples.Len() != 0 {
		t.Fatal("dangling triple should have been dropped")
	}
}

func TestRepairOneGivesUpOnUnrecognizedViolation(t *testing.T) {
	m := NewInkModel()
	ce := &ConsistencyError{Where: "uim:x", Err: &DuplicateURIError{URI: "uim:x"}}
	if repairOne(m, ce) {
		t.Fatal("expected repairOne to decline an unrecognized violation kind")
	}
}

func TestRepairLenientlyIteratesUntilClean(t *testing.T) {
	m := NewInkModel()
	if err := m.SetMainTree(NewInkTree("")); err != nil {
		t.Fatal(err)
	}
	if err := m.MainTree.SetRoot(m, NewStrokeGroupNode()); err != nil {
		t.Fatal(err)
	}

	strayA := NewStrokeRefNode(NewRandomID(), nil)
	strayB := NewStrokeRefNode(NewRandomID(), nil)
	if _, err := m.MainTree.AddChild(m, m.MainTree.RootIndex, strayA); err != nil {
		t.Fatal(err)
	}
	if _, err := m.MainTree.AddChild(m, m.MainTree.RootIndex, strayB); err != nil {
		t.Fatal(err)
	}

	if err := repairLeniently(m, validateCrossReferences(m)); err != nil {
		t.Fatalf("expected both dangling stroke refs to be repaired, got %v", err)
	}
	if err := validateCrossReferences(m); err != nil {
		t.Fatalf("model should validate clean after repair, got %v", err)
	}
}

func TestRepairLenientlyGivesUpWithoutFalseSuccess(t *testing.T) {
	m := NewInkModel()
	err := &ConsistencyError{Where: "uim:x", Err: &DuplicateURIError{URI: "uim:x"}}
	if got := repairLeniently(m, err); got != err {
		t.Fatalf("expected repairLeniently to return the original error unchanged, got %v", got)
	}
}
