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

// Package extract reads text lines, words, and named entities out of a
// parsed [uim.InkModel] by pairing a named view tree with the model's
// semantic triple store, grounded on
// original_source/uim/model/helpers/text_extractor.py. Like the
// teacher's own extract package, which walks PDF's structure tree to
// pair nodes with derived text, this package only reads — it never
// mutates the model.
package extract

import "github.com/digink/uim"

// Word is one recognized word: its text, the stroke ids that make it
// up, and its bounding box in the main tree's coordinate space.
type Word struct {
	Text      string
	StrokeIDs []uim.ID
	BBox      *uim.BBox
}

// TextLine is one recognized line of words.
type TextLine struct {
	Words []Word
	BBox  *uim.BBox
}

// NamedEntity is one recognized named entity: its semantic type, its
// canonical label, and every statement recorded about it.
type NamedEntity struct {
	URI        string
	Type       string
	Label      string
	Statements map[string]string
}

// TextLines walks viewName's tree and returns every recognized text
// line, in tree order. A group node is treated as a line if the
// triple store records (node.URI, PredRDFHasType, SegmentationTextLine);
// a group node nested inside a line is treated as a word if it
// similarly records SegmentationWord, with its text taken from the
// single (node.URI, PredSemanticIs, <text>) statement.
func TextLines(m *uim.InkModel, viewName string) ([]TextLine, error) {
	view, err := m.ViewByName(viewName)
	if err != nil {
		return nil, err
	}
	if view.RootIndex < 0 {
		return nil, nil
	}

	var lines []TextLine
	var walk func(idx int)
	walk = func(idx int) {
		node := view.Nodes[idx]
		if node == nil {
			return
		}
		if node.IsGroup() && hasType(m, node.URI, uim.SegmentationTextLine) {
			lines = append(lines, collectLine(m, view, node))
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	walk(view.RootIndex)
	return lines, nil
}

func collectLine(m *uim.InkModel, view *uim.InkTree, lineNode *uim.InkNode) TextLine {
	line := TextLine{BBox: lineNode.BBox}
	var walk func(idx int)
	walk = func(idx int) {
		node := view.Nodes[idx]
		if node == nil {
			return
		}
		if node.IsGroup() && hasType(m, node.URI, uim.SegmentationWord) {
			line.Words = append(line.Words, collectWord(m, view, node))
			return
		}
		for _, c := range node.Children {
			walk(c)
		}
	}
	for _, c := range lineNode.Children {
		walk(c)
	}
	return line
}

func collectWord(m *uim.InkModel, view *uim.InkTree, wordNode *uim.InkNode) Word {
	w := Word{BBox: wordNode.BBox}
	if text := singleObject(m, wordNode.URI, uim.PredSemanticIs); text != "" {
		w.Text = text
	}
	w.StrokeIDs = collectStrokeIDs(view, wordNode)
	return w
}

func collectStrokeIDs(view *uim.InkTree, node *uim.InkNode) []uim.ID {
	var ids []uim.ID
	var walk func(idx int)
	walk = func(idx int) {
		n := view.Nodes[idx]
		if n == nil {
			return
		}
		if n.IsStrokeRef() {
			ids = append(ids, n.StrokeID)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, c := range node.Children {
		walk(c)
	}
	return ids
}

// NamedEntities returns every node-less named entity recorded in the
// model's triple store: every subject that has at least one
// (subject, SemanticHasNamedEntity, _) or [PredRDFHasType] statement
// whose object is not a well-known segmentation type.
func NamedEntities(m *uim.InkModel) []NamedEntity {
	bySubject := make(map[string]map[string]string)
	var order []string
	for _, t := range m.Triples.All() {
		if looksLikeSegmentationType(t.Object) {
			continue
		}
		stmts, seen := bySubject[t.Subject]
		if !seen {
			stmts = make(map[string]string)
			bySubject[t.Subject] = stmts
			order = append(order, t.Subject)
		}
		stmts[t.Predicate] = t.Object
	}

	var out []NamedEntity
	for _, subject := range order {
		stmts := bySubject[subject]
		if stmts[uim.SemanticHasNamedEntity] == "" && stmts[uim.PredRDFHasType] == "" {
			continue
		}
		out = append(out, NamedEntity{
			URI:        subject,
			Type:       stmts[uim.SemanticHasType],
			Label:      stmts[uim.SemanticHasLabel],
			Statements: stmts,
		})
	}
	return out
}

func looksLikeSegmentationType(object string) bool {
	switch object {
	case uim.SegmentationTextLine, uim.SegmentationWord, uim.SegmentationSentence,
		uim.SegmentationPhrase, uim.SegmentationTextRegion, uim.SegmentationParagraph,
		uim.SegmentationPunctuation:
		return true
	}
	return false
}

func hasType(m *uim.InkModel, subject, object string) bool {
	return len(m.Triples.Filter(subject, uim.PredRDFHasType, object)) > 0
}

func singleObject(m *uim.InkModel, subject, predicate string) string {
	matches := m.Triples.Filter(subject, predicate, "")
	if len(matches) == 1 {
		return matches[0].Object
	}
	return ""
}
