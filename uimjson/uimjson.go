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

// Package uimjson provides a JSON rendering of an [uim.InkModel], for
// tooling that wants to inspect or hand-edit a document without the
// binary RIFF/protobuf codec, grounded on
// original_source/uim/model/helpers/serialize.py's json_encode. Unlike
// serialize.py, which dumps every nested value object verbatim, this
// package carries only the ink, tree, triple, property, and brush
// surface; input configuration and sensor data stay binary-only, since
// this is documented in spec.md's Non-goals as a thin, derived
// convenience rather than a second persistence format.
package uimjson

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/digink/uim"
)

type document struct {
	Version         string      `json:"version"`
	UnitScaleFactor float64     `json:"unitScaleFactor"`
	Properties      []kv        `json:"properties,omitempty"`
	Brushes         brushesDoc  `json:"brushes"`
	Strokes         []strokeDoc `json:"strokes"`
	MainTree        *nodeDoc    `json:"mainTree,omitempty"`
	ViewTrees       []viewDoc   `json:"viewTrees,omitempty"`
	Triples         []tripleDoc `json:"triples,omitempty"`
}

type kv struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type brushesDoc struct {
	Vector []vectorBrushDoc `json:"vector,omitempty"`
	Raster []rasterBrushDoc `json:"raster,omitempty"`
}

type vectorBrushDoc struct {
	Name    string              `json:"name"`
	Spacing float64             `json:"spacing"`
	Shapes  []vectorBrushShape  `json:"prototypes"`
}

type vectorBrushShape struct {
	URI      string        `json:"uri,omitempty"`
	MinScale float64       `json:"minScale"`
	Points   []brushPoint  `json:"points,omitempty"`
}

type brushPoint struct {
	X, Y, Size, Rotation, Red, Green, Blue, Alpha float64
}

type rasterBrushDoc struct {
	Name               string  `json:"name"`
	Spacing            float64 `json:"spacing"`
	ScatterX           float64 `json:"scatterX"`
	ScatterY           float64 `json:"scatterY"`
	Rotation           byte    `json:"rotation"`
	RasterOpacity      float64 `json:"rasterOpacity"`
	BlendMode          byte    `json:"blendMode"`
	ShapeTextureURI    string  `json:"shapeTextureUri,omitempty"`
	FillTextureURI     string  `json:"fillTextureUri,omitempty"`
	FillWidth          float64 `json:"fillWidth"`
	FillHeight         float64 `json:"fillHeight"`
	RandomizeFill      bool    `json:"randomizeFill"`
}

type strokeDoc struct {
	ID           string    `json:"id"`
	LayoutMask   []string  `json:"layout"`
	Values       []float64 `json:"values"`
	TStart       float64   `json:"tStart"`
	TEnd         float64   `json:"tEnd"`
	BrushURI     string    `json:"brushUri,omitempty"`
	RenderMode   string    `json:"renderMode,omitempty"`
	RandomSeed   uint64    `json:"randomSeed,omitempty"`
}

type nodeDoc struct {
	ID       string    `json:"id"`
	URI      string    `json:"uri"`
	Kind     string    `json:"kind"`
	StrokeID string    `json:"strokeId,omitempty"`
	Children []*nodeDoc `json:"children,omitempty"`
}

type viewDoc struct {
	Name string   `json:"name"`
	Root *nodeDoc `json:"root,omitempty"`
}

type tripleDoc struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// Marshal renders m as an indented JSON document. It never fails on a
// well-formed model; the error return exists for json.Marshal's own
// sake.
func Marshal(m *uim.InkModel) ([]byte, error) {
	doc := document{
		Version:         m.Version.String(),
		UnitScaleFactor: m.UnitScaleFactor,
	}
	for _, p := range m.Properties {
		doc.Properties = append(doc.Properties, kv{Key: p.Key, Value: p.Value})
	}
	for _, b := range m.Brushes.VectorBrushes() {
		doc.Brushes.Vector = append(doc.Brushes.Vector, vectorBrushFromModel(b))
	}
	for _, b := range m.Brushes.RasterBrushes() {
		doc.Brushes.Raster = append(doc.Brushes.Raster, rasterBrushFromModel(b))
	}
	for _, s := range m.Strokes.All() {
		doc.Strokes = append(doc.Strokes, strokeFromModel(s))
	}
	if m.MainTree != nil && m.MainTree.RootIndex >= 0 {
		doc.MainTree = nodeFromTree(m.MainTree, m.MainTree.RootIndex)
	}
	for _, name := range sortedViewNames(m) {
		t := m.ViewTrees[name]
		var root *nodeDoc
		if t.RootIndex >= 0 {
			root = nodeFromTree(t, t.RootIndex)
		}
		doc.ViewTrees = append(doc.ViewTrees, viewDoc{Name: name, Root: root})
	}
	for _, t := range m.Triples.All() {
		doc.Triples = append(doc.Triples, tripleDoc{Subject: t.Subject, Predicate: t.Predicate, Object: t.Object})
	}
	return json.MarshalIndent(doc, "", "  ")
}

func sortedViewNames(m *uim.InkModel) []string {
	names := make([]string, 0, len(m.ViewTrees))
	for name := range m.ViewTrees {
		names = append(names, name)
	}
	return names
}

func vectorBrushFromModel(b *uim.VectorBrush) vectorBrushDoc {
	out := vectorBrushDoc{Name: b.Name, Spacing: b.Spacing}
	for _, p := range b.Prototypes {
		shape := vectorBrushShape{URI: p.URI, MinScale: p.MinScale}
		for _, pt := range p.Points {
			shape.Points = append(shape.Points, brushPoint{
				X: pt.X, Y: pt.Y, Size: pt.Size, Rotation: pt.Rotation,
				Red: pt.Red, Green: pt.Green, Blue: pt.Blue, Alpha: pt.Alpha,
			})
		}
		out.Shapes = append(out.Shapes, shape)
	}
	return out
}

func rasterBrushFromModel(b *uim.RasterBrush) rasterBrushDoc {
	return rasterBrushDoc{
		Name: b.Name, Spacing: b.Spacing, ScatterX: b.ScatterX, ScatterY: b.ScatterY,
		Rotation: byte(b.Rotation), RasterOpacity: b.RasterOpacity, BlendMode: byte(b.BlendMode),
		ShapeTextureURI: b.ShapeTextureURI, FillTextureURI: b.FillTextureURI,
		FillWidth: b.FillWidth, FillHeight: b.FillHeight, RandomizeFill: b.RandomizeFill,
	}
}

func strokeFromModel(s *uim.Stroke) strokeDoc {
	doc := strokeDoc{
		ID:       s.ID.SForm(),
		Values:   s.Spline.Values,
		TStart:   s.Spline.TStart,
		TEnd:     s.Spline.TEnd,
		RandomSeed: s.RandomSeed,
	}
	for _, a := range s.Spline.LayoutMask.Attributes() {
		doc.LayoutMask = append(doc.LayoutMask, a.String())
	}
	if s.Style != nil {
		doc.BrushURI = s.Style.BrushURI
		doc.RenderMode = s.Style.RenderModeURI
	}
	return doc
}

func nodeFromTree(t *uim.InkTree, idx int) *nodeDoc {
	n := t.Node(idx)
	doc := &nodeDoc{ID: n.ID.SForm(), URI: n.URI}
	if n.IsGroup() {
		doc.Kind = "group"
		for _, c := range n.Children {
			doc.Children = append(doc.Children, nodeFromTree(t, c))
		}
	} else {
		doc.Kind = "strokeRef"
		doc.StrokeID = n.StrokeID.SForm()
	}
	return doc
}

// documentSchema is a minimal JSON Schema for the shape [Marshal]
// produces, used by [Unmarshal] to reject malformed input before it is
// mapped into model types.
const documentSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["version", "strokes"],
	"properties": {
		"version": {"type": "string"},
		"unitScaleFactor": {"type": "number"},
		"strokes": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "layout", "values"],
				"properties": {
					"id": {"type": "string"},
					"layout": {"type": "array", "items": {"type": "string"}},
					"values": {"type": "array", "items": {"type": "number"}}
				}
			}
		},
		"triples": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["subject", "predicate", "object"]
			}
		}
	}
}`

var schema = func() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("uim-document.json", bytes.NewReader([]byte(documentSchema))); err != nil {
		panic(err)
	}
	s, err := compiler.Compile("uim-document.json")
	if err != nil {
		panic(err)
	}
	return s
}()

// Unmarshal validates data against [documentSchema] and maps it into a
// fresh [uim.InkModel]. It rebuilds strokes, the main tree, named view
// trees, properties, brushes, and triples; see the package doc comment
// for what is intentionally left out.
func Unmarshal(data []byte) (*uim.InkModel, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("uimjson: invalid json: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("uimjson: schema validation: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	m := uim.NewInkModel()
	version, err := uim.ParseVersion(doc.Version)
	if err != nil {
		return nil, err
	}
	m.Version = version
	if doc.UnitScaleFactor != 0 {
		m.UnitScaleFactor = doc.UnitScaleFactor
	}
	for _, p := range doc.Properties {
		m.AddProperty(p.Key, p.Value)
	}
	for _, b := range doc.Brushes.Vector {
		if err := m.Brushes.AddVectorBrush(vectorBrushToModel(b)); err != nil {
			return nil, err
		}
	}
	for _, b := range doc.Brushes.Raster {
		if err := m.Brushes.AddRasterBrush(rasterBrushToModel(b)); err != nil {
			return nil, err
		}
	}

	strokeByDocID := make(map[string]uim.ID, len(doc.Strokes))
	for _, sd := range doc.Strokes {
		stroke, err := strokeToModel(sd)
		if err != nil {
			return nil, err
		}
		m.Strokes.Add(stroke)
		strokeByDocID[sd.ID] = stroke.ID
	}

	if doc.MainTree != nil {
		tree := uim.NewInkTree("")
		if err := m.SetMainTree(tree); err != nil {
			return nil, err
		}
		if err := buildNode(m, tree, -1, doc.MainTree, strokeByDocID); err != nil {
			return nil, err
		}
	}
	for _, vd := range doc.ViewTrees {
		tree := uim.NewInkTree(vd.Name)
		if err := m.AddView(tree); err != nil {
			return nil, err
		}
		if vd.Root != nil {
			if err := buildNode(m, tree, -1, vd.Root, strokeByDocID); err != nil {
				return nil, err
			}
		}
	}

	for _, td := range doc.Triples {
		if err := m.AddTriple(uim.Triple{Subject: td.Subject, Predicate: td.Predicate, Object: td.Object}); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func buildNode(m *uim.InkModel, tree *uim.InkTree, parentIdx int, nd *nodeDoc, strokeByDocID map[string]uim.ID) error {
	var node *uim.InkNode
	if nd.Kind == "strokeRef" {
		strokeID, ok := strokeByDocID[nd.StrokeID]
		if !ok {
			return fmt.Errorf("uimjson: node %s references unknown stroke %s", nd.URI, nd.StrokeID)
		}
		node = uim.NewStrokeRefNode(strokeID, nil)
	} else {
		node = uim.NewStrokeGroupNode()
	}
	id, idErr := uim.ParseID(nd.ID)
	if idErr != nil {
		return idErr
	}
	node.ID = id

	var idx int
	var err error
	if parentIdx < 0 {
		err = tree.SetRoot(m, node)
		idx = tree.RootIndex
	} else {
		idx, err = tree.AddChild(m, parentIdx, node)
	}
	if err != nil {
		return err
	}
	for _, child := range nd.Children {
		if err := buildNode(m, tree, idx, child, strokeByDocID); err != nil {
			return err
		}
	}
	return nil
}

func strokeToModel(sd strokeDoc) (*uim.Stroke, error) {
	var mask uim.LayoutMask
	nameToAttr := map[string]uim.Attribute{
		"X": uim.AttrX, "Y": uim.AttrY, "Z": uim.AttrZ, "SIZE": uim.AttrSize, "ROTATION": uim.AttrRotation,
		"RED": uim.AttrRed, "GREEN": uim.AttrGreen, "BLUE": uim.AttrBlue, "ALPHA": uim.AttrAlpha,
		"SCALE_X": uim.AttrScaleX, "SCALE_Y": uim.AttrScaleY, "SCALE_Z": uim.AttrScaleZ,
		"OFFSET_X": uim.AttrOffsetX, "OFFSET_Y": uim.AttrOffsetY, "OFFSET_Z": uim.AttrOffsetZ,
		"TANGENT_X": uim.AttrTangentX, "TANGENT_Y": uim.AttrTangentY,
	}
	for _, name := range sd.LayoutMask {
		a, ok := nameToAttr[name]
		if !ok {
			return nil, fmt.Errorf("uimjson: unknown layout attribute %q", name)
		}
		bit, _ := uim.AttributeMask(a)
		mask |= bit
	}
	spline := uim.Spline{LayoutMask: mask, Values: sd.Values, TStart: sd.TStart, TEnd: sd.TEnd}
	var style *uim.Style
	if sd.BrushURI != "" {
		style = uim.NewStyle(sd.BrushURI, nil)
		if sd.RenderMode != "" {
			style.RenderModeURI = sd.RenderMode
		}
	}
	id, err := uim.ParseID(sd.ID)
	if err != nil {
		return nil, err
	}
	stroke := uim.NewStroke(spline, style)
	stroke.ID = id
	stroke.RandomSeed = sd.RandomSeed
	return stroke, nil
}

func vectorBrushToModel(d vectorBrushDoc) *uim.VectorBrush {
	b := &uim.VectorBrush{Name: d.Name, Spacing: d.Spacing}
	for _, shape := range d.Shapes {
		proto := &uim.VectorBrushPrototype{URI: shape.URI, MinScale: shape.MinScale}
		for _, pt := range shape.Points {
			proto.Points = append(proto.Points, uim.BrushPoint{
				X: pt.X, Y: pt.Y, Size: pt.Size, Rotation: pt.Rotation,
				Red: pt.Red, Green: pt.Green, Blue: pt.Blue, Alpha: pt.Alpha,
			})
		}
		b.Prototypes = append(b.Prototypes, proto)
	}
	return b
}

func rasterBrushToModel(d rasterBrushDoc) *uim.RasterBrush {
	return &uim.RasterBrush{
		Name: d.Name, Spacing: d.Spacing, ScatterX: d.ScatterX, ScatterY: d.ScatterY,
		Rotation: uim.RotationMode(d.Rotation), RasterOpacity: d.RasterOpacity, BlendMode: uim.BlendMode(d.BlendMode),
		ShapeTextureURI: d.ShapeTextureURI, FillTextureURI: d.FillTextureURI,
		FillWidth: d.FillWidth, FillHeight: d.FillHeight, RandomizeFill: d.RandomizeFill,
	}
}
