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

import "google.golang.org/protobuf/encoding/protowire"

// Wire field numbers for the INKS chunk's InkStructure message and its
// nested messages (spec.md §4.9 Table 1, item 4, and the pre-order
// tree serialization rule in §4.9).
const (
	fFragFromPoint protowire.Number = 1
	fFragToPoint   protowire.Number = 2
	fFragFromT     protowire.Number = 3
	fFragToT       protowire.Number = 4

	fSNKind     protowire.Number = 1
	fSNID       protowire.Number = 2
	fSNDepth    protowire.Number = 3
	fSNBBox     protowire.Number = 4
	fSNStrokeID protowire.Number = 5
	fSNFragment protowire.Number = 6

	fTreeName  protowire.Number = 1
	fTreeNodes protowire.Number = 2

	fISHasMain  protowire.Number = 1
	fISMainTree protowire.Number = 2
	fISViews    protowire.Number = 3
)

func marshalFragment(f *Fragment) []byte {
	var b []byte
	b = appendTagVarint(b, fFragFromPoint, uint64(f.FromPointIndex))
	b = appendTagVarint(b, fFragToPoint, uint64(f.ToPointIndex))
	b = appendTagDouble(b, fFragFromT, f.FromT)
	b = appendTagDouble(b, fFragToT, f.ToT)
	return b
}

func unmarshalFragment(buf []byte) (*Fragment, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	f := &Fragment{}
	for _, fl := range fields {
		switch fl.Num {
		case fFragFromPoint:
			f.FromPointIndex = int(fl.U64)
		case fFragToPoint:
			f.ToPointIndex = int(fl.U64)
		case fFragFromT:
			f.FromT = fl.Double()
		case fFragToT:
			f.ToT = fl.Double()
		}
	}
	return f, nil
}

// serializedNode is the decoded shape of one pre-order tree entry,
// before it has been spliced into a real [InkTree] (spec.md §4.9).
type serializedNode struct {
	kind     NodeKind
	id       ID
	depth    int
	bbox     *BBox
	strokeID ID
	fragment *Fragment
}

func marshalSerializedNode(n *InkNode, depth int) []byte {
	var b []byte
	b = appendTagVarint(b, fSNKind, uint64(n.Kind))
	b = appendTagID(b, fSNID, n.ID)
	b = appendTagVarint(b, fSNDepth, uint64(depth))
	if n.IsGroup() && n.BBox != nil {
		b = appendPackedDoubles(b, fSNBBox, []float64{n.BBox.MinX, n.BBox.MinY, n.BBox.MaxX, n.BBox.MaxY})
	}
	if n.IsStrokeRef() {
		b = appendTagID(b, fSNStrokeID, n.StrokeID)
		if n.Fragment != nil {
			b = appendTagMessage(b, fSNFragment, marshalFragment(n.Fragment))
		}
	}
	return b
}

func unmarshalSerializedNode(buf []byte) (*serializedNode, error) {
	fields, err := parseFields(buf)
	if err != nil {
		return nil, err
	}
	n := &serializedNode{}
	for _, f := range fields {
		switch f.Num {
		case fSNKind:
			n.kind = NodeKind(f.U64)
		case fSNID:
			n.id = f.ID()
		case fSNDepth:
			n.depth = int(f.U64)
		case fSNBBox:
			vs, err := consumePackedDoubles(f.Buf)
			if err != nil {
				return nil, err
			}
			if len(vs) != 4 {
				return nil, wireErr("tree node bbox")
			}
			n.bbox = &BBox{MinX: vs[0], MinY: vs[1], MaxX: vs[2], MaxY: vs[3]}
		case fSNStrokeID:
			n.strokeID = f.ID()
		case fSNFragment:
			frag, err := unmarshalFragment(f.Buf)
			if err != nil {
				return nil, err
			}
			n.fragment = frag
		}
	}
	return n, nil
}

// preOrder walks t depth-first from its root, in child order, the way
// [InkTree.AddChild] appended them, returning each reachable node
// alongside its depth (root is depth 0).
func preOrder(t *InkTree) (nodes []*InkNode, depths []int) {
	if t.RootIndex < 0 {
		return nil, nil
	}
	var walk func(idx, depth int)
	walk = func(idx, depth int) {
		n := t.Nodes[idx]
		if n == nil {
			return
		}
		nodes = append(nodes, n)
		depths = append(depths, depth)
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(t.RootIndex, 0)
	return nodes, depths
}

func marshalTree(t *InkTree) []byte {
	var b []byte
	b = appendTagString(b, fTreeName, t.Name)
	nodes, depths := preOrder(t)
	for i, n := range nodes {
		b = appendTagMessage(b, fTreeNodes, marshalSerializedNode(n, depths[i]))
	}
	return b
}

// buildTree reconstructs an [InkTree] from its pre-order wire form using
// the explicit-stack algorithm of spec.md §4.9: on reading depth d, pop
// the stack until its top has depth d-1, then attach the new node
// there. Every node's URI is built in the 3.1.0 form from the tree name
// and the node id.
func buildTree(model *InkModel, name string, entries []*serializedNode) (*InkTree, error) {
	t := NewInkTree(name)
	type frame struct{ idx, depth int }
	var stack []frame
	for _, e := range entries {
		var node *InkNode
		switch e.kind {
		case NodeKindStrokeGroup:
			node = &InkNode{ID: e.id, Kind: NodeKindStrokeGroup, ParentIndex: -1, BBox: e.bbox}
		case NodeKindStrokeRef:
			node = &InkNode{ID: e.id, Kind: NodeKindStrokeRef, ParentIndex: -1, StrokeID: e.strokeID, Fragment: e.fragment}
		default:
			return nil, &FormatError{Chunk: "INKS", Err: errInvalidNodeKind}
		}
		idx := len(t.Nodes)
		uri := nodeURI(name, node.ID)
		if err := model.registerNodeURI(uri, node); err != nil {
			return nil, err
		}
		node.URI = uri
		t.Nodes = append(t.Nodes, node)

		if e.depth == 0 {
			if t.RootIndex != -1 {
				return nil, &FormatError{Chunk: "INKS", Err: errMultipleRoots}
			}
			t.RootIndex = idx
			node.ParentIndex = idx
		} else {
			for len(stack) > 0 && stack[len(stack)-1].depth != e.depth-1 {
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, &FormatError{Chunk: "INKS", Err: errBadDepthSequence}
			}
			parentIdx := stack[len(stack)-1].idx
			node.ParentIndex = parentIdx
			t.Nodes[parentIdx].Children = append(t.Nodes[parentIdx].Children, idx)
		}
		if node.IsStrokeRef() && name == "" {
			model.registerMainTreeStroke(node.StrokeID)
		}
		stack = append(stack, frame{idx, e.depth})
	}
	return t, nil
}

func unmarshalTree(buf []byte) (name string, entries []*serializedNode, err error) {
	fields, err := parseFields(buf)
	if err != nil {
		return "", nil, err
	}
	for _, f := range fields {
		switch f.Num {
		case fTreeName:
			name = string(f.Buf)
		case fTreeNodes:
			n, err := unmarshalSerializedNode(f.Buf)
			if err != nil {
				return "", nil, err
			}
			entries = append(entries, n)
		}
	}
	return name, entries, nil
}

// marshalInkStructure serializes the whole INKS chunk payload: the
// main tree, if any, followed by every named view tree.
func marshalInkStructure(model *InkModel) []byte {
	var b []byte
	if model.MainTree != nil {
		b = appendTagBool(b, fISHasMain, true)
		b = appendTagMessage(b, fISMainTree, marshalTree(model.MainTree))
	}
	for _, name := range sortedViewNames(model) {
		b = appendTagMessage(b, fISViews, marshalTree(model.ViewTrees[name]))
	}
	return b
}

// sortedViewNames is grounded on spec.md §5 "Ordering guarantees":
// view trees are attached in insertion order in memory, but Go maps
// don't preserve it, so the codec keeps its own side list. See
// [InkModel.viewOrder].
func sortedViewNames(model *InkModel) []string {
	return model.viewOrder
}

func unmarshalInkStructure(model *InkModel, buf []byte) error {
	fields, err := parseFields(buf)
	if err != nil {
		return err
	}
	for _, f := range fields {
		switch f.Num {
		case fISMainTree:
			name, entries, err := unmarshalTree(f.Buf)
			if err != nil {
				return err
			}
			t, err := buildTree(model, name, entries)
			if err != nil {
				return err
			}
			model.MainTree = t
		case fISViews:
			name, entries, err := unmarshalTree(f.Buf)
			if err != nil {
				return err
			}
			t, err := buildTree(model, name, entries)
			if err != nil {
				return err
			}
			model.ViewTrees[name] = t
			model.viewOrder = append(model.viewOrder, name)
		}
	}
	return nil
}
