package uim

// InkTree is the main ink tree or one named view tree: a contiguous,
// tree-scoped array of nodes addressed by index rather than by owning
// pointer (spec.md §9 "Cyclic ownership"). Name is "" for the main
// tree.
type InkTree struct {
	Name      string
	Nodes     []*InkNode
	RootIndex int
}

// NewInkTree returns an empty tree with no root yet.
func NewInkTree(name string) *InkTree {
	return &InkTree{Name: name, RootIndex: -1}
}

// Root returns the tree's root node, or nil if none has been set.
func (t *InkTree) Root() *InkNode {
	if t.RootIndex < 0 {
		return nil
	}
	return t.Nodes[t.RootIndex]
}

// Node returns the node at index i.
func (t *InkTree) Node(i int) *InkNode { return t.Nodes[i] }

// nodeURI builds the canonical tree-scoped URI for a node id, per the
// scheme in spec.md §4.7.
func nodeURI(treeName string, id ID) string {
	if treeName == "" {
		return "uim:" + id.SForm()
	}
	return "uim:" + treeName + "/" + id.SForm()
}

// viewRootURI builds the URI of a named view's root node.
func viewRootURI(treeName string) string {
	return "uim:view/" + treeName
}

// strokeRefURI and namedEntityURI build the fixed-scheme URIs used for
// stroke references and named entities respectively (spec.md §4.7).
func strokeRefURI(id ID) string   { return "uim:stroke/" + id.SForm() }
func namedEntityURI(id ID) string { return "uim:ne/" + id.SForm() }

// legacyNodeURI builds the UIM 3.0.0 form of a view-tree node's URI,
// used only by the legacy decoder before it rewrites nodes into the
// 3.1.0 form (spec.md §4.7).
func legacyNodeURI(treeName string, id ID) string {
	return "uim:" + id.SForm() + "/" + treeName
}

// SetRoot attaches node as t's root, registering it with model. It
// fails with [AlreadyAttachedError] if node already belongs to a tree.
func (t *InkTree) SetRoot(model *InkModel, node *InkNode) error {
	if node.attached() || t.RootIndex != -1 {
		return &AlreadyAttachedError{NodeURI: node.URI}
	}
	uri := nodeURI(t.Name, node.ID)
	if err := model.registerNodeURI(uri, node); err != nil {
		return err
	}
	node.URI = uri
	node.ParentIndex = 0
	t.Nodes = append(t.Nodes, node)
	t.RootIndex = 0
	if node.IsStrokeRef() && t.Name == "" {
		model.registerMainTreeStroke(node.StrokeID)
	}
	return nil
}

// AddChild attaches node as a child of the node at parentIndex,
// registering it with model and returning node's new index.
//
// A stroke-ref node added to a view tree (Name != "") must reference a
// stroke that is already registered in the model's main tree, else
// this fails with [MissingStrokeInMainTreeError]. Adding to the main
// tree itself registers the stroke id.
func (t *InkTree) AddChild(model *InkModel, parentIndex int, node *InkNode) (int, error) {
	if parentIndex < 0 || parentIndex >= len(t.Nodes) {
		return -1, &OutOfRangeError{Field: "parentIndex", Value: parentIndex}
	}
	parent := t.Nodes[parentIndex]
	if !parent.IsGroup() {
		return -1, &InvalidArgumentError{Msg: "cannot attach a child to a non-group node"}
	}
	if node.attached() {
		return -1, &AlreadyAttachedError{NodeURI: node.URI}
	}
	if node.IsStrokeRef() {
		if t.Name == "" {
			model.registerMainTreeStroke(node.StrokeID)
		} else if !model.hasMainTreeStroke(node.StrokeID) {
			return -1, &MissingStrokeInMainTreeError{StrokeID: node.StrokeID.SForm()}
		}
	}
	uri := nodeURI(t.Name, node.ID)
	if err := model.registerNodeURI(uri, node); err != nil {
		return -1, err
	}
	node.URI = uri
	node.ParentIndex = parentIndex
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, node)
	parent.Children = append(parent.Children, idx)
	return idx, nil
}

// Unregister detaches the subtree rooted at index i: every node it
// contains is removed from model's URI registry and from the model's
// triple store (subject cascade), and is unlinked from its parent.
// The tree's node slice keeps its length; detached slots are left with
// a nil entry and must not be reused.
func (t *InkTree) Unregister(model *InkModel, i int) error {
	if i < 0 || i >= len(t.Nodes) || t.Nodes[i] == nil {
		return &OutOfRangeError{Field: "nodeIndex", Value: i}
	}
	node := t.Nodes[i]
	if parentIdx := node.ParentIndex; parentIdx >= 0 && parentIdx != i {
		parent := t.Nodes[parentIdx]
		for k, c := range parent.Children {
			if c == i {
				parent.Children = append(parent.Children[:k], parent.Children[k+1:]...)
				break
			}
		}
	}
	t.walkSubtree(i, func(idx int) {
		n := t.Nodes[idx]
		model.unregisterNodeURI(n.URI)
		model.Triples.RemoveForSubject(n.URI)
		t.Nodes[idx] = nil
	})
	if t.RootIndex == i {
		t.RootIndex = -1
	}
	return nil
}

func (t *InkTree) walkSubtree(i int, visit func(int)) {
	visit(i)
	node := t.Nodes[i]
	if node == nil {
		return
	}
	for _, c := range node.Children {
		t.walkSubtree(c, visit)
	}
}

// RecomputeBounds recomputes and stores the bounding box of the group
// node at index i, aggregating over every stroke reachable beneath it
// (spec.md §4.8).
func (t *InkTree) RecomputeBounds(model *InkModel, i int) error {
	node := t.Nodes[i]
	if !node.IsGroup() {
		return &InvalidArgumentError{Msg: "RecomputeBounds requires a group node"}
	}
	var box BBox
	have := false
	t.accumulateBounds(model, i, &box, &have)
	if have {
		node.BBox = &box
	} else {
		node.BBox = nil
	}
	return nil
}

func (t *InkTree) accumulateBounds(model *InkModel, i int, box *BBox, have *bool) {
	node := t.Nodes[i]
	if node == nil {
		return
	}
	if node.IsStrokeRef() {
		stroke, err := model.StrokeByID(node.StrokeID)
		if err != nil {
			return
		}
		minX, minY, maxX, maxY, ok := stroke.BoundingBox()
		if !ok {
			return
		}
		if !*have {
			*box = BBox{minX, minY, maxX, maxY}
			*have = true
			return
		}
		if minX < box.MinX {
			box.MinX = minX
		}
		if minY < box.MinY {
			box.MinY = minY
		}
		if maxX > box.MaxX {
			box.MaxX = maxX
		}
		if maxY > box.MaxY {
			box.MaxY = maxY
		}
		return
	}
	for _, c := range node.Children {
		t.accumulateBounds(model, c, box, have)
	}
}

// ClonedSubtree is a detached copy produced by [InkTree.CloneGroup],
// not yet spliced into any tree. Nodes[0] is the clone's root; every
// node's ParentIndex and Children entries are indices local to this
// slice (root's ParentIndex is -1), to be rebased by
// [InkTree.AttachClone] once a real position is known.
type ClonedSubtree struct {
	Nodes       []*InkNode
	OriginURIs  []string // OriginURIs[k] is Nodes[k]'s source URI, for triple re-subjecting
}

// CloneGroup returns a detached copy of the group node at index i,
// assigning fresh Random-Ids to the group itself and, if
// recurseGroups is true, to every descendant group; stroke-ref nodes
// always keep their original stroke id (they reference, not own, the
// underlying stroke) but get a fresh node id and a copy of any
// fragment. Use [InkTree.AttachClone] to splice the result into a real
// tree, which also re-subjects semantic triples to the new URIs
// (spec.md §4.8 "Cloning semantics").
func (t *InkTree) CloneGroup(i int, recurseGroups bool) *ClonedSubtree {
	out := &ClonedSubtree{}
	t.cloneGroupInto(i, recurseGroups, out)
	return out
}

func (t *InkTree) cloneGroupInto(i int, recurseGroups bool, out *ClonedSubtree) int {
	src := t.Nodes[i]
	clone := &InkNode{ID: NewRandomID(), Kind: NodeKindStrokeGroup, ParentIndex: -1}
	idx := len(out.Nodes)
	out.Nodes = append(out.Nodes, clone)
	out.OriginURIs = append(out.OriginURIs, src.URI)
	for _, c := range src.Children {
		child := t.Nodes[c]
		switch child.Kind {
		case NodeKindStrokeRef:
			f := child.Fragment
			if f != nil {
				cp := *f
				f = &cp
			}
			childClone := &InkNode{ID: NewRandomID(), Kind: NodeKindStrokeRef, ParentIndex: idx,
				StrokeID: child.StrokeID, Fragment: f}
			cIdx := len(out.Nodes)
			out.Nodes = append(out.Nodes, childClone)
			out.OriginURIs = append(out.OriginURIs, child.URI)
			clone.Children = append(clone.Children, cIdx)
		case NodeKindStrokeGroup:
			if recurseGroups {
				cIdx := t.cloneGroupInto(c, true, out)
				out.Nodes[cIdx].ParentIndex = idx
				clone.Children = append(clone.Children, cIdx)
			}
		}
	}
	return idx
}

// AttachClone splices a [ClonedSubtree] into t as a child of
// parentIndex, registers every node's URI with model, and copies every
// triple whose subject was one of the clone's origin URIs, re-subjected
// to the matching new node's URI.
func (t *InkTree) AttachClone(model *InkModel, parentIndex int, clone *ClonedSubtree) (int, error) {
	if len(clone.Nodes) == 0 {
		return -1, &InvalidArgumentError{Msg: "empty cloned subtree"}
	}
	parent := t.Nodes[parentIndex]
	if !parent.IsGroup() {
		return -1, &InvalidArgumentError{Msg: "cannot attach a child to a non-group node"}
	}
	offset := len(t.Nodes)
	for k, n := range clone.Nodes {
		if k == 0 {
			n.ParentIndex = parentIndex
		} else {
			n.ParentIndex += offset
		}
		for ci, c := range n.Children {
			n.Children[ci] = c + offset
		}
		uri := nodeURI(t.Name, n.ID)
		if err := model.registerNodeURI(uri, n); err != nil {
			return -1, err
		}
		n.URI = uri
		if n.IsStrokeRef() && t.Name == "" {
			model.registerMainTreeStroke(n.StrokeID)
		}
	}
	t.Nodes = append(t.Nodes, clone.Nodes...)
	rootIdx := offset
	parent.Children = append(parent.Children, rootIdx)

	for k, origURI := range clone.OriginURIs {
		if origURI == "" {
			continue
		}
		newURI := clone.Nodes[k].URI
		for _, tr := range model.Triples.Filter(origURI, "", "") {
			model.Triples.Add(Triple{Subject: newURI, Predicate: tr.Predicate, Object: tr.Object})
		}
	}
	return rootIdx, nil
}
