package uim

// NodeKind distinguishes the two InkNode variants (spec.md §3.6).
type NodeKind byte

const (
	NodeKindStrokeGroup NodeKind = iota
	NodeKindStrokeRef
)

// BBox is an axis-aligned bounding box in the owning tree's units.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Fragment restricts a stroke-ref node to a sub-range of its stroke's
// spline, by point index and by t-parameter within the end points
// (spec.md §3.6). FromPointIndex <= ToPointIndex and both t-values lie
// in [0,1].
type Fragment struct {
	FromPointIndex, ToPointIndex int
	FromT, ToT                   float64
}

// InkNode is one node of an [InkTree]. Rather than holding an owning
// pointer to its parent, a node carries the index of its parent within
// the same tree's node array (spec.md §9 "Cyclic ownership"): the tree
// owns a contiguous slice of nodes, and ParentIndex/-1 stands in for
// the parent pointer/no-parent.
type InkNode struct {
	ID  ID
	URI string

	Kind        NodeKind
	ParentIndex int // -1 for a detached node; a tree's root holds its own index

	// StrokeGroup fields.
	Children []int // indices into the owning tree's node slice
	BBox     *BBox

	// StrokeRef fields.
	StrokeID ID
	Fragment *Fragment
}

// NewStrokeGroupNode returns a detached group node with a fresh
// Random-Id.
func NewStrokeGroupNode() *InkNode {
	return &InkNode{ID: NewRandomID(), Kind: NodeKindStrokeGroup, ParentIndex: -1}
}

// NewStrokeRefNode returns a detached stroke-ref node with a fresh
// Random-Id, referencing strokeID with an optional fragment.
func NewStrokeRefNode(strokeID ID, fragment *Fragment) *InkNode {
	return &InkNode{ID: NewRandomID(), Kind: NodeKindStrokeRef, ParentIndex: -1,
		StrokeID: strokeID, Fragment: fragment}
}

// IsGroup reports whether n is a StrokeGroup node.
func (n *InkNode) IsGroup() bool { return n.Kind == NodeKindStrokeGroup }

// IsStrokeRef reports whether n is a Stroke-ref node.
func (n *InkNode) IsStrokeRef() bool { return n.Kind == NodeKindStrokeRef }

// attached reports whether n currently has a parent or is itself a
// tree's root (ParentIndex is only -1 while detached).
func (n *InkNode) attached() bool { return n.ParentIndex != -1 }
