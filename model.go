package uim

import "strings"

// StrokeRepository maps Random-Id to strokes, preserving insertion
// order (spec.md §3.4).
type StrokeRepository struct {
	order []*Stroke
	byID  map[ID]*Stroke
}

// NewStrokeRepository returns an empty repository.
func NewStrokeRepository() *StrokeRepository {
	return &StrokeRepository{byID: make(map[ID]*Stroke)}
}

// Add inserts s, assigning it a random id if it doesn't already have
// one.
func (r *StrokeRepository) Add(s *Stroke) ID {
	if s.ID.IsZero() {
		s.ID = NewRandomID()
	}
	if _, seen := r.byID[s.ID]; !seen {
		r.order = append(r.order, s)
	}
	r.byID[s.ID] = s
	return s.ID
}

// Get looks up a stroke by id.
func (r *StrokeRepository) Get(id ID) (*Stroke, error) {
	if s, ok := r.byID[id]; ok {
		return s, nil
	}
	return nil, &NotFoundError{Kind: "stroke", Key: id.SForm()}
}

// All returns every stroke in insertion order.
func (r *StrokeRepository) All() []*Stroke { return r.order }

// Len reports how many strokes the repository holds.
func (r *StrokeRepository) Len() int { return len(r.order) }

// InkModel is the root aggregate: it owns the global transform, unit
// scale, property list, input configuration, sensor data, brushes, the
// main tree, every named view tree, and the semantic triple store
// (spec.md §4.6).
type InkModel struct {
	Version         Version
	UnitScaleFactor float64 // local units -> device-independent pixels
	Transform       Matrix

	Properties []KV

	InputConfig *InputConfigRepository
	SensorData  *SensorDataRepository
	Strokes     *StrokeRepository
	Brushes     *BrushRepository

	MainTree  *InkTree
	ViewTrees map[string]*InkTree

	Triples *TripleStore

	nodeURIs        map[string]*InkNode
	mainTreeStrokes map[ID]bool

	// viewOrder preserves view-tree insertion order across the
	// Go map in ViewTrees, for the codec's "Ordering guarantees"
	// (spec.md §5).
	viewOrder []string
}

// NewInkModel returns an empty model: version 3.1.0, unit scale 1.0,
// identity transform, and no main tree.
func NewInkModel() *InkModel {
	return &InkModel{
		Version:         V3_1_0,
		UnitScaleFactor: 1.0,
		Transform:       IdentityMatrix,
		InputConfig:     NewInputConfigRepository(),
		SensorData:      NewSensorDataRepository(),
		Strokes:         NewStrokeRepository(),
		Brushes:         NewBrushRepository(),
		ViewTrees:       make(map[string]*InkTree),
		Triples:         NewTripleStore(),
		nodeURIs:        make(map[string]*InkNode),
		mainTreeStrokes: make(map[ID]bool),
	}
}

func (m *InkModel) registerNodeURI(uri string, node *InkNode) error {
	if _, exists := m.nodeURIs[uri]; exists {
		return &DuplicateURIError{URI: uri}
	}
	m.nodeURIs[uri] = node
	return nil
}

func (m *InkModel) unregisterNodeURI(uri string) {
	delete(m.nodeURIs, uri)
}

func (m *InkModel) registerMainTreeStroke(id ID) {
	m.mainTreeStrokes[id] = true
}

func (m *InkModel) hasMainTreeStroke(id ID) bool {
	return m.mainTreeStrokes[id]
}

// NodeByURI resolves a registered node by its tree-scoped URI.
func (m *InkModel) NodeByURI(uri string) (*InkNode, error) {
	if n, ok := m.nodeURIs[uri]; ok {
		return n, nil
	}
	return nil, &NotFoundError{Kind: "node", Key: uri}
}

// StrokeByID resolves a stroke by its id, a convenience over Strokes.
func (m *InkModel) StrokeByID(id ID) (*Stroke, error) {
	return m.Strokes.Get(id)
}

// SetMainTree installs t as the model's main tree. Fails if a main
// tree is already set.
func (m *InkModel) SetMainTree(t *InkTree) error {
	if m.MainTree != nil {
		return &InvalidArgumentError{Msg: "model already has a main tree"}
	}
	if t.Name != "" {
		return &InvalidArgumentError{Msg: "main tree must have an empty name"}
	}
	m.MainTree = t
	return nil
}

// AddView installs t as a named view tree. Fails if a view of the
// same name already exists.
func (m *InkModel) AddView(t *InkTree) error {
	if t.Name == "" {
		return &InvalidArgumentError{Msg: "view tree must have a non-empty name"}
	}
	if _, exists := m.ViewTrees[t.Name]; exists {
		return &InvalidArgumentError{Msg: "view already exists: " + t.Name}
	}
	m.ViewTrees[t.Name] = t
	m.viewOrder = append(m.viewOrder, t.Name)
	return nil
}

// RemoveView removes the named view tree, unregistering every node it
// contains (and their subject triples) from the model.
func (m *InkModel) RemoveView(name string) error {
	t, ok := m.ViewTrees[name]
	if !ok {
		return &NotFoundError{Kind: "view", Key: name}
	}
	if t.RootIndex != -1 {
		if err := t.Unregister(m, t.RootIndex); err != nil {
			return err
		}
	}
	delete(m.ViewTrees, name)
	for i, n := range m.viewOrder {
		if n == name {
			m.viewOrder = append(m.viewOrder[:i], m.viewOrder[i+1:]...)
			break
		}
	}
	return nil
}

// ViewByName looks up a named view tree.
func (m *InkModel) ViewByName(name string) (*InkTree, error) {
	if t, ok := m.ViewTrees[name]; ok {
		return t, nil
	}
	return nil, &NotFoundError{Kind: "view", Key: name}
}

// AddProperty appends a (key, value) pair to the model's property
// list, allowing duplicate keys (spec.md §4.6, "Ordering guarantees").
func (m *InkModel) AddProperty(key, value string) {
	m.Properties = append(m.Properties, KV{Key: key, Value: value})
}

// RemoveProperty removes the first property with the given key, if
// present.
func (m *InkModel) RemoveProperty(key string) {
	for i, kv := range m.Properties {
		if kv.Key == key {
			m.Properties = append(m.Properties[:i], m.Properties[i+1:]...)
			return
		}
	}
}

// AddTriple appends a semantic triple, enforcing invariant I5: if the
// subject is a registered node URI, nothing further is required; a
// subject that looks like a node URI but isn't registered is rejected.
// Subjects addressing strokes or named entities (not tree nodes) are
// always accepted, since I5 only binds node-URI subjects.
func (m *InkModel) AddTriple(t Triple) error {
	if _, isNode := m.nodeURIs[t.Subject]; !isNode {
		if looksLikeNodeURI(t.Subject) {
			return &ConsistencyError{Where: t.Subject, Err: &NotFoundError{Kind: "node", Key: t.Subject}}
		}
	}
	m.Triples.Add(t)
	return nil
}

// reservedURIPrefixes are the fixed "uim:" subject forms that are
// never registered as a tree node's own URI: stroke references,
// named entities, and the synthetic view-root placeholder. Any other
// "uim:"-prefixed subject is a tree-scoped node URI (main-tree form
// "uim:<id>", view form "uim:<view>/<id>"), including one inside a
// reserved view name like [ViewSegmentation] ("seg") or [ViewNER]
// ("ner") — those only share a first letter with the prefixes below,
// not the prefixes themselves.
var reservedURIPrefixes = []string{"uim:stroke/", "uim:ne/", "uim:view/"}

func looksLikeNodeURI(uri string) bool {
	if !strings.HasPrefix(uri, "uim:") {
		return false
	}
	for _, p := range reservedURIPrefixes {
		if strings.HasPrefix(uri, p) {
			return false
		}
	}
	return true
}

// RemoveTriple removes t, if present.
func (m *InkModel) RemoveTriple(t Triple) {
	m.Triples.Remove(t)
}

// NewNamedEntitySubject mints a fresh Random-Id and returns its
// canonical "uim:ne/<uuid>" subject URI (spec.md §4.7), for recording
// statements about a named entity — e.g. handwriting-recognition or
// NER output linked from a word node via SemanticHasNamedEntity —
// independent of any tree node.
func (m *InkModel) NewNamedEntitySubject() (ID, string) {
	id := NewRandomID()
	return id, namedEntityURI(id)
}

// StrokeSubjectURI returns the canonical "uim:stroke/<uuid>" subject
// URI (spec.md §4.7) for recording statements about a stroke directly,
// as distinct from the tree-scoped URI of any node that references it.
func StrokeSubjectURI(strokeID ID) string { return strokeRefURI(strokeID) }

// ViewSubjectURI returns the canonical "uim:view/<tree>" subject URI
// (spec.md §4.7) for recording statements about a named view as a
// whole rather than about one of its nodes.
func ViewSubjectURI(treeName string) string { return viewRootURI(treeName) }

// Validate checks global invariants I1, I2 and I5 across the model:
// every main-tree stroke-ref resolves in the stroke repository, every
// view stroke-ref's stroke is in the main tree, node URIs are unique,
// and every node-shaped triple subject resolves to a registered node.
// It does not check that a stroke's SensorDataID resolves (I3) and
// does not recompute Hash-Ids (I4).
func (m *InkModel) Validate() error {
	if m.MainTree != nil {
		for _, n := range m.MainTree.Nodes {
			if n == nil {
				continue
			}
			if n.IsStrokeRef() {
				if _, err := m.Strokes.Get(n.StrokeID); err != nil {
					return &ConsistencyError{Where: n.URI, Err: err}
				}
			}
		}
	}
	for _, t := range m.ViewTrees {
		for _, n := range t.Nodes {
			if n == nil {
				continue
			}
			if n.IsStrokeRef() && !m.hasMainTreeStroke(n.StrokeID) {
				return &ConsistencyError{Where: n.URI, Err: &MissingStrokeInMainTreeError{StrokeID: n.StrokeID.SForm()}}
			}
		}
	}
	seen := make(map[string]bool)
	for uri := range m.nodeURIs {
		if seen[uri] {
			return &ConsistencyError{Where: uri, Err: &DuplicateURIError{URI: uri}}
		}
		seen[uri] = true
	}
	for _, tr := range m.Triples.All() {
		if _, isNode := m.nodeURIs[tr.Subject]; !isNode && looksLikeNodeURI(tr.Subject) {
			return &ConsistencyError{Where: tr.Subject, Err: &NotFoundError{Kind: "node", Key: tr.Subject}}
		}
	}
	return nil
}
