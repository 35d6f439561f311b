package uim

// Well-known semantic predicate and type URIs, ported verbatim from
// the original implementation's semantics vocabulary (spec.md §3.6;
// grounded on original_source/uim/model/semantics/syntax.py) since
// these are wire-format strings rather than source-language artifacts.
const (
	PredRDFHasType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	LocaleOGP      = "http://ogp.me/ns#locale"

	PredSemanticIs     = "will://semantic/3.0/is"
	SemanticHasAlt      = "will://semantic/3.0/hasAlt"

	// HWR / NER
	SemanticHasCategory        = "will://semantic/3.0/hasCategory"
	SemanticHasURI             = "will://semantic/3.0/hasUri"
	SemanticHasType            = "will://semantic/3.0/hasType"
	SemanticHasRelevantConcept = "will://semantic/3.0/hasRelevantConcept"
	SemanticHasArticle         = "will://semantic/3.0/hasArticle"
	SemanticHasImage           = "will://semantic/3.0/hasImage"
	SemanticHasThumb           = "will://semantic/3.0/hasThumb"
	SemanticHasLabel           = "will://semantic/3.0/hasLabel"
	SemanticHasEmail           = "will://semantic/3.0/hasEmail"
	SemanticHasFirstName       = "will://semantic/3.0/hasFirstname"
	SemanticHasLastName        = "will://semantic/3.0/hasLastname"
	SemanticHasStartDate       = "will://semantic/3.0/hasStartDate"
	SemanticHasEndDate         = "will://semantic/3.0/hasEndDate"
	SemanticHasConfidence      = "will://semantic/3.0/hasConfidence"
	SemanticHasNERBackend      = "will://semantic/3.0/nerBackend"
	SemanticHasAbstract        = "will://semantic/3.0/hasAbstract"
	SemanticHasSource          = "will://semantic/3.0/hasSource"
	SemanticHasGeoLocation     = "will://semantic/3.0/hasGeoLocation"
	SemanticHasLocation        = "will://semantic/3.0/hasLocation"
	SemanticHasWebsite         = "will://semantic/3.0/hasWebsite"
	SemanticHasNamedEntity     = "will://semantic/3.0/hasNamedEntityDefinition"
	SemanticHasTopicEntity     = "will://semantic/3.0/hasTopicEntity"
	SemanticHasLocationType    = "will://semantic/3.0/hasLocationType"

	// Input device properties
	DeviceSerialNumberProperty = "will://input/3.0/SerialNumber"
	DeviceManufacturerProperty = "will://input/3.0/Manufacturer"
	DeviceModelProperty        = "will://input/3.0/Model"

	// Document properties
	DocumentTitleObject       = "will://document/3.0/Title"
	DocumentCreationDateObject = "will://document/3.0/CreationData"
	DocumentXMinProperty       = "will://document/3.0/hasMinX"
	DocumentYMinProperty       = "will://document/3.0/hasMiny"
	DocumentWidthProperty      = "will://document/3.0/Width"
	DocumentHeightProperty     = "will://document/3.0/Height"

	// Segmentation / document structure
	SegmentationTextLine   = "will://segmentation/3.0/TextLine"
	SegmentationWord       = "will://segmentation/3.0/Word"
	SegmentationTextRegion = "will://segmentation/3.0/TextRegion"
	SegmentationParagraph  = "will://segmentation/3.0/Paragraph"
	SegmentationSentence   = "will://segmentation/3.0/Sentence"
	SegmentationPunctuation = "will://segmentation/3.0/Punctuation"
	SegmentationPhrase     = "will://segmentation/3.0/Phrase"

	// Graphics shapes
	GraphicsPolygon   = "will://shapes/3.0/Polygon"
	GraphicsCircle    = "will://shapes/3.0/Circle"
	GraphicsEllipse   = "will://shapes/3.0/Ellipse"
	GraphicsTriangle  = "will://shapes/3.0/Triangle"
	GraphicsLine      = "will://shapes/3.0/Line"
	GraphicsRectangle = "will://shapes/3.0/Rectangle"

	// Math block segmentation and schema
	MathBlock             = "will://segmentation/3.0/MathBlock"
	MathLatexRepresentation = "will://math/3.0/attr/hasLatexRepresentation"
	MathMLRepresentation  = "will://math/3.0/attr/hasMathMLRepresentation"
	MathContentBlock = "uim://math/MathBlock"
	MathExpression   = "uim://math/Expression"
	MathGroup        = "uim://math/Group"
	MathMatrix       = "uim://math/Matrix"
	MathOperand      = "uim://math/Operand"
	MathOperator     = "uim://math/Operator"
	MathSymbol       = "uim://math/Symbol"
	MathEquals       = "uim://math/Equals"
	MathFence        = "uim://math/Fence"
	MathSquareRoot   = "uim://math/SquareRoot"
	MathFraction     = "uim://math/Fraction"
	MathNumber       = "uim://math/Number"
	MathSuperscript  = "uim://math/SuperScript"
	MathSubscript    = "uim://math/SubScript"
)

// CommonView is a well-known view-tree name, as reserved by the
// original implementation's CommonViews enum (spec.md §3.6/§4.8).
type CommonView string

const (
	ViewCustom         CommonView = "custom"
	ViewMainInkTree    CommonView = "main"
	ViewMainSensorTree CommonView = "sdm"
	ViewHWR            CommonView = "hwr"
	ViewNER            CommonView = "ner"
	ViewSegmentation   CommonView = "seg"

	// LegacyViewHWR and LegacyViewNER are the UIM 3.0.0 view names;
	// the upgraded model always uses [ViewHWR] / [ViewNER] instead.
	LegacyViewHWR CommonView = "will://views/3.0/HWR"
	LegacyViewNER CommonView = "will://views/3.0/NER"
)

// Generic content-segmentation vocabulary (WODL), a second,
// overlapping constant set kept separate from the segmentation
// constants above per spec.md Open Question (a): the original
// implementation defines both SEGMENTATION_NAMESPACE ("will://
// segmentation/3.0/") and the WODL_CLASS_PREFIX ("will:seg/0.3/")
// schemas without unifying them, and this port preserves that split.
const (
	WODLBorder             = "will:seg/0.3/Border"
	WODLConnector          = "will:seg/0.3/Connector"
	WODLCorrection         = "will:seg/0.3/Correction"
	WODLDiagram            = "will:seg/0.3/Diagram"
	WODLDiagramConnector   = "will:seg/0.3/DiagramConnector"
	WODLDrawing            = "will:seg/0.3/Drawing"
	WODLDrawingItemGroup   = "will:seg/0.3/DrawingItemGroup"
	WODLDrawingItem        = "will:seg/0.3/DrawingItem"
	WODLGarbage            = "will:seg/0.3/Garbage"
	WODLList               = "will:seg/0.3/List"
	WODLListItem           = "will:seg/0.3/ListItem"
	WODLListItemBody       = "body"
	WODLUnlabelled         = "will:seg/0.3/Unlabelled"
	WODLUnlabelledBlock    = "will:seg/0.3/UnlabelledBlock"
	WODLUnlabelledItemGroup = "will:seg/0.3/UnlabelledItemGroup"
	WODLUnlabelledItem     = "will:seg/0.3/UnlabelledItem"
	WODLMarking            = "will:seg/0.3/Marking"
	WODLMarkingTypePredicate = "markingType"
	WODLMarkingUnderlining = "underlining"
	WODLMarkingEncircling  = "encircling"
	WODLMathBlock          = "will:seg/0.3/MathBlock"
	WODLMathItemGroup      = "will:seg/0.3/MathItemGroup"
	WODLMathItem           = "will:seg/0.3/MathItem"
	WODLSegmentationRoot   = "will:seg/0.3/Root"
	WODLTable              = "will:seg/0.3/Table"
	WODLTextRegion         = "will:seg/0.3/TextRegion"
	WODLTextLine           = "will:seg/0.3/TextLine"
	WODLWord               = "will:seg/0.3/WordOfStrokes"
)

// Triple is one (subject, predicate, object) RDF-style statement
// attached to a node, stroke, or named-entity URI (spec.md §3.6).
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// TripleStore holds the model's semantic statements in insertion
// order.
type TripleStore struct {
	triples []Triple
}

// NewTripleStore returns an empty store.
func NewTripleStore() *TripleStore {
	return &TripleStore{}
}

// Add appends t. The store is an ordered, append-only bag, not a set
// (spec.md §3.5): inserting the same fact twice is legal and keeps
// both occurrences.
func (s *TripleStore) Add(t Triple) {
	s.triples = append(s.triples, t)
}

// Remove deletes every triple equal to t.
func (s *TripleStore) Remove(t Triple) {
	out := s.triples[:0]
	for _, existing := range s.triples {
		if existing != t {
			out = append(out, existing)
		}
	}
	s.triples = out
}

// RemoveForSubject deletes every triple whose subject is uri, used
// when a node is detached from the semantic graph (spec.md §4.7
// "triple cascade").
func (s *TripleStore) RemoveForSubject(uri string) {
	out := s.triples[:0]
	for _, existing := range s.triples {
		if existing.Subject != uri {
			out = append(out, existing)
		}
	}
	s.triples = out
}

// Filter returns every triple matching the given subject, predicate,
// and/or object; an empty string for any of the three means "match
// any".
func (s *TripleStore) Filter(subject, predicate, object string) []Triple {
	var out []Triple
	for _, t := range s.triples {
		if subject != "" && t.Subject != subject {
			continue
		}
		if predicate != "" && t.Predicate != predicate {
			continue
		}
		if object != "" && t.Object != object {
			continue
		}
		out = append(out, t)
	}
	return out
}

// DetermineSemType returns the single object of the (subject,
// typedefPred) triple, or "" if there is no such triple or more than
// one.
func (s *TripleStore) DetermineSemType(subjectURI, typedefPred string) string {
	matches := s.Filter(subjectURI, typedefPred, "")
	if len(matches) == 1 {
		return matches[0].Object
	}
	return ""
}

// All returns every triple in insertion order.
func (s *TripleStore) All() []Triple { return s.triples }

// Len reports how many triples the store holds.
func (s *TripleStore) Len() int { return len(s.triples) }
