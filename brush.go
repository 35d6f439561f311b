package uim

import "fmt"

// BrushPoint is one control point of a vector brush prototype shape.
type BrushPoint struct {
	X, Y, Size, Rotation, Red, Green, Blue, Alpha float64
}

// VectorBrushPrototype is one size class of a vector brush: either an
// inline list of shape points, or a URI to a shared prototype shape,
// but never both (spec.md §3.5).
type VectorBrushPrototype struct {
	Points  []BrushPoint
	URI     string
	MinScale float64
}

func (p *VectorBrushPrototype) hasPoints() bool { return len(p.Points) > 0 }
func (p *VectorBrushPrototype) hasURI() bool    { return p.URI != "" }

// VectorBrush is a named, ordered set of prototype shapes selected by
// a stroke's rendered size, plus the spacing between instanced copies
// (spec.md §3.5).
type VectorBrush struct {
	Name       string
	Prototypes []*VectorBrushPrototype
	Spacing    float64
}

// Validate enforces that every prototype carries points XOR a URI,
// never both or neither.
func (b *VectorBrush) Validate() error {
	for i, p := range b.Prototypes {
		if p.hasPoints() == p.hasURI() {
			return &ConsistencyError{Where: "VectorBrush.Prototypes", Err: &InvalidArgumentError{
				Msg: fmt.Sprintf("prototype %d must carry points XOR a uri, not both or neither", i),
			}}
		}
	}
	return nil
}

// BlendMode is the compositing mode a raster brush's texture is drawn
// with.
type BlendMode byte

const (
	BlendModeSourceOver BlendMode = iota
	BlendModeMax
	BlendModeMin
	BlendModeMultiply
)

// RotationMode controls how a raster brush's texture is rotated per
// instance.
type RotationMode byte

const (
	RotationNone RotationMode = iota
	RotationTrajectory
	RotationRandom
)

// RasterBrush is a named brush whose shape and fill textures are each
// given either as inline bytes or as a URI, never both (spec.md §3.5).
type RasterBrush struct {
	Name             string
	Spacing          float64
	ScatterX         float64
	ScatterY         float64
	Rotation         RotationMode
	RasterOpacity    float64
	BlendMode        BlendMode

	ShapeTextureInline []byte
	ShapeTextureURI    string

	FillTextureInline []byte
	FillTextureURI    string

	FillWidth  float64
	FillHeight float64

	RandomizeFill bool
}

// Validate enforces the XOR rule on both shape and fill textures.
func (b *RasterBrush) Validate() error {
	if (len(b.ShapeTextureInline) > 0) == (b.ShapeTextureURI != "") {
		return &ConsistencyError{Where: "RasterBrush.ShapeTexture", Err: &InvalidArgumentError{
			Msg: "shape texture must be inline bytes XOR a uri, not both or neither",
		}}
	}
	if (len(b.FillTextureInline) > 0) == (b.FillTextureURI != "") {
		return &ConsistencyError{Where: "RasterBrush.FillTexture", Err: &InvalidArgumentError{
			Msg: "fill texture must be inline bytes XOR a uri, not both or neither",
		}}
	}
	return nil
}

// BrushRepository holds the model's named vector and raster brushes.
// Names are unique within each kind, but a vector brush and a raster
// brush may share a name (spec.md §3.5).
type BrushRepository struct {
	vector []*VectorBrush
	raster []*RasterBrush
}

// NewBrushRepository returns an empty repository.
func NewBrushRepository() *BrushRepository {
	return &BrushRepository{}
}

// AddVectorBrush appends b, replacing any existing brush of the same
// name.
func (r *BrushRepository) AddVectorBrush(b *VectorBrush) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for i, existing := range r.vector {
		if existing.Name == b.Name {
			r.vector[i] = b
			return nil
		}
	}
	r.vector = append(r.vector, b)
	return nil
}

// AddRasterBrush appends b, replacing any existing brush of the same
// name.
func (r *BrushRepository) AddRasterBrush(b *RasterBrush) error {
	if err := b.Validate(); err != nil {
		return err
	}
	for i, existing := range r.raster {
		if existing.Name == b.Name {
			r.raster[i] = b
			return nil
		}
	}
	r.raster = append(r.raster, b)
	return nil
}

// VectorBrushByName looks up a vector brush by name.
func (r *BrushRepository) VectorBrushByName(name string) (*VectorBrush, bool) {
	for _, b := range r.vector {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// RasterBrushByName looks up a raster brush by name.
func (r *BrushRepository) RasterBrushByName(name string) (*RasterBrush, bool) {
	for _, b := range r.raster {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// RemoveVectorBrush removes the named vector brush, if present. Per
// spec.md §9 Open Question (b), removing an unknown name is a
// documented no-op, not an error: brush removal is used opportunistically
// by cleanup passes that don't always know which kinds of brush a name
// refers to.
func (r *BrushRepository) RemoveVectorBrush(name string) {
	for i, b := range r.vector {
		if b.Name == name {
			r.vector = append(r.vector[:i], r.vector[i+1:]...)
			return
		}
	}
}

// RemoveRasterBrush removes the named raster brush, if present; see
// [BrushRepository.RemoveVectorBrush] for the no-op-on-unknown-name
// rationale.
func (r *BrushRepository) RemoveRasterBrush(name string) {
	for i, b := range r.raster {
		if b.Name == name {
			r.raster = append(r.raster[:i], r.raster[i+1:]...)
			return
		}
	}
}

// VectorBrushes returns every registered vector brush, in insertion
// order.
func (r *BrushRepository) VectorBrushes() []*VectorBrush { return r.vector }

// RasterBrushes returns every registered raster brush, in insertion
// order.
func (r *BrushRepository) RasterBrushes() []*RasterBrush { return r.raster }
