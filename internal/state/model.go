package state

import (
	"image"
	"image/color"

	"InfiniteBoard/internal/geom"
)

// ID identifies a drawable object for its whole lifetime. IDs are assigned
// in increasing order and never reused.
type ID int64

// Kind tags the variant held by an Object.
type Kind uint8

const (
	KindStroke Kind = iota
	KindEraser
	KindShape
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindStroke:
		return "stroke"
	case KindEraser:
		return "eraser-stroke"
	case KindShape:
		return "shape"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	}
	return "unknown"
}

// Composite is the blending mode the renderer applies when painting an object.
type Composite uint8

const (
	// CompositeOver paints the object on top of what is beneath it.
	CompositeOver Composite = iota
	// CompositeErase removes coverage from what is beneath it.
	CompositeErase
)

// Body is the kind-specific geometry of an object. It is implemented only by
// the values Stroke, EraserStroke, Shape, Text and Image; pointers to them are
// not valid bodies.
type Body interface {
	Kind() Kind
	Bounds() geom.Area
	body()
}

// ValidBody reports whether b holds one of the body values. Nil and
// pointer bodies are invalid.
func ValidBody(b Body) bool {
	switch b.(type) {
	case Stroke, EraserStroke, Shape, Text, Image:
		return true
	}
	return false
}

// Style holds the paint settings shared by all kinds.
type Style struct {
	StrokeColor color.NRGBA
	FillColor   color.NRGBA
	StrokeWidth float64
	Opacity     float64
}

// Object is one entry of the board's paint list.
type Object struct {
	ID    ID
	Style Style
	Body  Body
}

// Kind returns the kind of the object's body.
func (o Object) Kind() Kind {
	if !ValidBody(o.Body) {
		return Kind(255)
	}
	return o.Body.Kind()
}

// Composite returns how the object blends with what was painted before it.
func (o Object) Composite() Composite {
	if o.Kind() == KindEraser {
		return CompositeErase
	}
	return CompositeOver
}

// Stroke is a freehand ink stroke stored as its filled outline.
type Stroke struct {
	Outline []geom.Point
}

func (Stroke) body()      {}
func (Stroke) Kind() Kind { return KindStroke }

func (s Stroke) Bounds() geom.Area {
	a, _ := geom.BoundsOf(s.Outline, 0)
	return a
}

// EraserStroke removes the coverage of everything painted before it within
// its outline.
type EraserStroke struct {
	Outline []geom.Point
}

func (EraserStroke) body()      {}
func (EraserStroke) Kind() Kind { return KindEraser }

func (s EraserStroke) Bounds() geom.Area {
	a, _ := geom.BoundsOf(s.Outline, 0)
	return a
}

// ShapeType selects the geometry of a Shape.
type ShapeType string

const (
	ShapeRectangle ShapeType = "rectangle"
	ShapeCircle    ShapeType = "circle"
	ShapeEllipse   ShapeType = "ellipse"
	ShapePolygon   ShapeType = "polygon"
)

// Shape is a rectangle, circle, ellipse or regular polygon inscribed in Area.
// Rotation is in radians around the area's center.
type Shape struct {
	Type     ShapeType
	Area     geom.Area
	Rotation float64
	Sides    int // polygon only, defaults to 5
}

func (Shape) body()               {}
func (Shape) Kind() Kind          { return KindShape }
func (s Shape) Bounds() geom.Area { return s.Area }

// Text is a single line of text whose baseline starts at Origin.
type Text struct {
	Origin     geom.Point
	Content    string
	FontSize   float64
	FontFamily string
}

func (Text) body()      {}
func (Text) Kind() Kind { return KindText }

// Bounds estimates the text extent from the font size.
func (t Text) Bounds() geom.Area {
	w := 0.6 * t.FontSize * float64(len([]rune(t.Content)))
	return geom.Area{X: t.Origin.X, Y: t.Origin.Y - t.FontSize, Width: w, Height: 1.25 * t.FontSize}
}

// Image places Source scaled into Area.
type Image struct {
	Area   geom.Area
	Source image.Image
}

func (Image) body()               {}
func (Image) Kind() Kind          { return KindImage }
func (i Image) Bounds() geom.Area { return i.Area }

// Patch lists the fields to merge onto an existing object. Nil fields are
// left untouched.
type Patch struct {
	StrokeColor *color.NRGBA
	FillColor   *color.NRGBA
	StrokeWidth *float64
	Opacity     *float64
	Body        Body
}

func (p Patch) apply(o *Object) {
	if p.StrokeColor != nil {
		o.Style.StrokeColor = *p.StrokeColor
	}
	if p.FillColor != nil {
		o.Style.FillColor = *p.FillColor
	}
	if p.StrokeWidth != nil {
		o.Style.StrokeWidth = *p.StrokeWidth
	}
	if p.Opacity != nil {
		o.Style.Opacity = *p.Opacity
	}
	if p.Body != nil {
		o.Body = p.Body
	}
}
