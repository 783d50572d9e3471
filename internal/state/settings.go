package state

import (
	"image/color"
	"sync"
)

// Tool is the active toolbar tool.
type Tool string

const (
	ToolDraw   Tool = "draw"
	ToolErase  Tool = "erase"
	ToolShape  Tool = "shape"
	ToolText   Tool = "text"
	ToolImage  Tool = "image"
	ToolSelect Tool = "select"
)

// Drawing reports whether t draws freehand strokes.
func (t Tool) Drawing() bool {
	return t == ToolDraw || t == ToolErase
}

// Settings is the tool state owned by the toolbar and read by the board
// when it turns gestures into objects. It is safe for concurrent use.
type Settings struct {
	tool        Tool
	strokeColor color.NRGBA
	fillColor   color.NRGBA
	brushSize   float64
	shapeType   ShapeType
	fontSize    float64
	fontFamily  string
	opacity     float64

	listeners []func()
	mu        sync.RWMutex
}

// NewSettings returns the settings a fresh board starts with.
func NewSettings() *Settings {
	return &Settings{
		tool:        ToolDraw,
		strokeColor: color.NRGBA{A: 0xff},
		fillColor:   color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		brushSize:   2,
		shapeType:   ShapeRectangle,
		fontSize:    24,
		fontFamily:  "Arial",
		opacity:     1,
	}
}

// Subscribe registers fn to be called after any setting changes.
func (s *Settings) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Settings) set(f func()) {
	s.mu.Lock()
	f()
	fns := append([]func(){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (s *Settings) Tool() Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tool
}

func (s *Settings) SetTool(t Tool) { s.set(func() { s.tool = t }) }

func (s *Settings) StrokeColor() color.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strokeColor
}

func (s *Settings) SetStrokeColor(c color.NRGBA) { s.set(func() { s.strokeColor = c }) }

func (s *Settings) FillColor() color.NRGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fillColor
}

func (s *Settings) SetFillColor(c color.NRGBA) { s.set(func() { s.fillColor = c }) }

func (s *Settings) BrushSize() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.brushSize
}

// SetBrushSize sets the brush size. Non-positive sizes are ignored.
func (s *Settings) SetBrushSize(size float64) {
	if !(size > 0) {
		return
	}
	s.set(func() { s.brushSize = size })
}

func (s *Settings) ShapeType() ShapeType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shapeType
}

func (s *Settings) SetShapeType(t ShapeType) { s.set(func() { s.shapeType = t }) }

func (s *Settings) FontSize() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fontSize
}

// SetFontSize sets the text size. Non-positive sizes are ignored.
func (s *Settings) SetFontSize(size float64) {
	if !(size > 0) {
		return
	}
	s.set(func() { s.fontSize = size })
}

func (s *Settings) FontFamily() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fontFamily
}

func (s *Settings) SetFontFamily(family string) { s.set(func() { s.fontFamily = family }) }

func (s *Settings) Opacity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opacity
}

// SetOpacity sets the opacity, clamped to [0, 1].
func (s *Settings) SetOpacity(o float64) {
	if o < 0 {
		o = 0
	} else if o > 1 {
		o = 1
	}
	s.set(func() { s.opacity = o })
}
