package input

import (
	"image/color"

	"InfiniteBoard/internal/geom"
	"InfiniteBoard/internal/logx"
	"InfiniteBoard/internal/state"
	"InfiniteBoard/internal/viewport"
)

// State is the gesture state of the Machine.
type State uint8

const (
	Idle State = iota
	Panning
	Drawing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	case Drawing:
		return "drawing"
	}
	return "unknown"
}

// DefaultEraserWidthFactor scales the brush size of eraser strokes.
const DefaultEraserWidthFactor = 2.0

// Committer receives finished strokes. *state.Store implements it.
type Committer interface {
	Add(state.Object) state.ID
}

// Tools is the read side of the toolbar settings. *state.Settings implements it.
type Tools interface {
	Tool() state.Tool
	BrushSize() float64
	StrokeColor() color.NRGBA
	Opacity() float64
}

// Smoother converts a raw path into a stroke outline.
type Smoother func(points []geom.Point, size float64) []geom.Point

// Machine turns pointer and wheel events into viewport changes and committed
// strokes. It is not safe for concurrent use; callers serialize events.
type Machine struct {
	view   *viewport.Viewport
	store  Committer
	tools  Tools
	smooth Smoother

	// EraserWidthFactor multiplies the brush size for eraser strokes.
	EraserWidthFactor float64

	state State
	tool  state.Tool // tool captured at the start of a drawing gesture
	path  []geom.Point
	last  geom.Point // screen position of the previous pan sample
}

// NewMachine returns an idle machine driving view and committing to store.
func NewMachine(view *viewport.Viewport, store Committer, tools Tools, smooth Smoother) *Machine {
	return &Machine{
		view:              view,
		store:             store,
		tools:             tools,
		smooth:            smooth,
		EraserWidthFactor: DefaultEraserWidthFactor,
	}
}

// State returns the current gesture state.
func (m *Machine) State() State {
	return m.state
}

// PointerDown starts a pan or a drawing gesture. It is ignored unless idle.
func (m *Machine) PointerDown(e PointerEvent) {
	if m.state != Idle {
		return
	}
	if e.panning() {
		m.state = Panning
		m.last = e.Pos
		logx.Logger().Debug("[INPUT] pan start", "x", e.Pos.X, "y", e.Pos.Y)
		return
	}
	tool := m.tools.Tool()
	if !tool.Drawing() || e.Mods&(ModCtrl|ModMeta) != 0 {
		return
	}
	m.state = Drawing
	m.tool = tool
	m.path = []geom.Point{m.view.ToWorld(e.Pos)}
	logx.Logger().Debug("[INPUT] draw start", "tool", string(tool))
}

// PointerMove pans the viewport or extends the current path.
func (m *Machine) PointerMove(e PointerEvent) {
	switch m.state {
	case Panning:
		m.view.Pan(e.Pos.Sub(m.last))
		m.last = e.Pos
	case Drawing:
		m.path = append(m.path, m.view.ToWorld(e.Pos))
	}
}

// PointerUp ends the current gesture, committing a stroke if one was drawn.
func (m *Machine) PointerUp(e PointerEvent) {
	m.finish()
}

// PointerLeave ends the current gesture like PointerUp.
func (m *Machine) PointerLeave(e PointerEvent) {
	m.finish()
}

// Wheel zooms around the pointer, one ZoomStep per event.
func (m *Machine) Wheel(e WheelEvent) {
	switch {
	case e.DeltaY > 0:
		m.view.Zoom(e.Pos, -viewport.ZoomStep)
	case e.DeltaY < 0:
		m.view.Zoom(e.Pos, viewport.ZoomStep)
	}
}

// Preview returns the smoothed outline of the stroke being drawn. ok is false
// when no stroke with at least two points is in progress.
func (m *Machine) Preview() (outline []geom.Point, erase bool, ok bool) {
	if m.state != Drawing || len(m.path) < 2 {
		return nil, false, false
	}
	erase = m.tool == state.ToolErase
	return m.smooth(m.path, m.strokeSize(erase)), erase, true
}

func (m *Machine) strokeSize(erase bool) float64 {
	size := m.tools.BrushSize()
	if erase {
		size *= m.EraserWidthFactor
	}
	return size
}

func (m *Machine) finish() {
	if m.state == Drawing && len(m.path) >= 2 {
		m.commit()
	}
	if m.state != Idle {
		logx.Logger().Debug("[INPUT] gesture end", "state", m.state.String())
	}
	m.state = Idle
	m.path = nil
}

func (m *Machine) commit() {
	erase := m.tool == state.ToolErase
	size := m.tools.BrushSize()
	outline := m.smooth(m.path, m.strokeSize(erase))

	obj := state.Object{
		Style: state.Style{
			StrokeColor: m.tools.StrokeColor(),
			StrokeWidth: size,
			Opacity:     m.tools.Opacity(),
		},
		Body: state.Stroke{Outline: outline},
	}
	if erase {
		obj.Style.StrokeColor = color.NRGBA{}
		obj.Style.StrokeWidth = m.strokeSize(true)
		obj.Style.Opacity = 1
		obj.Body = state.EraserStroke{Outline: outline}
	}
	id := m.store.Add(obj)
	logx.Logger().Info("[INPUT] stroke committed", "id", id, "kind", obj.Kind().String(), "samples", len(m.path), "outline", len(outline))
}
