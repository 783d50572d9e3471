package ui

import (
	"fmt"
	"image"
	"image/color"

	"InfiniteBoard/internal/board"
	"InfiniteBoard/internal/geom"
	"InfiniteBoard/internal/input"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const helpText = "Space+drag or right/middle drag to pan, wheel to zoom"

// BoardWidget shows a board and feeds it the desktop pointer events.
type BoardWidget struct {
	widget.BaseWidget
	board *board.Board

	raster *canvas.Raster
	info   *canvas.Text

	spaceHeld bool
	pressed   bool
	button    input.Button
	mods      input.Modifier
	last      fyne.Position
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ fyne.Focusable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ desktop.Keyable = (*BoardWidget)(nil)
var _ desktop.Cursorable = (*BoardWidget)(nil)

func NewBoardWidget(b *board.Board) *BoardWidget {
	w := &BoardWidget{board: b}
	w.raster = canvas.NewRaster(w.draw)
	w.info = canvas.NewText("", color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff})
	w.info.TextSize = 12
	w.ExtendBaseWidget(w)

	b.OnChange(w.Refresh)
	b.Settings().Subscribe(w.Refresh)
	return w
}

// draw renders the board at the raster's pixel size.
func (w *BoardWidget) draw(width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	ratio := 1.0
	if size := w.Size(); size.Width > 0 {
		ratio = float64(width) / float64(size.Width)
	}
	w.board.Render(dst, ratio)
	return dst
}

func (w *BoardWidget) infoText() string {
	settings := w.board.Settings()
	tool := settings.Tool()
	text := fmt.Sprintf("Tool: %s | Zoom: %d%%", tool, w.board.Viewport().Percent())
	if tool.Drawing() {
		text += fmt.Sprintf(" | Size: %gpx", settings.BrushSize())
	}
	return text + " | " + helpText
}

func toPoint(p fyne.Position) geom.Point {
	return geom.Pt(float64(p.X), float64(p.Y))
}

func toButton(b desktop.MouseButton) input.Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return input.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return input.ButtonMiddle
	}
	return input.ButtonPrimary
}

func (w *BoardWidget) modifiers(m fyne.KeyModifier) input.Modifier {
	var mods input.Modifier
	if w.spaceHeld {
		mods |= input.ModPan
	}
	if m&fyne.KeyModifierControl != 0 {
		mods |= input.ModCtrl
	}
	if m&fyne.KeyModifierSuper != 0 {
		mods |= input.ModMeta
	}
	if m&fyne.KeyModifierShift != 0 {
		mods |= input.ModShift
	}
	return mods
}

func (w *BoardWidget) event(pos fyne.Position) input.PointerEvent {
	return input.PointerEvent{Pos: toPoint(pos), Button: w.button, Mods: w.mods}
}

func (w *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(w); c != nil {
		c.Focus(w)
	}
	w.pressed = true
	w.button = toButton(e.Button)
	w.mods = w.modifiers(e.Modifier)
	w.last = e.Position
	w.board.PointerDown(w.event(e.Position))
}

func (w *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	w.release(e.Position)
}

func (w *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	w.move(e.Position)
}

func (w *BoardWidget) Dragged(e *fyne.DragEvent) {
	w.move(e.Position)
}

func (w *BoardWidget) DragEnd() {
	w.release(w.last)
}

func (w *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (w *BoardWidget) MouseOut() {
	if w.pressed {
		w.pressed = false
		w.board.PointerLeave(w.event(w.last))
	}
}

// move forwards a pointer sample. Drag and hover events may both report the
// same position, so repeats are dropped.
func (w *BoardWidget) move(pos fyne.Position) {
	if pos == w.last {
		return
	}
	w.last = pos
	w.board.PointerMove(w.event(pos))
}

func (w *BoardWidget) release(pos fyne.Position) {
	if !w.pressed {
		return
	}
	w.pressed = false
	w.board.PointerUp(w.event(pos))
}

func (w *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	w.board.Wheel(input.WheelEvent{Pos: toPoint(e.Position), DeltaY: -float64(e.Scrolled.DY)})
}

func (w *BoardWidget) KeyDown(e *fyne.KeyEvent) {
	if e.Name == fyne.KeySpace {
		w.spaceHeld = true
	}
}

func (w *BoardWidget) KeyUp(e *fyne.KeyEvent) {
	if e.Name == fyne.KeySpace {
		w.spaceHeld = false
	}
}

func (w *BoardWidget) FocusGained()              {}
func (w *BoardWidget) FocusLost()                { w.spaceHeld = false }
func (w *BoardWidget) TypedRune(rune)            {}
func (w *BoardWidget) TypedKey(e *fyne.KeyEvent) {}

func (w *BoardWidget) Cursor() desktop.Cursor {
	if w.spaceHeld || w.board.State() == input.Panning {
		return desktop.PointerCursor
	}
	if w.board.Settings().Tool().Drawing() {
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{board: w}
}

type boardWidgetRenderer struct {
	board *BoardWidget
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.raster, r.board.info}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.raster.Resize(size)
	info := r.board.info.MinSize()
	r.board.info.Move(fyne.NewPos(8, size.Height-info.Height-8))
	r.board.info.Resize(info)
}

func (r *boardWidgetRenderer) Refresh() {
	r.board.info.Text = r.board.infoText()
	r.board.info.Refresh()
	r.Layout(r.board.Size())
	r.board.raster.Refresh()
}

func (r *boardWidgetRenderer) Destroy()           {}
func (r *boardWidgetRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }
