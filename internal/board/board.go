// Package board ties the viewport, the object store, the tool settings and
// the gesture state machine together behind a single lock.
//
// Event handlers are the only writers. Renderers read through Snapshot,
// which copies the state under the read lock, so a frame never observes a
// half-applied event.
package board

import (
	"image"
	"sync"
	"sync/atomic"

	"InfiniteBoard/internal/freehand"
	"InfiniteBoard/internal/input"
	"InfiniteBoard/internal/logx"
	"InfiniteBoard/internal/render"
	"InfiniteBoard/internal/state"
	"InfiniteBoard/internal/viewport"

	"github.com/google/uuid"
)

// Config configures a Board.
type Config struct {
	// EraserWidthFactor multiplies the brush size for eraser strokes.
	EraserWidthFactor float64
	Render            render.Options
}

// DefaultConfig returns the configuration of a stock board.
func DefaultConfig() Config {
	return Config{
		EraserWidthFactor: input.DefaultEraserWidthFactor,
		Render:            render.DefaultOptions(),
	}
}

// Board is one drawing session.
type Board struct {
	// ID identifies the session in logs and exported documents.
	ID string

	cfg      Config
	store    *state.Store
	settings *state.Settings
	renderer *render.Renderer

	view    viewport.Viewport
	machine *input.Machine
	mu      sync.RWMutex

	// Store changes made while an event holds mu are reported once the
	// event completes.
	inEvent    atomic.Bool
	storeDirty atomic.Bool

	onChange []func()
	lmu      sync.Mutex
}

// New returns an empty board with default settings.
func New(cfg Config) *Board {
	return NewWith(cfg, state.NewStore(), state.NewSettings())
}

// NewWith returns a board using the given store and settings.
func NewWith(cfg Config, store *state.Store, settings *state.Settings) *Board {
	b := &Board{
		ID:       uuid.NewString(),
		cfg:      cfg,
		store:    store,
		settings: settings,
		renderer: render.New(cfg.Render),
		view:     viewport.New(),
	}
	b.machine = input.NewMachine(&b.view, store, settings, freehand.Outline)
	if cfg.EraserWidthFactor > 0 {
		b.machine.EraserWidthFactor = cfg.EraserWidthFactor
	}
	store.Subscribe(b.storeChanged)
	logx.Logger().Info("[BOARD] session started", "session", b.ID)
	return b
}

// Store returns the object store shared with the toolbar.
func (b *Board) Store() *state.Store { return b.store }

// Settings returns the tool settings shared with the toolbar.
func (b *Board) Settings() *state.Settings { return b.settings }

// RenderOptions returns the background options the board renders with.
func (b *Board) RenderOptions() render.Options { return b.cfg.Render }

// OnChange registers fn to be called after any change that alters the
// rendered frame.
func (b *Board) OnChange(fn func()) {
	b.lmu.Lock()
	b.onChange = append(b.onChange, fn)
	b.lmu.Unlock()
}

// Viewport returns the current viewport.
func (b *Board) Viewport() viewport.Viewport {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.view
}

// State returns the gesture state.
func (b *Board) State() input.State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.machine.State()
}

func (b *Board) PointerDown(e input.PointerEvent)  { b.handle(func() { b.machine.PointerDown(e) }) }
func (b *Board) PointerMove(e input.PointerEvent)  { b.handle(func() { b.machine.PointerMove(e) }) }
func (b *Board) PointerUp(e input.PointerEvent)    { b.handle(func() { b.machine.PointerUp(e) }) }
func (b *Board) PointerLeave(e input.PointerEvent) { b.handle(func() { b.machine.PointerLeave(e) }) }
func (b *Board) Wheel(e input.WheelEvent)          { b.handle(func() { b.machine.Wheel(e) }) }

// ResetView restores the identity viewport.
func (b *Board) ResetView() {
	b.handle(func() { b.view = viewport.New() })
}

// handle runs one event to completion under the write lock and reports a
// change if the frame may differ.
func (b *Board) handle(event func()) {
	b.mu.Lock()
	b.inEvent.Store(true)
	view, st := b.view, b.machine.State()
	event()
	dirty := view != b.view || st != input.Idle || b.machine.State() != input.Idle
	b.inEvent.Store(false)
	b.mu.Unlock()

	if b.storeDirty.Swap(false) || dirty {
		b.changed()
	}
}

func (b *Board) storeChanged() {
	if b.inEvent.Load() {
		b.storeDirty.Store(true)
		return
	}
	b.changed()
}

func (b *Board) changed() {
	b.lmu.Lock()
	fns := append([]func(){}, b.onChange...)
	b.lmu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Snapshot returns the scene as of the last completed event.
func (b *Board) Snapshot() render.Scene {
	b.mu.RLock()
	defer b.mu.RUnlock()

	scene := render.Scene{
		View:    b.view,
		Objects: b.store.List(),
	}
	if outline, erase, ok := b.machine.Preview(); ok {
		scene.Preview = outline
		scene.PreviewErase = erase
		scene.PreviewStyle = state.Style{
			StrokeColor: b.settings.StrokeColor(),
			Opacity:     b.settings.Opacity(),
		}
	}
	return scene
}

// Render paints the current scene onto dst. ratio is the number of device
// pixels per screen unit.
func (b *Board) Render(dst *image.RGBA, ratio float64) {
	scene := b.Snapshot()
	if ratio > 0 && ratio != 1 {
		scene.View = scene.View.Device(ratio)
	}
	b.renderer.Render(dst, scene)
}
