// Package input is the state machine that classifies pointer gestures on the
// board into panning, drawing or nothing.
package input

import "InfiniteBoard/internal/geom"

// Button is the pointer button that went down.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Modifier is a set of keys held during a pointer event.
type Modifier uint8

const (
	// ModPan is the designated pan key (space).
	ModPan Modifier = 1 << iota
	ModCtrl
	ModMeta
	ModShift
)

// PointerEvent is a pointer sample in screen coordinates.
type PointerEvent struct {
	Pos    geom.Point
	Button Button
	Mods   Modifier
}

// panning reports whether the event asks for a pan instead of a tool action.
func (e PointerEvent) panning() bool {
	return e.Button == ButtonSecondary || e.Button == ButtonMiddle || e.Mods&ModPan != 0
}

// WheelEvent is a scroll notch at a screen position. DeltaY follows the
// platform convention: positive scrolls down, which zooms out.
type WheelEvent struct {
	Pos    geom.Point
	DeltaY float64
}
