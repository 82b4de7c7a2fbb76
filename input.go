// seehuhn.de/go/mapnotes - freehand annotations for 2D maps
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mapnotes

// Mode tells whether pointer input is turned into ink.
type Mode int

const (
	// ModeIdle leaves pointer input to the map (panning, zooming).
	ModeIdle Mode = iota

	// ModeDrawing captures pointer input for freehand strokes.
	ModeDrawing
)

func (m Mode) String() string {
	if m == ModeDrawing {
		return "drawing"
	}
	return "idle"
}

// RouterAction is what the router asks its owner to do in response to an
// event.
type RouterAction int

const (
	// ActionNone means the event was ignored.
	ActionNone RouterAction = iota

	// ActionPress means the button went down; nothing changes yet.
	ActionPress

	// ActionAppend means the point must be appended to the active stroke
	// and the layer redrawn.
	ActionAppend

	// ActionSeal means the active stroke must be sealed if it has points.
	ActionSeal
)

// Router is the pointer state machine of a paint layer.  It tracks two
// independent flags: the mode and whether the button is held.  Only the
// combination drawing+pressed turns pointer motion into ink.
//
// Leaving drawing mode does not end a stroke: if the button is still held
// when drawing is re-enabled, motion continues the same stroke.
type Router struct {
	mode    Mode
	pressed bool
}

// Mode returns the current mode.
func (r *Router) Mode() Mode {
	return r.mode
}

// Pressed reports whether the pointer button is held down.
func (r *Router) Pressed() bool {
	return r.pressed
}

// SetMode switches between idle and drawing mode.  It reports whether the
// mode changed.
func (r *Router) SetMode(m Mode) bool {
	if r.mode == m {
		return false
	}
	r.mode = m
	return true
}

// Down handles a pointer-down event.
func (r *Router) Down() RouterAction {
	if r.mode != ModeDrawing {
		return ActionNone
	}
	r.pressed = true
	return ActionPress
}

// Move handles a pointer-move event.
func (r *Router) Move() RouterAction {
	if r.mode != ModeDrawing || !r.pressed {
		return ActionNone
	}
	return ActionAppend
}

// Up handles a pointer-up event.
func (r *Router) Up() RouterAction {
	if r.mode != ModeDrawing {
		return ActionNone
	}
	r.pressed = false
	return ActionSeal
}
