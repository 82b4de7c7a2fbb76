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

package viewport

import (
	"math"
	"slices"

	"seehuhn.de/go/geom/vec"
)

// PointerDown handles a primary button press at pixel position (x, y).
// Listeners receive the event in map coordinates.  If dragging is enabled,
// a pan starts.
func (v *Viewport) PointerDown(x, y float64) {
	px := vec.Vec2{X: x, Y: y}
	p := v.Unproject(px)
	for _, l := range slices.Clone(v.listeners) {
		l.PointerDown(p)
	}
	if v.gestures.Dragging {
		v.panning = true
		v.last = px
	}
}

// PointerMove handles pointer motion to pixel position (x, y).  The map
// point is computed before any pan caused by the motion.
func (v *Viewport) PointerMove(x, y float64) {
	px := vec.Vec2{X: x, Y: y}
	p := v.Unproject(px)
	for _, l := range slices.Clone(v.listeners) {
		l.PointerMove(p)
	}
	if v.panning && v.gestures.Dragging {
		d := px.Sub(v.last)
		v.last = px
		v.Pan(d.X, d.Y)
	}
}

// PointerUp handles the release of the primary button.
func (v *Viewport) PointerUp(x, y float64) {
	p := v.Unproject(vec.Vec2{X: x, Y: y})
	for _, l := range slices.Clone(v.listeners) {
		l.PointerUp(p)
	}
	v.panning = false
}

// Scroll handles a wheel event at (x, y).  Positive dy zooms in by one
// level, negative dy zooms out.
func (v *Viewport) Scroll(x, y, dy float64) {
	if !v.gestures.ScrollWheelZoom || dy == 0 {
		return
	}
	step := 1.0
	if dy < 0 {
		step = -1
	}
	v.ZoomAround(vec.Vec2{X: x, Y: y}, v.zoom+step)
}

// DoubleClick zooms in by one level around (x, y).
func (v *Viewport) DoubleClick(x, y float64) {
	if !v.gestures.DoubleClickZoom {
		return
	}
	v.ZoomAround(vec.Vec2{X: x, Y: y}, v.zoom+1)
}

// Pinch handles a two-finger gesture around (x, y) which scaled the
// distance between the fingers by factor.
func (v *Viewport) Pinch(x, y, factor float64) {
	if !v.gestures.TouchZoom || !(factor > 0) || math.IsInf(factor, 0) {
		return
	}
	v.ZoomAround(vec.Vec2{X: x, Y: y}, v.zoom+math.Log2(factor))
}

// ContextMenu handles a secondary click at (x, y).
func (v *Viewport) ContextMenu(x, y float64) {
	if v.onContextMenu == nil {
		return
	}
	px := vec.Vec2{X: x, Y: y}
	v.onContextMenu(v.Unproject(px), px)
}
