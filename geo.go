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

import (
	"fmt"
	"image"

	"seehuhn.de/go/geom/vec"
)

// GeoPoint is a location in the map's own coordinate system.  For the flat
// maps used here (CRS.Simple), Lng is the x coordinate growing to the east
// and Lat is the y coordinate growing to the north.
//
// This is the only representation in which ink is stored.
type GeoPoint struct {
	Lat, Lng float64
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("(%g, %g)", p.Lat, p.Lng)
}

// PixelPoint is a location on the drawing surface, in pixels, with x
// growing to the right and y growing downwards.  Pixel points are derived
// from GeoPoints on every redraw and are never stored.
type PixelPoint = vec.Vec2

// GeoBounds is an axis-aligned rectangle in map coordinates.
type GeoBounds struct {
	SouthWest, NorthEast GeoPoint
}

// Projector converts map coordinates into surface pixels for the current
// viewport.  Implementations must be pure functions of the point and the
// current view state.
type Projector interface {
	// ProjectToPixel returns the surface position of p.
	ProjectToPixel(p GeoPoint) PixelPoint

	// ZoomScale returns the number of pixels per map unit at the current
	// zoom level.
	ZoomScale() float64
}

// RedrawHandler is implemented by layers which draw onto a surface owned
// by the host.  The host calls OnSurfaceRedraw whenever the view changes
// or a redraw was requested.
type RedrawHandler interface {
	OnSurfaceRedraw(dst *image.RGBA, p Projector)
}

// PointerListener receives pointer events which the host has already
// converted into map coordinates.
type PointerListener interface {
	PointerDown(p GeoPoint)
	PointerMove(p GeoPoint)
	PointerUp(p GeoPoint)
}

// Host is the map viewport a layer is attached to.
type Host interface {
	AddRedrawHandler(h RedrawHandler)
	RemoveRedrawHandler(h RedrawHandler)
	AddPointerListener(l PointerListener)
	RemovePointerListener(l PointerListener)

	// RequestRedraw schedules a call to the OnSurfaceRedraw method of
	// every registered handler.
	RequestRedraw()

	// SetGesturesEnabled switches touch zoom, double-click zoom,
	// scroll-wheel zoom and drag panning on or off together.
	SetGesturesEnabled(enabled bool)
}
