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

// Package mapnotes implements a freehand ink layer for pannable and
// zoomable 2D maps.
//
// Strokes are recorded as sequences of [GeoPoint] values in the map's own
// coordinate system and projected to pixels on every redraw, so the ink
// stays attached to the map.  Each stroke carries a snapshot of the
// [Style] which was in effect when it was drawn.  Erasing strokes remove
// the ink of all earlier strokes they cover.
//
// A [PaintLayer] is attached to a [Host], typically a
// [seehuhn.de/go/mapnotes/viewport.Viewport], which delivers pointer
// events and asks the layer to redraw itself through a [Projector].
package mapnotes

//go:generate go run ./testcases/export -o testdata/scenarios
