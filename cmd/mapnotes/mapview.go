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

package main

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"seehuhn.de/go/mapnotes/viewport"
)

// mapView shows a viewport and feeds it with mouse events.
type mapView struct {
	widget.BaseWidget

	vp     *viewport.Viewport
	raster *canvas.Raster

	scale float64 // raster pixels per fyne unit
	down  bool
	last  fyne.Position
}

var (
	_ fyne.Widget            = (*mapView)(nil)
	_ fyne.Draggable         = (*mapView)(nil)
	_ fyne.Scrollable        = (*mapView)(nil)
	_ fyne.DoubleTappable    = (*mapView)(nil)
	_ fyne.SecondaryTappable = (*mapView)(nil)
	_ desktop.Mouseable      = (*mapView)(nil)
	_ desktop.Hoverable      = (*mapView)(nil)
)

func newMapView(vp *viewport.Viewport) *mapView {
	m := &mapView{vp: vp, scale: 1}
	m.raster = canvas.NewRaster(m.draw)
	m.raster.ScaleMode = canvas.ImageScalePixels
	vp.OnInvalidate(m.raster.Refresh)
	m.ExtendBaseWidget(m)
	return m
}

func (m *mapView) draw(w, h int) image.Image {
	if size := m.Size(); size.Width > 0 {
		m.scale = float64(w) / float64(size.Width)
	}
	m.vp.Resize(w, h)
	return m.vp.Frame()
}

// pixel converts a widget position into raster pixels.
func (m *mapView) pixel(pos fyne.Position) (float64, float64) {
	return float64(pos.X) * m.scale, float64(pos.Y) * m.scale
}

func (m *mapView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(m.raster)
}

func (m *mapView) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

func (m *mapView) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	m.down = true
	m.last = ev.Position
	m.vp.PointerDown(m.pixel(ev.Position))
}

func (m *mapView) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || !m.down {
		return
	}
	m.down = false
	m.vp.PointerUp(m.pixel(ev.Position))
}

func (m *mapView) Dragged(ev *fyne.DragEvent) {
	m.last = ev.Position
	m.vp.PointerMove(m.pixel(ev.Position))
}

// DragEnd finishes a drag which ended outside the widget, where no
// MouseUp is delivered.
func (m *mapView) DragEnd() {
	if !m.down {
		return
	}
	m.down = false
	m.vp.PointerUp(m.pixel(m.last))
}

func (m *mapView) MouseIn(ev *desktop.MouseEvent) {}

func (m *mapView) MouseMoved(ev *desktop.MouseEvent) {
	m.vp.PointerMove(m.pixel(ev.Position))
}

func (m *mapView) MouseOut() {}

func (m *mapView) Scrolled(ev *fyne.ScrollEvent) {
	x, y := m.pixel(ev.Position)
	m.vp.Scroll(x, y, float64(ev.Scrolled.DY))
}

func (m *mapView) DoubleTapped(ev *fyne.PointEvent) {
	m.vp.DoubleClick(m.pixel(ev.Position))
}

func (m *mapView) TappedSecondary(ev *fyne.PointEvent) {
	m.vp.ContextMenu(m.pixel(ev.Position))
}
