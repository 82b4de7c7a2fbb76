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

// Package viewport implements a pannable, zoomable view onto a flat map.
//
// Map coordinates are mapped to pixels like Leaflet's CRS.Simple: one map
// unit is 2^zoom pixels, Lng grows to the right and Lat grows upwards.  A
// Viewport is a [mapnotes.Host]: layers register with it to receive pointer
// events in map coordinates and to draw onto their own surface, which is
// composited over the image overlays when a frame is built.
package viewport

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mapnotes"
)

// Default zoom range.
const (
	DefaultMinZoom = -5
	DefaultMaxZoom = 4
)

// Gestures selects which pointer gestures change the view.
type Gestures struct {
	Dragging        bool // drag to pan
	ScrollWheelZoom bool
	DoubleClickZoom bool
	TouchZoom       bool // pinch to zoom
}

// allGestures is the initial gesture set.
var allGestures = Gestures{
	Dragging:        true,
	ScrollWheelZoom: true,
	DoubleClickZoom: true,
	TouchZoom:       true,
}

type overlay struct {
	name   string
	img    image.Image
	bounds mapnotes.GeoBounds
}

// Viewport is the view state of a map together with the layers drawn on
// top of it.  It is not safe for concurrent use.
type Viewport struct {
	width, height int
	center        mapnotes.GeoPoint
	zoom          float64

	minZoom, maxZoom float64
	gestures         Gestures

	// Background is used for pixels not covered by any overlay.
	Background color.Color

	overlays  []*overlay
	handlers  []mapnotes.RedrawHandler
	listeners []mapnotes.PointerListener

	onInvalidate  func()
	onContextMenu func(p mapnotes.GeoPoint, px vec.Vec2)

	panning bool
	last    vec.Vec2

	frame, surface *image.RGBA

	logger *slog.Logger
}

// Option configures a Viewport.
type Option func(*Viewport)

// WithZoomRange sets the smallest and largest allowed zoom level.
func WithZoomRange(minZoom, maxZoom float64) Option {
	return func(v *Viewport) {
		v.minZoom = minZoom
		v.maxZoom = maxZoom
	}
}

// WithLogger sets the logger used by the viewport.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Viewport) {
		v.logger = logger
	}
}

// New returns a viewport of the given size in pixels, centred on the
// origin at zoom level 0, with all gestures enabled.
func New(width, height int, opts ...Option) *Viewport {
	v := &Viewport{
		width:      width,
		height:     height,
		minZoom:    DefaultMinZoom,
		maxZoom:    DefaultMaxZoom,
		gestures:   allGestures,
		Background: color.White,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.zoom = v.clampZoom(0)
	return v
}

// Size returns the viewport size in pixels.
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// Center returns the map point shown in the middle of the viewport.
func (v *Viewport) Center() mapnotes.GeoPoint {
	return v.center
}

// Zoom returns the current zoom level.
func (v *Viewport) Zoom() float64 {
	return v.zoom
}

// ZoomRange returns the smallest and largest allowed zoom level.
func (v *Viewport) ZoomRange() (minZoom, maxZoom float64) {
	return v.minZoom, v.maxZoom
}

// SetZoomRange changes the allowed zoom levels.  The current zoom is
// clamped to the new range.
func (v *Viewport) SetZoomRange(minZoom, maxZoom float64) {
	v.minZoom = minZoom
	v.maxZoom = maxZoom
	v.SetView(v.center, v.zoom)
}

// ZoomScale implements [mapnotes.Projector].
func (v *Viewport) ZoomScale() float64 {
	return math.Exp2(v.zoom)
}

// transform returns the matrix mapping (Lng, Lat) to pixels.
func (v *Viewport) transform() matrix.Matrix {
	s := v.ZoomScale()
	return matrix.Matrix{
		s, 0,
		0, -s,
		float64(v.width)/2 - s*v.center.Lng,
		float64(v.height)/2 + s*v.center.Lat,
	}
}

// ProjectToPixel implements [mapnotes.Projector].
func (v *Viewport) ProjectToPixel(p mapnotes.GeoPoint) mapnotes.PixelPoint {
	m := v.transform()
	return vec.Vec2{
		X: m[0]*p.Lng + m[2]*p.Lat + m[4],
		Y: m[1]*p.Lng + m[3]*p.Lat + m[5],
	}
}

// Unproject returns the map point shown at pixel position px.
func (v *Viewport) Unproject(px vec.Vec2) mapnotes.GeoPoint {
	m := v.transform()
	det := m[0]*m[3] - m[1]*m[2]
	dx := px.X - m[4]
	dy := px.Y - m[5]
	return mapnotes.GeoPoint{
		Lng: (m[3]*dx - m[2]*dy) / det,
		Lat: (m[0]*dy - m[1]*dx) / det,
	}
}

func (v *Viewport) clampZoom(z float64) float64 {
	if math.IsNaN(z) {
		return v.zoom
	}
	return max(v.minZoom, min(v.maxZoom, z))
}

// SetView moves the viewport to show center at the given zoom level.
func (v *Viewport) SetView(center mapnotes.GeoPoint, zoom float64) {
	v.center = center
	v.zoom = v.clampZoom(zoom)
	v.RequestRedraw()
}

// SetZoom changes the zoom level, keeping the centre fixed.
func (v *Viewport) SetZoom(zoom float64) {
	v.SetView(v.center, zoom)
}

// ZoomAround changes the zoom level, keeping the map point under the
// pixel position px fixed.
func (v *Viewport) ZoomAround(px vec.Vec2, zoom float64) {
	p := v.Unproject(px)
	v.zoom = v.clampZoom(zoom)
	s := v.ZoomScale()
	v.center = mapnotes.GeoPoint{
		Lng: p.Lng - (px.X-float64(v.width)/2)/s,
		Lat: p.Lat + (px.Y-float64(v.height)/2)/s,
	}
	v.RequestRedraw()
}

// Pan moves the map content by (dx, dy) pixels.
func (v *Viewport) Pan(dx, dy float64) {
	s := v.ZoomScale()
	v.center.Lng -= dx / s
	v.center.Lat += dy / s
	v.RequestRedraw()
}

// FitBounds centres the view on b and selects the largest integer zoom
// level at which all of b is visible.
func (v *Viewport) FitBounds(b mapnotes.GeoBounds) {
	center := mapnotes.GeoPoint{
		Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2,
		Lng: (b.SouthWest.Lng + b.NorthEast.Lng) / 2,
	}
	bw := math.Abs(b.NorthEast.Lng - b.SouthWest.Lng)
	bh := math.Abs(b.NorthEast.Lat - b.SouthWest.Lat)

	zoom := v.maxZoom
	if bw > 0 || bh > 0 {
		scale := math.Inf(1)
		if bw > 0 {
			scale = float64(v.width) / bw
		}
		if bh > 0 {
			scale = min(scale, float64(v.height)/bh)
		}
		zoom = math.Floor(math.Log2(scale))
	}
	v.SetView(center, zoom)
}

// Resize changes the viewport size.  The centre stays fixed.
func (v *Viewport) Resize(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	v.width = width
	v.height = height
	v.RequestRedraw()
}

// Gestures returns the enabled gestures.
func (v *Viewport) Gestures() Gestures {
	return v.gestures
}

// SetGestures enables exactly the gestures in g.
func (v *Viewport) SetGestures(g Gestures) {
	v.gestures = g
	if !g.Dragging {
		v.panning = false
	}
}

// SetGesturesEnabled implements [mapnotes.Host].
func (v *Viewport) SetGesturesEnabled(enabled bool) {
	g := Gestures{}
	if enabled {
		g = allGestures
	}
	v.SetGestures(g)
	v.logger.Debug("gestures changed", "enabled", enabled)
}

// OnInvalidate sets the function called whenever the viewport needs to be
// redrawn.
func (v *Viewport) OnInvalidate(fn func()) {
	v.onInvalidate = fn
}

// OnContextMenu sets the function called for secondary clicks.
func (v *Viewport) OnContextMenu(fn func(p mapnotes.GeoPoint, px vec.Vec2)) {
	v.onContextMenu = fn
}

// RequestRedraw implements [mapnotes.Host].
func (v *Viewport) RequestRedraw() {
	if v.onInvalidate != nil {
		v.onInvalidate()
	}
}

// AddRedrawHandler implements [mapnotes.Host].  Handlers are drawn in the
// order they were added.
func (v *Viewport) AddRedrawHandler(h mapnotes.RedrawHandler) {
	v.handlers = append(v.handlers, h)
}

// RemoveRedrawHandler implements [mapnotes.Host].
func (v *Viewport) RemoveRedrawHandler(h mapnotes.RedrawHandler) {
	v.handlers = slices.DeleteFunc(v.handlers, func(x mapnotes.RedrawHandler) bool {
		return x == h
	})
}

// AddPointerListener implements [mapnotes.Host].
func (v *Viewport) AddPointerListener(l mapnotes.PointerListener) {
	v.listeners = append(v.listeners, l)
}

// RemovePointerListener implements [mapnotes.Host].
func (v *Viewport) RemovePointerListener(l mapnotes.PointerListener) {
	v.listeners = slices.DeleteFunc(v.listeners, func(x mapnotes.PointerListener) bool {
		return x == l
	})
}

// SetOverlay places img so that it covers bounds.  An existing overlay
// with the same name is replaced, and the overlay is moved to the top.
func (v *Viewport) SetOverlay(name string, img image.Image, bounds mapnotes.GeoBounds) {
	v.overlays = slices.DeleteFunc(v.overlays, func(o *overlay) bool {
		return o.name == name
	})
	v.overlays = append(v.overlays, &overlay{name: name, img: img, bounds: bounds})
	v.logger.Debug("overlay set", "name", name,
		"south_west", bounds.SouthWest, "north_east", bounds.NorthEast)
	v.RequestRedraw()
}

// RemoveOverlay removes the named overlay.  It reports whether the overlay
// existed.
func (v *Viewport) RemoveOverlay(name string) bool {
	n := len(v.overlays)
	v.overlays = slices.DeleteFunc(v.overlays, func(o *overlay) bool {
		return o.name == name
	})
	if len(v.overlays) == n {
		return false
	}
	v.RequestRedraw()
	return true
}

// Overlays returns the overlay names, bottom first.
func (v *Viewport) Overlays() []string {
	names := make([]string, len(v.overlays))
	for i, o := range v.overlays {
		names[i] = o.name
	}
	return names
}

// Frame renders the current view: the background, the overlays bottom to
// top, and finally the surface of every redraw handler.  The returned
// image is reused by the next call.
func (v *Viewport) Frame() *image.RGBA {
	r := image.Rect(0, 0, v.width, v.height)
	if v.frame == nil || v.frame.Rect != r {
		v.frame = image.NewRGBA(r)
		v.surface = image.NewRGBA(r)
	}
	dst := v.frame
	draw.Draw(dst, r, image.NewUniform(v.Background), image.Point{}, draw.Src)

	scaler := draw.Interpolator(draw.ApproxBiLinear)
	if v.ZoomScale() >= 1 {
		scaler = draw.NearestNeighbor
	}
	for _, o := range v.overlays {
		dr := v.pixelRect(o.bounds)
		if !dr.Overlaps(r) {
			continue
		}
		scaler.Scale(dst, dr, o.img, o.img.Bounds(), draw.Over, nil)
	}

	for _, h := range v.handlers {
		clear(v.surface.Pix)
		h.OnSurfaceRedraw(v.surface, v)
		draw.Draw(dst, r, v.surface, image.Point{}, draw.Over)
	}
	return dst
}

// pixelRect returns the smallest pixel rectangle covering b.
func (v *Viewport) pixelRect(b mapnotes.GeoBounds) image.Rectangle {
	nw := v.ProjectToPixel(mapnotes.GeoPoint{Lat: b.NorthEast.Lat, Lng: b.SouthWest.Lng})
	se := v.ProjectToPixel(mapnotes.GeoPoint{Lat: b.SouthWest.Lat, Lng: b.NorthEast.Lng})
	return image.Rect(
		int(math.Floor(nw.X)), int(math.Floor(nw.Y)),
		int(math.Ceil(se.X)), int(math.Ceil(se.Y)),
	)
}
