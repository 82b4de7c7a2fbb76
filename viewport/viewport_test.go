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
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mapnotes"
)

const eps = 1e-9

func TestProjectCenter(t *testing.T) {
	v := New(200, 100)
	v.SetView(mapnotes.GeoPoint{Lat: 10, Lng: 20}, 1)

	px := v.ProjectToPixel(mapnotes.GeoPoint{Lat: 10, Lng: 20})
	assert.InDelta(t, 100, px.X, eps)
	assert.InDelta(t, 50, px.Y, eps)

	// north is up, east is right
	px = v.ProjectToPixel(mapnotes.GeoPoint{Lat: 11, Lng: 21})
	assert.InDelta(t, 102, px.X, eps)
	assert.InDelta(t, 48, px.Y, eps)

	assert.Equal(t, 2.0, v.ZoomScale())
}

func TestProjectRoundTrip(t *testing.T) {
	v := New(640, 480)
	for _, zoom := range []float64{-5, -2.5, 0, 1, 3.7} {
		v.SetView(mapnotes.GeoPoint{Lat: 123.5, Lng: -7}, zoom)
		for _, p := range []mapnotes.GeoPoint{
			{Lat: 0, Lng: 0},
			{Lat: 2000, Lng: 2000},
			{Lat: -31.25, Lng: 17.5},
		} {
			q := v.Unproject(v.ProjectToPixel(p))
			assert.InDelta(t, p.Lat, q.Lat, 1e-6, "zoom %g", zoom)
			assert.InDelta(t, p.Lng, q.Lng, 1e-6, "zoom %g", zoom)
		}
	}
}

func TestZoomClamp(t *testing.T) {
	v := New(100, 100)
	v.SetZoom(10)
	assert.Equal(t, float64(DefaultMaxZoom), v.Zoom())
	v.SetZoom(-10)
	assert.Equal(t, float64(DefaultMinZoom), v.Zoom())
	v.SetZoom(math.NaN())
	assert.Equal(t, float64(DefaultMinZoom), v.Zoom())

	v = New(100, 100, WithZoomRange(1, 2))
	assert.Equal(t, 1.0, v.Zoom())
	v.SetZoomRange(-1, 0)
	assert.Equal(t, 0.0, v.Zoom())
}

func TestZoomAround(t *testing.T) {
	v := New(400, 300)
	px := vec.Vec2{X: 50, Y: 260}
	before := v.Unproject(px)

	v.ZoomAround(px, 2)
	assert.Equal(t, 2.0, v.Zoom())
	after := v.ProjectToPixel(before)
	assert.InDelta(t, px.X, after.X, 1e-6)
	assert.InDelta(t, px.Y, after.Y, 1e-6)
}

func TestPan(t *testing.T) {
	v := New(100, 100)
	v.SetView(mapnotes.GeoPoint{}, 1)
	p := mapnotes.GeoPoint{Lat: 5, Lng: 5}
	before := v.ProjectToPixel(p)

	v.Pan(10, -4)
	after := v.ProjectToPixel(p)
	assert.InDelta(t, before.X+10, after.X, eps)
	assert.InDelta(t, before.Y-4, after.Y, eps)
}

func TestFitBounds(t *testing.T) {
	v := New(1024, 768)
	v.FitBounds(mapnotes.GeoBounds{
		NorthEast: mapnotes.GeoPoint{Lat: 2000, Lng: 2000},
	})
	assert.Equal(t, -2.0, v.Zoom())
	assert.Equal(t, mapnotes.GeoPoint{Lat: 1000, Lng: 1000}, v.Center())

	// the bounds are fully visible
	sw := v.ProjectToPixel(mapnotes.GeoPoint{})
	ne := v.ProjectToPixel(mapnotes.GeoPoint{Lat: 2000, Lng: 2000})
	assert.GreaterOrEqual(t, sw.X, 0.0)
	assert.LessOrEqual(t, sw.Y, 768.0)
	assert.LessOrEqual(t, ne.X, 1024.0)
	assert.GreaterOrEqual(t, ne.Y, 0.0)

	// a single point zooms in as far as allowed
	p := mapnotes.GeoPoint{Lat: 3, Lng: 4}
	v.FitBounds(mapnotes.GeoBounds{SouthWest: p, NorthEast: p})
	assert.Equal(t, float64(DefaultMaxZoom), v.Zoom())
	assert.Equal(t, p, v.Center())
}

func TestInvalidate(t *testing.T) {
	v := New(100, 100)
	n := 0
	v.OnInvalidate(func() { n++ })

	v.SetZoom(1)
	v.Pan(1, 1)
	v.Resize(50, 50)
	v.Resize(50, 50)
	v.RequestRedraw()
	assert.Equal(t, 4, n)
}

type recorder struct {
	events []string
	points []mapnotes.GeoPoint
}

func (r *recorder) PointerDown(p mapnotes.GeoPoint) { r.record("down", p) }
func (r *recorder) PointerMove(p mapnotes.GeoPoint) { r.record("move", p) }
func (r *recorder) PointerUp(p mapnotes.GeoPoint)   { r.record("up", p) }

func (r *recorder) record(ev string, p mapnotes.GeoPoint) {
	r.events = append(r.events, ev)
	r.points = append(r.points, p)
}

func TestPointerEvents(t *testing.T) {
	v := New(100, 100)
	rec := &recorder{}
	v.AddPointerListener(rec)

	v.SetGesturesEnabled(false)
	v.PointerDown(50, 50)
	v.PointerMove(60, 50)
	v.PointerUp(60, 50)

	assert.Equal(t, []string{"down", "move", "up"}, rec.events)
	assert.Equal(t, []mapnotes.GeoPoint{{}, {Lng: 10}, {Lng: 10}}, rec.points)
	assert.Equal(t, mapnotes.GeoPoint{}, v.Center(), "no pan without dragging")

	v.RemovePointerListener(rec)
	v.PointerDown(0, 0)
	assert.Len(t, rec.events, 3)
}

func TestDragPans(t *testing.T) {
	v := New(100, 100)
	rec := &recorder{}
	v.AddPointerListener(rec)

	v.PointerDown(50, 50)
	v.PointerMove(60, 40)
	v.PointerMove(70, 30)
	v.PointerUp(70, 30)

	assert.InDelta(t, -20, v.Center().Lng, eps)
	assert.InDelta(t, -20, v.Center().Lat, eps)

	// the point grabbed at the start is still under the pointer
	px := v.ProjectToPixel(rec.points[0])
	assert.InDelta(t, 70, px.X, eps)
	assert.InDelta(t, 30, px.Y, eps)
}

func TestGestures(t *testing.T) {
	v := New(100, 100)
	assert.Equal(t, allGestures, v.Gestures())

	v.SetGesturesEnabled(false)
	assert.Equal(t, Gestures{}, v.Gestures())

	v.Scroll(50, 50, 1)
	v.DoubleClick(50, 50)
	v.Pinch(50, 50, 4)
	assert.Equal(t, 0.0, v.Zoom())

	v.SetGesturesEnabled(true)
	v.Scroll(50, 50, 1)
	assert.Equal(t, 1.0, v.Zoom())
	v.Scroll(50, 50, -3)
	assert.Equal(t, 0.0, v.Zoom())
	v.DoubleClick(50, 50)
	assert.Equal(t, 1.0, v.Zoom())
	v.Pinch(50, 50, 4)
	assert.InDelta(t, 3.0, v.Zoom(), eps)
	v.Pinch(50, 50, 0)
	assert.InDelta(t, 3.0, v.Zoom(), eps)
}

func TestContextMenu(t *testing.T) {
	v := New(100, 100)
	v.ContextMenu(10, 10) // no callback

	var got mapnotes.GeoPoint
	v.OnContextMenu(func(p mapnotes.GeoPoint, _ vec.Vec2) { got = p })
	v.ContextMenu(60, 40)
	assert.Equal(t, mapnotes.GeoPoint{Lat: 10, Lng: 10}, got)
}

func TestOverlayOrder(t *testing.T) {
	v := New(10, 10)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	b := ImageBounds(img)

	v.SetOverlay("grid", img, b)
	v.SetOverlay("background", img, b)
	assert.Equal(t, []string{"grid", "background"}, v.Overlays())

	v.SetOverlay("grid", img, b)
	assert.Equal(t, []string{"background", "grid"}, v.Overlays())

	assert.True(t, v.RemoveOverlay("background"))
	assert.False(t, v.RemoveOverlay("background"))
	assert.Equal(t, []string{"grid"}, v.Overlays())
}

type fillHandler struct {
	c color.RGBA
	r image.Rectangle
}

func (h fillHandler) OnSurfaceRedraw(dst *image.RGBA, _ mapnotes.Projector) {
	for y := h.r.Min.Y; y < h.r.Max.Y; y++ {
		for x := h.r.Min.X; x < h.r.Max.X; x++ {
			dst.SetRGBA(x, y, h.c)
		}
	}
}

func TestFrame(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range 4 {
		img.SetRGBA(i%2, i/2, red)
	}

	v := New(4, 4)
	v.SetView(mapnotes.GeoPoint{Lat: 1, Lng: 1}, 0)
	v.SetOverlay("img", img, ImageBounds(img))
	v.AddRedrawHandler(fillHandler{c: blue, r: image.Rect(2, 2, 3, 3)})

	frame := v.Frame()
	require.Equal(t, image.Rect(0, 0, 4, 4), frame.Bounds())

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	assert.Equal(t, white, frame.RGBAAt(0, 0))
	assert.Equal(t, red, frame.RGBAAt(1, 1))
	assert.Equal(t, blue, frame.RGBAAt(2, 2))
	assert.Equal(t, white, frame.RGBAAt(3, 3))

	// surfaces are cleared between frames
	v.RemoveOverlay("img")
	v.handlers = nil
	frame = v.Frame()
	assert.Equal(t, white, frame.RGBAAt(2, 2))
}

func TestFrameWithLayer(t *testing.T) {
	v := New(100, 100)
	v.SetView(mapnotes.GeoPoint{Lat: 50, Lng: 50}, 0)

	l := mapnotes.NewPaintLayer().AddTo(v)
	l.Enable()
	assert.Equal(t, Gestures{}, v.Gestures())

	v.PointerDown(10, 50)
	v.PointerMove(10, 50)
	v.PointerMove(90, 50)
	v.PointerUp(90, 50)
	require.Len(t, l.Strokes(), 2)
	assert.Equal(t, mapnotes.GeoPoint{Lat: 50, Lng: 10}, l.Strokes()[0].Path[0])

	frame := v.Frame()
	assert.Equal(t, color.RGBA{A: 255}, frame.RGBAAt(50, 50))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, frame.RGBAAt(50, 20))

	// panning moves the ink with the map
	l.Disable()
	v.Pan(0, 20)
	frame = v.Frame()
	assert.Equal(t, color.RGBA{A: 255}, frame.RGBAAt(50, 70))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, frame.RGBAAt(50, 50))
}
