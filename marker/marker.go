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

// Package marker implements numbered map pins which snap to the centres
// of grid cells.
package marker

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mapnotes"
	"seehuhn.de/go/mapnotes/grid"
	"seehuhn.de/go/mapnotes/raster"
)

// Pin geometry, in pixels.  The anchor is the bottom centre of the pin.
const (
	pinSize        = 30
	pinHeadRadius  = 13
	pinInnerRadius = 9
	pinHeadY       = pinSize - pinHeadRadius // head centre above the anchor
)

var (
	innerColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	textColor  = color.NRGBA{R: 0x51, G: 0xc5, B: 0xcf, A: 255}
)

// Marker is a numbered pin on the map.
type Marker struct {
	ID       string
	Number   int
	Position mapnotes.GeoPoint
	Color    color.NRGBA
}

// Set holds the markers of a map.  Numbers are assigned in order of
// creation and are never reused, even after a marker is removed.
//
// A Set is not safe for concurrent use.
type Set struct {
	cell    float64
	markers []*Marker
	count   int

	rng    *rand.Rand
	r      *raster.Rasterizer
	logger *slog.Logger
}

// Option configures a Set.
type Option func(*Set)

// WithRand sets the random number generator used to pick marker colours.
func WithRand(rng *rand.Rand) Option {
	return func(s *Set) {
		s.rng = rng
	}
}

// WithLogger sets the logger used by the set.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Set) {
		s.logger = logger
	}
}

// NewSet returns an empty marker set for a grid with the given cell size.
func NewSet(cellSize int, opts ...Option) (*Set, error) {
	if err := grid.ValidateCellSize(cellSize); err != nil {
		return nil, err
	}
	s := &Set{
		cell:   float64(cellSize),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.r = raster.NewRasterizer(rect.Rect{})
	return s, nil
}

// CellSize returns the size of the grid cells markers snap to.
func (s *Set) CellSize() int {
	return int(s.cell)
}

// SetCellSize changes the grid cell size.  Existing markers stay where
// they are; the new size applies when markers are added or moved.
func (s *Set) SetCellSize(cellSize int) error {
	if err := grid.ValidateCellSize(cellSize); err != nil {
		return err
	}
	s.cell = float64(cellSize)
	return nil
}

// Snap returns the centre of the grid cell containing p.
//
// The remainder takes the sign of the coordinate, so that points with
// negative coordinates snap to the centre of the next cell towards
// positive infinity.
func (s *Set) Snap(p mapnotes.GeoPoint) mapnotes.GeoPoint {
	return mapnotes.GeoPoint{
		Lat: p.Lat - math.Mod(p.Lat, s.cell) + s.cell/2,
		Lng: p.Lng - math.Mod(p.Lng, s.cell) + s.cell/2,
	}
}

// Add places a new marker in the cell containing p.
func (s *Set) Add(p mapnotes.GeoPoint) *Marker {
	s.count++
	m := &Marker{
		ID:       uuid.NewString(),
		Number:   s.count,
		Position: s.Snap(p),
		Color:    s.randomColor(),
	}
	s.markers = append(s.markers, m)
	s.logger.Debug("marker added", "marker", m.ID, "number", m.Number, "position", m.Position)
	return m
}

// randomColor returns a saturated, light colour.
func (s *Set) randomColor() color.NRGBA {
	c := colorful.Hsv(
		360*s.rng.Float64(),
		0.5+0.5*s.rng.Float64(),
		0.75+0.25*s.rng.Float64(),
	).Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Get returns the marker with the given id, or nil.
func (s *Set) Get(id string) *Marker {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	return s.markers[i]
}

func (s *Set) index(id string) int {
	return slices.IndexFunc(s.markers, func(m *Marker) bool { return m.ID == id })
}

// Remove deletes a marker.  It reports whether the marker existed.
func (s *Set) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.markers = slices.Delete(s.markers, i, i+1)
	s.logger.Debug("marker removed", "marker", id)
	return true
}

// Move places a marker in the cell containing p.
func (s *Set) Move(id string, p mapnotes.GeoPoint) bool {
	m := s.Get(id)
	if m == nil {
		return false
	}
	m.Position = s.Snap(p)
	return true
}

// Len returns the number of markers.
func (s *Set) Len() int {
	return len(s.markers)
}

// Markers returns copies of all markers, oldest first.
func (s *Set) Markers() []Marker {
	res := make([]Marker, len(s.markers))
	for i, m := range s.markers {
		res[i] = *m
	}
	return res
}

// Hit returns the topmost marker whose pin covers the pixel px, or nil.
func (s *Set) Hit(px vec.Vec2, p mapnotes.Projector) *Marker {
	for _, m := range slices.Backward(s.markers) {
		a := p.ProjectToPixel(m.Position)
		if px.X >= a.X-pinSize/2 && px.X <= a.X+pinSize/2 &&
			px.Y >= a.Y-pinSize && px.Y <= a.Y {
			return m
		}
	}
	return nil
}

// OnSurfaceRedraw implements [mapnotes.RedrawHandler].  Pins are drawn in
// order of creation, so newer pins cover older ones.
func (s *Set) OnSurfaceRedraw(dst *image.RGBA, p mapnotes.Projector) {
	b := dst.Bounds()
	clip := rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	}
	face := basicfont.Face7x13
	for _, m := range s.markers {
		a := p.ProjectToPixel(m.Position)
		if a.X < clip.LLx-pinSize || a.X > clip.URx+pinSize ||
			a.Y < clip.LLy || a.Y > clip.URy+pinSize {
			continue
		}
		head := vec.Vec2{X: a.X, Y: a.Y - pinHeadY}

		s.r.Reset(clip)
		s.r.AddCircle(head, pinHeadRadius)
		s.r.AddPolygon([]vec.Vec2{
			{X: a.X - 10, Y: head.Y + 8},
			{X: a.X + 10, Y: head.Y + 8},
			a,
		})
		s.r.Fill(raster.Composite(dst, raster.SourceOver, m.Color))

		s.r.Reset(clip)
		s.r.AddCircle(head, pinInnerRadius)
		s.r.Fill(raster.Composite(dst, raster.SourceOver, innerColor))

		label := strconv.Itoa(m.Number)
		w := font.MeasureString(face, label)
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(textColor),
			Face: face,
			Dot: fixed.Point26_6{
				X: fixed.Int26_6(math.Round(head.X*64)) - w/2,
				Y: fixed.Int26_6(math.Round((head.Y + 4) * 64)),
			},
		}
		d.DrawString(label)
	}
}
