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

// Package testcases defines annotation scenarios: sequences of user
// actions on a paint layer together with pixels whose appearance is known
// after the actions have been replayed.
package testcases

import (
	"fmt"
	"image"

	"seehuhn.de/go/mapnotes"
)

// Scenario defines a single annotation test.
type Scenario struct {
	Name   string // lowercase a-z and _ only
	Width  int    // surface width in pixels
	Height int    // surface height in pixels
	View   View   // mapping from map coordinates to pixels
	Steps  []Step // actions replayed on a fresh layer
	Probes []Probe
}

// View is a flat map view: pixel = ((lng-West)·Scale, (North-lat)·Scale).
type View struct {
	West, North float64
	Scale       float64 // pixels per map unit
}

// ProjectToPixel implements mapnotes.Projector.
func (v View) ProjectToPixel(p mapnotes.GeoPoint) mapnotes.PixelPoint {
	return mapnotes.PixelPoint{
		X: (p.Lng - v.West) * v.Scale,
		Y: (v.North - p.Lat) * v.Scale,
	}
}

// ZoomScale implements mapnotes.Projector.
func (v View) ZoomScale() float64 {
	return v.Scale
}

// Step is one user action.
type Step interface {
	Apply(l *mapnotes.PaintLayer) error
}

// Enable switches the layer into drawing mode.
type Enable struct{}

func (Enable) Apply(l *mapnotes.PaintLayer) error { l.Enable(); return nil }

// Disable switches the layer out of drawing mode.
type Disable struct{}

func (Disable) Apply(l *mapnotes.PaintLayer) error { l.Disable(); return nil }

// Erase toggles erase mode.
type Erase bool

func (e Erase) Apply(l *mapnotes.PaintLayer) error {
	if e {
		l.EnableErase()
	} else {
		l.DisableErase()
	}
	return nil
}

// Settings applies a partial style update.
type Settings mapnotes.Settings

func (s Settings) Apply(l *mapnotes.PaintLayer) error {
	return l.ApplySettings(mapnotes.Settings(s))
}

// Clear removes all ink.
type Clear struct{}

func (Clear) Apply(l *mapnotes.PaintLayer) error { l.Clear(); return nil }

// Drag presses the pointer at the first point, moves it through all
// points and releases it at the last one.  Moves are delivered for every
// point, including the first.
type Drag []mapnotes.GeoPoint

func (d Drag) Apply(l *mapnotes.PaintLayer) error {
	if len(d) == 0 {
		return fmt.Errorf("empty drag")
	}
	l.PointerDown(d[0])
	for _, p := range d {
		l.PointerMove(p)
	}
	l.PointerUp(d[len(d)-1])
	return nil
}

// Press presses the pointer without moving it.
type Press mapnotes.GeoPoint

func (p Press) Apply(l *mapnotes.PaintLayer) error {
	l.PointerDown(mapnotes.GeoPoint(p))
	return nil
}

// Move moves the pointer.
type Move mapnotes.GeoPoint

func (m Move) Apply(l *mapnotes.PaintLayer) error {
	l.PointerMove(mapnotes.GeoPoint(m))
	return nil
}

// Release releases the pointer.
type Release mapnotes.GeoPoint

func (r Release) Apply(l *mapnotes.PaintLayer) error {
	l.PointerUp(mapnotes.GeoPoint(r))
	return nil
}

// Coverage classifies the alpha value of a rendered pixel.
type Coverage int

const (
	Transparent Coverage = iota // alpha == 0
	Partial                     // 0 < alpha < 255
	Opaque                      // alpha == 255
)

func (c Coverage) String() string {
	switch c {
	case Transparent:
		return "transparent"
	case Partial:
		return "partial"
	case Opaque:
		return "opaque"
	default:
		return fmt.Sprintf("Coverage(%d)", int(c))
	}
}

// Classify returns the coverage class of an alpha value.
func Classify(alpha uint8) Coverage {
	switch alpha {
	case 0:
		return Transparent
	case 255:
		return Opaque
	default:
		return Partial
	}
}

// Probe is a pixel with known appearance after a scenario.
type Probe struct {
	X, Y int
	Want Coverage
}

// Run replays the scenario on a new layer, renders it and returns the
// layer together with the rendered surface.
func (s Scenario) Run(opts ...mapnotes.Option) (*mapnotes.PaintLayer, *image.RGBA, error) {
	l := mapnotes.NewPaintLayer(opts...)
	for i, step := range s.Steps {
		if err := step.Apply(l); err != nil {
			return nil, nil, fmt.Errorf("%s: step %d: %w", s.Name, i, err)
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	l.OnSurfaceRedraw(dst, s.View)
	return l, dst, nil
}

// pt is a helper to create a GeoPoint from lat, lng coordinates.
func pt(lat, lng float64) mapnotes.GeoPoint {
	return mapnotes.GeoPoint{Lat: lat, Lng: lng}
}

func ptr[T any](v T) *T {
	return &v
}
