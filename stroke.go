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
	"slices"

	"github.com/google/uuid"
)

// Style describes how a stroke is painted.
type Style struct {
	// LineWidth is the stroke width in map units.  On screen it scales
	// with the zoom level.
	LineWidth float64

	// StrokeStyle is a CSS hex colour such as "#ff8800" or "#f80".
	StrokeStyle string

	// Erase makes the stroke remove earlier ink instead of painting.
	Erase bool
}

// Stroke is one freehand line: a style snapshot and the points visited by
// the pointer while the button was held down.
type Stroke struct {
	ID string
	Style
	Path []GeoPoint
}

// Empty reports whether the stroke has no points.
func (s *Stroke) Empty() bool {
	return len(s.Path) == 0
}

// Store holds the ordered stroke history of a layer.  Sealed strokes are
// kept oldest first; the active stroke receives new points and is always
// rendered last.  A Store is never without an active stroke.
type Store struct {
	sealed []*Stroke
	active *Stroke
}

// NewStore returns a store with a single empty active stroke.
func NewStore(style Style) *Store {
	s := &Store{}
	s.active = s.CreateStroke(style)
	return s
}

// CreateStroke returns a new stroke with an empty path.  The style is
// copied, so later changes to the caller's value do not affect the stroke.
// The stroke is not added to the store.
func (s *Store) CreateStroke(style Style) *Stroke {
	return &Stroke{
		ID:    uuid.NewString(),
		Style: style,
	}
}

// AppendPoint adds p to the end of the active stroke.
func (s *Store) AppendPoint(p GeoPoint) {
	s.active.Path = append(s.active.Path, p)
}

// SealActiveIfNonEmpty moves a non-empty active stroke to the history and
// installs a new empty active stroke with the given style.  It reports
// whether a stroke was sealed.  An empty active stroke is left in place,
// so repeated calls are harmless.
func (s *Store) SealActiveIfNonEmpty(style Style) (*Stroke, bool) {
	if s.active.Empty() {
		return nil, false
	}
	sealed := s.active
	s.sealed = append(s.sealed, sealed)
	s.active = s.CreateStroke(style)
	return sealed, true
}

// Clear drops all strokes and installs a new empty active stroke.
func (s *Store) Clear(style Style) {
	clear(s.sealed)
	s.sealed = s.sealed[:0]
	s.active = s.CreateStroke(style)
}

// Active returns the stroke currently receiving points.
func (s *Store) Active() *Stroke {
	return s.active
}

// Sealed returns the finished strokes, oldest first.
// The returned slice must not be modified.
func (s *Store) Sealed() []*Stroke {
	return s.sealed
}

// Strokes returns all strokes in render order: the sealed strokes, oldest
// first, followed by the active stroke.
func (s *Store) Strokes() []*Stroke {
	res := slices.Clip(s.sealed)
	return append(res, s.active)
}

// Len returns the number of strokes including the active one.
func (s *Store) Len() int {
	return len(s.sealed) + 1
}
