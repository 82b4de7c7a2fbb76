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
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidSettings is returned when a settings update is rejected.
var ErrInvalidSettings = errors.New("invalid settings")

// DefaultStyle is the style of a freshly created layer.
var DefaultStyle = Style{
	LineWidth:   4,
	StrokeStyle: "#000000",
}

// Settings is a partial style update.  Nil fields are left unchanged.
type Settings struct {
	LineWidth   *float64
	StrokeStyle *string
	Erase       *bool
}

// ParseColor converts a CSS hex colour ("#rgb" or "#rrggbb") into an
// opaque colour.
func ParseColor(s string) (color.NRGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Validate checks a style for values which cannot be rendered.
func (s Style) Validate() error {
	if math.IsNaN(s.LineWidth) || math.IsInf(s.LineWidth, 0) || s.LineWidth <= 0 {
		return fmt.Errorf("line width %g must be positive and finite", s.LineWidth)
	}
	if _, err := ParseColor(s.StrokeStyle); err != nil {
		return err
	}
	return nil
}

// StyleController holds the default style used for new strokes.  Style
// changes also apply to the active stroke, so that adjusting the width or
// colour while drawing affects the line being drawn.  Sealed strokes keep
// the style they were drawn with.
type StyleController struct {
	defaults Style
	store    *Store
}

// NewStyleController returns a controller which updates the active stroke
// of store.
func NewStyleController(store *Store, defaults Style) *StyleController {
	return &StyleController{defaults: defaults, store: store}
}

// Defaults returns the style used for the next stroke.
func (c *StyleController) Defaults() Style {
	return c.defaults
}

// ApplySettings merges the non-nil fields of s into the defaults and into
// the active stroke.  If the result would be invalid, nothing is changed
// and the returned error wraps ErrInvalidSettings.
func (c *StyleController) ApplySettings(s Settings) error {
	next := c.defaults
	if s.LineWidth != nil {
		next.LineWidth = *s.LineWidth
	}
	if s.StrokeStyle != nil {
		next.StrokeStyle = *s.StrokeStyle
	}
	if s.Erase != nil {
		next.Erase = *s.Erase
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	c.defaults = next
	active := c.store.Active()
	if s.LineWidth != nil {
		active.LineWidth = next.LineWidth
	}
	if s.StrokeStyle != nil {
		active.StrokeStyle = next.StrokeStyle
	}
	if s.Erase != nil {
		active.Erase = next.Erase
	}
	return nil
}

// EnableErase makes new strokes, and the active one, erase.
func (c *StyleController) EnableErase() {
	c.setErase(true)
}

// DisableErase makes new strokes, and the active one, paint.
func (c *StyleController) DisableErase() {
	c.setErase(false)
}

func (c *StyleController) setErase(erase bool) {
	c.defaults.Erase = erase
	c.store.Active().Erase = erase
}
