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
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/mapnotes/raster"
)

// Renderer paints strokes onto a surface.  Strokes are drawn in order, so
// that an erasing stroke removes the ink of all strokes before it but not
// the ink of later ones.
//
// A Renderer reuses its buffers between calls and is not safe for
// concurrent use.
type Renderer struct {
	r      *raster.Rasterizer
	pts    []vec.Vec2
	colors map[string]color.NRGBA
	logger *slog.Logger
}

// NewRenderer returns a Renderer which reports skipped strokes to logger.
// A nil logger discards all messages.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := raster.NewRasterizer(rect.Rect{})
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinRound
	return &Renderer{
		r:      r,
		colors: make(map[string]color.NRGBA),
		logger: logger,
	}
}

// PixelWidth returns the on-screen width of s under projector p.
func PixelWidth(s *Stroke, p Projector) float64 {
	return s.LineWidth * p.ZoomScale()
}

// Render clears dst to transparent and paints all strokes onto it.
//
// Empty strokes are skipped.  A stroke with an unusable width or colour is
// skipped as a whole and logged; the remaining strokes are still drawn.
func (rd *Renderer) Render(dst *image.RGBA, p Projector, strokes []*Stroke) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.Transparent, image.Point{}, draw.Src)

	clip := rect.Rect{
		LLx: float64(b.Min.X),
		LLy: float64(b.Min.Y),
		URx: float64(b.Max.X),
		URy: float64(b.Max.Y),
	}

	for _, s := range strokes {
		if s.Empty() {
			continue
		}
		c, width, err := rd.prepare(s, p)
		if err != nil {
			rd.logger.Warn("skipping stroke", "stroke", s.ID, "error", err)
			continue
		}

		op := raster.SourceOver
		if s.Erase {
			op = raster.DestinationOut
		}

		rd.pts = rd.pts[:0]
		for _, gp := range s.Path {
			rd.pts = append(rd.pts, p.ProjectToPixel(gp))
		}

		rd.r.Reset(clip)
		rd.r.Width = width
		rd.r.StrokePolyline(rd.pts)
		// Round dots at both ends.  They are part of the same fill as the
		// stroke, so the overlap is not painted twice.
		rd.r.AddCircle(rd.pts[0], width/2)
		rd.r.AddCircle(rd.pts[len(rd.pts)-1], width/2)
		rd.r.Fill(raster.Composite(dst, op, c))
	}
}

// prepare validates the stroke's style and returns its colour and pixel
// width.
func (rd *Renderer) prepare(s *Stroke, p Projector) (color.NRGBA, float64, error) {
	width := PixelWidth(s, p)
	if math.IsNaN(width) || math.IsInf(width, 0) || width <= 0 {
		return color.NRGBA{}, 0, fmt.Errorf("invalid pixel width %g", width)
	}

	c, ok := rd.colors[s.StrokeStyle]
	if !ok {
		var err error
		c, err = ParseColor(s.StrokeStyle)
		if err != nil {
			return color.NRGBA{}, 0, err
		}
		rd.colors[s.StrokeStyle] = c
	}
	return c, width, nil
}
