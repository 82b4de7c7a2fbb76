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

// Package grid draws square reference grids which are laid over a map as
// an image overlay.  Every cell is labelled "cx,cy" with its column and
// row, counted from the top left.
package grid

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mapnotes"
	"seehuhn.de/go/mapnotes/raster"
)

// Allowed cell sizes, in pixels.
const (
	MinCellSize     = 5
	MaxCellSize     = 1000
	DefaultCellSize = 100
)

// ErrInvalidCellSize is returned for cell sizes outside
// [MinCellSize, MaxCellSize].
var ErrInvalidCellSize = errors.New("invalid cell size")

// label position relative to the top left corner of a cell
const (
	labelDX = 4
	labelDY = 16
)

// Options controls the appearance of a grid.
type Options struct {
	CellSize  int
	LineWidth float64     // 2 if zero
	Color     color.Color // black if nil
	Face      font.Face   // basicfont.Face7x13 if nil
}

// ValidateCellSize checks that cell is an allowed cell size.
func ValidateCellSize(cell int) error {
	if cell < MinCellSize || cell > MaxCellSize {
		return fmt.Errorf("%w: %d not in [%d, %d]",
			ErrInvalidCellSize, cell, MinCellSize, MaxCellSize)
	}
	return nil
}

// DefaultBounds returns the area covered by a grid of 20×20 cells with
// its lower left corner at the origin.
func DefaultBounds(cell int) mapnotes.GeoBounds {
	n := float64(20 * cell)
	return mapnotes.GeoBounds{
		NorthEast: mapnotes.GeoPoint{Lat: n, Lng: n},
	}
}

// Render draws a grid onto a transparent image of the given size.  Lines
// are drawn at every multiple of the cell size, including both borders.
func Render(width, height int, opts Options) (*image.RGBA, error) {
	if err := ValidateCellSize(opts.CellSize); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", width, height)
	}
	lw := opts.LineWidth
	if lw == 0 {
		lw = 2
	}
	col := opts.Color
	if col == nil {
		col = color.Black
	}
	face := opts.Face
	if face == nil {
		face = basicfont.Face7x13
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	cell := opts.CellSize
	w, h := float64(width), float64(height)
	d := lw / 2

	r := raster.NewRasterizer(rect.Rect{URx: w, URy: h})
	for x := 0; x <= width; x += cell {
		fx := float64(x)
		r.AddPolygon(box(fx-d, 0, fx+d, h))
	}
	for y := 0; y <= height; y += cell {
		fy := float64(y)
		r.AddPolygon(box(0, fy-d, w, fy+d))
	}
	r.Fill(raster.Composite(img, raster.SourceOver, col))

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	for cx, x := 0, 0; x < width; cx, x = cx+1, x+cell {
		for cy, y := 0, 0; y < height; cy, y = cy+1, y+cell {
			drawer.Dot = fixed.P(x+labelDX, y+labelDY)
			drawer.DrawString(Label(cx, cy))
		}
	}
	return img, nil
}

// Label returns the name of the cell in column cx and row cy.
func Label(cx, cy int) string {
	return strconv.Itoa(cx) + "," + strconv.Itoa(cy)
}

func box(x0, y0, x1, y1 float64) []vec.Vec2 {
	return []vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}
