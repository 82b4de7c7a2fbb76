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

package raster

import (
	"fmt"
	"image"
	"image/color"
)

// CompositeOp selects how coverage is combined with the destination pixels.
type CompositeOp int

const (
	// SourceOver paints the source colour over the existing pixels.
	SourceOver CompositeOp = iota

	// DestinationOut removes existing pixels where the source is opaque.
	// The source colour is ignored, only its alpha matters.
	DestinationOut
)

func (op CompositeOp) String() string {
	switch op {
	case SourceOver:
		return "source-over"
	case DestinationOut:
		return "destination-out"
	default:
		return fmt.Sprintf("CompositeOp(%d)", int(op))
	}
}

// Composite returns an emit callback for [Rasterizer.Fill] which blends
// the colour c, scaled by the coverage, into dst using the operator op.
// Pixels outside dst.Rect are left alone.
func Composite(dst *image.RGBA, op CompositeOp, c color.Color) func(y, xMin int, coverage []float32) {
	src := color.NRGBAModel.Convert(c).(color.NRGBA)
	srcA := float32(src.A) / 255
	sr, sg, sb := float32(src.R), float32(src.G), float32(src.B)

	return func(y, xMin int, coverage []float32) {
		if y < dst.Rect.Min.Y || y >= dst.Rect.Max.Y {
			return
		}
		for i, cov := range coverage {
			x := xMin + i
			if x < dst.Rect.Min.X || x >= dst.Rect.Max.X {
				continue
			}
			a := cov * srcA
			if a <= 0 {
				continue
			}
			pix := dst.Pix[dst.PixOffset(x, y):]
			switch op {
			case SourceOver:
				// dst is premultiplied, the source colour is not
				keep := 1 - a
				pix[0] = to8(sr*a + float32(pix[0])*keep)
				pix[1] = to8(sg*a + float32(pix[1])*keep)
				pix[2] = to8(sb*a + float32(pix[2])*keep)
				pix[3] = to8(255*a + float32(pix[3])*keep)
			case DestinationOut:
				keep := 1 - a
				pix[0] = to8(float32(pix[0]) * keep)
				pix[1] = to8(float32(pix[1]) * keep)
				pix[2] = to8(float32(pix[2]) * keep)
				pix[3] = to8(float32(pix[3]) * keep)
			}
		}
	}
}

// to8 rounds a channel value to the nearest byte.
func to8(v float32) uint8 {
	v += 0.5
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
