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
	"math"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// scribble returns a freehand-like polyline with n points filling a
// size×size canvas.
func scribble(n int, size float64) []vec.Vec2 {
	pts := make([]vec.Vec2, n)
	for i := range pts {
		phi := float64(i) * 0.05
		pts[i] = vec.Vec2{
			X: size/2 + size*0.4*math.Cos(phi)*math.Cos(0.13*phi),
			Y: size/2 + size*0.4*math.Sin(phi)*math.Cos(0.11*phi),
		}
	}
	return pts
}

// BenchmarkStrokeScribble measures stroking and compositing a long
// freehand polyline, as done for every stroke on every redraw.
func BenchmarkStrokeScribble(b *testing.B) {
	sizes := []int{200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)
			r.Width = 10
			r.Cap = graphics.LineCapRound
			r.Join = graphics.LineJoinRound

			dst := image.NewRGBA(image.Rect(0, 0, size, size))
			emit := Composite(dst, SourceOver, color.NRGBA{R: 200, A: 255})
			pts := scribble(1000, float64(size))

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(clip)
				r.StrokePolyline(pts)
				r.Fill(emit)
			}
		})
	}
}

// BenchmarkRasterizerDisc benchmarks our rasterizer drawing a disc.
func BenchmarkRasterizerDisc(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(size), URy: float64(size)}
			r := NewRasterizer(clip)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			center := vec.Vec2{X: float64(size) / 2, Y: float64(size) / 2}
			radius := float64(size) * 0.45

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(clip)
				r.AddCircle(center, radius)
				r.Fill(func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorDisc benchmarks x/image/vector drawing a disc.
func BenchmarkVectorDisc(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			center := float32(size) / 2
			radius := float32(size) * 0.45

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(size, size)
				addCircleToVector(r, center, center, radius)
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// addCircleToVector adds a circle to a vector.Rasterizer using cubic Bézier curves.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32) {
	const k = float32(0.5522847498)
	kr := k * radius

	r.MoveTo(cx, cy-radius)
	r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
	r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
	r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
	r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	r.ClosePath()
}
