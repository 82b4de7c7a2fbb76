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
	"math"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment represents a line segment of a polyline in pixel coordinates.
type strokeSegment struct {
	A, B vec.Vec2 // endpoints
	T    vec.Vec2 // unit tangent (A→B direction)
	N    vec.Vec2 // unit normal (90° CCW from T)
}

// StrokePolyline adds the outline of the open polyline through pts to the
// pending shape, using Width, Cap, Join and MiterLimit.  No closing segment
// is drawn between the last and the first point.
//
// If all points coincide, the result depends on the cap style: a round cap
// gives a disc, a square cap gives an axis-aligned square and a butt cap
// gives nothing.
func (r *Rasterizer) StrokePolyline(pts []vec.Vec2) {
	if len(pts) == 0 || !(r.Width > 0) || math.IsInf(r.Width, 0) {
		return
	}

	r.segs = r.segs[:0]
	for i := 1; i < len(pts); i++ {
		r.addStrokeSegment(pts[i-1], pts[i])
	}

	start := len(r.shape)
	if len(r.segs) == 0 {
		// degenerate polyline without orientation
		switch r.Cap {
		case graphics.LineCapRound:
			r.addArc(pts[0], r.Width/2, vec.Vec2{X: 1, Y: 0}, -2*math.Pi, true)
		case graphics.LineCapSquare:
			r.addSquare(pts[0], vec.Vec2{X: 1, Y: 0}, r.Width/2)
		}
	} else {
		r.strokeSegments(r.segs)
	}
	r.closePolygon(start)
}

// addStrokeSegment adds a line segment to the segment buffer.
func (r *Rasterizer) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold || math.IsNaN(length) || math.IsInf(length, 0) {
		return
	}
	t := d.Mul(1 / length)         // unit tangent
	n := vec.Vec2{X: -t.Y, Y: t.X} // unit normal (90° CCW)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: n})
}

// strokeSegments builds the outline of an open polyline as one closed
// polygon: start cap, forward pass on the +N side, end cap, then the
// backward pass on the -N side.  Join geometry is added on the outer side
// of each corner, which depends on the turn direction.  On the inner side
// the outline passes through the corner point itself, so that the outline
// decomposes into equally oriented segment bands and join wedges.  Unlike
// intersecting the inner offset lines, this stays correct when segments
// are shorter than the stroke width.
func (r *Rasterizer) strokeSegments(segs []strokeSegment) {
	d := r.Width / 2
	first := &segs[0]
	last := &segs[len(segs)-1]

	r.addCap(first.A, first.T.Mul(-1), d)

	// Forward pass: +N side
	for i := range segs {
		seg := &segs[i]
		r.shape = append(r.shape, seg.A.Add(seg.N.Mul(d)))
		if i == len(segs)-1 {
			r.shape = append(r.shape, seg.B.Add(seg.N.Mul(d)))
			continue
		}
		next := &segs[i+1]
		sinTheta := seg.T.X*next.T.Y - seg.T.Y*next.T.X
		switch {
		case math.Abs(sinTheta) < collinearityThreshold && seg.T.Dot(next.T) > 0:
			r.shape = append(r.shape, seg.B.Add(seg.N.Mul(d)))
		case sinTheta > 0:
			// +N is the inner side
			r.shape = append(r.shape, seg.B.Add(seg.N.Mul(d)), seg.B)
		default:
			// +N is the outer side
			r.shape = append(r.shape, seg.B.Add(seg.N.Mul(d)))
			r.addJoin(seg.B, seg.T, next.T, d, true)
		}
	}

	r.addCap(last.B, last.T, d)

	// Backward pass: -N side
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		r.shape = append(r.shape, seg.B.Sub(seg.N.Mul(d)))
		if i == 0 {
			r.shape = append(r.shape, seg.A.Sub(seg.N.Mul(d)))
			continue
		}
		prev := &segs[i-1]
		sinTheta := prev.T.X*seg.T.Y - prev.T.Y*seg.T.X
		switch {
		case math.Abs(sinTheta) < collinearityThreshold && prev.T.Dot(seg.T) > 0:
			r.shape = append(r.shape, seg.A.Sub(seg.N.Mul(d)))
		case sinTheta > 0:
			// -N is the outer side
			r.shape = append(r.shape, seg.A.Sub(seg.N.Mul(d)))
			r.addJoin(seg.A, prev.T, seg.T, d, false)
		default:
			// -N is the inner side
			r.shape = append(r.shape, seg.A.Sub(seg.N.Mul(d)), seg.A)
		}
	}
}

// addCap adds a line cap to the outline at point P.
// T is the outward tangent direction (away from the line).
// d is half the stroke width.
func (r *Rasterizer) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}

	switch r.Cap {
	case graphics.LineCapButt:
		// the caller connects the two offset points

	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.shape = append(r.shape, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))

	case graphics.LineCapRound:
		// semicircle from N through T to -N
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// addJoin adds a line join at point P where the tangent changes from T1 to T2.
// d is half the stroke width; positiveSide tells which side of the
// outline is being built.
func (r *Rasterizer) addJoin(P, T1, T2 vec.Vec2, d float64, positiveSide bool) {
	cosTheta := T1.Dot(T2)
	sinTheta := T1.X*T2.Y - T1.Y*T2.X

	// A cusp (the polyline doubling back on itself) gets a half circle for
	// round joins and a cap otherwise.
	if cosTheta < cuspCosineThreshold {
		if r.Join == graphics.LineJoinRound {
			start := vec.Vec2{X: -T1.Y, Y: T1.X}
			if !positiveSide {
				start = vec.Vec2{X: T2.Y, Y: -T2.X}
			}
			r.addArc(P, d, start, -math.Pi, false)
			return
		}
		if positiveSide {
			r.addCap(P, T1, d)
		} else {
			r.addCap(P, T2.Mul(-1), d)
		}
		return
	}

	if sinTheta > -collinearityThreshold && sinTheta < collinearityThreshold {
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		// miter length = 1 / sin(φ/2), with sin(φ/2) = cos(θ/2)
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		const miterEpsilon = 1e-10
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+miterEpsilon {
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			N2 := vec.Vec2{X: -T2.Y, Y: T2.X}
			bisector := N1.Add(N2)
			if !positiveSide {
				bisector = bisector.Mul(-1)
			}
			if l := bisector.Length(); l > zeroLengthThreshold {
				r.shape = append(r.shape, P.Add(bisector.Mul(d/(sinHalf*l))))
			}
			return
		}
		fallthrough

	case graphics.LineJoinBevel:
		// the two offset lines meet directly
		return

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if positiveSide {
			// arc from +N of T1 to +N of T2
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			if sinTheta > 0 {
				r.addArc(P, d, N1, angle, false)
			} else {
				r.addArc(P, d, N1, -angle, false)
			}
		} else {
			// arc from -N of T2 back to -N of T1
			N2 := vec.Vec2{X: T2.Y, Y: -T2.X}
			if sinTheta > 0 {
				r.addArc(P, d, N2, -angle, false)
			} else {
				r.addArc(P, d, N2, angle, false)
			}
		}
	}
}

// addArc adds arc vertices to the outline.
// startDir is the unit vector from center to arc start, sweep is the sweep
// angle in radians (positive = CCW).  includeStart tells whether the start
// point still needs to be added.
func (r *Rasterizer) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	rotate := func(angle float64) vec.Vec2 {
		cos, sin := math.Cos(angle), math.Sin(angle)
		return vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
	}

	// A chord subtending angle θ deviates from the circle by r·(1 - cos(θ/2)).
	// Setting this equal to the flatness gives θ = 2·acos(1 - ε/r).
	n := 4
	if radius > r.Flatness {
		angleStep := 2 * math.Acos(1-r.Flatness/radius)
		if angleStep > 0 && !math.IsNaN(angleStep) {
			n = int(math.Ceil(math.Abs(sweep) / angleStep))
		}
	} else {
		// tiny arcs still need some width in the sweep direction
		n = int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	}
	n = min(max(n, 1), maxArcSegments)

	dt := sweep / float64(n)
	startI := 0
	if !includeStart {
		startI = 1
	}
	for i := startI; i <= n; i++ {
		r.shape = append(r.shape, center.Add(rotate(float64(i)*dt).Mul(radius)))
	}
}

// addSquare adds the corners of a square centred at center with half side
// length d, oriented by the tangent T.
func (r *Rasterizer) addSquare(center vec.Vec2, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}
	r.shape = append(r.shape,
		center.Add(T.Mul(d)).Add(N.Mul(d)),
		center.Add(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Sub(N.Mul(d)),
		center.Sub(T.Mul(d)).Add(N.Mul(d)),
	)
}
