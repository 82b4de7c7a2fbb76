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

// Package raster converts polygons, polylines and discs given in pixel
// coordinates into anti-aliased coverage values and composites them onto
// RGBA images.
//
// Shapes are accumulated with [Rasterizer.AddPolygon],
// [Rasterizer.StrokePolyline] and [Rasterizer.AddCircle] and then filled
// together by a single call to [Rasterizer.Fill].  All pending shapes form
// one compound shape under the nonzero winding rule, so overlapping parts
// (for example a stroke and the discs at its ends) receive coverage only
// once.
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge represents a line segment in pixel coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
}

// Rasterizer converts shapes to pixel coverage values: the fraction of each
// pixel's area covered by the shape, ranging from 0 (outside) to 1 (inside).
// Create one instance and reuse it for many shapes.  Internal buffers grow
// as needed but never shrink.
//
// A Rasterizer is not safe for concurrent use.
type Rasterizer struct {
	// Clip bounds output to this pixel rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Flatness controls arc approximation accuracy in pixels.
	// Typical values: 0.25–1.0. Must be positive.
	Flatness float64

	// Width sets the stroke thickness in pixels.
	Width float64

	// Cap sets the style for polyline endpoints (butt, round, or square).
	Cap graphics.LineCapStyle

	// Join sets the style for polyline corners (miter, round, or bevel).
	Join graphics.LineJoinStyle

	// MiterLimit caps miter join length. Must be at least 1.0.
	MiterLimit float64

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers (Approach A). Shapes with larger bounding boxes use
	// the active edge list (Approach B).
	smallPathThreshold int

	// Internal buffers (reused across calls)
	cover        []float32       // coverage accumulation: cover change per pixel; reused as output
	area         []float32       // coverage accumulation: area within pixel
	edges        []edge          // edge list for the pending shape
	activeIdx    []int           // indices of active edges
	rowHasEdges  []bool          // per-scanline flag: true if any edge contributes
	shape        []vec.Vec2      // polygon vertices of the pending shape, contiguous
	shapeOffsets []int           // start index of each polygon in shape[]
	segs         []strokeSegment // segments of the polyline being stroked

	// Edge collection state (used by collectEdges/addEdge)
	edgeBBoxFirst bool // true if no edges added yet
	edgeXMin      float64
	edgeXMax      float64
	edgeYMin      float64
	edgeYMax      float64
}

// NewRasterizer returns a Rasterizer with the given clip rectangle, a one
// pixel wide stroke with butt caps and miter joins.
func NewRasterizer(clip rect.Rect) *Rasterizer {
	return &Rasterizer{
		Clip:       clip,
		Flatness:   defaultFlatness,
		Width:      1.0,
		Cap:        graphics.LineCapButt,
		Join:       graphics.LineJoinMiter,
		MiterLimit: defaultMiterLimit,

		smallPathThreshold: smallPathThreshold,
	}
}

// Reset discards any pending shape and sets a new clip rectangle.
// Stroke parameters are left unchanged.
func (r *Rasterizer) Reset(clip rect.Rect) {
	r.Clip = clip
	r.shape = r.shape[:0]
	r.shapeOffsets = r.shapeOffsets[:0]
}

// Pending reports whether shapes have been added since the last call to
// Fill or Reset.
func (r *Rasterizer) Pending() bool {
	return len(r.shapeOffsets) > 0
}

// AddPolygon adds a closed polygon to the pending shape.  The polygon is
// implicitly closed and may be given in either orientation.  Polygons with
// fewer than three vertices are ignored.
func (r *Rasterizer) AddPolygon(pts []vec.Vec2) {
	if len(pts) < 3 {
		return
	}
	start := len(r.shape)
	r.shape = append(r.shape, pts...)
	r.orient(start)
	r.shapeOffsets = append(r.shapeOffsets, start)
}

// AddCircle adds a disc to the pending shape.
func (r *Rasterizer) AddCircle(center vec.Vec2, radius float64) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return
	}
	start := len(r.shape)
	r.addArc(center, radius, vec.Vec2{X: 1, Y: 0}, -2*math.Pi, true)
	r.closePolygon(start)
}

// orient reverses the polygon starting at r.shape[start] if needed, so that
// it has the same orientation as the stroke outlines.  Without this, an
// overlap between two oppositely oriented polygons would cancel out under
// the nonzero rule instead of forming a union.
func (r *Rasterizer) orient(start int) {
	poly := r.shape[start:]
	var a float64
	for i := range poly {
		p, q := poly[i], poly[(i+1)%len(poly)]
		a += p.X*q.Y - q.X*p.Y
	}
	if a > 0 {
		slices.Reverse(poly)
	}
}

// closePolygon records the vertices added since start as one polygon, or
// discards them if they cannot enclose any area.
func (r *Rasterizer) closePolygon(start int) {
	if len(r.shape)-start >= 3 {
		r.shapeOffsets = append(r.shapeOffsets, start)
	} else {
		r.shape = r.shape[:start]
	}
}

// Fill fills the pending shape using the nonzero winding rule and clears
// it.  The emit callback receives coverage row-by-row; its slice argument
// is valid only during the call.
func (r *Rasterizer) Fill(emit func(y, xMin int, coverage []float32)) {
	defer func() {
		r.shape = r.shape[:0]
		r.shapeOffsets = r.shapeOffsets[:0]
	}()

	xMin, xMax, yMin, yMax, ok := r.collectEdges()
	if !ok {
		return // empty or degenerate shape
	}

	// Choose approach based on bounding box size
	width := xMax - xMin
	height := yMax - yMin

	if width*height < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, emit)
	}
}

// collectEdges builds the edge list from the pending polygons.
// Returns the bounding box of all edges in pixel coordinates (clamped to clip).
func (r *Rasterizer) collectEdges() (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true

	for i, start := range r.shapeOffsets {
		end := len(r.shape)
		if i+1 < len(r.shapeOffsets) {
			end = r.shapeOffsets[i+1]
		}
		poly := r.shape[start:end]
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}

	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	// Clamp to clip bounds and convert to integers
	clipXMin := int(r.Clip.LLx)
	clipXMax := int(r.Clip.URx)
	clipYMin := int(r.Clip.LLy)
	clipYMax := int(r.Clip.URy)

	xMin = max(int(math.Floor(r.edgeXMin)), clipXMin)
	xMax = min(int(math.Floor(r.edgeXMax))+1, clipXMax)
	yMin = max(int(math.Floor(r.edgeYMin)), clipYMin)
	yMax = min(int(math.Floor(r.edgeYMax))+1, clipYMax)

	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}

	return xMin, xMax, yMin, yMax, true
}

// addEdge adds an edge to the edge list and updates the bounding box.
func (r *Rasterizer) addEdge(p0, p1 vec.Vec2) {
	// Skip horizontal edges
	dy := p1.Y - p0.Y
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	if math.IsNaN(p0.X+p0.Y+p1.X+p1.Y) || math.IsInf(p0.X+p0.Y+p1.X+p1.Y, 0) {
		return
	}

	r.edges = append(r.edges, edge{
		x0: p0.X, y0: p0.Y,
		x1: p1.X, y1: p1.Y,
		dxdy: (p1.X - p0.X) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeXMin = min(p0.X, p1.X)
		r.edgeXMax = max(p0.X, p1.X)
		r.edgeYMin = min(p0.Y, p1.Y)
		r.edgeYMax = max(p0.Y, p1.Y)
		r.edgeBBoxFirst = false
	} else {
		r.edgeXMin = min(r.edgeXMin, p0.X, p1.X)
		r.edgeXMax = max(r.edgeXMax, p0.X, p1.X)
		r.edgeYMin = min(r.edgeYMin, p0.Y, p1.Y)
		r.edgeYMax = max(r.edgeYMax, p0.Y, p1.Y)
	}
}

// Coverage accumulation model:
//
// For each pixel, we track two values:
//   cover: signed vertical extent of edges crossing this pixel column
//   area:  horizontal position weighting (how far right the crossing is)
//
// An edge crossing a pixel contributes:
//   cover = sign * dy   (where sign is +1 for downward, -1 for upward)
//   area  = cover * (1 - xFrac)   (where xFrac is the horizontal position within the pixel)
//
// Final coverage is computed by integrateScanline:
//   pixel_coverage = accumulated_cover + area[i]
//   accumulated_cover += cover[i]   (carry forward for next pixel)
//
// This computes the signed area of the shape within each pixel, which gives
// anti-aliased coverage values when clamped to [0,1].

// accumulateEdge adds a single edge's contribution to the cover and area buffers.
// The buffers are indexed by (x - bboxXMin).  Edges spanning several pixels
// horizontally are split at pixel boundaries.
func (r *Rasterizer) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	// Portion of the edge within the scanline [y, y+1)
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	// +1 for downward edges, -1 for upward ones
	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}

	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	// Entirely left of the bbox: full cover in the first column
	if pixRight < bboxXMin {
		coverVal := sign * float32(yBot-yTop)
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pixLeft >= bboxXMax {
		return
	}

	if pixLeft == pixRight {
		r.accumulateEdgeInColumn(e, yTop, yBot, sign, pixLeft, cover, area, bboxXMin, bboxXMax)
		return
	}

	// The edge spans several pixel columns; find its y-extent within each.
	dydx := 1 / e.dxdy
	for pix := pixLeft; pix <= pixRight; pix++ {
		yAtPixLeft := e.y0 + dydx*(float64(pix)-e.x0)
		yAtPixRight := e.y0 + dydx*(float64(pix+1)-e.x0)

		segYMin := max(min(yAtPixLeft, yAtPixRight), yTop)
		segYMax := min(max(yAtPixLeft, yAtPixRight), yBot)

		segDy := segYMax - segYMin
		if segDy <= 0 {
			continue
		}

		coverVal := sign * float32(segDy)

		yMid := (segYMin + segYMax) / 2
		xMid := e.x0 + e.dxdy*(yMid-e.y0)
		xFrac := xMid - float64(pix)
		areaVal := coverVal * float32(1-xFrac)

		if pix < bboxXMin {
			cover[0] += coverVal
			area[0] += coverVal
		} else if pix < bboxXMax {
			idx := pix - bboxXMin
			cover[idx] += coverVal
			area[idx] += areaVal
		}
	}
}

// accumulateEdgeInColumn handles an edge segment that falls within a single pixel column.
func (r *Rasterizer) accumulateEdgeInColumn(e *edge, yTop, yBot float64, sign float32, pix int, cover, area []float32, bboxXMin, bboxXMax int) {
	coverVal := sign * float32(yBot-yTop)

	if pix < bboxXMin {
		cover[0] += coverVal
		area[0] += coverVal
		return
	}
	if pix >= bboxXMax {
		return
	}

	yMid := (yTop + yBot) / 2
	xMid := e.x0 + e.dxdy*(yMid-e.y0)
	xFrac := xMid - float64(pix)

	idx := pix - bboxXMin
	cover[idx] += coverVal
	area[idx] += coverVal * float32(1-xFrac)
}

// integrateScanline converts accumulated cover/area to final coverage
// values using the nonzero winding rule. The cover slice is modified in place.
func integrateScanline(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]

		// clamp(abs(raw), 0, 1)
		cov := raw
		if raw < 0 {
			cov = -raw
		}
		if cov > 1 {
			cov = 1
		}
		cover[i] = cov
	}
}

// trimZeros returns the non-zero portion of coverage and its starting offset.
// Returns nil, 0 if coverage is entirely zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

// fillSmallPath rasterises using 2D buffers (Approach A).
// xMin, xMax, yMin, yMax define the shape's bounding box (already clamped to clip).
func (r *Rasterizer) fillSmallPath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowHasEdges = slices.Grow(r.rowHasEdges[:0], height)[:height]
	clear(r.rowHasEdges)

	for i := range r.edges {
		e := &r.edges[i]

		edgeYMin := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		edgeYMax := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)

		for y := edgeYMin; y < edgeYMax; y++ {
			row := y - yMin
			rowOffset := row * width
			r.accumulateEdge(e, y, r.cover[rowOffset:rowOffset+width], r.area[rowOffset:rowOffset+width], xMin, xMax)
			r.rowHasEdges[row] = true
		}
	}

	for row := range height {
		if !r.rowHasEdges[row] {
			continue
		}

		rowOffset := row * width
		coverage := r.cover[rowOffset : rowOffset+width]
		integrateScanline(coverage, r.area[rowOffset:rowOffset+width])

		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLargePath rasterises using 1D buffers and an active edge list (Approach B).
// xMin, xMax, yMin, yMax define the shape's bounding box (already clamped to clip).
func (r *Rasterizer) fillLargePath(xMin, xMax, yMin, yMax int, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin

	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	nextEdge := 0

	for y := yMin; y < yMax; y++ {
		yf := float64(y)
		yfNext := float64(y + 1)

		// Activate edges starting before the end of this scanline
		for nextEdge < len(r.edges) {
			e := &r.edges[nextEdge]
			if min(e.y0, e.y1) >= yfNext {
				break
			}
			r.activeIdx = append(r.activeIdx, nextEdge)
			nextEdge++
		}

		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)

		contributed := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]

			if max(e.y0, e.y1) <= yf {
				// Retire the edge (swap with last)
				r.activeIdx[i] = r.activeIdx[len(r.activeIdx)-1]
				r.activeIdx = r.activeIdx[:len(r.activeIdx)-1]
				continue
			}

			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			if min(yfNext, max(e.y0, e.y1)) > max(yf, min(e.y0, e.y1)) {
				contributed = true
			}
			i++
		}

		if !contributed {
			continue
		}

		integrateScanline(r.cover, r.area)

		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

// Default values for rasterizer parameters.
const (
	// defaultFlatness is the default arc flattening tolerance in pixels.
	// 0.25 is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit converts joins to bevels when the interior angle is
	// less than approximately 11.5 degrees.
	defaultMiterLimit = 10.0
)

// Numerical tolerances for the rasterizer.
const (
	// horizontalEdgeThreshold is the minimum vertical extent for an edge
	// to contribute to coverage.
	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the maximum bounding box area (in pixels) for
	// using 2D buffers (Approach A).
	smallPathThreshold = 65536

	// zeroLengthThreshold is the minimum length for a stroke segment.
	// Shorter segments are skipped.
	zeroLengthThreshold = 1e-10

	// collinearityThreshold is used to detect nearly collinear segments
	// where no join is needed.
	collinearityThreshold = 1e-6

	// maxArcSegments bounds the number of vertices used for one arc.
	maxArcSegments = 4096

	// cuspCosineThreshold detects a polyline doubling back on itself.
	// cos(179.19°) ≈ -0.9999
	cuspCosineThreshold = -0.9999
)
