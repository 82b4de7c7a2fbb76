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

package testcases

import "seehuhn.de/go/mapnotes"

// unitView maps lat 0..100, lng 0..100 onto a 100×100 surface.
var unitView = View{West: 0, North: 100, Scale: 1}

var inkCases = []Scenario{
	{
		Name:   "horizontal_line",
		Width:  100,
		Height: 100,
		View:   unitView,
		Steps: []Step{
			Enable{},
			Drag{pt(50, 10), pt(50, 30), pt(50, 60), pt(50, 90)},
		},
		Probes: []Probe{
			{X: 50, Y: 50, Want: Opaque},
			{X: 50, Y: 49, Want: Opaque},
			{X: 50, Y: 20, Want: Transparent},
			{X: 5, Y: 50, Want: Transparent},
			{X: 95, Y: 50, Want: Transparent},
		},
	},
	{
		Name:   "single_click_dot",
		Width:  100,
		Height: 100,
		View:   unitView,
		Steps: []Step{
			Enable{},
			Settings{LineWidth: ptr(10.0)},
			Drag{pt(50, 50)},
		},
		Probes: []Probe{
			{X: 50, Y: 50, Want: Opaque},
			{X: 47, Y: 47, Want: Opaque},
			{X: 50, Y: 60, Want: Transparent},
			{X: 60, Y: 50, Want: Transparent},
		},
	},
	{
		Name:   "zigzag",
		Width:  100,
		Height: 100,
		View:   unitView,
		Steps: []Step{
			Enable{},
			Settings{LineWidth: ptr(6.0), StrokeStyle: ptr("#2060c0")},
			Drag{pt(80, 10), pt(20, 30), pt(80, 50), pt(20, 70), pt(80, 90)},
		},
		Probes: []Probe{
			{X: 30, Y: 80, Want: Opaque}, // corner
			{X: 50, Y: 20, Want: Opaque}, // corner
			{X: 50, Y: 80, Want: Transparent},
			{X: 30, Y: 20, Want: Transparent},
		},
	},
	{
		// doubling back leaves a rounded tip at the turning point
		Name:   "reversal",
		Width:  100,
		Height: 100,
		View:   unitView,
		Steps: []Step{
			Enable{},
			Settings{LineWidth: ptr(10.0)},
			Drag{pt(50, 20), pt(50, 60), pt(50, 20)},
		},
		Probes: []Probe{
			{X: 58, Y: 50, Want: Opaque},
			{X: 63, Y: 50, Want: Opaque},
			{X: 66, Y: 50, Want: Transparent},
			{X: 63, Y: 55, Want: Transparent},
		},
	},
	{
		// only motion between press and release is recorded
		Name:   "hover_is_ignored",
		Width:  100,
		Height: 100,
		View:   unitView,
		Steps: []Step{
			Enable{},
			Move{pt(20, 10)},
			Move{pt(20, 90)},
			Press{pt(50, 10)},
			Move{pt(50, 10)},
			Move{pt(50, 50)},
			Release{pt(50, 50)},
			Move{pt(50, 90)},
		},
		Probes: []Probe{
			{X: 30, Y: 50, Want: Opaque},
			{X: 70, Y: 50, Want: Transparent},
			{X: 50, Y: 80, Want: Transparent},
		},
	},
	{
		Name:   "idle_pointer_draws_nothing",
		Width:  100,
		Height: 100,
		View:   unitView,
		Steps: []Step{
			Drag{pt(50, 10), pt(50, 90)},
		},
		Probes: []Probe{
			{X: 50, Y: 50, Want: Transparent},
		},
	},
	{
		Name:   "cleared",
		Width:  100,
		Height: 100,
		View:   unitView,
		Steps: []Step{
			Enable{},
			Drag{pt(20, 10), pt(20, 90)},
			Drag{pt(50, 10), pt(50, 90)},
			Drag{pt(80, 10), pt(80, 90)},
			Clear{},
		},
		Probes: []Probe{
			{X: 50, Y: 20, Want: Transparent},
			{X: 50, Y: 50, Want: Transparent},
			{X: 50, Y: 80, Want: Transparent},
		},
	},
}

var eraseCases = []Scenario{
	{
		Name:   "erase_after_draw",
		Width:  100,
		Height: 100,
		View:   unitView,
		Steps: []Step{
			Enable{},
			Settings{LineWidth: ptr(10.0)},
			Drag{pt(50, 10), pt(50, 90)},
			Erase(true),
			Drag{pt(80, 50), pt(20, 50)},
		},
		Probes: []Probe{
			{X: 50, Y: 50, Want: Transparent}, // overlap
			{X: 20, Y: 50, Want: Opaque},
			{X: 80, Y: 50, Want: Opaque},
			{X: 50, Y: 30, Want: Transparent},
		},
	},
	{
		Name:   "draw_after_erase",
		Width:  100,
		Height: 100,
		View:   unitView,
		Steps: []Step{
			Enable{},
			Settings{LineWidth: ptr(10.0)},
			Erase(true),
			Drag{pt(80, 50), pt(20, 50)},
			Erase(false),
			Drag{pt(50, 10), pt(50, 90)},
		},
		Probes: []Probe{
			{X: 50, Y: 50, Want: Opaque}, // overlap
			{X: 50, Y: 30, Want: Transparent},
		},
	},
	{
		Name:   "erase_then_redraw",
		Width:  100,
		Height: 100,
		View:   unitView,
		Steps: []Step{
			Enable{},
			Settings{LineWidth: ptr(10.0)},
			Drag{pt(50, 10), pt(50, 90)},
			Erase(true),
			Drag{pt(50, 40), pt(50, 60)},
			Erase(false),
			Settings{StrokeStyle: ptr("#c00000")},
			Drag{pt(50, 48), pt(50, 52)},
		},
		Probes: []Probe{
			{X: 20, Y: 50, Want: Opaque},
			{X: 42, Y: 50, Want: Transparent},
			{X: 50, Y: 50, Want: Opaque},
		},
	},
}

var styleCases = []Scenario{
	{
		// the width change applies to the stroke being drawn, not to the
		// finished one above it
		Name:   "width_change_while_drawing",
		Width:  100,
		Height: 100,
		View:   unitView,
		Steps: []Step{
			Enable{},
			Drag{pt(80, 10), pt(80, 90)},
			Press{pt(30, 10)},
			Move{pt(30, 10)},
			Move{pt(30, 90)},
			Settings{LineWidth: ptr(10.0)},
		},
		Probes: []Probe{
			{X: 50, Y: 70, Want: Opaque},
			{X: 50, Y: 66, Want: Opaque},
			{X: 50, Y: 74, Want: Opaque},
			{X: 50, Y: 20, Want: Opaque},
			{X: 50, Y: 23, Want: Transparent},
		},
	},
}

var zoomCases = []Scenario{
	{
		// 4 map units at 2 pixels per unit give an 8 pixel line
		Name:   "scaled_width",
		Width:  100,
		Height: 100,
		View:   View{West: 0, North: 50, Scale: 2},
		Steps: []Step{
			Enable{},
			Settings{LineWidth: ptr(4.0)},
			Drag{pt(25, 5), pt(25, 45)},
		},
		Probes: []Probe{
			{X: 50, Y: 46, Want: Opaque},
			{X: 50, Y: 53, Want: Opaque},
			{X: 50, Y: 45, Want: Transparent},
			{X: 50, Y: 54, Want: Transparent},
		},
	},
	{
		Name:   "scaled_down",
		Width:  100,
		Height: 100,
		View:   View{West: 0, North: 400, Scale: 0.25},
		Steps: []Step{
			Enable{},
			Settings{LineWidth: ptr(16.0)},
			Drag{pt(200, 40), pt(200, 360)},
		},
		Probes: []Probe{
			{X: 50, Y: 48, Want: Opaque},
			{X: 50, Y: 51, Want: Opaque},
			{X: 50, Y: 47, Want: Transparent},
			{X: 50, Y: 52, Want: Transparent},
		},
	},
}
