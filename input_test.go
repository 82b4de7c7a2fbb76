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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouterIdleIgnoresEvents(t *testing.T) {
	var r Router
	assert.Equal(t, ModeIdle, r.Mode())

	assert.Equal(t, ActionNone, r.Down())
	assert.False(t, r.Pressed())
	assert.Equal(t, ActionNone, r.Move())
	assert.Equal(t, ActionNone, r.Up())
}

func TestRouterTransitions(t *testing.T) {
	type event int
	const (
		down event = iota
		move
		up
		draw
		idle
	)
	cases := []struct {
		name    string
		events  []event
		want    []RouterAction
		pressed bool
	}{
		{
			name:    "stroke",
			events:  []event{draw, down, move, move, up},
			want:    []RouterAction{ActionPress, ActionAppend, ActionAppend, ActionSeal},
			pressed: false,
		},
		{
			name:   "hover",
			events: []event{draw, move, move},
			want:   []RouterAction{ActionNone, ActionNone},
		},
		{
			name:    "disable_mid_stroke",
			events:  []event{draw, down, move, idle, move, up},
			want:    []RouterAction{ActionPress, ActionAppend, ActionNone, ActionNone},
			pressed: true,
		},
		{
			name:   "resume_after_reenable",
			events: []event{draw, down, idle, draw, move, up},
			want:   []RouterAction{ActionPress, ActionAppend, ActionSeal},
		},
		{
			name:   "press_while_idle",
			events: []event{down, draw, move, up, move},
			want:   []RouterAction{ActionNone, ActionNone, ActionSeal, ActionNone},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r Router
			var got []RouterAction
			for _, e := range tc.events {
				switch e {
				case down:
					got = append(got, r.Down())
				case move:
					got = append(got, r.Move())
				case up:
					got = append(got, r.Up())
				case draw:
					r.SetMode(ModeDrawing)
				case idle:
					r.SetMode(ModeIdle)
				}
			}
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.pressed, r.Pressed())
		})
	}
}

func TestRouterSetMode(t *testing.T) {
	var r Router
	assert.False(t, r.SetMode(ModeIdle))
	assert.True(t, r.SetMode(ModeDrawing))
	assert.False(t, r.SetMode(ModeDrawing))
	assert.Equal(t, "drawing", r.Mode().String())
	assert.True(t, r.SetMode(ModeIdle))
	assert.Equal(t, "idle", r.Mode().String())
}
