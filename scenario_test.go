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

package mapnotes_test

import (
	"image"
	"image/png"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"seehuhn.de/go/mapnotes/testcases"
)

func TestScenarios(t *testing.T) {
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			t.Run(name, func(t *testing.T) {
				_, img, err := tc.Run()
				if err != nil {
					t.Fatal(err)
				}

				failed := false
				for _, p := range tc.Probes {
					got := testcases.Classify(img.RGBAAt(p.X, p.Y).A)
					if got != p.Want {
						t.Errorf("pixel (%d,%d): got %s, want %s", p.X, p.Y, got, p.Want)
						failed = true
					}
				}
				if failed {
					writeDebugImage(t, name, img)
				}
			})
		}
	}
}

func TestScenarioNames(t *testing.T) {
	seen := make(map[string]bool)
	for category, cases := range testcases.All {
		for _, tc := range cases {
			for _, c := range tc.Name {
				if (c < 'a' || c > 'z') && c != '_' {
					t.Errorf("%s: invalid character %q in name", tc.Name, c)
				}
			}
			name := category + "_" + tc.Name
			if seen[name] {
				t.Errorf("duplicate scenario %s", name)
			}
			seen[name] = true
		}
	}
}

func writeDebugImage(t *testing.T, name string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll("debug", 0755); err != nil {
		t.Log(err)
		return
	}
	fname := filepath.Join("debug", name+".png")
	f, err := os.Create(fname)
	if err != nil {
		t.Log(err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Log(err)
		return
	}
	t.Logf("rendered image written to %s", fname)
}
