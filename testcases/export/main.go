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

// Command export renders every annotation scenario to a PNG file and
// writes a JSON summary of the resulting strokes, for visual inspection.
// Run from the module root directory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/mapnotes"
	"seehuhn.de/go/mapnotes/testcases"
)

func main() {
	outDir := flag.String("o", "testdata/scenarios", "output directory")
	verbose := flag.Bool("v", false, "log layer activity")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(*outDir, logger); err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run(outDir string, logger *slog.Logger) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	var out struct {
		Scenarios []jsonScenario `json:"scenarios"`
	}
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, sc := range testcases.All[category] {
			name := category + "_" + sc.Name
			l, img, err := sc.Run(mapnotes.WithLogger(logger.With("scenario", name)))
			if err != nil {
				return err
			}
			if err := writePNG(filepath.Join(outDir, name+".png"), img); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			out.Scenarios = append(out.Scenarios, toJSON(name, sc, l))
		}
	}

	f, err := os.Create(filepath.Join(outDir, "scenarios.json"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	err = enc.Encode(out)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func writePNG(fname string, img image.Image) (err error) {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

type jsonScenario struct {
	Name    string       `json:"name"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Scale   float64      `json:"scale"`
	Strokes []jsonStroke `json:"strokes"`
}

type jsonStroke struct {
	LineWidth   float64     `json:"line_width"`
	StrokeStyle string      `json:"stroke_style"`
	Erase       bool        `json:"erase,omitempty"`
	Path        [][]float64 `json:"path"`
}

func toJSON(name string, sc testcases.Scenario, l *mapnotes.PaintLayer) jsonScenario {
	js := jsonScenario{
		Name:   name,
		Width:  sc.Width,
		Height: sc.Height,
		Scale:  sc.View.ZoomScale(),
	}
	for _, s := range l.Strokes() {
		if s.Empty() {
			continue
		}
		st := jsonStroke{
			LineWidth:   s.LineWidth,
			StrokeStyle: s.StrokeStyle,
			Erase:       s.Erase,
			Path:        make([][]float64, len(s.Path)),
		}
		for i, p := range s.Path {
			st.Path[i] = []float64{p.Lat, p.Lng}
		}
		js.Strokes = append(js.Strokes, st)
	}
	return js
}
