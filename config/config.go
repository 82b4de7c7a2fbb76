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

// Package config reads the settings file of the mapnotes application.
//
// Settings are stored in TOML.  All keys are optional and default to the
// values returned by [Default]; unknown keys are an error.
//
//	[paint]
//	line_width = 4
//	stroke_style = "#000000"
//	erase = false
//
//	[grid]
//	cell_size = 100
//
//	[viewport]
//	width = 1024
//	height = 768
//	min_zoom = -5
//	max_zoom = 4
//
//	[log]
//	level = "info"   # debug, info, warn or error
//	format = "text"  # text or json
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"seehuhn.de/go/mapnotes"
	"seehuhn.de/go/mapnotes/grid"
	"seehuhn.de/go/mapnotes/viewport"
)

// Line widths offered by the user interface.
const (
	MinLineWidth = 2
	MaxLineWidth = 64
)

// ErrInvalidConfig is returned for settings which cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Paint    Paint    `toml:"paint"`
	Grid     Grid     `toml:"grid"`
	Viewport Viewport `toml:"viewport"`
	Log      Log      `toml:"log"`
}

// Paint holds the initial stroke style.
type Paint struct {
	LineWidth   float64 `toml:"line_width"`
	StrokeStyle string  `toml:"stroke_style"`
	Erase       bool    `toml:"erase"`
}

// Grid holds the grid settings.
type Grid struct {
	CellSize int `toml:"cell_size"`
}

// Viewport holds the initial window size and the zoom range.
type Viewport struct {
	Width   int     `toml:"width"`
	Height  int     `toml:"height"`
	MinZoom float64 `toml:"min_zoom"`
	MaxZoom float64 `toml:"max_zoom"`
}

// Log selects the log level and output format.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Paint: Paint{
			LineWidth:   mapnotes.DefaultStyle.LineWidth,
			StrokeStyle: mapnotes.DefaultStyle.StrokeStyle,
			Erase:       mapnotes.DefaultStyle.Erase,
		},
		Grid: Grid{CellSize: grid.DefaultCellSize},
		Viewport: Viewport{
			Width:   1024,
			Height:  768,
			MinZoom: viewport.DefaultMinZoom,
			MaxZoom: viewport.DefaultMaxZoom,
		},
		Log: Log{Level: "info", Format: "text"},
	}
}

// Parse reads settings from r.  Keys missing from the input keep their
// default values.  The result is validated.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the settings file at path.  If the file does not exist, the
// default settings are returned.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks that all settings are usable.
func (c *Config) Validate() error {
	if w := c.Paint.LineWidth; !(w >= MinLineWidth && w <= MaxLineWidth) {
		return fmt.Errorf("%w: paint.line_width %g not in [%d, %d]",
			ErrInvalidConfig, w, MinLineWidth, MaxLineWidth)
	}
	if _, err := mapnotes.ParseColor(c.Paint.StrokeStyle); err != nil {
		return fmt.Errorf("%w: paint.stroke_style: %w", ErrInvalidConfig, err)
	}
	if err := grid.ValidateCellSize(c.Grid.CellSize); err != nil {
		return fmt.Errorf("%w: grid.cell_size: %w", ErrInvalidConfig, err)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport size %dx%d",
			ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	}
	if c.Viewport.MinZoom > c.Viewport.MaxZoom {
		return fmt.Errorf("%w: viewport.min_zoom %g > max_zoom %g",
			ErrInvalidConfig, c.Viewport.MinZoom, c.Viewport.MaxZoom)
	}
	if _, err := c.Log.level(); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

// Style returns the paint settings as a stroke style.
func (c *Config) Style() mapnotes.Style {
	return mapnotes.Style{
		LineWidth:   c.Paint.LineWidth,
		StrokeStyle: c.Paint.StrokeStyle,
		Erase:       c.Paint.Erase,
	}
}

func (l Log) level() (slog.Level, error) {
	var level slog.Level
	switch l.Level {
	case "debug", "info", "warn", "error":
		err := level.UnmarshalText([]byte(l.Level))
		return level, err
	default:
		return 0, fmt.Errorf("unknown level %q", l.Level)
	}
}

// NewLogger returns a logger writing to w with the configured level and
// format.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Log.level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
