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

package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/mapnotes"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, mapnotes.DefaultStyle, c.Style())
	assert.Equal(t, 100, c.Grid.CellSize)
	assert.Equal(t, -5.0, c.Viewport.MinZoom)
	assert.Equal(t, 4.0, c.Viewport.MaxZoom)
}

func TestParse(t *testing.T) {
	in := `
[paint]
line_width = 8
stroke_style = "#ff8800"

[grid]
cell_size = 50

[log]
level = "debug"
format = "json"
`
	c, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	want := Default()
	want.Paint.LineWidth = 8
	want.Paint.StrokeStyle = "#ff8800"
	want.Grid.CellSize = 50
	want.Log = Log{Level: "debug", Format: "json"}
	assert.Equal(t, want, c)
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"unknown_key":     "[paint]\ncolour = \"#000000\"\n",
		"unknown_section": "[sound]\nvolume = 3\n",
		"syntax":          "[paint\n",
		"wrong_type":      "[grid]\ncell_size = \"big\"\n",
		"thin":            "[paint]\nline_width = 1\n",
		"thick":           "[paint]\nline_width = 65\n",
		"colour":          "[paint]\nstroke_style = \"black\"\n",
		"cell":            "[grid]\ncell_size = 4\n",
		"zoom":            "[viewport]\nmin_zoom = 3\nmax_zoom = 2\n",
		"size":            "[viewport]\nwidth = 0\n",
		"level":           "[log]\nlevel = \"verbose\"\n",
		"format":          "[log]\nformat = \"xml\"\n",
	}
	for name, in := range cases {
		_, err := Parse(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	c, err := Load(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(dir, "mapnotes.toml")
	require.NoError(t, os.WriteFile(path, []byte("[paint]\nerase = true\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.True(t, c.Paint.Erase)

	require.NoError(t, os.WriteFile(path, []byte("[paint]\nline_width = 0\n"), 0o644))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), path)
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	c := Default()
	c.NewLogger(buf).Debug("hidden")
	c.NewLogger(buf).Info("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	c.Log = Log{Level: "debug", Format: "json"}
	c.NewLogger(buf).Debug("details")
	assert.Contains(t, buf.String(), `"msg":"details"`)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapnotes.toml")
	require.NoError(t, os.WriteFile(path, []byte("[grid]\ncell_size = 20\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	buf := &syncBuffer{}
	got := make(chan *Config, 10)
	err := Watch(ctx, path, func(c *Config) { got <- c }, Default().NewLogger(buf))
	require.NoError(t, err)

	// an invalid file is ignored
	replaceFile(t, path, "[grid]\ncell_size = 1\n")
	select {
	case c := <-got:
		t.Fatalf("unexpected reload: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}

	replaceFile(t, path, "[grid]\ncell_size = 30\n")
	select {
	case c := <-got:
		assert.Equal(t, 30, c.Grid.CellSize)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after valid change")
	}
	assert.Contains(t, buf.String(), "ignoring settings file")
}

// replaceFile atomically replaces the contents of path, the way editors
// save files.
func replaceFile(t *testing.T, path, data string) {
	t.Helper()
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(data), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}
