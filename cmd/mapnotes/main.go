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

// Mapnotes is a desktop map viewer with a reference grid, numbered
// markers and a freehand ink layer.
//
// Usage:
//
//	mapnotes [-config file]
//
// The settings file is reloaded whenever it changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"seehuhn.de/go/mapnotes/config"
)

func main() {
	configPath := flag.String("config", "mapnotes.toml", "settings file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "mapnotes:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger := cfg.NewLogger(os.Stderr)

	fa := fyneapp.NewWithID("de.seehuhn.mapnotes")
	win := fa.NewWindow("mapnotes")

	a, err := newApp(win, cfg, logger)
	if err != nil {
		return err
	}
	win.SetContent(a.content())
	win.Resize(fyne.NewSize(float32(cfg.Viewport.Width), float32(cfg.Viewport.Height)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err = config.Watch(ctx, configPath, func(c *config.Config) {
		fyne.Do(func() { a.reload(c) })
	}, logger)
	if err != nil {
		logger.Warn("settings will not be reloaded", "path", configPath, "error", err)
	}

	logger.Info("starting", "config", configPath)
	win.ShowAndRun()
	logger.Info("exiting")
	return nil
}
