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
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with the new settings whenever the file at path changes,
// until ctx is cancelled.  The directory containing the file is watched,
// so that files replaced by editors are picked up and the file may be
// created later.
//
// Files which cannot be read or are invalid are logged and ignored; the
// previous settings stay in effect.  fn is called from a separate
// goroutine.
func Watch(ctx context.Context, path string, fn func(*Config), logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	last, err := Load(path)
	if err != nil {
		last = nil
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				c, err := Load(path)
				if err != nil {
					logger.Warn("ignoring settings file", "path", path, "error", err)
					continue
				}
				if last != nil && *c == *last {
					continue
				}
				last = c
				logger.Info("settings reloaded", "path", path)
				fn(c)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("settings watcher", "error", err)
			}
		}
	}()
	return nil
}
