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

package main

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/lucasb-eyer/go-colorful"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/mapnotes"
	"seehuhn.de/go/mapnotes/config"
	"seehuhn.de/go/mapnotes/grid"
	"seehuhn.de/go/mapnotes/marker"
	"seehuhn.de/go/mapnotes/viewport"
)

// overlay names, bottom to top
const (
	backgroundOverlay = "background"
	gridOverlay       = "grid"
)

type app struct {
	win     fyne.Window
	vp      *viewport.Viewport
	view    *mapView
	paint   *mapnotes.PaintLayer
	markers *marker.Set
	logger  *slog.Logger

	// area covered by the grid; the background image if one is loaded
	bounds   mapnotes.GeoBounds
	hasImage bool

	drawCheck  *widget.Check
	eraseCheck *widget.Check
	width      *widget.Slider
	cellEntry  *widget.Entry

	dragging *marker.Marker
}

func newApp(win fyne.Window, cfg *config.Config, logger *slog.Logger) (*app, error) {
	markers, err := marker.NewSet(cfg.Grid.CellSize, marker.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	a := &app{
		win: win,
		vp: viewport.New(cfg.Viewport.Width, cfg.Viewport.Height,
			viewport.WithZoomRange(cfg.Viewport.MinZoom, cfg.Viewport.MaxZoom),
			viewport.WithLogger(logger)),
		paint: mapnotes.NewPaintLayer(
			mapnotes.WithLogger(logger),
			mapnotes.WithStyle(cfg.Style())),
		markers: markers,
		logger:  logger,
	}
	a.paint.AddTo(a.vp)
	a.vp.AddRedrawHandler(a.markers)
	a.vp.AddPointerListener(a)
	a.vp.OnContextMenu(a.toggleMarker)
	a.view = newMapView(a.vp)

	a.bounds = grid.DefaultBounds(cfg.Grid.CellSize)
	if err := a.drawGrid(); err != nil {
		return nil, err
	}
	a.vp.FitBounds(a.bounds)
	a.vp.SetZoom(a.vp.Zoom() + 1)
	return a, nil
}

// content builds the window contents.
func (a *app) content() fyne.CanvasObject {
	a.drawCheck = widget.NewCheck("Draw", func(on bool) {
		if on {
			a.paint.Enable()
		} else {
			a.paint.Disable()
		}
	})

	a.width = widget.NewSlider(config.MinLineWidth, config.MaxLineWidth)
	a.width.Step = 2
	a.width.SetValue(a.paint.Style().LineWidth)
	a.width.OnChanged = func(w float64) {
		a.applySettings(mapnotes.Settings{LineWidth: &w})
	}

	colour := widget.NewButton("Colour", a.pickColour)

	a.eraseCheck = widget.NewCheck("Erase", func(on bool) {
		if on {
			a.paint.EnableErase()
		} else {
			a.paint.DisableErase()
		}
	})
	a.eraseCheck.SetChecked(a.paint.Style().Erase)

	clearButton := widget.NewButton("Clear", a.paint.Clear)

	a.cellEntry = widget.NewEntry()
	a.cellEntry.SetText(strconv.Itoa(a.markers.CellSize()))
	a.cellEntry.Validator = func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		return grid.ValidateCellSize(n)
	}
	a.cellEntry.OnSubmitted = func(s string) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return
		}
		a.setCellSize(n)
	}

	background := widget.NewButton("Background…", a.openBackground)

	toolbar := container.NewHBox(
		a.drawCheck,
		widget.NewLabel("Width:"),
		container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), a.width),
		colour,
		a.eraseCheck,
		clearButton,
		widget.NewSeparator(),
		widget.NewLabel("Cell size:"),
		container.New(layout.NewGridWrapLayout(fyne.NewSize(80, 35)), a.cellEntry),
		background,
		layout.NewSpacer(),
	)
	return container.NewBorder(toolbar, nil, nil, nil, a.view)
}

func (a *app) applySettings(s mapnotes.Settings) {
	if err := a.paint.ApplySettings(s); err != nil {
		a.logger.Warn("settings rejected", "error", err)
	}
}

func (a *app) pickColour() {
	d := dialog.NewColorPicker("Stroke colour", "", func(c color.Color) {
		cc, ok := colorful.MakeColor(c)
		if !ok {
			return
		}
		hex := cc.Hex()
		a.applySettings(mapnotes.Settings{StrokeStyle: &hex})
	}, a.win)
	d.Advanced = true
	if c, err := mapnotes.ParseColor(a.paint.Style().StrokeStyle); err == nil {
		d.SetColor(c)
	}
	d.Show()
}

// drawGrid renders the grid over the current bounds.
func (a *app) drawGrid() error {
	w := int(a.bounds.NorthEast.Lng - a.bounds.SouthWest.Lng)
	h := int(a.bounds.NorthEast.Lat - a.bounds.SouthWest.Lat)
	img, err := grid.Render(w, h, grid.Options{CellSize: a.markers.CellSize()})
	if err != nil {
		return err
	}
	a.vp.SetOverlay(gridOverlay, img, a.bounds)
	return nil
}

func (a *app) setCellSize(n int) {
	if err := a.markers.SetCellSize(n); err != nil {
		a.logger.Warn("cell size rejected", "error", err)
		return
	}
	if !a.hasImage {
		a.bounds = grid.DefaultBounds(n)
	}
	if err := a.drawGrid(); err != nil {
		a.logger.Error("drawing grid", "error", err)
	}
}

func (a *app) openBackground() {
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.win)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()
		if err := a.loadBackground(r); err != nil {
			a.logger.Warn("background not loaded", "uri", r.URI().String(), "error", err)
			dialog.ShowError(err, a.win)
		}
	}, a.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	d.Show()
}

func (a *app) loadBackground(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	img, err := viewport.DecodeImage(data)
	if err != nil {
		return err
	}
	a.bounds = viewport.ImageBounds(img)
	a.hasImage = true
	a.vp.SetOverlay(backgroundOverlay, img, a.bounds)
	if err := a.drawGrid(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	a.vp.FitBounds(a.bounds)
	a.vp.SetZoom(a.vp.Zoom() + 1)
	a.logger.Info("background loaded",
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

// toggleMarker removes the marker under the pointer, or adds one.
func (a *app) toggleMarker(p mapnotes.GeoPoint, px vec.Vec2) {
	if m := a.markers.Hit(px, a.vp); m != nil {
		a.markers.Remove(m.ID)
	} else {
		a.markers.Add(p)
	}
	a.vp.RequestRedraw()
}

// PointerDown starts dragging a marker.  Markers can only be dragged while
// the map itself can be dragged, i.e. when not drawing.
func (a *app) PointerDown(p mapnotes.GeoPoint) {
	g := a.vp.Gestures()
	if !g.Dragging {
		return
	}
	m := a.markers.Hit(a.vp.ProjectToPixel(p), a.vp)
	if m == nil {
		return
	}
	a.dragging = m
	g.Dragging = false
	a.vp.SetGestures(g)
}

// PointerMove moves the dragged marker without snapping.
func (a *app) PointerMove(p mapnotes.GeoPoint) {
	if a.dragging == nil {
		return
	}
	a.dragging.Position = p
	a.vp.RequestRedraw()
}

// PointerUp snaps the dragged marker to its new cell.
func (a *app) PointerUp(p mapnotes.GeoPoint) {
	if a.dragging == nil {
		return
	}
	a.markers.Move(a.dragging.ID, p)
	a.dragging = nil
	g := a.vp.Gestures()
	g.Dragging = true
	a.vp.SetGestures(g)
	a.vp.RequestRedraw()
}

// reload applies changed settings.  It must run on the UI goroutine.
func (a *app) reload(cfg *config.Config) {
	a.vp.SetZoomRange(cfg.Viewport.MinZoom, cfg.Viewport.MaxZoom)

	style := cfg.Style()
	a.applySettings(mapnotes.Settings{
		LineWidth:   &style.LineWidth,
		StrokeStyle: &style.StrokeStyle,
		Erase:       &style.Erase,
	})
	a.width.SetValue(style.LineWidth)
	a.eraseCheck.SetChecked(style.Erase)

	if cfg.Grid.CellSize != a.markers.CellSize() {
		a.cellEntry.SetText(strconv.Itoa(cfg.Grid.CellSize))
		a.setCellSize(cfg.Grid.CellSize)
	}
}
