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
	"image"
	"log/slog"
)

// PaintLayer is a freehand ink layer on top of a map.  While enabled, it
// captures pointer input and records strokes in map coordinates, so that
// the ink stays attached to the map when it is panned or zoomed.
//
// All methods must be called from the goroutine which delivers the host's
// events.
type PaintLayer struct {
	store    *Store
	style    *StyleController
	router   Router
	renderer *Renderer
	host     Host
	logger   *slog.Logger
}

// Option configures a PaintLayer.
type Option func(*PaintLayer)

// WithLogger sets the logger used by the layer.
func WithLogger(logger *slog.Logger) Option {
	return func(l *PaintLayer) {
		l.logger = logger
	}
}

// WithStyle sets the initial default style.  An invalid style is logged
// and replaced by DefaultStyle.
func WithStyle(style Style) Option {
	return func(l *PaintLayer) {
		l.style = NewStyleController(l.store, style)
	}
}

// NewPaintLayer returns a disabled layer with no strokes.
func NewPaintLayer(opts ...Option) *PaintLayer {
	l := &PaintLayer{
		store:  NewStore(DefaultStyle),
		logger: slog.New(slog.DiscardHandler),
	}
	l.style = NewStyleController(l.store, DefaultStyle)
	for _, opt := range opts {
		opt(l)
	}

	if err := l.style.Defaults().Validate(); err != nil {
		l.logger.Warn("invalid initial style, using default", "error", err)
		l.style = NewStyleController(l.store, DefaultStyle)
	}
	l.store.Clear(l.style.Defaults())
	l.renderer = NewRenderer(l.logger)
	return l
}

// AddTo attaches the layer to a host.  A layer can be attached to at most
// one host at a time; attaching it elsewhere detaches it first.
func (l *PaintLayer) AddTo(h Host) *PaintLayer {
	if l.host != nil {
		l.Remove()
	}
	l.host = h
	h.AddRedrawHandler(l)
	h.AddPointerListener(l)
	if l.Enabled() {
		h.SetGesturesEnabled(false)
	}
	h.RequestRedraw()
	return l
}

// Remove detaches the layer from its host, if any.  The strokes are kept.
func (l *PaintLayer) Remove() {
	if l.host == nil {
		return
	}
	h := l.host
	l.host = nil
	h.RemovePointerListener(l)
	h.RemoveRedrawHandler(l)
	if l.Enabled() {
		h.SetGesturesEnabled(true)
	}
	h.RequestRedraw()
}

// Enable switches to drawing mode.  Map gestures are disabled so that
// dragging draws instead of panning.
func (l *PaintLayer) Enable() {
	if !l.router.SetMode(ModeDrawing) {
		return
	}
	if l.host != nil {
		l.host.SetGesturesEnabled(false)
	}
	l.logger.Debug("drawing enabled")
}

// Disable leaves drawing mode and gives gestures back to the map.  A stroke
// in progress stays active and is continued if drawing is re-enabled while
// the button is still held.
func (l *PaintLayer) Disable() {
	if !l.router.SetMode(ModeIdle) {
		return
	}
	if l.host != nil {
		l.host.SetGesturesEnabled(true)
	}
	l.logger.Debug("drawing disabled")
}

// Enabled reports whether the layer is in drawing mode.
func (l *PaintLayer) Enabled() bool {
	return l.router.Mode() == ModeDrawing
}

// EnableErase makes the active stroke and all new strokes erase.
func (l *PaintLayer) EnableErase() {
	l.style.EnableErase()
	l.logger.Debug("erase enabled")
}

// DisableErase makes the active stroke and all new strokes paint.
func (l *PaintLayer) DisableErase() {
	l.style.DisableErase()
	l.logger.Debug("erase disabled")
}

// ApplySettings updates the style of the active stroke and of all new
// strokes.  Strokes drawn earlier are not changed.  Invalid settings are
// rejected as a whole.
func (l *PaintLayer) ApplySettings(s Settings) error {
	if err := l.style.ApplySettings(s); err != nil {
		return err
	}
	st := l.style.Defaults()
	l.logger.Debug("settings applied",
		"line_width", st.LineWidth,
		"stroke_style", st.StrokeStyle,
		"erase", st.Erase)
	return nil
}

// Style returns the style used for new strokes.
func (l *PaintLayer) Style() Style {
	return l.style.Defaults()
}

// Clear removes all strokes and redraws.
func (l *PaintLayer) Clear() {
	n := l.store.Len() - 1
	l.store.Clear(l.style.Defaults())
	l.logger.Debug("strokes cleared", "count", n)
	l.Redraw()
}

// Redraw asks the host to repaint the layer.
func (l *PaintLayer) Redraw() {
	if l.host != nil {
		l.host.RequestRedraw()
	}
}

// Strokes returns all strokes in render order, the active one last.
// The strokes must not be modified.
func (l *PaintLayer) Strokes() []*Stroke {
	return l.store.Strokes()
}

// Active returns the stroke currently receiving points.
func (l *PaintLayer) Active() *Stroke {
	return l.store.Active()
}

// AppendPoint adds p to the active stroke.  It does nothing while the layer
// is not in drawing mode.
func (l *PaintLayer) AppendPoint(p GeoPoint) {
	if !l.Enabled() {
		return
	}
	l.store.AppendPoint(p)
}

// OnSurfaceRedraw implements RedrawHandler.
func (l *PaintLayer) OnSurfaceRedraw(dst *image.RGBA, p Projector) {
	l.renderer.Render(dst, p, l.store.Strokes())
}

// PointerDown implements PointerListener.
func (l *PaintLayer) PointerDown(GeoPoint) {
	l.router.Down()
}

// PointerMove implements PointerListener.
func (l *PaintLayer) PointerMove(p GeoPoint) {
	if l.router.Move() != ActionAppend {
		return
	}
	l.AppendPoint(p)
	l.Redraw()
}

// PointerUp implements PointerListener.
func (l *PaintLayer) PointerUp(GeoPoint) {
	if l.router.Up() != ActionSeal {
		return
	}
	if s, ok := l.store.SealActiveIfNonEmpty(l.style.Defaults()); ok {
		l.logger.Debug("stroke sealed",
			"stroke", s.ID,
			"points", len(s.Path),
			"erase", s.Erase)
	}
}
