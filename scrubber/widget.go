// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package scrubber

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	trackRune = '─'
	fillRune  = '━'
	thumbRune = '●'

	// how far (in cells) from the thumb a press still grabs it
	thumbGrabTolerance = 1
)

// Widget renders a Scrubber on the middle row of its inner rect. One cell
// is one unit of scrubber geometry.
type Widget struct {
	*tview.Box

	scrubber *Scrubber

	// drag state, only touched from the tview event goroutine
	armed           bool
	dragging        bool
	lastColumn      int
	clickSuppressed bool
}

func NewWidget(s *Scrubber) *Widget {
	return &Widget{
		Box:      tview.NewBox(),
		scrubber: s,
	}
}

func (w *Widget) Scrubber() *Scrubber {
	return w.scrubber
}

// Dragging reports whether a drag gesture is in progress.
func (w *Widget) Dragging() bool {
	return w.dragging
}

func (w *Widget) SetRect(x, y, width, height int) {
	w.Box.SetRect(x, y, width, height)
	_, _, innerWidth, _ := w.GetInnerRect()
	w.scrubber.Resize(float64(innerWidth))
}

func (w *Widget) Draw(screen tcell.Screen) {
	w.Box.DrawForSubclass(screen, w)

	x, y, width, height := w.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	if w.scrubber.Width() != float64(width) {
		w.scrubber.Resize(float64(width))
	}

	row := y + height/2
	background := w.GetBackgroundColor()
	thumb := w.thumbColumn()

	for col := 0; col < width; col++ {
		r, color := trackRune, w.scrubber.TrackColor
		if col < thumb {
			r, color = fillRune, w.scrubber.FillColor
		}
		screen.SetContent(x+col, row, r, nil, tcell.StyleDefault.Foreground(color).Background(background))
	}
	screen.SetContent(x+thumb, row, thumbRune, nil,
		tcell.StyleDefault.Foreground(w.scrubber.ThumbColor).Background(background))
}

func (w *Widget) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return w.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		mx, my := event.Position()
		x, _, _, _ := w.GetInnerRect()
		column := mx - x

		switch action {
		case tview.MouseLeftDown:
			if !w.InRect(mx, my) {
				return false, nil
			}
			setFocus(w)
			w.clickSuppressed = false
			w.armed = w.onThumb(column)
			w.lastColumn = column
			if w.armed {
				// keep receiving moves when the pointer leaves the bar
				return true, w
			}
			return true, nil

		case tview.MouseMove:
			if !w.armed || event.Buttons()&tcell.Button1 == 0 {
				return false, nil
			}
			if column != w.lastColumn {
				if !w.dragging {
					w.dragging = true
					w.scrubber.BeginDrag()
				}
				w.scrubber.DragBy(float64(column - w.lastColumn))
				w.lastColumn = column
			}
			return true, w

		case tview.MouseLeftUp:
			w.armed = false
			if w.dragging {
				w.dragging = false
				w.clickSuppressed = true
				w.scrubber.EndDrag()
				return true, nil
			}
			return w.InRect(mx, my), nil

		case tview.MouseLeftClick:
			if w.clickSuppressed {
				w.clickSuppressed = false
				return true, nil
			}
			if !w.InRect(mx, my) {
				return false, nil
			}
			w.scrubber.Tap(w.trackPosition(column))
			return true, nil
		}

		return false, nil
	})
}

func (w *Widget) thumbColumn() int {
	col := int(math.Floor(w.scrubber.ThumbCenter()))
	if maxCol := int(w.scrubber.Width()) - 1; col > maxCol {
		col = maxCol
	}
	if col < 0 {
		col = 0
	}
	return col
}

// trackPosition converts a column to a distance from the track start,
// taking the center of the cell.
func (w *Widget) trackPosition(column int) float64 {
	return float64(column) + 0.5 - w.scrubber.ThumbDiameter()/2
}

func (w *Widget) onThumb(column int) bool {
	d := column - w.thumbColumn()
	return d >= -thumbGrabTolerance && d <= thumbGrabTolerance
}
