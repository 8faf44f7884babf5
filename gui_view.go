// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"sync"

	"github.com/spezifisch/pvp/playback"
)

// pendingView collects view updates from the coordinator until the gui
// event loop hands them to tview. Newer values replace older ones, so the
// coordinator never waits for a redraw.
type pendingView struct {
	mu sync.Mutex

	hasProgress bool
	progress    float64

	hasTimes  bool
	elapsed   string
	remaining string

	hasState bool
	state    playback.PlaybackState
}

func (p *pendingView) take() (v pendingView) {
	p.mu.Lock()
	defer p.mu.Unlock()

	v.hasProgress, v.progress = p.hasProgress, p.progress
	v.hasTimes, v.elapsed, v.remaining = p.hasTimes, p.elapsed, p.remaining
	v.hasState, v.state = p.hasState, p.state

	p.hasProgress, p.hasTimes, p.hasState = false, false, false
	return
}

// SetProgress moves the scrubber thumb without emitting gesture events.
func (ui *Ui) SetProgress(value float64) {
	ui.pending.mu.Lock()
	ui.pending.hasProgress, ui.pending.progress = true, value
	ui.pending.mu.Unlock()
	ui.requestRedraw()
}

func (ui *Ui) SetTimes(elapsed, remaining string) {
	ui.pending.mu.Lock()
	ui.pending.hasTimes, ui.pending.elapsed, ui.pending.remaining = true, elapsed, remaining
	ui.pending.mu.Unlock()
	ui.requestRedraw()
}

func (ui *Ui) SetPlaybackState(state playback.PlaybackState) {
	ui.pending.mu.Lock()
	ui.pending.hasState, ui.pending.state = true, state
	ui.pending.mu.Unlock()
	ui.requestRedraw()
}

func (ui *Ui) requestRedraw() {
	select {
	case ui.redraw <- struct{}{}:
	default:
		// a redraw is already scheduled and will pick this up
	}
}

// applyPending must run on the tview goroutine.
func (ui *Ui) applyPending(v pendingView) {
	// a drag owns the thumb until it ends
	if v.hasProgress && !ui.previewPage.scrubber.Dragging() {
		ui.previewPage.scrubber.Scrubber().SetValue(v.progress)
	}
	if v.hasTimes {
		ui.previewPage.elapsed.SetText(v.elapsed)
		ui.previewPage.remaining.SetText(v.remaining)
	}
	if v.hasState {
		ui.previewPage.SetPlaybackState(v.state)
		ui.startStopStatus.SetText(formatStatus(ui.mediaTitle, v.state))
	}
}
