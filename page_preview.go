// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/pvp/playback"
	"github.com/spezifisch/pvp/scrubber"
	"github.com/spf13/viper"
)

const (
	glyphPlay  = "▶"
	glyphPause = "❚❚"
	glyphBack  = "◀ back"
)

type PreviewPage struct {
	Root *tview.Flex

	backButton      *tview.Button
	playPauseButton *tview.Button
	elapsed         *tview.TextView
	remaining       *tview.TextView
	scrubber        *scrubber.Widget

	buttonStyle  tcell.Style
	pressedStyle tcell.Style

	// external refs
	ui *Ui
}

func (ui *Ui) createPreviewPage() *PreviewPage {
	previewPage := PreviewPage{
		ui: ui,

		buttonStyle:  tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
		pressedStyle: tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray),
	}

	scrub := scrubber.New(1)
	scrub.ThumbColor = tcell.GetColor(viper.GetString("ui.thumb-color"))
	scrub.FillColor = tcell.GetColor(viper.GetString("ui.fill-color"))
	scrub.TrackColor = tcell.GetColor(viper.GetString("ui.track-color"))
	previewPage.scrubber = scrubber.NewWidget(scrub)

	// buttons dim while pressed
	previewPage.backButton = tview.NewButton(glyphBack).
		SetStyle(previewPage.buttonStyle).
		SetActivatedStyle(previewPage.pressedStyle).
		SetSelectedFunc(ui.handleBack)
	previewPage.playPauseButton = tview.NewButton(glyphPlay).
		SetStyle(previewPage.buttonStyle).
		SetActivatedStyle(previewPage.pressedStyle).
		SetSelectedFunc(func() {
			ui.coordinator.TogglePlayPause()
		})

	previewPage.elapsed = tview.NewTextView().
		SetText(playback.FormatElapsed(0)).
		SetTextAlign(tview.AlignCenter)
	previewPage.remaining = tview.NewTextView().
		SetText(playback.FormatRemaining(0)).
		SetTextAlign(tview.AlignCenter)

	video := tview.NewTextView().
		SetText("video plays in the mpv window").
		SetTextAlign(tview.AlignCenter).
		SetTextColor(tcell.ColorGray)

	transport := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(previewPage.playPauseButton, 4, 0, false).
		AddItem(previewPage.elapsed, 8, 0, false).
		AddItem(previewPage.scrubber, 0, 1, false).
		AddItem(previewPage.remaining, 9, 0, false)

	topBar := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(previewPage.backButton, 8, 0, false).
		AddItem(nil, 0, 1, false)

	previewPage.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(topBar, 1, 0, false).
		AddItem(video, 0, 1, false).
		AddItem(transport, 1, 0, false)

	return &previewPage
}

// SetPlaybackState swaps the transport glyph: pause while playing, play otherwise.
func (p *PreviewPage) SetPlaybackState(state playback.PlaybackState) {
	if state == playback.Playing {
		p.playPauseButton.SetLabel(glyphPause)
	} else {
		p.playPauseButton.SetLabel(glyphPlay)
	}
}
