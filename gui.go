// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spezifisch/pvp/logger"
	"github.com/spezifisch/pvp/mpvplayer"
	"github.com/spezifisch/pvp/playback"
	"github.com/spf13/viper"
)

// struct contains all the updatable elements of the Ui
type Ui struct {
	app   *tview.Application
	pages *tview.Pages

	// top bar
	startStopStatus *tview.TextView

	// bottom bar
	menuWidget *MenuWidget

	// preview page
	previewPage *PreviewPage

	// log page
	logPage *LogPage

	// modals
	helpModal  tview.Primitive
	helpWidget *HelpWidget

	mediaTitle string
	seekStep   float64
	keys       keymap
	cancel     context.CancelFunc

	// coordinator output waiting to be drawn
	pending pendingView
	redraw  chan struct{}

	coordinator *playback.Coordinator
	player      mediaEngine
	logger      *logger.Logger
}

// mediaEngine is the player as seen by the Ui: the coordinator drives
// playback, the Ui owns the engine's event loop and shutdown.
type mediaEngine interface {
	playback.MediaPlayer
	EventLoop()
	Quit()
}

var (
	_ playback.View = (*Ui)(nil)
	_ mediaEngine   = (*mpvplayer.Player)(nil)
)

const (
	// page identifiers (use these instead of hardcoding page names for showing/hiding)
	PagePreview = "preview"
	PageLog     = "log"

	PageHelpBox = "helpBox"
)

func InitGui(mediaTitle string,
	player mediaEngine,
	logger *logger.Logger) (ui *Ui) {
	ui = &Ui{
		mediaTitle: mediaTitle,
		seekStep:   viper.GetDuration("player.seek-step").Seconds(),
		keys:       loadKeymap(logger),
		player:     player,
		logger:     logger,

		redraw: make(chan struct{}, 1),
	}

	ui.app = tview.NewApplication()
	ui.pages = tview.NewPages()

	// status text at the top
	ui.startStopStatus = tview.NewTextView().SetText(formatStatus(mediaTitle, playback.Stopped)).
		SetTextAlign(tview.AlignLeft).
		SetDynamicColors(true).
		SetScrollable(false)
	ui.startStopStatus.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		return action, nil
	})

	ui.menuWidget = ui.createMenuWidget()
	ui.helpWidget = ui.createHelpWidget()

	// help box modal
	ui.helpModal = makeModal(ui.helpWidget.Root, 60, 16)
	ui.helpWidget.Root.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		// only close on ESC, like the help text says
		if ui.helpWidget.visible && (event.Key() == tcell.KeyEscape) {
			ui.CloseHelp()
		}
		return event
	})

	// preview page
	ui.previewPage = ui.createPreviewPage()

	// the coordinator is the only listener of the scrubber and the player
	ui.coordinator = playback.New(player, ui, logger, viper.GetDuration("player.sample-interval"))
	ui.previewPage.scrubber.Scrubber().RegisterEventConsumer(ui.coordinator)

	// log page
	ui.logPage = ui.createLogPage()

	ui.pages.AddPage(PagePreview, ui.previewPage.Root, true, true).
		AddPage(PageLog, ui.logPage.Root, true, false).
		AddPage(PageHelpBox, ui.helpModal, true, false)

	rootFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(ui.startStopStatus, 1, 0, false).
		AddItem(ui.pages, 0, 1, true).
		AddItem(ui.menuWidget.Root, 1, 0, false)

	// add main input handler
	rootFlex.SetInputCapture(ui.handlePageInput)

	ui.app.SetRoot(rootFlex, true).
		SetFocus(rootFlex).
		EnableMouse(true)

	return ui
}

// Run starts the event loops, loads source and blocks until the user quits.
// The coordinator's sampler is released when Run returns.
func (ui *Ui) Run(ctx context.Context, source string) error {
	ctx, ui.cancel = context.WithCancel(ctx)
	defer ui.cancel()

	// run gui event handler
	go ui.guiEventLoop(ctx)

	// run playback coordinator
	go ui.coordinator.Run(ctx)

	// run mpv event handler
	go ui.player.EventLoop()

	ui.coordinator.LoadSource(source)

	// gui main loop (blocking)
	return ui.app.Run()
}

func (ui *Ui) ShowHelp() {
	activePage := ui.menuWidget.GetActivePage()
	ui.helpWidget.RenderHelp(activePage)

	ui.pages.ShowPage(PageHelpBox)
	ui.pages.SendToFront(PageHelpBox)
	ui.app.SetFocus(ui.helpModal)
	ui.helpWidget.visible = true
}

func (ui *Ui) CloseHelp() {
	ui.helpWidget.visible = false
	ui.pages.HidePage(PageHelpBox)
}

func formatStatus(title string, state playback.PlaybackState) string {
	text := fmt.Sprintf("[::b]%s[::-] v%s ", Name, Version)

	switch state {
	case playback.Playing:
		text += "[green::b]Playing[::-]"
	case playback.Paused:
		text += "[yellow::b]Paused[::-]"
	default:
		text += "[red::b]Stopped[::-]"
	}

	if title != "" {
		text += " [white]" + tview.Escape(title)
	}
	return text
}
