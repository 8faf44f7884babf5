// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"github.com/gdamore/tcell/v2"
)

func (ui *Ui) handlePageInput(event *tcell.EventKey) *tcell.EventKey {
	// the help modal handles its own keys
	if ui.helpWidget.visible {
		return event
	}

	command, ok := ui.keys[keyName(event)]
	if !ok {
		return event
	}
	ui.runCommand(command)
	return nil
}

func (ui *Ui) runCommand(command string) {
	switch command {
	case cmdTogglePlay:
		ui.coordinator.TogglePlayPause()

	case cmdSeekBack:
		// <<
		ui.coordinator.SeekRelative(-ui.seekStep)

	case cmdSeekForward:
		// >>
		ui.coordinator.SeekRelative(ui.seekStep)

	case cmdBack:
		ui.handleBack()

	case cmdPagePreview:
		ui.ShowPage(PagePreview)

	case cmdPageLog:
		ui.ShowPage(PageLog)

	case cmdHelp:
		ui.ShowHelp()

	case cmdQuit:
		ui.Quit()

	default:
		ui.logger.Printf("keys: unknown command %q", command)
	}
}

func (ui *Ui) ShowPage(name string) {
	ui.pages.SwitchToPage(name)
	ui.menuWidget.SetActivePage(name)
	_, prim := ui.pages.GetFrontPage()
	ui.app.SetFocus(prim)
}

// handleBack is the back button. There is no screen to go back to yet.
func (ui *Ui) handleBack() {
	ui.logger.Print("back: no previous screen")
}

func (ui *Ui) Quit() {
	if ui.cancel != nil {
		// stops the sampler and the end of media observer
		ui.cancel()
	}
	ui.player.Quit()
	ui.app.Stop()
}
