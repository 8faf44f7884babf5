// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const logPageLines = 100

type LogPage struct {
	Root *tview.Flex

	logList *tview.List

	// external refs
	ui *Ui
}

func (ui *Ui) createLogPage() *LogPage {
	logPage := LogPage{
		ui: ui,
	}

	logPage.logList = tview.NewList().ShowSecondaryText(false)
	logPage.logList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'c' {
			logPage.logList.Clear()
			return nil
		}
		return event
	})

	logPage.Root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(logPage.logList, 0, 1, true)

	return &logPage
}

func (l *LogPage) Print(line string) {
	l.ui.app.QueueUpdateDraw(func() {
		l.insert(time.Now(), line)
	})
}

// insert must run on the tview goroutine. Newest lines go on top.
func (l *LogPage) insert(at time.Time, line string) {
	l.logList.InsertItem(0, at.Local().Format("(15:04:05) ")+line, "", 0, nil)

	for l.logList.GetItemCount() > logPageLines {
		l.logList.RemoveItem(-1)
	}
}
