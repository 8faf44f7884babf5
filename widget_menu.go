// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// menuPage is a page reachable from the bottom bar. The number key that
// switches to it is its position in menuPages, counting from 1.
type menuPage struct {
	name  string
	label string
}

var menuPages = []menuPage{
	{name: PagePreview, label: "preview"},
	{name: PageLog, label: "log"},
}

type MenuWidget struct {
	Root *tview.Flex

	pageButtons  *tview.Flex
	actionsRight *tview.Flex

	activePage string
	buttons    map[string]*tview.Button

	buttonStyle     tcell.Style
	quitActiveStyle tcell.Style

	// external references
	ui *Ui
}

func (ui *Ui) createMenuWidget() (m *MenuWidget) {
	m = &MenuWidget{
		activePage: menuPages[0].name,
		buttons:    make(map[string]*tview.Button, len(menuPages)),

		buttonStyle:     tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
		quitActiveStyle: tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorRed),

		ui: ui,
	}

	m.pageButtons = tview.NewFlex().
		SetDirection(tview.FlexColumn)
	for i, page := range menuPages {
		if i > 0 {
			m.pageButtons.AddItem(nil, 1, 0, false)
		}
		m.pageButtons.AddItem(m.newPageButton(page), 13, 0, false)
	}
	m.updatePageButtons()

	quitButton := tview.NewButton("Q: quit").
		SetStyle(m.buttonStyle).
		SetActivatedStyle(m.quitActiveStyle).
		SetSelectedFunc(ui.Quit)
	helpButton := tview.NewButton("?: help").
		SetStyle(m.buttonStyle).
		SetActivatedStyle(m.buttonStyle).
		SetSelectedFunc(ui.ShowHelp)

	m.actionsRight = tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(nil, 0, 1, false). // right-align
		AddItem(helpButton, 9, 0, false).
		AddItem(quitButton, 9, 0, false)

	m.Root = tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(m.pageButtons, 0, 2, false).
		AddItem(m.actionsRight, 0, 1, false)

	// clear background
	m.Root.Box = tview.NewBox()

	return
}

func (m *MenuWidget) newPageButton(page menuPage) *tview.Button {
	button := tview.NewButton(page.label).
		SetStyle(m.buttonStyle).
		// a number key switch leaves the button focused; keep it unhighlighted
		SetActivatedStyle(m.buttonStyle).
		SetSelectedFunc(func() {
			m.ui.ShowPage(page.name)
		})
	m.buttons[page.name] = button
	return button
}

func (m *MenuWidget) updatePageButtons() {
	for i, page := range menuPages {
		label := page.label
		if page.name == m.activePage {
			label = "[::b]" + label + "[::-]"
		}
		m.buttons[page.name].SetLabel(fmt.Sprintf("%d: %s", i+1, label))
	}
}

func (m *MenuWidget) SetActivePage(name string) {
	if _, ok := m.buttons[name]; !ok {
		return
	}

	m.activePage = name
	m.updatePageButtons()
}

func (m *MenuWidget) GetActivePage() string {
	return m.activePage
}
