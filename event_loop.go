// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import "context"

// handle ui updates
func (ui *Ui) guiEventLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case msg := <-ui.logger.Prints:
			// handle log page output
			ui.logPage.Print(msg)

		case <-ui.redraw:
			// handle playback coordinator output
			v := ui.pending.take()
			ui.app.QueueUpdateDraw(func() {
				ui.applyPending(v)
			})
		}
	}
}
