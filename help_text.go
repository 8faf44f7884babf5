// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

const helpPagePreview = `
mouse on the seek bar
  drag  scrub (pauses until
        released)
  click jump to position
buttons
  ▶/❚❚  play/pause
  back  back
`

const helpPageLog = `
c     clear log
`
