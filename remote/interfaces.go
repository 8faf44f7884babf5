// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import "github.com/spezifisch/pvp/playback"

type ControlledPlayer interface {
	Play()
	Pause()
	TogglePlayPause()

	// Moves the position by seconds.
	SeekRelative(seconds float64)
	// Moves the position to seconds from the start.
	SeekTo(seconds float64)

	State() playback.PlaybackState

	// Registers a callback which is invoked on every play/pause transition.
	OnStateChange(cb func(state playback.PlaybackState))
}
