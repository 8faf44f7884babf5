// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package playback

import (
	"fmt"
	"math"
)

// FormatElapsed renders a position as MM:SS, dropping partial seconds.
func FormatElapsed(seconds float64) string {
	minutes, secs := secondsToMinAndSec(seconds)
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatRemaining renders the time left as -MM:SS, dropping partial seconds.
func FormatRemaining(seconds float64) string {
	return "-" + FormatElapsed(seconds)
}

func secondsToMinAndSec(seconds float64) (int, int) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	whole := int64(seconds)
	return int(whole / 60), int(whole % 60)
}
