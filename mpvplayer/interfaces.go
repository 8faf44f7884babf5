// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

type UiEventType int

const (
	// file loaded and ready for property reads, data: StatusData
	EventFileLoaded UiEventType = iota
	// playback reached the end of the file, data: nil
	// sent once per playthrough; seeking away re-arms it
	EventEndReached
)

func (t UiEventType) String() string {
	switch t {
	case EventFileLoaded:
		return "FileLoaded"
	case EventEndReached:
		return "EndReached"
	default:
		return "Unknown"
	}
}

type UiEvent struct {
	Type UiEventType
	Data interface{}
}

type EventConsumer interface {
	// create event that goes from mpv backend (this package) to a UI frontend
	SendEvent(event UiEvent)
}

// StatusData is a player clock snapshot, in seconds
type StatusData struct {
	Position float64
	Duration float64
}
