// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"strconv"

	"github.com/spezifisch/pvp/logger"
	"github.com/supersonic-app/go-mpv"
)

// Options are passed to mpv before initialization.
type Options struct {
	// mpv video output driver, empty for mpv's default window
	VideoOutput string
}

type Player struct {
	instance      *mpv.Mpv
	mpvEvents     chan *mpv.Event
	eventConsumer EventConsumer
	logger        logger.LoggerInterface

	// owned by the EventLoop goroutine
	endReached bool
}

func NewPlayer(logger logger.LoggerInterface, options Options) (player *Player, err error) {
	mpvInstance := mpv.Create()

	mpvOptions := [][2]string{
		// stay on the last frame at the end so the loop can seek back
		{"keep-open", "yes"},
		{"force-window", "yes"},
		{"keepaspect", "yes"},
		{"osc", "no"},
		{"input-default-bindings", "no"},
		{"terminal", "no"},
	}
	if options.VideoOutput != "" {
		mpvOptions = append(mpvOptions, [2]string{"vo", options.VideoOutput})
	}
	for _, opt := range mpvOptions {
		if err = mpvInstance.SetOptionString(opt[0], opt[1]); err != nil {
			mpvInstance.TerminateDestroy()
			return
		}
	}

	if err = mpvInstance.Initialize(); err != nil {
		mpvInstance.TerminateDestroy()
		return
	}

	player = &Player{
		instance:      mpvInstance,
		mpvEvents:     make(chan *mpv.Event),
		eventConsumer: nil, // must be set by calling RegisterEventConsumer()
		logger:        logger,
	}

	go player.mpvEngineEventHandler(mpvInstance)
	return
}

func (p *Player) mpvEngineEventHandler(instance *mpv.Mpv) {
	for {
		evt := instance.WaitEvent(1)
		if evt != nil && evt.Event_Id == mpv.EVENT_SHUTDOWN {
			return
		}
		p.mpvEvents <- evt
	}
}

func (p *Player) Quit() {
	p.mpvEvents <- nil
	p.instance.TerminateDestroy()
}

func (p *Player) RegisterEventConsumer(consumer EventConsumer) {
	p.eventConsumer = consumer
}

// Load replaces the current file. Playback state (paused or not) is kept.
// The end-of-file edge is re-armed once mpv reports the file as loaded.
func (p *Player) Load(uri string) error {
	return p.instance.Command([]string{"loadfile", uri, "replace"})
}

func (p *Player) Play() error {
	return p.instance.SetProperty("pause", mpv.FORMAT_FLAG, false)
}

func (p *Player) Pause() error {
	return p.instance.SetProperty("pause", mpv.FORMAT_FLAG, true)
}

// SeekAbsolute jumps to a position in seconds from the start of the file.
func (p *Player) SeekAbsolute(seconds float64) error {
	if seconds < 0 {
		seconds = 0
	}
	return p.instance.Command([]string{"seek", strconv.FormatFloat(seconds, 'f', 3, 64), "absolute"})
}

// TimePos is the current playback position in seconds.
func (p *Player) TimePos() (float64, error) {
	return p.getPropertyFloat64("time-pos")
}

// Duration is the length of the loaded file in seconds. It is unavailable
// until mpv has opened the file.
func (p *Player) Duration() (float64, error) {
	return p.getPropertyFloat64("duration")
}
