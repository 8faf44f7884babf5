// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package playback keeps the scrubber, the time labels and the transport
// button in sync with the media player.
//
// Everything the Coordinator does happens on the goroutine running Run:
// scrubber gestures, player events, transport commands and sampler ticks
// are queued on channels and handled one at a time, each to completion.
// While the user drags the thumb the sampler does not touch the view, so
// the two directions of synchronization never interleave.
package playback

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"github.com/spezifisch/pvp/logger"
	"github.com/spezifisch/pvp/mpvplayer"
	"github.com/spezifisch/pvp/scrubber"
)

const (
	DefaultSampleInterval = time.Second / 30

	queueSize = 16
)

// MediaPlayer is the subset of the mpv player the coordinator drives.
type MediaPlayer interface {
	Load(uri string) error
	Play() error
	Pause() error
	SeekAbsolute(seconds float64) error
	TimePos() (float64, error)
	Duration() (float64, error)
	RegisterEventConsumer(consumer mpvplayer.EventConsumer)
}

// View receives display updates. Calls come from the Run goroutine.
type View interface {
	SetProgress(value float64)
	SetTimes(elapsed, remaining string)
	SetPlaybackState(state PlaybackState)
}

type commandType int

const (
	commandLoad commandType = iota
	commandPlay
	commandPause
	commandToggle
	commandSeekRelative
	commandSeekTo
)

type command struct {
	typ     commandType
	uri     string
	seconds float64
}

type Coordinator struct {
	player   MediaPlayer
	view     View
	logger   logger.LoggerInterface
	interval time.Duration

	commands     chan command
	scrubEvents  chan scrubber.Event
	playerEvents chan mpvplayer.UiEvent
	done         chan struct{}

	cbOnStateChange []func(state PlaybackState)

	// last state, readable from any goroutine
	published atomic.Int32

	// owned by the Run goroutine
	state     PlaybackState
	observing bool
	scrubbing bool
	// end of media hit during a drag, looped when the drag ends
	endPending bool
	sampler    *time.Ticker
}

var (
	_ scrubber.EventConsumer  = (*Coordinator)(nil)
	_ mpvplayer.EventConsumer = (*Coordinator)(nil)
)

// New creates a coordinator and subscribes it to the player's events.
// A non-positive interval selects DefaultSampleInterval.
func New(player MediaPlayer, view View, logger logger.LoggerInterface, interval time.Duration) *Coordinator {
	if interval <= 0 {
		interval = DefaultSampleInterval
	}

	c := &Coordinator{
		player:   player,
		view:     view,
		logger:   logger,
		interval: interval,

		commands:     make(chan command, queueSize),
		scrubEvents:  make(chan scrubber.Event, queueSize),
		playerEvents: make(chan mpvplayer.UiEvent, queueSize),
		done:         make(chan struct{}),

		state: Stopped,
	}

	player.RegisterEventConsumer(c)
	return c
}

// OnStateChange registers a callback run on every play/pause transition.
// Register callbacks before calling Run.
func (c *Coordinator) OnStateChange(cb func(state PlaybackState)) {
	c.cbOnStateChange = append(c.cbOnStateChange, cb)
}

// State returns the most recently applied playback state.
func (c *Coordinator) State() PlaybackState {
	return PlaybackState(c.published.Load())
}

// Run handles queued work until ctx is cancelled, then releases the
// sampler and stops observing the end of media.
func (c *Coordinator) Run(ctx context.Context) {
	defer close(c.done)
	defer c.teardown()

	for {
		var tick <-chan time.Time
		if c.sampler != nil {
			tick = c.sampler.C
		}

		select {
		case <-ctx.Done():
			return

		case cmd := <-c.commands:
			c.handleCommand(cmd)

		case event := <-c.scrubEvents:
			c.handleScrubEvent(event)

		case event := <-c.playerEvents:
			c.handlePlayerEvent(event)

		case <-tick:
			c.sample()
		}
	}
}

// LoadSource loads uri, starts playing it, and starts sampling its clock.
func (c *Coordinator) LoadSource(uri string) {
	c.enqueue(command{typ: commandLoad, uri: uri})
}

func (c *Coordinator) Play() {
	c.enqueue(command{typ: commandPlay})
}

func (c *Coordinator) Pause() {
	c.enqueue(command{typ: commandPause})
}

func (c *Coordinator) TogglePlayPause() {
	c.enqueue(command{typ: commandToggle})
}

// SeekRelative moves the playback position by seconds, within the file.
func (c *Coordinator) SeekRelative(seconds float64) {
	c.enqueue(command{typ: commandSeekRelative, seconds: seconds})
}

// SeekTo moves the playback position to seconds from the start.
func (c *Coordinator) SeekTo(seconds float64) {
	c.enqueue(command{typ: commandSeekTo, seconds: seconds})
}

// SendScrubEvent queues a scrubber gesture. Called from the UI goroutine.
func (c *Coordinator) SendScrubEvent(event scrubber.Event) {
	select {
	case c.scrubEvents <- event:
	case <-c.done:
	}
}

// SendEvent queues a player event. Called from the mpv event goroutine.
func (c *Coordinator) SendEvent(event mpvplayer.UiEvent) {
	select {
	case c.playerEvents <- event:
	case <-c.done:
	}
}

func (c *Coordinator) enqueue(cmd command) {
	select {
	case c.commands <- cmd:
	case <-c.done:
	}
}

func (c *Coordinator) handleCommand(cmd command) {
	switch cmd.typ {
	case commandLoad:
		c.loadSource(cmd.uri)

	case commandPlay:
		c.play()

	case commandPause:
		c.pause()

	case commandToggle:
		if c.state == Playing {
			c.pause()
		} else {
			c.play()
		}

	case commandSeekRelative:
		position, err := c.player.TimePos()
		if err != nil {
			c.logger.PrintError("SeekRelative", err)
			return
		}
		c.seekTo(position + cmd.seconds)

	case commandSeekTo:
		c.seekTo(cmd.seconds)

	default:
		c.logger.Printf("coordinator: unhandled command %v", cmd.typ)
	}
}

func (c *Coordinator) handleScrubEvent(event scrubber.Event) {
	switch event.Type {
	case scrubber.EventWillBegin:
		// stop the sampler from fighting the drag
		c.scrubbing = true
		c.pause()

	case scrubber.EventChanged:
		if event.Value < 1 {
			// dragged back off the end, mpv re-arms eof-reached
			c.endPending = false
		}
		c.seekToRatio(event.Value)

	case scrubber.EventEnded:
		c.scrubbing = false
		if c.endPending {
			c.endPending = false
			c.restart()
			return
		}
		c.play()

	default:
		c.logger.Printf("coordinator: unhandled scrub event %v", event.Type)
	}
}

func (c *Coordinator) handlePlayerEvent(event mpvplayer.UiEvent) {
	switch event.Type {
	case mpvplayer.EventFileLoaded:
		if c.scrubbing {
			return
		}
		if status, ok := event.Data.(mpvplayer.StatusData); ok {
			c.render(status.Position, status.Duration)
		} else {
			c.refresh()
		}

	case mpvplayer.EventEndReached:
		if !c.observing {
			return
		}
		if c.scrubbing {
			// the drag owns the player until it ends
			c.endPending = true
			return
		}
		c.restart()

	default:
		c.logger.Printf("coordinator: unhandled player event %v", event.Type)
	}
}

func (c *Coordinator) loadSource(uri string) {
	if err := c.player.Load(uri); err != nil {
		c.logger.PrintError("Load", err)
		return
	}
	c.logger.Printf("coordinator: loaded %s", uri)

	c.play()
	c.startSampler()
	c.observing = true
}

// restart loops back to the start of the media.
func (c *Coordinator) restart() {
	c.logger.Print("coordinator: end of media, looping")
	if err := c.player.SeekAbsolute(0); err != nil {
		c.logger.PrintError("loop seek", err)
	}
	c.play()
}

func (c *Coordinator) play() {
	if err := c.player.Play(); err != nil {
		c.logger.PrintError("Play", err)
	}
	c.setState(Playing)
}

func (c *Coordinator) pause() {
	if err := c.player.Pause(); err != nil {
		c.logger.PrintError("Pause", err)
	}
	c.setState(Paused)
}

func (c *Coordinator) setState(state PlaybackState) {
	c.state = state
	c.published.Store(int32(state))
	c.view.SetPlaybackState(state)

	for _, cb := range c.cbOnStateChange {
		cb(state)
	}
}

// seekToRatio seeks to the fraction value of the duration. Nothing happens
// while the duration is unknown.
func (c *Coordinator) seekToRatio(value float64) {
	duration, ok := c.duration()
	if !ok {
		return
	}
	if err := c.player.SeekAbsolute(duration * value); err != nil {
		c.logger.PrintError("Seek", err)
	}
}

func (c *Coordinator) seekTo(seconds float64) {
	duration, ok := c.duration()
	if !ok {
		return
	}
	seconds = lo.Clamp(seconds, 0, duration)
	if err := c.player.SeekAbsolute(seconds); err != nil {
		c.logger.PrintError("Seek", err)
	}
}

func (c *Coordinator) duration() (float64, bool) {
	duration, err := c.player.Duration()
	if err != nil || duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0, false
	}
	return duration, true
}

func (c *Coordinator) startSampler() {
	if c.sampler != nil {
		return
	}
	c.sampler = time.NewTicker(c.interval)
}

func (c *Coordinator) sample() {
	if c.scrubbing {
		return
	}
	c.refresh()
}

// refresh pushes the player clock into the view. It leaves the view
// untouched when the clock has no well-defined ratio yet.
func (c *Coordinator) refresh() {
	duration, ok := c.duration()
	if !ok {
		return
	}
	position, err := c.player.TimePos()
	if err != nil {
		return
	}
	c.render(position, duration)
}

func (c *Coordinator) render(position, duration float64) {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return
	}
	ratio := position / duration
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return
	}

	c.view.SetProgress(ratio)
	c.view.SetTimes(FormatElapsed(position), FormatRemaining(duration-position))
}

func (c *Coordinator) teardown() {
	if c.sampler != nil {
		c.sampler.Stop()
		c.sampler = nil
	}
	c.observing = false
	c.endPending = false
}
