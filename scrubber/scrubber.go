// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

// Package scrubber implements a seek bar whose thumb position is a
// progress value in [0,1]. The geometry lives in Scrubber, which knows
// nothing about terminals; Widget draws it with tview and feeds it mouse
// gestures.
package scrubber

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/samber/lo"
)

type EventType int

const (
	// user started dragging the thumb, Value: value before the drag
	EventWillBegin EventType = iota
	// value changed by a drag step or a tap, Value: new value
	EventChanged
	// drag released or cancelled, Value: final value
	EventEnded
)

func (t EventType) String() string {
	switch t {
	case EventWillBegin:
		return "WillBegin"
	case EventChanged:
		return "Changed"
	case EventEnded:
		return "Ended"
	default:
		return "Unknown"
	}
}

type Event struct {
	Type  EventType
	Value float64
}

type EventConsumer interface {
	// receives gestures from the scrubber (this package) in the order they happened
	SendScrubEvent(event Event)
}

// Scrubber is the seek bar model. The track is inset by half the thumb
// diameter on both sides so the thumb never overhangs the bounds.
type Scrubber struct {
	value         float64
	width         float64
	thumbDiameter float64
	fillWidth     float64

	ThumbColor tcell.Color
	FillColor  tcell.Color
	TrackColor tcell.Color

	eventConsumer EventConsumer
}

func New(thumbDiameter float64) *Scrubber {
	if thumbDiameter < 0 || math.IsNaN(thumbDiameter) {
		thumbDiameter = 0
	}
	return &Scrubber{
		thumbDiameter: thumbDiameter,
		ThumbColor:    tcell.ColorWhite,
		FillColor:     tcell.ColorGray,
		TrackColor:    tcell.ColorGray,
	}
}

// RegisterEventConsumer sets the single receiver of gesture events.
func (s *Scrubber) RegisterEventConsumer(consumer EventConsumer) {
	s.eventConsumer = consumer
}

func (s *Scrubber) Value() float64 {
	return s.value
}

// SetValue moves the thumb without emitting an event.
func (s *Scrubber) SetValue(v float64) {
	s.value = clamp01(v)
	s.layout()
}

// Resize sets the control width and re-lays out the fill for the current value.
func (s *Scrubber) Resize(width float64) {
	if width < 0 || math.IsNaN(width) {
		width = 0
	}
	s.width = width
	s.layout()
}

func (s *Scrubber) Width() float64 {
	return s.width
}

func (s *Scrubber) ThumbDiameter() float64 {
	return s.thumbDiameter
}

// TrackWidth is the interior length the thumb center can travel.
func (s *Scrubber) TrackWidth() float64 {
	return math.Max(0, s.width-s.thumbDiameter)
}

func (s *Scrubber) FillWidth() float64 {
	return s.fillWidth
}

// ThumbCenter is the thumb position measured from the control's left edge.
func (s *Scrubber) ThumbCenter() float64 {
	return s.thumbDiameter/2 + s.fillWidth
}

func (s *Scrubber) BeginDrag() {
	s.send(EventWillBegin)
}

// DragBy moves the thumb by dx relative to its current fill width.
func (s *Scrubber) DragBy(dx float64) {
	track := s.TrackWidth()
	if track <= 0 || math.IsNaN(dx) {
		return
	}
	s.SetValue(lo.Clamp(s.fillWidth+dx, 0, track) / track)
	s.send(EventChanged)
}

func (s *Scrubber) EndDrag() {
	s.send(EventEnded)
}

// Tap jumps to x, measured from the start of the track.
func (s *Scrubber) Tap(x float64) {
	track := s.TrackWidth()
	if track <= 0 || math.IsNaN(x) {
		return
	}
	s.SetValue(x / track)
	s.send(EventChanged)
}

func (s *Scrubber) layout() {
	s.fillWidth = s.value * s.TrackWidth()
}

func (s *Scrubber) send(typ EventType) {
	if s.eventConsumer != nil {
		s.eventConsumer.SendScrubEvent(Event{
			Type:  typ,
			Value: s.value,
		})
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return lo.Clamp(v, 0, 1)
}
