// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"github.com/supersonic-app/go-mpv"
)

func (p *Player) EventLoop() {
	if err := p.instance.ObserveProperty(0, "time-pos", mpv.FORMAT_DOUBLE); err != nil {
		p.logger.PrintError("Observe1", err)
	}
	if err := p.instance.ObserveProperty(0, "duration", mpv.FORMAT_DOUBLE); err != nil {
		p.logger.PrintError("Observe2", err)
	}
	if err := p.instance.ObserveProperty(0, "eof-reached", mpv.FORMAT_FLAG); err != nil {
		p.logger.PrintError("Observe3", err)
	}

	for evt := range p.mpvEvents {
		if evt == nil {
			// quit signal
			break
		} else if evt.Event_Id == mpv.EVENT_PROPERTY_CHANGE {
			// the changed property isn't reported in a usable way, so just check eof-reached every time
			eof, err := p.getPropertyBool("eof-reached")
			if err != nil {
				continue
			}
			p.handleEndReached(eof)
		} else if evt.Event_Id == mpv.EVENT_FILE_LOADED {
			position, err := p.TimePos()
			if err != nil {
				p.logger.Printf("mpv.EventLoop (%s): time-pos -- %s", evt.Event_Id.String(), err.Error())
			}
			duration, err := p.Duration()
			if err != nil {
				p.logger.Printf("mpv.EventLoop (%s): duration -- %s", evt.Event_Id.String(), err.Error())
			}
			p.logger.Printf("mpv.EventLoop: loaded (%.1fs)", duration)

			p.handleFileLoaded(StatusData{
				Position: position,
				Duration: duration,
			})
		} else if evt.Event_Id == mpv.EVENT_END_FILE {
			// with keep-open this only happens on errors or replace
			p.logger.Print("mpv.EventLoop: file closed")
		} else if evt.Event_Id == mpv.EVENT_IDLE || evt.Event_Id == mpv.EVENT_NONE {
			continue
		} else {
			p.logger.Printf("mpv.EventLoop: unhandled event id %v", evt.Event_Id)
			continue
		}
	}
}

// handleFileLoaded re-arms the end-of-file edge for the new file and
// hands the clock snapshot to the consumer.
func (p *Player) handleFileLoaded(status StatusData) {
	p.endReached = false
	p.sendGuiDataEvent(EventFileLoaded, status)
}

// handleEndReached forwards only the rising edge of eof-reached.
func (p *Player) handleEndReached(eof bool) {
	if eof == p.endReached {
		return
	}
	p.endReached = eof
	if eof {
		p.sendGuiEvent(EventEndReached)
	}
}

func (p *Player) sendGuiEvent(typ UiEventType) {
	p.sendGuiDataEvent(typ, nil)
}

func (p *Player) sendGuiDataEvent(typ UiEventType, data interface{}) {
	if p.eventConsumer != nil {
		p.eventConsumer.SendEvent(UiEvent{
			Type: typ,
			Data: data,
		})
	}
}
