package mpvplayer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type eventRecorder struct {
	events []UiEvent
}

func (r *eventRecorder) SendEvent(event UiEvent) {
	r.events = append(r.events, event)
}

func TestEndReachedFiresOncePerPlaythrough(t *testing.T) {
	rec := &eventRecorder{}
	p := &Player{}
	p.RegisterEventConsumer(rec)

	// property changes keep reporting eof while the last frame is held
	for _, eof := range []bool{false, false, true, true, true} {
		p.handleEndReached(eof)
	}
	assert.Len(t, rec.events, 1)
	assert.Equal(t, EventEndReached, rec.events[0].Type)
	assert.Nil(t, rec.events[0].Data)

	// seek to start clears eof and re-arms the edge
	for _, eof := range []bool{false, false, true} {
		p.handleEndReached(eof)
	}
	assert.Len(t, rec.events, 2)
}

func TestFileLoadedRearmsEndReached(t *testing.T) {
	rec := &eventRecorder{}
	p := &Player{}
	p.RegisterEventConsumer(rec)

	p.handleEndReached(true)

	// a replacing load can start while eof is still held
	p.handleFileLoaded(StatusData{Position: 0, Duration: 42})
	assert.False(t, p.endReached)
	p.handleEndReached(true)

	assert.Len(t, rec.events, 3)
	assert.Equal(t, EventFileLoaded, rec.events[1].Type)
	assert.Equal(t, StatusData{Position: 0, Duration: 42}, rec.events[1].Data)
	assert.Equal(t, EventEndReached, rec.events[2].Type)
}

func TestEventsWithoutConsumer(t *testing.T) {
	p := &Player{}
	assert.NotPanics(t, func() {
		p.handleEndReached(true)
	})
	assert.True(t, p.endReached)
}

func TestUiEventTypeString(t *testing.T) {
	assert.Equal(t, "FileLoaded", EventFileLoaded.String())
	assert.Equal(t, "EndReached", EventEndReached.String())
	assert.Equal(t, "Unknown", UiEventType(9).String())
}
