package scrubber

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []Event
}

func (r *recorder) SendScrubEvent(event Event) {
	r.events = append(r.events, event)
}

func (r *recorder) types() []EventType {
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

// 15 wide thumb on a 115 wide control leaves a 100 unit track
func newTestScrubber() (*Scrubber, *recorder) {
	s := New(15)
	s.Resize(115)
	rec := &recorder{}
	s.RegisterEventConsumer(rec)
	return s, rec
}

func TestTrackGeometry(t *testing.T) {
	s, _ := newTestScrubber()
	assert.Equal(t, 100.0, s.TrackWidth())
	assert.Equal(t, 7.5, s.ThumbCenter())

	s.Resize(10)
	assert.Equal(t, 0.0, s.TrackWidth(), "thumb wider than control leaves no track")
}

func TestSetValueIsSilent(t *testing.T) {
	s, rec := newTestScrubber()

	for _, v := range []float64{0, 0.25, 0.5, 1} {
		s.SetValue(v)
		assert.Equal(t, v, s.Value())
		assert.InDelta(t, v*100, s.FillWidth(), 1e-9)
	}
	assert.Empty(t, rec.events)
}

func TestSetValueClamps(t *testing.T) {
	s, _ := newTestScrubber()

	s.SetValue(-0.3)
	assert.Equal(t, 0.0, s.Value())

	s.SetValue(7)
	assert.Equal(t, 1.0, s.Value())
	assert.Equal(t, 100.0, s.FillWidth())

	s.SetValue(math.NaN())
	assert.Equal(t, 0.0, s.Value())

	s.SetValue(math.Inf(1))
	assert.Equal(t, 1.0, s.Value())
}

func TestResizeKeepsValue(t *testing.T) {
	s, _ := newTestScrubber()
	s.SetValue(0.4)

	s.Resize(215)
	assert.Equal(t, 0.4, s.Value())
	assert.InDelta(t, 80.0, s.FillWidth(), 1e-9)
}

func TestDragClampsAtBoundaries(t *testing.T) {
	s, rec := newTestScrubber()
	s.SetValue(0.5)

	s.BeginDrag()
	for _, dx := range []float64{-30, -1000, 12.5, 400, -0.5, 3, 1e9, -1e9} {
		s.DragBy(dx)
		assert.GreaterOrEqual(t, s.Value(), 0.0)
		assert.LessOrEqual(t, s.Value(), 1.0)
	}
	s.EndDrag()

	require.Len(t, rec.events, 10)
	assert.Equal(t, EventWillBegin, rec.events[0].Type)
	assert.Equal(t, EventEnded, rec.events[9].Type)
	for _, e := range rec.events[1:9] {
		assert.Equal(t, EventChanged, e.Type)
	}
}

func TestDragStopsExactlyAtEdge(t *testing.T) {
	s, rec := newTestScrubber()
	s.SetValue(0.1)

	s.DragBy(-25)
	assert.Equal(t, 0.0, s.Value())

	s.SetValue(0.9)
	s.DragBy(25)
	assert.Equal(t, 1.0, s.Value())

	require.Len(t, rec.events, 2)
	assert.Equal(t, 1.0, rec.events[1].Value)
}

func TestDragIsRelativeToFill(t *testing.T) {
	s, rec := newTestScrubber()
	s.SetValue(0.2)

	s.DragBy(30)
	assert.InDelta(t, 0.5, s.Value(), 1e-9)
	s.DragBy(-10)
	assert.InDelta(t, 0.4, s.Value(), 1e-9)
	assert.InDelta(t, 0.4, rec.events[1].Value, 1e-9)
}

func TestTap(t *testing.T) {
	s, rec := newTestScrubber()

	s.Tap(0)
	assert.Equal(t, 0.0, s.Value())

	s.Tap(100)
	assert.Equal(t, 1.0, s.Value())

	s.Tap(50)
	assert.InDelta(t, 0.5, s.Value(), 0.01)

	s.Tap(-20)
	assert.Equal(t, 0.0, s.Value())
	s.Tap(180)
	assert.Equal(t, 1.0, s.Value())

	assert.Equal(t, []EventType{EventChanged, EventChanged, EventChanged, EventChanged, EventChanged}, rec.types())
}

func TestZeroWidthTrack(t *testing.T) {
	s := New(15)
	rec := &recorder{}
	s.RegisterEventConsumer(rec)
	s.SetValue(0.3)

	s.BeginDrag()
	s.DragBy(10)
	s.Tap(4)
	s.EndDrag()

	assert.Equal(t, 0.3, s.Value())
	assert.False(t, math.IsNaN(s.FillWidth()))
	assert.Equal(t, []EventType{EventWillBegin, EventEnded}, rec.types())
}

func TestNoConsumer(t *testing.T) {
	s := New(1)
	s.Resize(11)
	assert.NotPanics(t, func() {
		s.BeginDrag()
		s.DragBy(3)
		s.EndDrag()
		s.Tap(5)
	})
	assert.Equal(t, 0.5, s.Value())
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "WillBegin", EventWillBegin.String())
	assert.Equal(t, "Changed", EventChanged.String())
	assert.Equal(t, "Ended", EventEnded.String())
	assert.Equal(t, "Unknown", EventType(42).String())
}
