package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spezifisch/pvp/logger"
	"github.com/spezifisch/pvp/mpvplayer"
	"github.com/spezifisch/pvp/playback"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

type fakeEngine struct {
	mu    sync.Mutex
	calls []string
	quit  bool
}

func (e *fakeEngine) record(call string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, call)
	return nil
}

func (e *fakeEngine) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

func (e *fakeEngine) Load(uri string) error {
	return e.record("load " + uri)
}

func (e *fakeEngine) Play() error {
	return e.record("play")
}

func (e *fakeEngine) Pause() error {
	return e.record("pause")
}

func (e *fakeEngine) SeekAbsolute(seconds float64) error {
	return e.record("seek")
}

func (e *fakeEngine) TimePos() (float64, error) {
	return 30, nil
}

func (e *fakeEngine) Duration() (float64, error) {
	return 120, nil
}

func (e *fakeEngine) RegisterEventConsumer(mpvplayer.EventConsumer) {}

func (e *fakeEngine) EventLoop() {}

func (e *fakeEngine) Quit() {
	e.quit = true
}

func newTestUi(t *testing.T) (*Ui, *fakeEngine) {
	t.Helper()
	viper.Reset()
	setConfigDefaults()
	t.Cleanup(viper.Reset)

	engine := &fakeEngine{}
	ui := InitGui("clip.mp4", engine, logger.Init())
	return ui, engine
}

func keyRune(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestFormatStatus(t *testing.T) {
	assert.Contains(t, formatStatus("clip.mp4", playback.Playing), "Playing")
	assert.Contains(t, formatStatus("clip.mp4", playback.Paused), "Paused")
	assert.Contains(t, formatStatus("", playback.Stopped), "Stopped")
	assert.Contains(t, formatStatus("[red]x", playback.Stopped), "[red[]x")
}

func TestPendingViewAppliesLatest(t *testing.T) {
	ui, _ := newTestUi(t)

	ui.SetProgress(0.25)
	ui.SetProgress(0.5)
	ui.SetTimes("00:30", "-01:30")
	ui.SetPlaybackState(playback.Playing)

	// all updates share one redraw request
	assert.Len(t, ui.redraw, 1)

	ui.applyPending(ui.pending.take())

	assert.Equal(t, 0.5, ui.previewPage.scrubber.Scrubber().Value())
	assert.Equal(t, "00:30", ui.previewPage.elapsed.GetText(true))
	assert.Equal(t, "-01:30", ui.previewPage.remaining.GetText(true))
	assert.Equal(t, glyphPause, ui.previewPage.playPauseButton.GetLabel())
	assert.Contains(t, ui.startStopStatus.GetText(false), "Playing")

	// nothing left to apply
	v := ui.pending.take()
	assert.False(t, v.hasProgress || v.hasTimes || v.hasState)

	ui.SetPlaybackState(playback.Paused)
	ui.applyPending(ui.pending.take())
	assert.Equal(t, glyphPlay, ui.previewPage.playPauseButton.GetLabel())
	assert.Equal(t, 0.5, ui.previewPage.scrubber.Scrubber().Value())
}

func TestKeysDriveCoordinator(t *testing.T) {
	ui, engine := newTestUi(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ui.coordinator.Run(ctx)

	assert.Nil(t, ui.handlePageInput(keyRune('p')))
	assert.Nil(t, ui.handlePageInput(keyRune(' ')))
	assert.Nil(t, ui.handlePageInput(keyRune('.')))

	assert.Eventually(t, func() bool {
		return len(engine.Calls()) == 3
	}, time.Second, time.Millisecond)
	assert.Equal(t, []string{"play", "pause", "seek"}, engine.Calls())
}

func TestReboundKeysDriveCoordinator(t *testing.T) {
	viper.Reset()
	setConfigDefaults()
	viper.Set("keys.toggle", []string{"t"})
	t.Cleanup(viper.Reset)

	engine := &fakeEngine{}
	ui := InitGui("clip.mp4", engine, logger.Init())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ui.coordinator.Run(ctx)

	// the default key is gone
	event := keyRune('p')
	assert.Equal(t, event, ui.handlePageInput(event))

	assert.Nil(t, ui.handlePageInput(keyRune('t')))
	assert.Nil(t, ui.handlePageInput(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)))

	assert.Eventually(t, func() bool {
		return len(engine.Calls()) == 2
	}, time.Second, time.Millisecond)
	assert.Equal(t, []string{"play", "seek"}, engine.Calls())
}

func TestPageKeys(t *testing.T) {
	ui, _ := newTestUi(t)

	assert.Nil(t, ui.handlePageInput(keyRune('2')))
	assert.Equal(t, PageLog, ui.menuWidget.GetActivePage())

	assert.Nil(t, ui.handlePageInput(keyRune('1')))
	assert.Equal(t, PagePreview, ui.menuWidget.GetActivePage())

	ui.menuWidget.SetActivePage("nope")
	assert.Equal(t, PagePreview, ui.menuWidget.GetActivePage())

	// unknown keys pass through
	event := keyRune('z')
	assert.Equal(t, event, ui.handlePageInput(event))
}

func TestHelpModalTakesKeys(t *testing.T) {
	ui, engine := newTestUi(t)

	assert.Nil(t, ui.handlePageInput(keyRune('?')))
	assert.True(t, ui.helpWidget.visible)

	// while help is open keys go to the modal
	event := keyRune('p')
	assert.Equal(t, event, ui.handlePageInput(event))
	assert.Empty(t, engine.Calls())

	ui.CloseHelp()
	assert.False(t, ui.helpWidget.visible)
}

func TestBackLogs(t *testing.T) {
	ui, _ := newTestUi(t)

	assert.Nil(t, ui.handlePageInput(keyRune('b')))

	select {
	case msg := <-ui.logger.Prints:
		assert.Equal(t, "back: no previous screen", msg)
	default:
		assert.Fail(t, "back did not log")
	}
}

func TestLogPageIsCapped(t *testing.T) {
	ui, _ := newTestUi(t)
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

	for i := 0; i < logPageLines+20; i++ {
		ui.logPage.insert(at, "line")
	}
	ui.logPage.insert(at, "newest")

	assert.Equal(t, logPageLines, ui.logPage.logList.GetItemCount())
	text, _ := ui.logPage.logList.GetItemText(0)
	assert.Equal(t, "(12:00:00) newest", text)
}

func TestQuitStopsEngine(t *testing.T) {
	ui, engine := newTestUi(t)

	ui.Quit()

	assert.True(t, engine.quit)
}
