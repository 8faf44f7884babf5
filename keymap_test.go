package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/spezifisch/pvp/logger"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func withKeyDefaults(t *testing.T) {
	t.Helper()
	viper.Reset()
	setKeyDefaults()
	t.Cleanup(viper.Reset)
}

func TestKeyName(t *testing.T) {
	assert.Equal(t, "p", keyName(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	assert.Equal(t, "Q", keyName(tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone)))
	assert.Equal(t, "space", keyName(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.Equal(t, "left", keyName(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)))
	assert.Equal(t, "right", keyName(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone)))
}

func TestNormalizeKeyName(t *testing.T) {
	assert.Equal(t, "Q", normalizeKeyName("Q"))
	assert.Equal(t, "left", normalizeKeyName("Left"))
	assert.Equal(t, "space", normalizeKeyName("Space"))
	assert.Equal(t, "space", normalizeKeyName(" "))
	assert.Equal(t, "", normalizeKeyName("  "))
}

func TestDefaultKeymap(t *testing.T) {
	withKeyDefaults(t)

	km := loadKeymap(&logger.Logger{})

	assert.Equal(t, keymap{
		"p": cmdTogglePlay, "space": cmdTogglePlay,
		",": cmdSeekBack, "left": cmdSeekBack,
		".": cmdSeekForward, "right": cmdSeekForward,
		"b": cmdBack,
		"1": cmdPagePreview,
		"2": cmdPageLog,
		"?": cmdHelp,
		"Q": cmdQuit,
	}, km)
}

func TestKeymapFromConfig(t *testing.T) {
	withKeyDefaults(t)
	viper.Set("keys.quit", []string{"Left", "x"})

	log := logger.Init()
	km := loadKeymap(log)

	// quit comes later and takes the key
	assert.Equal(t, cmdQuit, km["left"])
	assert.Equal(t, cmdQuit, km["x"])
	assert.NotContains(t, km, "Q")
	assert.Equal(t, cmdSeekBack, km[","])

	select {
	case msg := <-log.Prints:
		assert.Contains(t, msg, "seek-back")
	default:
		assert.Fail(t, "conflict was not logged")
	}
}

func TestKeymapHelpText(t *testing.T) {
	withKeyDefaults(t)
	viper.Set("keys.quit", []string{"Left"})

	help := loadKeymap(&logger.Logger{}).helpText()

	assert.Contains(t, help, "p/space   play/pause\n")
	assert.Contains(t, help, ",         seek back\n")
	assert.Contains(t, help, "left      quit\n")
}
