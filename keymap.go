// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/spezifisch/pvp/logger"
	"github.com/spf13/viper"
)

// commands that can be bound in the [keys] config table
const (
	cmdTogglePlay  = "toggle"
	cmdSeekBack    = "seek-back"
	cmdSeekForward = "seek-forward"
	cmdBack        = "back"
	cmdPagePreview = "page-preview"
	cmdPageLog     = "page-log"
	cmdHelp        = "help"
	cmdQuit        = "quit"
)

type keyBinding struct {
	command string
	keys    []string
	help    string
}

// defaultBindings also fixes the order in which conflicting bindings are
// resolved: a later command takes the key.
var defaultBindings = []keyBinding{
	{cmdTogglePlay, []string{"p", "space"}, "play/pause"},
	{cmdSeekBack, []string{",", "left"}, "seek back"},
	{cmdSeekForward, []string{".", "right"}, "seek forward"},
	{cmdBack, []string{"b"}, "back"},
	{cmdPagePreview, []string{"1"}, "preview page"},
	{cmdPageLog, []string{"2"}, "log page"},
	{cmdHelp, []string{"?"}, "help"},
	{cmdQuit, []string{"Q"}, "quit"},
}

func setKeyDefaults() {
	for _, b := range defaultBindings {
		viper.SetDefault("keys."+b.command, b.keys)
	}
}

// keymap maps key names (see keyName) to commands.
type keymap map[string]string

func loadKeymap(logger logger.LoggerInterface) keymap {
	km := make(keymap)
	for _, b := range defaultBindings {
		for _, key := range viper.GetStringSlice("keys." + b.command) {
			name := normalizeKeyName(key)
			if name == "" {
				continue
			}
			if prev, ok := km[name]; ok && prev != b.command {
				logger.Printf("keys: %q is bound to %s and %s, using %s", key, prev, b.command, b.command)
			}
			km[name] = b.command
		}
	}
	return km
}

// keyName names a key event the way bindings are written: a typed rune
// as itself, space and special keys by their lower-case tcell name.
func keyName(event *tcell.EventKey) string {
	if event.Key() == tcell.KeyRune {
		if event.Rune() == ' ' {
			return "space"
		}
		return string(event.Rune())
	}
	if name, ok := tcell.KeyNames[event.Key()]; ok {
		return strings.ToLower(name)
	}
	return ""
}

func normalizeKeyName(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if utf8.RuneCountInString(key) == 1 {
		return key
	}
	return strings.ToLower(key)
}

// helpText lists every command with the keys that still reach it.
func (km keymap) helpText() string {
	var sb strings.Builder
	for _, b := range defaultBindings {
		var keys []string
		for _, key := range viper.GetStringSlice("keys." + b.command) {
			name := normalizeKeyName(key)
			if name != "" && km[name] == b.command {
				keys = append(keys, name)
			}
		}
		if len(keys) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%-9s %s\n", strings.Join(keys, "/"), b.help)
	}
	return sb.String()
}
