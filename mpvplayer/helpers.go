// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package mpvplayer

import (
	"errors"

	"github.com/supersonic-app/go-mpv"
)

var ErrPropertyUnavailable = errors.New("property unavailable")

func (p *Player) getPropertyFloat64(name string) (float64, error) {
	value, err := p.instance.GetProperty(name, mpv.FORMAT_DOUBLE)
	if err != nil {
		return 0, err
	} else if value == nil {
		return 0, ErrPropertyUnavailable
	}
	return value.(float64), nil
}

func (p *Player) getPropertyBool(name string) (bool, error) {
	value, err := p.instance.GetProperty(name, mpv.FORMAT_FLAG)
	if err != nil {
		return false, err
	} else if value == nil {
		return false, ErrPropertyUnavailable
	}
	return value.(bool), nil
}
