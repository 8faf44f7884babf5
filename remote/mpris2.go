// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package remote

import (
	"errors"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/godbus/dbus/v5/prop"
	"github.com/google/uuid"
	"github.com/spezifisch/pvp/logger"
	"github.com/spezifisch/pvp/playback"
)

const (
	mprisPath        = "/org/mpris/MediaPlayer2"
	mprisPlayerIface = "org.mpris.MediaPlayer2.Player"
	mprisName        = "org.mpris.MediaPlayer2.pvp"
)

type MprisPlayer struct {
	dbus    *dbus.Conn
	props   *prop.Properties
	player  ControlledPlayer
	logger  logger.LoggerInterface
	trackID dbus.ObjectPath
}

// RegisterMprisPlayer exports player on the session bus. title is shown by
// MPRIS clients as the track title.
func RegisterMprisPlayer(player ControlledPlayer, title string, logger_ logger.LoggerInterface) (mpp *MprisPlayer, err error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return
	}

	mpp = &MprisPlayer{
		dbus:    conn,
		player:  player,
		logger:  logger_,
		trackID: newTrackID(),
	}

	err = conn.ExportAll(mpp, mprisPath, mprisPlayerIface)
	if err != nil {
		return
	}

	metadata := map[string]interface{}{
		"mpris:trackid": mpp.trackID,
		"xesam:title":   title,
	}

	var mprisPlayer = map[string]*prop.Prop{
		"CanControl":     {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoNext":      {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanGoPrevious":  {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPause":       {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanPlay":        {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanSeek":        {Value: true, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"LoopStatus":     {Value: "Track", Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Metadata":       {Value: metadata, Writable: false, Emit: prop.EmitTrue, Callback: nil},
		"PlaybackStatus": {Value: playbackStatus(player.State()), Writable: false, Emit: prop.EmitTrue, Callback: nil},
	}

	var mediaPlayer = map[string]*prop.Prop{
		"CanQuit":             {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"CanRaise":            {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"HasTrackList":        {Value: false, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"Identity":            {Value: "pvp", Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedUriSchemes": {Value: []string{"file"}, Writable: false, Emit: prop.EmitFalse, Callback: nil},
		"SupportedMimeTypes":  {Value: []string{}, Writable: false, Emit: prop.EmitFalse, Callback: nil},
	}

	mpp.props, err = prop.Export(
		conn,
		mprisPath,
		map[string]map[string]*prop.Prop{
			"org.mpris.MediaPlayer2": mediaPlayer,
			mprisPlayerIface:         mprisPlayer,
		},
	)
	if err != nil {
		return
	}

	n := &introspect.Node{
		Name: mprisPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			prop.IntrospectData,
			{
				Name:       mprisPlayerIface,
				Methods:    introspect.Methods(mpp),
				Properties: mpp.props.Introspection(mprisPlayerIface), // we implement the standard interface
			},
		},
	}
	err = conn.Export(introspect.NewIntrospectable(n), mprisPath, "org.freedesktop.DBus.Introspectable")
	if err != nil {
		return
	}

	reply, err := conn.RequestName(mprisName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		err = errors.New("name already owned")
		return
	}

	player.OnStateChange(mpp.onStateChange)
	return
}

func (m *MprisPlayer) Close() {
	if err := m.dbus.Close(); err != nil {
		m.logger.PrintError("mpp Close", err)
	}
}

func (m *MprisPlayer) onStateChange(state playback.PlaybackState) {
	if m.props == nil {
		return
	}
	m.props.SetMust(mprisPlayerIface, "PlaybackStatus", playbackStatus(state))
}

// Mandatory functions

// there is no stopped state in a looping preview, so stop holds the frame
func (m *MprisPlayer) Stop() {
	m.player.Pause()
}

func (m *MprisPlayer) Next() {
	m.logger.Print("mpp Next: single file, ignored")
}

func (m *MprisPlayer) Previous() {
	m.logger.Print("mpp Previous: single file, ignored")
}

func (m *MprisPlayer) Pause() {
	m.player.Pause()
}

func (m *MprisPlayer) Play() {
	m.player.Play()
}

func (m *MprisPlayer) PlayPause() {
	m.player.TogglePlayPause()
}

// Seek moves the position by offset microseconds.
func (m *MprisPlayer) Seek(offset int64) {
	m.player.SeekRelative(microsecondsToSeconds(offset))
}

// SetPosition moves to position microseconds if trackId is the current track.
func (m *MprisPlayer) SetPosition(trackId dbus.ObjectPath, position int64) {
	if trackId != m.trackID {
		m.logger.Printf("mpp SetPosition: stale track %s", trackId)
		return
	}
	if position < 0 {
		return
	}
	m.player.SeekTo(microsecondsToSeconds(position))
}

func playbackStatus(state playback.PlaybackState) string {
	switch state {
	case playback.Playing:
		return "Playing"
	case playback.Paused:
		return "Paused"
	default:
		return "Stopped"
	}
}

func microsecondsToSeconds(us int64) float64 {
	return (time.Duration(us) * time.Microsecond).Seconds()
}

func newTrackID() dbus.ObjectPath {
	return dbus.ObjectPath("/org/spezifisch/pvp/track/" + strings.ReplaceAll(uuid.NewString(), "-", ""))
}
