// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"runtime/pprof"

	"github.com/spezifisch/pvp/logger"
	"github.com/spezifisch/pvp/mpvplayer"
	"github.com/spezifisch/pvp/playback"
	"github.com/spezifisch/pvp/remote"
	"github.com/spf13/viper"
)

var osExit = os.Exit  // A variable to allow mocking os.Exit in tests
var headlessMode bool // This can be set to true during tests
var testMode bool     // This can be set to true during tests, too

const DEVELOPMENT = "development"

// Name is shown in the status bar and used as MPRIS identity
var Name string = "pvp"

// Version is the program version; usually set from BuildInfo
var Version string = DEVELOPMENT

var requiredProperties = []string{"media.file"}

func setConfigDefaults() {
	viper.SetDefault("player.sample-interval", playback.DefaultSampleInterval)
	viper.SetDefault("player.seek-step", "5s")
	viper.SetDefault("video.output", "")
	viper.SetDefault("ui.thumb-color", "orange")
	viper.SetDefault("ui.fill-color", "orange")
	viper.SetDefault("ui.track-color", "lightgray")
	viper.SetDefault("remote.mpris", false)
	setKeyDefaults()
}

func readConfig(configFile *string) error {
	setConfigDefaults()

	if configFile != nil && *configFile != "" {
		// use custom config file
		viper.SetConfigFile(*configFile)
	} else {
		// lookup default dirs
		viper.SetConfigName("preview")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/preview")
		viper.AddConfigPath(".")
	}

	// read it; without a config file the defaults and arguments are enough
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	// validate
	for _, prop := range requiredProperties {
		if !viper.IsSet(prop) {
			return fmt.Errorf("config property %s is required", prop)
		}
	}

	return nil
}

// parseConfig takes the first non-flag argument as the media file.
func parseConfig() {
	path, err := filepath.Abs(flag.Arg(0))
	if err != nil {
		fmt.Printf("Invalid media path %q: %s\n", flag.Arg(0), err)
		fmt.Printf("Usage: %s <args> [media-file]\n", os.Args[0])
		osExit(1)
		return
	}
	viper.Set("media.file", path)
}

// return codes:
// 0 - OK
// 1 - generic errors
// 2 - main config errors
func main() {
	// parse flags and config
	help := flag.Bool("help", false, "Print usage")
	enableMpris := flag.Bool("mpris", false, "Enable MPRIS2")
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")
	configFile := flag.String("config", "", "use config `file`")
	version := flag.Bool("version", false, "print the pvp version and exit")

	flag.Parse()
	if *help {
		fmt.Printf("USAGE: %s <args> [media-file]\n", os.Args[0])
		flag.Usage()
		osExit(0)
		return
	}
	if Version == DEVELOPMENT {
		if bi, ok := debug.ReadBuildInfo(); ok {
			Version = bi.Main.Version
		}
	}
	if *version {
		fmt.Printf("pvp %s", Version)
		osExit(0)
		return
	}

	// cpu/memprofile code straight from https://pkg.go.dev/runtime/pprof
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	// config gathering
	if len(flag.Args()) > 0 {
		parseConfig()
	}

	if err := readConfig(configFile); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read configuration: %v\n", err)
		osExit(2)
		return
	}

	mediaFile := viper.GetString("media.file")
	if _, err := os.Stat(mediaFile); err != nil {
		fmt.Fprintf(os.Stderr, "Media file unavailable: %v\n", err)
		osExit(2)
		return
	}

	if headlessMode {
		fmt.Println("Running in headless mode for testing.")
		osExit(0)
		return
	}

	logger := logger.Init()

	// init mpv engine
	player, err := mpvplayer.NewPlayer(logger, mpvplayer.Options{
		VideoOutput: viper.GetString("video.output"),
	})
	if err != nil {
		fmt.Println("Unable to initialize mpv. Is mpv installed?")
		osExit(1)
		return
	}

	ui := InitGui(filepath.Base(mediaFile), player, logger)

	// init mpris2 player control (linux only but fails gracefully on other systems)
	if *enableMpris || viper.GetBool("remote.mpris") {
		mprisPlayer, err := remote.RegisterMprisPlayer(ui.coordinator, filepath.Base(mediaFile), logger)
		if err != nil {
			fmt.Printf("Unable to register MPRIS with DBUS: %s\n", err)
			fmt.Println("Try running without MPRIS")
			osExit(1)
			return
		}
		defer mprisPlayer.Close()
	}

	if testMode {
		fmt.Println("Running in test mode for testing.")
		osExit(0x23420001)
		return
	}

	// run main loop
	if err := ui.Run(context.Background(), mediaFile); err != nil {
		panic(err)
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		runtime.GC()    // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
