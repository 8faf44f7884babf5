// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package logger

import "fmt"

const printBufferSize = 100

// Logger hands log lines to the UI through Prints. Lines are dropped while
// the buffer is full so that a stalled UI never blocks the playback loop.
type Logger struct {
	Prints chan string
}

var _ LoggerInterface = (*Logger)(nil)

func Init() *Logger {
	return &Logger{make(chan string, printBufferSize)}
}

func (l *Logger) Print(s string) {
	if l.Prints == nil {
		return
	}
	select {
	case l.Prints <- s:
	default:
	}
}

func (l *Logger) Printf(s string, as ...interface{}) {
	l.Print(fmt.Sprintf(s, as...))
}

func (l *Logger) PrintError(source string, err error) {
	l.Printf("Error(%s) -> %s", source, err.Error())
}
