// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the drive client and the blob server.
//
// Every entry carries the component role, a timestamp and the name of the
// calling function in the "func" field. Request handlers get their logger
// from the request context, see [FromRequest].
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelEnv names the variable that overrides the default debug level.
const LevelEnv = "LOG_LEVEL"

// clientLogFile is created inside the client log directory.
const clientLogFile = "drive.log"

// Logger embeds zerolog.Logger, so the whole zerolog API is available.
type Logger struct {
	zerolog.Logger
}

// NewLogger writes JSON entries for role to stdout.
func NewLogger(role string) *Logger {
	return newRoleLogger(os.Stdout, role)
}

// NewClientLogger keeps stdout free for command output: entries go to
// drive.log in dir, or to stderr when the file cannot be opened. An empty
// dir is the directory of the running executable.
func NewClientLogger(role, dir string) *Logger {
	if dir == "" {
		if exe, err := os.Executable(); err == nil {
			dir = filepath.Dir(exe)
		}
	}
	return newRoleLogger(openClientLog(dir), role)
}

func openClientLog(dir string) io.Writer {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return os.Stderr
	}
	f, err := os.OpenFile(filepath.Join(dir, clientLogFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return os.Stderr
	}
	return f
}

func newRoleLogger(out io.Writer, role string) *Logger {
	setGlobals()
	return &Logger{zerolog.New(out).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()}
}

// setGlobals configures zerolog package state shared by every logger.
func setGlobals() {
	zerolog.SetGlobalLevel(levelFromEnv())
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}
}

func levelFromEnv() zerolog.Level {
	raw, ok := os.LookupEnv(LevelEnv)
	if !ok || raw == "" {
		return zerolog.DebugLevel
	}
	level, err := zerolog.ParseLevel(raw)
	if err != nil {
		return zerolog.DebugLevel
	}
	return level
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// GetChildLogger returns a copy that can take extra fields without touching
// the receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{l.With().Logger()}
}

// FromRequest returns the logger attached to the request context by the
// logging middleware.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx. Without one, zerolog's
// default logger is returned, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
