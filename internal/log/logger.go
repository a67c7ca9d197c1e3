/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package log provides the slog setup shared by the editor engine and the CLI.
// Records carry the app name, version and, through WithComponent/WithOperation,
// the package and gesture that produced them.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"layoutedit/internal/version"

	lj "gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization. FromEnv reads:
//   - LE_LOG_LEVEL=debug|info|warn|error
//   - LE_LOG_FORMAT=console|json
//   - LE_LOG_FILE=<path> (adds a rotated JSON file sink)
//   - LE_LOG_SOURCE=true|false
type Options struct {
	Level     string
	Format    string // "console" or "json"
	AddSource bool
	File      string
	// Console overrides the console sink, stderr when nil.
	Console io.Writer
}

var (
	mu       sync.RWMutex
	current  *slog.Logger
	levelVar = new(slog.LevelVar)
)

// L returns the process logger, initializing it from the environment on first use.
func L() *slog.Logger {
	mu.RLock()
	l := current
	mu.RUnlock()
	if l != nil {
		return l
	}
	Init(FromEnv())
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Init replaces the process logger and slog.Default.
func Init(opts Options) {
	levelVar.Set(parseLevel(opts.Level))
	hopts := &slog.HandlerOptions{Level: levelVar, AddSource: opts.AddSource}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	var sinks []slog.Handler
	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		sinks = append(sinks, slog.NewJSONHandler(console, hopts))
	} else {
		sinks = append(sinks, &prettyTextHandler{opts: prettyOpts{Level: levelVar, AddSource: opts.AddSource}, w: console})
	}
	if file := strings.TrimSpace(opts.File); file != "" {
		rot := &lj.Logger{Filename: file, MaxSize: 10, MaxBackups: 3, MaxAge: 28, Compress: true}
		sinks = append(sinks, slog.NewJSONHandler(rot, hopts))
	}

	h := sinks[0]
	if len(sinks) > 1 {
		h = fanout(sinks)
	}
	logger := slog.New(h).With(
		slog.String("app", "layoutedit"),
		slog.String("ver", version.Version),
	)

	mu.Lock()
	current = logger
	mu.Unlock()
	slog.SetDefault(logger)
}

// SetLevel changes the level of the running logger without rebuilding sinks.
func SetLevel(level string) { levelVar.Set(parseLevel(level)) }

// FromEnv builds Options from LE_LOG_* variables.
func FromEnv() Options {
	return Options{
		Level:     getenv("LE_LOG_LEVEL", "info"),
		Format:    getenv("LE_LOG_FORMAT", "console"),
		AddSource: strings.EqualFold(getenv("LE_LOG_SOURCE", "false"), "true"),
		File:      os.Getenv("LE_LOG_FILE"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// WithComponent returns a logger tagged with the producing package.
func WithComponent(name string) *slog.Logger { return L().With(slog.String("component", name)) }

// WithOperation tags l with an operation, for example a gesture name.
func WithOperation(l *slog.Logger, op string) *slog.Logger { return l.With(slog.String("op", op)) }

// Vec logs a 2D value as a group with x and y.
func Vec(key string, x, y float32) slog.Attr {
	return slog.Group(key, slog.Float64("x", float64(x)), slog.Float64("y", float64(y)))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
