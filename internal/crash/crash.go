/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in a command into a report file and, when a
// scene is open, a snapshot of its in-memory state.
package crash

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "layoutedit/internal/log"
	"layoutedit/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Session describes what was being edited when a panic happened.
type Session struct {
	// Dir receives the report and snapshot; os.TempDir when empty.
	Dir string
	// ScenePath is the scene file being edited, if any.
	ScenePath string
	// Snapshot writes the current scene, nil to skip.
	Snapshot func(w io.Writer) error
}

// Recover captures a panic, logs it with the stack, writes a report and a
// scene snapshot and exits with code 2.
//
// Usage: defer crash.Recover(sess)
func Recover(sess *Session) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	reportPath, err := writeReport(sess, r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}
	if sess != nil && sess.Snapshot != nil {
		if path, err := writeSnapshot(sess); err != nil {
			l.Error("scene snapshot failed", slog.Any("err", err))
		} else {
			l.Info("scene snapshot written", slog.String("path", path))
		}
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	exitFn(2)
}

func dirOf(sess *Session) (string, error) {
	if sess == nil || sess.Dir == "" {
		return os.TempDir(), nil
	}
	return sess.Dir, os.MkdirAll(sess.Dir, 0o755)
}

func writeReport(sess *Session, panicVal any, stack []byte) (string, error) {
	dir, err := dirOf(sess)
	if err != nil {
		return "", err
	}
	now := time.Now()
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", now.Format("20060102-150405")))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "layoutedit crash report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", now.Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if sess != nil && sess.ScenePath != "" {
		_, _ = fmt.Fprintf(&buf, "Scene: %s\n", sess.ScenePath)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	return path, nil
}

func writeSnapshot(sess *Session) (string, error) {
	dir, err := dirOf(sess)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("scene-%s.yaml", time.Now().Format("20060102-150405")))
	f, err := os.Create(path)
	if err != nil {
		return path, err
	}
	if err := sess.Snapshot(f); err != nil {
		_ = f.Close()
		return path, err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return path, err
	}
	return path, f.Close()
}
