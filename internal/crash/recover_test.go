/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func silenceStderr(t *testing.T) {
	t.Helper()
	oldStderr := os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stderr = w
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(io.Discard, r)
		close(done)
	}()
	t.Cleanup(func() {
		_ = w.Close()
		<-done
		os.Stderr = oldStderr
	})
}

func interceptExit(t *testing.T) *int {
	t.Helper()
	code := -1
	oldExit := exitFn
	exitFn = func(c int) { code = c }
	t.Cleanup(func() { exitFn = oldExit })
	return &code
}

func files(t *testing.T, dir, prefix string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var out []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out
}

func TestRecoverWritesReportAndSnapshot(t *testing.T) {
	silenceStderr(t)
	code := interceptExit(t)

	dir := t.TempDir()
	sess := &Session{Dir: dir, Snapshot: func(w io.Writer) error {
		_, err := io.WriteString(w, "package: main\n")
		return err
	}}

	func() {
		defer Recover(sess)
		panic("boom")
	}()

	reports := files(t, dir, "crash-")
	if len(reports) != 1 {
		t.Fatalf("expected one crash report, got %v", reports)
	}
	b, err := os.ReadFile(reports[0])
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) {
		t.Fatalf("report does not contain panic: %s", string(b))
	}
	snaps := files(t, dir, "scene-")
	if len(snaps) != 1 {
		t.Fatalf("expected one scene snapshot, got %v", snaps)
	}
	if b, _ := os.ReadFile(snaps[0]); string(b) != "package: main\n" {
		t.Fatalf("snapshot content: %q", b)
	}
	if *code != 2 {
		t.Fatalf("expected exit code 2, got %d", *code)
	}
}

func TestRecoverSnapshotFailureStillReports(t *testing.T) {
	silenceStderr(t)
	code := interceptExit(t)

	dir := t.TempDir()
	sess := &Session{Dir: dir, Snapshot: func(io.Writer) error { return errors.New("scene gone") }}
	func() {
		defer Recover(sess)
		panic("boom")
	}()
	if len(files(t, dir, "crash-")) != 1 {
		t.Fatalf("expected crash report")
	}
	if *code != 2 {
		t.Fatalf("expected exit code 2, got %d", *code)
	}
}

func TestRecoverWithoutPanicIsNoop(t *testing.T) {
	code := interceptExit(t)
	func() {
		defer Recover(nil)
	}()
	if *code != -1 {
		t.Fatalf("exit called with %d", *code)
	}
}
