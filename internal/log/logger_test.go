/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func lastJSONLine(t *testing.T, data []byte) map[string]any {
	t.Helper()
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var last string
	for scanner.Scan() {
		if s := strings.TrimSpace(scanner.Text()); s != "" {
			last = s
		}
	}
	if last == "" {
		t.Fatalf("no log lines found")
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("unmarshal json log: %v", err)
	}
	return m
}

func TestInitWritesStructuredFile(t *testing.T) {
	// temp dir root keeps Windows from failing on a still-open rotated file
	fpath := filepath.Join(os.TempDir(), fmt.Sprintf("layoutedit_log_%d.json", time.Now().UnixNano()))
	var console bytes.Buffer
	Init(Options{Level: "debug", Format: "json", File: fpath, Console: &console})

	l := WithOperation(WithComponent("transform"), "resize")
	l.Info("gesture step", Vec("delta", 1.5, -2))

	b, err := os.ReadFile(fpath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	m := lastJSONLine(t, b)
	if m["app"] != "layoutedit" {
		t.Fatalf("missing app attr: %v", m["app"])
	}
	if _, ok := m["ver"].(string); !ok {
		t.Fatalf("missing ver attr")
	}
	if m["component"] != "transform" || m["op"] != "resize" {
		t.Fatalf("context attrs mismatch: %v %v", m["component"], m["op"])
	}
	delta, ok := m["delta"].(map[string]any)
	if !ok || delta["x"] != 1.5 || delta["y"] != -2.0 {
		t.Fatalf("delta group mismatch: %v", m["delta"])
	}
	// console sink got the same record
	if cm := lastJSONLine(t, console.Bytes()); cm["msg"] != "gesture step" {
		t.Fatalf("console msg mismatch: %v", cm["msg"])
	}
}

func TestSetLevelAppliesToRunningLogger(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "info", Console: &buf})
	L().Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug written at info level: %q", buf.String())
	}
	SetLevel("debug")
	L().Debug("shown")
	if !strings.Contains(buf.String(), "DBG shown") {
		t.Fatalf("debug not written after SetLevel: %q", buf.String())
	}
	slog.Default().Warn("via default")
	if !strings.Contains(buf.String(), "WRN via default") {
		t.Fatalf("slog.Default not replaced: %q", buf.String())
	}
}
