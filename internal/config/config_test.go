/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"layoutedit/internal/geom"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFileMissingGivesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Transform != Defaults().Transform {
		t.Fatalf("transform defaults mismatch: %#v", cfg.Transform)
	}
	if got := cfg.Undo.MergeInterval(); got != 500*time.Millisecond {
		t.Fatalf("MergeInterval = %v, want 500ms", got)
	}
}

func TestLoadFileOverlaysPartialTransform(t *testing.T) {
	path := writeFile(t, `
transform:
  move_magnet_range: {x: 4, y: 5}
  can_magnet: false
logging:
  level: " DEBUG "
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Transform.MoveMagnetRange != geom.V(4, 5) {
		t.Fatalf("MoveMagnetRange = %v", cfg.Transform.MoveMagnetRange)
	}
	if cfg.Transform.CanMagnet {
		t.Fatalf("CanMagnet should be false from file")
	}
	// untouched keys keep defaults
	if cfg.Transform.AngleSegment != 15 || cfg.Transform.MinimumSize != geom.V(16, 16) {
		t.Fatalf("defaults lost: %#v", cfg.Transform)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging level not normalized: %q", cfg.Logging.Level)
	}
}

func TestNegativeRangeFailsSchema(t *testing.T) {
	path := writeFile(t, "transform:\n  resize_magnet_range: {x: -1, y: 7}\n")
	cfg, err := LoadFile(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if cfg.Transform.ResizeMagnetRange != geom.V(7, 7) {
		t.Fatalf("invalid file should leave defaults, got %v", cfg.Transform.ResizeMagnetRange)
	}
}

func TestValidateRejectsUnknownTransformKeyAndBadShare(t *testing.T) {
	if err := Validate([]byte("transform:\n  snap_everything: true\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("unknown key accepted: %v", err)
	}
	if err := Validate([]byte("transform:\n  pivot_grid_share: {x: 1.5, y: 0.25}\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("share above 1 accepted: %v", err)
	}
	if err := Validate([]byte("transform:\n  angle_segment: 0\n")); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("zero angle segment accepted: %v", err)
	}
	if err := Validate(nil); err != nil {
		t.Fatalf("empty file should validate: %v", err)
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Defaults()
	want.Transform.PivotGridShare = geom.V(0.5, 0.125)
	want.Undo.MaxDepth = 12
	if err := SaveFile(path, want); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, want)
	}
}

func TestEnvOverridesTransform(t *testing.T) {
	t.Setenv(EnvCanMagnet, "off")
	t.Setenv(EnvShiftInverted, "yes")
	t.Setenv(EnvAngleSegment, "45")
	t.Setenv(EnvGuidesDB, "/tmp/g.db")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Transform.CanMagnet || !cfg.Transform.ShiftInverted || cfg.Transform.AngleSegment != 45 {
		t.Fatalf("env overrides not applied: %#v", cfg.Transform)
	}
	if p, _ := cfg.GuidesDBPath(); p != "/tmp/g.db" {
		t.Fatalf("GuidesDBPath = %q", p)
	}
	if name, ok := EnvOverrideFor("transform.angle_segment"); !ok || name != EnvAngleSegment {
		t.Fatalf("EnvOverrideFor = %q %v", name, ok)
	}
	if _, ok := EnvOverrideFor("transform.minimum_size"); ok {
		t.Fatalf("minimum_size has no env override")
	}
	keys := EnvKeys()
	if len(keys) != 9 || keys[0] != "guides.db_path" || keys[len(keys)-1] != "transform.shift_inverted" {
		t.Fatalf("EnvKeys = %v", keys)
	}
}

func TestEnvOverridesLogging(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogFormat, "json")
	t.Setenv(EnvLogSource, "1")
	t.Setenv(EnvLogFile, "X:/le.log")
	cfg, err := LoadFile(writeFile(t, "logging:\n  level: warn\n"))
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if cfg.Logging.Level != "error" || cfg.Logging.Format != "json" || !cfg.Logging.Source || cfg.Logging.File != "X:/le.log" {
		t.Fatalf("env overrides not applied to logging: %#v", cfg.Logging)
	}
}
