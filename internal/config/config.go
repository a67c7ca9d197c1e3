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
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"layoutedit/internal/geom"
)

// AppConfig is the user-editable configuration persisted as YAML in the user
// config directory. Environment variables override it at runtime and are never
// written back.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int             `yaml:"config_version"`
	Transform     TransformConfig `yaml:"transform"`
	Guides        GuidesConfig    `yaml:"guides"`
	Undo          UndoConfig      `yaml:"undo"`
	Logging       LoggingConfig   `yaml:"logging"`
}

// TransformConfig holds the editing preferences read by the transform system.
// Ranges and steps are in screen units, shares are fractions of the control size.
type TransformConfig struct {
	MoveMagnetRange   geom.Vec2 `yaml:"move_magnet_range"`
	ResizeMagnetRange geom.Vec2 `yaml:"resize_magnet_range"`
	PivotMagnetRange  geom.Vec2 `yaml:"pivot_magnet_range"`
	KeyboardStep      geom.Vec2 `yaml:"keyboard_step"`
	KeyboardFineStep  geom.Vec2 `yaml:"keyboard_fine_step"`
	PivotGridShare    geom.Vec2 `yaml:"pivot_grid_share"`
	AngleSegment      float32   `yaml:"angle_segment"`
	ShiftInverted     bool      `yaml:"shift_inverted"`
	CanMagnet         bool      `yaml:"can_magnet"`
	GuidesEnabled     bool      `yaml:"guides_enabled"`
	MinimumSize       geom.Vec2 `yaml:"minimum_size"`
}

type GuidesConfig struct {
	// DBPath defaults to guides.db next to the config file.
	DBPath string `yaml:"db_path"`
}

type UndoConfig struct {
	MergeIntervalMs int `yaml:"merge_interval_ms"`
	MaxDepth        int `yaml:"max_depth"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// ErrInvalidConfig marks a config file that failed parsing or schema validation.
var ErrInvalidConfig = errors.New("invalid config")

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Transform: TransformConfig{
			MoveMagnetRange:   geom.V(7, 7),
			ResizeMagnetRange: geom.V(7, 7),
			PivotMagnetRange:  geom.V(7, 7),
			KeyboardStep:      geom.V(10, 10),
			KeyboardFineStep:  geom.V(1, 1),
			PivotGridShare:    geom.V(0.25, 0.25),
			AngleSegment:      15,
			CanMagnet:         true,
			GuidesEnabled:     true,
			MinimumSize:       geom.V(16, 16),
		},
		Undo:    UndoConfig{MergeIntervalMs: 500, MaxDepth: 200},
		Logging: LoggingConfig{Level: "info", Format: "console"},
	}
}

// MergeInterval is the undo coalescing window as a duration.
func (u UndoConfig) MergeInterval() time.Duration {
	return time.Duration(u.MergeIntervalMs) * time.Millisecond
}

// Env var names used as overrides.
const (
	EnvCanMagnet     = "LE_CAN_MAGNET"
	EnvGuidesEnabled = "LE_GUIDES_ENABLED"
	EnvShiftInverted = "LE_SHIFT_INVERTED"
	EnvAngleSegment  = "LE_ANGLE_SEGMENT"
	EnvGuidesDB      = "LE_GUIDES_DB"
	EnvLogLevel      = "LE_LOG_LEVEL"
	EnvLogFormat     = "LE_LOG_FORMAT"
	EnvLogSource     = "LE_LOG_SOURCE"
	EnvLogFile       = "LE_LOG_FILE"
)

// Dir returns the per-user layoutedit config directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(base, "layoutedit"), nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// GuidesDBPath resolves where the guide store lives.
func (c AppConfig) GuidesDBPath() (string, error) {
	if p := strings.TrimSpace(c.Guides.DBPath); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "guides.db"), nil
}

// Load reads the user config file at ConfigPath. See LoadFile.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFile(path)
}

// LoadFile reads path (a missing file is not an error), validates it against
// the embedded schema, lays it over the defaults and applies env overrides.
// A file that fails validation is ignored: the returned config holds defaults
// plus env overrides and the error wraps ErrInvalidConfig.
func LoadFile(path string) (AppConfig, error) {
	cfg := Defaults()
	var loadErr error
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		loadErr = fmt.Errorf("read %s: %w", path, err)
	default:
		fileCfg, err := Parse(data)
		if err != nil {
			loadErr = fmt.Errorf("%s: %w", path, err)
		} else {
			cfg = fileCfg
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, loadErr
}

// Parse validates YAML config data and decodes it over Defaults.
func Parse(data []byte) (AppConfig, error) {
	cfg := Defaults()
	if err := Validate(data); err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	normalize(&cfg)
	return cfg, nil
}

// Save writes cfg to ConfigPath.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes cfg as YAML, creating parent directories.
func SaveFile(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func normalize(cfg *AppConfig) {
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))
	cfg.Logging.Format = strings.ToLower(strings.TrimSpace(cfg.Logging.Format))
	cfg.Logging.File = strings.TrimSpace(cfg.Logging.File)
	if cfg.ConfigVersion == 0 {
		cfg.ConfigVersion = 1
	}
}

func parseBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvCanMagnet)); v != "" {
		cfg.Transform.CanMagnet = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvGuidesEnabled)); v != "" {
		cfg.Transform.GuidesEnabled = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvShiftInverted)); v != "" {
		cfg.Transform.ShiftInverted = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvAngleSegment)); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f > 0 {
			cfg.Transform.AngleSegment = float32(f)
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvGuidesDB)); v != "" {
		cfg.Guides.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envKeys = map[string]string{
	"transform.can_magnet":     EnvCanMagnet,
	"transform.guides_enabled": EnvGuidesEnabled,
	"transform.shift_inverted": EnvShiftInverted,
	"transform.angle_segment":  EnvAngleSegment,
	"guides.db_path":           EnvGuidesDB,
	"logging.level":            EnvLogLevel,
	"logging.format":           EnvLogFormat,
	"logging.source":           EnvLogSource,
	"logging.file":             EnvLogFile,
}

// EnvKeys lists the config keys an environment variable can override, sorted.
func EnvKeys() []string {
	keys := make([]string, 0, len(envKeys))
	for k := range envKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}
