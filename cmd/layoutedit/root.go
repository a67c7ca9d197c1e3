/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"layoutedit/internal/config"
	"layoutedit/internal/crash"
	applog "layoutedit/internal/log"
	"layoutedit/internal/version"
)

// app carries what every command needs once the persistent flags are parsed.
type app struct {
	sess *crash.Session

	configPath string
	logLevel   string
	logFormat  string

	cfg    config.AppConfig
	logger *slog.Logger
}

func newApp(sess *crash.Session) *app { return &app{sess: sess} }

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "layoutedit",
		Short:             "Transform and magnet-snapping engine of the layout editor",
		Long:              "layoutedit replays pointer and keyboard gestures against a layout scene and manages the guides and preferences the transform system reads.",
		Version:           version.String(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetVersionTemplate("layoutedit {{.Version}}\n")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: user config dir)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug|info|warn|error, overrides the config")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "console|json, overrides the config")

	root.AddCommand(a.replayCommand())
	root.AddCommand(a.guidesCommand())
	root.AddCommand(a.prefsCommand())
	root.AddCommand(versionCommand())
	return root
}

// setup loads the config and initializes logging. An invalid config file is
// reported and replaced by the defaults.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil && !errors.Is(err, config.ErrInvalidConfig) {
		return err
	}

	opts := applog.Options{
		Level:     a.cfg.Logging.Level,
		Format:    a.cfg.Logging.Format,
		AddSource: a.cfg.Logging.Source,
		File:      a.cfg.Logging.File,
		Console:   cmd.ErrOrStderr(),
	}
	if a.logFormat != "" {
		opts.Format = a.logFormat
	}
	applog.Init(opts)
	if a.logLevel != "" {
		applog.SetLevel(a.logLevel)
	}
	a.logger = applog.WithComponent("cli")
	if err != nil {
		a.logger.Warn("config ignored, using defaults", slog.Any("err", err))
	}
	a.logger.Debug("start", slog.String("cmd", cmd.CommandPath()))
	return nil
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "layoutedit", version.String())
			return err
		},
	}
}
