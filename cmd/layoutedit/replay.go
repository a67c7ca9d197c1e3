/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"layoutedit/internal/guides"
	"layoutedit/internal/replay"
	"layoutedit/internal/scene"
	"layoutedit/internal/transform"
	"layoutedit/internal/undo"
)

type replayOptions struct {
	scenePath  string
	guidesFile string
	dbPath     string
	outPath    string
	quiet      bool
}

func (a *app) replayCommand() *cobra.Command {
	var opts replayOptions
	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Replay a gesture script against a scene",
		Long: `Replay feeds the steps of a gesture script to a transform system the way
the editor would and prints, per step, the drag state, the applied commands
and the magnet feedback, followed by the resulting scene.

Guides come from the guide database unless --guides-file names a YAML guide
file, which is then used in memory and never written back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReplay(cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.scenePath, "scene", "s", "", "scene file (required)")
	cmd.Flags().StringVar(&opts.guidesFile, "guides-file", "", "YAML guide file used instead of the guide database")
	cmd.Flags().StringVar(&opts.dbPath, "db", "", "guide database (default from config)")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "write the resulting scene here instead of stdout")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print step results")
	_ = cmd.MarkFlagRequired("scene")
	return cmd
}

func (a *app) runReplay(cmd *cobra.Command, scriptPath string, opts replayOptions) error {
	ctx := cmd.Context()
	l := a.logger.With(slog.String("scene", opts.scenePath), slog.String("script", scriptPath))

	script, err := replay.LoadFile(scriptPath)
	if err != nil {
		return err
	}
	pkg, file, err := scene.LoadFile(opts.scenePath)
	if err != nil {
		return err
	}

	store, err := a.replayGuides(cmd, opts)
	if err != nil {
		return err
	}
	defer store.Close()

	doc, err := scene.OpenDocument(pkg, file, store)
	if err != nil {
		return err
	}
	a.sess.ScenePath = opts.scenePath
	a.sess.Snapshot = func(w io.Writer) error { return scene.Encode(w, pkg) }

	undoCfg := undo.Config{MaxDepth: a.cfg.Undo.MaxDepth, MergeInterval: a.cfg.Undo.MergeInterval()}
	session := replay.NewSession(doc, transform.PreferencesFrom(a.cfg.Transform), undoCfg)
	results, runErr := session.Run(ctx, script)
	l.Info("replayed", slog.Int("steps", len(results)), slog.Int("total", len(script.Steps)))

	out := cmd.OutOrStdout()
	if !opts.quiet {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(struct {
			Steps []replay.StepResult `yaml:"steps"`
		}{results}); err != nil {
			return fmt.Errorf("encode results: %w", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}
	}
	if runErr != nil {
		return runErr
	}

	if opts.outPath != "" {
		return writeScene(opts.outPath, pkg)
	}
	if !opts.quiet {
		if _, err := fmt.Fprintln(out, "---"); err != nil {
			return err
		}
	}
	return scene.Encode(out, pkg)
}

// replayGuides opens the guide database, or loads --guides-file into memory.
func (a *app) replayGuides(cmd *cobra.Command, opts replayOptions) (guides.Store, error) {
	if opts.guidesFile == "" {
		db, err := a.openGuideDB(cmd, opts.dbPath)
		if err != nil {
			return nil, err
		}
		return db, nil
	}
	f, err := os.Open(opts.guidesFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mem := guides.NewMemory()
	if _, err := guides.Import(cmd.Context(), mem, f); err != nil {
		return nil, fmt.Errorf("%s: %w", opts.guidesFile, err)
	}
	return mem, nil
}

func writeScene(path string, pkg *scene.Package) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := scene.Encode(f, pkg); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
