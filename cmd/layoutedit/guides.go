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
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"layoutedit/internal/geom"
	"layoutedit/internal/guides"
)

func (a *app) guidesCommand() *cobra.Command {
	var dbPath string
	cmd := &cobra.Command{
		Use:   "guides",
		Short: "Manage the guide database",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "guide database (default from config)")

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Replace the guides of every root named in a YAML guide file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openGuideDB(cmd, dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			n, err := guides.Import(cmd.Context(), store, f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			a.logger.Info("guides imported", slog.String("file", args[0]), slog.Int("roots", n))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported guides for %d root(s)\n", n)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List roots and their guides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openGuideDB(cmd, dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			f, err := guides.Collect(cmd.Context(), store)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(f.Roots) == 0 {
				_, err = fmt.Fprintln(out, "No guides")
				return err
			}
			for _, rg := range f.Roots {
				fmt.Fprintln(out, rg.Root)
				for _, axis := range geom.Axes {
					fmt.Fprintf(out, "  %s: %s\n", axis, joinValues(rg.Axis(axis)))
				}
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export [file.yaml]",
		Short: "Write every root's guides as YAML, to stdout when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openGuideDB(cmd, dbPath)
			if err != nil {
				return err
			}
			defer store.Close()
			if len(args) == 0 {
				return guides.Export(cmd.Context(), store, cmd.OutOrStdout())
			}
			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			if err := guides.Export(cmd.Context(), store, f); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	})
	return cmd
}

// openGuideDB opens path, or the configured guide database when path is empty.
func (a *app) openGuideDB(cmd *cobra.Command, path string) (*guides.SQLiteStore, error) {
	if path == "" {
		var err error
		if path, err = a.cfg.GuidesDBPath(); err != nil {
			return nil, fmt.Errorf("resolve guide database: %w", err)
		}
	}
	return guides.OpenSQLite(cmd.Context(), path)
}

func joinValues(values []float32) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, ", ")
}
