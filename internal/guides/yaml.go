/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package guides

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"layoutedit/internal/geom"
)

// File is the YAML exchange format:
//
//	roots:
//	  - root: main
//	    x: [100, 200]
//	    y: [50]
type File struct {
	Roots []RootGuides `yaml:"roots"`
}

type RootGuides struct {
	Root string    `yaml:"root"`
	X    []float32 `yaml:"x,flow,omitempty"`
	Y    []float32 `yaml:"y,flow,omitempty"`
}

// Axis returns the list for axis.
func (r RootGuides) Axis(axis geom.Axis) []float32 {
	if axis == geom.AxisX {
		return r.X
	}
	return r.Y
}

// Import reads a guide file and replaces the lists of every root it names.
// It returns the number of roots written.
func Import(ctx context.Context, s Store, r io.Reader) (int, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && err != io.EOF {
		return 0, fmt.Errorf("decode guides: %w", err)
	}
	for i, rg := range f.Roots {
		if rg.Root == "" {
			return i, fmt.Errorf("guide entry %d has no root", i)
		}
		for _, axis := range geom.Axes {
			if err := s.SetGuides(ctx, rg.Root, axis, rg.Axis(axis)); err != nil {
				return i, fmt.Errorf("import %s: %w", rg.Root, err)
			}
		}
	}
	return len(f.Roots), nil
}

// Collect reads every root of s into a File.
func Collect(ctx context.Context, s Store) (File, error) {
	roots, err := s.Roots(ctx)
	if err != nil {
		return File{}, err
	}
	f := File{Roots: make([]RootGuides, 0, len(roots))}
	for _, root := range roots {
		rg := RootGuides{Root: root}
		if rg.X, err = s.Guides(ctx, root, geom.AxisX); err != nil {
			return File{}, err
		}
		if rg.Y, err = s.Guides(ctx, root, geom.AxisY); err != nil {
			return File{}, err
		}
		f.Roots = append(f.Roots, rg)
	}
	return f, nil
}

// Export writes every root of s as YAML.
func Export(ctx context.Context, s Store, w io.Writer) error {
	f, err := Collect(ctx, s)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode guides: %w", err)
	}
	return enc.Close()
}
