/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
	"layoutedit/internal/guides"
)

// ControlSpec is the YAML form of a control. Omitted geometry keeps the
// NewControl defaults; an omitted id gets a random one.
type ControlSpec struct {
	ID       string        `yaml:"id"`
	Position geom.Vec2     `yaml:"position"`
	Size     geom.Vec2     `yaml:"size"`
	Pivot    geom.Vec2     `yaml:"pivot"`
	Scale    *geom.Vec2    `yaml:"scale,omitempty"`
	Angle    float32       `yaml:"angle"`
	Children []ControlSpec `yaml:"children,omitempty"`
}

// File is the YAML scene format.
type File struct {
	Package   string        `yaml:"package"`
	Controls  []ControlSpec `yaml:"controls"`
	Selection []string      `yaml:"selection,omitempty"`
	// Display names the root shown in the editor, the first root when empty.
	Display string `yaml:"display,omitempty"`
}

// Decode reads a scene file.
func Decode(r io.Reader) (File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return File{}, fmt.Errorf("decode scene: %w", err)
	}
	return f, nil
}

// LoadFile reads and builds the scene at path.
func LoadFile(path string) (*Package, File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, File{}, err
	}
	defer fh.Close()
	f, err := Decode(fh)
	if err != nil {
		return nil, File{}, fmt.Errorf("%s: %w", path, err)
	}
	pkg, err := Build(f)
	return pkg, f, err
}

// Build creates the control tree described by f. IDs must be unique.
func Build(f File) (*Package, error) {
	pkg := &Package{Name: f.Package}
	seen := map[string]bool{}
	var build func(s ControlSpec) (*Control, error)
	build = func(s ControlSpec) (*Control, error) {
		id := s.ID
		if id == "" {
			id = uuid.NewString()
		}
		if seen[id] {
			return nil, fmt.Errorf("duplicate control id %q", id)
		}
		seen[id] = true
		c := NewControl(id, s.Position, s.Size)
		c.pivot, c.angle = s.Pivot, s.Angle
		if s.Scale != nil {
			c.scale = *s.Scale
		}
		for _, cs := range s.Children {
			ch, err := build(cs)
			if err != nil {
				return nil, err
			}
			c.Add(ch)
		}
		return c, nil
	}
	for _, s := range f.Controls {
		root, err := build(s)
		if err != nil {
			return nil, err
		}
		pkg.Roots = append(pkg.Roots, root)
	}
	return pkg, nil
}

// Spec converts c and its subtree back to the YAML form.
func Spec(c *Control) ControlSpec {
	s := ControlSpec{ID: c.id, Position: c.position, Size: c.size, Pivot: c.pivot, Angle: c.angle}
	if c.scale != geom.V(1, 1) {
		scale := c.scale
		s.Scale = &scale
	}
	for _, ch := range c.children {
		s.Children = append(s.Children, Spec(ch))
	}
	return s
}

// Encode writes pkg as a scene file.
func Encode(w io.Writer, pkg *Package) error {
	f := File{Package: pkg.Name}
	for _, r := range pkg.Roots {
		f.Controls = append(f.Controls, Spec(r))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return enc.Close()
}

// OpenDocument builds a Document for pkg, applying the display root and
// selection named in f. store may be nil.
func OpenDocument(pkg *Package, f File, store guides.Store) (*Document, error) {
	doc := NewDocument(pkg, store)
	if f.Display != "" {
		root := pkg.Find(f.Display)
		if root == nil {
			return nil, fmt.Errorf("display root %q not found", f.Display)
		}
		doc.Display(root)
	}
	sel := make([]editor.Node, 0, len(f.Selection))
	for _, id := range f.Selection {
		if id == pkg.Name {
			sel = append(sel, pkg)
			continue
		}
		c := pkg.Find(id)
		if c == nil {
			return nil, fmt.Errorf("selected control %q not found", id)
		}
		sel = append(sel, c)
	}
	doc.Select(sel...)
	return doc, nil
}
