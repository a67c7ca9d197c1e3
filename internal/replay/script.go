/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package replay drives a transform session from a scripted gesture file, the
// way the editor's systems manager would feed it pointer and keyboard input.
package replay

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
)

// Script is the YAML gesture format:
//
//	steps:
//	  - select: [button]
//	  - hover: {area: frame, control: button}
//	  - press: {x: 100, y: 100}
//	  - drag: {x: 90, y: 100}
//	    mods: [shift]
//	  - release: {x: 90, y: 100}
//	  - key: right
//	  - undo: 1
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one action. Mods apply to drag and key steps.
type Step struct {
	Select  []string   `yaml:"select,omitempty"`
	Hover   *Hover     `yaml:"hover,omitempty"`
	Press   *geom.Vec2 `yaml:"press,omitempty"`
	Drag    *geom.Vec2 `yaml:"drag,omitempty"`
	Release *geom.Vec2 `yaml:"release,omitempty"`
	Key     string     `yaml:"key,omitempty"`
	Mods    []string   `yaml:"mods,omitempty"`
	Undo    int        `yaml:"undo,omitempty"`
	Redo    int        `yaml:"redo,omitempty"`
}

// Hover names the handle under the pointer and the control owning it. An
// empty control clears the hover.
type Hover struct {
	Area    string `yaml:"area"`
	Control string `yaml:"control,omitempty"`
}

// Decode reads a script.
func Decode(r io.Reader) (Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && err != io.EOF {
		return Script{}, fmt.Errorf("decode script: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return Script{}, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return s, nil
}

// LoadFile reads the script at path.
func LoadFile(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return Script{}, err
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return Script{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s Step) actions() []string {
	var out []string
	if s.Select != nil {
		out = append(out, "select")
	}
	if s.Hover != nil {
		out = append(out, "hover")
	}
	if s.Press != nil {
		out = append(out, "press")
	}
	if s.Drag != nil {
		out = append(out, "drag")
	}
	if s.Release != nil {
		out = append(out, "release")
	}
	if s.Key != "" {
		out = append(out, "key")
	}
	if s.Undo > 0 {
		out = append(out, "undo")
	}
	if s.Redo > 0 {
		out = append(out, "redo")
	}
	return out
}

func (s Step) validate() error {
	switch a := s.actions(); len(a) {
	case 0:
		return fmt.Errorf("no action")
	case 1:
	default:
		return fmt.Errorf("more than one action: %s", strings.Join(a, ", "))
	}
	if _, err := parseMods(s.Mods); err != nil {
		return err
	}
	if s.Key != "" {
		if _, err := parseKey(s.Key); err != nil {
			return err
		}
	}
	if s.Hover != nil {
		if _, err := editor.ParseArea(s.Hover.Area); err != nil {
			return err
		}
	}
	return nil
}

func parseMods(names []string) (editor.Modifiers, error) {
	var m editor.Modifiers
	for _, n := range names {
		switch strings.ToLower(n) {
		case "shift":
			m |= editor.ModShift
		case "alt":
			m |= editor.ModAlt
		case "ctrl":
			m |= editor.ModCtrl
		default:
			return 0, fmt.Errorf("unknown modifier %q", n)
		}
	}
	return m, nil
}

var keyNames = map[string]editor.Key{
	"left":   editor.KeyLeft,
	"right":  editor.KeyRight,
	"up":     editor.KeyUp,
	"down":   editor.KeyDown,
	"escape": editor.KeyEscape,
	"delete": editor.KeyDelete,
}

func parseKey(name string) (editor.Key, error) {
	k, ok := keyNames[strings.ToLower(name)]
	if !ok {
		return editor.KeyNone, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}
