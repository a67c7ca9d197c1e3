/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package replay

import (
	"context"
	"fmt"
	"log/slog"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
	applog "layoutedit/internal/log"
	"layoutedit/internal/magnet"
	"layoutedit/internal/scene"
	"layoutedit/internal/transform"
	"layoutedit/internal/undo"
)

// Session is an open document with a transform system registered on a
// systems manager.
type Session struct {
	Doc     *scene.Document
	Undo    *undo.Manager
	Manager *editor.Manager
	System  *transform.System

	rec    *recorder
	lines  []magnet.LineInfo
	logger *slog.Logger
}

// recorder passes commands on to the undo manager and keeps the ones that
// were applied.
type recorder struct {
	next transform.Commander
	cmds []undo.Command
}

func (r *recorder) Exec(cmd undo.Command) error {
	if err := r.next.Exec(cmd); err != nil {
		return err
	}
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recorder) take() []undo.Command {
	out := r.cmds
	r.cmds = nil
	return out
}

// NewSession wires doc to a new transform system.
func NewSession(doc *scene.Document, prefs transform.Preferences, undoCfg undo.Config) *Session {
	s := &Session{
		Doc:     doc,
		Undo:    undo.NewManager(undoCfg),
		Manager: editor.NewManager(),
		logger:  applog.WithComponent("replay"),
	}
	s.rec = &recorder{next: s.Undo}
	s.System = transform.New(transform.Deps{
		Selection: doc,
		Guides:    doc,
		Commands:  s.rec,
		Feedback:  s.Manager,
	}, prefs)
	s.Manager.Register(s.System)
	s.Manager.OnMagnetLines(func(lines []magnet.LineInfo) { s.lines = lines })
	return s
}

// StepResult is what one step did.
type StepResult struct {
	Step     int             `yaml:"step"`
	Action   string          `yaml:"action"`
	State    string          `yaml:"state"`
	Commands []CommandRecord `yaml:"commands,omitempty"`
	Lines    []LineRecord    `yaml:"magnet_lines,omitempty"`
}

type CommandRecord struct {
	Kind    string         `yaml:"kind"`
	Name    string         `yaml:"name"`
	Changes []ChangeRecord `yaml:"changes"`
}

type ChangeRecord struct {
	Target   string `yaml:"target"`
	Property string `yaml:"property"`
	Value    any    `yaml:"value"`
}

// LineRecord is a magnet line in the space of the control it belongs to.
type LineRecord struct {
	Axis string    `yaml:"axis"`
	Rect geom.Rect `yaml:"rect,flow"`
}

// Run applies every step of script in order and stops at the first error.
func (s *Session) Run(ctx context.Context, script Script) ([]StepResult, error) {
	results := make([]StepResult, 0, len(script.Steps))
	for i, st := range script.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res, err := s.Apply(st)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Step = i + 1
		results = append(results, res)
	}
	return results, nil
}

// Apply performs one step.
func (s *Session) Apply(st Step) (StepResult, error) {
	if err := st.validate(); err != nil {
		return StepResult{}, err
	}
	mods, _ := parseMods(st.Mods)
	res := StepResult{Action: st.actions()[0]}
	s.lines = nil

	switch {
	case st.Select != nil:
		nodes := make([]editor.Node, 0, len(st.Select))
		for _, id := range st.Select {
			c := s.Doc.Package.Find(id)
			if c == nil {
				return StepResult{}, fmt.Errorf("select: control %q not found", id)
			}
			nodes = append(nodes, c)
		}
		s.Doc.Select(nodes...)
	case st.Hover != nil:
		area, _ := editor.ParseArea(st.Hover.Area)
		info := editor.AreaInfo{Area: area}
		if st.Hover.Control != "" {
			c := s.Doc.Package.Find(st.Hover.Control)
			if c == nil {
				return StepResult{}, fmt.Errorf("hover: control %q not found", st.Hover.Control)
			}
			info.Owner = c
		}
		s.Manager.SetActiveArea(info)
	case st.Press != nil:
		s.pointer(editor.PhaseBegan, *st.Press, mods)
	case st.Drag != nil:
		s.pointer(editor.PhaseDrag, *st.Drag, mods)
	case st.Release != nil:
		s.pointer(editor.PhaseEnded, *st.Release, mods)
	case st.Key != "":
		key, _ := parseKey(st.Key)
		s.Manager.HandleInput(editor.Event{Device: editor.DeviceKeyboard, Phase: editor.PhaseKeyDown, Key: key, Modifiers: mods})
	case st.Undo > 0:
		if err := s.repeat(st.Undo, s.Undo.Undo); err != nil {
			return StepResult{}, fmt.Errorf("undo: %w", err)
		}
	case st.Redo > 0:
		if err := s.repeat(st.Redo, s.Undo.Redo); err != nil {
			return StepResult{}, fmt.Errorf("redo: %w", err)
		}
	}

	res.State = s.Manager.DragState().String()
	for _, cmd := range s.rec.take() {
		res.Commands = append(res.Commands, record(cmd))
	}
	for _, l := range s.lines {
		res.Lines = append(res.Lines, LineRecord{Axis: l.Axis.String(), Rect: l.Rect})
	}
	s.logger.Debug("step", slog.String("action", res.Action), slog.String("state", res.State), slog.Int("commands", len(res.Commands)))
	return res, nil
}

func (s *Session) pointer(phase editor.Phase, p geom.Vec2, mods editor.Modifiers) {
	s.Manager.HandleInput(editor.Event{
		Device:    editor.DeviceMouse,
		Phase:     phase,
		Button:    editor.ButtonLeft,
		Point:     p,
		Modifiers: mods,
	})
}

func (s *Session) repeat(n int, fn func() (undo.Command, bool, error)) error {
	for i := 0; i < n; i++ {
		_, ok, err := fn()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}
	return nil
}

func record(cmd undo.Command) CommandRecord {
	r := CommandRecord{Kind: cmd.Kind.String(), Name: cmd.Name}
	for _, c := range cmd.Changes {
		r.Changes = append(r.Changes, ChangeRecord{Target: c.Target, Property: c.Property.Name(), Value: c.Value})
	}
	return r
}
