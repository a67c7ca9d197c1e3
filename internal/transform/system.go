/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package transform turns pointer and keyboard input on the editor's handles
// into move, resize, rotate and pivot changes of the selected controls, with
// magnet snapping to the parent, siblings and guides. Snapped or floored
// remainders are carried between steps so the control does not drift away
// from the cursor.
package transform

import (
	"log/slog"
	"slices"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
	applog "layoutedit/internal/log"
	"layoutedit/internal/magnet"
	"layoutedit/internal/undo"
)

// Selection provides the selected nodes in selection order.
type Selection interface {
	SelectedNodes() []editor.Node
}

// Guides provides the guide lines of the displayed document.
type Guides interface {
	// GuideRoot is the control the guide values are relative to, nil if none.
	GuideRoot() editor.Control
	AxisGuides(axis geom.Axis) []float32
}

// Commander applies a batch of property changes atomically.
type Commander interface {
	Exec(cmd undo.Command) error
}

// Feedback receives the magnet lines to draw, replacing the previous set.
type Feedback interface {
	MagnetLinesChanged(lines []magnet.LineInfo)
}

// Deps are the collaborators of a System. Guides and Feedback may be nil.
type Deps struct {
	Selection Selection
	Guides    Guides
	Commands  Commander
	Feedback  Feedback
}

// moveTarget is a selected control that moves on its own, its position
// property and the control its position is relative to.
type moveTarget struct {
	control  editor.Control
	position editor.Property
	parent   editor.Control
	parentGD geom.GeometricData
}

// System is the transform editing system. It implements editor.System,
// editor.DragStateListener and editor.AreaListener and is driven
// synchronously by the editor.Manager.
type System struct {
	deps   Deps
	prefs  Preferences
	logger *slog.Logger

	area      editor.Area
	active    editor.Control
	parentGD  geom.GeometricData
	controlGD geom.GeometricData
	sizeProp  editor.Property
	posProp   editor.Property
	angleProp editor.Property
	pivotProp editor.Property

	mods      editor.Modifiers
	prevMouse geom.Vec2

	// extra is the residual of the active control; for rotation only X is used.
	extra geom.Vec2
	// followerExtra holds the residual of every other moved control by ID.
	followerExtra map[string]geom.Vec2

	selected []editor.Control
	targets  []moveTarget
	// releasePending lets the button release that ended a transform through
	// CanProcessInput so a rotation can be normalized.
	releasePending bool
}

var (
	_ editor.System            = (*System)(nil)
	_ editor.DragStateListener = (*System)(nil)
	_ editor.AreaListener      = (*System)(nil)
)

// New creates a System with prefs.
func New(deps Deps, prefs Preferences) *System {
	return &System{
		deps:          deps,
		prefs:         prefs,
		logger:        applog.WithComponent("transform"),
		followerExtra: make(map[string]geom.Vec2),
	}
}

// SetPreferences replaces the preferences. The next step uses them.
func (s *System) SetPreferences(p Preferences) { s.prefs = p }

func (s *System) Preferences() Preferences { return s.prefs }

// Residual returns the remainder carried for the active control.
func (s *System) Residual() geom.Vec2 { return s.extra }

// OnActiveAreaChanged records the hovered handle and snapshots the geometry
// and properties of its owner.
func (s *System) OnActiveAreaChanged(info editor.AreaInfo) {
	s.area = info.Area
	s.active = info.Owner
	s.snapshotActive()
}

func (s *System) snapshotActive() {
	if s.active == nil {
		s.sizeProp, s.posProp, s.angleProp, s.pivotProp = nil, nil, nil, nil
		s.parentGD, s.controlGD = geom.GeometricData{}, geom.GeometricData{}
		return
	}
	if p := s.active.Parent(); p != nil {
		s.parentGD = p.GeometricData()
	} else {
		s.parentGD = geom.GeometricData{Scale: geom.V(1, 1)}
	}
	s.controlGD = s.active.GeometricData()
	s.sizeProp = s.active.Property(editor.PropSize)
	s.posProp = s.active.Property(editor.PropPosition)
	s.angleProp = s.active.Property(editor.PropAngle)
	s.pivotProp = s.active.Property(editor.PropPivot)
}

// RequireNewState keeps a running transform until the left button is
// released and starts one when a handle is dragged with the left button.
// Only the release that ends a transform is let through afterwards.
func (s *System) RequireNewState(ev *editor.Event, current editor.DragState) editor.DragState {
	s.releasePending = false
	if current == editor.Transform {
		if ev.Device == editor.DeviceMouse && ev.Phase == editor.PhaseEnded && ev.Button == editor.ButtonLeft {
			s.releasePending = true
			return editor.NoDrag
		}
		return editor.Transform
	}
	if s.area != editor.NoArea && ev.Phase == editor.PhaseDrag && ev.Button == editor.ButtonLeft && current != editor.SelectByRect {
		// rotation measures angles from here
		s.prevMouse = ev.Point
		return editor.Transform
	}
	return editor.NoDrag
}

// CanProcessInput accepts everything during a transform, keyboard input at
// any time and the release that ended a transform.
func (s *System) CanProcessInput(ev *editor.Event, current editor.DragState) bool {
	return current == editor.Transform ||
		ev.Device == editor.DeviceKeyboard ||
		(s.releasePending && ev.Phase == editor.PhaseEnded)
}

func (s *System) ProcessInput(ev *editor.Event) {
	s.mods = ev.Modifiers
	switch ev.Phase {
	case editor.PhaseKeyDown:
		s.processKey(ev.Key)
	case editor.PhaseDrag:
		if ev.Button == editor.ButtonLeft {
			s.processDrag(ev.Point, ev.Delta)
		}
	case editor.PhaseEnded:
		s.releasePending = false
		if s.area == editor.RotateArea {
			s.clampAngle()
		}
	}
}

// OnDragStateChanged resets the residuals and rebuilds the move targets when
// a transform starts.
func (s *System) OnDragStateChanged(newState, oldState editor.DragState) {
	switch {
	case newState == editor.Transform:
		s.extra = geom.Vec2{}
		clear(s.followerExtra)
		s.releasePending = false
		s.snapshotActive()
		s.PrepareDrag()
		s.logger.Debug("transform started", slog.String("area", s.area.String()), slog.Int("targets", len(s.targets)))
	case oldState == editor.Transform:
		s.logger.Debug("transform ended", slog.String("area", s.area.String()))
	}
}

// PrepareDrag snapshots the selection: controls only, each with a parent
// control, and no control whose ancestor is a move target too.
func (s *System) PrepareDrag() {
	s.selected = s.selected[:0]
	if s.deps.Selection != nil {
		for _, n := range s.deps.Selection.SelectedNodes() {
			if c, ok := n.AsControl(); ok && c != nil {
				s.selected = append(s.selected, c)
			}
		}
	}

	s.targets = s.targets[:0]
	for _, c := range s.selected {
		parent := c.Parent()
		if parent == nil {
			continue
		}
		pos := c.Property(editor.PropPosition)
		if pos == nil {
			continue
		}
		s.targets = append(s.targets, moveTarget{
			control:  c,
			position: pos,
			parent:   parent,
			parentGD: parent.GeometricData(),
		})
	}
	all := slices.Clone(s.targets)
	s.targets = slices.DeleteFunc(s.targets, func(t moveTarget) bool {
		return slices.ContainsFunc(all, func(o moveTarget) bool {
			return editor.IsAncestor(o.control, t.control)
		})
	})
}

func (s *System) isSelected(c editor.Control) bool {
	for _, sel := range s.selected {
		if sel == c {
			return true
		}
	}
	return false
}

func (s *System) processDrag(point, delta geom.Vec2) {
	switch {
	case s.area == editor.FrameArea:
		s.moveByMouse(delta, s.prefs.CanMagnet)
	case s.area.IsResize():
		s.resize(delta, s.mods.Has(editor.ModAlt), s.mods.Has(editor.ModCtrl))
	case s.area == editor.PivotPointArea:
		s.movePivot(delta)
	case s.area == editor.RotateArea:
		s.rotate(point)
	}
}

func (s *System) emit(lines []magnet.LineInfo) {
	if s.deps.Feedback != nil {
		s.deps.Feedback.MagnetLinesChanged(lines)
	}
}

func (s *System) exec(kind undo.Kind, name string, changes ...undo.Change) {
	if s.deps.Commands == nil || len(changes) == 0 {
		return
	}
	if err := s.deps.Commands.Exec(undo.NewCommand(kind, name, changes...)); err != nil {
		s.logger.Error("command failed", slog.String("cmd", name), slog.Any("err", err))
	}
}

func change(c editor.Control, p editor.Property, v any) undo.Change {
	return undo.Change{Target: c.ID(), Property: p, Value: v}
}
