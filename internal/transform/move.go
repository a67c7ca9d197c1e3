/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import (
	"log/slog"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
	applog "layoutedit/internal/log"
	"layoutedit/internal/magnet"
	"layoutedit/internal/undo"
)

// processKey nudges every move target one step in the pressed direction.
func (s *System) processKey(key editor.Key) {
	var dir geom.Vec2
	switch key {
	case editor.KeyLeft:
		dir = geom.V(-1, 0)
	case editor.KeyRight:
		dir = geom.V(1, 0)
	case editor.KeyUp:
		dir = geom.V(0, -1)
	case editor.KeyDown:
		dir = geom.V(0, 1)
	default:
		return
	}
	s.PrepareDrag()
	step := s.prefs.KeyboardFineStep
	if s.prefs.shiftPressed(s.mods) {
		step = s.prefs.KeyboardStep
	}
	s.moveByKeyboard(dir.Mul(step))
}

func (s *System) moveByKeyboard(delta geom.Vec2) {
	if len(s.targets) == 0 {
		return
	}
	changes := make([]undo.Change, 0, len(s.targets))
	for _, t := range s.targets {
		orig := editor.Vec2Of(t.position)
		final := orig.Add(geom.RotateForDirectionalDelta(delta, t.parentGD.Angle))
		changes = append(changes, change(t.control, t.position, final))
	}
	s.exec(undo.KindProperty, "move", changes...)
}

// matchedTarget finds the move target that is the hovered control or one of
// its ancestors.
func (s *System) matchedTarget() (moveTarget, bool) {
	for c := s.active; c != nil; c = c.Parent() {
		for _, t := range s.targets {
			if t.control == c {
				return t, true
			}
		}
	}
	return moveTarget{}, false
}

// moveByMouse moves every target by mouseDelta. With canAdjust the hovered
// target snaps to magnet lines and the others follow by what it actually moved.
func (s *System) moveByMouse(mouseDelta geom.Vec2, canAdjust bool) {
	if len(s.targets) == 0 {
		return
	}
	changes := make([]undo.Change, 0, len(s.targets))
	var lead editor.Control
	if canAdjust {
		t, ok := s.matchedTarget()
		if !ok {
			// hover and selection may be one step apart
			s.logger.Debug("hovered control is not a move target")
			return
		}
		lead = t.control
		orig := editor.Vec2Of(t.position)
		final := geom.FinalPosition(t.parentGD, orig, mouseDelta, &s.extra, func(delta *geom.Vec2) {
			lines := s.adjustMoveToNearestBorder(delta, t)
			s.emit(lines)
		})
		changes = append(changes, change(t.control, t.position, final))
		mouseDelta = geom.ScreenDelta(t.parentGD, final.Sub(orig))
	}
	for _, t := range s.targets {
		if t.control == lead {
			continue
		}
		residual := s.followerExtra[t.control.ID()]
		orig := editor.Vec2Of(t.position)
		final := geom.FinalPosition(t.parentGD, orig, mouseDelta, &residual, nil)
		s.followerExtra[t.control.ID()] = residual
		changes = append(changes, change(t.control, t.position, final))
	}
	s.exec(undo.KindProperty, "move", changes...)
}

// adjustMoveToNearestBorder snaps the moved box to the nearest magnet line on
// each axis, parks the correction in the residual and returns the lines that
// match after the move.
func (s *System) adjustMoveToNearestBorder(delta *geom.Vec2, t moveTarget) []magnet.LineInfo {
	box := t.control.LocalGeometricData().AABB().Offset(*delta)
	var perAxis [2][]magnet.Line
	for _, axis := range geom.Axes {
		lines := magnet.Generate(box, s.sources(t.control, t.parent, t.parentGD, axis), axis)
		perAxis[axis] = lines
		interval, ok := magnet.Snap(lines, s.prefs.MoveMagnetRange.At(axis))
		if !ok {
			continue
		}
		old := delta.At(axis)
		delta.Set(axis, old-interval)
		s.extra.Set(axis, old-delta.At(axis))
		s.logger.Debug("move snapped",
			slog.String("axis", axis.String()),
			slog.Float64("interval", float64(interval)),
			applog.Vec("residual", s.extra.X, s.extra.Y),
		)
	}

	var matched []magnet.LineInfo
	live := t.parent.GeometricData()
	for _, axis := range geom.Axes {
		magnet.Settle(perAxis[axis], s.extra)
		matched = append(matched, magnet.Matched(perAxis[axis], live, axis)...)
	}
	return matched
}
