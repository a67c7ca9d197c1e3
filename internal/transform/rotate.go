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

	"github.com/chewxy/math32"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
	"layoutedit/internal/undo"
)

// minRotateRadius is the distance from the rotation center below which the
// pointer angle is too unstable to use.
const minRotateRadius float32 = 15

// rotate turns the active control by the angle the pointer swept around its
// pivot since the previous step.
func (s *System) rotate(pos geom.Vec2) bool {
	if s.active == nil || s.angleProp == nil {
		return false
	}
	center := s.controlGD.UnrotatedRect().Pos().Add(s.controlGD.PivotPoint.Mul(s.controlGD.Scale))
	l1 := s.prevMouse.Sub(center)
	l2 := pos.Sub(center)
	if l2.Length() < minRotateRadius {
		return false
	}

	rad := math32.Atan2(l1.X*l2.Y-l2.X*l1.Y, l1.X*l2.X+l1.Y*l2.Y)
	delta := geom.RadToDeg(rad) + s.extra.X
	s.extra = geom.Vec2{}

	orig := editor.FloatOf(s.angleProp)
	final := s.adjustRotateToFixedAngle(delta, orig)
	s.exec(undo.KindProperty, "rotate", change(s.active, s.angleProp, final))

	s.prevMouse = pos
	return true
}

// adjustRotateToFixedAngle returns the angle to commit for orig+delta. With
// shift it moves in whole segments and only in the direction of delta.
func (s *System) adjustRotateToFixedAngle(delta, orig float32) float32 {
	final := orig + delta
	step := int32(s.prefs.AngleSegment)
	if !s.prefs.shiftPressed(s.mods) || step <= 0 {
		return geom.ClampScalar(final, &s.extra.X)
	}

	if delta == 0 {
		return orig
	}
	nearest := int32(final) - int32(final)%step
	if (final >= 0) != (delta > 0) {
		if final >= 0 {
			nearest += step
		} else {
			nearest -= step
		}
	}
	target := float32(nearest)
	if (delta >= 0 && target <= orig+geom.TransformEpsilon) || (delta < 0 && target >= orig-geom.TransformEpsilon) {
		s.extra.X = delta
		return orig
	}
	s.extra.X = final - target
	return target
}

// clampAngle folds the angle back into [-360, 360] once the rotation ends.
func (s *System) clampAngle() {
	if s.active == nil || s.angleProp == nil {
		return
	}
	angle := editor.FloatOf(s.angleProp)
	if math32.Abs(angle) > 360 {
		if angle > 0 {
			angle += geom.TransformEpsilon
		} else {
			angle -= geom.TransformEpsilon
		}
		angle = float32(int32(angle) % 360)
	}
	s.logger.Debug("angle normalized", slog.Float64("angle", float64(angle)))
	s.exec(undo.KindProperty, "rotate", change(s.active, s.angleProp, angle))
}
