/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import (
	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
	"layoutedit/internal/magnet"
	"layoutedit/internal/undo"
)

// movePivot moves the pivot of the active control by the screen delta and
// moves its position along so the control stays where it is on screen.
func (s *System) movePivot(delta geom.Vec2) {
	if s.active == nil || s.pivotProp == nil || s.posProp == nil {
		return
	}
	pivot := s.adjustPivotToNearestArea(&delta)

	local := geom.Rotate(delta.Div(s.parentGD.Scale), -s.parentGD.Angle)
	pos := editor.Vec2Of(s.posProp).Add(local)

	s.exec(undo.KindPivot, "move pivot",
		change(s.active, s.pivotProp, pivot),
		change(s.active, s.posProp, pos),
	)
}

// adjustPivotToNearestArea returns the new pivot. With shift the pivot snaps
// to the nearest grid point within range and delta is rewritten to the
// screen distance actually travelled.
func (s *System) adjustPivotToNearestArea(delta *geom.Vec2) geom.Vec2 {
	var lines []magnet.LineInfo
	size := s.controlGD.UnrotatedRect().Size()
	if size.X <= 0 || size.Y <= 0 {
		s.emit(nil)
		return editor.Vec2Of(s.pivotProp)
	}
	deltaPivot := geom.Rotate(*delta, -s.controlGD.Angle).Div(size)
	captureRange := s.prefs.PivotMagnetRange.Div(size)

	orig := editor.Vec2Of(s.pivotProp)
	final := orig.Add(deltaPivot).Add(s.extra)

	share := s.prefs.PivotGridShare
	target, found := geom.Vec2{}, false
	if s.prefs.shiftPressed(s.mods) && share.X > 0 && share.Y > 0 {
		target, found = nearestGridPoint(final, share, captureRange)
	}

	if found {
		lines = pivotLines(target, s.controlGD)
		s.extra = final.Sub(target)
		*delta = geom.Rotate(target.Sub(orig).Mul(size), s.controlGD.Angle)
		final = target
	} else if !s.extra.IsZero() {
		deltaPivot = deltaPivot.Add(s.extra)
		s.extra = geom.Vec2{}
		*delta = geom.Rotate(deltaPivot.Mul(size), s.controlGD.Angle)
	}
	s.emit(lines)
	return final
}

// nearestGridPoint searches the points i*share in [0, 1] on both axes for the
// one closest to p whose capture box contains p.
func nearestGridPoint(p, share, captureRange geom.Vec2) (geom.Vec2, bool) {
	const limit = 1 + geom.TransformEpsilon
	var best geom.Vec2
	bestDist := float32(-1)
	for i := 0; float32(i)*share.X <= limit; i++ {
		x := float32(i) * share.X
		if p.X < x-captureRange.X || p.X > x+captureRange.X {
			continue
		}
		for j := 0; float32(j)*share.Y <= limit; j++ {
			y := float32(j) * share.Y
			if p.Y < y-captureRange.Y || p.Y > y+captureRange.Y {
				continue
			}
			d := p.Sub(geom.V(x, y))
			if dist := d.X*d.X + d.Y*d.Y; bestDist < 0 || dist < bestDist {
				best, bestDist = geom.V(x, y), dist
			}
		}
	}
	return best, bestDist >= 0
}

// pivotLines draws a horizontal and a vertical line through target, in the
// control's own space.
func pivotLines(target geom.Vec2, control geom.GeometricData) []magnet.LineInfo {
	size := control.Size
	offset := size.Mul(target)
	box := geom.RectFrom(geom.Vec2{}, size)
	return []magnet.LineInfo{
		{TargetBox: box, Rect: geom.R(0, offset.Y, size.X, 1), Parent: control, Axis: geom.AxisX},
		{TargetBox: box, Rect: geom.R(offset.X, 0, 1, size.Y), Parent: control, Axis: geom.AxisY},
	}
}
