/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import (
	"github.com/chewxy/math32"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
	"layoutedit/internal/magnet"
	"layoutedit/internal/undo"
)

// direction tells how a resize handle moves along one axis.
type direction int

const (
	negative direction = -1
	fixed    direction = 0
	positive direction = 1
)

type directions [2]direction

var resizeDirections = map[editor.Area]directions{
	editor.TopLeftArea:      {negative, negative},
	editor.TopCenterArea:    {fixed, negative},
	editor.TopRightArea:     {positive, negative},
	editor.CenterLeftArea:   {negative, fixed},
	editor.CenterRightArea:  {positive, fixed},
	editor.BottomLeftArea:   {negative, positive},
	editor.BottomCenterArea: {fixed, positive},
	editor.BottomRightArea:  {positive, positive},
}

// resize grows or shrinks the active control by the screen delta of the
// dragged handle. withPivot keeps the pivot in place, rateably keeps the
// aspect ratio.
func (s *System) resize(delta geom.Vec2, withPivot, rateably bool) {
	dirs, ok := resizeDirections[s.area]
	if !ok || s.active == nil || s.sizeProp == nil {
		return
	}
	pivot := editor.Vec2Of(s.pivotProp)

	mapped := geom.Rotate(delta.Div(s.controlGD.Scale), -s.controlGD.Angle)
	deltaSize, deltaPos := mapped, mapped
	for _, axis := range geom.Axes {
		dir := dirs[axis]
		deltaSize.Set(axis, deltaSize.At(axis)*float32(dir))
		switch dir {
		case negative:
			deltaPos.Set(axis, deltaPos.At(axis)*(1-pivot.At(axis)))
		case positive:
			deltaPos.Set(axis, deltaPos.At(axis)*pivot.At(axis))
		default:
			deltaPos.Set(axis, 0)
		}

		if withPivot {
			deltaPos.Set(axis, 0)
			toPivot := 1 - pivot.At(axis)
			if dir == negative {
				toPivot = pivot.At(axis)
			}
			if toPivot != 0 {
				deltaSize.Set(axis, deltaSize.At(axis)/toPivot)
			}
		}
	}

	size := editor.Vec2Of(s.sizeProp)
	if rateably && size.X > 0 && size.Y > 0 {
		proportion := size.X / size.Y
		prop := geom.V(deltaSize.Y*proportion, deltaSize.X/proportion)
		// the axis that moved less follows the other one
		axis := geom.AxisY
		if math32.Abs(deltaSize.Y) > math32.Abs(deltaSize.X) {
			axis = geom.AxisX
		}
		deltaSize.Set(axis, prop.At(axis))
		if !withPivot {
			p := pivot.At(axis)
			switch dirs[axis] {
			case fixed:
				deltaPos.Set(axis, prop.At(axis)*(0.5-p)*-1)
			case negative:
				deltaPos.Set(axis, prop.At(axis)*(1-p)*float32(negative))
			default:
				deltaPos.Set(axis, prop.At(axis)*p)
			}
		}
	}

	var transformPoint geom.Vec2
	if withPivot {
		transformPoint = pivot
	}
	for _, axis := range geom.Axes {
		if dirs[axis] == negative {
			transformPoint.Set(axis, 1-transformPoint.At(axis))
		}
	}

	origDeltaSize := deltaSize
	deltaSize = deltaSize.Add(s.extra)
	s.extra = geom.Vec2{}

	adjusted := s.adjustResizeToBorderAndMinimum(deltaSize, transformPoint, dirs)
	adjusted = geom.ClampVec(adjusted, &s.extra)
	adjusted = s.keepAboveMinimum(size, adjusted)

	for _, axis := range geom.Axes {
		if o := origDeltaSize.At(axis); o != 0 {
			deltaPos.Set(axis, deltaPos.At(axis)*adjusted.At(axis)/o)
		}
	}
	local := s.active.LocalGeometricData()
	deltaPos = geom.Rotate(deltaPos.Mul(local.Scale), local.Angle)

	finalSize := size.Add(adjusted)
	origPos := editor.Vec2Of(s.posProp)
	finalPos := origPos
	if s.active.Parent() != nil {
		finalPos = finalPos.Add(deltaPos)
	}

	changes := []undo.Change{change(s.active, s.sizeProp, finalSize)}
	if s.posProp != nil {
		changes = append(changes, change(s.active, s.posProp, finalPos))
	}
	s.exec(undo.KindResize, "resize", changes...)
}

func (s *System) adjustResizeToBorderAndMinimum(deltaSize, transformPoint geom.Vec2, dirs directions) geom.Vec2 {
	var lines []magnet.LineInfo
	toBorder := deltaSize
	parent := s.active.Parent()
	if s.prefs.CanMagnet && s.active.LocalGeometricData().Angle == 0 && parent != nil {
		toBorder, lines = s.adjustResizeToBorder(deltaSize, transformPoint, dirs, parent)
	}
	adjusted := s.adjustResizeToMinimumSize(toBorder)
	if adjusted != toBorder {
		lines = nil
	}
	s.emit(lines)
	return adjusted
}

// adjustResizeToBorder snaps the moving edges to the nearest magnet line in
// front of the transform origin. Capture range and correction are weighted
// by how far the anchor is from the origin.
func (s *System) adjustResizeToBorder(deltaSize, transformPoint geom.Vec2, dirs directions, parent editor.Control) (geom.Vec2, []magnet.LineInfo) {
	gd := s.active.LocalGeometricData()
	gd.Size = gd.Size.Add(deltaSize)
	box := gd.AABB()
	box = box.Offset(geom.Rotate(deltaSize.Mul(transformPoint).Mul(gd.Scale), gd.Angle).Neg())
	transformPos := box.Pos().Add(box.Size().Mul(transformPoint))

	var matched []magnet.LineInfo
	live := parent.GeometricData()
	for _, axis := range geom.Axes {
		dir := float32(dirs[axis])
		if dir == 0 {
			continue
		}
		lines := magnet.Generate(box, s.sources(s.active, parent, s.parentGD, axis), axis)
		lines = magnet.RejectBehind(lines, transformPos.At(axis), dir > 0)
		nearest, ok := magnet.NearestForResize(lines, transformPoint.At(axis))
		if !ok {
			continue
		}
		share := magnet.ResizeShare(nearest, transformPoint.At(axis))
		if share > 0 && magnet.InRange(nearest, s.prefs.ResizeMagnetRange.At(axis)*share) {
			old := deltaSize.At(axis)
			interval := nearest.Interval * dir * -1 / share
			deltaSize.Set(axis, old+interval/gd.Scale.At(axis))
			s.extra.Set(axis, s.extra.At(axis)+old-deltaSize.At(axis))
		}
		for i := range lines {
			lineShare := magnet.ResizeShare(lines[i], transformPoint.At(axis))
			lines[i].Interval -= s.extra.At(axis) * gd.Scale.At(axis) * lineShare * dir
		}
		matched = append(matched, magnet.Matched(lines, live, axis)...)
	}
	return deltaSize, matched
}

// keepAboveMinimum undoes a floor that pushed a shrinking size below the
// minimum. The whole step closest to the minimum is kept and the difference
// moves into the residual.
func (s *System) keepAboveMinimum(size, deltaSize geom.Vec2) geom.Vec2 {
	minimum := s.prefs.MinimumSize.Div(s.controlGD.Scale)
	for _, axis := range geom.Axes {
		d := deltaSize.At(axis)
		if d >= 0 || size.At(axis)+d >= minimum.At(axis) {
			continue
		}
		raised := math32.Ceil(minimum.At(axis) - size.At(axis))
		s.extra.Set(axis, s.extra.At(axis)-(raised-d))
		deltaSize.Set(axis, raised)
	}
	return deltaSize
}

// adjustResizeToMinimumSize keeps the size at or above the minimum. Whatever
// the clamp holds back is added to the residual.
func (s *System) adjustResizeToMinimumSize(deltaSize geom.Vec2) geom.Vec2 {
	minimum := s.prefs.MinimumSize.Div(s.controlGD.Scale)
	orig := editor.Vec2Of(s.sizeProp)
	final := orig.Add(deltaSize)
	for _, axis := range geom.Axes {
		if deltaSize.At(axis) > 0 {
			continue
		}
		m := minimum.At(axis)
		if orig.At(axis) > m {
			if final.At(axis) > m {
				continue
			}
			s.extra.Set(axis, s.extra.At(axis)+final.At(axis)-m)
			deltaSize.Set(axis, m-orig.At(axis))
		} else {
			s.extra.Set(axis, s.extra.At(axis)+deltaSize.At(axis))
			deltaSize.Set(axis, 0)
		}
	}
	return deltaSize
}
