/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package magnet

import (
	"github.com/chewxy/math32"

	"layoutedit/internal/geom"
)

// Nearest returns the line with the smallest absolute interval.
func Nearest(lines []Line) (Line, bool) {
	if len(lines) == 0 {
		return Line{}, false
	}
	best := lines[0]
	for _, l := range lines[1:] {
		if math32.Abs(l.Interval) < math32.Abs(best.Interval) {
			best = l
		}
	}
	return best, true
}

// InRange reports whether the control anchor of l lies inside
// [target-captureRange, target+captureRange]. Both bounds are inclusive.
func InRange(l Line, captureRange float32) bool {
	return l.ControlPos >= l.TargetPos-captureRange && l.ControlPos <= l.TargetPos+captureRange
}

// Snap picks the nearest line and, when it is within captureRange, returns the
// interval that must be removed from the delta to align it exactly.
func Snap(lines []Line, captureRange float32) (float32, bool) {
	nearest, ok := Nearest(lines)
	if !ok || !InRange(nearest, captureRange) {
		return 0, false
	}
	return nearest.Interval, true
}

// Settle re-offsets lines by the residual that was held back from the
// applied delta so that the intervals describe the committed geometry.
func Settle(lines []Line, residual geom.Vec2) {
	for i := range lines {
		lines[i].Interval -= residual.At(lines[i].Axis)
		lines[i].ControlBox = lines[i].ControlBox.Offset(residual.Neg())
	}
}

// ResizeShare is the distance, in shares of the box, between the line's
// control anchor and the fixed transform origin of a resize.
func ResizeShare(l Line, originShare float32) float32 {
	return math32.Abs(l.ControlShare - originShare)
}

// RejectBehind drops lines whose target or control anchor is not strictly on
// the growing side of the transform origin at originPos.
func RejectBehind(lines []Line, originPos float32, positive bool) []Line {
	kept := lines[:0]
	for _, l := range lines {
		var remove bool
		if positive {
			remove = l.TargetPos <= originPos || l.ControlPos <= originPos
		} else {
			remove = l.TargetPos >= originPos || l.ControlPos >= originPos
		}
		if !remove {
			kept = append(kept, l)
		}
	}
	return kept
}

// NearestForResize compares lines by the size change needed to close them,
// which is the interval divided by the anchor's share distance from the origin.
// Anchors sitting on the origin never win.
func NearestForResize(lines []Line, originShare float32) (Line, bool) {
	if len(lines) == 0 {
		return Line{}, false
	}
	distance := func(l Line) float32 {
		share := l.ControlShare - originShare
		if share == 0 {
			return math32.MaxFloat32
		}
		return math32.Abs(l.Interval / share)
	}
	best, bestDist := lines[0], distance(lines[0])
	for _, l := range lines[1:] {
		if d := distance(l); d < bestDist {
			best, bestDist = l, d
		}
	}
	return best, true
}

// Matched turns every line whose interval has closed into a LineInfo for the UI.
// The visual line spans both boxes along the opposite axis.
func Matched(lines []Line, parent geom.GeometricData, axis geom.Axis) []LineInfo {
	var out []LineInfo
	opposite := axis.Opposite()
	for _, l := range lines {
		if math32.Abs(l.Interval) >= geom.TransformEpsilon {
			continue
		}
		controlStart := l.ControlBox.Start(opposite)
		controlEnd := controlStart + l.ControlBox.Extent(opposite)
		targetStart := l.TargetBox.Start(opposite)
		targetEnd := targetStart + l.TargetBox.Extent(opposite)

		var pos, size geom.Vec2
		pos.Set(axis, l.TargetPos)
		pos.Set(opposite, min(controlStart, targetStart))
		size.Set(axis, 1)
		size.Set(opposite, max(controlEnd, targetEnd)-pos.At(opposite))

		out = append(out, LineInfo{
			TargetBox: l.TargetBox,
			Rect:      geom.RectFrom(pos, size),
			Parent:    parent,
			Axis:      opposite,
		})
	}
	return out
}
