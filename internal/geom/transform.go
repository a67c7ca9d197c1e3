/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Helpers shared by the interactive gestures: directional remapping of
// nudges, integer clamping with carried remainder and the common
// screen-delta to final-position path.

import "github.com/chewxy/math32"

// TransformEpsilon biases vector clamping so float noise just under an
// integer does not flicker one unit down.
const TransformEpsilon float32 = 0.0005

var (
	quarterCos = math32.Cos(math32.Pi / 4)
	backCos    = math32.Cos(math32.Pi + math32.Pi/4)
)

// RotateForDirectionalDelta maps delta into the quadrant of angle (radians)
// so that a nudge stays on a cardinal axis of the rotated parent:
//
//	(-45, 45]   -> ( x,  y)
//	(45, 135]   -> ( y, -x)
//	(135, 225]  -> (-x, -y)
//	otherwise   -> (-y,  x)
//
// Only the four-way classification matters; the exact closed/open choice at
// the band boundaries follows from the cosine/sine comparisons below.
func RotateForDirectionalDelta(delta Vec2, angle float32) Vec2 {
	c := math32.Cos(angle)
	switch {
	case c > quarterCos:
		return delta
	case c < backCos:
		return Vec2{-delta.X, -delta.Y}
	case math32.Sin(angle) > 0:
		return Vec2{delta.Y, -delta.X}
	default:
		return Vec2{-delta.Y, delta.X}
	}
}

// ClampVec floors value (with TransformEpsilon bias) and adds the discarded
// fraction to residual.
func ClampVec(value Vec2, residual *Vec2) Vec2 {
	clamped := Vec2{
		X: math32.Floor(value.X + TransformEpsilon),
		Y: math32.Floor(value.Y + TransformEpsilon),
	}
	*residual = residual.Add(value.Sub(clamped))
	return clamped
}

// ClampScalar floors value and adds the discarded fraction to residual.
func ClampScalar(value float32, residual *float32) float32 {
	clamped := math32.Floor(value)
	*residual += value - clamped
	return clamped
}

// DeltaAdjuster may rewrite a parent-local delta before it is applied,
// for example to snap the moved control to a magnet line.
type DeltaAdjuster func(delta *Vec2)

// FinalPosition converts a screen-space mouse delta into the parent's local
// space, pays back and clears the residual, lets adjust rewrite the delta,
// adds it to original and clamps the result to integers. Whatever the clamp
// discards ends up in residual again.
func FinalPosition(parent GeometricData, original, mouseDelta Vec2, residual *Vec2, adjust DeltaAdjuster) Vec2 {
	delta := Rotate(mouseDelta.Div(parent.Scale), -parent.Angle)

	delta = delta.Add(*residual)
	*residual = Vec2{}

	if adjust != nil {
		adjust(&delta)
	}
	return ClampVec(original.Add(delta), residual)
}

// ScreenDelta is the inverse of the first step of FinalPosition: it maps a
// parent-local position change back to screen space.
func ScreenDelta(parent GeometricData, local Vec2) Vec2 {
	return Rotate(local, parent.Angle).Mul(parent.Scale)
}
