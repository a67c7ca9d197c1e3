/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geom holds the 2D geometry used by the layout editor: vectors,
// rectangles and the geometric data of a control (position, size, pivot,
// scale and angle) in local or absolute space.
// Float values use float32 to match the control properties they describe.
package geom

import "github.com/chewxy/math32"

// Axis selects one component of a Vec2.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// Axes lists both axes in processing order.
var Axes = [2]Axis{AxisX, AxisY}

// Opposite returns the other axis.
func (a Axis) Opposite() Axis {
	if a == AxisX {
		return AxisY
	}
	return AxisX
}

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Vec2 is a 2D vector or point.
type Vec2 struct {
	X float32 `yaml:"x" json:"x"`
	Y float32 `yaml:"y" json:"y"`
}

func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2   { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2   { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2   { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) Div(o Vec2) Vec2   { return Vec2{v.X / o.X, v.Y / o.Y} }
func (v Vec2) Neg() Vec2         { return Vec2{-v.X, -v.Y} }
func (v Vec2) IsZero() bool      { return v.X == 0 && v.Y == 0 }
func (v Vec2) Length() float32   { return math32.Hypot(v.X, v.Y) }
func (v Vec2) At(a Axis) float32 { return [2]float32{v.X, v.Y}[a] }

// With returns a copy of v with the component for axis a replaced.
func (v Vec2) With(a Axis, f float32) Vec2 {
	v.Set(a, f)
	return v
}

// Set assigns the component for axis a.
func (v *Vec2) Set(a Axis, f float32) {
	if a == AxisX {
		v.X = f
	} else {
		v.Y = f
	}
}

// Rotate rotates v counter-clockwise (in a y-down space: clockwise on screen) by rad radians.
func Rotate(v Vec2, rad float32) Vec2 {
	if rad == 0 {
		return v
	}
	s, c := math32.Sincos(rad)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

func DegToRad(deg float32) float32 { return deg * (math32.Pi / 180) }
func RadToDeg(rad float32) float32 { return rad * (180 / math32.Pi) }

// Rect is an axis-aligned rectangle defined by min corner and size.
type Rect struct {
	X, Y float32
	W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// RectFrom builds a rect from a position and a size vector.
func RectFrom(pos, size Vec2) Rect { return Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y} }

func (r Rect) Pos() Vec2  { return Vec2{r.X, r.Y} }
func (r Rect) Size() Vec2 { return Vec2{r.W, r.H} }

// Start returns the leading coordinate of r along a.
func (r Rect) Start(a Axis) float32 { return r.Pos().At(a) }

// Extent returns the size of r along a.
func (r Rect) Extent(a Axis) float32 { return r.Size().At(a) }

// Offset returns r moved by d.
func (r Rect) Offset(d Vec2) Rect { return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H} }

// GeometricData describes where a control is: position of its pivot point in
// the reference space, unscaled size, pivot point in size units, scale and
// angle in radians. It is either local (relative to the parent) or absolute
// (composed through all ancestors).
type GeometricData struct {
	Position   Vec2
	Size       Vec2
	PivotPoint Vec2
	Scale      Vec2
	Angle      float32
}

// UnrotatedRect is the control rect in the reference space before its rotation is applied.
func (g GeometricData) UnrotatedRect() Rect {
	return RectFrom(g.Position.Sub(g.PivotPoint.Mul(g.Scale)), g.Size.Mul(g.Scale))
}

// AABB returns the axis-aligned bounding box of the rotated control rect.
func (g GeometricData) AABB() Rect {
	ur := g.UnrotatedRect()
	if g.Angle == 0 {
		return ur
	}
	minX, minY := float32(math32.MaxFloat32), float32(math32.MaxFloat32)
	maxX, maxY := float32(-math32.MaxFloat32), float32(-math32.MaxFloat32)
	corners := [4]Vec2{{ur.X, ur.Y}, {ur.X + ur.W, ur.Y}, {ur.X, ur.Y + ur.H}, {ur.X + ur.W, ur.Y + ur.H}}
	for _, c := range corners {
		p := Rotate(c.Sub(g.Position), g.Angle).Add(g.Position)
		minX, minY = min(minX, p.X), min(minY, p.Y)
		maxX, maxY = max(maxX, p.X), max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Compose maps local geometric data g through the absolute data of its parent.
func (g GeometricData) Compose(parent GeometricData) GeometricData {
	out := g
	out.Position = Vec2{
		X: parent.Position.X - parent.PivotPoint.X*parent.Scale.X + g.Position.X*parent.Scale.X,
		Y: parent.Position.Y - parent.PivotPoint.Y*parent.Scale.Y + g.Position.Y*parent.Scale.Y,
	}
	if parent.Angle != 0 {
		out.Position = Rotate(out.Position.Sub(parent.Position), parent.Angle).Add(parent.Position)
	}
	out.Scale = g.Scale.Mul(parent.Scale)
	out.Angle = g.Angle + parent.Angle
	return out
}

