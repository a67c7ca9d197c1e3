/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "layoutedit/internal/geom"

// Property names the editing systems read and write.
const (
	PropPosition = "position"
	PropSize     = "size"
	PropPivot    = "pivot"
	PropAngle    = "angle"
	PropScale    = "scale"
)

// Property is a named, typed value of a control. Vector properties hold a
// geom.Vec2, angle holds a float32 in degrees.
type Property interface {
	Name() string
	Value() any
	SetValue(v any) error
}

// Node is anything that can appear in a selection. Only controls take part in
// transforms.
type Node interface {
	AsControl() (Control, bool)
}

// Control is a node of the scene tree with geometry.
type Control interface {
	Node
	ID() string
	// Parent returns nil for a root control or a control whose parent is not a control.
	Parent() Control
	Children() []Control
	// GeometricData is composed through all ancestors.
	GeometricData() geom.GeometricData
	// LocalGeometricData is relative to the parent.
	LocalGeometricData() geom.GeometricData
	// Property returns nil when the control has no property with that name.
	Property(name string) Property
}

// Vec2Of reads a vector property, zero when p is nil or holds another type.
func Vec2Of(p Property) geom.Vec2 {
	if p == nil {
		return geom.Vec2{}
	}
	v, _ := p.Value().(geom.Vec2)
	return v
}

// FloatOf reads a scalar property, zero when p is nil or holds another type.
func FloatOf(p Property) float32 {
	if p == nil {
		return 0
	}
	f, _ := p.Value().(float32)
	return f
}

// IsAncestor reports whether anc is a strict ancestor of c.
func IsAncestor(anc, c Control) bool {
	for p := c.Parent(); p != nil; p = p.Parent() {
		if p == anc {
			return true
		}
	}
	return false
}
