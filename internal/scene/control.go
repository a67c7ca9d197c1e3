/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene is an in-memory control tree that backs the editing systems:
// controls with named geometric properties, a package node that is not a
// control, selection and the document's guide lookup.
package scene

import (
	"errors"
	"fmt"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
)

var (
	// ErrValueType is returned when a property is set to a value of the wrong type.
	ErrValueType = errors.New("wrong value type")
	// ErrUnknownProperty is returned for property names a control does not have.
	ErrUnknownProperty = errors.New("unknown property")
)

// Control is a scene node with geometry. Pivot is a fraction of Size and
// Angle is in degrees.
type Control struct {
	id       string
	parent   *Control
	children []*Control

	position geom.Vec2
	size     geom.Vec2
	pivot    geom.Vec2
	scale    geom.Vec2
	angle    float32
}

// NewControl creates a detached control with unit scale.
func NewControl(id string, position, size geom.Vec2) *Control {
	return &Control{id: id, position: position, size: size, scale: geom.V(1, 1)}
}

func (c *Control) ID() string { return c.id }

func (c *Control) AsControl() (editor.Control, bool) { return c, true }

// Add appends children and returns c.
func (c *Control) Add(children ...*Control) *Control {
	for _, ch := range children {
		ch.parent = c
		c.children = append(c.children, ch)
	}
	return c
}

func (c *Control) Parent() editor.Control {
	if c.parent == nil {
		return nil
	}
	return c.parent
}

func (c *Control) Children() []editor.Control {
	out := make([]editor.Control, len(c.children))
	for i, ch := range c.children {
		out[i] = ch
	}
	return out
}

func (c *Control) LocalGeometricData() geom.GeometricData {
	return geom.GeometricData{
		Position:   c.position,
		Size:       c.size,
		PivotPoint: c.pivot.Mul(c.size),
		Scale:      c.scale,
		Angle:      geom.DegToRad(c.angle),
	}
}

func (c *Control) GeometricData() geom.GeometricData {
	local := c.LocalGeometricData()
	if c.parent == nil {
		return local
	}
	return local.Compose(c.parent.GeometricData())
}

// Position, Size, Pivot, Scale and Angle read the raw property values.
func (c *Control) Position() geom.Vec2 { return c.position }
func (c *Control) Size() geom.Vec2     { return c.size }
func (c *Control) Pivot() geom.Vec2    { return c.pivot }
func (c *Control) Scale() geom.Vec2    { return c.scale }
func (c *Control) Angle() float32      { return c.angle }

func (c *Control) Property(name string) editor.Property {
	switch name {
	case editor.PropPosition, editor.PropSize, editor.PropPivot, editor.PropScale, editor.PropAngle:
		return &property{c: c, name: name}
	}
	return nil
}

// Set writes a property by name.
func (c *Control) Set(name string, v any) error {
	p := c.Property(name)
	if p == nil {
		return fmt.Errorf("%s.%s: %w", c.id, name, ErrUnknownProperty)
	}
	return p.SetValue(v)
}

// Walk visits c and its descendants depth first.
func (c *Control) Walk(fn func(*Control)) {
	fn(c)
	for _, ch := range c.children {
		ch.Walk(fn)
	}
}

type property struct {
	c    *Control
	name string
}

func (p *property) Name() string { return p.name }

func (p *property) Value() any {
	switch p.name {
	case editor.PropPosition:
		return p.c.position
	case editor.PropSize:
		return p.c.size
	case editor.PropPivot:
		return p.c.pivot
	case editor.PropScale:
		return p.c.scale
	default:
		return p.c.angle
	}
}

func (p *property) SetValue(v any) error {
	if p.name == editor.PropAngle {
		switch f := v.(type) {
		case float32:
			p.c.angle = f
		case float64:
			p.c.angle = float32(f)
		default:
			return fmt.Errorf("%s.%s: %w: %T", p.c.id, p.name, ErrValueType, v)
		}
		return nil
	}
	vec, ok := v.(geom.Vec2)
	if !ok {
		return fmt.Errorf("%s.%s: %w: %T", p.c.id, p.name, ErrValueType, v)
	}
	switch p.name {
	case editor.PropPosition:
		p.c.position = vec
	case editor.PropSize:
		p.c.size = vec
	case editor.PropPivot:
		p.c.pivot = vec
	case editor.PropScale:
		p.c.scale = vec
	}
	return nil
}

// Package is the top of a document. It is a selectable node but not a control.
type Package struct {
	Name  string
	Roots []*Control
}

func (p *Package) AsControl() (editor.Control, bool) { return nil, false }

// Find returns the control with id anywhere below the package.
func (p *Package) Find(id string) *Control {
	var found *Control
	for _, r := range p.Roots {
		r.Walk(func(c *Control) {
			if found == nil && c.id == id {
				found = c
			}
		})
	}
	return found
}
