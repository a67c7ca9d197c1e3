/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package magnet generates alignment candidates ("magnet lines") for a box
// being moved or resized inside its parent and picks the one to snap to.
// Everything here works in the parent's local space and is UI-agnostic so the
// transform gestures and tests can share it.
package magnet

import "layoutedit/internal/geom"

// Line pairs an anchor of the manipulated box with a target position along one axis.
// Shares are fractions of the box extent: 0 leading edge, 0.5 center, 1 trailing edge.
type Line struct {
	ControlShare float32
	ControlPos   float32
	ControlBox   geom.Rect

	TargetPos float32
	// TargetBox is empty for guide lines.
	TargetBox geom.Rect

	// Interval is ControlPos - TargetPos.
	Interval float32
	Axis     geom.Axis
}

// BoxLine aligns controlShare of controlBox with targetShare of targetBox.
func BoxLine(controlShare float32, controlBox geom.Rect, targetShare float32, targetBox geom.Rect, axis geom.Axis) Line {
	l := Line{
		ControlShare: controlShare,
		ControlBox:   controlBox,
		TargetBox:    targetBox,
		Axis:         axis,
	}
	l.ControlPos = controlBox.Start(axis) + controlBox.Extent(axis)*controlShare
	l.TargetPos = targetBox.Start(axis) + targetBox.Extent(axis)*targetShare
	l.Interval = l.ControlPos - l.TargetPos
	return l
}

// ValueLine aligns controlShare of controlBox with a fixed coordinate.
func ValueLine(controlShare float32, controlBox geom.Rect, target float32, axis geom.Axis) Line {
	l := Line{
		ControlShare: controlShare,
		ControlBox:   controlBox,
		TargetPos:    target,
		Axis:         axis,
	}
	l.ControlPos = controlBox.Start(axis) + controlBox.Extent(axis)*controlShare
	l.Interval = l.ControlPos - l.TargetPos
	return l
}

// LineInfo is the rendering hint for a matched line.
type LineInfo struct {
	TargetBox geom.Rect
	// Rect is the visual line, one unit thick across the aligned boxes.
	Rect   geom.Rect
	Parent geom.GeometricData
	Axis   geom.Axis
}

// SharePair is a (control share, target share) combination to test.
type SharePair struct{ Control, Target float32 }

var (
	parentPairs = []SharePair{{0, 0}, {0, 0.5}, {0.5, 0.5}, {1, 0.5}, {1, 1}}
	// siblings can also be abutted edge to edge
	siblingPairs = []SharePair{{0, 0}, {0, 0.5}, {0.5, 0.5}, {1, 0.5}, {1, 1}, {0, 1}, {1, 0}}
	guideShares  = []float32{0, 0.5, 1}
)

// Sources describes the snap targets around a box. Guides are already
// expressed in the parent's local space; leave them nil when guides do not apply.
type Sources struct {
	Parent   geom.GeometricData
	Siblings []geom.Rect
	Guides   []float32
}

// Generate returns every candidate line for box along axis: parent, siblings, then guides.
func Generate(box geom.Rect, src Sources, axis geom.Axis) []Line {
	lines := make([]Line, 0, len(parentPairs)+len(src.Siblings)*len(siblingPairs)+len(src.Guides)*len(guideShares))
	lines = append(lines, ToParent(box, src.Parent.Size, axis)...)
	lines = append(lines, ToSiblings(box, src.Siblings, axis)...)
	lines = append(lines, ToGuides(box, src.Guides, axis)...)
	return lines
}

// ToParent aligns box with the parent's own local bounds. A parent with no
// extent along axis yields nothing.
func ToParent(box geom.Rect, parentSize geom.Vec2, axis geom.Axis) []Line {
	parentBox := geom.RectFrom(geom.Vec2{}, parentSize)
	if parentBox.Extent(axis) <= 0 {
		return nil
	}
	lines := make([]Line, 0, len(parentPairs))
	for _, p := range parentPairs {
		lines = append(lines, BoxLine(p.Control, box, p.Target, parentBox, axis))
	}
	return lines
}

// ToSiblings aligns box with every sibling bounding box.
func ToSiblings(box geom.Rect, siblings []geom.Rect, axis geom.Axis) []Line {
	lines := make([]Line, 0, len(siblings)*len(siblingPairs))
	for _, s := range siblings {
		for _, p := range siblingPairs {
			lines = append(lines, BoxLine(p.Control, box, p.Target, s, axis))
		}
	}
	return lines
}

// ToGuides aligns the leading edge, center and trailing edge of box with every guide.
func ToGuides(box geom.Rect, guides []float32, axis geom.Axis) []Line {
	lines := make([]Line, 0, len(guides)*len(guideShares))
	for _, g := range guides {
		for _, share := range guideShares {
			lines = append(lines, ValueLine(share, box, g, axis))
		}
	}
	return lines
}

// GuideToLocal converts a guide coordinate from the root control's space into
// the local space of parent. Both geometric data are absolute.
func GuideToLocal(value float32, root, parent geom.GeometricData, axis geom.Axis) float32 {
	global := value*root.Scale.At(axis) + (root.Position.At(axis) - root.PivotPoint.At(axis)*root.Scale.At(axis))
	origin := parent.Position.At(axis) - parent.PivotPoint.At(axis)*parent.Scale.At(axis)
	return (global - origin) / parent.Scale.At(axis)
}
