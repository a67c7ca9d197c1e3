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
)

// neighbours returns the local bounding boxes of the children of parent that
// are neither selected nor self.
func (s *System) neighbours(parent, self editor.Control) []geom.Rect {
	var boxes []geom.Rect
	for _, c := range parent.Children() {
		if c == self || s.isSelected(c) {
			continue
		}
		boxes = append(boxes, c.LocalGeometricData().AABB())
	}
	return boxes
}

// guidesFor converts the document guides along axis into the local space of
// parent. Guides only apply to an unrotated parent.
func (s *System) guidesFor(parentGD geom.GeometricData, axis geom.Axis) []float32 {
	if !s.prefs.GuidesEnabled || parentGD.Angle != 0 || s.deps.Guides == nil {
		return nil
	}
	root := s.deps.Guides.GuideRoot()
	if root == nil {
		return nil
	}
	values := s.deps.Guides.AxisGuides(axis)
	if len(values) == 0 {
		return nil
	}
	rootGD := root.GeometricData()
	local := make([]float32, 0, len(values))
	for _, v := range values {
		local = append(local, magnet.GuideToLocal(v, rootGD, parentGD, axis))
	}
	return local
}

// sources collects every snap target for control inside parent.
func (s *System) sources(control, parent editor.Control, parentGD geom.GeometricData, axis geom.Axis) magnet.Sources {
	return magnet.Sources{
		Parent:   parentGD,
		Siblings: s.neighbours(parent, control),
		Guides:   s.guidesFor(parentGD, axis),
	}
}
