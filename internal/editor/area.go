/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "fmt"

// Area identifies the handle under the pointer.
type Area int

const (
	NoArea Area = iota
	TopLeftArea
	TopCenterArea
	TopRightArea
	CenterLeftArea
	CenterRightArea
	BottomLeftArea
	BottomCenterArea
	BottomRightArea
	FrameArea
	PivotPointArea
	RotateArea
)

var areaNames = [...]string{
	NoArea:           "none",
	TopLeftArea:      "top-left",
	TopCenterArea:    "top-center",
	TopRightArea:     "top-right",
	CenterLeftArea:   "center-left",
	CenterRightArea:  "center-right",
	BottomLeftArea:   "bottom-left",
	BottomCenterArea: "bottom-center",
	BottomRightArea:  "bottom-right",
	FrameArea:        "frame",
	PivotPointArea:   "pivot",
	RotateArea:       "rotate",
}

func (a Area) String() string {
	if a >= 0 && int(a) < len(areaNames) {
		return areaNames[a]
	}
	return fmt.Sprintf("Area(%d)", int(a))
}

// ParseArea is the inverse of String.
func ParseArea(s string) (Area, error) {
	for i, n := range areaNames {
		if n == s {
			return Area(i), nil
		}
	}
	return NoArea, fmt.Errorf("unknown area %q", s)
}

// IsResize reports whether a is one of the eight corner or edge handles.
func (a Area) IsResize() bool { return a >= TopLeftArea && a <= BottomRightArea }

// AreaInfo is the hovered handle and the control that owns it.
type AreaInfo struct {
	Area  Area
	Owner Control
}

// DragState is the global interaction state. When several systems request a
// state for the same event, the highest value wins.
type DragState int

const (
	NoDrag DragState = iota
	SelectByRect
	DragScreen
	Transform
)

func (s DragState) String() string {
	switch s {
	case NoDrag:
		return "no-drag"
	case SelectByRect:
		return "select-by-rect"
	case DragScreen:
		return "drag-screen"
	case Transform:
		return "transform"
	}
	return fmt.Sprintf("DragState(%d)", int(s))
}
