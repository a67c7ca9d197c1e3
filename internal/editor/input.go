/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor holds the contract between the systems manager and the
// editing systems plugged into it: input events, handle areas, drag states
// and the scene-node capabilities the systems read and write.
package editor

import "layoutedit/internal/geom"

type Device int

const (
	DeviceMouse Device = iota
	DeviceKeyboard
	DeviceTouch
)

type Phase int

const (
	PhaseBegan Phase = iota
	PhaseDrag
	PhaseEnded
	PhaseMove // hover without a pressed button
	PhaseKeyDown
	PhaseKeyUp
	PhaseWheel
)

type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEscape
	KeyDelete
)

// Modifiers is a bit set of held modifier keys.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

func (m Modifiers) Has(mod Modifiers) bool { return m&mod != 0 }

// Event is one input event as seen by the editing systems.
type Event struct {
	Device    Device
	Phase     Phase
	Button    Button
	Key       Key
	Modifiers Modifiers
	// Point is the pointer position in screen space.
	Point geom.Vec2
	// Delta is the pointer movement since the previous mouse event.
	// Manager fills it for mouse events; other devices leave it zero.
	Delta geom.Vec2
}

// IsPointer reports whether the event comes from a mouse or touch device.
func (e Event) IsPointer() bool { return e.Device == DeviceMouse || e.Device == DeviceTouch }
