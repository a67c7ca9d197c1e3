/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"log/slog"
	"sync"

	"layoutedit/internal/geom"
	applog "layoutedit/internal/log"
	"layoutedit/internal/magnet"
)

// System is an editing system driven by the Manager.
type System interface {
	// RequireNewState returns the drag state the system wants after ev.
	// current is the state before ev.
	RequireNewState(ev *Event, current DragState) DragState
	// CanProcessInput reports whether ProcessInput should see ev.
	CanProcessInput(ev *Event, current DragState) bool
	ProcessInput(ev *Event)
}

// DragStateListener is implemented by systems that react to drag state changes.
type DragStateListener interface {
	OnDragStateChanged(newState, oldState DragState)
}

// AreaListener is implemented by systems that track the hovered handle.
type AreaListener interface {
	OnActiveAreaChanged(info AreaInfo)
}

// Manager owns the global drag state and dispatches input to its systems.
// Systems registered later see every event first. Input handling is
// synchronous; the mutex only guards readers on other goroutines such as
// a UI polling MagnetLines.
type Manager struct {
	mu        sync.Mutex
	systems   []System
	state     DragState
	area      AreaInfo
	lastMouse geom.Vec2
	lines     []magnet.LineInfo
	onLines   func([]magnet.LineInfo)
	logger    *slog.Logger
}

func NewManager() *Manager {
	return &Manager{logger: applog.WithComponent("editor")}
}

// Register appends a system.
func (m *Manager) Register(s System) { m.systems = append(m.systems, s) }

// OnMagnetLines sets a callback invoked whenever the magnet feedback changes.
func (m *Manager) OnMagnetLines(fn func([]magnet.LineInfo)) { m.onLines = fn }

func (m *Manager) DragState() DragState { return m.state }

func (m *Manager) ActiveArea() AreaInfo { return m.area }

// HandleInput runs one event through every system: the mouse delta is
// updated, the strongest requested drag state is applied, then each system
// that accepts the event processes it.
func (m *Manager) HandleInput(ev Event) {
	if ev.Device == DeviceMouse {
		ev.Delta = ev.Point.Sub(m.lastMouse)
		m.lastMouse = ev.Point
	}

	newState := NoDrag
	for i := len(m.systems) - 1; i >= 0; i-- {
		newState = max(newState, m.systems[i].RequireNewState(&ev, m.state))
	}
	m.SetDragState(newState)

	for i := len(m.systems) - 1; i >= 0; i-- {
		if s := m.systems[i]; s.CanProcessInput(&ev, m.state) {
			s.ProcessInput(&ev)
		}
	}
}

// SetDragState notifies listeners when the state actually changes. Leaving a
// drag drops any magnet feedback.
func (m *Manager) SetDragState(s DragState) {
	if s == m.state {
		return
	}
	old := m.state
	m.state = s
	m.logger.Debug("drag state", slog.String("from", old.String()), slog.String("to", s.String()))
	for i := len(m.systems) - 1; i >= 0; i-- {
		if l, ok := m.systems[i].(DragStateListener); ok {
			l.OnDragStateChanged(s, old)
		}
	}
	if s == NoDrag {
		m.MagnetLinesChanged(nil)
	}
}

// SetActiveArea records the hovered handle and forwards it to listeners.
func (m *Manager) SetActiveArea(info AreaInfo) {
	if info == m.area {
		return
	}
	m.area = info
	for i := len(m.systems) - 1; i >= 0; i-- {
		if l, ok := m.systems[i].(AreaListener); ok {
			l.OnActiveAreaChanged(info)
		}
	}
}

// MagnetLinesChanged replaces the magnet feedback.
func (m *Manager) MagnetLinesChanged(lines []magnet.LineInfo) {
	m.mu.Lock()
	m.lines = append([]magnet.LineInfo(nil), lines...)
	m.mu.Unlock()
	if m.onLines != nil {
		m.onLines(lines)
	}
}

// MagnetLines returns a copy of the current magnet feedback.
func (m *Manager) MagnetLines() []magnet.LineInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]magnet.LineInfo(nil), m.lines...)
}
