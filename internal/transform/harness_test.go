/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
	"layoutedit/internal/guides"
	"layoutedit/internal/scene"
	"layoutedit/internal/undo"
)

// harness is a screen (800x600) holding a panel (400x300) at the origin.
type harness struct {
	t      *testing.T
	screen *scene.Control
	panel  *scene.Control
	doc    *scene.Document
	store  *guides.Memory
	undo   *undo.Manager
	mgr    *editor.Manager
	sys    *System
}

func newHarness(t *testing.T, prefs Preferences) *harness {
	t.Helper()
	h := &harness{t: t}
	h.screen = scene.NewControl("screen", geom.V(0, 0), geom.V(800, 600))
	h.panel = scene.NewControl("panel", geom.V(0, 0), geom.V(400, 300))
	h.screen.Add(h.panel)
	h.store = guides.NewMemory()
	h.doc = scene.NewDocument(&scene.Package{Name: "test", Roots: []*scene.Control{h.screen}}, h.store)
	h.undo = undo.NewManager(undo.Config{})
	h.mgr = editor.NewManager()
	h.sys = New(Deps{Selection: h.doc, Guides: h.doc, Commands: h.undo, Feedback: h.mgr}, prefs)
	h.mgr.Register(h.sys)
	return h
}

// add creates a control with pivot (0,0) inside parent.
func (h *harness) add(parent *scene.Control, id string, pos, size geom.Vec2) *scene.Control {
	c := scene.NewControl(id, pos, size)
	parent.Add(c)
	return c
}

func (h *harness) set(c *scene.Control, name string, v any) {
	h.t.Helper()
	require.NoError(h.t, c.Set(name, v))
}

func (h *harness) hover(area editor.Area, owner *scene.Control) {
	h.mgr.SetActiveArea(editor.AreaInfo{Area: area, Owner: owner})
}

func (h *harness) press(p geom.Vec2) {
	h.mgr.HandleInput(editor.Event{Device: editor.DeviceMouse, Phase: editor.PhaseBegan, Button: editor.ButtonLeft, Point: p})
}

func (h *harness) drag(p geom.Vec2, mods editor.Modifiers) {
	h.mgr.HandleInput(editor.Event{Device: editor.DeviceMouse, Phase: editor.PhaseDrag, Button: editor.ButtonLeft, Point: p, Modifiers: mods})
}

func (h *harness) release(p geom.Vec2) {
	h.mgr.HandleInput(editor.Event{Device: editor.DeviceMouse, Phase: editor.PhaseEnded, Button: editor.ButtonLeft, Point: p})
}

func (h *harness) key(k editor.Key, mods editor.Modifiers) {
	h.mgr.HandleInput(editor.Event{Device: editor.DeviceKeyboard, Phase: editor.PhaseKeyDown, Key: k, Modifiers: mods})
}

func noMagnets() Preferences {
	p := DefaultPreferences()
	p.CanMagnet = false
	return p
}
