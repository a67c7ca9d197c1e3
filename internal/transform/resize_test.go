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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
	"layoutedit/internal/undo"
)

func TestResizeKeepsAspectRatio(t *testing.T) {
	h := newHarness(t, noMagnets())
	box := h.add(h.panel, "box", geom.V(50, 50), geom.V(200, 100))
	h.doc.Select(box)
	h.hover(editor.BottomCenterArea, box)

	h.press(geom.V(150, 150))
	h.drag(geom.V(150, 170), editor.ModCtrl)

	assert.Equal(t, geom.V(240, 120), box.Size())
	// the fixed horizontal axis grows around the center
	assert.Equal(t, geom.V(30, 50), box.Position())
}

func TestResizeTopLeftMovesPosition(t *testing.T) {
	h := newHarness(t, noMagnets())
	box := h.add(h.panel, "box", geom.V(50, 50), geom.V(100, 100))
	h.doc.Select(box)
	h.hover(editor.TopLeftArea, box)

	h.press(geom.V(50, 50))
	h.drag(geom.V(40, 45), 0)

	assert.Equal(t, geom.V(110, 105), box.Size())
	assert.Equal(t, geom.V(40, 45), box.Position())
}

func TestResizeAroundPivot(t *testing.T) {
	h := newHarness(t, noMagnets())
	box := h.add(h.panel, "box", geom.V(100, 100), geom.V(100, 100))
	h.set(box, editor.PropPivot, geom.V(0.5, 0.5))
	h.doc.Select(box)
	h.hover(editor.CenterRightArea, box)

	h.press(geom.V(150, 100))
	h.drag(geom.V(160, 100), editor.ModAlt)

	// the right edge moved 10, the left edge mirrors it
	assert.Equal(t, geom.V(120, 100), box.Size())
	assert.Equal(t, geom.V(100, 100), box.Position())
}

func TestResizeStopsAtMinimumAndCarries(t *testing.T) {
	h := newHarness(t, noMagnets())
	box := h.add(h.panel, "box", geom.V(100, 100), geom.V(30, 30))
	h.doc.Select(box)
	h.hover(editor.BottomRightArea, box)

	h.press(geom.V(130, 130))
	h.drag(geom.V(105, 130), 0)
	assert.Equal(t, geom.V(16, 30), box.Size())
	assert.Equal(t, geom.V(-11, 0), h.sys.Residual())

	// no further input, no jump
	h.drag(geom.V(105, 130), 0)
	assert.Equal(t, geom.V(16, 30), box.Size())
	assert.Equal(t, geom.V(-11, 0), h.sys.Residual())

	h.drag(geom.V(110, 130), 0)
	assert.Equal(t, geom.V(16, 30), box.Size())
	assert.Equal(t, geom.V(-6, 0), h.sys.Residual())

	// back in step with the pointer
	h.drag(geom.V(120, 130), 0)
	assert.Equal(t, geom.V(20, 30), box.Size())
	assert.Equal(t, geom.V(0, 0), h.sys.Residual())
}

func TestResizeMinimumFollowsScale(t *testing.T) {
	h := newHarness(t, noMagnets())
	h.set(h.panel, editor.PropScale, geom.V(2, 2))
	box := h.add(h.panel, "box", geom.V(10, 10), geom.V(30, 30))
	h.doc.Select(box)
	h.hover(editor.CenterRightArea, box)

	// 60 screen units shrink 30 local units; the minimum is 16/2 = 8
	h.press(geom.V(100, 100))
	h.drag(geom.V(40, 100), 0)
	assert.Equal(t, geom.V(8, 30), box.Size())
}

func TestResizeMinimumSurvivesFloorUnderScale(t *testing.T) {
	h := newHarness(t, noMagnets())
	h.set(h.panel, editor.PropScale, geom.V(3, 3))
	box := h.add(h.panel, "box", geom.V(10, 10), geom.V(30, 30))
	h.doc.Select(box)
	h.hover(editor.CenterRightArea, box)

	// the minimum is 16/3; the last whole step above it is a width of 6
	h.press(geom.V(100, 100))
	h.drag(geom.V(-100, 100), 0)
	assert.Equal(t, geom.V(6, 30), box.Size())
	assert.GreaterOrEqual(t, box.Size().X, float32(16)/3)
	// -200/3 requested, -24 applied
	assert.InDelta(t, -200.0/3+24, h.sys.Residual().X, 1e-3)
}

func TestResizeMinimumSurvivesFloorWithFractionalSize(t *testing.T) {
	h := newHarness(t, noMagnets())
	box := h.add(h.panel, "box", geom.V(10, 10), geom.V(30.5, 30))
	h.doc.Select(box)
	h.hover(editor.CenterRightArea, box)

	h.press(geom.V(100, 100))
	h.drag(geom.V(0, 100), 0)
	assert.Equal(t, geom.V(16.5, 30), box.Size())
	assert.InDelta(t, -86, h.sys.Residual().X, 1e-4)

	// shrinking further changes nothing
	h.drag(geom.V(-20, 100), 0)
	assert.Equal(t, geom.V(16.5, 30), box.Size())
}

func TestResizeSnapsEdgeToParent(t *testing.T) {
	h := newHarness(t, DefaultPreferences())
	box := h.add(h.panel, "box", geom.V(290, 100), geom.V(100, 50))
	h.doc.Select(box)
	h.hover(editor.CenterRightArea, box)

	h.press(geom.V(390, 125))
	h.drag(geom.V(397, 125), 0)

	assert.Equal(t, geom.V(110, 50), box.Size())
	assert.Equal(t, geom.V(290, 100), box.Position())
	assert.Equal(t, geom.V(-3, 0), h.sys.Residual())
	lines := h.mgr.MagnetLines()
	require.Len(t, lines, 1)
	assert.Equal(t, float32(400), lines[0].Rect.X)
}

func TestResizeMinimumClearsMagnetFeedback(t *testing.T) {
	h := newHarness(t, DefaultPreferences())
	box := h.add(h.panel, "box", geom.V(0, 100), geom.V(30, 50))
	h.add(h.panel, "mark", geom.V(6, 0), geom.V(10, 10))
	h.doc.Select(box)
	h.hover(editor.CenterRightArea, box)

	// the right edge snaps to the mark at 6, then the minimum pushes it back
	h.press(geom.V(30, 125))
	h.drag(geom.V(5, 125), 0)
	assert.Equal(t, float32(16), box.Size().X)
	assert.Equal(t, geom.V(-11, 0), h.sys.Residual())
	assert.Empty(t, h.mgr.MagnetLines())
}

func TestResizeIsOneUndoStep(t *testing.T) {
	h := newHarness(t, noMagnets())
	box := h.add(h.panel, "box", geom.V(50, 50), geom.V(100, 100))
	h.doc.Select(box)
	h.hover(editor.TopLeftArea, box)

	h.press(geom.V(50, 50))
	h.drag(geom.V(40, 40), 0)

	cmd, ok, err := h.undo.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, undo.KindResize, cmd.Kind)
	require.Len(t, cmd.Changes, 2)
	assert.Equal(t, geom.V(100, 100), box.Size())
	assert.Equal(t, geom.V(50, 50), box.Position())
}
