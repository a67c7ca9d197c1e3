/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package replay

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
	"layoutedit/internal/guides"
	"layoutedit/internal/scene"
	"layoutedit/internal/transform"
	"layoutedit/internal/undo"
)

const sceneYAML = `package: demo
controls:
  - id: screen
    size: {x: 800, y: 600}
    children:
      - id: panel
        size: {x: 400, y: 300}
        children:
          - id: button
            position: {x: 12, y: 100}
            size: {x: 100, y: 50}
          - id: label
            position: {x: 300, y: 200}
            size: {x: 50, y: 20}
`

func openScene(t *testing.T) *scene.Document {
	t.Helper()
	f, err := scene.Decode(strings.NewReader(sceneYAML))
	require.NoError(t, err)
	pkg, err := scene.Build(f)
	require.NoError(t, err)
	doc, err := scene.OpenDocument(pkg, f, guides.NewMemory())
	require.NoError(t, err)
	return doc
}

func decode(t *testing.T, s string) Script {
	t.Helper()
	script, err := Decode(strings.NewReader(s))
	require.NoError(t, err)
	return script
}

func TestReplayDragMatchesDirectInput(t *testing.T) {
	script := decode(t, `steps:
  - select: [button, label]
  - hover: {area: frame, control: button}
  - press: {x: 100, y: 100}
  - drag: {x: 90, y: 100}
  - release: {x: 90, y: 100}
`)
	doc := openScene(t)
	sess := NewSession(doc, transform.DefaultPreferences(), undo.Config{})
	results, err := sess.Run(context.Background(), script)
	require.NoError(t, err)
	require.Len(t, results, 5)

	drag := results[3]
	assert.Equal(t, "drag", drag.Action)
	assert.Equal(t, editor.Transform.String(), drag.State)
	require.Len(t, drag.Commands, 1)
	assert.Equal(t, "property", drag.Commands[0].Kind)
	assert.Len(t, drag.Commands[0].Changes, 2)
	assert.Len(t, drag.Lines, 2)
	assert.Equal(t, editor.NoDrag.String(), results[4].State)

	// the same gesture sent straight to a manager
	direct := openScene(t)
	direct.Select(direct.Package.Find("button"), direct.Package.Find("label"))
	um := undo.NewManager(undo.Config{})
	mgr := editor.NewManager()
	sys := transform.New(transform.Deps{Selection: direct, Guides: direct, Commands: um, Feedback: mgr}, transform.DefaultPreferences())
	mgr.Register(sys)
	mgr.SetActiveArea(editor.AreaInfo{Area: editor.FrameArea, Owner: direct.Package.Find("button")})
	mgr.HandleInput(editor.Event{Device: editor.DeviceMouse, Phase: editor.PhaseBegan, Button: editor.ButtonLeft, Point: geom.V(100, 100)})
	mgr.HandleInput(editor.Event{Device: editor.DeviceMouse, Phase: editor.PhaseDrag, Button: editor.ButtonLeft, Point: geom.V(90, 100)})

	for _, id := range []string{"button", "label"} {
		assert.Equal(t, direct.Package.Find(id).Position(), doc.Package.Find(id).Position(), id)
	}
	assert.Equal(t, geom.V(0, 100), doc.Package.Find("button").Position())
}

func TestReplayUndoRedo(t *testing.T) {
	script := decode(t, `steps:
  - select: [button]
  - key: right
    mods: [shift]
  - key: down
  - undo: 2
  - redo: 1
  - undo: 5
`)
	doc := openScene(t)
	sess := NewSession(doc, transform.DefaultPreferences(), undo.Config{})
	button := doc.Package.Find("button")

	results, err := sess.Run(context.Background(), Script{Steps: script.Steps[:3]})
	require.NoError(t, err)
	assert.Equal(t, geom.V(22, 101), button.Position())
	require.Len(t, results[1].Commands, 1)
	assert.Equal(t, geom.V(22, 100), results[1].Commands[0].Changes[0].Value)

	_, err = sess.Run(context.Background(), Script{Steps: script.Steps[3:4]})
	require.NoError(t, err)
	assert.Equal(t, geom.V(12, 100), button.Position())

	_, err = sess.Run(context.Background(), Script{Steps: script.Steps[4:5]})
	require.NoError(t, err)
	assert.Equal(t, geom.V(22, 100), button.Position())

	// undoing past the bottom of the stack stops quietly
	_, err = sess.Run(context.Background(), Script{Steps: script.Steps[5:]})
	require.NoError(t, err)
	assert.Equal(t, geom.V(12, 100), button.Position())
}

func TestDecodeRejectsBadSteps(t *testing.T) {
	for name, body := range map[string]string{
		"empty step":   "steps:\n  - {}\n",
		"two actions":  "steps:\n  - key: left\n    undo: 1\n",
		"unknown key":  "steps:\n  - key: home\n",
		"unknown mod":  "steps:\n  - key: left\n    mods: [meta]\n",
		"unknown area": "steps:\n  - hover: {area: middle}\n",
	} {
		_, err := Decode(strings.NewReader(body))
		assert.Error(t, err, name)
	}
}

func TestRunStopsAtUnknownControl(t *testing.T) {
	doc := openScene(t)
	sess := NewSession(doc, transform.DefaultPreferences(), undo.Config{})
	script := decode(t, "steps:\n  - select: [button]\n  - select: [ghost]\n  - key: left\n")

	results, err := sess.Run(context.Background(), script)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2")
	assert.Len(t, results, 1)
}

func TestRunHonoursCancellation(t *testing.T) {
	doc := openScene(t)
	sess := NewSession(doc, transform.DefaultPreferences(), undo.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sess.Run(ctx, decode(t, "steps:\n  - key: left\n"))
	assert.ErrorIs(t, err, context.Canceled)
}
