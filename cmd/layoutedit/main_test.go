/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"layoutedit/internal/crash"
	"layoutedit/internal/geom"
	"layoutedit/internal/replay"
	"layoutedit/internal/scene"
)

const testScene = `package: demo
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
`

const testScript = `steps:
  - select: [button]
  - hover: {area: frame, control: button}
  - press: {x: 100, y: 100}
  - drag: {x: 245, y: 100}
  - release: {x: 245, y: 100}
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// execute runs the CLI with a config file in a temp dir that does not exist.
func execute(t *testing.T, sess *crash.Session, args ...string) (string, error) {
	t.Helper()
	root := newApp(sess).rootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReplaySnapsToGuideFile(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeFile(t, dir, "scene.yaml", testScene)
	scriptPath := writeFile(t, dir, "script.yaml", testScript)
	guidePath := writeFile(t, dir, "guides.yaml", "roots:\n  - root: screen\n    x: [160]\n")

	sess := &crash.Session{}
	out, err := execute(t, sess, "replay", "--scene", scenePath, "--guides-file", guidePath, scriptPath)
	require.NoError(t, err)
	assert.Equal(t, scenePath, sess.ScenePath)
	require.NotNil(t, sess.Snapshot)

	dec := yaml.NewDecoder(strings.NewReader(out))
	var results struct {
		Steps []replay.StepResult `yaml:"steps"`
	}
	require.NoError(t, dec.Decode(&results))
	require.Len(t, results.Steps, 5)
	assert.Equal(t, "transform", results.Steps[3].State)
	assert.NotEmpty(t, results.Steps[3].Lines)

	var final scene.File
	require.NoError(t, dec.Decode(&final))
	button := final.Controls[0].Children[0].Children[0]
	assert.Equal(t, "button", button.ID)
	assert.Equal(t, geom.V(160, 100), button.Position)
}

func TestReplayWritesSceneFile(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeFile(t, dir, "scene.yaml", testScene)
	scriptPath := writeFile(t, dir, "script.yaml", "steps:\n  - select: [button]\n  - key: left\n")
	outPath := filepath.Join(dir, "out.yaml")

	out, err := execute(t, &crash.Session{}, "replay", "-q", "-s", scenePath, "--db", filepath.Join(dir, "guides.db"), "-o", outPath, scriptPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	pkg, _, err := scene.LoadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, geom.V(11, 100), pkg.Find("button").Position())
}

func TestReplayReportsFailingStep(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeFile(t, dir, "scene.yaml", testScene)
	scriptPath := writeFile(t, dir, "script.yaml", "steps:\n  - select: [ghost]\n")

	_, err := execute(t, &crash.Session{}, "replay", "-s", scenePath, "--db", filepath.Join(dir, "guides.db"), scriptPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestReplayRequiresScene(t *testing.T) {
	_, err := execute(t, &crash.Session{}, "replay", "script.yaml")
	assert.Error(t, err)
}

func TestGuidesImportListExport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "guides.db")
	src := writeFile(t, dir, "guides.yaml", "roots:\n  - root: screen\n    x: [160, 40]\n    y: [20]\n")

	out, err := execute(t, &crash.Session{}, "guides", "import", "--db", db, src)
	require.NoError(t, err)
	assert.Contains(t, out, "1 root")

	out, err = execute(t, &crash.Session{}, "guides", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "screen")
	assert.Contains(t, out, "x: 160, 40")

	out, err = execute(t, &crash.Session{}, "guides", "export", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "root: screen")
}

func TestPrefsValidate(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "transform:\n  angle_segment: 45\n")
	bad := writeFile(t, dir, "bad.yaml", "transform:\n  angle_segment: fast\n")

	out, err := execute(t, &crash.Session{}, "prefs", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, err = execute(t, &crash.Session{}, "prefs", "validate", bad)
	assert.Error(t, err)
}

func TestPrefsShowPrintsDefaults(t *testing.T) {
	out, err := execute(t, &crash.Session{}, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "angle_segment: 15")
}

func TestPrefsShowMarksEnvOverrides(t *testing.T) {
	t.Setenv("LE_ANGLE_SEGMENT", "45")
	out, err := execute(t, &crash.Session{}, "prefs", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "angle_segment: 45")
	assert.Contains(t, out, "# transform.angle_segment set by LE_ANGLE_SEGMENT")
	assert.NotContains(t, out, "# transform.can_magnet")
}

func TestPrefsInitWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	root := newApp(&crash.Session{}).rootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "prefs", "init"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "angle_segment: 15")

	root = newApp(&crash.Session{}).rootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "prefs", "init"})
	assert.ErrorContains(t, root.ExecuteContext(context.Background()), "already exists")
}

func TestLogLevelFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeFile(t, dir, "scene.yaml", testScene)
	scriptPath := writeFile(t, dir, "script.yaml", "steps:\n  - select: [button]\n")

	root := newApp(&crash.Session{}).rootCommand()
	var errOut bytes.Buffer
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&errOut)
	root.SetArgs([]string{"--config", filepath.Join(dir, "config.yaml"), "--log-level", "error",
		"replay", "-q", "-s", scenePath, "--db", filepath.Join(dir, "guides.db"), scriptPath})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.NotContains(t, errOut.String(), "replayed")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, &crash.Session{}, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "layoutedit "))
}
