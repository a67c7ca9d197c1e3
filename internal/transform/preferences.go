/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import (
	"layoutedit/internal/config"
	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
)

// Preferences are the tunables of the transform system. Ranges and steps are
// in screen units, PivotGridShare is a fraction of the control size and
// AngleSegment is in degrees.
type Preferences struct {
	MoveMagnetRange   geom.Vec2
	ResizeMagnetRange geom.Vec2
	PivotMagnetRange  geom.Vec2
	// KeyboardStep is used with shift, KeyboardFineStep without.
	KeyboardStep     geom.Vec2
	KeyboardFineStep geom.Vec2
	PivotGridShare   geom.Vec2
	AngleSegment     float32
	// ShiftInverted flips the meaning of the shift key.
	ShiftInverted bool
	CanMagnet     bool
	GuidesEnabled bool
	MinimumSize   geom.Vec2
}

// DefaultPreferences mirrors config.Defaults.
func DefaultPreferences() Preferences {
	return PreferencesFrom(config.Defaults().Transform)
}

// PreferencesFrom converts the persisted form.
func PreferencesFrom(c config.TransformConfig) Preferences {
	return Preferences{
		MoveMagnetRange:   c.MoveMagnetRange,
		ResizeMagnetRange: c.ResizeMagnetRange,
		PivotMagnetRange:  c.PivotMagnetRange,
		KeyboardStep:      c.KeyboardStep,
		KeyboardFineStep:  c.KeyboardFineStep,
		PivotGridShare:    c.PivotGridShare,
		AngleSegment:      c.AngleSegment,
		ShiftInverted:     c.ShiftInverted,
		CanMagnet:         c.CanMagnet,
		GuidesEnabled:     c.GuidesEnabled,
		MinimumSize:       c.MinimumSize,
	}
}

func (p Preferences) shiftPressed(mods editor.Modifiers) bool {
	return mods.Has(editor.ModShift) != p.ShiftInverted
}
