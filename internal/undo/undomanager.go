/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package undo applies named batches of property changes atomically and keeps
// them on undo/redo stacks. Consecutive batches of one continuous gesture are
// coalesced into a single undo step.
package undo

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Property is a named value the manager can read and write.
type Property interface {
	Name() string
	Value() any
	SetValue(v any) error
}

// Kind groups commands for coalescing.
type Kind int

const (
	// KindProperty is a plain property set: move, keyboard move, rotate.
	KindProperty Kind = iota
	// KindResize couples size and position.
	KindResize
	// KindPivot couples pivot and position.
	KindPivot
)

func (k Kind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindResize:
		return "resize"
	case KindPivot:
		return "pivot"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Change sets Property of the node identified by Target to Value.
type Change struct {
	Target   string
	Property Property
	Value    any
}

// Command is one atomic batch.
type Command struct {
	ID      uuid.UUID
	Kind    Kind
	Name    string
	Changes []Change
}

// NewCommand builds a command with a fresh ID.
func NewCommand(kind Kind, name string, changes ...Change) Command {
	return Command{ID: uuid.New(), Kind: kind, Name: name, Changes: changes}
}

// Config controls depth caps and coalescing.
type Config struct {
	// MaxDepth limits the undo stack (0 means unlimited).
	MaxDepth int
	// MergeInterval coalesces a command into the previous one when both have
	// the same kind and touch the same properties within the interval.
	MergeInterval time.Duration
	// Now is the clock, time.Now when nil.
	Now func() time.Time
}

type entry struct {
	cmd    Command
	before []any
	ts     time.Time
}

// Manager executes commands and provides undo/redo. It is safe for concurrent use.
type Manager struct {
	cfg  Config
	mu   sync.Mutex
	undo []entry
	redo []entry
	// mergeable is false right after an undo or redo so the next command starts a new step.
	mergeable bool
}

func NewManager(cfg Config) *Manager {
	if cfg.MergeInterval < 0 {
		cfg.MergeInterval = 0
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Manager{cfg: cfg}
}

// Exec applies every change of cmd in order. If one fails, the changes
// already applied are reverted and the error is returned; nothing is recorded.
func (m *Manager) Exec(cmd Command) error {
	if len(cmd.Changes) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	before := make([]any, len(cmd.Changes))
	for i, c := range cmd.Changes {
		before[i] = c.Property.Value()
	}
	if err := apply(cmd.Changes, func(i int) any { return cmd.Changes[i].Value }, before); err != nil {
		return fmt.Errorf("%s: %w", cmd.Name, err)
	}

	now := m.cfg.Now()
	if n := len(m.undo); n > 0 && m.mergeable && m.canMerge(m.undo[n-1], cmd, now) {
		// keep the oldest before values, take the newest targets
		top := &m.undo[n-1]
		top.cmd.Changes = cmd.Changes
		top.ts = now
	} else {
		m.undo = append(m.undo, entry{cmd: cmd, before: before, ts: now})
		m.enforceCapsLocked()
	}
	m.redo = nil
	m.mergeable = true
	return nil
}

func (m *Manager) canMerge(last entry, cmd Command, now time.Time) bool {
	if m.cfg.MergeInterval == 0 || last.cmd.Kind != cmd.Kind || now.Sub(last.ts) >= m.cfg.MergeInterval {
		return false
	}
	if len(last.cmd.Changes) != len(cmd.Changes) {
		return false
	}
	for i, c := range cmd.Changes {
		l := last.cmd.Changes[i]
		if l.Target != c.Target || l.Property.Name() != c.Property.Name() {
			return false
		}
	}
	return true
}

// apply sets change i to value(i) for every change. On failure the changes
// already set are restored to rollback[i] in reverse order.
func apply(changes []Change, value func(i int) any, rollback []any) error {
	for i, c := range changes {
		if err := c.Property.SetValue(value(i)); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = changes[j].Property.SetValue(rollback[j])
			}
			return fmt.Errorf("set %s of %s: %w", c.Property.Name(), c.Target, err)
		}
	}
	return nil
}

// Undo restores the values captured before the most recent step.
func (m *Manager) Undo() (Command, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.undo)
	if n == 0 {
		return Command{}, false, nil
	}
	e := m.undo[n-1]
	after := make([]any, len(e.cmd.Changes))
	for i, c := range e.cmd.Changes {
		after[i] = c.Value
	}
	if err := apply(e.cmd.Changes, func(i int) any { return e.before[i] }, after); err != nil {
		return e.cmd, false, fmt.Errorf("undo %s: %w", e.cmd.Name, err)
	}
	m.undo = m.undo[:n-1]
	m.redo = append(m.redo, e)
	m.mergeable = false
	return e.cmd, true, nil
}

// Redo re-applies the most recently undone step.
func (m *Manager) Redo() (Command, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.redo)
	if n == 0 {
		return Command{}, false, nil
	}
	e := m.redo[n-1]
	if err := apply(e.cmd.Changes, func(i int) any { return e.cmd.Changes[i].Value }, e.before); err != nil {
		return e.cmd, false, fmt.Errorf("redo %s: %w", e.cmd.Name, err)
	}
	m.redo = m.redo[:n-1]
	m.undo = append(m.undo, e)
	m.mergeable = false
	m.enforceCapsLocked()
	return e.cmd, true, nil
}

// Clear drops both stacks.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undo, m.redo = nil, nil
	m.mergeable = false
}

// Stats returns the stack depths for diagnostics.
func (m *Manager) Stats() (undoDepth, redoDepth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.undo), len(m.redo)
}

func (m *Manager) enforceCapsLocked() {
	if m.cfg.MaxDepth > 0 && len(m.undo) > m.cfg.MaxDepth {
		// drop the oldest extras
		toDrop := len(m.undo) - m.cfg.MaxDepth
		m.undo = append([]entry(nil), m.undo[toDrop:]...)
	}
}
