/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package guides persists user-placed guide lines. Guides belong to a root
// control and an axis; values are in the root's unrotated local space and
// keep the order the user created them in.
package guides

import (
	"context"
	"slices"
	"sort"
	"sync"

	"layoutedit/internal/geom"
)

// Store reads and writes guide lists.
type Store interface {
	Guides(ctx context.Context, root string, axis geom.Axis) ([]float32, error)
	// SetGuides replaces the list for root and axis; an empty list removes it.
	SetGuides(ctx context.Context, root string, axis geom.Axis, values []float32) error
	// Roots lists every root that has guides, sorted.
	Roots(ctx context.Context) ([]string, error)
	Close() error
}

// Memory is an in-process Store.
type Memory struct {
	mu    sync.RWMutex
	lists map[string][2][]float32
}

func NewMemory() *Memory { return &Memory{lists: make(map[string][2][]float32)} }

func (m *Memory) Guides(_ context.Context, root string, axis geom.Axis) ([]float32, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.lists[root][axis]), nil
}

func (m *Memory) SetGuides(_ context.Context, root string, axis geom.Axis, values []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := m.lists[root]
	l[axis] = slices.Clone(values)
	if len(l[0]) == 0 && len(l[1]) == 0 {
		delete(m.lists, root)
		return nil
	}
	m.lists[root] = l
	return nil
}

func (m *Memory) Roots(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.lists))
	for r := range m.lists {
		out = append(out, r)
	}
	sort.Strings(out)
	return out, nil
}

func (m *Memory) Close() error { return nil }
