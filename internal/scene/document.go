/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"context"
	"log/slog"

	"layoutedit/internal/editor"
	"layoutedit/internal/geom"
	"layoutedit/internal/guides"
	applog "layoutedit/internal/log"
)

// Document is an open package with its selection and the root control
// currently displayed in the editor. Guides are looked up for that root.
type Document struct {
	Package   *Package
	root      *Control
	selection []editor.Node
	guides    guides.Store
	logger    *slog.Logger
}

// NewDocument displays the first root of pkg. store may be nil.
func NewDocument(pkg *Package, store guides.Store) *Document {
	d := &Document{Package: pkg, guides: store, logger: applog.WithComponent("scene")}
	if len(pkg.Roots) > 0 {
		d.root = pkg.Roots[0]
	}
	return d
}

// Display switches the displayed root.
func (d *Document) Display(root *Control) { d.root = root }

// Root is the displayed root control, nil for an empty package.
func (d *Document) Root() *Control { return d.root }

// Select replaces the selection.
func (d *Document) Select(nodes ...editor.Node) { d.selection = append([]editor.Node(nil), nodes...) }

// SelectedNodes returns the selection in selection order.
func (d *Document) SelectedNodes() []editor.Node {
	return append([]editor.Node(nil), d.selection...)
}

// GuideRoot is the control guides are defined against.
func (d *Document) GuideRoot() editor.Control {
	if d.root == nil {
		return nil
	}
	return d.root
}

// AxisGuides returns the guides of the displayed root along axis. Store
// errors are logged and yield no guides.
func (d *Document) AxisGuides(axis geom.Axis) []float32 {
	if d.guides == nil || d.root == nil {
		return nil
	}
	values, err := d.guides.Guides(context.Background(), d.root.ID(), axis)
	if err != nil {
		d.logger.Error("read guides failed", slog.String("root", d.root.ID()), slog.Any("err", err))
		return nil
	}
	return values
}
