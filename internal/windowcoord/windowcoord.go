/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package windowcoord is the GUI-framework-free coordination logic behind
// the main window: it holds the current backend and cursor, applies a
// content-type/preference filter and sort order over the backend's rows,
// and remembers the last-visited position per backend path via
// internal/navcache. None of it touches a widget toolkit; an external GUI
// layer drives it through Enter/Leave/MoveCursor/SetFilter etc. and reads
// Rows/CurrentRow to paint itself. Grounded on
// original_source/src/window/imp/{navigate,filter}.rs.
package windowcoord

import (
	"sort"

	"mview6/internal/backend"
	"mview6/internal/classify"
	"mview6/internal/filemodel"
	"mview6/internal/navcache"
)

// Direction is a cursor/sibling navigation step.
type Direction int

const (
	DirectionPrev Direction = iota
	DirectionNext
)

// SortOrder is the column rows are ordered by when the backend allows
// reordering (CanBeSorted).
type SortOrder int

const (
	SortByName SortOrder = iota
	SortByDate
	SortBySize
)

// Filter restricts which rows are visible, by content type and by
// favorite/trash preference. A nil/empty set in either field allows
// everything of that dimension, matching the original's "all boxes
// unchecked means unfiltered" default.
type Filter struct {
	Types       map[classify.ContentType]bool
	Preferences map[classify.Preference]bool
}

// Allows reports whether row passes f.
func (f Filter) Allows(row filemodel.Row) bool {
	if len(f.Types) > 0 && !f.Types[classify.ContentType(row.CategoryID)] {
		return false
	}
	if len(f.Preferences) > 0 {
		pref := classify.Classify(row.Name, row.CategoryID == uint32(classify.Folder)).Preference
		if !f.Preferences[pref] {
			return false
		}
	}
	return true
}

// PaneKind identifies a toggleable side panel.
type PaneKind int

const (
	PaneFileList PaneKind = iota
	PaneInfo
	PaneToolbar
)

// viewRow pairs a filtered/sorted row with its index into the backend's
// own, unfiltered List(): every Backend method below takes an index into
// that original list, not into the coordinator's current view.
type viewRow struct {
	row  filemodel.Row
	orig int
}

// Coordinator holds the current backend, cursor, filter and sort state
// for one window. It is not safe for concurrent use from multiple
// goroutines without external synchronization, matching the original's
// single-GTK-main-thread assumption.
type Coordinator struct {
	current backend.Backend
	cursor  int
	view    []viewRow

	filter      Filter
	sortOrder   SortOrder
	sortReverse bool

	fullscreen bool
	panes      map[PaneKind]bool

	nav *navcache.Cache
}

// New returns a coordinator showing initial, with nav used to persist and
// restore per-backend cursor positions (may be nil to disable persistence).
func New(initial backend.Backend, nav *navcache.Cache) *Coordinator {
	c := &Coordinator{
		current: initial,
		panes:   map[PaneKind]bool{PaneFileList: true, PaneInfo: true, PaneToolbar: true},
		nav:     nav,
	}
	c.rebuildView(filemodel.NewTargetFirst())
	return c
}

// Backend returns the coordinator's current backend.
func (c *Coordinator) Backend() backend.Backend { return c.current }

// Cursor returns the coordinator's position within Rows().
func (c *Coordinator) Cursor() int { return c.cursor }

// Rows returns the filtered and sorted rows currently visible.
func (c *Coordinator) Rows() []filemodel.Row {
	rows := make([]filemodel.Row, len(c.view))
	for i, vr := range c.view {
		rows[i] = vr.row
	}
	return rows
}

// CurrentRow returns the row at the cursor, if any.
func (c *Coordinator) CurrentRow() (filemodel.Row, bool) {
	if c.cursor < 0 || c.cursor >= len(c.view) {
		return filemodel.Row{}, false
	}
	return c.view[c.cursor].row, true
}

func (c *Coordinator) origIndex() (int, bool) {
	if c.cursor < 0 || c.cursor >= len(c.view) {
		return 0, false
	}
	return c.view[c.cursor].orig, true
}

// SetCursor moves the cursor to an absolute position within Rows().
func (c *Coordinator) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos >= len(c.view) {
		pos = len(c.view) - 1
	}
	c.cursor = pos
}

// MoveCursor steps the cursor by step rows in dir, clamped to the ends
// of the current view, and reports whether the cursor actually moved.
func (c *Coordinator) MoveCursor(dir Direction, step int) bool {
	before := c.cursor
	delta := step
	if dir == DirectionPrev {
		delta = -step
	}
	c.SetCursor(c.cursor + delta)
	return c.cursor != before
}

// Enter descends into the container at the cursor, remembering the
// current position for when the new backend is later left, and restores
// any previously remembered position within it. Reports false if the row
// at the cursor isn't a container.
func (c *Coordinator) Enter() bool {
	idx, ok := c.origIndex()
	if !ok {
		return false
	}
	next := c.current.Enter(idx)
	if next == nil {
		return false
	}
	c.rememberCurrent()
	target := c.restoreTarget(next.Path())
	c.current = next
	c.rebuildView(target)
	return true
}

// Leave climbs back to the parent backend, positioning its cursor on the
// entry this backend descended from. Reports false at the navigation
// root, where there is no parent.
func (c *Coordinator) Leave() bool {
	parent, target, ok := c.current.Leave()
	if !ok {
		return false
	}
	c.rememberCurrent()
	c.current = parent
	c.rebuildView(target)
	return true
}

// NavigateTo opens dir and positions the cursor on the entry called name,
// the way a "jump to file" action would.
func (c *Coordinator) NavigateTo(dir, name string) {
	c.rememberCurrent()
	c.current = backend.New(dir)
	c.rebuildView(filemodel.NewTargetByName(name))
}

// Hop leaves the current container, steps to the next/previous sibling
// directory in the parent, and re-enters it: the "skip to next comic"
// action bound to PageUp/PageDown style keys in the original.
func (c *Coordinator) Hop(dir Direction) bool {
	if !c.Leave() {
		return false
	}
	if !c.moveToNextContainer(dir) {
		return false
	}
	return c.Enter()
}

// moveToNextContainer scans from the cursor in dir for the next row whose
// content type can be entered, matching navigate(direction,
// Filter::Container, 1) in the original.
func (c *Coordinator) moveToNextContainer(dir Direction) bool {
	step := 1
	if dir == DirectionPrev {
		step = -1
	}
	for pos := c.cursor + step; pos >= 0 && pos < len(c.view); pos += step {
		if classify.ContentType(c.view[pos].row.CategoryID).IsContainer() {
			c.cursor = pos
			return true
		}
	}
	return false
}

// SetFilter replaces the content-type/preference filter and rebuilds the
// view, trying to keep the cursor on the same backend row.
func (c *Coordinator) SetFilter(f Filter) {
	c.filter = f
	c.rebuildView(c.currentTarget())
}

// Filter returns the coordinator's current filter.
func (c *Coordinator) Filter() Filter { return c.filter }

// SetSort changes the sort order and rebuilds the view; backends that
// report CanBeSorted() == false (thumbnail sheets, documents) are never
// reordered regardless of this setting.
func (c *Coordinator) SetSort(order SortOrder, reverse bool) {
	c.sortOrder = order
	c.sortReverse = reverse
	c.rebuildView(c.currentTarget())
}

// ToggleFullscreen flips and returns the coordinator's fullscreen flag.
func (c *Coordinator) ToggleFullscreen() bool {
	c.fullscreen = !c.fullscreen
	return c.fullscreen
}

// Fullscreen reports the coordinator's fullscreen flag.
func (c *Coordinator) Fullscreen() bool { return c.fullscreen }

// TogglePane flips and returns the visibility of a side pane.
func (c *Coordinator) TogglePane(which PaneKind) bool {
	c.panes[which] = !c.panes[which]
	return c.panes[which]
}

// PaneVisible reports a side pane's current visibility.
func (c *Coordinator) PaneVisible(which PaneKind) bool { return c.panes[which] }

// SaveNavigation persists the remembered per-backend positions, including
// the current backend's own cursor.
func (c *Coordinator) SaveNavigation() error {
	if c.nav == nil {
		return nil
	}
	c.rememberCurrent()
	return c.nav.Save()
}

func (c *Coordinator) rememberCurrent() {
	if c.nav == nil {
		return
	}
	if row, ok := c.CurrentRow(); ok {
		c.nav.Put(c.current.Path(), encodeTarget(filemodel.NewTargetByName(row.Name)))
	}
}

func (c *Coordinator) restoreTarget(path string) filemodel.Target {
	if c.nav == nil {
		return filemodel.NewTargetFirst()
	}
	entry, ok := c.nav.Get(path)
	if !ok {
		return filemodel.NewTargetFirst()
	}
	return decodeTarget(entry.Target)
}

func (c *Coordinator) currentTarget() filemodel.Target {
	if row, ok := c.CurrentRow(); ok {
		return filemodel.NewTargetByName(row.Name)
	}
	return filemodel.NewTargetFirst()
}

// rebuildView filters and sorts the backend's current row list, then
// positions the cursor per target.
func (c *Coordinator) rebuildView(target filemodel.Target) {
	rows := c.current.List()
	view := make([]viewRow, 0, len(rows))
	for i, row := range rows {
		if c.filter.Allows(row) {
			view = append(view, viewRow{row: row, orig: i})
		}
	}
	if c.current.CanBeSorted() {
		sortViewRows(view, c.sortOrder, c.sortReverse)
	}
	c.view = view
	c.cursor = resolveTarget(view, target)
}

func sortViewRows(view []viewRow, order SortOrder, reverse bool) {
	less := func(i, j int) bool {
		a, b := view[i].row, view[j].row
		switch order {
		case SortByDate:
			if a.Modified != b.Modified {
				return a.Modified < b.Modified
			}
		case SortBySize:
			if a.Size != b.Size {
				return a.Size < b.Size
			}
		}
		return a.Name < b.Name
	}
	sort.SliceStable(view, func(i, j int) bool {
		if reverse {
			return less(j, i)
		}
		return less(i, j)
	})
}

func resolveTarget(view []viewRow, target filemodel.Target) int {
	if len(view) == 0 {
		return 0
	}
	switch target.Kind {
	case filemodel.TargetLast:
		return len(view) - 1
	case filemodel.TargetByName:
		for i, vr := range view {
			if vr.row.Name == target.Name {
				return i
			}
		}
		return 0
	case filemodel.TargetByIndex:
		for i, vr := range view {
			if uint64(vr.orig) == target.Index {
				return i
			}
		}
		return 0
	default:
		return 0
	}
}

// encodeTarget/decodeTarget give navcache's plain string Entry.Target
// field a stable encoding for the by-name Target this package persists;
// other Target kinds aren't remembered across sessions.
func encodeTarget(t filemodel.Target) string {
	if t.Kind == filemodel.TargetByName {
		return "name:" + t.Name
	}
	return ""
}

func decodeTarget(s string) filemodel.Target {
	const prefix = "name:"
	if len(s) > len(prefix) && s[:len(prefix)] == prefix {
		return filemodel.NewTargetByName(s[len(prefix):])
	}
	return filemodel.NewTargetFirst()
}
