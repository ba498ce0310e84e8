/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package windowcoord

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mview6/internal/backend"
	"mview6/internal/classify"
	"mview6/internal/content"
	"mview6/internal/filemodel"
)

// fakeBackend is a minimal in-memory Backend used to exercise the
// coordinator without touching the filesystem.
type fakeBackend struct {
	path     string
	rows     []filemodel.Row
	children map[int]backend.Backend
	parent   backend.Backend
	leaveTgt filemodel.Target
}

func (f *fakeBackend) ClassName() string     { return "fake" }
func (f *fakeBackend) Path() string          { return f.path }
func (f *fakeBackend) List() []filemodel.Row { return f.rows }
func (f *fakeBackend) Render(cursor int, params backend.ImageParams) *content.Content { return nil }
func (f *fakeBackend) ThumbnailEntry(cursor int) filemodel.Entry                       { return filemodel.Entry{} }
func (f *fakeBackend) Enter(cursor int) backend.Backend                                { return f.children[cursor] }
func (f *fakeBackend) Leave() (backend.Backend, filemodel.Target, bool) {
	if f.parent == nil {
		return nil, filemodel.Target{}, false
	}
	return f.parent, f.leaveTgt, true
}
func (f *fakeBackend) Favorite(cursor int, direction content.Direction) bool { return false }
func (f *fakeBackend) Click(cursor int, x, y float64) (backend.Backend, filemodel.Target, bool) {
	return nil, filemodel.Target{}, false
}
func (f *fakeBackend) IsContainer() bool           { return true }
func (f *fakeBackend) IsBookmarks() bool           { return false }
func (f *fakeBackend) IsThumbnail() bool           { return false }
func (f *fakeBackend) IsDoc() bool                 { return false }
func (f *fakeBackend) IsNone() bool                { return false }
func (f *fakeBackend) CanBeSorted() bool           { return true }
func (f *fakeBackend) Kind() filemodel.BackendKind { return filemodel.BackendFilesystem }

func row(name string, cat classify.ContentType) filemodel.Row {
	return filemodel.Row{Name: name, CategoryID: uint32(cat)}
}

func TestRebuildViewFiltersAndSorts(t *testing.T) {
	root := &fakeBackend{
		path: "/root",
		rows: []filemodel.Row{
			row("b.jpg", classify.Image),
			row("a.jpg", classify.Image),
			row("sub", classify.Folder),
		},
	}
	c := New(root, nil)
	names := []string{}
	for _, r := range c.Rows() {
		names = append(names, r.Name)
	}
	require.Equal(t, []string{"a.jpg", "b.jpg", "sub"}, names)

	c.SetFilter(Filter{Types: map[classify.ContentType]bool{classify.Image: true}})
	require.Len(t, c.Rows(), 2)
}

func TestEnterAndLeave(t *testing.T) {
	root := &fakeBackend{path: "/root", rows: []filemodel.Row{row("sub", classify.Folder)}}
	child := &fakeBackend{
		path:     "/root/sub",
		rows:     []filemodel.Row{row("pic.jpg", classify.Image)},
		parent:   root,
		leaveTgt: filemodel.NewTargetByName("sub"),
	}
	root.children = map[int]backend.Backend{0: child}

	c := New(root, nil)
	require.True(t, c.Enter())
	require.Equal(t, "/root/sub", c.Backend().Path())

	require.True(t, c.Leave())
	require.Equal(t, "/root", c.Backend().Path())
	r, ok := c.CurrentRow()
	require.True(t, ok)
	require.Equal(t, "sub", r.Name)
}

func TestMoveCursorClampsAtEnds(t *testing.T) {
	root := &fakeBackend{
		path: "/root",
		rows: []filemodel.Row{row("a", classify.Image), row("b", classify.Image)},
	}
	c := New(root, nil)
	require.False(t, c.MoveCursor(DirectionPrev, 1))
	require.True(t, c.MoveCursor(DirectionNext, 1))
	require.Equal(t, 1, c.Cursor())
	require.False(t, c.MoveCursor(DirectionNext, 1))
}

func TestToggleFullscreenAndPanes(t *testing.T) {
	root := &fakeBackend{path: "/root", rows: nil}
	c := New(root, nil)
	require.True(t, c.ToggleFullscreen())
	require.False(t, c.ToggleFullscreen())
	require.False(t, c.TogglePane(PaneInfo))
	require.True(t, c.PaneVisible(PaneFileList))
}

func TestEncodeDecodeTargetRoundTrip(t *testing.T) {
	s := encodeTarget(filemodel.NewTargetByName("foo.jpg"))
	got := decodeTarget(s)
	require.Equal(t, filemodel.TargetByName, got.Kind)
	require.Equal(t, "foo.jpg", got.Name)

	require.Equal(t, filemodel.TargetFirst, decodeTarget("garbage").Kind)
}
