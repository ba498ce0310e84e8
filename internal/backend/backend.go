/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package backend is the content-source abstraction every list the window
// coordinator shows comes from: a directory, an archive, a document, a
// thumbnail sheet, or the bookmark list. A backend lists rows, renders a
// cursor position into displayable content, and knows how to enter a
// sub-container or leave back to its parent.
//
// The Rust original expressed this as a trait object (Box<dyn Backend>)
// with default method bodies. Go has no equivalent vtable-with-defaults, so
// the shared defaults live on Base, which every concrete backend embeds and
// overrides selectively — the same "tagged variant, closed set" dispatch
// the design notes call out as the idiomatic replacement for a trait-object
// chain.
package backend

import (
	"os"
	"path/filepath"
	"strings"

	"mview6/internal/content"
	"mview6/internal/filemodel"
	"mview6/internal/geom"
)

// ImageParams carries the caller's rendering preferences down into a
// backend's Render/ImageZoom call.
type ImageParams struct {
	PageMode       filemodel.PageMode
	ViewportHeight float64
}

// Backend is a content source: a list of rows, plus operations to render,
// navigate into/out of, and classify them.
type Backend interface {
	// ClassName names the concrete backend, for logging and tests.
	ClassName() string
	// Path identifies the backend's subject: a directory, an archive file,
	// a document path, or (for Thumbnail/Bookmarks) a synthetic label.
	Path() string
	// List returns the backend's rows, built once at construction time.
	List() []filemodel.Row
	// Render produces the Content for the row at cursor.
	Render(cursor int, params ImageParams) *content.Content
	// ThumbnailEntry returns the (category, name, reference) triple the
	// thumbnail engine needs to fetch a thumbnail for cursor without going
	// through the full Render path.
	ThumbnailEntry(cursor int) filemodel.Entry
	// Enter returns the backend cursor's row descends into, or nil if the
	// row at cursor isn't a container.
	Enter(cursor int) Backend
	// Leave returns the parent backend plus the Target that should select
	// this backend's own position within it, or ok=false at the root.
	Leave() (parent Backend, target filemodel.Target, ok bool)
	// Favorite applies the .hi./.lo. rename rule to cursor and reports
	// whether it succeeded. Only Filesystem does anything but return false.
	Favorite(cursor int, direction content.Direction) bool
	// Click resolves a double-click position into the backend/target pair
	// it should navigate to, used by the thumbnail sheet.
	Click(cursor int, x, y float64) (target Backend, t filemodel.Target, ok bool)

	IsContainer() bool
	IsBookmarks() bool
	IsThumbnail() bool
	IsDoc() bool
	IsNone() bool
	// CanBeSorted reports whether the window coordinator may reorder this
	// backend's rows; thumbnail sheets and documents have a fixed order.
	CanBeSorted() bool
	// Kind identifies which concrete backend this is, for building
	// filemodel.BackendRef values that survive a round trip to disk.
	Kind() filemodel.BackendKind
}

// Reloadable is implemented by backends whose listing can go stale and be
// rebuilt in place (only Filesystem: a directory's contents can change
// under the viewer while it's open).
type Reloadable interface {
	Reload() Backend
}

// PageZoomer is implemented by backends that support in-page zoom/pan
// without re-entering Render (only Document: re-rasterizing a clipped tile
// of the current page at a new scale).
type PageZoomer interface {
	ImageZoom(cursor int, params ImageParams, currentHeight float64, clip geom.RectD, zoom geom.Zoom) (*content.Content, bool)
}

// Base supplies the defaults every concrete backend inherits: Path, a no-op
// Favorite, a Click that reports "not applicable", and the is-a predicates,
// all false except where a concrete type overrides them. Base has no Enter
// or Leave; each concrete backend implements those itself, and the ones
// that climb to the parent directory call defaultLeave with their path.
type Base struct {
	path string
}

func newBase(path string) Base { return Base{path: path} }

func (b Base) Path() string { return b.path }

func (b Base) Favorite(cursor int, direction content.Direction) bool { return false }

func (b Base) Click(cursor int, x, y float64) (Backend, filemodel.Target, bool) {
	return nil, filemodel.Target{}, false
}

func (b Base) IsContainer() bool { return false }
func (b Base) IsBookmarks() bool { return false }
func (b Base) IsThumbnail() bool { return false }
func (b Base) IsDoc() bool       { return false }
func (b Base) IsNone() bool      { return false }
func (b Base) CanBeSorted() bool { return true }

// defaultLeave climbs from path to its parent directory, positioning the
// cursor on path's own basename the way the Rust default leave() does.
func defaultLeave(path string) (Backend, filemodel.Target, bool) {
	parent := filepath.Dir(path)
	if parent == path {
		return nil, filemodel.Target{}, false
	}
	name := filepath.Base(path)
	return NewFilesystem(parent), filemodel.NewTargetByName(name), true
}

// New dispatches by extension to the concrete backend that owns path, the
// way the original's `<dyn Backend>::new` factory does: zip/rar/mar to
// their archive readers, pdf/epub to Document, everything else (including
// directories) to Filesystem.
func New(path string) Backend {
	switch ext := filepathExtLower(path); ext {
	case "zip":
		return NewZipArchive(path)
	case "rar":
		return NewRarArchive(path)
	case "mar":
		return NewMarArchive(path)
	case "pdf", "epub":
		return NewDocument(path)
	default:
		return NewFilesystem(path)
	}
}

func filepathExtLower(path string) string {
	ext := filepath.Ext(path)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// CurrentDir returns a Filesystem backend rooted at the process's working
// directory, the fallback the CLI uses when no path argument is given.
func CurrentDir() Backend {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return NewFilesystem(dir)
}
