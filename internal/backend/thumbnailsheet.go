/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"fmt"
	"image"

	"mview6/internal/classify"
	"mview6/internal/content"
	"mview6/internal/filemodel"
	"mview6/internal/svgsheet"
	"mview6/internal/thumbcache"
	"mview6/internal/thumbsheet"
)

// thumbnailer is implemented by backends (MarArchive) that can produce a
// thumbnail cheaper than a full Render, e.g. from an archive's embedded
// thumbnail section.
type thumbnailer interface {
	Thumbnail(cursor int) (image.Image, error)
}

// ThumbnailSheet divides a parent backend's row count by the sheet
// capacity into virtual "page" rows; rendering a page pumps the parent's
// entries through the thumbnail engine's worker pool. Grounded on
// original_source/src/backends/thumbnail/mod.rs; the cyclic-ownership note
// in the design ("model as moved ownership, not a back-pointer") is why
// parent is consumed here and handed back whole by Leave/Click rather than
// kept alongside a reference the parent also holds.
type ThumbnailSheet struct {
	Base
	parent       Backend
	parentTarget filemodel.Target
	geometry     thumbsheet.Geometry
	rows         []filemodel.Row
	cache        *thumbcache.Cache
}

// NewThumbnailSheet lays out a tile grid for a viewport of
// viewportWidth x viewportHeight and tileSize, and divides parent's row
// count into that many pages. It reports false if the viewport can't fit
// even one tile. cache may be nil, disabling disk-backed thumbnail reuse.
func NewThumbnailSheet(parent Backend, parentTarget filemodel.Target, viewportWidth, viewportHeight, tileSize int, cache *thumbcache.Cache) (*ThumbnailSheet, bool) {
	g, ok := thumbsheet.NewGeometry(viewportWidth, viewportHeight, tileSize)
	if !ok {
		return nil, false
	}
	capacity := g.Capacity()
	numItems := len(parent.List())
	pages := 1
	if numItems > 0 {
		pages = 1 + (numItems-1)/capacity
	}
	rows := make([]filemodel.Row, pages)
	for i := range rows {
		rows[i] = filemodel.Row{
			CategoryID: uint32(classify.Image),
			Name:       fmt.Sprintf("Thumbnail page %d", i+1),
			Index:      uint64(i),
			IconName:   classify.Image.String(),
		}
	}
	return &ThumbnailSheet{
		Base:         newBase("thumbnail"),
		parent:       parent,
		parentTarget: parentTarget,
		geometry:     g,
		rows:         rows,
		cache:        cache,
	}, true
}

func (t *ThumbnailSheet) ClassName() string           { return "Thumbnail" }
func (t *ThumbnailSheet) List() []filemodel.Row       { return t.rows }
func (t *ThumbnailSheet) IsThumbnail() bool           { return true }
func (t *ThumbnailSheet) CanBeSorted() bool           { return false }
func (t *ThumbnailSheet) Kind() filemodel.BackendKind { return filemodel.BackendThumbnail }

func (t *ThumbnailSheet) Enter(cursor int) Backend { return nil }

func (t *ThumbnailSheet) Leave() (Backend, filemodel.Target, bool) {
	return t.parent, t.parentTarget, true
}

func (t *ThumbnailSheet) source() thumbsheet.Source {
	th, hasThumb := t.parent.(thumbnailer)
	return thumbsheet.Source{
		Entry: t.parent.ThumbnailEntry,
		Render: func(cursor int) *content.Content {
			if hasThumb {
				if img, err := th.Thumbnail(cursor); err == nil && img != nil {
					return content.NewSingleNoZoom(img, false)
				}
			}
			return t.parent.Render(cursor, ImageParams{})
		},
		Cache: t.cache,
	}
}

func (t *ThumbnailSheet) Render(cursor int, params ImageParams) *content.Content {
	if cursor < 0 || cursor >= len(t.rows) {
		return svgsheet.ErrorContent("ERROR", "no such page")
	}
	return thumbsheet.Render(t.source(), cursor, t.geometry)
}

// ThumbnailEntry has no parent of its own to recurse into: a thumbnail
// sheet is never itself the subject of another thumbnail sheet.
func (t *ThumbnailSheet) ThumbnailEntry(cursor int) filemodel.Entry { return filemodel.Entry{} }

// Click maps a click position within page cursor to an absolute parent
// index, then returns the parent backend positioned at that entry.
func (t *ThumbnailSheet) Click(cursor int, x, y float64) (Backend, filemodel.Target, bool) {
	local, ok := t.geometry.HitTest(x, y)
	if !ok {
		return nil, filemodel.Target{}, false
	}
	absolute := cursor*t.geometry.Capacity() + local
	entry := t.parent.ThumbnailEntry(absolute)
	if entry.Reference.Item.IsNone() {
		return nil, filemodel.Target{}, false
	}
	return t.parent, entry.Reference.ToTarget(), true
}
