/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"mview6/internal/classify"
	"mview6/internal/config"
	"mview6/internal/content"
	"mview6/internal/filemodel"
	"mview6/internal/svgsheet"
)

// Bookmarks lists the name/path pairs loaded from the application config;
// entering one opens a Filesystem backend at that path. Grounded on
// spec.md §4.5's Bookmarks description; there is no dedicated
// original_source file for it (the original folds bookmarks into the
// window's own bookmark menu rather than a Backend impl), so this is built
// directly from the spec in the Filesystem backend's idiom.
type Bookmarks struct {
	Base
	rows []filemodel.Row
}

func NewBookmarks(bookmarks []config.Bookmark) *Bookmarks {
	rows := make([]filemodel.Row, len(bookmarks))
	for i, b := range bookmarks {
		rows[i] = filemodel.Row{
			CategoryID: uint32(classify.Folder),
			Name:       b.Name,
			Folder:     b.Folder,
			Index:      uint64(i),
			IconName:   classify.Folder.String(),
		}
	}
	return &Bookmarks{Base: newBase("bookmarks"), rows: rows}
}

func (b *Bookmarks) ClassName() string           { return "Bookmarks" }
func (b *Bookmarks) List() []filemodel.Row       { return b.rows }
func (b *Bookmarks) IsContainer() bool           { return true }
func (b *Bookmarks) IsBookmarks() bool           { return true }
func (b *Bookmarks) CanBeSorted() bool           { return false }
func (b *Bookmarks) Kind() filemodel.BackendKind { return filemodel.BackendBookmarks }

func (b *Bookmarks) Leave() (Backend, filemodel.Target, bool) { return nil, filemodel.Target{}, false }

func (b *Bookmarks) Enter(cursor int) Backend {
	row, ok := rowAt(b.rows, cursor)
	if !ok {
		return nil
	}
	return NewFilesystem(row.Folder)
}

func (b *Bookmarks) Render(cursor int, params ImageParams) *content.Content {
	row, ok := rowAt(b.rows, cursor)
	if !ok {
		return svgsheet.ErrorContent("ERROR", "no such bookmark")
	}
	return svgsheet.ErrorContent("BOOKMARK", row.Folder)
}

func (b *Bookmarks) ThumbnailEntry(cursor int) filemodel.Entry {
	row, ok := rowAt(b.rows, cursor)
	if !ok {
		return filemodel.Entry{}
	}
	return filemodel.Entry{
		CategoryID: row.CategoryID,
		Name:       row.Name,
		Reference: filemodel.Reference{
			Backend: filemodel.NewBackendRef(filemodel.BackendBookmarks, "bookmarks"),
			Item:    filemodel.NewItemString(row.Folder),
		},
	}
}
