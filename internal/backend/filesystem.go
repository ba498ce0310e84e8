/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"mview6/internal/classify"
	"mview6/internal/content"
	"mview6/internal/filemodel"
	"mview6/internal/imageprovider"
	"mview6/internal/log"
	"mview6/internal/svgsheet"
)

// Filesystem lists a directory, filtering dotfiles, and renders rows by
// decoding the file the cursor names. Grounded on
// original_source/src/backends/filesystem.rs.
type Filesystem struct {
	Base
	rows []filemodel.Row
}

// NewFilesystem reads directory once, building its row list immediately
// the way FileSystem::new/create_store does; a read failure logs and
// yields an empty list rather than failing construction.
func NewFilesystem(directory string) *Filesystem {
	return &Filesystem{Base: newBase(directory), rows: readDirectory(directory)}
}

func readDirectory(directory string) []filemodel.Row {
	entries, err := os.ReadDir(directory)
	if err != nil {
		log.WithComponent("backend.filesystem").Warn("read_dir failed", "dir", directory, "err", err)
		return nil
	}
	rows := make([]filemodel.Row, 0, len(entries))
	for i, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.WithComponent("backend.filesystem").Warn("stat failed", "name", name, "err", err)
			continue
		}
		cls := classify.Classify(filepath.Join(directory, name), entry.IsDir())
		rows = append(rows, filemodel.Row{
			CategoryID: uint32(cls.Type),
			Name:       name,
			Size:       uint64(info.Size()),
			Modified:   info.ModTime().Unix(),
			Index:      uint64(i),
			IconName:   cls.Type.String(),
			Folder:     directory,
		})
	}
	return rows
}

func (f *Filesystem) ClassName() string           { return "Filesystem" }
func (f *Filesystem) List() []filemodel.Row       { return f.rows }
func (f *Filesystem) IsContainer() bool           { return true }
func (f *Filesystem) Kind() filemodel.BackendKind { return filemodel.BackendFilesystem }

func (f *Filesystem) Leave() (Backend, filemodel.Target, bool) { return defaultLeave(f.path) }

// Reload re-reads the directory, the one case a listing is rebuilt after
// construction: the directory backend the coordinator is currently showing
// can change on disk while the viewer is open.
func (f *Filesystem) Reload() Backend { return NewFilesystem(f.path) }

func (f *Filesystem) Enter(cursor int) Backend {
	row, ok := rowAt(f.rows, cursor)
	if !ok {
		return nil
	}
	t := classify.ContentType(row.CategoryID)
	if !t.IsContainer() {
		return nil
	}
	return New(filepath.Join(f.path, row.Name))
}

func (f *Filesystem) Render(cursor int, params ImageParams) *content.Content {
	row, ok := rowAt(f.rows, cursor)
	if !ok {
		return svgsheet.ErrorContent("ERROR", "no such entry")
	}
	full := filepath.Join(f.path, row.Name)
	c, err := imageprovider.FromFile(full)
	if err != nil {
		return svgsheet.ErrorContent("ERROR", err.Error())
	}
	return c
}

func (f *Filesystem) ThumbnailEntry(cursor int) filemodel.Entry {
	row, ok := rowAt(f.rows, cursor)
	if !ok {
		return filemodel.Entry{}
	}
	return filemodel.Entry{
		CategoryID: row.CategoryID,
		Name:       row.Name,
		Reference: filemodel.Reference{
			Backend: filemodel.NewBackendRef(filemodel.BackendFilesystem, f.path),
			Item:    filemodel.NewItemString(row.Name),
		},
	}
}

var favoriteExt = regexp.MustCompile(`\.([^.]+)$`)

// Favorite applies the .hi./.lo. rename convention: Up removes a Disliked
// tag or adds a Liked one; Down removes a Liked tag or adds a Disliked one.
// Already-tagged-the-requested-way is treated as success with no rename.
func (f *Filesystem) Favorite(cursor int, direction content.Direction) bool {
	row, ok := rowAt(f.rows, cursor)
	if !ok {
		return false
	}
	cls := classify.Classify(filepath.Join(f.path, row.Name), false)
	if cls.Type != classify.Image {
		return false
	}

	name := row.Name
	var newName string
	switch direction {
	case content.DirectionUp:
		switch {
		case strings.Contains(name, ".hi."):
			return true
		case strings.Contains(name, ".lo."):
			newName = strings.Replace(name, ".lo.", ".", 1)
		default:
			newName = favoriteExt.ReplaceAllString(name, ".hi.$1")
		}
	default:
		switch {
		case strings.Contains(name, ".lo."):
			return true
		case strings.Contains(name, ".hi."):
			newName = strings.Replace(name, ".hi.", ".", 1)
		default:
			newName = favoriteExt.ReplaceAllString(name, ".lo.$1")
		}
	}

	if err := os.Rename(filepath.Join(f.path, name), filepath.Join(f.path, newName)); err != nil {
		log.WithComponent("backend.filesystem").Warn("favorite rename failed", "from", name, "to", newName, "err", err)
		return false
	}
	row.Name = newName
	f.rows[cursor] = row
	return true
}

// rowAt bounds-checks cursor against rows, the Go stand-in for a
// GtkListStore cursor accessor.
func rowAt(rows []filemodel.Row, cursor int) (filemodel.Row, bool) {
	if cursor < 0 || cursor >= len(rows) {
		return filemodel.Row{}, false
	}
	return rows[cursor], true
}
