/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"bytes"
	"errors"
	"image"

	"mview6/internal/classify"
	"mview6/internal/content"
	"mview6/internal/filemodel"
	"mview6/internal/imageprovider"
	"mview6/internal/log"
	"mview6/internal/mar"
	"mview6/internal/svgsheet"
)

var errNoSuchEntry = errors.New("backend: no such entry")

func byteReader(data []byte) *bytes.Reader { return bytes.NewReader(data) }

// MarArchive lists and decodes entries of MView's own MAR2 archive format
// by offset, using internal/mar for both directory parsing and per-entry
// MP? container decoding. Grounded on
// original_source/src/backends/archive_mar.rs.
type MarArchive struct {
	Base
	rows    []filemodel.Row
	entries []mar.Entry
}

func NewMarArchive(filename string) *MarArchive {
	entries, err := mar.List(filename)
	if err != nil {
		log.WithComponent("backend.mar").Warn("list failed", "file", filename, "err", err)
		return &MarArchive{Base: newBase(filename)}
	}
	rows := make([]filemodel.Row, len(entries))
	for i, e := range entries {
		cls := classify.Classify(e.Filename, false)
		rows[i] = filemodel.Row{
			CategoryID: uint32(cls.Type),
			Name:       e.Filename,
			Size:       uint64(e.ImageSize),
			Modified:   e.Date.Unix(),
			Index:      uint64(i),
			IconName:   cls.Type.String(),
			Folder:     filename,
		}
	}
	return &MarArchive{Base: newBase(filename), rows: rows, entries: entries}
}

func (m *MarArchive) ClassName() string           { return "MarArchive" }
func (m *MarArchive) List() []filemodel.Row       { return m.rows }
func (m *MarArchive) IsContainer() bool           { return true }
func (m *MarArchive) Kind() filemodel.BackendKind { return filemodel.BackendMarArchive }

func (m *MarArchive) Leave() (Backend, filemodel.Target, bool) { return defaultLeave(m.path) }

func (m *MarArchive) Enter(cursor int) Backend { return nil }

func (m *MarArchive) Render(cursor int, params ImageParams) *content.Content {
	entry, ok := m.entryAt(cursor)
	if !ok {
		return svgsheet.ErrorContent("ERROR", "no such entry")
	}
	container, err := mar.Extract(m.path, entry.Offset)
	if err != nil {
		return svgsheet.ErrorContent("ERROR", err.Error())
	}
	c, err := imageprovider.FromBytes(entry.Filename, container.Data)
	if err != nil {
		return svgsheet.ErrorContent("ERROR", err.Error())
	}
	if container.Comment != "" {
		c.Tag = container.Comment
	}
	return c
}

func (m *MarArchive) ThumbnailEntry(cursor int) filemodel.Entry {
	entry, ok := m.entryAt(cursor)
	if !ok {
		return filemodel.Entry{}
	}
	row, _ := rowAt(m.rows, cursor)
	return filemodel.Entry{
		CategoryID: row.CategoryID,
		Name:       entry.Filename,
		Reference: filemodel.Reference{
			Backend: filemodel.NewBackendRef(filemodel.BackendMarArchive, m.path),
			Item:    filemodel.NewItemIndex(uint64(cursor)),
		},
	}
}

func (m *MarArchive) entryAt(cursor int) (mar.Entry, bool) {
	if cursor < 0 || cursor >= len(m.entries) {
		return mar.Entry{}, false
	}
	return m.entries[cursor], true
}

// Thumbnail extracts and decodes entry cursor's embedded MP?-T thumbnail
// section, used by the thumbnail engine instead of downscaling the full
// image. Falls back to decoding the full image when the entry's container
// carries no thumbnail section (types other than "T").
func (m *MarArchive) Thumbnail(cursor int) (image.Image, error) {
	entry, ok := m.entryAt(cursor)
	if !ok {
		return nil, errNoSuchEntry
	}
	if container, err := mar.ExtractThumbnail(m.path, entry.Offset); err == nil {
		if img, _, err := image.Decode(byteReader(container.Data)); err == nil {
			return img, nil
		}
	}
	container, err := mar.Extract(m.path, entry.Offset)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(byteReader(container.Data))
	return img, err
}
