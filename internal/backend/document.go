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

	"github.com/gen2brain/go-fitz"

	"mview6/internal/classify"
	"mview6/internal/content"
	"mview6/internal/filemodel"
	"mview6/internal/geom"
	"mview6/internal/log"
	"mview6/internal/svgsheet"
)

// Document backs a PDF or EPUB: one row per page. Opening the document is
// confined to construction (to learn the page count and bounds), to
// Render (to learn the page size for the current pair) and to ImageZoom
// (to rasterize a zoomed tile); the actual
// rasterization of a page is deferred to the render worker, which keeps
// its own document handle per original_source/src/render_thread/worker.rs
// ("PDF document handles are not shared across threads; the worker holds
// its own"). Grounded on original_source/src/backends/document.rs and the
// dual-pair table in spec.md §4.5. go-fitz (MuPDF bindings) is the only
// document renderer carried by the example pack, so it is the one
// implementation built here; the original's selectable MuPDF/PDFium
// backends collapse to this single one.
type Document struct {
	Base
	pages int
}

func NewDocument(path string) *Document {
	doc, err := fitz.New(path)
	if err != nil {
		log.WithComponent("backend.document").Warn("open failed", "file", path, "err", err)
		return &Document{Base: newBase(path)}
	}
	defer doc.Close()
	return &Document{Base: newBase(path), pages: doc.NumPage()}
}

func (d *Document) ClassName() string           { return "Document" }
func (d *Document) IsContainer() bool           { return true }
func (d *Document) IsDoc() bool                 { return true }
func (d *Document) CanBeSorted() bool           { return false }
func (d *Document) Kind() filemodel.BackendKind { return filemodel.BackendDocument }

func (d *Document) List() []filemodel.Row {
	rows := make([]filemodel.Row, d.pages)
	for i := range rows {
		rows[i] = filemodel.Row{
			CategoryID: uint32(classify.Document),
			Name:       fmt.Sprintf("page %04d", i+1),
			Index:      uint64(i),
			IconName:   classify.Document.String(),
			Folder:     d.path,
		}
	}
	return rows
}

func (d *Document) Leave() (Backend, filemodel.Target, bool) { return defaultLeave(d.path) }

func (d *Document) Enter(cursor int) Backend { return nil }

// Render resolves the dual-pair start page for params.PageMode against the
// current cursor and the last page index, then returns a deferred DocContent
// the render worker will rasterize.
func (d *Document) Render(cursor int, params ImageParams) *content.Content {
	if d.pages == 0 {
		return svgsheet.ErrorContent("ERROR", "document has no pages")
	}
	last := d.pages - 1
	mode, left := resolveDualPair(params.PageMode, cursor, last)

	size, err := d.pageSize(left)
	if err != nil {
		return svgsheet.ErrorContent("ERROR", err.Error())
	}
	if mode != filemodel.PageSingle {
		if rightSize, err := d.pageSize(left + 1); err == nil {
			size = geom.NewSize(size.W+rightSize.W, maxFloat(size.H, rightSize.H))
		}
	}

	ref := filemodel.Reference{
		Backend: filemodel.NewBackendRef(filemodel.BackendDocument, d.path),
		Item:    filemodel.NewItemIndex(uint64(left)),
	}
	return content.NewDoc(ref, mode, size)
}

func (d *Document) pageSize(page int) (geom.SizeD, error) {
	doc, err := fitz.New(d.path)
	if err != nil {
		return geom.SizeD{}, err
	}
	defer doc.Close()
	bounds, err := doc.Bound(page)
	if err != nil {
		return geom.SizeD{}, err
	}
	return geom.NewSize(float64(bounds.Dx()), float64(bounds.Dy())), nil
}

// resolveDualPair applies the spec's dual-start-page table: DualOdd keeps
// the left page of a pair odd, DualEven keeps it even; both fall back to a
// Single page when the computed pair would run past the last page.
func resolveDualPair(mode filemodel.PageMode, p, last int) (filemodel.PageMode, int) {
	switch mode {
	case filemodel.PageDualOdd:
		if p == 0 {
			return filemodel.PageSingle, 0
		}
		left := (p - 1) | 1
		if left == last {
			return filemodel.PageSingle, left
		}
		return filemodel.PageDualOdd, left
	case filemodel.PageDualEven:
		left := p &^ 1
		if left == last {
			return filemodel.PageSingle, left
		}
		return filemodel.PageDualEven, left
	default:
		return filemodel.PageSingle, p
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func (d *Document) ThumbnailEntry(cursor int) filemodel.Entry {
	if cursor < 0 || cursor >= d.pages {
		return filemodel.Entry{}
	}
	return filemodel.Entry{
		CategoryID: uint32(classify.Document),
		Name:       fmt.Sprintf("page %04d", cursor+1),
		Reference: filemodel.Reference{
			Backend: filemodel.NewBackendRef(filemodel.BackendDocument, d.path),
			Item:    filemodel.NewItemIndex(uint64(cursor)),
		},
	}
}

// ImageZoom is the tile-based pan path for a zoomed document page: it
// rasterizes the whole page at the new zoom and returns the part of it that
// lies inside clip (the whole page when the raster cannot be sub-sliced).
// Rasterization is not limited to the clip region. Satisfies the
// PageZoomer capability interface.
func (d *Document) ImageZoom(cursor int, params ImageParams, currentHeight float64, clip geom.RectD, zoom geom.Zoom) (*content.Content, bool) {
	doc, err := fitz.New(d.path)
	if err != nil {
		return nil, false
	}
	defer doc.Close()
	if cursor < 0 || cursor >= doc.NumPage() {
		return nil, false
	}
	bounds, err := doc.Bound(cursor)
	if err != nil {
		return nil, false
	}
	baseDPI := 72.0
	scale := zoom.Scale() * currentHeight / float64(bounds.Dy())
	dpi := baseDPI * scale
	img, err := doc.ImageDPI(cursor, dpi)
	if err != nil {
		return nil, false
	}
	pageBounds := geom.NewRect(0, 0, float64(img.Bounds().Dx()), float64(img.Bounds().Dy()))
	region := clip.Intersect(pageBounds)
	if region.IsEmpty() {
		return nil, false
	}
	type subImager interface {
		SubImage(r image.Rectangle) image.Image
	}
	si, ok := img.(subImager)
	if !ok {
		return content.NewSingleNoZoom(img, false), true
	}
	ri := geom.RectDRound(region)
	tile := si.SubImage(image.Rect(ri.X0, ri.Y0, ri.X1, ri.Y1))
	return content.NewSingleNoZoom(tile, false), true
}
