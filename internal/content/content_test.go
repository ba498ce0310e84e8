/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package content

import (
	"image"
	"testing"

	"mview6/internal/filemodel"
	"mview6/internal/geom"
)

func TestNewSingleIDsAreMonotonic(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	a := NewSingle(img, false, nil)
	b := NewSingle(img, false, nil)
	if b.ID() <= a.ID() {
		t.Fatalf("expected monotonic ids, got %d then %d", a.ID(), b.ID())
	}
}

func TestSingleSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 20))
	c := NewSingle(img, false, nil)
	if got := c.Size(); got.W != 10 || got.H != 20 {
		t.Fatalf("Size() = %+v, want {10 20}", got)
	}
}

func TestDualSizeIsSideBySide(t *testing.T) {
	left := image.NewRGBA(image.Rect(0, 0, 10, 20))
	right := image.NewRGBA(image.Rect(0, 0, 12, 15))
	c := NewDual(left, right, false, false, nil)
	got := c.Size()
	if got.W != 22 || got.H != 20 {
		t.Fatalf("Size() = %+v, want {22 20}", got)
	}
}

func TestNeedsRender(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if NewSingle(img, false, nil).NeedsRender() {
		t.Fatalf("Single should not need render")
	}
	if !NewSvg(nil, "", geom.ZoomNotSpecified, TransparencyWhite).NeedsRender() {
		t.Fatalf("Svg should need render")
	}
	doc := NewDoc(filemodel.Reference{}, filemodel.PageSingle, geom.NewSize(100, 100))
	if !doc.NeedsRender() {
		t.Fatalf("Doc should need render")
	}
}

func TestIsMovable(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if !NewSingle(img, false, nil).IsMovable() {
		t.Fatalf("Single should be movable by default")
	}
	if NewSingleNoZoom(img, false).IsMovable() {
		t.Fatalf("NoZoom content should not be movable")
	}
}

func TestCanEnter(t *testing.T) {
	preview := NewPreview(PreviewContent{Path: "a.pdf"})
	if !preview.CanEnter() {
		t.Fatalf("preview should be enterable")
	}

	list := NewPaginated(PaginatedContent{Kind: PaginatedList})
	if !list.CanEnter() {
		t.Fatalf("list paginated content should be enterable")
	}

	raw := NewPaginated(PaginatedContent{Kind: PaginatedRaw})
	if raw.CanEnter() {
		t.Fatalf("raw paginated content should not be enterable")
	}
}

func TestPaginatedDoubleClickResolvesRow(t *testing.T) {
	rows := []filemodel.Row{
		{Name: "a.txt", Index: 0},
		{Name: "b.txt", Index: 1},
	}
	ref := filemodel.NewBackendRef(filemodel.BackendFilesystem, "/tmp")
	c := NewPaginated(PaginatedContent{Kind: PaginatedList, Page: 0, Rows: rows, ListRef: ref})

	got := c.DoubleClick(geom.VectorD{X: 10, Y: listRowsTop + listRowHeight*1.5})
	want := filemodel.Reference{Backend: ref, Item: filemodel.NewItemString("b.txt")}
	if got != want {
		t.Fatalf("DoubleClick = %+v, want %+v", got, want)
	}
}

func TestPaginatedDoubleClickAboveListIsNone(t *testing.T) {
	ref := filemodel.NewBackendRef(filemodel.BackendFilesystem, "/tmp")
	c := NewPaginated(PaginatedContent{Kind: PaginatedList, ListRef: ref})

	got := c.DoubleClick(geom.VectorD{X: 10, Y: 0})
	if !got.Item.IsNone() {
		t.Fatalf("expected none item, got %+v", got.Item)
	}
}

func TestPreviewDoubleClickReturnsFirstPage(t *testing.T) {
	backendRef := filemodel.NewBackendRef(filemodel.BackendDocument, "book.pdf")
	c := NewPreview(PreviewContent{Path: "book.pdf", Reference: backendRef})

	got := c.DoubleClick(geom.VectorD{})
	want := filemodel.Reference{Backend: backendRef, Item: filemodel.NewItemIndex(0)}
	if got != want {
		t.Fatalf("DoubleClick = %+v, want %+v", got, want)
	}
}
