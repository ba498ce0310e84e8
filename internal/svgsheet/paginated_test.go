/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package svgsheet

import (
	"testing"

	"mview6/internal/filemodel"
)

func TestEllipsisMiddleShortStringIsPadded(t *testing.T) {
	got := ellipsisMiddle("short.txt", 20)
	if len(got) != 20 {
		t.Fatalf("expected padded length 20, got %d (%q)", len(got), got)
	}
}

func TestEllipsisMiddleLongStringIsTruncated(t *testing.T) {
	name := "this-is-a-very-long-filename-that-needs-truncation.tar.gz"
	got := ellipsisMiddle(name, 20)
	if len(got) != 20 {
		t.Fatalf("expected truncated length 20, got %d (%q)", len(got), got)
	}
	if got[8:11] != "..." {
		t.Fatalf("expected ellipsis in the middle, got %q", got)
	}
}

func TestHumanBytes(t *testing.T) {
	cases := map[uint64]string{
		512:             "512 B",
		2048:            "2.0 KB",
		5 * 1024 * 1024: "5.0 MB",
	}
	for n, want := range cases {
		if got := humanBytes(n); got != want {
			t.Fatalf("humanBytes(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestRawSourceNumPages(t *testing.T) {
	src := &RawSource{Name: "x.bin", Data: make([]byte, bytesPerLine*linesPerPage+1)}
	if got := src.NumPages(); got != 2 {
		t.Fatalf("NumPages() = %d, want 2", got)
	}
}

func TestRawSourcePrepareProducesTree(t *testing.T) {
	src := &RawSource{Name: "x.bin", Data: []byte("hello world")}
	tree, err := src.Prepare(0)
	if err != nil {
		t.Fatalf("Prepare() error: %v", err)
	}
	if tree == nil {
		t.Fatalf("expected non-nil tree")
	}
}

func TestListSourceSortByName(t *testing.T) {
	rows := []filemodel.Row{
		{Name: "banana"},
		{Name: "apple"},
		{Name: "cherry"},
	}
	src := &ListSource{Rows: rows}
	src.Sort("1a")
	if src.Rows[0].Name != "apple" || src.Rows[2].Name != "cherry" {
		t.Fatalf("unexpected sort order: %+v", src.Rows)
	}

	src.Sort("1d")
	if src.Rows[0].Name != "cherry" {
		t.Fatalf("unexpected descending sort order: %+v", src.Rows)
	}
}

func TestListSourceNumPages(t *testing.T) {
	rows := make([]filemodel.Row, linesPerPage+5)
	src := &ListSource{Rows: rows}
	if got := src.NumPages(); got != 2 {
		t.Fatalf("NumPages() = %d, want 2", got)
	}
}

func TestNewListContentBuildsPaginatedContent(t *testing.T) {
	ref := filemodel.NewBackendRef(filemodel.BackendFilesystem, "/tmp")
	rows := []filemodel.Row{{Name: "a.jpg"}, {Name: "b.jpg"}}
	c := NewListContent("/tmp", ref, rows)
	if !c.CanEnter() {
		t.Fatalf("list content should be enterable")
	}
}
