/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package filemodel

import "testing"

func TestItemRefStringRoundTrip(t *testing.T) {
	cases := []ItemRef{
		NewItemString("hello world"),
		NewItemIndex(42),
		NewItemNone(),
	}
	for _, ref := range cases {
		s := ref.String()
		got, err := ParseItemRef(s)
		if err != nil {
			t.Fatalf("ParseItemRef(%q) error: %v", s, err)
		}
		if got != ref {
			t.Fatalf("round trip mismatch: %+v -> %q -> %+v", ref, s, got)
		}
	}
}

func TestItemRefStringPrefixes(t *testing.T) {
	if got := NewItemString("x").String(); got != "s:x" {
		t.Fatalf("got %q, want s:x", got)
	}
	if got := NewItemIndex(7).String(); got != "i:7" {
		t.Fatalf("got %q, want i:7", got)
	}
	if got := NewItemNone().String(); got != "n" {
		t.Fatalf("got %q, want n", got)
	}
}

func TestParseItemRefErrors(t *testing.T) {
	if _, err := ParseItemRef("invalid"); err == nil {
		t.Fatalf("expected error for invalid format")
	}
	if _, err := ParseItemRef("i:not_a_number"); err == nil {
		t.Fatalf("expected error for non-numeric index")
	}
}

func TestReferenceToTarget(t *testing.T) {
	cases := []struct {
		name string
		ref  Reference
		want Target
	}{
		{
			"filesystem by name",
			Reference{Backend: NewBackendRef(BackendFilesystem, "/tmp"), Item: NewItemString("a.jpg")},
			NewTargetByName("a.jpg"),
		},
		{
			"zip by index",
			Reference{Backend: NewBackendRef(BackendZipArchive, "a.zip"), Item: NewItemIndex(3)},
			NewTargetByIndex(3),
		},
		{
			"mismatched kinds fall back to first",
			Reference{Backend: NewBackendRef(BackendFilesystem, "/tmp"), Item: NewItemIndex(3)},
			NewTargetFirst(),
		},
	}
	for _, c := range cases {
		if got := c.ref.ToTarget(); got != c.want {
			t.Fatalf("%s: ToTarget() = %+v, want %+v", c.name, got, c.want)
		}
	}
}

func TestNewItemRefFromRow(t *testing.T) {
	row := Row{Name: "pic.jpg", Index: 5, Folder: "/bookmarked"}

	if got := NewItemRefFromRow(BackendFilesystem, row); got != NewItemString("pic.jpg") {
		t.Fatalf("filesystem: got %+v", got)
	}
	if got := NewItemRefFromRow(BackendZipArchive, row); got != NewItemIndex(5) {
		t.Fatalf("zip: got %+v", got)
	}
	if got := NewItemRefFromRow(BackendBookmarks, row); got != NewItemString("/bookmarked") {
		t.Fatalf("bookmarks: got %+v", got)
	}
}
