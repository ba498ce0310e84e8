/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package classify

import "testing"

func TestTypeFromExtension(t *testing.T) {
	cases := map[string]ContentType{
		"zip": Archive, "rar": Archive, "mar": Archive,
		"pdf": Document, "epub": Document,
		"jpg": Image, "png": Image, "svg": Image, "webp": Image, "heic": Image, "avif": Image,
		"mp4": Video, "mkv": Video,
		"txt": Unsupported, "": Unsupported,
	}
	for ext, want := range cases {
		if got := TypeFromExtension(ext); got != want {
			t.Fatalf("TypeFromExtension(%q) = %v, want %v", ext, got, want)
		}
	}
}

func TestTypeFromExtensionIsCaseInsensitive(t *testing.T) {
	if TypeFromExtension("ZIP") != Archive {
		t.Fatalf("expected uppercase extension to classify as archive")
	}
}

func TestClassifyFolder(t *testing.T) {
	c := Classify("/home/user/Pictures", true)
	if c.Type != Folder {
		t.Fatalf("expected Folder, got %v", c.Type)
	}
}

func TestClassifyPreference(t *testing.T) {
	cases := map[string]Preference{
		"photo.hi.jpg":    Liked,
		"photo.lo.jpg":    Disliked,
		"photo.jpg":       Normal,
		"PHOTO.HI.JPG":    Liked,
		"archive.hi.2.jpg": Liked,
	}
	for name, want := range cases {
		if got := Classify(name, false).Preference; got != want {
			t.Fatalf("Classify(%q).Preference = %v, want %v", name, got, want)
		}
	}
}

func TestDetectFromBytes(t *testing.T) {
	cases := []struct {
		name     string
		data     []byte
		wantType ContentType
		wantFmt  ImageFormat
	}{
		{"zip", []byte{0x50, 0x4B, 0x03, 0x04, 0x14, 0x00}, Archive, ImageUnknown},
		{"rar", []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x00}, Archive, ImageUnknown},
		{"pdf", []byte("%PDF-1.4"), Document, ImageUnknown},
		{"gif87", []byte("GIF87a"), Image, ImageGif},
		{"gif89", []byte("GIF89a"), Image, ImageGif},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}, Image, ImageJpeg},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, Image, ImagePng},
		{"unknown", []byte{0x00, 0x01, 0x02, 0x03}, Unsupported, ImageUnknown},
		{"empty", nil, Unsupported, ImageUnknown},
	}
	for _, c := range cases {
		gotType, gotFmt := DetectFromBytes(c.data)
		if gotType != c.wantType || gotFmt != c.wantFmt {
			t.Fatalf("%s: DetectFromBytes = (%v,%v), want (%v,%v)", c.name, gotType, gotFmt, c.wantType, c.wantFmt)
		}
	}
}

func TestDetectFromBytesWebp(t *testing.T) {
	data := append([]byte("RIFF"), []byte{0, 0, 0, 0}...)
	data = append(data, []byte("WEBP")...)
	gotType, gotFmt := DetectFromBytes(data)
	if gotType != Image || gotFmt != ImageWebp {
		t.Fatalf("webp detect = (%v,%v)", gotType, gotFmt)
	}
}

func TestDetectFromBytesHeicAndAvif(t *testing.T) {
	heic := []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'h', 'e', 'i', 'c'}
	if gotType, gotFmt := DetectFromBytes(heic); gotType != Image || gotFmt != ImageHeic {
		t.Fatalf("heic detect = (%v,%v)", gotType, gotFmt)
	}

	avif := []byte{0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p', 'a', 'v', 'i', 'f'}
	if gotType, gotFmt := DetectFromBytes(avif); gotType != Image || gotFmt != ImageAvif {
		t.Fatalf("avif detect = (%v,%v)", gotType, gotFmt)
	}
}

func TestDetectFromBytesSvg(t *testing.T) {
	data := []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg">`)
	if gotType, gotFmt := DetectFromBytes(data); gotType != Image || gotFmt != ImageSvg {
		t.Fatalf("svg detect = (%v,%v)", gotType, gotFmt)
	}
}

func TestDetectFromBytesEpub(t *testing.T) {
	data := append([]byte{0x50, 0x4B, 0x03, 0x04}, []byte("mimetypeapplication/epub+zip")...)
	if gotType, _ := DetectFromBytes(data); gotType != Document {
		t.Fatalf("expected epub zip to classify as Document, got %v", gotType)
	}
}

func TestIsContainer(t *testing.T) {
	for _, ct := range []ContentType{Folder, Archive, Document} {
		if !ct.IsContainer() {
			t.Fatalf("%v should be a container", ct)
		}
	}
	for _, ct := range []ContentType{Image, Video, Unsupported} {
		if ct.IsContainer() {
			t.Fatalf("%v should not be a container", ct)
		}
	}
}
