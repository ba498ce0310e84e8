/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package classify identifies a path's content kind from its extension or,
// when the bytes are available, by sniffing a leading magic-byte window. It
// also derives the favorite/trash preference MView6 encodes in filenames.
package classify

import (
	"bytes"
	"path/filepath"
	"strings"
)

// ContentType is the coarse kind assigned to a backend row.
type ContentType int

const (
	Folder ContentType = iota
	Archive
	Image
	Video
	Document
	Unsupported
)

func (c ContentType) String() string {
	switch c {
	case Folder:
		return "folder"
	case Archive:
		return "archive"
	case Image:
		return "image"
	case Video:
		return "video"
	case Document:
		return "document"
	default:
		return "unsupported"
	}
}

// IsContainer reports whether entries of this type can be entered.
func (c ContentType) IsContainer() bool {
	return c == Folder || c == Archive || c == Document
}

// Preference is the favorite/trash marker carried in a filename.
type Preference int

const (
	Normal Preference = iota
	Liked
	Disliked
)

// ShowIcon reports whether the preference should be drawn as an overlay.
func (p Preference) ShowIcon() bool { return p == Liked || p == Disliked }

// Classification is the (ContentType, Preference) pair derived for a path.
type Classification struct {
	Type       ContentType
	Preference Preference
}

var archiveExt = map[string]bool{"zip": true, "rar": true, "mar": true}
var docExt = map[string]bool{"pdf": true, "epub": true}
var imageExt = map[string]bool{
	"jpg": true, "jpeg": true, "jfif": true, "gif": true, "svg": true, "svgz": true,
	"webp": true, "heic": true, "avif": true, "pcx": true, "png": true,
}
var videoExt = map[string]bool{
	"webm": true, "mkv": true, "flv": true, "vob": true, "ogv": true, "ogg": true,
	"rrc": true, "gifv": true, "mng": true, "mov": true, "avi": true, "qt": true,
	"wmv": true, "yuv": true, "rm": true, "asf": true, "amv": true, "mp4": true,
	"m4p": true, "m4v": true, "mpg": true, "mp2": true, "mpeg": true, "mpe": true,
	"mpv": true, "svi": true, "3gp": true, "3g2": true, "mxf": true, "roq": true,
	"nsv": true, "f4v": true, "f4p": true, "f4a": true, "f4b": true, "mod": true,
}

// TypeFromExtension maps a (dotless, case-insensitive) extension to a ContentType.
func TypeFromExtension(ext string) ContentType {
	low := strings.ToLower(ext)
	switch {
	case archiveExt[low]:
		return Archive
	case docExt[low]:
		return Document
	case imageExt[low]:
		return Image
	case videoExt[low]:
		return Video
	default:
		return Unsupported
	}
}

// typeFromPath strips the leading dot from path's extension and classifies it.
func typeFromPath(path string) ContentType {
	ext := filepath.Ext(path)
	return TypeFromExtension(strings.TrimPrefix(ext, "."))
}

// preferenceFromPath inspects the lowercased filename for the ".hi."/".lo."
// infixes MView6 uses to mark favorites and trash.
func preferenceFromPath(path string) Preference {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, ".hi."):
		return Liked
	case strings.Contains(name, ".lo."):
		return Disliked
	default:
		return Normal
	}
}

// Classify derives a Classification from a path and whether it is a directory.
func Classify(path string, isDir bool) Classification {
	t := Folder
	if !isDir {
		t = typeFromPath(path)
	}
	return Classification{Type: t, Preference: preferenceFromPath(path)}
}

// ImageFormat is the specific decoder family an Image-classified file uses.
type ImageFormat int

const (
	ImageUnknown ImageFormat = iota
	ImageAvif
	ImageGif
	ImageHeic
	ImageJpeg
	ImagePcx
	ImagePng
	ImageSvg
	ImageWebp
)

// DetectFromBytes sniffs a leading window of file content and returns the
// ContentType and, for images, the specific ImageFormat. It never consults
// the filename: callers fall back to TypeFromExtension when bytes are
// unavailable or the sniff returns Unsupported.
func DetectFromBytes(data []byte) (ContentType, ImageFormat) {
	if len(data) < 4 {
		return Unsupported, ImageUnknown
	}

	if bytes.HasPrefix(data, []byte{0x50, 0x4B}) {
		window := data[:min(1024, len(data))]
		if bytes.Contains(window, []byte("mimetype")) {
			return Document, ImageUnknown
		}
		return Archive, ImageUnknown
	}

	if bytes.HasPrefix(data, []byte("Rar!\x1A\x07")) {
		return Archive, ImageUnknown
	}

	if bytes.HasPrefix(data, []byte("%PDF")) {
		return Document, ImageUnknown
	}

	if bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a")) {
		return Image, ImageGif
	}

	if bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}) {
		return Image, ImageJpeg
	}

	if bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}) {
		return Image, ImagePng
	}

	if len(data) >= 12 {
		if bytes.HasPrefix(data, []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
			return Image, ImageWebp
		}

		window := data[:min(256, len(data))]
		if windowContains(window, []byte("ftyphei"), 7) {
			return Image, ImageHeic
		}
		if windowContains(window, []byte("ftypavif"), 8) {
			return Image, ImageAvif
		}
	}

	if slice := data[:min(100, len(data))]; bytes.Contains(slice, []byte("<svg")) {
		return Image, ImageSvg
	}

	return Unsupported, ImageUnknown
}

// windowContains reports whether any width-byte window of data equals needle.
func windowContains(data, needle []byte, width int) bool {
	if len(data) < width {
		return false
	}
	for i := 0; i+width <= len(data); i++ {
		if bytes.Equal(data[i:i+width], needle) {
			return true
		}
	}
	return false
}
