/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package svgsheet builds paginated SVG sheets (hex dump, syntax-highlighted
// text listing, directory listing) and wraps them as ready-made paginated
// content.Content values. It imports both filemodel (for Row) and content
// (to construct PaginatedContent); content never imports svgsheet.
package svgsheet

import (
	"fmt"

	"mview6/internal/classify"
)

// Color is an SVG fill/stroke color, always rendered as a "#rrggbb" hex
// string.
type Color struct{ R, G, B uint8 }

func (c Color) Hex() string { return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B) }

var (
	ColorBlack  = Color{0, 0, 0}
	ColorWhite  = Color{255, 255, 255}
	ColorSilver = Color{192, 192, 192}
	ColorCyan   = Color{0, 255, 255}
	ColorRed    = Color{255, 0, 0}
	ColorOlive  = Color{128, 128, 0}

	ColorFolderBack  = Color{0x1a, 0x3a, 0x2c}
	ColorFolderTitle = Color{0x2e, 0xc2, 0x7e}
	ColorFolderMsg   = Color{0xc8, 0xe6, 0xd4}

	ColorArchiveBack  = Color{0x1a, 0x2a, 0x3a}
	ColorArchiveTitle = Color{0x62, 0xa0, 0xea}
	ColorArchiveMsg   = Color{0xc8, 0xda, 0xe6}

	ColorUnsupportedBack  = Color{0x2a, 0x2a, 0x2a}
	ColorUnsupportedTitle = Color{0xc0, 0xbf, 0xbc}
	ColorUnsupportedMsg   = Color{0xe0, 0xe0, 0xe0}
)

// categoryColors mirrors the teacher's per-category (background, title,
// message) palette used to paint a list row by the kind of entry it names.
func categoryColors(t classify.ContentType) (bg, title, msg Color) {
	switch t {
	case classify.Folder:
		return ColorFolderBack, ColorFolderTitle, ColorFolderMsg
	case classify.Archive:
		return ColorArchiveBack, ColorArchiveTitle, ColorArchiveMsg
	case classify.Unsupported:
		return ColorUnsupportedBack, ColorUnsupportedTitle, ColorUnsupportedMsg
	default:
		return ColorBlack, ColorSilver, ColorWhite
	}
}

// categoryShort is the three-letter tag shown in a directory listing row.
func categoryShort(t classify.ContentType) string {
	switch t {
	case classify.Folder:
		return "dir"
	case classify.Image:
		return "img"
	case classify.Video:
		return "vid"
	case classify.Archive:
		return "arc"
	case classify.Document:
		return "doc"
	default:
		return "---"
	}
}

// TextAnchor is the SVG text-anchor attribute.
type TextAnchor int

const (
	AnchorStart TextAnchor = iota
	AnchorMiddle
	AnchorEnd
)

func (a TextAnchor) svg() string {
	switch a {
	case AnchorMiddle:
		return "middle"
	case AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

// FontWeight is the SVG font-weight attribute.
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

func (w FontWeight) svg() string {
	if w == WeightBold {
		return "bold"
	}
	return "normal"
}

// TextStyle is an immutable, chainable text style, following the teacher's
// builder pattern.
type TextStyle struct {
	FontFamily string
	FontSize   uint32
	Weight     FontWeight
	Fill       Color
	Anchor     TextAnchor
}

func NewTextStyle(fontSize uint32) TextStyle {
	return TextStyle{FontFamily: "monospace", FontSize: fontSize, Fill: ColorWhite}
}

func (s TextStyle) Color(c Color) TextStyle       { s.Fill = c; return s }
func (s TextStyle) WithAnchor(a TextAnchor) TextStyle { s.Anchor = a; return s }
func (s TextStyle) Bold() TextStyle               { s.Weight = WeightBold; return s }
func (s TextStyle) Family(f string) TextStyle     { s.FontFamily = f; return s }

// DeltaX returns a horizontal offset of delta character cells at this
// style's font size.
func (s TextStyle) DeltaX(delta float64) float64 { return delta * float64(s.FontSize) }

// DeltaY returns a vertical offset of delta line heights at this style's
// font size.
func (s TextStyle) DeltaY(delta float64) float64 { return delta * float64(s.FontSize) }
