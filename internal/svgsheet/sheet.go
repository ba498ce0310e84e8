/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package svgsheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
)

// leftMargin is the x coordinate every sheet's left-aligned text starts at.
const leftMargin = 30.0

// firstLineY is the y coordinate of the cursor immediately after Header,
// before the first DeltaY("new line") call.
const firstLineY = 55.0

type span struct {
	text  string
	fill  Color
}

type element interface{ render(sb *strings.Builder) }

type textElement struct {
	x, y  float64
	style TextStyle
	spans []span
}

func (e textElement) render(sb *strings.Builder) {
	if len(e.spans) == 1 {
		fmt.Fprintf(sb, `<text x="%s" y="%s" text-anchor="%s" font-family="%s" font-size="%d" font-weight="%s" fill="%s">%s</text>`,
			f(e.x), f(e.y), e.style.Anchor.svg(), e.style.FontFamily, e.style.FontSize, e.style.Weight.svg(), e.style.Fill.Hex(), escapeXML(e.spans[0].text))
		return
	}
	fmt.Fprintf(sb, `<text x="%s" y="%s" text-anchor="%s" font-family="%s" font-size="%d" font-weight="%s">`,
		f(e.x), f(e.y), e.style.Anchor.svg(), e.style.FontFamily, e.style.FontSize, e.style.Weight.svg())
	for _, s := range e.spans {
		fmt.Fprintf(sb, `<tspan fill="%s">%s</tspan>`, s.fill.Hex(), escapeXML(s.text))
	}
	sb.WriteString("</text>")
}

type rectElement struct {
	x, y, w, h float64
	fill       Color
}

func (e rectElement) render(sb *strings.Builder) {
	fmt.Fprintf(sb, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`, f(e.x), f(e.y), f(e.w), f(e.h), e.fill.Hex())
}

func f(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func escapeXML(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;")
	return r.Replace(s)
}

// Sheet is a cursor-based SVG page builder: a sequence of monospace text
// fragments laid out by repeatedly moving a cursor, the way the teacher's
// paginated content sources render a hex dump, code listing or directory
// page. It accumulates elements, then Finish renders and parses the result
// into an oksvg tree ready for the render worker.
type Sheet struct {
	width, height int
	fontSize      uint32
	background    Color
	cursor        struct{ x, y float64 }
	elements      []element
}

// NewSheet starts a new page of the given pixel size and default font size.
func NewSheet(width, height int, fontSize uint32) *Sheet {
	return &Sheet{
		width:      width,
		height:     height,
		fontSize:   fontSize,
		background: ColorBlack,
		cursor:     struct{ x, y float64 }{leftMargin, firstLineY},
	}
}

func (s *Sheet) Background(c Color) *Sheet { s.background = c; return s }

// BaseStyle is the sheet's default text style at its configured font size.
func (s *Sheet) BaseStyle() TextStyle { return NewTextStyle(s.fontSize) }

func (s *Sheet) Pos() (x, y float64) { return s.cursor.x, s.cursor.y }
func (s *Sheet) SetPos(x, y float64) { s.cursor.x, s.cursor.y = x, y }

// DeltaX advances the cursor horizontally by delta character cells.
func (s *Sheet) DeltaX(delta float64) { s.cursor.x += s.BaseStyle().DeltaX(delta) }

// DeltaY advances the cursor to a new line: delta line heights down, and
// back to the left margin.
func (s *Sheet) DeltaY(delta float64) {
	s.cursor.y += s.BaseStyle().DeltaY(delta)
	s.cursor.x = leftMargin
}

// AddFragment draws text at the current cursor position without moving it.
func (s *Sheet) AddFragment(text string, style TextStyle) {
	s.elements = append(s.elements, textElement{x: s.cursor.x, y: s.cursor.y, style: style, spans: []span{{text: text, fill: style.Fill}}})
}

// AddMultiColorFragment draws a sequence of differently-colored spans
// starting at the current cursor position, the way a syntax-highlighted
// line is rendered one token at a time.
func (s *Sheet) AddMultiColorFragment(spans []span, style TextStyle) {
	s.elements = append(s.elements, textElement{x: s.cursor.x, y: s.cursor.y, style: style, spans: spans})
}

// AddLine is a convenience for content sources that draw one fragment per
// line: it advances to a new line, then draws text.
func (s *Sheet) AddLine(text string, style TextStyle) {
	s.DeltaY(1.5)
	s.AddFragment(text, style)
}

// AddRect draws a filled rectangle at an absolute position.
func (s *Sheet) AddRect(x, y, w, h float64, fill Color) {
	s.elements = append(s.elements, rectElement{x: x, y: y, w: w, h: h, fill: fill})
}

// Header draws the sheet's title bar: the path's base name as a bold
// heading at titleY, and the MView6 watermark in the bottom right corner.
func (s *Sheet) Header(name string, titleFontSize uint32, titleY float64) {
	style := NewTextStyle(titleFontSize).Color(ColorWhite).WithAnchor(AnchorMiddle).Bold().Family("sans-serif")
	s.elements = append(s.elements, textElement{
		x: float64(s.width) / 2, y: titleY, style: style,
		spans: []span{{text: name, fill: ColorWhite}},
	})
	wmStyle := NewTextStyle(18).WithAnchor(AnchorEnd).Bold().Family("sans-serif")
	s.elements = append(s.elements, textElement{
		x: float64(s.width) - 20, y: float64(s.height) - 12, style: wmStyle,
		spans: []span{{text: "M", fill: ColorRed}, {text: "View6", fill: ColorWhite}},
	})
}

// ShowPageNo draws the "page N/M" indicator at the bottom left.
func (s *Sheet) ShowPageNo(page, numPages int) {
	style := NewTextStyle(14).Color(ColorSilver)
	text := fmt.Sprintf("page %d/%d", page+1, numPages)
	s.elements = append(s.elements, textElement{
		x: leftMargin, y: float64(s.height) - 12, style: style,
		spans: []span{{text: text, fill: ColorSilver}},
	})
}

// ShowOpenText draws the hint shown on a directory-listing sheet.
func (s *Sheet) ShowOpenText() {
	style := NewTextStyle(14).Color(ColorOlive).WithAnchor(AnchorMiddle)
	s.elements = append(s.elements, textElement{
		x: float64(s.width) / 2, y: float64(s.height) - 12, style: style,
		spans: []span{{text: "double-click a row to open", fill: ColorOlive}},
	})
}

// render assembles the accumulated elements into a full SVG document.
func (s *Sheet) render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		s.width, s.height, s.width, s.height)
	fmt.Fprintf(&sb, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, s.width, s.height, s.background.Hex())
	for _, e := range s.elements {
		e.render(&sb)
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// Finish renders the sheet and parses it into an oksvg tree, ready for the
// render worker to rasterize.
func (s *Sheet) Finish() (*oksvg.SvgIcon, error) {
	svg := s.render()
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parse generated sheet svg: %w", err)
	}
	return icon, nil
}
