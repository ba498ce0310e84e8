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
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/srwiley/oksvg"

	"mview6/internal/classify"
	"mview6/internal/content"
	"mview6/internal/filemodel"
)

const (
	fontSizeTitle = 24
	fontSize      = 14
	linesPerPage  = content.LinesPerPage

	bytesPerLine = 16
	widthAddress = 6.5
	widthHex     = 2.0
	widthAscii   = 5.4

	maxLineLength = 142
)

// RawSource builds a hexdump page for an arbitrary byte buffer.
type RawSource struct {
	Name string
	Data []byte
}

func (r *RawSource) NumPages() int {
	if len(r.Data) == 0 {
		return 1
	}
	return 1 + (len(r.Data)-1)/(linesPerPage*bytesPerLine)
}

func (r *RawSource) Prepare(page int) (*oksvg.SvgIcon, error) {
	sheet := NewSheet(800, 800, fontSize)
	sheet.Header(r.Name, fontSizeTitle, 54)

	startLine := page * linesPerPage
	totalLines := (len(r.Data) + bytesPerLine - 1) / bytesPerLine
	endLine := totalLines
	if endLine > startLine+linesPerPage {
		endLine = startLine + linesPerPage
	}
	for line := startLine; line < endLine; line++ {
		r.drawLine(sheet, line*bytesPerLine)
	}

	sheet.ShowPageNo(page, r.NumPages())
	return sheet.Finish()
}

func (r *RawSource) drawLine(sheet *Sheet, offset int) {
	sheet.DeltaY(1.5)
	lineX, lineY := sheet.Pos()

	end := offset + bytesPerLine
	if end > len(r.Data) {
		end = len(r.Data)
	}
	data := r.Data[offset:end]

	sheet.AddFragment(fmt.Sprintf("%08x", offset), sheet.BaseStyle())
	sheet.DeltaX(widthAddress)

	hexX, hexY := sheet.Pos()
	for i, b := range data {
		sheet.AddFragment(fmt.Sprintf("%02x", b), sheet.BaseStyle().Color(ColorWhite))
		sheet.DeltaX(widthHex)
		if i%8 == 7 {
			sheet.DeltaX(widthHex / 2.0)
		}
	}

	sheet.SetPos(hexX+sheet.BaseStyle().DeltaX(widthHex*17.0), hexY)
	sheet.AddFragment("|", sheet.BaseStyle())
	sheet.DeltaX(widthHex / 2.0)

	first, second := data, data[:0]
	if len(data) > 8 {
		first, second = data[:8], data[8:]
	}
	asciiFragment(sheet, first)
	sheet.DeltaX(widthAscii)
	if len(second) > 0 {
		asciiFragment(sheet, second)
	}
	sheet.DeltaX(widthAscii)
	sheet.AddFragment("|", sheet.BaseStyle())

	sheet.SetPos(lineX, lineY)
}

func asciiFragment(sheet *Sheet, data []byte) {
	var sb strings.Builder
	for _, b := range data {
		if b >= 32 && b <= 126 {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('.')
		}
	}
	sheet.AddFragment(sb.String(), sheet.BaseStyle().Color(ColorCyan))
}

// NewRawContent builds a paginated hexdump Content for data.
func NewRawContent(path string, data []byte) *content.Content {
	src := &RawSource{Name: filepath.Base(path), Data: data}
	tree, _ := src.Prepare(0)
	return content.NewPaginated(content.PaginatedContent{
		Kind:     content.PaginatedRaw,
		Page:     0,
		NumPages: src.NumPages(),
		Rendered: tree,
		Source:   src,
	})
}

// TextSource builds a syntax-highlighted code listing page.
type TextSource struct {
	Name  string
	Lexer chroma.Lexer
	Style *chroma.Style
	Lines []string
}

// NewTextSource picks a chroma lexer from path's extension, falling back to
// a plain-text lexer when nothing matches.
func NewTextSource(path string, lines []string) *TextSource {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	return &TextSource{Name: filepath.Base(path), Lexer: lexer, Style: style, Lines: lines}
}

func (t *TextSource) NumPages() int {
	if len(t.Lines) == 0 {
		return 1
	}
	return 1 + (len(t.Lines)-1)/linesPerPage
}

func (t *TextSource) Prepare(page int) (*oksvg.SvgIcon, error) {
	sheet := NewSheet(1200, 800, fontSize)
	sheet.Header(t.Name, fontSizeTitle, 81)

	start := page * linesPerPage
	end := start + linesPerPage
	if end > len(t.Lines) {
		end = len(t.Lines)
	}
	if start > end {
		start = end
	}
	for _, line := range t.Lines[start:end] {
		sheet.DeltaY(1.5)
		spans := t.highlight(limitLine(line))
		sheet.AddMultiColorFragment(spans, sheet.BaseStyle())
	}

	sheet.ShowPageNo(page, t.NumPages())
	return sheet.Finish()
}

func (t *TextSource) highlight(line string) []span {
	iter, err := t.Lexer.Tokenise(nil, line)
	if err != nil {
		return []span{{text: line, fill: ColorWhite}}
	}
	var spans []span
	for _, tok := range iter.Tokens() {
		entry := t.Style.Get(tok.Type)
		fill := ColorWhite
		if entry.Colour.IsSet() {
			fill = Color{R: entry.Colour.Red(), G: entry.Colour.Green(), B: entry.Colour.Blue()}
		}
		spans = append(spans, span{text: tok.Value, fill: fill})
	}
	if len(spans) == 0 {
		spans = append(spans, span{text: line, fill: ColorWhite})
	}
	return spans
}

func limitLine(s string) string {
	r := []rune(s)
	if len(r) <= maxLineLength {
		return s
	}
	return string(r[:maxLineLength])
}

// NewTextContent builds a paginated syntax-highlighted listing Content.
func NewTextContent(path string, lines []string) *content.Content {
	src := NewTextSource(path, lines)
	tree, _ := src.Prepare(0)
	return content.NewPaginated(content.PaginatedContent{
		Kind:     content.PaginatedText,
		Page:     0,
		NumPages: src.NumPages(),
		Rendered: tree,
		Source:   src,
	})
}

// ListSource builds a directory-listing page and supports re-sorting.
type ListSource struct {
	Name      string
	Reference filemodel.BackendRef
	Rows      []filemodel.Row
}

func (l *ListSource) NumPages() int {
	if len(l.Rows) == 0 {
		return 1
	}
	return 1 + (len(l.Rows)-1)/linesPerPage
}

func (l *ListSource) Prepare(page int) (*oksvg.SvgIcon, error) {
	sheet := NewSheet(800, 800, fontSize)
	sheet.Header(l.Name, fontSizeTitle, 54)

	start := page * linesPerPage
	end := start + linesPerPage
	if end > len(l.Rows) {
		end = len(l.Rows)
	}
	if start > end {
		start = end
	}
	for _, row := range l.Rows[start:end] {
		modified := ""
		if row.Modified > 0 {
			modified = time.Unix(row.Modified, 0).Local().Format("02-01-2006 15:04:05")
		}
		size := ""
		if row.Size > 0 {
			size = humanBytes(row.Size)
		}
		catType := classify.ContentType(row.CategoryID)
		_, titleColor, _ := categoryColors(catType)
		name := ellipsisMiddle(row.Name, 59)
		line := fmt.Sprintf("%s %-19s %10s %s", categoryShort(catType), modified, size, name)
		sheet.AddLine(line, sheet.BaseStyle().Color(titleColor))
	}

	sheet.ShowPageNo(page, l.NumPages())
	sheet.ShowOpenText()
	return sheet.Finish()
}

// Sort reorders Rows in place per the two-character sort key used by the
// directory listing header: digit selects the column (0 category, 1 name,
// 2 size, 3 modified), 'a'/'d' selects ascending/descending.
func (l *ListSource) Sort(key string) {
	if len(key) != 2 {
		return
	}
	col, dir := key[0], key[1]
	less := func(i, j int) bool {
		a, b := l.Rows[i], l.Rows[j]
		switch col {
		case '0':
			if a.CategoryID != b.CategoryID {
				return a.CategoryID < b.CategoryID
			}
			return a.Name < b.Name
		case '1':
			return a.Name < b.Name
		case '2':
			return a.Size < b.Size
		case '3':
			return a.Modified < b.Modified
		default:
			return false
		}
	}
	sort.SliceStable(l.Rows, func(i, j int) bool {
		if dir == 'd' {
			return less(j, i)
		}
		return less(i, j)
	})
}

// NewListContent builds a paginated directory-listing Content.
func NewListContent(path string, ref filemodel.BackendRef, rows []filemodel.Row) *content.Content {
	src := &ListSource{Name: filepath.Base(path), Reference: ref, Rows: rows}
	tree, _ := src.Prepare(0)
	return content.NewPaginated(content.PaginatedContent{
		Kind:     content.PaginatedList,
		Page:     0,
		NumPages: src.NumPages(),
		Rendered: tree,
		Source:   src,
		Rows:     rows,
		ListRef:  ref,
	})
}

// humanBytes formats n bytes as a short human-readable size, e.g. "1.2 MB".
func humanBytes(n uint64) string {
	const unit = 1024.0
	f := float64(n)
	if f < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for f/div >= unit && exp < 4 {
		div *= unit
		exp++
	}
	suffixes := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.1f %s", f/div, suffixes[exp])
}

// ellipsisMiddle truncates s to max characters, keeping a prefix and
// suffix and replacing the middle with "...", the way long filenames are
// shown in the directory listing.
func ellipsisMiddle(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return fmt.Sprintf("%-*s", max, s)
	}
	keep := max - 3
	head := keep / 2
	tail := keep - head
	return string(r[:head]) + "..." + string(r[len(r)-tail:])
}
