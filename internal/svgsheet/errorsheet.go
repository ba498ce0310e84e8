/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package svgsheet

import (
	"mview6/internal/content"
	"mview6/internal/geom"
)

const (
	errorSheetWidth  = 900
	errorSheetHeight = 500
)

// ErrorContent builds the sheet every backend and provider falls back to
// when it cannot produce real content: the given title (usually "ERROR") in
// red over the given body text, so the pipeline always yields something drawable instead of
// surfacing a raw error to the view.
func ErrorContent(title, body string) *content.Content {
	sheet := NewSheet(errorSheetWidth, errorSheetHeight, fontSize)
	sheet.Background(ColorBlack)
	titleStyle := NewTextStyle(28).Color(ColorRed).WithAnchor(AnchorMiddle).Bold()
	sheet.SetPos(float64(errorSheetWidth)/2, 70)
	sheet.AddFragment(title, titleStyle)

	bodyStyle := NewTextStyle(fontSize).Color(ColorSilver)
	sheet.SetPos(leftMargin, 110)
	for _, line := range wrapError(body, 100) {
		sheet.AddLine(line, bodyStyle)
	}

	tree, err := sheet.Finish()
	if err != nil {
		// The sheet builder itself is trusted to produce valid SVG; a
		// failure here means oksvg rejected our own markup, which is a
		// bug, not a runtime condition callers should handle.
		panic("svgsheet: error sheet failed to parse: " + err.Error())
	}
	return content.NewSvg(tree, "", geom.ZoomNotSpecified, content.TransparencyNotSpecified)
}

// wrapError breaks body into plain lines no wider than width, splitting on
// existing newlines first.
func wrapError(body string, width int) []string {
	var out []string
	for _, raw := range splitLines(body) {
		for len(raw) > width {
			out = append(out, raw[:width])
			raw = raw[width:]
		}
		out = append(out, raw)
	}
	return out
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
