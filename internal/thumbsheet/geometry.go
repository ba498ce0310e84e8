/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package thumbsheet computes thumbnail sheet grid geometry and renders a
// page of tiles from a backend's rows. Grounded on
// original_source/src/backends/thumbnail/mod.rs (Thumbnail::new) and model.rs
// (SheetDimensions).
package thumbsheet

const (
	Footer       = 50
	Margin       = 15
	MinSeparator = 5
)

// Geometry is the tile grid computed for one viewport size and tile size.
type Geometry struct {
	Size                   int
	Width, Height          int
	SeparatorX, SeparatorY int
	CapX, CapY             int
	OffsetX, OffsetY       int
}

// NewGeometry computes the tile grid for a viewport of width x height and
// the given square tile size, centering the grid inside the margins. It
// reports false when the viewport is too small to fit even one tile.
func NewGeometry(width, height, tileSize int) (Geometry, bool) {
	usableW := clamp0(width - 2*Margin)
	usableH := clamp0(height - Margin - Footer)

	capX := (usableW + MinSeparator) / (tileSize + MinSeparator)
	capY := (usableH + MinSeparator) / (tileSize + MinSeparator)
	if capX == 0 || capY == 0 {
		return Geometry{}, false
	}

	sepX := (usableW - capX*tileSize) / capX
	sepY := (usableH - capY*tileSize) / capY
	offX := Margin + (usableW-capX*(tileSize+sepX)+sepX)/2
	offY := Margin + (usableH-capY*(tileSize+sepY)+sepY)/2

	return Geometry{
		Size:       tileSize,
		Width:      width,
		Height:     height,
		SeparatorX: sepX,
		SeparatorY: sepY,
		CapX:       capX,
		CapY:       capY,
		OffsetX:    offX,
		OffsetY:    offY,
	}, true
}

func clamp0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Capacity is the number of tiles per page.
func (g Geometry) Capacity() int { return g.CapX * g.CapY }

// TileOrigin is the top-left pixel of the tile at row/col.
func (g Geometry) TileOrigin(row, col int) (int, int) {
	x := g.OffsetX + col*(g.Size+g.SeparatorX)
	y := g.OffsetY + row*(g.Size+g.SeparatorY)
	return x, y
}

// HitTest maps a click at (x,y) to a 0-based tile index within the page, or
// false when the click landed in a margin or separator.
func (g Geometry) HitTest(x, y float64) (int, bool) {
	for row := 0; row < g.CapY; row++ {
		for col := 0; col < g.CapX; col++ {
			ox, oy := g.TileOrigin(row, col)
			if x >= float64(ox) && x < float64(ox+g.Size) && y >= float64(oy) && y < float64(oy+g.Size) {
				return row*g.CapX + col, true
			}
		}
	}
	return 0, false
}
