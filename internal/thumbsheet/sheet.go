/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package thumbsheet

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"sync"

	"github.com/nfnt/resize"

	"mview6/internal/classify"
	"mview6/internal/content"
	"mview6/internal/crash"
	"mview6/internal/filemodel"
	"mview6/internal/thumbcache"
)

// ThumbnailSize is the fixed tile content size (downscale target), matching
// the original's 175x175 Lanczos3 thumbnails.
const ThumbnailSize = 175

// maxConcurrentTasks bounds how many tile decodes run at once: the
// original pumps up to three tasks, pumping a new one each time one
// completes. A semaphore channel gives the same steady-state concurrency.
const maxConcurrentTasks = 3

// Task pairs a page-local tile position with the parent entry it shows.
type Task struct {
	ID       int
	Row, Col int
	Entry    filemodel.Entry
}

// Source supplies a page's entries and renders one into a displayable
// Content. A backend builds a Source from its own ThumbnailEntry/Render
// methods so this package never has to import the backend package.
type Source struct {
	Entry  func(cursor int) filemodel.Entry
	Render func(cursor int) *content.Content
	// Cache, if non-nil, is consulted before decoding a tile and populated
	// after. Only RAR/MAR entries use it (cheap filesystem/ZIP reads don't
	// need one, and the original leaves the ZIP thumbnail cache disabled).
	Cache *thumbcache.Cache
}

// BuildTasks enumerates the tiles of page using g, stopping as soon as the
// parent store runs out of entries.
func BuildTasks(src Source, page int, g Geometry) []Task {
	capacity := g.Capacity()
	start := page * capacity
	tasks := make([]Task, 0, capacity)
	for i := 0; i < capacity; i++ {
		entry := src.Entry(start + i)
		if entry.Reference.Item.IsNone() {
			break
		}
		tasks = append(tasks, Task{ID: i, Row: i / g.CapX, Col: i % g.CapX, Entry: entry})
	}
	return tasks
}

// Render decodes every tile of page concurrently (bounded by
// maxConcurrentTasks), composites each result into the page canvas at its
// tile position, and returns the canvas as a no-zoom Content. A tile whose
// decode fails or panics falls back to a solid tint from the entry's
// category; the other tiles continue.
func Render(src Source, page int, g Geometry) *content.Content {
	tasks := BuildTasks(src, page, g)
	canvas := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	sem := make(chan struct{}, maxConcurrentTasks)
	var mu sync.Mutex
	var wg sync.WaitGroup
	start := page * g.Capacity()

	for _, t := range tasks {
		wg.Add(1)
		sem <- struct{}{}
		go func(t Task) {
			defer wg.Done()
			defer func() { <-sem }()
			ox, oy := g.TileOrigin(t.Row, t.Col)
			defer crash.Thumbnail(uint64(t.ID), func(uint64, any) {
				mu.Lock()
				draw.Draw(canvas, image.Rect(ox, oy, ox+g.Size, oy+g.Size), placeholder(t.Entry), image.Point{}, draw.Src)
				mu.Unlock()
			})
			tile := decodeTile(src, start, t)
			mu.Lock()
			draw.Draw(canvas, image.Rect(ox, oy, ox+g.Size, oy+g.Size), tile, image.Point{}, draw.Src)
			mu.Unlock()
		}(t)
	}
	wg.Wait()

	return content.NewSingleNoZoom(canvas, false)
}

func decodeTile(src Source, start int, t Task) image.Image {
	key := cacheKey(t.Entry)
	if src.Cache != nil && key != "" {
		if data, ok := src.Cache.Get(key); ok {
			if img, err := png.Decode(bytes.NewReader(data)); err == nil {
				return img
			}
		}
	}

	c := src.Render(start + t.ID)
	var tile image.Image
	if c == nil || c.Kind != content.KindSingle || c.Single.Image == nil {
		tile = placeholder(t.Entry)
	} else {
		tile = resize.Resize(uint(ThumbnailSize), uint(ThumbnailSize), c.Single.Image, resize.Lanczos3)
	}

	if src.Cache != nil && key != "" {
		var buf bytes.Buffer
		if err := png.Encode(&buf, tile); err == nil {
			_ = src.Cache.Put(key, buf.Bytes())
		}
	}
	return tile
}

// cacheKey returns a thumbcache key for entry, or "" for backends cheap
// enough to redecode on every page view. RAR has no random access and MAR
// needs an XOR/contrast pass, so those two are the ones worth caching to
// disk, matching the original's RAR-only `.mview/<sha256>.mthumb` scheme.
func cacheKey(entry filemodel.Entry) string {
	ref := entry.Reference
	switch ref.Backend.Kind {
	case filemodel.BackendRarArchive, filemodel.BackendMarArchive:
		return thumbcache.Key(ref.Backend.Path, ref.Item.String())
	default:
		return ""
	}
}

func placeholder(entry filemodel.Entry) image.Image {
	bg := categoryColor(classify.ContentType(entry.CategoryID))
	img := image.NewRGBA(image.Rect(0, 0, ThumbnailSize, ThumbnailSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return img
}

func categoryColor(t classify.ContentType) color.Color {
	switch t {
	case classify.Image:
		return color.RGBA{R: 0x20, G: 0x60, B: 0x20, A: 0xff}
	case classify.Archive:
		return color.RGBA{R: 0x60, G: 0x50, B: 0x10, A: 0xff}
	case classify.Document:
		return color.RGBA{R: 0x10, G: 0x30, B: 0x60, A: 0xff}
	case classify.Video:
		return color.RGBA{R: 0x60, G: 0x10, B: 0x40, A: 0xff}
	default:
		return color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
	}
}
