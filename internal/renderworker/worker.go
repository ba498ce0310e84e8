/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package renderworker rasterizes SVG and document content off the UI
// goroutine. A single worker goroutine drains commands one at a time;
// Submit replaces whatever is currently queued, so only the most recent
// request for a content ever gets rendered. A shared generation counter
// is checked both before and after the actual raster work, so a reply
// for a command that was superseded while it rendered is dropped rather
// than sent. Grounded on original_source/src/render_thread/worker.rs.
package renderworker

import (
	"image"
	"sync/atomic"

	"github.com/gen2brain/go-fitz"
	"github.com/srwiley/rasterx"

	"mview6/internal/content"
	"mview6/internal/geom"
	"mview6/internal/log"
)

// Reply is the rasterized result of a Command, or a zero Image on failure.
type Reply struct {
	ContentID int64
	Zoom      geom.Zoom
	Viewport  geom.RectD
	Image     image.Image
}

type queued struct {
	cmd content.RenderCommand
	gen uint64
}

// Worker owns the render goroutine, the generation counter, and the
// cached document handle for RenderDoc commands.
type Worker struct {
	submit  chan queued
	replies chan Reply
	quit    chan struct{}
	gen     atomic.Uint64

	docPath string
	doc     *fitz.Document
}

// New returns a worker with its goroutine not yet started; call Run in
// its own goroutine.
func New() *Worker {
	return &Worker{
		submit:  make(chan queued, 1),
		replies: make(chan Reply, 4),
		quit:    make(chan struct{}),
	}
}

// Submit enqueues cmd, discarding anything still pending: only the
// newest request matters, matching the original's "new command bumps
// the counter" behavior.
func (w *Worker) Submit(cmd content.RenderCommand) {
	gen := w.gen.Add(1)
	q := queued{cmd: cmd, gen: gen}
	select {
	case w.submit <- q:
		return
	default:
	}
	select {
	case <-w.submit:
	default:
	}
	select {
	case w.submit <- q:
	default:
	}
}

// Replies is the channel of completed renders; a view drops a reply
// whose ContentID/Zoom no longer match its current content.
func (w *Worker) Replies() <-chan Reply { return w.replies }

// Close stops Run and releases the cached document handle.
func (w *Worker) Close() {
	close(w.quit)
}

// Run processes queued commands until Close is called. Call it once,
// from its own goroutine.
func (w *Worker) Run() {
	defer func() {
		if w.doc != nil {
			w.doc.Close()
		}
	}()
	for {
		select {
		case <-w.quit:
			return
		case q := <-w.submit:
			if w.gen.Load() != q.gen {
				continue
			}
			reply, ok := w.render(q.cmd)
			if !ok || w.gen.Load() != q.gen {
				continue
			}
			select {
			case w.replies <- reply:
			default:
			}
		}
	}
}

func (w *Worker) render(cmd content.RenderCommand) (Reply, bool) {
	switch cmd.Kind {
	case content.RenderSvg:
		return w.renderSvg(cmd)
	case content.RenderDoc:
		return w.renderDoc(cmd)
	default:
		return Reply{}, false
	}
}

func (w *Worker) renderSvg(cmd content.RenderCommand) (Reply, bool) {
	if cmd.Tree == nil {
		return Reply{}, false
	}
	width := int(cmd.Viewport.Width())
	height := int(cmd.Viewport.Height())
	if width <= 0 || height <= 0 {
		return Reply{}, false
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	cmd.Tree.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	cmd.Tree.Draw(raster, 1.0)
	return Reply{ContentID: cmd.ContentID, Zoom: cmd.Zoom, Viewport: cmd.Viewport, Image: img}, true
}

// renderDoc rasterizes one page of a paginated document. The fitz
// handle is reopened only when the reference's backend path changes
// from the previous command, matching the original's "reopen only if
// the doc reference differs" rule.
func (w *Worker) renderDoc(cmd content.RenderCommand) (Reply, bool) {
	path := cmd.Doc.Reference.Backend.Path
	if w.docPath != path || w.doc == nil {
		if w.doc != nil {
			w.doc.Close()
			w.doc = nil
		}
		doc, err := fitz.New(path)
		if err != nil {
			log.WithComponent("renderworker").Warn("reopen failed", "file", path, "err", err)
			w.docPath = ""
			return Reply{}, false
		}
		w.doc = doc
		w.docPath = path
	}

	page := int(cmd.Doc.Reference.Item.Idx)
	bounds, err := w.doc.Bound(page)
	if err != nil {
		return Reply{}, false
	}

	const baseDPI = 72.0
	scale := cmd.Zoom.Scale() * cmd.Viewport.Height() / float64(bounds.Dy())
	if scale <= 0 {
		return Reply{}, false
	}
	img, err := w.doc.ImageDPI(page, baseDPI*scale)
	if err != nil {
		return Reply{}, false
	}

	pageBounds := geom.NewRect(0, 0, float64(img.Bounds().Dx()), float64(img.Bounds().Dy()))
	region := cmd.Viewport.Intersect(pageBounds)
	if region.IsEmpty() {
		return Reply{}, false
	}
	ri := geom.RectDRound(region)
	tile := img.SubImage(image.Rect(ri.X0, ri.Y0, ri.X1, ri.Y1))
	return Reply{ContentID: cmd.ContentID, Zoom: cmd.Zoom, Viewport: cmd.Viewport, Image: tile}, true
}
