/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package imageview holds the pan/zoom/redraw state of a single content
// pane, independent of any GUI toolkit: it tracks the current Content and
// Zoom, turns scroll/drag/motion events into zoom updates, and schedules
// render-worker submissions the way the original's draw loop does.
// Grounded on original_source/src/image/view/{mod,imp,data,data/redraw}.rs.
package imageview

import (
	"image"
	"sync"
	"time"

	"mview6/internal/content"
	"mview6/internal/geom"
	"mview6/internal/renderworker"
)

// Quality mirrors the original's cairo Filter choice: a delayed redraw
// first paints at low quality, then a deferred high-quality repaint
// replaces it once the render worker replies.
type Quality int

const (
	QualityLow Quality = iota
	QualityHigh
)

// RedrawReason is why a repaint was requested; it decides whether the
// repaint is immediate-low-then-delayed-high, or immediate at full
// quality.
type RedrawReason int

const (
	ReasonAnimationCallback RedrawReason = iota
	ReasonAnnotationChanged
	ReasonImageChanged
	ReasonOverlayUpdated
	ReasonRotationChanged
	ReasonCanvasResized
	ReasonZoomSettingChanged
	ReasonInteractiveDrag
	ReasonInteractiveZoom
	ReasonImagePost
)

// Delayed reports whether reason should paint low quality immediately and
// schedule a high-quality follow-up, rather than rendering hq right away.
func (r RedrawReason) Delayed() bool {
	return r == ReasonInteractiveDrag || r == ReasonInteractiveZoom
}

// Quality is the immediate paint quality for reason.
func (r RedrawReason) Quality() Quality {
	if r == ReasonAnimationCallback {
		return QualityLow
	}
	return QualityHigh
}

// delayHQRedraw is how long a delayed reason waits before the high
// quality follow-up fires, matching DELAY_HQ_REDRAW.
const delayHQRedraw = 100 * time.Millisecond

// Overlay is the last high-quality raster received from the render
// worker, shown in place of the view's own (possibly low-quality or
// unrendered) content until it's superseded.
type Overlay struct {
	Image image.Image
	Zoom  geom.Zoom
}

// View tracks the pan/zoom/content state for one content pane. It has no
// drawing code of its own: Paint-time consumers read Content/Zoom/Overlay
// and a caller-supplied onRedraw callback is invoked whenever a repaint is
// needed.
type View struct {
	mu sync.Mutex

	content  *content.Content
	zoom     geom.Zoom
	zoomMode geom.ZoomMode
	viewport geom.RectD

	mousePos   geom.VectorD
	dragAnchor *geom.VectorD

	quality Quality
	overlay *Overlay

	worker    *renderworker.Worker
	hqTimer   *time.Timer
	onRedraw  func(Quality)
	redrawGen int
}

// New returns a View backed by worker for hq rasterization. onRedraw, if
// non-nil, is invoked (outside the View's lock) every time a repaint
// should happen.
func New(worker *renderworker.Worker, onRedraw func(Quality)) *View {
	return &View{
		zoom:     geom.NewZoom(),
		zoomMode: geom.ZoomNotSpecified,
		quality:  QualityHigh,
		worker:   worker,
		onRedraw: onRedraw,
	}
}

// SetZoomMode sets the user's preferred zoom mode for content that
// doesn't request its own (ZoomNotSpecified).
func (v *View) SetZoomMode(mode geom.ZoomMode) {
	v.mu.Lock()
	v.zoomMode = mode
	v.mu.Unlock()
}

// SetViewport updates the pane's pixel size, e.g. on a canvas resize.
func (v *View) SetViewport(rect geom.RectD) {
	v.mu.Lock()
	v.viewport = rect
	v.mu.Unlock()
	v.ApplyZoom()
	v.Redraw(ReasonCanvasResized)
}

// SetImage installs c as the pane's content, resets the zoom and overlay,
// and triggers a redraw.
func (v *View) SetImage(c *content.Content) {
	v.mu.Lock()
	v.content = c
	v.overlay = nil
	v.zoom.Reset()
	v.mu.Unlock()
	v.ApplyZoom()
	v.Redraw(ReasonImageChanged)
}

// Content returns the pane's current content, or nil if none is set.
func (v *View) Content() *content.Content {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.content
}

// Zoom returns a copy of the pane's current zoom state.
func (v *View) Zoom() geom.Zoom {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom
}

// Overlay returns the last high-quality raster, or nil if none is ready.
func (v *View) Overlay() *Overlay {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.overlay
}

// ApplyZoom recomputes the zoom mode and resulting scale/offset to fit
// the current content into the current viewport, mirroring
// ImageViewData::apply_zoom: content too small to have real dimensions
// forces NoZoom, content-specified zoom modes win over the pane default,
// and Fit is used when neither specifies one.
func (v *View) ApplyZoom() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.content == nil {
		return
	}
	size := v.content.Size()
	mode := geom.ZoomFit
	switch {
	case size.W < 0.1 || size.H < 0.1:
		mode = geom.ZoomNoZoom
	case v.content.ZoomMode != geom.ZoomNotSpecified:
		mode = v.content.ZoomMode
	case v.zoomMode != geom.ZoomNotSpecified:
		mode = v.zoomMode
	}
	v.zoom.ApplyZoom(mode, size, v.viewport)
}

// UpdateZoom rescales around anchor, keeping the content under anchor
// visually stationary, and keeps an in-progress drag anchored correctly.
func (v *View) UpdateZoom(newZoom float64, anchor geom.VectorD) {
	v.mu.Lock()
	v.zoom.UpdateZoom(newZoom, anchor)
	if v.dragAnchor != nil {
		d := anchor.Sub(v.zoom.Origin())
		v.dragAnchor = &d
	}
	v.mu.Unlock()
}

// OnScroll turns a vertical scroll delta into a zoom step centered on the
// current mouse position, same multiplier as the original's scroll_event.
func (v *View) OnScroll(dy float64) {
	v.mu.Lock()
	pos := v.mousePos
	factor := v.zoom.Scale()
	v.mu.Unlock()

	switch {
	case dy < -0.01:
		factor *= geom.ZoomMultiplier
	case dy > 0.01:
		factor /= geom.ZoomMultiplier
	default:
		return
	}
	v.UpdateZoom(factor, pos)
	v.Redraw(ReasonInteractiveZoom)
}

// OnMotion updates the tracked mouse position and, while a drag is in
// progress, the zoom offset to follow the cursor.
func (v *View) OnMotion(x, y float64) {
	v.mu.Lock()
	v.mousePos = geom.VectorD{X: x, Y: y}
	dragging := v.dragAnchor != nil
	if dragging {
		anchor := *v.dragAnchor
		v.zoom.SetOffset(x-anchor.X, y-anchor.Y)
	}
	v.mu.Unlock()
	if dragging {
		v.Redraw(ReasonInteractiveDrag)
	}
}

// BeginDrag starts a pan drag anchored at (x, y).
func (v *View) BeginDrag(x, y float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.dragAnchor != nil {
		return
	}
	d := geom.VectorD{X: x - v.zoom.OffsetX(), Y: y - v.zoom.OffsetY()}
	v.dragAnchor = &d
}

// EndDrag ends the current pan drag, if any.
func (v *View) EndDrag() {
	v.mu.Lock()
	had := v.dragAnchor != nil
	v.dragAnchor = nil
	v.mu.Unlock()
	if had {
		v.Redraw(ReasonImagePost)
	}
}

// Redraw triggers a repaint for reason. Delayed reasons paint low
// quality immediately and schedule a deferred high-quality submission to
// the render worker; everything else paints immediately at the reason's
// own quality (low for an animation callback, high otherwise) and, at high
// quality, submits to the render worker unless the content doesn't need
// asynchronous rendering.
func (v *View) Redraw(reason RedrawReason) {
	v.mu.Lock()
	if v.hqTimer != nil {
		v.hqTimer.Stop()
		v.hqTimer = nil
	}
	v.redrawGen++
	gen := v.redrawGen
	v.mu.Unlock()

	if reason.Delayed() {
		v.setQualityAndMaybeSubmit(QualityLow, reason)
		v.mu.Lock()
		v.hqTimer = time.AfterFunc(delayHQRedraw, func() {
			v.mu.Lock()
			stale := gen != v.redrawGen
			v.hqTimer = nil
			v.mu.Unlock()
			if stale {
				return
			}
			v.setQualityAndMaybeSubmit(QualityHigh, reason)
		})
		v.mu.Unlock()
		return
	}
	v.setQualityAndMaybeSubmit(reason.Quality(), reason)
}

func (v *View) setQualityAndMaybeSubmit(quality Quality, reason RedrawReason) {
	v.mu.Lock()
	v.quality = quality
	var cmd content.RenderCommand
	var ok bool
	if quality == QualityHigh && reason != ReasonOverlayUpdated && v.content != nil && v.content.NeedsRender() {
		cmd, ok = v.content.Render(v.zoom, v.viewport)
	}
	worker := v.worker
	onRedraw := v.onRedraw
	v.mu.Unlock()

	if ok && worker != nil {
		worker.Submit(cmd)
		if reason == ReasonImagePost {
			return
		}
	}
	if onRedraw != nil {
		onRedraw(quality)
	}
}

// HandleReply applies a render-worker reply, discarding it if the
// content or zoom it was computed for is no longer current (the content
// changed, or the view was panned/zoomed again while it was rendering).
func (v *View) HandleReply(reply renderworker.Reply) {
	v.mu.Lock()
	current := v.content
	if current == nil || current.ID() != reply.ContentID {
		v.mu.Unlock()
		return
	}
	if v.zoom.Scale() != reply.Zoom.Scale() || v.zoom.OffsetX() != reply.Zoom.OffsetX() || v.zoom.OffsetY() != reply.Zoom.OffsetY() {
		v.mu.Unlock()
		return
	}
	v.overlay = &Overlay{Image: reply.Image, Zoom: reply.Zoom}
	v.mu.Unlock()
	v.Redraw(ReasonOverlayUpdated)
}
