/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package content holds the tagged union of rendered outputs an ImageView
// can display: a decoded raster surface, an SVG tree awaiting rasterization,
// a document page reference, or a paginated text/hex/list sheet. Every
// Content carries a monotonic id, never reused within the process, so the
// render worker and thumbnail engine can discard results that no longer
// belong to the current view.
package content

import (
	"image"
	"math"
	"sync/atomic"

	"github.com/srwiley/oksvg"

	"mview6/internal/filemodel"
	"mview6/internal/geom"
)

var nextID atomic.Int64

func newID() int64 { return nextID.Add(1) }

// TransparencyMode is how an ImageView fills the area behind a content with
// an alpha channel.
type TransparencyMode int

const (
	TransparencyNotSpecified TransparencyMode = iota
	TransparencyWhite
	TransparencyBlack
	TransparencyCheckerboard
)

// Surface is a single decoded raster image.
type Surface struct {
	Image    image.Image
	HasAlpha bool
}

func (s Surface) size() geom.SizeD {
	if s.Image == nil {
		return geom.SizeD{}
	}
	b := s.Image.Bounds()
	return geom.NewSize(float64(b.Dx()), float64(b.Dy()))
}

// DualImage is two pages composited side by side, as produced by a
// document's Dual page mode.
type DualImage struct {
	Left, Right Surface
}

func (d DualImage) size() geom.SizeD {
	l, r := d.Left.size(), d.Right.size()
	return geom.NewSize(l.W+r.W, math.Max(l.H, r.H))
}

func (d DualImage) hasAlpha() bool { return d.Left.HasAlpha || d.Right.HasAlpha }

// AnimationFrame is a single decoded frame of a WebP/GIF animation.
type AnimationFrame struct {
	DelayMS uint32
	Image   image.Image
}

// AnimationContent is a decoded animation, populated lazily: frame 0 is
// always present; later frames are appended as the provider decodes them.
type AnimationContent struct {
	Frames   []AnimationFrame
	HasAlpha bool
}

func (a AnimationContent) size() geom.SizeD {
	if len(a.Frames) == 0 || a.Frames[0].Image == nil {
		return geom.SizeD{}
	}
	b := a.Frames[0].Image.Bounds()
	return geom.NewSize(float64(b.Dx()), float64(b.Dy()))
}

// SvgContent is a parsed SVG tree awaiting hq rasterization by the render
// worker.
type SvgContent struct {
	Tree *oksvg.SvgIcon
}

func (s SvgContent) size() geom.SizeD {
	if s.Tree == nil {
		return geom.SizeD{}
	}
	return geom.NewSize(s.Tree.ViewBox.W, s.Tree.ViewBox.H)
}

// DocContent references a page (or page pair) of an open document; the
// render worker rasterizes it on demand at the current zoom.
type DocContent struct {
	PageMode  filemodel.PageMode
	Size      geom.SizeD
	Reference filemodel.Reference
}

// PaginatedKind discriminates the three sources paginated.SVG builder feeds.
type PaginatedKind int

const (
	PaginatedRaw PaginatedKind = iota
	PaginatedText
	PaginatedList
)

// LinesPerPage is the number of rows/lines rendered onto a single paginated
// sheet page before a new page is needed.
const LinesPerPage = 32

// listRowHeight and listRowsTop are the SVG sheet coordinates used by List
// pages; DoubleClick inverts them to recover a row index from a click point.
const (
	listRowHeight = 21.0
	listRowsTop   = 76.0
)

// PaginatedSource prepares one page of a paginated sheet on demand. The
// svgsheet package implements this for its Raw, Text and List sources;
// content only depends on the interface, never on svgsheet, so svgsheet is
// free to import content to construct ready-made PaginatedContent values.
type PaginatedSource interface {
	NumPages() int
	Prepare(page int) (*oksvg.SvgIcon, error)
}

// PaginatedContent is a paginated, SVG-rendered text/hex/list sheet. Source
// rebuilds Rendered whenever Page changes; Rows/ListRef are only populated
// for a List sheet, which is the only variant double-click can navigate.
type PaginatedContent struct {
	Kind     PaginatedKind
	Page     int
	NumPages int
	Rendered *oksvg.SvgIcon
	Source   PaginatedSource
	Rows     []filemodel.Row      // PaginatedList only
	ListRef  filemodel.BackendRef // PaginatedList only
}

func (p PaginatedContent) size() geom.SizeD {
	if p.Rendered == nil {
		return geom.SizeD{}
	}
	return geom.NewSize(p.Rendered.ViewBox.W, p.Rendered.ViewBox.H)
}

// doubleClick maps a click position on a List sheet back to the Row it
// landed on, or a None item reference if it missed every row.
func (p PaginatedContent) doubleClick(pos geom.VectorD) filemodel.Reference {
	if p.Kind != PaginatedList {
		return filemodel.Reference{}
	}
	rel := (pos.Y - listRowsTop) / listRowHeight
	if rel < 0 {
		return filemodel.Reference{Backend: p.ListRef, Item: filemodel.NewItemNone()}
	}
	n := int(math.Floor(rel))
	if n > LinesPerPage-1 {
		return filemodel.Reference{Backend: p.ListRef, Item: filemodel.NewItemNone()}
	}
	idx := p.Page*LinesPerPage + n
	if idx < 0 || idx >= len(p.Rows) {
		return filemodel.Reference{Backend: p.ListRef, Item: filemodel.NewItemNone()}
	}
	row := p.Rows[idx]
	return filemodel.Reference{Backend: p.ListRef, Item: filemodel.NewItemRefFromRow(p.ListRef.Kind, row)}
}

// PreviewContent is shown for a document entry before it is entered: a
// rendered cover sheet plus the backend reference double-click should open.
type PreviewContent struct {
	Path      string
	Reference filemodel.BackendRef
	Rendered  *oksvg.SvgIcon
}

func (p PreviewContent) size() geom.SizeD {
	if p.Rendered == nil {
		return geom.SizeD{}
	}
	return geom.NewSize(p.Rendered.ViewBox.W, p.Rendered.ViewBox.H)
}

// Kind discriminates the Content tagged union.
type Kind int

const (
	KindNone Kind = iota
	KindSingle
	KindDual
	KindAnimation
	KindSvg
	KindDoc
	KindPaginated
	KindPreview
)

// Content is the tagged union of everything an ImageView can display.
type Content struct {
	id   int64
	Kind Kind

	Single    Surface
	Dual      DualImage
	Animation AnimationContent
	Svg       SvgContent
	Doc       DocContent
	Paginated PaginatedContent
	Preview   PreviewContent

	Exif             map[string]string
	ZoomMode         geom.ZoomMode
	Transparency     TransparencyMode
	Tag              string
}

func NewSingle(img image.Image, hasAlpha bool, exif map[string]string) *Content {
	return &Content{
		id:       newID(),
		Kind:     KindSingle,
		Single:   Surface{Image: img, HasAlpha: hasAlpha},
		Exif:     exif,
		ZoomMode: geom.ZoomNotSpecified,
	}
}

// NewSingleNoZoom builds a Single content that the view should never scale,
// used for rasters already produced at display size: thumbnail sheet pages
// and zoomed document tiles.
func NewSingleNoZoom(img image.Image, hasAlpha bool) *Content {
	return &Content{
		id:       newID(),
		Kind:     KindSingle,
		Single:   Surface{Image: img, HasAlpha: hasAlpha},
		ZoomMode: geom.ZoomNoZoom,
	}
}

func NewDual(left, right image.Image, leftAlpha, rightAlpha bool, exif map[string]string) *Content {
	return &Content{
		id:   newID(),
		Kind: KindDual,
		Dual: DualImage{
			Left:  Surface{Image: left, HasAlpha: leftAlpha},
			Right: Surface{Image: right, HasAlpha: rightAlpha},
		},
		Exif:     exif,
		ZoomMode: geom.ZoomNotSpecified,
	}
}

func NewAnimation(frames []AnimationFrame, hasAlpha bool) *Content {
	return &Content{
		id:        newID(),
		Kind:      KindAnimation,
		Animation: AnimationContent{Frames: frames, HasAlpha: hasAlpha},
		ZoomMode:  geom.ZoomNotSpecified,
	}
}

func NewSvg(tree *oksvg.SvgIcon, tag string, zoomMode geom.ZoomMode, transparency TransparencyMode) *Content {
	return &Content{
		id:           newID(),
		Kind:         KindSvg,
		Svg:          SvgContent{Tree: tree},
		ZoomMode:     zoomMode,
		Transparency: transparency,
		Tag:          tag,
	}
}

func NewDoc(ref filemodel.Reference, pageMode filemodel.PageMode, size geom.SizeD) *Content {
	return &Content{
		id:           newID(),
		Kind:         KindDoc,
		Doc:          DocContent{PageMode: pageMode, Size: size, Reference: ref},
		ZoomMode:     geom.ZoomNotSpecified,
		Transparency: TransparencyWhite,
	}
}

// NewPaginated wraps an already-built sheet. page/rendered/rows are supplied
// by the svgsheet package's Build* functions.
func NewPaginated(data PaginatedContent) *Content {
	return &Content{
		id:           newID(),
		Kind:         KindPaginated,
		Paginated:    data,
		ZoomMode:     geom.ZoomNotSpecified,
		Transparency: TransparencyBlack,
	}
}

func NewPreview(data PreviewContent) *Content {
	return &Content{
		id:           newID(),
		Kind:         KindPreview,
		Preview:      data,
		ZoomMode:     geom.ZoomNotSpecified,
		Transparency: TransparencyBlack,
	}
}

func (c *Content) ID() int64 { return c.id }

// Size dispatches to the current variant's dimensions.
func (c *Content) Size() geom.SizeD {
	switch c.Kind {
	case KindSingle:
		return c.Single.size()
	case KindDual:
		return c.Dual.size()
	case KindAnimation:
		return c.Animation.size()
	case KindSvg:
		return c.Svg.size()
	case KindDoc:
		return c.Doc.Size
	case KindPaginated:
		return c.Paginated.size()
	case KindPreview:
		return c.Preview.size()
	default:
		return geom.SizeD{}
	}
}

// HasAlpha reports whether the background must show through, so the view
// should honor Transparency.
func (c *Content) HasAlpha() bool {
	switch c.Kind {
	case KindSingle:
		return c.Single.HasAlpha
	case KindDual:
		return c.Dual.hasAlpha()
	case KindAnimation:
		return c.Animation.HasAlpha
	case KindSvg, KindDoc:
		return true
	default:
		return false
	}
}

// NeedsRender reports whether this content requires an asynchronous hq
// rasterization step before it can be painted at full quality.
func (c *Content) NeedsRender() bool {
	switch c.Kind {
	case KindSvg, KindDoc, KindPaginated, KindPreview:
		return true
	default:
		return false
	}
}

// RenderKind discriminates the variants of RenderCommand.
type RenderKind int

const (
	RenderNone RenderKind = iota
	RenderSvg
	RenderDoc
)

// RenderCommand is the message sent to the render worker to produce a
// high-quality rasterization of a Content at a given zoom and viewport.
type RenderCommand struct {
	Kind      RenderKind
	ContentID int64
	Zoom      geom.Zoom
	Viewport  geom.RectD
	Tree      *oksvg.SvgIcon
	Doc       DocContent
}

// Render builds the command the render worker needs to rasterize c at
// zoom/viewport, or false if c has nothing to render (not yet prepared, or
// a variant that doesn't need it).
func (c *Content) Render(zoom geom.Zoom, viewport geom.RectD) (RenderCommand, bool) {
	switch c.Kind {
	case KindSvg:
		if c.Svg.Tree == nil {
			return RenderCommand{}, false
		}
		return RenderCommand{Kind: RenderSvg, ContentID: c.id, Zoom: zoom, Viewport: viewport, Tree: c.Svg.Tree}, true
	case KindPaginated:
		if c.Paginated.Rendered == nil {
			return RenderCommand{}, false
		}
		return RenderCommand{Kind: RenderSvg, ContentID: c.id, Zoom: zoom, Viewport: viewport, Tree: c.Paginated.Rendered}, true
	case KindPreview:
		if c.Preview.Rendered == nil {
			return RenderCommand{}, false
		}
		return RenderCommand{Kind: RenderSvg, ContentID: c.id, Zoom: zoom, Viewport: viewport, Tree: c.Preview.Rendered}, true
	case KindDoc:
		return RenderCommand{Kind: RenderDoc, ContentID: c.id, Zoom: zoom, Viewport: viewport, Doc: c.Doc}, true
	default:
		return RenderCommand{}, false
	}
}

// Direction is a page/entry navigation step.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
)

// NavigatePage moves a paginated content by count pages in direction,
// re-rendering the sheet on a successful move. A move that would leave
// [0, NumPages) is refused as a whole rather than clamped. It reports
// whether the page actually changed.
func (c *Content) NavigatePage(dir Direction, count int) bool {
	if c.Kind != KindPaginated || c.Paginated.Source == nil {
		return false
	}
	p := &c.Paginated
	switch dir {
	case DirectionUp:
		if p.Page < count {
			return false
		}
		p.Page -= count
	case DirectionDown:
		if p.Page+count >= p.NumPages {
			return false
		}
		p.Page += count
	}
	if tree, err := p.Source.Prepare(p.Page); err == nil {
		p.Rendered = tree
	}
	return true
}

func (c *Content) HasTag(tag string) bool { return c.Tag != "" && c.Tag == tag }

// IsMovable reports whether the view should let the user pan/zoom this
// content interactively.
func (c *Content) IsMovable() bool { return c.ZoomMode != geom.ZoomNoZoom }

// CanEnter reports whether double-clicking this content can navigate into a
// new backend (a directory listing page, or a document preview).
func (c *Content) CanEnter() bool {
	if c.Kind == KindPreview {
		return true
	}
	return c.Kind == KindPaginated && c.Paginated.Kind == PaginatedList
}

// DoubleClick resolves a click position into the Reference it points at, or
// a zero Reference if this content doesn't support navigation-by-click.
func (c *Content) DoubleClick(pos geom.VectorD) filemodel.Reference {
	switch c.Kind {
	case KindPaginated:
		return c.Paginated.doubleClick(pos)
	case KindPreview:
		return filemodel.Reference{Backend: c.Preview.Reference, Item: filemodel.NewItemIndex(0)}
	default:
		return filemodel.Reference{}
	}
}
