/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import (
	"math"
	"strings"
)

// MaxZoomFactor is the largest zoom factor apply_zoom/update_zoom will settle on.
const MaxZoomFactor = 300.0

// MinZoomFactor is the smallest zoom factor apply_zoom/update_zoom will settle on.
const MinZoomFactor = 0.001

// ZoomMultiplier is the standard per-step factor for smooth zoom in/out.
const ZoomMultiplier = 1.05

// zoomEpsilon absorbs floating point drift when comparing zoom factors.
const zoomEpsilon = 1.0e-6

// ZoomMode is the user's intent for how an image is scaled into its viewport.
type ZoomMode int

const (
	ZoomNotSpecified ZoomMode = iota
	ZoomNoZoom
	ZoomFit
	ZoomFill
	ZoomMax
)

// ParseZoomMode parses the on-disk/config string form of a ZoomMode.
func ParseZoomMode(s string) ZoomMode {
	switch strings.ToLower(s) {
	case "nozoom":
		return ZoomNoZoom
	case "fit":
		return ZoomFit
	case "fill":
		return ZoomFill
	case "max":
		return ZoomMax
	default:
		return ZoomNotSpecified
	}
}

func (m ZoomMode) String() string {
	switch m {
	case ZoomNoZoom:
		return "nozoom"
	case ZoomFit:
		return "fit"
	case ZoomFill:
		return "fill"
	case ZoomMax:
		return "max"
	default:
		return ""
	}
}

// ZoomState classifies the current scale relative to 1.0 (original size).
type ZoomState int

const (
	NoZoomState ZoomState = iota
	ZoomedIn
	ZoomedOut
)

// Matrix is a 2D affine transform, analogous to a cairo.Matrix:
//
//	[ XX  XY  X0 ]
//	[ YX  YY  Y0 ]
type Matrix struct {
	XX, YX, XY, YY, X0, Y0 float64
}

// Zoom tracks the scale, 90-degree rotation and screen offset used to map an
// image onto its viewport.
type Zoom struct {
	scale     float64
	rotation  int
	offset    VectorD
	imageSize SizeD
}

// NewZoom returns a Zoom at scale 1.0, no rotation, no offset.
func NewZoom() Zoom {
	return Zoom{scale: 1.0}
}

// Reset returns z to its NewZoom state: scale 1.0, no rotation, no offset.
func (z *Zoom) Reset() {
	*z = NewZoom()
}

// State classifies the current scale relative to 1.0.
func (z *Zoom) State() ZoomState {
	switch {
	case z.scale > 1.0+zoomEpsilon:
		return ZoomedIn
	case z.scale < 1.0-zoomEpsilon:
		return ZoomedOut
	default:
		return NoZoomState
	}
}

func (z *Zoom) OffsetX() float64 { return z.offset.X }
func (z *Zoom) OffsetY() float64 { return z.offset.Y }
func (z *Zoom) Origin() VectorD  { return z.offset }

func (z *Zoom) SetOffset(x, y float64) { z.offset = VectorD{X: x, Y: y} }
func (z *Zoom) SetOrigin(origin VectorD) { z.offset = origin }

func (z *Zoom) ImageSize() SizeD          { return z.imageSize }
func (z *Zoom) SetImageSize(size SizeD)   { z.imageSize = size }

// SetRotation snaps rotation to the nearest 90-degree increment in [0,360).
func (z *Zoom) SetRotation(rotation int) { z.rotation = normalizeRotation(rotation) }

// AddRotation adds delta degrees to the current rotation, snapping the result.
func (z *Zoom) AddRotation(delta int) { z.rotation = normalizeRotation(z.rotation + delta) }

func normalizeRotation(rotation int) int {
	rounded := int(math.Round(float64(rotation)/90.0)) * 90
	return ((rounded % 360) + 360) % 360
}

// TransformMatrix builds the affine transform from image space to screen
// space: scale, then rotate, then translate by the current offset.
func (z *Zoom) TransformMatrix() Matrix {
	switch z.rotation % 360 {
	case 90:
		return Matrix{XX: 0, YX: z.scale, XY: -z.scale, YY: 0, X0: z.offset.X, Y0: z.offset.Y}
	case 180:
		return Matrix{XX: -z.scale, YX: 0, XY: 0, YY: -z.scale, X0: z.offset.X, Y0: z.offset.Y}
	case 270:
		return Matrix{XX: 0, YX: -z.scale, XY: z.scale, YY: 0, X0: z.offset.X, Y0: z.offset.Y}
	default:
		return Matrix{XX: z.scale, YX: 0, XY: 0, YY: z.scale, X0: z.offset.X, Y0: z.offset.Y}
	}
}

// TopLeft returns which corner of rect is visually top-left once rotated.
func (z *Zoom) TopLeft(rect RectD) VectorD {
	switch z.rotation % 360 {
	case 270:
		return VectorD{X: rect.X0, Y: rect.Y1}
	case 180:
		return VectorD{X: rect.X1, Y: rect.Y1}
	case 90:
		return VectorD{X: rect.X1, Y: rect.Y0}
	default:
		return VectorD{X: rect.X0, Y: rect.Y0}
	}
}

func (z *Zoom) imageRectRotated() RectD {
	return NewRectFromSize(z.imageSize).Rotate(z.rotation)
}

func (z *Zoom) imageRectRotatedScaled() RectD {
	return z.imageRectRotated().Scale(z.scale)
}

func (z *Zoom) imageRectTransformed() RectD {
	return z.imageRectRotatedScaled().Translate(z.offset)
}

// IntersectionScreenCoord returns the portion of the transformed image that
// is visible within viewport, in screen coordinates.
func (z *Zoom) IntersectionScreenCoord(viewport RectD) RectD {
	return z.imageRectTransformed().Intersect(viewport)
}

// IntersectionImageCoord returns the portion of the original, untransformed
// image that is visible within viewport, in image coordinates.
func (z *Zoom) IntersectionImageCoord(viewport RectD) RectD {
	transformedViewport := viewport.Translate(z.offset.Neg()).Scale(1.0 / z.scale).Rotate(-z.rotation)
	return NewRectFromSize(z.imageSize).Intersect(transformedViewport)
}

// Intersection returns the visible image portion scaled to screen coordinates.
func (z *Zoom) Intersection(viewport RectD) RectD {
	return z.IntersectionImageCoord(viewport).Scale(z.scale)
}

// ScreenToImage maps a screen-space point to image space.
func (z *Zoom) ScreenToImage(screen VectorD) VectorD {
	return screen.Sub(z.offset).Rotate(-z.rotation).Unscale(z.scale)
}

// ImageToScreen maps an image-space point to screen space.
func (z *Zoom) ImageToScreen(image VectorD) VectorD {
	return image.Scale(z.scale).Rotate(z.rotation).Add(z.offset)
}

// ApplyZoom picks a scale per mode and centers the (rotated) image in
// viewport. imageSize must have positive width and height; otherwise the
// call is a no-op, leaving the previous scale/offset untouched.
func (z *Zoom) ApplyZoom(mode ZoomMode, imageSize SizeD, viewport RectD) {
	z.imageSize = imageSize

	imageRect := z.imageRectRotated()
	if imageRect.Width() <= 0 || imageRect.Height() <= 0 {
		return
	}

	var zoom float64
	if mode == ZoomNoZoom {
		zoom = 1.0
	} else {
		zoomX := viewport.Width() / imageRect.Width()
		zoomY := viewport.Height() / imageRect.Height()

		switch mode {
		case ZoomMax:
			zoom = math.Max(zoomX, zoomY)
		case ZoomFit:
			if viewport.Width() > imageRect.Width() && viewport.Height() > imageRect.Height() {
				zoom = 1.0
			} else {
				zoom = math.Min(zoomX, zoomY)
			}
		default: // ZoomFill, ZoomNotSpecified
			zoom = math.Min(zoomX, zoomY)
		}
	}

	z.scale = clamp(zoom, MinZoomFactor, MaxZoomFactor)

	vpCenterX, vpCenterY := RectDCenter(viewport)
	imgCenterX, imgCenterY := RectDCenter(z.imageRectRotatedScaled())
	z.offset = VectorD{X: vpCenterX - imgCenterX, Y: vpCenterY - imgCenterY}
}

// UpdateZoom rescales around anchor (a screen-space point, typically the
// cursor) so the image content under anchor stays visually stationary.
func (z *Zoom) UpdateZoom(newZoom float64, anchor VectorD) {
	newZoom = clamp(newZoom, MinZoomFactor, MaxZoomFactor)
	if math.Abs(newZoom-z.scale) < zoomEpsilon {
		return
	}

	viewC := anchor.Sub(z.Origin()).Unscale(z.scale)
	z.SetOrigin(anchor.Sub(viewC.Scale(newZoom)))
	z.scale = newZoom
}

func (z *Zoom) SetZoomFactor(zoom float64) { z.scale = zoom }
func (z *Zoom) Scale() float64             { return z.scale }
func (z *Zoom) RotationDegrees() int       { return z.rotation }
func (z *Zoom) IsRotated() bool            { return z.rotation%360 != 0 }
func (z *Zoom) IsZoomed() bool             { return z.State() != NoZoomState }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
