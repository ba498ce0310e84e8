/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package imageprovider decodes image bytes into content.Content values.
// It tries an SVG decode first for names ending in ".svg"/".svgz", then a
// general raster decode, then the internal MAR/MP container format, and
// reads EXIF opportunistically before the raster decode.
package imageprovider

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	exiftiff "github.com/rwcarlsen/goexif/tiff"
	"github.com/srwiley/oksvg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"mview6/internal/content"
	"mview6/internal/geom"
	"mview6/internal/mar"
)

// FromFile decodes path into a content.Content, trying SVG (by extension),
// the general raster decoders, then the internal MAR/MP container format,
// in that order: the first that succeeds wins.
func FromFile(path string) (*content.Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("imageprovider: read %s: %w", path, err)
	}
	return FromBytes(path, data)
}

// FromBytes decodes data the same way FromFile does, without touching disk
// beyond what the caller already read. name is used only to recognize a
// ".svg"/".svgz" extension.
func FromBytes(name string, data []byte) (*content.Content, error) {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".svg") {
		if c, err := decodeSVG(data); err == nil {
			return c, nil
		}
	}
	if strings.HasSuffix(lower, ".svgz") {
		if zr, err := gzip.NewReader(bytes.NewReader(data)); err == nil {
			if raw, err := io.ReadAll(zr); err == nil {
				if c, err := decodeSVG(raw); err == nil {
					return c, nil
				}
			}
		}
	}

	exifFields := readExifOpportunistically(data)

	if c, err := decodeRaster(data, exifFields); err == nil {
		return c, nil
	}

	if c, err := decodeMAR(data); err == nil {
		return c, nil
	}

	return nil, fmt.Errorf("imageprovider: no decoder recognized %s", name)
}

func decodeSVG(data []byte) (*content.Content, error) {
	tree, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return content.NewSvg(tree, "", geom.ZoomNotSpecified, content.TransparencyNotSpecified), nil
}

// decodeRaster tries Go's and golang.org/x/image's registered raster
// decoders (png, jpeg, gif, bmp, tiff, webp).
func decodeRaster(data []byte, exifFields map[string]string) (*content.Content, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		img, err = decodeExtra(data)
		if err != nil {
			return nil, err
		}
	}
	rgba := toRGBA(img)
	return content.NewSingle(rgba, hasAlphaChannel(img), exifFields), nil
}

// decodeExtra covers formats the stdlib doesn't register: bmp, tiff, webp.
func decodeExtra(data []byte) (image.Image, error) {
	if img, err := bmp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := tiff.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("imageprovider: unrecognized raster format")
}

// decodeMAR recognizes a standalone MP? container (the same format MAR
// archives wrap around each entry) at the start of data.
func decodeMAR(data []byte) (*content.Content, error) {
	container, err := mar.ReadContainer(bytes.NewReader(data), false)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(container.Data))
	if err != nil {
		return nil, fmt.Errorf("imageprovider: decode mar payload: %w", err)
	}
	exifFields := readExifOpportunistically(container.Data)
	rgba := toRGBA(img)
	c := content.NewSingle(rgba, hasAlphaChannel(img), exifFields)
	if container.Comment != "" {
		c.Tag = container.Comment
	}
	return c, nil
}

// readExifOpportunistically reads EXIF metadata from a seekable reader
// before decode; a missing or unparsable EXIF segment is not an error, it
// simply yields no fields.
func readExifOpportunistically(data []byte) map[string]string {
	x, err := exif.Decode(bufio.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil
	}
	fields := make(map[string]string)
	x.Walk(exifWalker(fields))
	return fields
}

type exifWalker map[string]string

func (w exifWalker) Walk(name exif.FieldName, tag *exiftiff.Tag) error {
	w[string(name)] = tag.String()
	return nil
}

// toRGBA converts img to Go's premultiplied-alpha *image.RGBA, the
// idiomatic equivalent of the byte-swapped BGRA surface a cairo-based
// renderer would build: image/draw already performs the RGB8/RGBA8
// premultiply-and-repack this package would otherwise hand-roll.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
	return dst
}

func hasAlphaChannel(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return true
	default:
		return false
	}
}

// Dual builds a single side-by-side surface from two same-height images,
// the way a two-page document spread is composited into one content.Dual.
func Dual(left, right image.Image) (*content.Content, error) {
	lb, rb := left.Bounds(), right.Bounds()
	if lb.Dy() != rb.Dy() {
		return nil, fmt.Errorf("imageprovider: left/right height mismatch (%d != %d)", lb.Dy(), rb.Dy())
	}
	leftAlpha, rightAlpha := hasAlphaChannel(left), hasAlphaChannel(right)
	return content.NewDual(toRGBA(left), toRGBA(right), leftAlpha, rightAlpha, nil), nil
}
