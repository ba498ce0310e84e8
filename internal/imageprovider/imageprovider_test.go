/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package imageprovider

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"mview6/internal/content"
)

func pngBytes(t *testing.T, w, h int, alpha bool) []byte {
	t.Helper()
	var img image.Image
	if alpha {
		nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				nrgba.Set(x, y, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
			}
		}
		img = nrgba
	} else {
		rgb := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				rgb.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
			}
		}
		img = rgb
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytesDecodesPNG(t *testing.T) {
	data := pngBytes(t, 4, 4, false)
	c, err := FromBytes("photo.png", data)
	if err != nil {
		t.Fatalf("FromBytes() error: %v", err)
	}
	if c.Kind != content.KindSingle {
		t.Fatalf("Kind = %v, want KindSingle", c.Kind)
	}
	size := c.Size()
	if size.W != 4 || size.H != 4 {
		t.Fatalf("Size() = %+v, want 4x4", size)
	}
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	if _, err := FromBytes("mystery.bin", []byte("not an image")); err == nil {
		t.Fatalf("expected an error decoding garbage bytes")
	}
}

func TestDualRejectsMismatchedHeights(t *testing.T) {
	left := image.NewRGBA(image.Rect(0, 0, 10, 20))
	right := image.NewRGBA(image.Rect(0, 0, 10, 30))
	if _, err := Dual(left, right); err == nil {
		t.Fatalf("expected a height-mismatch error")
	}
}

func TestDualBuildsSideBySideContent(t *testing.T) {
	left := image.NewRGBA(image.Rect(0, 0, 10, 20))
	right := image.NewRGBA(image.Rect(0, 0, 15, 20))
	c, err := Dual(left, right)
	if err != nil {
		t.Fatalf("Dual() error: %v", err)
	}
	size := c.Size()
	if size.W != 25 || size.H != 20 {
		t.Fatalf("Size() = %+v, want 25x20", size)
	}
}
