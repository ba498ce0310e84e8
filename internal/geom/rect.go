/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package geom provides the generic 2D primitives (vectors, sizes,
// rectangles) and the zoom/rotation transform used by the image and
// thumbnail-sheet viewers.
package geom

import "math"

// Numeric is the set of scalar types Vector, Size and Rect are generic over.
type Numeric interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Vector is a 2D point or displacement.
type Vector[T Numeric] struct {
	X, Y T
}

func NewVector[T Numeric](x, y T) Vector[T] { return Vector[T]{X: x, Y: y} }

func (v Vector[T]) Add(o Vector[T]) Vector[T] { return Vector[T]{v.X + o.X, v.Y + o.Y} }
func (v Vector[T]) Sub(o Vector[T]) Vector[T] { return Vector[T]{v.X - o.X, v.Y - o.Y} }
func (v Vector[T]) Scale(s T) Vector[T]       { return Vector[T]{v.X * s, v.Y * s} }
func (v Vector[T]) Unscale(s T) Vector[T]     { return Vector[T]{v.X / s, v.Y / s} }
func (v Vector[T]) Neg() Vector[T]            { return Vector[T]{-v.X, -v.Y} }

// Rotate rotates v by rotation degrees, which must be a multiple of 90
// (positive or negative); any other value leaves v unchanged.
func (v Vector[T]) Rotate(rotation int) Vector[T] {
	switch rotation {
	case -90, 270:
		return Vector[T]{X: v.Y, Y: -v.X}
	case -180, 180:
		return Vector[T]{X: -v.X, Y: -v.Y}
	case -270, 90:
		return Vector[T]{X: -v.Y, Y: v.X}
	default:
		return v
	}
}

// Size is a width/height pair.
type Size[T Numeric] struct {
	W, H T
}

func NewSize[T Numeric](w, h T) Size[T] { return Size[T]{W: w, H: h} }

// Rect is a rectangle defined by two corner points. It is valid when
// X0 <= X1 and Y0 <= Y1; it is empty when X0 >= X1 or Y0 >= Y1.
type Rect[T Numeric] struct {
	X0, Y0, X1, Y1 T
}

func NewRect[T Numeric](x0, y0, x1, y1 T) Rect[T] { return Rect[T]{x0, y0, x1, y1} }

func NewRectFromSize[T Numeric](s Size[T]) Rect[T] {
	var zero T
	return Rect[T]{zero, zero, s.W, s.H}
}

func (r Rect[T]) IsEmpty() bool { return r.X0 >= r.X1 || r.Y0 >= r.Y1 }
func (r Rect[T]) IsValid() bool { return r.X0 <= r.X1 && r.Y0 <= r.Y1 }

// Contains reports whether p lies within r, using half-open intervals
// [X0,X1) and [Y0,Y1).
func (r Rect[T]) Contains(p Vector[T]) bool {
	if r.IsEmpty() {
		return false
	}
	return p.X >= r.X0 && p.X < r.X1 && p.Y >= r.Y0 && p.Y < r.Y1
}

func (r Rect[T]) Width() T {
	if r.IsEmpty() {
		var zero T
		return zero
	}
	return r.X1 - r.X0
}

func (r Rect[T]) Height() T {
	if r.IsEmpty() {
		var zero T
		return zero
	}
	return r.Y1 - r.Y0
}

func (r Rect[T]) Size() Size[T] {
	if r.IsEmpty() {
		return Size[T]{}
	}
	return Size[T]{W: r.X1 - r.X0, H: r.Y1 - r.Y0}
}

// Union returns the smallest rectangle containing both r and o. An empty
// operand is ignored; if both are empty the result is the zero rectangle.
func (r Rect[T]) Union(o Rect[T]) Rect[T] {
	if r.IsEmpty() && o.IsEmpty() {
		return Rect[T]{}
	}
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Rect[T]{
		X0: minT(r.X0, o.X0),
		Y0: minT(r.Y0, o.Y0),
		X1: maxT(r.X1, o.X1),
		Y1: maxT(r.Y1, o.Y1),
	}
}

// Intersect returns the largest rectangle contained in both r and o,
// or an empty rectangle if they don't overlap.
func (r Rect[T]) Intersect(o Rect[T]) Rect[T] {
	return Rect[T]{
		X0: maxT(r.X0, o.X0),
		Y0: maxT(r.Y0, o.Y0),
		X1: minT(r.X1, o.X1),
		Y1: minT(r.Y1, o.Y1),
	}
}

func (r Rect[T]) Scale(s T) Rect[T] {
	return Rect[T]{r.X0 * s, r.Y0 * s, r.X1 * s, r.Y1 * s}
}

func (r Rect[T]) Translate(o Vector[T]) Rect[T] {
	return Rect[T]{r.X0 + o.X, r.Y0 + o.Y, r.X1 + o.X, r.Y1 + o.Y}
}

// Rotate rotates r by rotation degrees (a multiple of 90) about the origin,
// re-normalizing corners so X0<=X1 and Y0<=Y1 hold afterward.
func (r Rect[T]) Rotate(rotation int) Rect[T] {
	if !r.IsValid() {
		return Rect[T]{}
	}
	tl := Vector[T]{r.X0, r.Y0}.Rotate(rotation)
	br := Vector[T]{r.X1, r.Y1}.Rotate(rotation)
	return Rect[T]{
		X0: minT(tl.X, br.X),
		Y0: minT(tl.Y, br.Y),
		X1: maxT(tl.X, br.X),
		Y1: maxT(tl.Y, br.Y),
	}
}

func (r Rect[T]) Point0() Vector[T] { return Vector[T]{r.X0, r.Y0} }
func (r Rect[T]) Point1() Vector[T] { return Vector[T]{r.X1, r.Y1} }

func minT[T Numeric](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxT[T Numeric](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Convenience aliases for the coordinate spaces used throughout the viewer.
type (
	RectD   = Rect[float64]
	RectI   = Rect[int]
	SizeD   = Size[float64]
	SizeI   = Size[int]
	VectorD = Vector[float64]
	VectorI = Vector[int]
)

// RectDCenter returns the midpoint of r.
func RectDCenter(r RectD) (float64, float64) {
	return (r.X0 + r.X1) / 2, (r.Y0 + r.Y1) / 2
}

// RectDRound rounds r outward to integer bounds: floor for the top-left
// corner, ceil for the bottom-right, so the integer rect fully covers r.
func RectDRound(r RectD) RectI {
	return RectI{
		X0: int(math.Floor(r.X0)),
		Y0: int(math.Floor(r.Y0)),
		X1: int(math.Ceil(r.X1)),
		Y1: int(math.Ceil(r.Y1)),
	}
}
