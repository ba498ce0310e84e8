/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "testing"

func TestRectIntBasics(t *testing.T) {
	r := NewRect(0, 0, 10, 20)

	if r.IsEmpty() {
		t.Fatalf("expected non-empty rect")
	}
	if !r.Contains(NewVector(5, 5)) {
		t.Fatalf("expected (5,5) to be contained")
	}
	if r.Contains(NewVector(10, 5)) {
		t.Fatalf("upper bound should be exclusive")
	}
	if r.Width() != 10 || r.Height() != 20 {
		t.Fatalf("got size %dx%d, want 10x20", r.Width(), r.Height())
	}

	tr := r.Translate(NewVector(5, 5))
	if tr.X0 != 5 || tr.Y0 != 5 || tr.X1 != 15 || tr.Y1 != 25 {
		t.Fatalf("unexpected translated rect: %+v", tr)
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 5, 5)
	b := NewRect(3, 3, 8, 8)
	got := a.Union(b)
	want := NewRect(0, 0, 8, 8)
	if got != want {
		t.Fatalf("union = %+v, want %+v", got, want)
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	b := NewRect(5, 5, 15, 15)
	got := a.Intersect(b)
	want := NewRect(5, 5, 10, 10)
	if got != want {
		t.Fatalf("intersect = %+v, want %+v", got, want)
	}

	c := NewRect(20, 20, 30, 30)
	if !a.Intersect(c).IsEmpty() {
		t.Fatalf("expected empty intersection for disjoint rects")
	}
}

func TestRectEmpty(t *testing.T) {
	r := NewRect(5, 5, 5, 5)
	if !r.IsEmpty() {
		t.Fatalf("expected empty rect")
	}
	if r.Width() != 0 {
		t.Fatalf("expected zero width for empty rect")
	}
	if r.Contains(NewVector(5, 5)) {
		t.Fatalf("empty rect should not contain any point")
	}
}

func TestRectDRoundOutward(t *testing.T) {
	r := NewRect(1.2, 2.7, 5.1, 6.9)
	got := RectDRound(r)
	want := RectI{X0: 1, Y0: 2, X1: 6, Y1: 7}
	if got != want {
		t.Fatalf("round = %+v, want %+v", got, want)
	}
}

func TestVectorRotate(t *testing.T) {
	v := NewVector(10.0, 0.0)
	got := v.Rotate(90)
	want := NewVector(0.0, 10.0)
	if !approxEqVector(got, want, 1e-10) {
		t.Fatalf("rotate(90) = %+v, want %+v", got, want)
	}
}

func approxEqVector(a, b VectorD, tol float64) bool {
	return approxEq(a.X, b.X, tol) && approxEq(a.Y, b.Y, tol)
}

func approxEq(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < tol
}
