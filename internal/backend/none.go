/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package backend

import (
	"mview6/internal/content"
	"mview6/internal/filemodel"
	"mview6/internal/svgsheet"
)

// None is the empty placeholder backend used before a real one is opened
// and as the value ownership is moved into when a backend is consumed
// (e.g. ThumbnailSheet/Bookmarks borrow a parent and leave this behind).
// The counterpart of `<dyn Backend>::none()` in the original.
type None struct{ Base }

func NewNone() *None { return &None{Base: newBase("")} }

func (n *None) ClassName() string           { return "None" }
func (n *None) List() []filemodel.Row       { return nil }
func (n *None) IsNone() bool                { return true }
func (n *None) CanBeSorted() bool           { return false }
func (n *None) Kind() filemodel.BackendKind { return filemodel.BackendNone }

func (n *None) Enter(cursor int) Backend { return nil }

func (n *None) Leave() (Backend, filemodel.Target, bool) { return nil, filemodel.Target{}, false }

func (n *None) Render(cursor int, params ImageParams) *content.Content {
	return svgsheet.ErrorContent("ERROR", "no backend open")
}

func (n *None) ThumbnailEntry(cursor int) filemodel.Entry { return filemodel.Entry{} }
