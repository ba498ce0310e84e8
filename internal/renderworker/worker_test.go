/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package renderworker

import (
	"strings"
	"testing"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/stretchr/testify/require"

	"mview6/internal/content"
	"mview6/internal/geom"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="32" height="32">
  <rect width="32" height="32" fill="#204060"/>
</svg>`

func parseTestSVG(t *testing.T) *oksvg.SvgIcon {
	t.Helper()
	icon, err := oksvg.ReadIconStream(strings.NewReader(testSVG))
	require.NoError(t, err)
	return icon
}

func TestWorkerRendersSvg(t *testing.T) {
	icon := parseTestSVG(t)
	w := New()
	go w.Run()
	defer w.Close()

	viewport := geom.NewRect(0, 0, 16, 16)
	w.Submit(content.RenderCommand{Kind: content.RenderSvg, ContentID: 7, Viewport: viewport, Tree: icon})

	select {
	case reply := <-w.Replies():
		require.Equal(t, int64(7), reply.ContentID)
		require.NotNil(t, reply.Image)
		require.Equal(t, 16, reply.Image.Bounds().Dx())
	case <-time.After(2 * time.Second):
		t.Fatal("no reply received")
	}
}

func TestWorkerDropsSupersededCommand(t *testing.T) {
	icon := parseTestSVG(t)
	w := New()
	go w.Run()
	defer w.Close()

	viewport := geom.NewRect(0, 0, 8, 8)
	w.Submit(content.RenderCommand{Kind: content.RenderSvg, ContentID: 1, Viewport: viewport, Tree: icon})
	w.Submit(content.RenderCommand{Kind: content.RenderSvg, ContentID: 2, Viewport: viewport, Tree: icon})

	seen := map[int64]bool{}
	deadline := time.After(2 * time.Second)
	for len(seen) == 0 {
		select {
		case reply := <-w.Replies():
			seen[reply.ContentID] = true
		case <-deadline:
			t.Fatal("no reply received")
		}
	}
	require.False(t, seen[int64(1)], "superseded command should not produce a reply")
}

func TestWorkerRejectsEmptyViewport(t *testing.T) {
	icon := parseTestSVG(t)
	w := &Worker{submit: make(chan queued, 1), replies: make(chan Reply, 1)}
	_, ok := w.renderSvg(content.RenderCommand{Kind: content.RenderSvg, Viewport: geom.RectD{}, Tree: icon})
	require.False(t, ok)
}
