package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWindow_Loop(t *testing.T) {
	got := BuildWindow([]string{"a", "b", "c", "d", "e"}, 2, true)
	assert.Equal(t, []string{"d", "e", "a", "b", "c", "d", "e", "a", "b"}, got)
}

func TestBuildWindow_NoLoopReturnsItems(t *testing.T) {
	items := []int{1, 2, 3}
	got := BuildWindow(items, 2, false)
	require.Len(t, got, 3)
	assert.Same(t, &items[0], &got[0])
}

func TestBuildWindow_Lengths(t *testing.T) {
	for n := 0; n <= 8; n++ {
		for k := 1; k <= n; k++ {
			assert.Len(t, BuildWindow(seq(n), k, true), n+2*k, "n=%d k=%d", n, k)
			assert.Len(t, BuildWindow(seq(n), k, false), n, "n=%d k=%d", n, k)
		}
	}
}

func TestBuildWindow_ClampsClonesToItemCount(t *testing.T) {
	assert.Equal(t, []int{0, 1, 0, 1, 0, 1}, BuildWindow(seq(2), 5, true))
	assert.Empty(t, BuildWindow(seq(0), 3, true))
}

func TestBuildWindow_DoesNotAliasItems(t *testing.T) {
	items := seq(4)
	window := BuildWindow(items, 1, true)
	window[1] = 99
	assert.Equal(t, 0, items[0])
}

func TestSlideIndex_RoundTrip(t *testing.T) {
	for n := 1; n <= 9; n++ {
		for k := 1; k <= n; k++ {
			length := n + 2*k
			for i := range n {
				assert.Equal(t, i, SlideIndex(k+i, length, n, k, true), "n=%d k=%d i=%d", n, k, i)
			}
		}
	}
}

func TestSlideIndex_ClonesMapToTheirSource(t *testing.T) {
	items := seq(6)
	k := 2
	window := BuildWindow(items, k, true)
	for pos, item := range window {
		assert.Equal(t, item, SlideIndex(pos, len(window), len(items), k, true), "pos=%d", pos)
	}
}

func TestSlideIndex_NoLoopIsIdentity(t *testing.T) {
	for pos := range 5 {
		assert.Equal(t, pos, SlideIndex(pos, 5, 5, 2, false))
	}
}

func TestSplitRows(t *testing.T) {
	rows := SplitRows(seq(7), 3)
	require.Len(t, rows, 3)
	assert.Equal(t, []int{0, 1, 2}, rows[0])
	assert.Equal(t, []int{3, 4, 5}, rows[1])
	assert.Equal(t, []int{6}, rows[2])

	single := SplitRows(seq(4), 1)
	require.Len(t, single, 1)
	assert.Equal(t, seq(4), single[0])
}
