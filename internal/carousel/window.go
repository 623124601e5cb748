package carousel

// BuildWindow returns the sequence laid out for rendering. Without looping
// it is items itself. With looping it is a new slice holding the last k
// items, all items, then the first k items, with k clamped to len(items).
func BuildWindow[T any](items []T, k int, loop bool) []T {
	if !loop {
		return items
	}
	n := len(items)
	k = cloneCount(k, n)
	out := make([]T, 0, n+2*k)
	out = append(out, items[n-k:]...)
	out = append(out, items...)
	out = append(out, items[:k]...)
	return out
}

// SlideIndex maps a position in a window of the given length back to the
// index of the original item it shows. n is the item count and k the clone
// count on each side.
func SlideIndex(pos, length, n, k int, loop bool) int {
	if !loop {
		return pos
	}
	switch {
	case pos < k:
		return length - 3*k + pos
	case pos > length-k-1:
		return pos - n - k
	default:
		return pos - k
	}
}

// SplitRows partitions a window into rows of ceil(len/rows) consecutive
// items. Trailing rows may be short or empty.
func SplitRows[T any](window []T, rows int) [][]T {
	if rows <= 1 {
		return [][]T{window}
	}
	per := (len(window) + rows - 1) / rows
	out := make([][]T, 0, rows)
	for i := range rows {
		lo := min(i*per, len(window))
		hi := min(lo+per, len(window))
		out = append(out, window[lo:hi])
	}
	return out
}

func cloneCount(k, n int) int {
	switch {
	case k < 0:
		return 0
	case k > n:
		return n
	default:
		return k
	}
}
