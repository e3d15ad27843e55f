// Package pagination computes which page-number controls a list screen shows.
package pagination

// WindowSize is the number of page controls a list screen tries to render.
const WindowSize = 5

// ComputeWindow returns the zero-based page indices to render as numbered
// controls for the given zero-based current page and total page count.
//
// Up to five consecutive pages are returned. Near the start the first five
// pages are shown, near the end the last five. In between the window starts
// one page before the current page, so the current page sits second rather
// than centred; list screens depend on that placement, keep it.
func ComputeWindow(currentPage, totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	if currentPage < 0 {
		currentPage = 0
	}

	if totalPages <= WindowSize {
		return seq(0, totalPages)
	}

	var first int // one-based
	switch {
	case currentPage < 3:
		first = 1
	case currentPage > totalPages-4:
		first = totalPages - 4
	default:
		first = currentPage
	}

	return seq(first-1, WindowSize)
}

// Contains reports whether page is part of the window.
func Contains(window []int, page int) bool {
	for _, p := range window {
		if p == page {
			return true
		}
	}
	return false
}

func seq(start, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = start + i
	}
	return out
}
