// Package utils holds small parsing helpers shared by the HTTP handlers.
package utils

import "strconv"

// AtoiDefault parses s as a base-10 int, falling back to def when s is empty
// or malformed. Surrounding whitespace is not trimmed.
func AtoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PageParams turns raw page and page_size query values into a 1-based page
// and a page size within [1, maxSize].
func PageParams(rawPage, rawSize string, defSize, maxSize int) (page, size int) {
	page = AtoiDefault(rawPage, 1)
	if page < 1 {
		page = 1
	}
	size = ClampInt(AtoiDefault(rawSize, defSize), 1, maxSize)
	return page, size
}
