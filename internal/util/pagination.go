package util

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func Calculate(page, size int) (from, limit int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	from = (page - 1) * size
	return from, size
}

// ParsePage reads page/size query values; garbage falls back to defaults.
func ParsePage(pageStr, sizeStr string) (page, size int) {
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page, size
}
