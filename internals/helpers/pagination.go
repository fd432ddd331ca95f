package helper

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// PageSize is fixed for every list page.
const PageSize = 10

const DefaultPage = 1

// ParsePage reads a 1-based page number. Malformed or missing values
// fall back to page 1; there is no upper bound, out-of-range pages
// simply return an empty result set.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return DefaultPage
	}
	return n
}

// Paginate applies the fixed page-size window: offset = PageSize * (page-1).
func Paginate(page int) func(*gorm.DB) *gorm.DB {
	if page < 1 {
		page = DefaultPage
	}
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(PageSize).Offset(PageSize * (page - 1))
	}
}
