package books

import (
	"math"
	"strconv"
	"strings"

	"github.com/hongminglow/bookstore-be/internal/storage"
)

// PageSize is the number of books returned per page.
const PageSize = 2

// maxPage is the last page whose offset fits in an int.
const maxPage = math.MaxInt / PageSize

// Query carries the raw listing parameters as they arrive on the URL.
type Query struct {
	Page    string
	Keyword string
}

// BuildFilter turns listing parameters into a store filter. Missing,
// non-numeric or non-positive pages fall back to the first page. Pages too
// large to address are clamped to maxPage, which lies past any real listing.
func BuildFilter(q Query) storage.BookFilter {
	page := 1
	if n, err := strconv.Atoi(strings.TrimSpace(q.Page)); err == nil && n > 0 {
		page = min(n, maxPage)
	}
	return storage.BookFilter{
		TitleContains: strings.TrimSpace(q.Keyword),
		Offset:        (page - 1) * PageSize,
		Limit:         PageSize,
	}
}
