package books

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hongminglow/bookstore-be/internal/storage"
)

func TestBuildFilter(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  storage.BookFilter
	}{
		{"first page with keyword", Query{Page: "1", Keyword: "test"}, storage.BookFilter{TitleContains: "test", Offset: 0, Limit: PageSize}},
		{"empty query", Query{}, storage.BookFilter{Offset: 0, Limit: PageSize}},
		{"third page", Query{Page: "3"}, storage.BookFilter{Offset: 4, Limit: PageSize}},
		{"non numeric page", Query{Page: "abc"}, storage.BookFilter{Offset: 0, Limit: PageSize}},
		{"zero page", Query{Page: "0"}, storage.BookFilter{Offset: 0, Limit: PageSize}},
		{"negative page", Query{Page: "-2"}, storage.BookFilter{Offset: 0, Limit: PageSize}},
		{"blank keyword", Query{Page: "2", Keyword: "   "}, storage.BookFilter{Offset: 2, Limit: PageSize}},
		{"page overflowing the offset", Query{Page: "4611686018427387905"}, storage.BookFilter{Offset: (maxPage - 1) * PageSize, Limit: PageSize}},
		{"page beyond int range", Query{Page: "99999999999999999999"}, storage.BookFilter{Offset: 0, Limit: PageSize}},
		{"keyword kept literal", Query{Keyword: " Lord.*Rings "}, storage.BookFilter{TitleContains: "Lord.*Rings", Limit: PageSize}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := BuildFilter(tc.query)
			assert.Equal(t, tc.want, got)
			assert.GreaterOrEqual(t, got.Offset, 0)
		})
	}
}
