package models

import "time"

// Category is the fixed set of genres a listing can belong to.
type Category string

const (
	CategoryAdventure Category = "Adventure"
	CategoryClassics  Category = "Classics"
	CategoryCrime     Category = "Crime"
	CategoryFantasy   Category = "Fantasy"
)

// Categories lists every accepted category in display order.
var Categories = []Category{CategoryAdventure, CategoryClassics, CategoryCrime, CategoryFantasy}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Book is a listing owned by the user that created it.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Price       float64   `json:"price"`
	Category    Category  `json:"category"`
	UserID      string    `json:"user"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
