package dto

import (
	"strings"

	"github.com/hongminglow/bookstore-be/internal/models"
)

// CreateBookRequest carries every field of a new listing. The owner is taken
// from the authenticated caller, never from the payload.
type CreateBookRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Author      string          `json:"author"`
	Price       float64         `json:"price"`
	Category    models.Category `json:"category"`
	User        string          `json:"user,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return invalid("title is required")
	case strings.TrimSpace(r.Description) == "":
		return invalid("description is required")
	case strings.TrimSpace(r.Author) == "":
		return invalid("author is required")
	case r.Price < 0:
		return invalid("price must not be negative")
	case !r.Category.Valid():
		return invalid("please enter a correct category")
	case r.User != "":
		return invalid("you cannot pass user id")
	}
	return nil
}

// UpdateBookRequest is a partial update; nil fields are left untouched.
type UpdateBookRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Author      *string          `json:"author,omitempty"`
	Price       *float64         `json:"price,omitempty"`
	Category    *models.Category `json:"category,omitempty"`
	User        *string          `json:"user,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	switch {
	case r.Title != nil && strings.TrimSpace(*r.Title) == "":
		return invalid("title must not be empty")
	case r.Description != nil && strings.TrimSpace(*r.Description) == "":
		return invalid("description must not be empty")
	case r.Author != nil && strings.TrimSpace(*r.Author) == "":
		return invalid("author must not be empty")
	case r.Price != nil && *r.Price < 0:
		return invalid("price must not be negative")
	case r.Category != nil && !r.Category.Valid():
		return invalid("please enter a correct category")
	case r.User != nil:
		return invalid("you cannot pass user id")
	}
	return nil
}
