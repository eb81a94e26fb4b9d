// Package data provides the data models and database interaction logic
// for the book catalog service.
package data

import (
	"time"

	"github.com/nvasquez/libris/internal/validator"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ID              int64     `db:"id"               json:"id"`               // Unique identifier assigned by the database
	Title           string    `db:"title"            json:"title"`            // Title of the book
	Author          string    `db:"author"           json:"author"`           // Author of the book
	PublicationYear int       `db:"publication_year" json:"publication_year"` // Year the book was published
	ISBN            string    `db:"isbn"             json:"isbn"`             // Globally unique ISBN identifier
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`       // Set once at insertion, immutable
	UpdatedAt       time.Time `db:"updated_at"       json:"updated_at"`       // Refreshed on every successful update
}

// CreateBookInput holds the fields a client must supply when creating a new book.
// All fields are required.
type CreateBookInput struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear int    `json:"publication_year"`
	ISBN            string `json:"isbn"`
}

// Validate records an error for every field that is missing or malformed.
func (in CreateBookInput) Validate(v *validator.Validator) {
	v.Check(in.Title != "", "title", "must be provided")
	v.Check(in.Author != "", "author", "must be provided")
	v.Check(in.PublicationYear != 0, "publication_year", "must be provided")
	v.Check(in.PublicationYear >= 1000 && in.PublicationYear <= time.Now().Year()+1,
		"publication_year", "must be a plausible year")
	v.Check(in.ISBN != "", "isbn", "must be provided")
	if in.ISBN != "" {
		v.Check(validator.Matches(in.ISBN, validator.ISBNRX), "isbn", "must be a valid ISBN-10 or ISBN-13")
	}
}

// UpdateBookInput holds the fields a client may supply when partially updating
// a book. Every field is a pointer so we can distinguish between "not provided"
// (nil) and "intentionally set". Only non-nil fields are applied; omitted
// fields retain their stored values.
type UpdateBookInput struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	PublicationYear *int    `json:"publication_year"`
	ISBN            *string `json:"isbn"`
}

// IsEmpty reports whether no recognized field was supplied at all.
func (in UpdateBookInput) IsEmpty() bool {
	return in.Title == nil && in.Author == nil && in.PublicationYear == nil && in.ISBN == nil
}

// Validate checks only the fields that were actually supplied.
func (in UpdateBookInput) Validate(v *validator.Validator) {
	if in.Title != nil {
		v.Check(*in.Title != "", "title", "must not be empty")
	}
	if in.Author != nil {
		v.Check(*in.Author != "", "author", "must not be empty")
	}
	if in.PublicationYear != nil {
		v.Check(*in.PublicationYear >= 1000 && *in.PublicationYear <= time.Now().Year()+1,
			"publication_year", "must be a plausible year")
	}
	if in.ISBN != nil {
		v.Check(validator.Matches(*in.ISBN, validator.ISBNRX), "isbn", "must be a valid ISBN-10 or ISBN-13")
	}
}
