package data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nvasquez/libris/internal/validator"
)

func validCreateInput() CreateBookInput {
	return CreateBookInput{
		Title:           "The Left Hand of Darkness",
		Author:          "Ursula K. Le Guin",
		PublicationYear: 1969,
		ISBN:            "978-0441478122",
	}
}

func TestCreateBookInputValidate(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		v := validator.New()
		validCreateInput().Validate(v)
		assert.True(t, v.Valid())
	})

	t.Run("all fields are required", func(t *testing.T) {
		v := validator.New()
		CreateBookInput{}.Validate(v)

		assert.False(t, v.Valid())
		assert.Contains(t, v.Errors, "title")
		assert.Contains(t, v.Errors, "author")
		assert.Contains(t, v.Errors, "publication_year")
		assert.Contains(t, v.Errors, "isbn")
	})

	t.Run("malformed isbn rejected", func(t *testing.T) {
		in := validCreateInput()
		in.ISBN = "not-an-isbn"

		v := validator.New()
		in.Validate(v)
		assert.Equal(t, map[string]string{"isbn": "must be a valid ISBN-10 or ISBN-13"}, v.Errors)
	})

	t.Run("implausible year rejected", func(t *testing.T) {
		in := validCreateInput()
		in.PublicationYear = 99

		v := validator.New()
		in.Validate(v)
		assert.Contains(t, v.Errors, "publication_year")
	})
}

func TestUpdateBookInputIsEmpty(t *testing.T) {
	assert.True(t, UpdateBookInput{}.IsEmpty())

	title := "t"
	assert.False(t, UpdateBookInput{Title: &title}.IsEmpty())
}

func TestUpdateBookInputValidate(t *testing.T) {
	t.Run("omitted fields are not checked", func(t *testing.T) {
		v := validator.New()
		UpdateBookInput{}.Validate(v)
		assert.True(t, v.Valid())
	})

	t.Run("supplied fields must be valid", func(t *testing.T) {
		empty := ""
		v := validator.New()
		UpdateBookInput{Title: &empty}.Validate(v)
		assert.Contains(t, v.Errors, "title")
	})

	t.Run("supplied isbn must be well formed", func(t *testing.T) {
		isbn := "???"
		v := validator.New()
		UpdateBookInput{ISBN: &isbn}.Validate(v)
		assert.Contains(t, v.Errors, "isbn")
	})
}
