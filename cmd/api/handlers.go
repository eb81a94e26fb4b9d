// cmd/api/handlers.go
// This file contains all HTTP request handlers for the books resource.
// Each handler is a method on *applicationDependencies so it has access
// to the logger and database models. Handlers only shape parameters and
// map repository errors to HTTP statuses; no business rule lives here.
package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvasquez/libris/internal/data"
	"github.com/nvasquez/libris/internal/validator"
)

// bookListPage is the data payload of the paged listing endpoint.
type bookListPage struct {
	Books []data.Book `json:"books"`
	data.PageInfo
}

// yearCount is the data payload of the per-year aggregation endpoint.
type yearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// createBookHandler handles POST /api/v1/books.
// It reads a JSON body containing the new book's details, inserts a record
// into the database, and responds with the created book (including its
// database-assigned ID and timestamps) and a 201 Created status.
func (app *applicationDependencies) createBookHandler(c *gin.Context) {
	var input data.CreateBookInput

	// Decode the incoming JSON body using the safe readJSON helper.
	// readJSON enforces a 1MB limit, rejects unknown fields, and ensures a single value.
	err := app.readJSON(c, &input)
	if err != nil {
		app.badRequestResponse(c, err)
		return
	}

	v := validator.New()
	input.Validate(v)
	if !v.Valid() {
		app.failedValidationResponse(c, v.Errors)
		return
	}

	book := &data.Book{
		Title:           input.Title,
		Author:          input.Author,
		PublicationYear: input.PublicationYear,
		ISBN:            input.ISBN,
	}

	// Persist the book. Insert() also writes the auto-generated ID and
	// timestamps back into book.
	err = app.models.Books.Insert(c.Request.Context(), book)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrDuplicateISBN):
			app.errorResponse(c, http.StatusConflict, "A book with this ISBN already exists")
		default:
			app.serverErrorResponse(c, err)
		}
		return
	}

	app.writeEnvelope(c, http.StatusCreated, "Book created successfully", book)
}

// listBooksHandler handles GET /api/v1/books.
// It reads the optional page and limit query parameters (defaults 1 and 10),
// clamps the limit to [1, 100], and returns one page of books together with
// the total count and total page count.
func (app *applicationDependencies) listBooksHandler(c *gin.Context) {
	v := validator.New()

	page := app.readInt(c, "page", 1, v)
	limit := app.readInt(c, "limit", 10, v)
	if !v.Valid() {
		app.failedValidationResponse(c, v.Errors)
		return
	}

	// Out-of-range values are clamped rather than rejected.
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	books, info, err := app.models.Books.GetAll(c.Request.Context(), page, limit)
	if err != nil {
		app.serverErrorResponse(c, err)
		return
	}

	app.writeEnvelope(c, http.StatusOK, "Books retrieved successfully", bookListPage{
		Books:    books,
		PageInfo: info,
	})
}

// searchBooksHandler handles GET /api/v1/books/search?title=.
// The title parameter is mandatory; it is rejected here, before the
// repository is ever invoked. Matching is case-insensitive and the substring
// may occur anywhere in the title.
func (app *applicationDependencies) searchBooksHandler(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		app.errorResponse(c, http.StatusBadRequest, "Title query parameter is required")
		return
	}

	books, err := app.models.Books.SearchByTitle(c.Request.Context(), title)
	if err != nil {
		app.serverErrorResponse(c, err)
		return
	}

	app.writeEnvelope(c, http.StatusOK, "Books search completed", books)
}

// countBooksByYearHandler handles GET /api/v1/books/count-by-year/:year.
// The count itself is computed by the database's stored aggregation
// function; this handler only parses the year and shapes the payload.
func (app *applicationDependencies) countBooksByYearHandler(c *gin.Context) {
	year, err := app.readYearParam(c)
	if err != nil {
		app.badRequestResponse(c, err)
		return
	}

	count, err := app.models.Books.CountByYear(c.Request.Context(), year)
	if err != nil {
		app.serverErrorResponse(c, err)
		return
	}

	message := fmt.Sprintf("Books count for year %d retrieved successfully", year)
	app.writeEnvelope(c, http.StatusOK, message, yearCount{Year: year, Count: count})
}

// booksByYearRangeHandler handles GET /api/v1/books/year-range?startYear=&endYear=.
// Both bounds are mandatory integers; the filter is inclusive on both ends.
func (app *applicationDependencies) booksByYearRangeHandler(c *gin.Context) {
	v := validator.New()

	start := app.readRequiredInt(c, "startYear", v)
	end := app.readRequiredInt(c, "endYear", v)
	if !v.Valid() {
		app.failedValidationResponse(c, v.Errors)
		return
	}

	books, err := app.models.Books.GetByYearRange(c.Request.Context(), start, end)
	if err != nil {
		app.serverErrorResponse(c, err)
		return
	}

	message := fmt.Sprintf("Books from %d to %d retrieved successfully", start, end)
	app.writeEnvelope(c, http.StatusOK, message, books)
}

// showBookHandler handles GET /api/v1/books/:id.
// Responds 404 if no book with that ID exists.
func (app *applicationDependencies) showBookHandler(c *gin.Context) {
	id, err := app.readIDParam(c)
	if err != nil {
		app.badRequestResponse(c, err)
		return
	}

	book, err := app.models.Books.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(c, http.StatusNotFound, fmt.Sprintf("Book with ID %d not found", id))
		default:
			app.serverErrorResponse(c, err)
		}
		return
	}

	app.writeEnvelope(c, http.StatusOK, "Book retrieved successfully", book)
}

// updateBookHandler handles PATCH /api/v1/books/:id.
// It reads a partial JSON body and applies only the supplied fields; omitted
// fields keep their stored values. A missing id is reported before a
// zero-field body, and an ISBN collision surfaces as a conflict.
func (app *applicationDependencies) updateBookHandler(c *gin.Context) {
	id, err := app.readIDParam(c)
	if err != nil {
		app.badRequestResponse(c, err)
		return
	}

	var input data.UpdateBookInput
	err = app.readJSON(c, &input)
	if err != nil {
		app.badRequestResponse(c, err)
		return
	}

	// Supplied fields must still be individually valid.
	v := validator.New()
	input.Validate(v)
	if !v.Valid() {
		app.failedValidationResponse(c, v.Errors)
		return
	}

	book, err := app.models.Books.Update(c.Request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(c, http.StatusNotFound, fmt.Sprintf("Book with ID %d not found", id))
		case errors.Is(err, data.ErrNoFieldsToUpdate):
			app.errorResponse(c, http.StatusBadRequest, "No fields to update")
		case errors.Is(err, data.ErrDuplicateISBN):
			app.errorResponse(c, http.StatusConflict, "A book with this ISBN already exists")
		default:
			app.serverErrorResponse(c, err)
		}
		return
	}

	app.writeEnvelope(c, http.StatusOK, "Book updated successfully", book)
}

// deleteBookHandler handles DELETE /api/v1/books/:id.
// Responds 404 if no book with that ID exists; a successful delete carries
// no data payload.
func (app *applicationDependencies) deleteBookHandler(c *gin.Context) {
	id, err := app.readIDParam(c)
	if err != nil {
		app.badRequestResponse(c, err)
		return
	}

	err = app.models.Books.Delete(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.errorResponse(c, http.StatusNotFound, fmt.Sprintf("Book with ID %d not found", id))
		default:
			app.serverErrorResponse(c, err)
		}
		return
	}

	app.writeEnvelope(c, http.StatusOK, "Book deleted successfully", nil)
}
