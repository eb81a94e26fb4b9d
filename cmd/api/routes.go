// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// routes registers all HTTP endpoints and returns the configured engine.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → logRequest → enableCORS → rateLimit → handler
//
// Endpoints (all under /api/v1):
//
//	POST   /books                      – create a new book
//	GET    /books                      – paged listing
//	GET    /books/search               – case-insensitive title substring search
//	GET    /books/count-by-year/:year  – per-year aggregate count
//	GET    /books/year-range           – inclusive publication-year range filter
//	GET    /books/:id                  – retrieve a single book by ID
//	PATCH  /books/:id                  – partially update an existing book
//	DELETE /books/:id                  – delete a book by ID
func (app *applicationDependencies) routes() http.Handler {
	router := gin.New()

	// Override gin's default error handling to return enveloped JSON.
	router.HandleMethodNotAllowed = true
	router.NoRoute(app.notFoundResponse)
	router.NoMethod(app.methodNotAllowedResponse)

	// recoverPanic is outermost so it catches panics from every other
	// middleware and handler alike.
	router.Use(app.recoverPanic(), app.logRequest(), app.enableCORS(), app.rateLimit())

	books := router.Group("/api/v1/books")
	{
		books.POST("", app.createBookHandler)
		books.GET("", app.listBooksHandler)
		books.GET("/search", app.searchBooksHandler)
		books.GET("/count-by-year/:year", app.countBooksByYearHandler)
		books.GET("/year-range", app.booksByYearRangeHandler)
		books.GET("/:id", app.showBookHandler)
		books.PATCH("/:id", app.updateBookHandler)
		books.DELETE("/:id", app.deleteBookHandler)
	}

	return router
}
