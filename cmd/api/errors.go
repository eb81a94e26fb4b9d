// cmd/api/errors.go
// This file contains all error-response helpers for the application.
// Keeping error helpers in a dedicated file makes them easy to find and extend.
package main

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// logError logs an internal error at ERROR level with the request method and URL for context.
func (app *applicationDependencies) logError(c *gin.Context, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", c.Request.Method),
		slog.String("request_url", c.Request.URL.String()),
	)
}

// errorResponse sends an enveloped error with the given status code and
// message. It is the low-level building block used by all the specific
// error helpers below; errors carry no data payload.
func (app *applicationDependencies) errorResponse(c *gin.Context, status int, message string) {
	app.writeEnvelope(c, status, message, nil)
}

// serverErrorResponse logs a 500-level error and sends a generic message to
// the client. Internal error details are never exposed to the caller.
func (app *applicationDependencies) serverErrorResponse(c *gin.Context, err error) {
	app.logError(c, err)
	app.errorResponse(c, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

// notFoundResponse sends a generic 404 Not Found error. Handlers that know
// which record is missing use errorResponse directly with a precise message.
func (app *applicationDependencies) notFoundResponse(c *gin.Context) {
	app.errorResponse(c, http.StatusNotFound, "the requested resource could not be found")
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(c *gin.Context) {
	message := "the " + c.Request.Method + " method is not supported for this resource"
	app.errorResponse(c, http.StatusMethodNotAllowed, message)
}

// badRequestResponse sends a 400 Bad Request error with the error message from the caller.
func (app *applicationDependencies) badRequestResponse(c *gin.Context, err error) {
	app.errorResponse(c, http.StatusBadRequest, err.Error())
}

// failedValidationResponse sends a 400 Bad Request response carrying the
// field-level validation errors collected by a Validator as its payload.
func (app *applicationDependencies) failedValidationResponse(c *gin.Context, errors map[string]string) {
	app.writeEnvelope(c, http.StatusBadRequest, "validation failed", errors)
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(c *gin.Context) {
	app.errorResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
}
