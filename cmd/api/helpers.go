// cmd/api/helpers.go
// This file contains general-purpose helper functions for the application.
// Error-response helpers live in errors.go; only non-error utilities are here.
package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nvasquez/libris/internal/validator"
)

// envelope is the uniform wrapper for every response body the API produces,
// success and error alike. The timestamp is attached here, at the single
// boundary through which all responses leave, so no handler ever touches it.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// writeEnvelope wraps data in the response envelope, stamps it with the
// current UTC time, and writes it with the given status code. Pass nil data
// for responses with no payload (e.g. delete confirmations).
func (app *applicationDependencies) writeEnvelope(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{
		StatusCode: status,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// readIDParam extracts and validates the ":id" URL parameter.
// Returns an error if the value is missing, non-numeric, or less than 1.
func (app *applicationDependencies) readIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

// readYearParam extracts and validates the ":year" URL parameter.
func (app *applicationDependencies) readYearParam(c *gin.Context) (int, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, errors.New("invalid year parameter")
	}
	return year, nil
}

// readInt reads an optional integer query parameter, returning defaultValue
// if the key is absent. A value that is present but not an integer is
// recorded as a validation error rather than silently defaulted.
func (app *applicationDependencies) readInt(c *gin.Context, key string, defaultValue int, v *validator.Validator) int {
	s := c.Query(key)
	if s == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return defaultValue
	}
	return i
}

// readRequiredInt reads a mandatory integer query parameter, recording a
// validation error when the key is missing or non-numeric.
func (app *applicationDependencies) readRequiredInt(c *gin.Context, key string, v *validator.Validator) int {
	s := c.Query(key)
	if s == "" {
		v.AddError(key, "must be provided")
		return 0
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		v.AddError(key, "must be an integer value")
		return 0
	}
	return i
}

// readJSON decodes a single JSON value from the request body into dst.
// It enforces a 1 MB size limit, rejects unknown fields, and ensures the
// body contains exactly one JSON value (no trailing data).
func (app *applicationDependencies) readJSON(c *gin.Context, dst any) error {
	// Cap the request body to 1 MB to prevent large-payload attacks.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 1_048_576)

	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields() // Reject fields not present in dst.

	err := dec.Decode(dst)
	if err != nil {
		return err
	}

	// Ensure there is no second JSON value in the body.
	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}
