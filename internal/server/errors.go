package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-scanner/internal/parsing"
	"github.com/jonathan/resume-scanner/internal/pipeline"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *pipeline.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var apiErr *parsing.APICallError
	if errors.As(err, &apiErr) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
