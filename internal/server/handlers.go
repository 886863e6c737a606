package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// validate is the shared request validator
var validate = validator.New()

// Envelope is the common response wrapper for all endpoints
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ScanRequest represents the request body for /scan
type ScanRequest struct {
	ResumeText  string `json:"resume_text" validate:"required"`
	JobText     string `json:"job_text" validate:"required"`
	ResumeLabel string `json:"resume_label,omitempty"`
}

// OptimizeRequest represents the request body for /optimize
type OptimizeRequest struct {
	ResumeText       string `json:"resume_text" validate:"required"`
	JobText          string `json:"job_text" validate:"required"`
	OptimizationType string `json:"optimization_type,omitempty"`
}

// AnalyzeJobRequest represents the request body for /analyze-job
type AnalyzeJobRequest struct {
	JobText string `json:"job_text" validate:"required"`
}

// decodeAndValidate decodes the request body into target and runs validation.
// Writes the error response itself and reports whether the caller may proceed.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := validate.Struct(target); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			s.errorResponse(w, http.StatusInternalServerError, "Request validation failed")
			return false
		}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			s.errorResponse(w, http.StatusBadRequest, "Missing required field: "+fieldErr.Field())
			return false
		}
	}
	return true
}

// handleScan runs the full compatibility scan pipeline
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.runner.Scan(r.Context(), req.ResumeText, req.JobText, req.ResumeLabel)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, Envelope{Success: true, Data: result})
}

// handleOptimize rewrites resume content against a job description
func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req OptimizeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.runner.Optimize(r.Context(), req.ResumeText, req.JobText, req.OptimizationType)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, Envelope{Success: true, Data: result})
}

// handleAnalyzeJob analyzes a job description on its own
func (s *Server) handleAnalyzeJob(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeJobRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.runner.AnalyzeJob(r.Context(), req.JobText)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, Envelope{Success: true, Data: result})
}
