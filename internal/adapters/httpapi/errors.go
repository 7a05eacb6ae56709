package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/example/talentflow/internal/errs"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeCyclic      = "CYCLIC_CONDITIONAL"
	CodeBadRequest  = "BAD_REQUEST"
	CodeNotFound    = "NOT_FOUND"
	CodeDuplicate   = "DUPLICATE_SLUG"
	CodeServerError = "SERVER_ERROR"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
	Cycle  []string          `json:"cycle,omitempty"`
	Kind   string            `json:"kind,omitempty"`
	ID     string            `json:"id,omitempty"`
	Slug   string            `json:"slug,omitempty"`
}

// badRequestError marks a body or query that could not be parsed at all.
type badRequestError struct {
	error
}

func badRequest(err error) error {
	return &badRequestError{error: err}
}

// StatusFor maps an error to its HTTP status and response body.
func StatusFor(err error) (int, ErrorResponse) {
	var (
		ve  *errs.ValidationError
		ce  *errs.CyclicConditionalError
		br  *badRequestError
		nf  *errs.NotFoundError
		dup *errs.DuplicateSlugError
		se  *errs.ServerError
	)

	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: ve.Error(), Code: CodeValidation, Fields: ve.Fields}
	case errors.As(err, &ce):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: ce.Error(), Code: CodeCyclic, Cycle: ce.Cycle}
	case errors.As(err, &br):
		return http.StatusBadRequest, ErrorResponse{Error: br.Error(), Code: CodeBadRequest}
	case errors.As(err, &nf):
		return http.StatusNotFound, ErrorResponse{Error: nf.Error(), Code: CodeNotFound, Kind: nf.Kind, ID: nf.ID}
	case errors.As(err, &dup):
		return http.StatusConflict, ErrorResponse{Error: dup.Error(), Code: CodeDuplicate, Slug: dup.Slug}
	case errors.As(err, &se):
		return http.StatusInternalServerError, ErrorResponse{Error: se.Error(), Code: CodeServerError}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeServerError}
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := StatusFor(err)
	if status >= http.StatusInternalServerError {
		zap.S().Named("http").Errorw("request failed",
			"request_id", middleware.GetReqID(r.Context()), "path", r.URL.Path, "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}
