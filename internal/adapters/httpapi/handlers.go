package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/example/talentflow/internal/core/assessment"
	"github.com/example/talentflow/internal/ports/primary"
)

// Handler serves the JSON API over the primary ports.
type Handler struct {
	jobs        primary.JobService
	candidates  primary.CandidateService
	assessments primary.AssessmentService
	validator   *Validator
}

// NewHandler creates a Handler over the given services.
func NewHandler(jobs primary.JobService, candidates primary.CandidateService, assessments primary.AssessmentService) *Handler {
	v := NewValidator()
	v.Register(NewCandidateValidationRules()...)
	return &Handler{jobs: jobs, candidates: candidates, assessments: assessments, validator: v}
}

type successReply struct {
	Success bool `json:"success"`
}

// decode reads a JSON body into v and runs the struct rules on it.
func (h *Handler) decode(r *http.Request, v any) error {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		if errors.Is(err, io.EOF) {
			return badRequest(errors.New("request body is empty"))
		}
		return badRequest(fmt.Errorf("malformed request body: %w", err))
	}
	return h.validator.Struct(v)
}

func pageRequest(r *http.Request) (primary.PageRequest, error) {
	var p primary.PageRequest
	var err error
	if p.Page, err = queryInt(r, "page"); err != nil {
		return p, err
	}
	if p.PageSize, err = queryInt(r, "pageSize"); err != nil {
		return p, err
	}
	return p, nil
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest(fmt.Errorf("query parameter %s must be an integer", key))
	}
	return n, nil
}

func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// (GET /api/jobs)
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	page, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	result, err := h.jobs.ListJobs(r.Context(), primary.JobFilters{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Sort:   q.Get("sort"),
	}, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

// (POST /api/jobs)
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateJobRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	job, err := h.jobs.CreateJob(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, job)
}

// (GET /api/jobs/{id})
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobs.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, job)
}

// (PATCH /api/jobs/{id})
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var patch primary.JobPatch
	if err := h.decode(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	job, err := h.jobs.UpdateJob(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, job)
}

// (PATCH /api/jobs/{id}/reorder)
func (h *Handler) ReorderJob(w http.ResponseWriter, r *http.Request) {
	var req primary.ReorderJobRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.JobID = chi.URLParam(r, "id")
	if err := h.jobs.ReorderJob(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, successReply{Success: true})
}

// (GET /api/candidates)
func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	page, err := pageRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	result, err := h.candidates.ListCandidates(r.Context(), primary.CandidateFilters{
		Search: q.Get("search"),
		Stage:  q.Get("stage"),
		JobID:  q.Get("jobId"),
	}, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, result)
}

// (POST /api/candidates)
func (h *Handler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateCandidateRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.candidates.CreateCandidate(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, c)
}

// (GET /api/candidates/{id})
func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	c, err := h.candidates.GetCandidate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, c)
}

// (PATCH /api/candidates/{id})
func (h *Handler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	var patch primary.CandidatePatch
	if err := h.decode(r, &patch); err != nil {
		writeError(w, r, err)
		return
	}
	c, err := h.candidates.UpdateCandidate(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, c)
}

// (GET /api/candidates/{id}/timeline)
func (h *Handler) GetCandidateTimeline(w http.ResponseWriter, r *http.Request) {
	entries, err := h.candidates.GetCandidateTimeline(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, entries)
}

// (GET /api/assessments)
func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	list, err := h.assessments.ListAssessments(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, list)
}

// (GET /api/assessments/{jobId}/submissions)
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	list, err := h.assessments.ListSubmissions(r.Context(), chi.URLParam(r, "jobId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, list)
}

// (GET /api/assessments/{jobId})
func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	a, err := h.assessments.GetAssessment(r.Context(), chi.URLParam(r, "jobId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if a == nil {
		respond(w, r, http.StatusOK, nil)
		return
	}
	respond(w, r, http.StatusOK, a)
}

// (PUT /api/assessments/{jobId})
func (h *Handler) SaveAssessment(w http.ResponseWriter, r *http.Request) {
	var req primary.SaveAssessmentRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.JobID = chi.URLParam(r, "jobId")
	a, err := h.assessments.SaveAssessment(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, a)
}

type previewRequest struct {
	Responses assessment.Responses `json:"responses"`
}

// (POST /api/assessments/{jobId}/preview)
func (h *Handler) PreviewAssessment(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	preview, err := h.assessments.PreviewAssessment(r.Context(), chi.URLParam(r, "jobId"), req.Responses)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, preview)
}

// (POST /api/assessments/{jobId}/submit)
func (h *Handler) SubmitAssessment(w http.ResponseWriter, r *http.Request) {
	var req primary.SubmitAssessmentRequest
	if err := h.decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.JobID = chi.URLParam(r, "jobId")
	resp, err := h.assessments.SubmitAssessment(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, resp)
}
