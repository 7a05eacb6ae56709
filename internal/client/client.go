// Package client talks to the talentflow HTTP API. It implements the primary
// service ports so the CLI can drive a remote server the same way it drives
// the local services.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/talentflow/internal/adapters/httpapi"
	"github.com/example/talentflow/internal/core/assessment"
	"github.com/example/talentflow/internal/errs"
	"github.com/example/talentflow/internal/ports/primary"
)

// DefaultTimeout bounds a single request when none is configured.
const DefaultTimeout = 10 * time.Second

// Client is an HTTP client for the talentflow API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	latest     *Latest
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		latest: NewLatest(),
	}
}

var (
	_ primary.JobService        = (*Client)(nil)
	_ primary.CandidateService  = (*Client)(nil)
	_ primary.AssessmentService = (*Client)(nil)
)

// call describes one API round-trip.
type call struct {
	method string
	path   string
	query  url.Values
	body   any
	out    any
}

func (c *Client) do(ctx context.Context, req call) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return errs.NewNetworkError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewNetworkError(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp.StatusCode, data)
	}

	if req.out == nil {
		return nil
	}
	if err := json.Unmarshal(data, req.out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodeError turns an error reply back into the errs type the server mapped
// it from.
func decodeError(status int, data []byte) error {
	var body httpapi.ErrorResponse
	if err := json.Unmarshal(data, &body); err != nil || body.Code == "" {
		return errs.NewServerError(status, strings.TrimSpace(string(data)))
	}

	switch body.Code {
	case httpapi.CodeValidation:
		return errs.NewValidationError(body.Fields)
	case httpapi.CodeBadRequest:
		return errs.NewFieldError("body", body.Error)
	case httpapi.CodeCyclic:
		return errs.NewCyclicConditionalError(body.Cycle)
	case httpapi.CodeNotFound:
		if body.Kind == "" {
			return errs.NewNotFoundError("resource", body.ID)
		}
		return errs.NewNotFoundError(body.Kind, body.ID)
	case httpapi.CodeDuplicate:
		return errs.NewDuplicateSlugError(body.Slug)
	default:
		return errs.NewServerError(status, body.Error)
	}
}

func pageQuery(q url.Values, page primary.PageRequest) url.Values {
	if page.Page > 0 {
		q.Set("page", strconv.Itoa(page.Page))
	}
	if page.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(page.PageSize))
	}
	return q
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// ListJobs fetches a page of jobs. A newer ListJobs call supersedes this one.
func (c *Client) ListJobs(ctx context.Context, filters primary.JobFilters, page primary.PageRequest) (*primary.JobPage, error) {
	q := url.Values{}
	setIf(q, "search", filters.Search)
	setIf(q, "status", filters.Status)
	setIf(q, "sort", filters.Sort)

	return Do(c.latest, ctx, "jobs", func(ctx context.Context) (*primary.JobPage, error) {
		var out primary.JobPage
		if err := c.do(ctx, call{method: http.MethodGet, path: "/api/jobs", query: pageQuery(q, page), out: &out}); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (c *Client) CreateJob(ctx context.Context, req primary.CreateJobRequest) (*primary.Job, error) {
	var out primary.Job
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/jobs", body: req, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetJob(ctx context.Context, jobID string) (*primary.Job, error) {
	var out primary.Job
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/jobs/" + url.PathEscape(jobID), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateJob(ctx context.Context, jobID string, patch primary.JobPatch) (*primary.Job, error) {
	var out primary.Job
	if err := c.do(ctx, call{method: http.MethodPatch, path: "/api/jobs/" + url.PathEscape(jobID), body: patch, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReorderJob(ctx context.Context, req primary.ReorderJobRequest) error {
	return c.do(ctx, call{
		method: http.MethodPatch,
		path:   "/api/jobs/" + url.PathEscape(req.JobID) + "/reorder",
		body:   req,
	})
}

// ListCandidates fetches a page of candidates. A newer ListCandidates call
// supersedes this one.
func (c *Client) ListCandidates(ctx context.Context, filters primary.CandidateFilters, page primary.PageRequest) (*primary.CandidatePage, error) {
	q := url.Values{}
	setIf(q, "search", filters.Search)
	setIf(q, "stage", filters.Stage)
	setIf(q, "jobId", filters.JobID)

	return Do(c.latest, ctx, "candidates", func(ctx context.Context) (*primary.CandidatePage, error) {
		var out primary.CandidatePage
		if err := c.do(ctx, call{method: http.MethodGet, path: "/api/candidates", query: pageQuery(q, page), out: &out}); err != nil {
			return nil, err
		}
		return &out, nil
	})
}

func (c *Client) CreateCandidate(ctx context.Context, req primary.CreateCandidateRequest) (*primary.Candidate, error) {
	var out primary.Candidate
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/candidates", body: req, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCandidate(ctx context.Context, candidateID string) (*primary.Candidate, error) {
	var out primary.Candidate
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/candidates/" + url.PathEscape(candidateID), out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCandidate(ctx context.Context, candidateID string, patch primary.CandidatePatch) (*primary.Candidate, error) {
	var out primary.Candidate
	if err := c.do(ctx, call{method: http.MethodPatch, path: "/api/candidates/" + url.PathEscape(candidateID), body: patch, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetCandidateTimeline(ctx context.Context, candidateID string) ([]*primary.TimelineEntry, error) {
	var out []*primary.TimelineEntry
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/candidates/" + url.PathEscape(candidateID) + "/timeline", out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// GetAssessment returns nil when the job has no assessment.
func (c *Client) GetAssessment(ctx context.Context, jobID string) (*assessment.Assessment, error) {
	var out *assessment.Assessment
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/assessments/" + url.PathEscape(jobID), out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SaveAssessment(ctx context.Context, req primary.SaveAssessmentRequest) (*assessment.Assessment, error) {
	var out assessment.Assessment
	if err := c.do(ctx, call{method: http.MethodPut, path: "/api/assessments/" + url.PathEscape(req.JobID), body: req, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PreviewAssessment(ctx context.Context, jobID string, responses assessment.Responses) (*primary.AssessmentPreview, error) {
	var out primary.AssessmentPreview
	body := struct {
		Responses assessment.Responses `json:"responses"`
	}{Responses: responses}
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/assessments/" + url.PathEscape(jobID) + "/preview", body: body, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SubmitAssessment(ctx context.Context, req primary.SubmitAssessmentRequest) (*primary.SubmitAssessmentResponse, error) {
	var out primary.SubmitAssessmentResponse
	if err := c.do(ctx, call{method: http.MethodPost, path: "/api/assessments/" + url.PathEscape(req.JobID) + "/submit", body: req, out: &out}); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListAssessments(ctx context.Context) ([]*assessment.Assessment, error) {
	var out []*assessment.Assessment
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/assessments", out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSubmissions(ctx context.Context, jobID string) ([]*primary.Submission, error) {
	var out []*primary.Submission
	if err := c.do(ctx, call{method: http.MethodGet, path: "/api/assessments/" + url.PathEscape(jobID) + "/submissions", out: &out}); err != nil {
		return nil, err
	}
	return out, nil
}

// Health reports whether the server answers its liveness probe.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, call{method: http.MethodGet, path: "/health"})
}

// IsSuperseded reports whether err means a newer request replaced this one.
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}
