package job

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Field   string // request field the failure belongs to, if any
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateJobContext provides context for job creation guards.
type CreateJobContext struct {
	Title      string
	SlugExists bool
}

// UpdateJobContext provides context for job update guards.
// Nil fields are not part of the patch.
type UpdateJobContext struct {
	JobID      string
	JobExists  bool
	Title      *string
	Status     *string
	SlugTaken  bool // slug of the new title belongs to a different job
	OrderPatch bool // caller tried to set order directly
}

// ReorderJobContext provides context for reorder guards.
type ReorderJobContext struct {
	JobID     string
	JobExists bool
}

// CanCreateJob evaluates whether a job can be created.
// Rules:
// - Title is required and must produce a non-empty slug
// - Slug must not already exist
func CanCreateJob(ctx CreateJobContext) GuardResult {
	if strings.TrimSpace(ctx.Title) == "" {
		return GuardResult{Allowed: false, Field: "title", Reason: "title is required"}
	}
	if Slugify(ctx.Title) == "" {
		return GuardResult{Allowed: false, Field: "title", Reason: "title must contain letters or digits"}
	}
	if ctx.SlugExists {
		return GuardResult{
			Allowed: false,
			Field:   "title",
			Reason:  fmt.Sprintf("job with slug %q already exists", Slugify(ctx.Title)),
		}
	}

	return GuardResult{Allowed: true}
}

// CanUpdateJob evaluates whether a job patch can be applied.
// Rules:
// - Job must exist
// - order is not patchable; only reorder moves jobs
// - Title, when present, follows the create rules
// - Status, when present, must be known
func CanUpdateJob(ctx UpdateJobContext) GuardResult {
	if !ctx.JobExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("job %s not found", ctx.JobID)}
	}
	if ctx.OrderPatch {
		return GuardResult{Allowed: false, Field: "order", Reason: "order cannot be patched; use reorder"}
	}
	if ctx.Title != nil {
		if r := CanCreateJob(CreateJobContext{Title: *ctx.Title, SlugExists: ctx.SlugTaken}); !r.Allowed {
			return r
		}
	}
	if ctx.Status != nil && !Status(*ctx.Status).Valid() {
		return GuardResult{
			Allowed: false,
			Field:   "status",
			Reason:  fmt.Sprintf("invalid status %q (must be active or archived)", *ctx.Status),
		}
	}

	return GuardResult{Allowed: true}
}

// CanReorderJob evaluates whether a reorder request is acceptable.
// Rules:
// - Job must exist
// Out-of-range targets are not rejected; Reorder clamps them to [1, N].
func CanReorderJob(ctx ReorderJobContext) GuardResult {
	if !ctx.JobExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("job %s not found", ctx.JobID)}
	}

	return GuardResult{Allowed: true}
}
