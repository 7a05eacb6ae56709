package candidate

import (
	"fmt"
	"net/mail"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Field   string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateCandidateContext provides context for candidate creation guards.
type CreateCandidateContext struct {
	Name      string
	Email     string
	JobID     string
	JobExists bool
}

// UpdateCandidateContext provides context for candidate update guards.
type UpdateCandidateContext struct {
	CandidateID     string
	CandidateExists bool
	Name            *string
	Email           *string
	Stage           *string
}

// CanCreateCandidate evaluates whether a candidate can be created.
// Rules:
// - Name is required
// - Email is required and must be an address
// - Job must exist
func CanCreateCandidate(ctx CreateCandidateContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{Allowed: false, Field: "name", Reason: "name is required"}
	}
	if r := checkEmail(ctx.Email); !r.Allowed {
		return r
	}
	if !ctx.JobExists {
		return GuardResult{Allowed: false, Field: "jobId", Reason: fmt.Sprintf("job %s not found", ctx.JobID)}
	}
	return GuardResult{Allowed: true}
}

// CanUpdateCandidate evaluates whether a candidate patch can be applied.
// Rules:
// - Candidate must exist
// - Name, when present, must not be blank
// - Email, when present, must be an address
// - Stage, when present, must be known
func CanUpdateCandidate(ctx UpdateCandidateContext) GuardResult {
	if !ctx.CandidateExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("candidate %s not found", ctx.CandidateID)}
	}
	if ctx.Name != nil && strings.TrimSpace(*ctx.Name) == "" {
		return GuardResult{Allowed: false, Field: "name", Reason: "name is required"}
	}
	if ctx.Email != nil {
		if r := checkEmail(*ctx.Email); !r.Allowed {
			return r
		}
	}
	if ctx.Stage != nil {
		if _, err := ParseStage(*ctx.Stage); err != nil {
			return GuardResult{Allowed: false, Field: "stage", Reason: err.Error()}
		}
	}
	return GuardResult{Allowed: true}
}

func checkEmail(email string) GuardResult {
	email = strings.TrimSpace(email)
	if email == "" {
		return GuardResult{Allowed: false, Field: "email", Reason: "email is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return GuardResult{Allowed: false, Field: "email", Reason: fmt.Sprintf("invalid email %q", email)}
	}
	return GuardResult{Allowed: true}
}
