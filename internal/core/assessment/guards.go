package assessment

import (
	"fmt"
	"strings"

	"github.com/example/talentflow/internal/errs"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// SaveAssessmentContext provides context for save guards.
type SaveAssessmentContext struct {
	JobID     string
	JobExists bool
}

// SubmitContext provides context for submission guards.
type SubmitContext struct {
	JobID            string
	AssessmentExists bool
	CandidateID      string
	CandidateExists  bool
}

// CanSaveAssessment evaluates whether an assessment can be saved for a job.
// Rules:
// - Job must exist
func CanSaveAssessment(ctx SaveAssessmentContext) GuardResult {
	if !ctx.JobExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("job %s not found", ctx.JobID)}
	}
	return GuardResult{Allowed: true}
}

// CanSubmit evaluates whether responses can be submitted.
// Rules:
// - An assessment must exist for the job
// - Candidate must exist
func CanSubmit(ctx SubmitContext) GuardResult {
	if !ctx.AssessmentExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("assessment for job %s not found", ctx.JobID)}
	}
	if !ctx.CandidateExists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("candidate %s not found", ctx.CandidateID)}
	}
	return GuardResult{Allowed: true}
}

// CheckDefinition validates the structure of an assessment before it is
// saved. Structural problems come back as a ValidationError keyed by field
// path; a dependency loop comes back as a CyclicConditionalError.
func CheckDefinition(a Assessment) error {
	fields := make(map[string]string)

	if strings.TrimSpace(a.Title) == "" {
		fields["title"] = "title is required"
	}

	sectionIDs := make(map[string]bool)
	questionIDs := make(map[string]bool)
	for _, s := range a.Sections {
		for _, q := range s.Questions {
			questionIDs[q.ID] = true
		}
	}

	seenQuestions := make(map[string]bool)
	for si, s := range a.Sections {
		path := fmt.Sprintf("sections[%d]", si)
		switch {
		case s.ID == "":
			fields[path+".id"] = "section id is required"
		case sectionIDs[s.ID]:
			fields[path+".id"] = fmt.Sprintf("duplicate section id %q", s.ID)
		}
		sectionIDs[s.ID] = true

		for qi, q := range s.Questions {
			qpath := fmt.Sprintf("%s.questions[%d]", path, qi)
			switch {
			case q.ID == "":
				fields[qpath+".id"] = "question id is required"
			case seenQuestions[q.ID]:
				fields[qpath+".id"] = fmt.Sprintf("duplicate question id %q", q.ID)
			}
			seenQuestions[q.ID] = true

			checkQuestion(qpath, q, questionIDs, fields)
		}
	}

	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return DetectCycles(a)
}

func checkQuestion(path string, q Question, ids map[string]bool, fields map[string]string) {
	if strings.TrimSpace(q.Text) == "" {
		fields[path+".text"] = "question text is required"
	}
	if !q.Type.Valid() {
		fields[path+".type"] = fmt.Sprintf("unknown question type %q", q.Type)
	}

	if q.Type.IsChoice() {
		if len(q.Options) == 0 {
			fields[path+".options"] = "choice questions need at least one option"
		}
		values := make(map[string]bool)
		for _, o := range q.Options {
			if values[o.Value] {
				fields[path+".options"] = fmt.Sprintf("duplicate option value %q", o.Value)
				break
			}
			values[o.Value] = true
		}
	}

	if q.Min != nil && q.Max != nil && *q.Min > *q.Max {
		fields[path+".min"] = "min must not exceed max"
	}
	if q.MaxLength != nil && *q.MaxLength <= 0 {
		fields[path+".maxLength"] = "maxLength must be positive"
	}

	if c := q.Conditional; c != nil {
		switch {
		case !c.Condition.Valid():
			fields[path+".conditional.condition"] = fmt.Sprintf("unknown condition %q", c.Condition)
		case c.DependsOn == q.ID:
			fields[path+".conditional.dependsOn"] = "question cannot depend on itself"
		case !ids[c.DependsOn]:
			fields[path+".conditional.dependsOn"] = fmt.Sprintf("unknown question %q", c.DependsOn)
		}
	}
}
