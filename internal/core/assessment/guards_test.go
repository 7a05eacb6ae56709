package assessment

import (
	"errors"
	"testing"

	"github.com/example/talentflow/internal/errs"
)

func validDefinition() Assessment {
	return Assessment{
		JobID: "JOB-001",
		Title: "Frontend screening",
		Sections: []Section{
			{ID: "section_0", Title: "Background", Questions: []Question{
				{ID: "q_0_0", Type: TypeSingleChoice, Text: "Worked with React?", Required: true, Options: []Option{
					{ID: "opt_0_0_0", Text: "Yes", Value: "Yes"},
					{ID: "opt_0_0_1", Text: "No", Value: "No"},
				}},
				{ID: "q_0_1", Type: TypeNumeric, Text: "Years of React?", Min: fptr(0), Max: fptr(40),
					Conditional: dependsOn("q_0_0", CondEquals, Text("Yes"))},
			}},
			{ID: "section_1", Title: "Portfolio", Questions: []Question{
				{ID: "q_1_0", Type: TypeShortText, Text: "GitHub handle", MaxLength: iptr(100)},
				{ID: "q_1_1", Type: TypeFileUpload, Text: "Resume"},
			}},
		},
	}
}

func TestCheckDefinition_Valid(t *testing.T) {
	if err := CheckDefinition(validDefinition()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckDefinition_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(a *Assessment)
		wantField string
	}{
		{
			name:      "missing title",
			mutate:    func(a *Assessment) { a.Title = " " },
			wantField: "title",
		},
		{
			name:      "duplicate section id",
			mutate:    func(a *Assessment) { a.Sections[1].ID = "section_0" },
			wantField: "sections[1].id",
		},
		{
			name:      "duplicate question id",
			mutate:    func(a *Assessment) { a.Sections[1].Questions[0].ID = "q_0_0" },
			wantField: "sections[1].questions[0].id",
		},
		{
			name:      "unknown type",
			mutate:    func(a *Assessment) { a.Sections[1].Questions[0].Type = "essay" },
			wantField: "sections[1].questions[0].type",
		},
		{
			name:      "choice without options",
			mutate:    func(a *Assessment) { a.Sections[0].Questions[0].Options = nil },
			wantField: "sections[0].questions[0].options",
		},
		{
			name: "duplicate option value",
			mutate: func(a *Assessment) {
				a.Sections[0].Questions[0].Options[1].Value = "Yes"
			},
			wantField: "sections[0].questions[0].options",
		},
		{
			name:      "min above max",
			mutate:    func(a *Assessment) { a.Sections[0].Questions[1].Min = fptr(50) },
			wantField: "sections[0].questions[1].min",
		},
		{
			name:      "non-positive maxLength",
			mutate:    func(a *Assessment) { a.Sections[1].Questions[0].MaxLength = iptr(0) },
			wantField: "sections[1].questions[0].maxLength",
		},
		{
			name: "unknown condition",
			mutate: func(a *Assessment) {
				a.Sections[0].Questions[1].Conditional.Condition = "gt"
			},
			wantField: "sections[0].questions[1].conditional.condition",
		},
		{
			name: "dangling dependency",
			mutate: func(a *Assessment) {
				a.Sections[0].Questions[1].Conditional.DependsOn = "q_9_9"
			},
			wantField: "sections[0].questions[1].conditional.dependsOn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validDefinition()
			tt.mutate(&a)

			var ve *errs.ValidationError
			if err := CheckDefinition(a); !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := ve.Fields[tt.wantField]; !ok {
				t.Errorf("expected field %q in %v", tt.wantField, ve.Fields)
			}
		})
	}
}

func TestCheckDefinition_RejectsSelfDependency(t *testing.T) {
	a := validDefinition()
	q := &a.Sections[0].Questions[1]
	q.Conditional.DependsOn = q.ID

	err := CheckDefinition(a)
	var cyc *errs.CyclicConditionalError
	if errors.As(err, &cyc) {
		t.Fatalf("expected a field error, got cycle %v", cyc.Cycle)
	}
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := ve.Fields["sections[0].questions[1].conditional.dependsOn"]; got != "question cannot depend on itself" {
		t.Errorf("reason = %q", got)
	}
}

func TestCheckDefinition_RejectsCycles(t *testing.T) {
	a := validDefinition()
	a.Sections[0].Questions[0].Conditional = dependsOn("q_0_1", CondEquals, Number(3))

	var cyc *errs.CyclicConditionalError
	if err := CheckDefinition(a); !errors.As(err, &cyc) {
		t.Fatalf("expected CyclicConditionalError, got %v", err)
	}
}

func TestCanSaveAssessment(t *testing.T) {
	if r := CanSaveAssessment(SaveAssessmentContext{JobID: "JOB-001", JobExists: true}); !r.Allowed {
		t.Errorf("expected allowed, got %q", r.Reason)
	}
	if r := CanSaveAssessment(SaveAssessmentContext{JobID: "JOB-404"}); r.Allowed || r.Reason != "job JOB-404 not found" {
		t.Errorf("got %+v", r)
	}
}

func TestCanSubmit(t *testing.T) {
	tests := []struct {
		name        string
		ctx         SubmitContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "can submit",
			ctx:         SubmitContext{JobID: "JOB-001", AssessmentExists: true, CandidateID: "CAND-001", CandidateExists: true},
			wantAllowed: true,
		},
		{
			name:       "cannot submit without assessment",
			ctx:        SubmitContext{JobID: "JOB-001", CandidateID: "CAND-001", CandidateExists: true},
			wantReason: "assessment for job JOB-001 not found",
		},
		{
			name:       "cannot submit for unknown candidate",
			ctx:        SubmitContext{JobID: "JOB-001", AssessmentExists: true, CandidateID: "CAND-404"},
			wantReason: "candidate CAND-404 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanSubmit(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}
