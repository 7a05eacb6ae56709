package cli

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/example/talentflow/internal/errs"
)

func TestFormatError(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "validation fields sorted",
			err:  errs.NewValidationError(map[string]string{"title": "title is required", "email": "invalid email"}),
			want: []string{"Error: validation failed", "\n  email: invalid email\n  title: title is required"},
		},
		{
			name: "cycle",
			err:  errs.NewCyclicConditionalError([]string{"q1", "q2", "q1"}),
			want: []string{"q1 → q2 → q1"},
		},
		{
			name: "not found",
			err:  errs.NewNotFoundError("job", "JOB-404"),
			want: []string{"Error: job JOB-404 not found"},
		},
		{
			name: "server error is retryable",
			err:  errs.NewServerError(http.StatusInternalServerError, "Server error"),
			want: []string{"Error: Server error", "safe to run the command again"},
		},
		{
			name: "network error is retryable",
			err:  errs.NewNetworkError(errors.New("connection refused")),
			want: []string{"connection refused", "safe to run the command again"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.err)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("expected %q in %q", w, got)
				}
			}
		})
	}

	if strings.Contains(FormatError(errs.NewFieldError("x", "y")), "safe to run") {
		t.Error("validation errors must not be reported as retryable")
	}
}
