package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/example/talentflow/internal/errs"
)

// FormatError renders a command error for the terminal. Validation errors
// list each rejected field on its own line.
func FormatError(err error) string {
	var b strings.Builder
	b.WriteString(color.New(color.FgRed).Sprint("Error: "))

	var ve *errs.ValidationError
	var ce *errs.CyclicConditionalError
	switch {
	case errors.As(err, &ve):
		b.WriteString("validation failed")
		keys := make([]string, 0, len(ve.Fields))
		for k := range ve.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "\n  %s: %s", k, ve.Fields[k])
		}
	case errors.As(err, &ce):
		fmt.Fprintf(&b, "conditional questions form a loop: %s", strings.Join(ce.Cycle, " → "))
	default:
		b.WriteString(err.Error())
	}

	if errs.Retryable(err) {
		b.WriteString("\n  The request did not go through; it is safe to run the command again.")
	}
	return b.String()
}
