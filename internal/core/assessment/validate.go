package assessment

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Validation reasons.
const (
	ReasonRequired      = "required"
	ReasonNotANumber    = "not a number"
	ReasonBelowMinimum  = "below minimum"
	ReasonAboveMaximum  = "above maximum"
	ReasonTooLong       = "too long"
	ReasonInvalidOption = "invalid option"
	ReasonInvalidType   = "invalid type"
)

// Result is the outcome of validating one answer.
type Result struct {
	Valid  bool
	Reason string
}

func valid() Result                { return Result{Valid: true} }
func invalid(reason string) Result { return Result{Valid: false, Reason: reason} }

// Validate checks an answer against its question. The first failing rule wins:
//  1. required and empty
//  2. optional and empty is valid
//  3. numeric: parses as a finite number, then min and max
//  4. text: rune length within maxLength
//  5. choice: every value is a declared option value
//  6. file upload: a file reference or non-empty text
func Validate(q Question, v Answer) Result {
	if v.IsEmpty() {
		if q.Required {
			return invalid(ReasonRequired)
		}
		return valid()
	}

	switch q.Type {
	case TypeNumeric:
		return validateNumber(q, v)
	case TypeShortText, TypeLongText:
		return validateText(q, v)
	case TypeSingleChoice:
		if v.Kind != KindText || !q.HasOptionValue(v.Text) {
			return invalid(ReasonInvalidOption)
		}
	case TypeMultiChoice:
		if v.Kind != KindList {
			return invalid(ReasonInvalidOption)
		}
		for _, item := range v.List {
			if !q.HasOptionValue(item) {
				return invalid(ReasonInvalidOption)
			}
		}
	case TypeFileUpload:
		if v.Kind != KindFile && v.Kind != KindText {
			return invalid(ReasonInvalidType)
		}
	}
	return valid()
}

func validateNumber(q Question, v Answer) Result {
	n, ok := AsNumber(v)
	if !ok {
		return invalid(ReasonNotANumber)
	}
	if q.Min != nil && n < *q.Min {
		return invalid(ReasonBelowMinimum)
	}
	if q.Max != nil && n > *q.Max {
		return invalid(ReasonAboveMaximum)
	}
	return valid()
}

func validateText(q Question, v Answer) Result {
	if v.Kind != KindText {
		return invalid(ReasonInvalidType)
	}
	if q.MaxLength != nil && utf8.RuneCountInString(v.Text) > *q.MaxLength {
		return invalid(ReasonTooLong)
	}
	return valid()
}

// AsNumber returns the finite number held by v. Text answers are parsed, so
// "15" is a number and "abc" is not.
func AsNumber(v Answer) (float64, bool) {
	var n float64
	switch v.Kind {
	case KindNumber:
		n = v.Number
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// ValidateSubmission validates the answers of every visible question and
// returns the failures keyed by question id. Hidden questions are skipped
// whatever their required flag.
func ValidateSubmission(a Assessment, r Responses) map[string]string {
	visible := VisibleQuestions(a, r)
	failures := make(map[string]string)
	for _, q := range a.Questions() {
		if !visible[q.ID] {
			continue
		}
		if res := Validate(q, r[q.ID]); !res.Valid {
			failures[q.ID] = res.Reason
		}
	}
	return failures
}

// VisibleResponses keeps only the answers to visible questions. Answers to
// unknown or hidden questions are dropped.
func VisibleResponses(a Assessment, r Responses) Responses {
	visible := VisibleQuestions(a, r)
	out := make(Responses, len(visible))
	for id, ans := range r {
		if visible[id] && !ans.IsEmpty() {
			out[id] = ans
		}
	}
	return out
}
