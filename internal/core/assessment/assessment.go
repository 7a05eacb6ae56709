// Package assessment contains the pure business logic for per-job assessments:
// the schema, the conditional visibility evaluator and the answer validator.
// This is part of the Functional Core - no I/O, only pure functions.
package assessment

import (
	"time"
)

// QuestionType identifies how a question is answered.
type QuestionType string

const (
	TypeShortText    QuestionType = "short-text"
	TypeLongText     QuestionType = "long-text"
	TypeNumeric      QuestionType = "numeric"
	TypeSingleChoice QuestionType = "single-choice"
	TypeMultiChoice  QuestionType = "multi-choice"
	TypeFileUpload   QuestionType = "file-upload"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeShortText, TypeLongText, TypeNumeric, TypeSingleChoice, TypeMultiChoice, TypeFileUpload:
		return true
	}
	return false
}

// IsText reports whether t takes free text.
func (t QuestionType) IsText() bool {
	return t == TypeShortText || t == TypeLongText
}

// IsChoice reports whether t is answered from a declared option list.
func (t QuestionType) IsChoice() bool {
	return t == TypeSingleChoice || t == TypeMultiChoice
}

// Condition is the predicate of a conditional clause.
type Condition string

const (
	CondEquals    Condition = "equals"
	CondNotEquals Condition = "not_equals"
	CondContains  Condition = "contains"
)

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool {
	return c == CondEquals || c == CondNotEquals || c == CondContains
}

// Option is one declared choice of a single- or multi-choice question.
type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Conditional makes a question visible only when the answer to DependsOn
// satisfies Condition against Value.
type Conditional struct {
	DependsOn string    `json:"dependsOn"`
	Condition Condition `json:"condition"`
	Value     Answer    `json:"value"`
}

// Question is a single assessment question.
// Min and Max apply to numeric questions, MaxLength to text questions and
// Options to choice questions.
type Question struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Text        string       `json:"text"`
	Required    bool         `json:"required"`
	Order       int          `json:"order"`
	Min         *float64     `json:"min,omitempty"`
	Max         *float64     `json:"max,omitempty"`
	MaxLength   *int         `json:"maxLength,omitempty"`
	Options     []Option     `json:"options,omitempty"`
	Conditional *Conditional `json:"conditional,omitempty"`
}

// HasOptionValue reports whether v is the value of a declared option.
func (q Question) HasOptionValue(v string) bool {
	for _, o := range q.Options {
		if o.Value == v {
			return true
		}
	}
	return false
}

// Section groups questions. Questions are kept in slice order.
type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
	Order       int        `json:"order"`
}

// Assessment is the question set attached to a single job.
type Assessment struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	Title     string    `json:"title"`
	Sections  []Section `json:"sections"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Questions returns every question in section order.
func (a Assessment) Questions() []Question {
	var out []Question
	for _, s := range a.Sections {
		out = append(out, s.Questions...)
	}
	return out
}

// Index returns the questions keyed by id. Ids are unique in a saved
// assessment; on duplicates the first occurrence wins.
func (a Assessment) Index() map[string]Question {
	idx := make(map[string]Question)
	for _, s := range a.Sections {
		for _, q := range s.Questions {
			if _, ok := idx[q.ID]; !ok {
				idx[q.ID] = q
			}
		}
	}
	return idx
}

// Responses maps a question id to the answer given for it.
type Responses map[string]Answer
