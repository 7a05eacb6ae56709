// Package job contains the pure business logic for jobs: the schema, slug
// derivation, the dense ordering maintainer, and the guards.
// This is part of the Functional Core - no I/O, only pure functions.
package job

import (
	"regexp"
	"strings"
	"time"
)

// Status represents the lifecycle state of a job posting.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusArchived
}

// Job is a job posting. Order is its 1-based dense rank on the board.
type Job struct {
	ID        string
	Title     string
	Slug      string
	Status    Status
	Tags      []string
	Order     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL slug for a title: lowercase, runs of anything other
// than [a-z0-9] collapsed to "-", leading and trailing "-" removed.
// A title with no usable characters yields "".
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// InitialStatus returns the status of a freshly created job.
func InitialStatus() Status {
	return StatusActive
}

// NormalizeTags trims tags, drops empties and removes duplicates while
// keeping first-seen order. Tags are a set.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
