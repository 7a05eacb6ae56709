// Package candidate contains the pure business logic for candidates: the
// pipeline stages, the timeline record and the stage transition tracker.
// This is part of the Functional Core - no I/O, only pure functions.
package candidate

import (
	"fmt"
	"strings"
	"time"
)

// Stage is a candidate's position in the hiring pipeline.
type Stage string

const (
	StageApplied  Stage = "applied"
	StageScreen   Stage = "screen"
	StageTech     Stage = "tech"
	StageOffer    Stage = "offer"
	StageHired    Stage = "hired"
	StageRejected Stage = "rejected"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageApplied, StageScreen, StageTech, StageOffer, StageHired, StageRejected}

// Valid reports whether s is a known stage.
func (s Stage) Valid() bool {
	for _, st := range Stages {
		if s == st {
			return true
		}
	}
	return false
}

// ParseStage converts user input into a Stage.
func ParseStage(s string) (Stage, error) {
	st := Stage(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid stage %q (must be one of %s)", s, stageList())
	}
	return st, nil
}

func stageList() string {
	names := make([]string, len(Stages))
	for i, s := range Stages {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// InitialStage returns the stage of a newly created candidate.
func InitialStage() Stage {
	return StageApplied
}

// Candidate is a person applying to a job.
type Candidate struct {
	ID        string
	Name      string
	Email     string
	Stage     Stage
	JobID     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventKind distinguishes timeline records.
type EventKind string

const (
	EventStageChange EventKind = "stage_change"
	EventNoteAdded   EventKind = "note_added"
)

// TimelineEntry is one immutable record in a candidate's history. Stage is
// the stage the candidate was in once the event happened.
type TimelineEntry struct {
	ID          string
	CandidateID string
	Kind        EventKind
	Stage       Stage
	Notes       string
	CreatedAt   time.Time
}
