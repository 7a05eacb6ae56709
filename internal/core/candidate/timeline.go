package candidate

import (
	"fmt"
	"strings"
	"time"
)

// AppliedNote is the note on the entry recorded when a candidate is created.
const AppliedNote = "Applied to job"

// DefaultStageNote is the note used when a stage change carries none.
func DefaultStageNote(s Stage) string {
	return fmt.Sprintf("Moved to %s stage", s)
}

// OnCreated returns the first timeline entry of a new candidate.
func OnCreated(candidateID string, now time.Time) TimelineEntry {
	return TimelineEntry{
		CandidateID: candidateID,
		Kind:        EventStageChange,
		Stage:       InitialStage(),
		Notes:       AppliedNote,
		CreatedAt:   now,
	}
}

// OnStageChange returns the entry for an accepted stage change. It returns
// false, and no entry, when the stage did not change. The entry ID is left
// for the caller to assign.
func OnStageChange(candidateID string, oldStage, newStage Stage, note string, now time.Time) (TimelineEntry, bool) {
	if oldStage == newStage {
		return TimelineEntry{}, false
	}
	note = strings.TrimSpace(note)
	if note == "" {
		note = DefaultStageNote(newStage)
	}
	return TimelineEntry{
		CandidateID: candidateID,
		Kind:        EventStageChange,
		Stage:       newStage,
		Notes:       note,
		CreatedAt:   now,
	}, true
}

// OnNoteAdded returns the entry for a notes-only update. Blank notes produce
// no entry.
func OnNoteAdded(candidateID string, stage Stage, note string, now time.Time) (TimelineEntry, bool) {
	note = strings.TrimSpace(note)
	if note == "" {
		return TimelineEntry{}, false
	}
	return TimelineEntry{
		CandidateID: candidateID,
		Kind:        EventNoteAdded,
		Stage:       stage,
		Notes:       note,
		CreatedAt:   now,
	}, true
}

// Update describes a candidate patch. Nil fields are not part of the patch.
type Update struct {
	Name  *string
	Email *string
	Stage *Stage
	Notes *string
}

// PlanUpdate applies a patch to the current candidate and returns the new
// state plus the timeline entry it produces, if any. A patch with both a
// stage change and notes yields one stage_change entry carrying the notes.
// A patch that keeps the stage but carries notes yields a note_added entry.
func PlanUpdate(current Candidate, u Update, now time.Time) (Candidate, *TimelineEntry) {
	next := current
	if u.Name != nil {
		next.Name = strings.TrimSpace(*u.Name)
	}
	if u.Email != nil {
		next.Email = strings.TrimSpace(*u.Email)
	}
	if u.Stage != nil {
		next.Stage = *u.Stage
	}
	next.UpdatedAt = now

	note := ""
	if u.Notes != nil {
		note = *u.Notes
	}

	if entry, ok := OnStageChange(current.ID, current.Stage, next.Stage, note, now); ok {
		return next, &entry
	}
	if entry, ok := OnNoteAdded(current.ID, next.Stage, note, now); ok {
		return next, &entry
	}
	return next, nil
}
