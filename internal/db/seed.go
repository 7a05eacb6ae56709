package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/talentflow/internal/errs"

	"github.com/example/talentflow/internal/core/assessment"
	"github.com/example/talentflow/internal/core/candidate"
	"github.com/example/talentflow/internal/core/job"
)

var jobTitles = []string{
	"Senior Frontend Developer", "Full Stack Engineer", "React Developer", "Node.js Developer",
	"Python Developer", "Java Developer", "DevOps Engineer", "UI/UX Designer", "Product Manager",
	"Data Scientist", "Machine Learning Engineer", "Backend Developer", "Mobile Developer",
	"QA Engineer", "Technical Writer", "Solutions Architect", "Cloud Engineer", "Security Engineer",
	"Database Administrator", "System Administrator", "Business Analyst", "Project Manager",
	"Scrum Master", "Sales Engineer", "Marketing Manager",
}

var jobTags = []string{
	"React", "JavaScript", "TypeScript", "Node.js", "Python", "Java", "AWS", "Docker",
	"Kubernetes", "MongoDB", "PostgreSQL", "Redis", "GraphQL", "REST API", "Microservices",
	"Agile", "Scrum", "CI/CD", "Git", "Linux", "Frontend", "Backend", "Full Stack",
	"Mobile", "iOS", "Android", "Flutter", "React Native", "Vue.js", "Angular",
}

var firstNames = []string{
	"Ada", "Grace", "Alan", "Linus", "Margaret", "Ken", "Barbara", "Dennis", "Radia", "Edsger",
	"Frances", "John", "Katherine", "Tim", "Hedy", "Donald", "Sophie", "Niklaus", "Anita", "Guido",
}

var lastNames = []string{
	"Lovelace", "Hopper", "Turing", "Torvalds", "Hamilton", "Thompson", "Liskov", "Ritchie", "Perlman", "Dijkstra",
	"Allen", "McCarthy", "Johnson", "Berners-Lee", "Lamarr", "Knuth", "Wilson", "Wirth", "Borg", "van Rossum",
}

// stageNotes are the notes a seeded timeline uses for each stage.
var stageNotes = map[candidate.Stage]string{
	candidate.StageApplied:  candidate.AppliedNote,
	candidate.StageScreen:   "Passed initial screening",
	candidate.StageTech:     "Completed technical interview",
	candidate.StageOffer:    "Received job offer",
	candidate.StageHired:    "Hired for position",
	candidate.StageRejected: "Application rejected",
}

var questionTypes = []assessment.QuestionType{
	assessment.TypeSingleChoice, assessment.TypeMultiChoice, assessment.TypeShortText,
	assessment.TypeLongText, assessment.TypeNumeric, assessment.TypeFileUpload,
}

var questionTexts = []string{
	"Describe a project you are proud of?",
	"How many years of professional experience do you have?",
	"Which tools do you use daily?",
	"Have you worked in a remote team?",
	"What is your expected notice period?",
	"Upload a code sample or portfolio?",
	"How do you approach code review?",
	"Which environments have you deployed to?",
}

// SeedOptions controls the demo data set.
type SeedOptions struct {
	Jobs        int
	Candidates  int
	Assessments int
	Rand        *rand.Rand
	Now         time.Time
}

// DefaultSeedOptions mirrors the demo data set of the hosted UI.
func DefaultSeedOptions() SeedOptions {
	return SeedOptions{
		Jobs:        25,
		Candidates:  1000,
		Assessments: 3,
		Rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		Now:         time.Now().UTC(),
	}
}

// Validate rejects negative counts.
func (o SeedOptions) Validate() error {
	fields := make(map[string]string)
	for name, n := range map[string]int{"jobs": o.Jobs, "candidates": o.Candidates, "assessments": o.Assessments} {
		if n < 0 {
			fields[name] = fmt.Sprintf("must not be negative, got %d", n)
		}
	}
	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}

// SeedSummary reports what SeedDemo inserted.
type SeedSummary struct {
	Jobs            int
	Candidates      int
	TimelineEntries int
	Assessments     int
}

// SeedDemo wipes existing data and fills the database with demo jobs,
// candidates with consistent timelines, and assessments with conditional
// questions. Everything happens in one transaction.
func SeedDemo(database *sql.DB, opts SeedOptions) (*SeedSummary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(1))
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}
	rng := opts.Rand
	summary := &SeedSummary{}

	tx, err := database.Begin()
	if err != nil {
		return nil, fmt.Errorf("seed: begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"assessment_submissions", "assessments", "candidate_timeline", "candidates", "jobs"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return nil, fmt.Errorf("seed: clear %s: %w", table, err)
		}
	}

	jobIDs := make([]string, 0, opts.Jobs)
	for i := 0; i < opts.Jobs; i++ {
		title := jobTitles[i%len(jobTitles)]
		if i >= len(jobTitles) {
			title = fmt.Sprintf("%s %d", title, i/len(jobTitles)+1)
		}
		id := fmt.Sprintf("JOB-%03d", i+1)
		tags, err := json.Marshal(pick(rng, jobTags, 2+rng.Intn(4)))
		if err != nil {
			return nil, fmt.Errorf("seed jobs: %w", err)
		}
		status := job.StatusActive
		if rng.Intn(2) == 0 {
			status = job.StatusArchived
		}
		created := opts.Now.Add(-time.Duration(rng.Intn(730*24)) * time.Hour)
		if _, err := tx.Exec(
			"INSERT INTO jobs (id, title, slug, status, tags, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			id, title, job.Slugify(title), string(status), string(tags), i+1, created, opts.Now,
		); err != nil {
			return nil, fmt.Errorf("seed jobs: %w", err)
		}
		jobIDs = append(jobIDs, id)
	}
	summary.Jobs = len(jobIDs)

	for i := 0; i < opts.Candidates && len(jobIDs) > 0; i++ {
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		id := fmt.Sprintf("CAND-%03d", i+1)
		email := fmt.Sprintf("%s.%s%d@example.com",
			strings.ToLower(first), strings.ToLower(strings.ReplaceAll(last, " ", "")), i+1)
		history := stageHistory(rng)
		created := opts.Now.Add(-time.Duration(rng.Intn(365*24)) * time.Hour)
		at := created

		if _, err := tx.Exec(
			"INSERT INTO candidates (id, name, email, stage, job_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
			id, first+" "+last, email, string(history[len(history)-1]), jobIDs[rng.Intn(len(jobIDs))], created, created,
		); err != nil {
			return nil, fmt.Errorf("seed candidates: %w", err)
		}

		for _, stage := range history {
			if _, err := tx.Exec(
				"INSERT INTO candidate_timeline (id, candidate_id, kind, stage, notes, created_at) VALUES (?, ?, ?, ?, ?, ?)",
				uuid.NewString(), id, string(candidate.EventStageChange), string(stage), stageNotes[stage], at,
			); err != nil {
				return nil, fmt.Errorf("seed timeline: %w", err)
			}
			summary.TimelineEntries++
			at = at.Add(time.Duration(1+rng.Intn(72)) * time.Hour)
		}
		summary.Candidates++
	}

	for i, idx := range rng.Perm(len(jobIDs)) {
		if i >= opts.Assessments {
			break
		}
		jobID := jobIDs[idx]
		sections, err := json.Marshal(demoSections(rng))
		if err != nil {
			return nil, fmt.Errorf("seed assessments: %w", err)
		}
		if _, err := tx.Exec(
			"INSERT INTO assessments (id, job_id, title, sections, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
			fmt.Sprintf("ASMT-%03d", i+1), jobID, "Assessment for "+jobTitles[idx%len(jobTitles)], string(sections), opts.Now, opts.Now,
		); err != nil {
			return nil, fmt.Errorf("seed assessments: %w", err)
		}
		summary.Assessments++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("seed: commit: %w", err)
	}
	return summary, nil
}

// stageHistory walks the pipeline from applied to a random stopping point;
// some candidates are rejected on the way.
func stageHistory(rng *rand.Rand) []candidate.Stage {
	pipeline := []candidate.Stage{
		candidate.StageApplied, candidate.StageScreen, candidate.StageTech,
		candidate.StageOffer, candidate.StageHired,
	}
	n := 1 + rng.Intn(len(pipeline))
	history := append([]candidate.Stage{}, pipeline[:n]...)
	if n < len(pipeline) && rng.Intn(4) == 0 {
		history = append(history, candidate.StageRejected)
	}
	return history
}

func demoSections(rng *rand.Rand) []assessment.Section {
	count := 2 + rng.Intn(3)
	sections := make([]assessment.Section, count)
	for s := range sections {
		sections[s] = assessment.Section{
			ID:          fmt.Sprintf("section_%d", s),
			Title:       fmt.Sprintf("Part %d", s+1),
			Description: "Answer every question that applies to you.",
			Order:       s,
			Questions:   demoQuestions(rng, s),
		}
	}
	return sections
}

// The first question of a section is a Yes/No gate; later questions may
// depend on it, so the dependency graph never loops.
func demoQuestions(rng *rand.Rand, section int) []assessment.Question {
	count := 3 + rng.Intn(6)
	questions := make([]assessment.Question, count)
	gate := fmt.Sprintf("q_%d_0", section)

	for i := range questions {
		id := fmt.Sprintf("q_%d_%d", section, i)
		q := assessment.Question{
			ID:       id,
			Text:     questionTexts[rng.Intn(len(questionTexts))],
			Required: rng.Intn(2) == 0,
			Order:    i,
		}
		if i == 0 {
			q.Type = assessment.TypeSingleChoice
			q.Text = "Do you meet the core requirements for this role?"
			q.Required = true
			q.Options = []assessment.Option{
				{ID: fmt.Sprintf("opt_%d_0_0", section), Text: "Yes", Value: "Yes"},
				{ID: fmt.Sprintf("opt_%d_0_1", section), Text: "No", Value: "No"},
			}
			questions[i] = q
			continue
		}

		q.Type = questionTypes[rng.Intn(len(questionTypes))]
		switch q.Type {
		case assessment.TypeSingleChoice, assessment.TypeMultiChoice:
			n := 2 + rng.Intn(4)
			for o := 0; o < n; o++ {
				q.Options = append(q.Options, assessment.Option{
					ID:    fmt.Sprintf("opt_%d_%d_%d", section, i, o),
					Text:  fmt.Sprintf("Option %d", o+1),
					Value: fmt.Sprintf("option_%d", o),
				})
			}
		case assessment.TypeNumeric:
			lo, hi := float64(rng.Intn(11)), float64(20+rng.Intn(81))
			q.Min, q.Max = &lo, &hi
		case assessment.TypeShortText:
			n := 100
			q.MaxLength = &n
		case assessment.TypeLongText:
			n := 500
			q.MaxLength = &n
		}
		if rng.Intn(2) == 0 {
			q.Conditional = &assessment.Conditional{
				DependsOn: gate,
				Condition: assessment.CondEquals,
				Value:     assessment.Text("Yes"),
			}
		}
		questions[i] = q
	}
	return questions
}

func pick(rng *rand.Rand, from []string, n int) []string {
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(from))[:n] {
		out = append(out, from[i])
	}
	return out
}
