package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/talentflow/internal/core/assessment"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadAssessmentFile_YAML(t *testing.T) {
	path := writeFile(t, "assessment.yaml", `
title: Backend screening
sections:
  - id: s1
    title: Basics
    questions:
      - id: q1
        type: single-choice
        text: Open to relocation?
        required: true
        options:
          - {id: o1, text: "Yes", value: "Yes"}
          - {id: o2, text: "No", value: "No"}
      - id: q2
        type: numeric
        text: Years of Go
        min: 0
        max: 40
        conditional: {dependsOn: q1, condition: equals, value: "Yes"}
`)

	def, err := loadAssessmentFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if def.Title != "Backend screening" || len(def.Sections) != 1 {
		t.Fatalf("unexpected definition: %+v", def)
	}
	qs := def.Sections[0].Questions
	if len(qs) != 2 || qs[0].Type != assessment.TypeSingleChoice || len(qs[0].Options) != 2 {
		t.Fatalf("unexpected questions: %+v", qs)
	}
	if qs[1].Max == nil || *qs[1].Max != 40 {
		t.Errorf("expected max 40, got %v", qs[1].Max)
	}
	cond := qs[1].Conditional
	if cond == nil || cond.DependsOn != "q1" || !cond.Value.Equal(assessment.Text("Yes")) {
		t.Errorf("unexpected conditional: %+v", cond)
	}
}

func TestLoadAssessmentFile_Errors(t *testing.T) {
	if _, err := loadAssessmentFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := loadAssessmentFile(writeFile(t, "bad.yaml", "title: [unterminated")); err == nil {
		t.Error("expected error for malformed file")
	}
}

func TestLoadResponsesFile(t *testing.T) {
	path := writeFile(t, "responses.yaml", `
q1: "Yes"
q2: 7
q3: ["go", "rust"]
q4: {name: cv.pdf, size: 1024, type: application/pdf}
`)

	responses, err := loadResponsesFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !responses["q1"].Equal(assessment.Text("Yes")) {
		t.Errorf("q1 = %v", responses["q1"])
	}
	if !responses["q2"].Equal(assessment.Number(7)) {
		t.Errorf("q2 = %v", responses["q2"])
	}
	if !responses["q3"].Equal(assessment.List("go", "rust")) {
		t.Errorf("q3 = %v", responses["q3"])
	}
	if responses["q4"].Kind != assessment.KindFile || responses["q4"].File.Name != "cv.pdf" {
		t.Errorf("q4 = %+v", responses["q4"])
	}
}

func TestLoadResponsesFile_EmptyPath(t *testing.T) {
	responses, err := loadResponsesFile("")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(responses) != 0 {
		t.Errorf("expected no responses, got %v", responses)
	}
}

func TestLoadResponsesFile_RejectsBooleans(t *testing.T) {
	// Unquoted yes/no in YAML decode as booleans, which are not answers.
	if _, err := loadResponsesFile(writeFile(t, "bool.yaml", "q1: true\n")); err == nil {
		t.Error("expected boolean answer to be rejected")
	}
}
