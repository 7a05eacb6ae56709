package cli

import (
	"strings"
	"testing"
)

func TestValidateEntityID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		entityType string
		wantErr    string
	}{
		{name: "valid job", id: "JOB-001", entityType: "job"},
		{name: "valid candidate", id: "CAND-042", entityType: "candidate"},
		{name: "empty is allowed", id: "", entityType: "job"},
		{name: "unknown entity skipped", id: "whatever", entityType: "submission"},
		{name: "short id", id: "7", entityType: "job", wantErr: "Use full ID format: JOB-7"},
		{name: "wrong case", id: "cand-001", entityType: "candidate", wantErr: "use: CAND-001"},
		{name: "wrong prefix", id: "JOB-001", entityType: "candidate", wantErr: "Expected format: CAND-xxx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEntityID(tt.id, tt.entityType)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
