package cmd

import (
	"errors"
	"strings"
	"testing"

	"gokwh/config"
	"gokwh/importer"
)

func TestResolveDBPath(t *testing.T) {
	cfg := &config.Config{Registry: config.RegistryConfig{DBPath: "from-config.db"}}

	if got := resolveDBPath("", cfg); got != "from-config.db" {
		t.Fatalf("empty flag should fall back to config, got %q", got)
	}
	if got := resolveDBPath("./override.db", cfg); got != "./override.db" {
		t.Fatalf("flag should win over config, got %q", got)
	}
	if got := resolveDBPath("   ", cfg); got != "from-config.db" {
		t.Fatalf("blank flag should fall back to config, got %q", got)
	}
}

func TestCountStatuses(t *testing.T) {
	results := []importer.FileResult{
		{Status: importer.StatusSuccess},
		{Status: importer.StatusSuccess},
		{Status: importer.StatusNeedsReview},
		{Status: importer.StatusSkipped},
		{Status: importer.StatusFailed},
	}

	success, review, skipped, failed := countStatuses(results)
	if success != 2 || review != 1 || skipped != 1 || failed != 1 {
		t.Fatalf("unexpected counts: success=%d review=%d skipped=%d failed=%d",
			success, review, skipped, failed)
	}
}

func TestDescribeFileResult(t *testing.T) {
	tests := []struct {
		name   string
		result importer.FileResult
		want   []string
	}{
		{
			name: "routed success",
			result: importer.FileResult{
				Path:       "MAIN-DB-2024-01.csv",
				Status:     importer.StatusSuccess,
				MeterID:    3,
				MeterName:  "Main DB",
				MatchScore: 92,
			},
			want: []string{"success", "MAIN-DB-2024-01.csv", "Main DB", "id 3", "score 92"},
		},
		{
			name: "failed with error",
			result: importer.FileResult{
				Path:   "garbage.csv",
				Status: importer.StatusFailed,
				Err:    errors.New("no header found"),
			},
			want: []string{"failed", "garbage.csv", "no header found"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := describeFileResult(tt.result)
			for _, fragment := range tt.want {
				if !strings.Contains(line, fragment) {
					t.Fatalf("expected %q in %q", fragment, line)
				}
			}
		})
	}
}
