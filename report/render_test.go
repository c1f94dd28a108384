package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/speccover/analysis"
	"github.com/c360studio/speccover/coverage"
	"github.com/c360studio/speccover/duplicates"
)

func sampleRun() *analysis.Run {
	return &analysis.Run{
		ID: "0f8fad5b-d9cb-469f-a165-70867728950e",
		Coverage: &coverage.Result{
			SourceCount:     2,
			QACount:         2,
			MatchedCount:    1,
			CoveragePercent: 50,
			Matches: []coverage.Match{
				{SourceTitle: "User logs in", QATitle: "User Login - Success", Similarity: 0.91, Threshold: 0.70, Covered: true},
				{SourceTitle: "Password reset", Similarity: 0.31, Threshold: 0.70},
			},
			MissingTitles: []string{"Password reset"},
			UnmatchedQA:   []string{"Orphaned QA flow"},
		},
		Duplicates: &duplicates.Report{TotalScenarios: 2},
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON(sampleRun())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "0f8fad5b-d9cb-469f-a165-70867728950e", decoded["id"])
}

func TestRenderCoverage(t *testing.T) {
	out := RenderCoverage(sampleRun())

	assert.Contains(t, out, "Coverage Analysis")
	assert.Contains(t, out, "User logs in")
	assert.Contains(t, out, "User Login - Success")
	assert.Contains(t, out, "Password reset")
	assert.Contains(t, out, "Orphaned QA flow")
	assert.Contains(t, out, "50%")
	// The run ID is shown truncated.
	assert.Contains(t, out, "0f8fad5b")
	assert.NotContains(t, out, "70867728950e")
}

func TestRenderDuplicates(t *testing.T) {
	report := &duplicates.Report{
		TotalScenarios:      3,
		DuplicateCount:      1,
		OptimizationPercent: 33,
		Groups: []duplicates.Group{
			{
				ID:         "DUP-1",
				Tier:       duplicates.TierExact,
				Titles:     []string{"Same flow", "same flow"},
				Similarity: 100,
				Reason:     "Identical scenario titles",
				Insight:    "Merge these scenarios.",
			},
		},
	}

	out := RenderDuplicates(report)
	assert.Contains(t, out, "DUP-1")
	assert.Contains(t, out, "Exact tier")
	assert.Contains(t, out, "Same flow")
	assert.Contains(t, out, "Identical scenario titles")
	assert.Contains(t, out, "33%")
}

func TestRenderDuplicates_Empty(t *testing.T) {
	out := RenderDuplicates(&duplicates.Report{TotalScenarios: 4})
	assert.Contains(t, out, "No duplicate scenarios found.")
}

func TestCoverageSummary(t *testing.T) {
	res := sampleRun().Coverage
	got := CoverageSummary(res)
	assert.Equal(t, "1 of 2 source behaviors are covered by existing tests (50%). "+
		"1 behaviors have no acceptable QA match. "+
		"1 QA scenarios matched no source behavior and may be orphaned.", got)
}

func TestCoverageSummary_EmptySource(t *testing.T) {
	got := CoverageSummary(&coverage.Result{})
	assert.Equal(t, "No source scenarios were recovered; nothing to cover.", got)
}

func TestCoverageSummary_Deterministic(t *testing.T) {
	res := sampleRun().Coverage
	first := CoverageSummary(res)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, CoverageSummary(res))
	}
}
