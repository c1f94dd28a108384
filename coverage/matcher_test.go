package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/speccover/scenario"
	"github.com/c360studio/speccover/similarity"
)

func newTestMatcher(cfg Config) *Matcher {
	return NewMatcher(similarity.NewEngine(), cfg)
}

func titled(titles ...string) []*scenario.Scenario {
	out := make([]*scenario.Scenario, len(titles))
	for i, t := range titles {
		out[i] = &scenario.Scenario{Title: t}
	}
	return out
}

func TestMatcher_Threshold_Arithmetic(t *testing.T) {
	m := newTestMatcher(DefaultConfig())
	plain := &scenario.Scenario{Title: "User saves the profile form"}
	flagged := &scenario.Scenario{Title: "Dark mode flag is enabled"}

	tests := []struct {
		name  string
		src   *scenario.Scenario
		ratio float64
		want  float64
	}{
		{"balanced ratio keeps base", plain, 1.0, 0.70},
		{"severe under-coverage lowers by 0.10", plain, 0.4, 0.60},
		{"mild under-coverage lowers by 0.05", plain, 0.7, 0.65},
		{"qa surplus raises by 0.05", plain, 2.0, 0.75},
		{"ratio at boundary keeps base", plain, 0.8, 0.70},
		{"domain state lowers by 0.05", flagged, 1.0, 0.65},
		{"domain state stacks with under-coverage", flagged, 0.4, 0.55},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.Threshold(tt.src, tt.ratio), 1e-9)
		})
	}
}

func TestMatcher_Threshold_Clamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaseThreshold = 0.58
	m := newTestMatcher(cfg)

	// 0.58 - 0.10 - 0.05 would be 0.43; the floor holds at 0.55.
	flagged := &scenario.Scenario{Title: "Dark mode flag is enabled"}
	assert.InDelta(t, cfg.MinThreshold, m.Threshold(flagged, 0.4), 1e-9)

	cfg = DefaultConfig()
	cfg.BaseThreshold = 0.79
	m = newTestMatcher(cfg)
	plain := &scenario.Scenario{Title: "User saves the profile form"}
	assert.InDelta(t, cfg.MaxThreshold, m.Threshold(plain, 2.0), 1e-9)
}

func TestMatcher_Match_BorderlinePairUsesBaseThreshold(t *testing.T) {
	m := newTestMatcher(DefaultConfig())

	source := titled("User logs in with valid credentials")
	qa := titled("User Login - Success")

	result := m.Match(source, qa)
	require.Len(t, result.Matches, 1)

	// One source against one QA scenario is a balanced ratio, so the
	// threshold is exactly the base value.
	match := result.Matches[0]
	assert.InDelta(t, 0.70, match.Threshold, 1e-9)
	assert.Equal(t, "User Login - Success", match.QATitle)
	assert.Equal(t, match.Similarity >= match.Threshold, match.Covered)
}

func TestMatcher_Match_EmptySource(t *testing.T) {
	m := newTestMatcher(DefaultConfig())
	result := m.Match(nil, titled("Some QA scenario"))

	assert.Equal(t, 0, result.CoveragePercent)
	assert.Empty(t, result.Matches)
	assert.Equal(t, []string{"Some QA scenario"}, result.UnmatchedQA)
}

func TestMatcher_Match_EmptyQA(t *testing.T) {
	m := newTestMatcher(DefaultConfig())
	result := m.Match(titled("First behavior", "Second behavior"), nil)

	assert.Equal(t, 0, result.CoveragePercent)
	assert.Equal(t, 0, result.MatchedCount)
	require.Len(t, result.Matches, 2)
	for _, match := range result.Matches {
		assert.False(t, match.Covered)
		assert.Empty(t, match.QATitle)
	}
	assert.Equal(t, []string{"First behavior", "Second behavior"}, result.MissingTitles)
}

func TestMatcher_Match_ManyToOneSharesQA(t *testing.T) {
	m := newTestMatcher(DefaultConfig())

	source := titled("User logs in with valid credentials", "User logs in with saved credentials")
	qa := titled("User logs in with valid credentials")

	result := m.Match(source, qa)
	assert.Equal(t, 2, result.MatchedCount)
	assert.Equal(t, 100, result.CoveragePercent)
	assert.Empty(t, result.UnmatchedQA)
}

func TestMatcher_Match_AtMostOneClaimsOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy = PolicyAtMostOne
	m := newTestMatcher(cfg)

	source := titled("User logs in with valid credentials", "User logs in with valid credentials (2)")
	qa := titled("User logs in with valid credentials")

	result := m.Match(source, qa)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Len(t, result.MissingTitles, 1)
	assert.Empty(t, result.UnmatchedQA)
}

func TestMatcher_Match_UnmatchedQAListed(t *testing.T) {
	m := newTestMatcher(DefaultConfig())

	source := titled("User logs in with valid credentials")
	qa := titled("User logs in with valid credentials", "Totally unrelated quantum rocket")

	result := m.Match(source, qa)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Equal(t, []string{"Totally unrelated quantum rocket"}, result.UnmatchedQA)
}

func TestMatcher_Match_CoverageNeverDropsWhenQAGrows(t *testing.T) {
	m := newTestMatcher(DefaultConfig())

	source := titled("User logs in with valid credentials", "Checkout applies a discount code")
	qa := titled("User logs in with valid credentials")

	before := m.Match(source, qa).CoveragePercent
	grown := append(qa, titled("An unrelated moonlight sonata")...)
	after := m.Match(source, grown).CoveragePercent

	assert.GreaterOrEqual(t, after, before)
}

func TestMatcher_Match_DuplicateQADoesNotRaiseThresholds(t *testing.T) {
	m := newTestMatcher(DefaultConfig())

	source := titled("User logs in with valid credentials", "Checkout applies a discount code")
	qa := titled(
		"User Login - Success",
		"Checkout applies a discount code",
		"Quantum rocket launches tomorrow",
	)

	// Three distinct QA scenarios against two source scenarios is a
	// ratio of exactly 1.5, which keeps the base threshold.
	before := m.Match(source, qa)
	require.Len(t, before.Matches, 2)
	for _, match := range before.Matches {
		assert.InDelta(t, 0.70, match.Threshold, 1e-9)
	}

	// An exact duplicate of the unmatched QA scenario adds no distinct
	// title, so the ratio and every threshold stay put and borderline
	// matches keep their classification.
	grown := append(qa, titled("Quantum rocket launches tomorrow")...)
	after := m.Match(source, grown)
	require.Len(t, after.Matches, 2)
	for _, match := range after.Matches {
		assert.InDelta(t, 0.70, match.Threshold, 1e-9)
	}
	assert.GreaterOrEqual(t, after.CoveragePercent, before.CoveragePercent)
}

func TestMatcher_Match_FastPathAbovePairLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QuickScorePairs = 1
	m := newTestMatcher(cfg)

	source := titled("User logs in", "User logs out")
	qa := titled("User logs in", "User logs out")

	result := m.Match(source, qa)
	assert.True(t, result.FastPath)
	assert.Equal(t, 4, result.Evaluations)
	assert.Equal(t, 100, result.CoveragePercent)
}

func TestMatcher_Match_NegativePairLimitDisablesFastPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.QuickScorePairs = -1
	m := newTestMatcher(cfg)

	source := titled("User logs in", "User logs out")
	qa := titled("User logs in", "User logs out")

	result := m.Match(source, qa)
	assert.False(t, result.FastPath)
	assert.Equal(t, 100, result.CoveragePercent)
}

func TestMatcher_Match_CoveragePercentRounds(t *testing.T) {
	m := newTestMatcher(DefaultConfig())

	source := titled(
		"User logs in with valid credentials",
		"Moonlight sonata plays softly",
		"Quantum rocket launches tomorrow",
	)
	qa := titled("User logs in with valid credentials")

	result := m.Match(source, qa)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Equal(t, 33, result.CoveragePercent)
}
