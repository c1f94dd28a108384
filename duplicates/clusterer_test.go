package duplicates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/speccover/scenario"
)

func TestClusterer_Cluster_ExactTier(t *testing.T) {
	c := NewClusterer(DefaultConfig())

	qa := []*scenario.Scenario{
		{Title: "Feature Flag Toggle - Admin"},
		{Title: "feature flag toggle - admin"},
		{Title: "Password Reset Email"},
	}

	report := c.Cluster(qa, &Sequence{})
	require.Len(t, report.Groups, 1)

	g := report.Groups[0]
	assert.Equal(t, "DUP-1", g.ID)
	assert.Equal(t, TierExact, g.Tier)
	assert.Equal(t, 100, g.Similarity)
	assert.Equal(t, []string{"Feature Flag Toggle - Admin", "feature flag toggle - admin"}, g.Titles)

	assert.Equal(t, 3, report.TotalScenarios)
	assert.Equal(t, 1, report.DuplicateCount)
	assert.Equal(t, 33, report.OptimizationPercent)
}

func TestClusterer_Cluster_HighTier(t *testing.T) {
	c := NewClusterer(DefaultConfig())

	steps := []string{
		"Given a registered user",
		"When the user submits the login form",
		"Then the dashboard is displayed",
	}
	qa := []*scenario.Scenario{
		{Title: "User login with valid credentials", Steps: steps},
		{Title: "User login with correct credentials", Steps: steps},
	}

	report := c.Cluster(qa, &Sequence{})
	require.Len(t, report.Groups, 1)
	assert.Equal(t, TierHigh, report.Groups[0].Tier)
	assert.GreaterOrEqual(t, report.Groups[0].Similarity, 80)
}

func TestClusterer_Cluster_MediumRequiresStepOverlap(t *testing.T) {
	c := NewClusterer(DefaultConfig())

	// Titles align fully and the step flows share just their keywords, so
	// the composite lands in the medium band while the flat step-token
	// overlap stays below the secondary gate.
	qa := []*scenario.Scenario{
		{Title: "Export report", Steps: []string{
			"When admin exports revenue",
			"When admin reconciles billing",
		}},
		{Title: "Export report summary", Steps: []string{
			"When operator archives tickets",
			"When operator reviews charges",
		}},
	}

	report := c.Cluster(qa, &Sequence{})
	assert.Empty(t, report.Groups)
	assert.Equal(t, 0, report.DuplicateCount)
}

func TestClusterer_Cluster_MediumTier(t *testing.T) {
	c := NewClusterer(DefaultConfig())

	// Same steps in reverse order: positionally weak, but the flat token
	// bags are identical, so the secondary gate passes.
	qa := []*scenario.Scenario{
		{Title: "Export report", Steps: []string{
			"When admin exports revenue",
			"When operator reviews charges",
		}},
		{Title: "Export report summary", Steps: []string{
			"When operator reviews charges",
			"When admin exports revenue",
		}},
	}

	report := c.Cluster(qa, &Sequence{})
	require.Len(t, report.Groups, 1)
	assert.Equal(t, TierMedium, report.Groups[0].Tier)
	assert.Equal(t, 75, report.Groups[0].Similarity)
	assert.Equal(t, 1, report.DuplicateCount)
}

func TestClusterer_Cluster_TiersAreDisjoint(t *testing.T) {
	c := NewClusterer(DefaultConfig())

	steps := []string{"When the user saves the form", "Then a confirmation is shown"}
	qa := []*scenario.Scenario{
		{Title: "Save profile form", Steps: steps},
		{Title: "save PROFILE form", Steps: steps},
		{Title: "Save the profile form quickly", Steps: steps},
		{Title: "Save a profile form quickly", Steps: steps},
	}

	report := c.Cluster(qa, &Sequence{})

	// The case variants form an exact group, the remaining pair a high
	// group; no scenario may land in both.
	require.Len(t, report.Groups, 2)
	assert.Equal(t, TierExact, report.Groups[0].Tier)
	assert.Equal(t, TierHigh, report.Groups[1].Tier)

	seen := make(map[string]int)
	for _, g := range report.Groups {
		for _, title := range g.Titles {
			seen[title]++
		}
	}
	assert.Len(t, seen, len(qa))
	for title, n := range seen {
		assert.Equal(t, 1, n, "title %q appears in %d groups", title, n)
	}
}

func TestClusterer_Cluster_GroupSimilarityAveragesAllPairs(t *testing.T) {
	c := NewClusterer(DefaultConfig())

	steps := []string{"When the user submits the login form", "Then the dashboard is displayed"}
	qa := []*scenario.Scenario{
		{Title: "User logs in with valid credentials", Steps: steps},
		{Title: "User logs in with valid credentials!", Steps: steps},
		{Title: "User Login - Success", Steps: steps},
	}

	report := c.Cluster(qa, &Sequence{})
	require.Len(t, report.Groups, 1)

	g := report.Groups[0]
	require.Len(t, g.Titles, 3)

	// Pairwise composites are 1.0, 5/6 and 5/6; the reported similarity
	// averages the member-to-member pair too, not just the seed's pairs.
	assert.Equal(t, TierHigh, g.Tier)
	assert.Equal(t, 89, g.Similarity)
}

func TestClusterer_Cluster_SequenceAssignsOrderedIDs(t *testing.T) {
	c := NewClusterer(DefaultConfig())

	qa := []*scenario.Scenario{
		{Title: "Alpha flow"},
		{Title: "Alpha flow"},
		{Title: "Beta flow"},
		{Title: "Beta flow"},
	}

	report := c.Cluster(qa, &Sequence{})
	require.Len(t, report.Groups, 2)
	assert.Equal(t, "DUP-1", report.Groups[0].ID)
	assert.Equal(t, "DUP-2", report.Groups[1].ID)
}

func TestClusterer_Cluster_NilSequenceTolerated(t *testing.T) {
	c := NewClusterer(DefaultConfig())

	qa := []*scenario.Scenario{{Title: "Alpha flow"}, {Title: "Alpha flow"}}
	report := c.Cluster(qa, nil)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, "DUP-1", report.Groups[0].ID)
}

func TestClusterer_Cluster_EmptySet(t *testing.T) {
	c := NewClusterer(DefaultConfig())
	report := c.Cluster(nil, &Sequence{})

	assert.Empty(t, report.Groups)
	assert.Equal(t, 0, report.TotalScenarios)
	assert.Equal(t, 0, report.OptimizationPercent)
}

func TestClusterer_Cluster_OptimizationPercentCapped(t *testing.T) {
	c := NewClusterer(DefaultConfig())

	qa := []*scenario.Scenario{
		{Title: "Same flow"}, {Title: "Same flow"}, {Title: "Same flow"}, {Title: "Same flow"},
	}

	report := c.Cluster(qa, &Sequence{})
	assert.Equal(t, 3, report.DuplicateCount)
	assert.Equal(t, 50, report.OptimizationPercent)
}

func TestSequence_Next(t *testing.T) {
	var s Sequence
	assert.Equal(t, 1, s.Next())
	assert.Equal(t, 2, s.Next())

	// A fresh sequence restarts numbering independently.
	var other Sequence
	assert.Equal(t, 1, other.Next())
}
