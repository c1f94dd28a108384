// Package duplicates groups QA scenarios into redundancy tiers.
package duplicates

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/c360studio/speccover/scenario"
	"github.com/c360studio/speccover/similarity"
)

// Tier labels a duplicate group's redundancy level.
type Tier string

// Duplicate tiers, from strongest to weakest signal.
const (
	TierExact  Tier = "exact"
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
)

// Config holds the clusterer's tier thresholds.
type Config struct {
	// HighThreshold is the composite similarity gate for the high tier.
	HighThreshold float64 `yaml:"high_threshold"`

	// MediumThreshold is the composite gate for the medium tier.
	MediumThreshold float64 `yaml:"medium_threshold"`

	// MediumStepGate is the secondary step-similarity gate the medium
	// tier additionally requires; a single weaker signal is not trusted
	// alone at that tier.
	MediumStepGate float64 `yaml:"medium_step_gate"`
}

// DefaultConfig returns the clusterer defaults.
func DefaultConfig() Config {
	return Config{
		HighThreshold:   0.80,
		MediumThreshold: 0.70,
		MediumStepGate:  0.60,
	}
}

// Sequence is an explicit, injected counter for group ID assignment.
// Passing one per analysis run keeps IDs reproducible and keeps parallel
// analyses from interfering through shared process-wide state.
type Sequence struct {
	n int
}

// Next returns the next value, starting at 1.
func (s *Sequence) Next() int {
	s.n++
	return s.n
}

// Group is one set of redundant QA scenarios. It holds titles by value
// and lives only for the analysis run that produced it.
type Group struct {
	ID         string   `json:"id"`
	Tier       Tier     `json:"tier"`
	Titles     []string `json:"titles"`
	Similarity int      `json:"similarity"`
	Reason     string   `json:"reason"`
	Insight    string   `json:"insight"`
}

// Report summarizes the duplicate structure of a QA set.
type Report struct {
	Groups         []Group `json:"groups"`
	TotalScenarios int     `json:"total_scenarios"`
	// DuplicateCount is the number of removable scenarios: sum of
	// (group size - 1) across groups, one keeper per group.
	DuplicateCount int `json:"duplicate_count"`
	// OptimizationPercent is DuplicateCount over the total, capped at 50.
	OptimizationPercent int `json:"optimization_percent"`
}

// Clusterer groups QA scenarios into similarity tiers.
type Clusterer struct {
	cfg    Config
	logger *slog.Logger
}

// NewClusterer creates a duplicate clusterer.
func NewClusterer(cfg Config) *Clusterer {
	return &Clusterer{cfg: cfg, logger: slog.Default()}
}

// SetLogger sets the logger for the clusterer.
func (c *Clusterer) SetLogger(logger *slog.Logger) {
	c.logger = logger
}

// Cluster runs three sequential passes over the QA set. Each pass only
// considers scenarios not yet grouped by an earlier pass, so every
// scenario belongs to at most one tier.
func (c *Clusterer) Cluster(qa []*scenario.Scenario, seq *Sequence) *Report {
	if seq == nil {
		seq = &Sequence{}
	}
	report := &Report{TotalScenarios: len(qa)}
	grouped := make([]bool, len(qa))

	c.exactPass(qa, grouped, seq, report)
	c.compositePass(qa, grouped, seq, report, TierHigh)
	c.compositePass(qa, grouped, seq, report, TierMedium)

	for _, g := range report.Groups {
		report.DuplicateCount += len(g.Titles) - 1
	}
	if report.TotalScenarios > 0 {
		pct := int(math.Round(float64(report.DuplicateCount) / float64(report.TotalScenarios) * 100))
		if pct > 50 {
			pct = 50
		}
		report.OptimizationPercent = pct
	}

	c.logger.Info("duplicate clustering complete",
		"qa", len(qa),
		"groups", len(report.Groups),
		"duplicates", report.DuplicateCount)
	return report
}

// exactPass unions scenarios whose normalized titles are identical.
func (c *Clusterer) exactPass(qa []*scenario.Scenario, grouped []bool, seq *Sequence, report *Report) {
	byTitle := make(map[string][]int)
	order := make([]string, 0, len(qa))
	for i, s := range qa {
		key := normalizeTitle(s.Title)
		if len(byTitle[key]) == 0 {
			order = append(order, key)
		}
		byTitle[key] = append(byTitle[key], i)
	}

	for _, key := range order {
		members := byTitle[key]
		if len(members) < 2 {
			continue
		}
		titles := make([]string, len(members))
		for k, i := range members {
			titles[k] = qa[i].Title
			grouped[i] = true
		}
		report.Groups = append(report.Groups, Group{
			ID:         fmt.Sprintf("DUP-%d", seq.Next()),
			Tier:       TierExact,
			Titles:     titles,
			Similarity: 100,
			Reason:     "Identical scenario titles",
			Insight:    "Merge these scenarios or parameterize their shared steps; only one needs to remain.",
		})
	}
}

// compositePass seeds a group from each ungrouped scenario and unions
// every later ungrouped scenario whose composite similarity clears the
// tier's gate.
func (c *Clusterer) compositePass(qa []*scenario.Scenario, grouped []bool, seq *Sequence, report *Report, tier Tier) {
	threshold := c.cfg.HighThreshold
	if tier == TierMedium {
		threshold = c.cfg.MediumThreshold
	}

	for i := range qa {
		if grouped[i] {
			continue
		}
		members := []int{i}
		for j := i + 1; j < len(qa); j++ {
			if grouped[j] {
				continue
			}
			sim := compositeSimilarity(qa[i], qa[j])
			if sim < threshold {
				continue
			}
			if tier == TierMedium &&
				similarity.StepOverlapScore(qa[i].Steps, qa[j].Steps) < c.cfg.MediumStepGate {
				continue
			}
			members = append(members, j)
		}
		if len(members) < 2 {
			continue
		}

		// The reported similarity averages every member pair, not just
		// the seed's pairs.
		var pairSims []float64
		for x := 0; x < len(members); x++ {
			for y := x + 1; y < len(members); y++ {
				pairSims = append(pairSims, compositeSimilarity(qa[members[x]], qa[members[y]]))
			}
		}

		titles := make([]string, len(members))
		for k, idx := range members {
			titles[k] = qa[idx].Title
			grouped[idx] = true
		}
		report.Groups = append(report.Groups, Group{
			ID:         fmt.Sprintf("DUP-%d", seq.Next()),
			Tier:       tier,
			Titles:     titles,
			Similarity: averagePercent(pairSims),
			Reason:     tierReason(tier, averagePercent(pairSims)),
			Insight:    tierInsight(tier),
		})
	}
}

// compositeSimilarity is the clusterer's pair score: equal parts title
// token similarity and positional step similarity.
func compositeSimilarity(a, b *scenario.Scenario) float64 {
	return 0.5*similarity.TitleScore(a.Title, b.Title) +
		0.5*similarity.StepPositionalScore(a.Steps, b.Steps)
}

func tierReason(tier Tier, pct int) string {
	if tier == TierHigh {
		return fmt.Sprintf("Titles and step flows overlap at %d%% composite similarity", pct)
	}
	return fmt.Sprintf("Moderate composite similarity (%d%%) with overlapping step content", pct)
}

func tierInsight(tier Tier) string {
	if tier == TierHigh {
		return "Consolidate into a single parameterized scenario covering the shared flow."
	}
	return "Review whether these scenarios exercise genuinely distinct behavior before merging."
}

// averagePercent is the mean pairwise similarity as a whole percent.
func averagePercent(sims []float64) int {
	if len(sims) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sims {
		sum += s
	}
	return int(math.Round(sum / float64(len(sims)) * 100))
}

// normalizeTitle lowercases and collapses whitespace for exact-tier
// comparison.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
