// Package coverage matches source behavior scenarios against QA
// scenarios and classifies each as covered or missing.
package coverage

import (
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/c360studio/speccover/scenario"
	"github.com/c360studio/speccover/similarity"
)

// Policy controls how many source scenarios may claim one QA scenario.
type Policy string

// Match policies. Many-to-one models "one QA test covers several
// behaviors" and is the default; at-most-one surfaces over-reliance on a
// single QA test.
const (
	PolicyManyToOne Policy = "many-to-one"
	PolicyAtMostOne Policy = "at-most-one"
)

// Config holds the matcher's threshold and policy settings.
type Config struct {
	// BaseThreshold is the starting similarity cutoff before dataset
	// shape and content adjustments.
	BaseThreshold float64 `yaml:"base_threshold"`

	// MinThreshold and MaxThreshold clamp the per-scenario dynamic
	// threshold.
	MinThreshold float64 `yaml:"min_threshold"`
	MaxThreshold float64 `yaml:"max_threshold"`

	// Policy selects many-to-one or at-most-one matching.
	Policy Policy `yaml:"policy"`

	// QuickScorePairs is the |source|x|QA| product above which the
	// engine's fast path keeps the run interactive. A negative value
	// disables the fast path.
	QuickScorePairs int `yaml:"quick_score_pairs"`
}

// DefaultConfig returns the matcher defaults.
func DefaultConfig() Config {
	return Config{
		BaseThreshold:   0.70,
		MinThreshold:    0.55,
		MaxThreshold:    0.80,
		Policy:          PolicyManyToOne,
		QuickScorePairs: 250_000,
	}
}

// Match pairs one source scenario with its best QA scenario, the
// similarity found, and the threshold that was applied. QATitle is
// empty when no QA scenario was scanned or the policy left none free.
type Match struct {
	SourceTitle string  `json:"source_title"`
	QATitle     string  `json:"qa_title,omitempty"`
	Similarity  float64 `json:"similarity"`
	Threshold   float64 `json:"threshold"`
	Covered     bool    `json:"covered"`
}

// Result is the outcome of one coverage run. It holds scenario titles by
// value and is discarded when a new analysis begins.
type Result struct {
	Matches         []Match  `json:"matches"`
	SourceCount     int      `json:"source_count"`
	QACount         int      `json:"qa_count"`
	MatchedCount    int      `json:"matched_count"`
	CoveragePercent int      `json:"coverage_percent"`
	MissingTitles   []string `json:"missing_titles,omitempty"`
	UnmatchedQA     []string `json:"unmatched_qa,omitempty"`
	Evaluations     int      `json:"evaluations"`
	FastPath        bool     `json:"fast_path"`
}

// Matcher classifies source scenarios as covered or missing.
type Matcher struct {
	engine *similarity.Engine
	cfg    Config
	logger *slog.Logger
}

// NewMatcher creates a coverage matcher.
func NewMatcher(engine *similarity.Engine, cfg Config) *Matcher {
	return &Matcher{engine: engine, cfg: cfg, logger: slog.Default()}
}

// SetLogger sets the logger for the matcher.
func (m *Matcher) SetLogger(logger *slog.Logger) {
	m.logger = logger
}

// Match scans the full QA set for every source scenario, retains the
// arg-max similarity, and classifies against the per-scenario dynamic
// threshold. Empty inputs are valid: an empty source set yields 0%
// coverage, an empty QA set yields all source scenarios missing.
func (m *Matcher) Match(source, qa []*scenario.Scenario) *Result {
	result := &Result{
		Matches:     make([]Match, 0, len(source)),
		SourceCount: len(source),
		QACount:     len(qa),
	}

	fastPath := len(source)*len(qa) > m.cfg.QuickScorePairs && m.cfg.QuickScorePairs > 0
	result.FastPath = fastPath
	score := m.engine.Score
	if fastPath {
		score = m.engine.QuickScore
		m.logger.Debug("coverage matcher using fast-path scoring",
			"source", len(source), "qa", len(qa))
	}

	ratio := 0.0
	if len(source) > 0 {
		ratio = float64(distinctQACount(qa)) / float64(len(source))
	}

	bestQA := make([]int, len(source))
	bestSim := make([]float64, len(source))
	for i, src := range source {
		bestQA[i] = -1
		for j, q := range qa {
			s := score(src, q)
			result.Evaluations++
			if s > bestSim[i] || bestQA[i] == -1 {
				bestSim[i], bestQA[i] = s, j
			}
		}
	}

	switch m.cfg.Policy {
	case PolicyAtMostOne:
		m.matchAtMostOne(source, qa, score, bestQA, bestSim, ratio, result)
	default:
		m.matchManyToOne(source, qa, bestQA, bestSim, ratio, result)
	}

	result.CoveragePercent = coveragePercent(result.MatchedCount, result.SourceCount)
	m.logger.Info("coverage matching complete",
		"source", result.SourceCount,
		"qa", result.QACount,
		"matched", result.MatchedCount,
		"coverage_percent", result.CoveragePercent,
		"policy", string(m.cfg.Policy))
	return result
}

// matchManyToOne lets any number of source scenarios share a QA best match.
func (m *Matcher) matchManyToOne(source, qa []*scenario.Scenario, bestQA []int, bestSim []float64, ratio float64, result *Result) {
	claimed := make(map[int]bool)
	for i, src := range source {
		t := m.Threshold(src, ratio)
		match := Match{SourceTitle: src.Title, Threshold: t, Similarity: bestSim[i]}
		if bestQA[i] >= 0 {
			match.QATitle = qa[bestQA[i]].Title
		}
		if bestQA[i] >= 0 && bestSim[i] >= t {
			match.Covered = true
			result.MatchedCount++
			claimed[bestQA[i]] = true
		} else {
			result.MissingTitles = append(result.MissingTitles, src.Title)
		}
		result.Matches = append(result.Matches, match)
	}
	result.UnmatchedQA = unclaimedTitles(qa, claimed)
}

// matchAtMostOne claims each QA scenario for a single source scenario,
// strongest pairing first. Sources whose candidates are all claimed fall
// back to their next-best free QA scenario above threshold.
func (m *Matcher) matchAtMostOne(source, qa []*scenario.Scenario, score func(a, b *scenario.Scenario) float64, bestQA []int, bestSim []float64, ratio float64, result *Result) {
	order := make([]int, len(source))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool {
		return bestSim[order[x]] > bestSim[order[y]]
	})

	claimed := make(map[int]bool)
	matches := make([]Match, len(source))
	for _, i := range order {
		src := source[i]
		t := m.Threshold(src, ratio)
		match := Match{SourceTitle: src.Title, Threshold: t}

		bestJ, best := -1, 0.0
		for j, q := range qa {
			if claimed[j] {
				continue
			}
			s := score(src, q)
			result.Evaluations++
			if s > best || bestJ == -1 {
				best, bestJ = s, j
			}
		}
		if bestJ >= 0 {
			match.QATitle = qa[bestJ].Title
			match.Similarity = best
		}
		if bestJ >= 0 && best >= t {
			match.Covered = true
			claimed[bestJ] = true
			result.MatchedCount++
		} else {
			result.MissingTitles = append(result.MissingTitles, src.Title)
		}
		matches[i] = match
	}
	result.Matches = append(result.Matches, matches...)
	result.UnmatchedQA = unclaimedTitles(qa, claimed)
}

// Threshold computes the per-scenario dynamic similarity cutoff: the
// base value lowered when QA under-covers the source set, raised
// slightly when QA is large relative to source, lowered further for
// domain-state scenarios (their phrasing varies more), and clamped to
// the configured bounds. The ratio counts distinct QA titles against
// source scenarios.
func (m *Matcher) Threshold(src *scenario.Scenario, ratio float64) float64 {
	t := m.cfg.BaseThreshold
	switch {
	case ratio > 0 && ratio < 0.5:
		t -= 0.10
	case ratio > 0 && ratio < 0.8:
		t -= 0.05
	case ratio > 1.5:
		t += 0.05
	}
	if similarity.DetectDomainState(src.Text()) {
		t -= 0.05
	}
	if t < m.cfg.MinThreshold {
		t = m.cfg.MinThreshold
	}
	if t > m.cfg.MaxThreshold {
		t = m.cfg.MaxThreshold
	}
	return t
}

// distinctQACount counts QA scenarios with distinct normalized titles.
// Exact duplicates in the QA set do not shift the dataset-shape ratio,
// so a redundant QA test can never raise thresholds.
func distinctQACount(qa []*scenario.Scenario) int {
	seen := make(map[string]bool, len(qa))
	for _, q := range qa {
		seen[normalizeTitle(q.Title)] = true
	}
	return len(seen)
}

// normalizeTitle lowercases and collapses all whitespace runs.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// unclaimedTitles lists QA scenarios never chosen as the best match of
// any covered source scenario.
func unclaimedTitles(qa []*scenario.Scenario, claimed map[int]bool) []string {
	var out []string
	for j, q := range qa {
		if !claimed[j] {
			out = append(out, q.Title)
		}
	}
	return out
}

// coveragePercent rounds matched/source to the nearest whole percent,
// defined as 0 when the source set is empty.
func coveragePercent(matched, source int) int {
	if source == 0 {
		return 0
	}
	return int(math.Round(float64(matched) / float64(source) * 100))
}
