// Package analysis composes the parser, coverage matcher, and duplicate
// clusterer into one deterministic run over two document sets.
package analysis

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/speccover/config"
	"github.com/c360studio/speccover/coverage"
	"github.com/c360studio/speccover/duplicates"
	"github.com/c360studio/speccover/metrics"
	"github.com/c360studio/speccover/scenario"
	"github.com/c360studio/speccover/similarity"
)

// Runner wires the core components for repeated analysis runs. The run
// itself is a pure computation; the runner only adds IDs, timing, and
// optional metric observations at the boundary.
type Runner struct {
	parser    *scenario.Parser
	engine    *similarity.Engine
	matcher   *coverage.Matcher
	clusterer *duplicates.Clusterer
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewRunner creates a runner from configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	engine := similarity.NewEngine()
	matcher := coverage.NewMatcher(engine, cfg.Coverage)
	matcher.SetLogger(logger)
	clusterer := duplicates.NewClusterer(cfg.Duplicates)
	clusterer.SetLogger(logger)

	return &Runner{
		parser:    scenario.NewParser(),
		engine:    engine,
		matcher:   matcher,
		clusterer: clusterer,
		logger:    logger,
	}
}

// SetCollector attaches a metrics collector. A nil collector disables
// observation entirely; analysis behaves identically either way.
func (r *Runner) SetCollector(c *metrics.Collector) {
	r.collector = c
}

// Run is the complete result of one analysis: both parsed sets, the
// coverage result, and the duplicate report. Runs are created fresh per
// analysis and discarded when a new one begins.
type Run struct {
	ID         string               `json:"id"`
	Source     []*scenario.Scenario `json:"source"`
	QA         []*scenario.Scenario `json:"qa"`
	Coverage   *coverage.Result     `json:"coverage"`
	Duplicates *duplicates.Report   `json:"duplicates"`
	Duration   time.Duration        `json:"duration"`
}

// Analyze parses the source and QA document sets, matches coverage, and
// clusters QA duplicates. It never fails: unparseable text simply yields
// empty scenario sets, which are valid inputs downstream.
func (r *Runner) Analyze(source, qa []scenario.Document) *Run {
	start := time.Now()

	run := &Run{
		ID:     uuid.New().String(),
		Source: r.parser.ParseDocuments(source),
		QA:     r.parser.ParseDocuments(qa),
	}

	run.Coverage = r.matcher.Match(run.Source, run.QA)
	run.Duplicates = r.clusterer.Cluster(run.QA, &duplicates.Sequence{})
	run.Duration = time.Since(start)

	if r.collector != nil {
		r.collector.DocumentsIngested.Add(float64(len(source) + len(qa)))
		r.collector.ScenariosParsed.Add(float64(len(run.Source) + len(run.QA)))
		r.collector.SimilarityEvaluations.Add(float64(run.Coverage.Evaluations))
		r.collector.AnalysesCompleted.Inc()
		r.collector.AnalysisDuration.Observe(run.Duration.Seconds())
	}

	r.logger.Info("analysis complete",
		"run_id", run.ID,
		"source_scenarios", len(run.Source),
		"qa_scenarios", len(run.QA),
		"coverage_percent", run.Coverage.CoveragePercent,
		"duplicate_groups", len(run.Duplicates.Groups),
		"duration", run.Duration)
	return run
}

// ParseOnly parses a document set without matching, for diagnostics.
func (r *Runner) ParseOnly(docs []scenario.Document) []*scenario.Scenario {
	return r.parser.ParseDocuments(docs)
}
