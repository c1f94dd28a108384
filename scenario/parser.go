package scenario

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/c360studio/speccover/vocabulary/behavior"
)

// parseState tracks which document section the parser is inside.
type parseState int

const (
	stateNone parseState = iota
	stateScenario
	stateBackground
	stateRule
	stateExamples
)

// Title-detection patterns, tried in strict priority order. The first
// rule that matches wins, so ties are impossible.
var (
	keywordTitlePattern  = regexp.MustCompile(`(?i)^(?:scenario outline|scenario template|scenario|example|test case|test)\s*:\s*(.+)$`)
	numberedTitlePattern = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	idTitlePattern       = regexp.MustCompile(`^[A-Z]{2,3}-\d+\s+-\s+(.+)$`)

	outlineTitlePattern = regexp.MustCompile(`(?i)^(?:scenario outline|scenario template)\s*:`)

	featurePattern    = regexp.MustCompile(`(?i)^feature\s*:`)
	backgroundPattern = regexp.MustCompile(`(?i)^background\s*:`)
	rulePattern       = regexp.MustCompile(`(?i)^rule\s*:`)
	examplesPattern   = regexp.MustCompile(`(?i)^(?:examples|scenarios)\s*:`)
)

// Parser recovers structured scenarios from loosely formatted text.
//
// The parser is maximally tolerant: no input can cause a failure.
// Unrecognized lines are skipped silently, and an unparseable document
// simply yields zero scenarios. Parsing is a single forward pass over
// the input lines with no backtracking.
type Parser struct{}

// NewParser creates a new scenario parser.
func NewParser() *Parser {
	return &Parser{}
}

// parseRun holds the mutable state of one Parse call.
type parseRun struct {
	document string
	state    parseState

	current   *Scenario
	isOutline bool // current scenario used an outline-style keyword

	outline     *Scenario // finalized outline awaiting Examples rows
	tableHeader bool      // true once the Examples header row was consumed
	exampleIdx  int

	pendingTags []string
	seenTitles  map[string]bool
	out         []*Scenario
}

// Document pairs a document name with its text for multi-document parses.
type Document struct {
	Name string
	Text string
}

// Parse recovers the ordered sequence of scenarios from text. The
// document name is recorded on each scenario's SourceLocation for
// diagnostics only.
func (p *Parser) Parse(document, text string) []*Scenario {
	return p.ParseDocuments([]Document{{Name: document, Text: text}})
}

// ParseDocuments parses several documents as one set: scenarios keep
// their own document's source location, while title uniqueness is
// enforced across the whole set.
func (p *Parser) ParseDocuments(docs []Document) []*Scenario {
	run := &parseRun{
		seenTitles: make(map[string]bool),
		out:        make([]*Scenario, 0, 16),
	}

	for _, doc := range docs {
		run.document = doc.Name
		for i, raw := range strings.Split(doc.Text, "\n") {
			run.consumeLine(strings.TrimSpace(raw), i+1)
		}
		// A scenario never spans documents.
		run.finalize()
		run.state = stateNone
		run.outline = nil
		run.pendingTags = nil
	}

	return run.out
}

// consumeLine advances the state machine by one input line.
func (r *parseRun) consumeLine(line string, lineNo int) {
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	// Section markers take precedence over title detection.
	switch {
	case featurePattern.MatchString(line):
		r.finalize()
		r.state = stateNone
		return
	case backgroundPattern.MatchString(line):
		r.finalize()
		r.state = stateBackground
		return
	case rulePattern.MatchString(line):
		r.finalize()
		r.state = stateRule
		return
	case examplesPattern.MatchString(line):
		// Finalize the in-progress scenario now; its steps are complete
		// and the upcoming table rows derive from it when it was an
		// outline-style title.
		r.finalize()
		r.state = stateExamples
		r.tableHeader = false
		r.exampleIdx = 0
		return
	}

	// Tag lines feed the current scenario, or the next one when no
	// scenario is in progress.
	if strings.HasPrefix(line, "@") {
		for _, f := range strings.Fields(line) {
			tag := strings.TrimPrefix(f, "@")
			if r.current != nil {
				r.current.addTag(tag)
			} else if tag != "" {
				r.pendingTags = append(r.pendingTags, tag)
			}
		}
		return
	}

	// Examples table rows synthesize derived scenarios from the outline.
	if r.state == stateExamples && strings.HasPrefix(line, "|") {
		r.consumeTableRow(lineNo)
		return
	}

	// Step lines attach verbatim while inside a scenario. Background and
	// rule sections accumulate nothing.
	if behavior.IsStepLine(line) {
		if r.state == stateScenario && r.current != nil {
			r.current.Steps = append(r.current.Steps, line)
		}
		return
	}

	// Title detection, rules tried in strict priority order.
	if title, isOutline, ok := detectTitle(line); ok {
		r.finalize()
		r.current = &Scenario{
			Title:    title,
			Location: SourceLocation{Document: r.document, Line: lineNo},
		}
		for _, tag := range r.pendingTags {
			r.current.addTag(tag)
		}
		r.isOutline = isOutline
		r.pendingTags = nil
		r.state = stateScenario
		return
	}

	// Anything else is noise; skip it silently.
}

// consumeTableRow handles one pipe-delimited row inside an Examples block.
// The first row is the header; every later row derives one scenario that
// copies the outline's steps with an index-suffixed title.
func (r *parseRun) consumeTableRow(lineNo int) {
	if !r.tableHeader {
		r.tableHeader = true
		return
	}
	if r.outline == nil {
		return
	}

	r.exampleIdx++
	derived := &Scenario{
		Title:    fmt.Sprintf("%s - Example %d", r.outline.Title, r.exampleIdx),
		Steps:    append([]string(nil), r.outline.Steps...),
		Tags:     append([]string(nil), r.outline.Tags...),
		Location: SourceLocation{Document: r.document, Line: lineNo},
	}
	r.emit(derived)
}

// finalize completes the in-progress scenario, if any: it resolves title
// collisions, computes derived fields once, and appends to the output.
func (r *parseRun) finalize() {
	if r.current == nil {
		return
	}
	s := r.current
	r.current = nil
	r.emit(s)
	if r.isOutline {
		r.outline = s
	} else {
		r.outline = nil
	}
	r.isOutline = false
}

// emit assigns a collision-free title, derives classification fields,
// and appends the scenario to the output sequence.
func (r *parseRun) emit(s *Scenario) {
	s.Title = r.uniqueTitle(s.Title)
	deriveFields(s)
	r.out = append(r.out, s)
}

// uniqueTitle disambiguates colliding titles with a monotonically
// increasing " (N)" suffix.
func (r *parseRun) uniqueTitle(title string) string {
	if !r.seenTitles[title] {
		r.seenTitles[title] = true
		return title
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", title, n)
		if !r.seenTitles[candidate] {
			r.seenTitles[candidate] = true
			return candidate
		}
	}
}

// detectTitle applies the ordered title-detection rules to a line.
// It returns the recovered title, whether the line introduced a scenario
// outline, and whether any rule matched.
func detectTitle(line string) (title string, outline bool, ok bool) {
	// Rule 1: explicit scenario-introducing keyword with a colon.
	if m := keywordTitlePattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), outlineTitlePattern.MatchString(line), true
	}
	// Rule 2: numbered-list prefix.
	if m := numberedTitlePattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), false, true
	}
	// Rule 3: alphanumeric ID prefix (e.g. "TC-104 - Reset password").
	if m := idTitlePattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), false, true
	}
	// Rule 4: title-case phrase heuristic.
	if looksLikeTitle(line) {
		return line, false, true
	}
	return "", false, false
}

// looksLikeTitle reports whether a bare line reads as a title-case
// phrase: several words, mostly capitalized, and no step keyword lead.
func looksLikeTitle(line string) bool {
	if behavior.IsStepLine(line) || strings.HasSuffix(line, ":") {
		return false
	}
	words := strings.Fields(line)
	if len(words) < 2 || len(words) > 12 {
		return false
	}
	capitalized := 0
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			capitalized++
		}
	}
	// Require roughly two thirds of the words to be capitalized, with
	// the first word always capitalized.
	first := []rune(words[0])[0]
	return unicode.IsUpper(first) && capitalized*3 >= len(words)*2
}
