// Package scenario defines the behavior-scenario data model and the
// parser that recovers scenarios from loosely formatted text.
package scenario

import "github.com/c360studio/speccover/vocabulary/behavior"

// SourceLocation records where a scenario was found. It is diagnostic
// only and never participates in similarity scoring.
type SourceLocation struct {
	Document string `json:"document"`
	Line     int    `json:"line"`
}

// Scenario is the canonical unit of behavior: a title, ordered steps,
// free-form tags, and derived classifications computed once at parse time.
//
// Steps are immutable after parsing. Cross-scenario relationships
// (coverage matches, duplicate groups) hold scenario titles by value,
// never live references, so independently parsed sets compare without
// aliasing.
type Scenario struct {
	Title    string         `json:"title"`
	Steps    []string       `json:"steps,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Location SourceLocation `json:"location"`

	// Derived fields, computed exactly once when the scenario is finalized.
	BusinessImpact   string                    `json:"business_impact"`
	WorkflowCategory behavior.WorkflowCategory `json:"workflow_category"`
}

// Text returns the title and steps joined for keyword scanning.
func (s *Scenario) Text() string {
	if len(s.Steps) == 0 {
		return s.Title
	}
	text := s.Title
	for _, step := range s.Steps {
		text += "\n" + step
	}
	return text
}

// HasTag reports whether the scenario carries the given tag.
func (s *Scenario) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// addTag appends a tag unless it is already present. Tag order is not
// semantically meaningful; duplicates are dropped on insert.
func (s *Scenario) addTag(tag string) {
	if tag == "" || s.HasTag(tag) {
		return
	}
	s.Tags = append(s.Tags, tag)
}
