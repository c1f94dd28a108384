// Package behavior provides the closed vocabulary used to classify and
// compare behavior scenarios.
//
// All keyword-to-category mappings live here as typed constants with
// associated keyword lists, so an unknown category is a compile-time
// concern rather than a silent runtime string mismatch. The similarity
// engine and the scenario parser consume these tables; neither defines
// keyword sets of its own.
package behavior
