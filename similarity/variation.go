package similarity

import (
	"github.com/c360studio/speccover/scenario"
	"github.com/c360studio/speccover/vocabulary/behavior"
)

// VariationScore compares the data-variation kinds (role, environment,
// dataset, permission) each scenario exercises, scored by positional
// type overlap. When neither scenario specifies any variation the score
// is 1.0: there is no variation to disagree on.
func VariationScore(a, b *scenario.Scenario) float64 {
	va := behavior.ExtractVariations(a.Text())
	vb := behavior.ExtractVariations(b.Text())

	if len(va) == 0 && len(vb) == 0 {
		return 1.0
	}

	n, longer := len(va), len(va)
	if len(vb) < n {
		n = len(vb)
	}
	if len(vb) > longer {
		longer = len(vb)
	}

	matches := 0
	for i := 0; i < n; i++ {
		if va[i] == vb[i] {
			matches++
		}
	}
	return float64(matches) / float64(longer)
}

// HasVariations reports whether the scenario text names any
// data-variation kind.
func HasVariations(text string) bool {
	return len(behavior.ExtractVariations(text)) > 0
}
