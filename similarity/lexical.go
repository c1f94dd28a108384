package similarity

import "strings"

// TitleScore compares two scenario titles lexically. Identical titles
// score 1.0, titles identical after whitespace and case normalization
// score 0.95, and everything else falls back to token overlap.
func TitleScore(a, b string) float64 {
	if a != "" && a == b {
		return 1.0
	}
	na, nb := normalizeTitle(a), normalizeTitle(b)
	if na != "" && na == nb {
		return 0.95
	}
	return TokenOverlapScore(a, b)
}

// TokenOverlapScore scores two strings by shared tokens: exact shared
// tokens longer than two characters count double, short exact tokens and
// substring-contained tokens count once, normalized by the combined
// token count. Empty inputs score 0.0.
func TokenOverlapScore(a, b string) float64 {
	ta, tb := tokenize(a), tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}

	pts := directionPoints(ta, tb) + directionPoints(tb, ta)
	score := pts / float64(len(ta)+len(tb))
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// directionPoints sums the best match credit for each token in from
// against the tokens in to.
func directionPoints(from, to []string) float64 {
	var pts float64
	for _, t := range from {
		best := 0.0
		for _, u := range to {
			switch {
			case t == u && len(t) > 2:
				best = 2.0
			case t == u:
				if best < 1.0 {
					best = 1.0
				}
			case partialMatch(t, u):
				if best < 1.0 {
					best = 1.0
				}
			}
			if best == 2.0 {
				break
			}
		}
		pts += best
	}
	return pts
}

// partialMatch reports whether one token contains the other after light
// stemming. Tokens shorter than three characters never match partially.
func partialMatch(a, b string) bool {
	sa, sb := stem(a), stem(b)
	if len(sa) < 3 || len(sb) < 3 {
		return false
	}
	return strings.Contains(sa, sb) || strings.Contains(sb, sa)
}

// stem trims a trailing plural "s" so that e.g. "logs" matches "login".
func stem(w string) string {
	if len(w) > 3 && strings.HasSuffix(w, "s") {
		return w[:len(w)-1]
	}
	return w
}

// normalizeTitle lowercases and collapses all whitespace runs.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// tokenize splits a string into lowercase alphanumeric tokens.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
