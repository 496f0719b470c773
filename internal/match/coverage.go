package match

import "math"

// Coverage computes the dashboard market-coverage statistic: the percentage
// of the open-gig demand pool covered by the user's own skills.
//
// This is intentionally cheaper and stricter than the match engine: skills
// are compared case-sensitively with no normalization. The numerator counts
// the user's skills that appear anywhere in the pool; the denominator is
// the pool length, where the pool (the concatenated required skills of
// every open gig) is NOT deduplicated. A skill demanded by many gigs
// inflates the denominator, which weights the statistic toward skills in
// high market demand.
func Coverage(userSkills, pool []string) int {
	if len(pool) == 0 {
		return 0
	}

	demanded := make(map[string]bool, len(pool))
	for _, s := range pool {
		demanded[s] = true
	}

	matched := 0
	for _, skill := range userSkills {
		if demanded[skill] {
			matched++
		}
	}

	return int(math.Round(100 * float64(matched) / float64(len(pool))))
}
