package similarity

// Match is the outcome of resolving a name against a candidate set.
type Match struct {
	// Name is the best candidate.
	Name string `json:"name"`
	// Score is the Dice coefficient between the query and Name.
	Score float64 `json:"score"`
}

// Exact reports whether the match is the query itself.
func (m Match) Exact(query string) bool {
	return m.Name == query
}

// Resolve returns the candidate most similar to name.
// A later candidate only replaces the current best with a strictly higher score,
// so ties go to the first candidate enumerated. ok is false only when there are
// no candidates.
func Resolve(name string, candidates []string) (Match, bool) {
	if len(candidates) == 0 {
		return Match{}, false
	}

	best := Match{Name: candidates[0], Score: Dice(name, candidates[0])}
	for _, c := range candidates[1:] {
		if score := Dice(name, c); score > best.Score {
			best = Match{Name: c, Score: score}
		}
	}
	return best, true
}
