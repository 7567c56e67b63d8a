package similarity

import "strings"

// Dice returns the bigram Dice coefficient of a and b.
// Both strings are lowercased and stripped of spaces before bigrams are built.
func Dice(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na != "" && na == nb {
		return 1.0
	}

	ba, bb := bigrams(na), bigrams(nb)
	total := len(ba) + len(bb)
	if total == 0 {
		return 0.0
	}

	shared := 0
	for g := range ba {
		if _, ok := bb[g]; ok {
			shared++
		}
	}
	return 2.0 * float64(shared) / float64(total)
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

func bigrams(s string) map[string]struct{} {
	runes := []rune(s)
	set := make(map[string]struct{}, len(runes))
	for i := 0; i+1 < len(runes); i++ {
		set[string(runes[i:i+2])] = struct{}{}
	}
	return set
}
