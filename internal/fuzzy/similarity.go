package fuzzy

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// ratio computes a 0.0-1.0 similarity between two already-normalized strings
// as (la+lb-dist)/(la+lb), where dist is the Levenshtein edit distance. Equal
// strings score 1.0; fully disjoint strings approach 0.0.
func ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 0
	}
	la, lb := len([]rune(a)), len([]rune(b))
	dist := levenshtein.ComputeDistance(a, b)
	return float64(la+lb-dist) / float64(la+lb)
}

// tokenSetRatio compares the sorted token intersection against each side's
// full sorted token string and takes the best of the three pairings. This is
// what makes "Acme Corp" vs "Corp Acme" score 1.0 and a strict-subset name
// ("Acme" vs "Acme West") score highly.
func tokenSetRatio(a, b string) float64 {
	ta, tb := Tokens(a), Tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(ta))
	for _, t := range ta {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(tb))
	for _, t := range tb {
		setB[t] = struct{}{}
	}

	var common, onlyA, onlyB []string
	for t := range setA {
		if _, ok := setB[t]; ok {
			common = append(common, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range setB {
		if _, ok := setA[t]; !ok {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(common, " ")
	full1 := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	full2 := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	best := ratio(full1, full2)
	if base != "" {
		if r := ratio(base, full1); r > best {
			best = r
		}
		if r := ratio(base, full2); r > best {
			best = r
		}
	}
	return best
}

// Score computes an integer similarity in [0,100] between two raw strings.
// Both are normalized first; the result is the max of the full-string ratio
// and the token-set ratio, so word order and strict-subset names do not drag
// the score down. Empty-or-unnormalizable input on either side scores 0.
// Score is symmetric: Score(a,b) == Score(b,a).
func Score(a, b string) int {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return 0
	}

	r := ratio(na, nb)
	if ts := tokenSetRatio(na, nb); ts > r {
		r = ts
	}

	score := int(r*100 + 0.5)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
