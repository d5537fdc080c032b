package assess

import (
	"fmt"
	"strings"

	"github.com/sells-group/shell-assess/internal/domain"
	"github.com/sells-group/shell-assess/internal/fuzzy"
	"github.com/sells-group/shell-assess/internal/model"
)

// pairing is an evaluated field pair with its score.
type pairing struct {
	label string
	score int
}

// ShellCoherence scores how well a customer account's metadata aligns with
// its parent shell account: the best of up to four name pairings and the
// best of up to four website-domain pairings, blended per the rubric
// weights. The explanation enumerates the pair that drove each dimension.
func ShellCoherence(child, parent model.Account, cfg Config) model.ScoreFlag {
	bestName, nameOK := bestNamePairing(child, parent)
	bestWeb, webOK := bestWebsitePairing(child, parent)

	if !nameOK && !webOK {
		return model.ScoreFlag{Score: 0, Explanation: "insufficient data: no comparable name or website fields between customer and shell"}
	}

	nw, ww := cfg.NameWeight, cfg.WebsiteWeight
	if nw <= 0 && ww <= 0 {
		nw, ww = 0.5, 0.5
	}

	var notes []string
	var weighted, totalWeight float64
	if nameOK {
		weighted += nw * float64(bestName.score)
		totalWeight += nw
		notes = append(notes, fmt.Sprintf("%s scored %d", bestName.label, bestName.score))
	} else {
		notes = append(notes, "no comparable name data")
	}
	if webOK {
		weighted += ww * float64(bestWeb.score)
		totalWeight += ww
		notes = append(notes, fmt.Sprintf("%s scored %d", bestWeb.label, bestWeb.score))
	} else {
		notes = append(notes, "no comparable website data")
	}

	score := clampScore(int(weighted/totalWeight + 0.5))
	return model.ScoreFlag{Score: score, Explanation: strings.Join(notes, "; ")}
}

func bestNamePairing(child, parent model.Account) (pairing, bool) {
	type side struct {
		label string
		value string
	}
	childNames := []side{
		{"Customer Name", child.Name},
		{"Customer ZI Company Name", child.ZICompanyName},
	}
	parentNames := []side{
		{"Parent Name", parent.Name},
		{"Parent ZI Company Name", parent.ZICompanyName},
	}

	best := pairing{score: -1}
	for _, c := range childNames {
		if c.value == "" {
			continue
		}
		for _, p := range parentNames {
			if p.value == "" {
				continue
			}
			if s := fuzzy.Score(c.value, p.value); s > best.score {
				best = pairing{label: c.label + " vs " + p.label, score: s}
			}
		}
	}
	return best, best.score >= 0
}

func bestWebsitePairing(child, parent model.Account) (pairing, bool) {
	type side struct {
		label  string
		domain string
	}
	collect := func(prefix string, a model.Account) []side {
		var out []side
		if a.Website != "" {
			if d, err := domain.Normalize(a.Website); err == nil {
				out = append(out, side{prefix + " Website domain", d})
			}
		}
		if a.ZIWebsite != "" {
			if d, err := domain.Normalize(a.ZIWebsite); err == nil {
				out = append(out, side{prefix + " ZI Website domain", d})
			}
		}
		return out
	}

	childDomains := collect("Customer", child)
	parentDomains := collect("Parent", parent)

	best := pairing{score: -1}
	for _, c := range childDomains {
		for _, p := range parentDomains {
			s := domainSimilarity(c.domain, p.domain)
			if s > best.score {
				best = pairing{label: c.label + " vs " + p.label, score: s}
			}
		}
	}
	return best, best.score >= 0
}

// domainSimilarity scores two normalized domains: identical registrable
// domains are a perfect match, otherwise the company labels are fuzzed.
func domainSimilarity(a, b string) int {
	if a == b {
		return 100
	}
	la, lb := domain.CompanyLabel(a), domain.CompanyLabel(b)
	if la == "" || lb == "" {
		return 0
	}
	return fuzzy.Score(la, lb)
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
