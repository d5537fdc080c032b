package assess

import (
	"fmt"

	"github.com/sells-group/shell-assess/internal/domain"
	"github.com/sells-group/shell-assess/internal/fuzzy"
	"github.com/sells-group/shell-assess/internal/model"
)

// nameCandidate is one pairing of the account name against a comparison
// value, evaluated in order with the maximum score winning.
type nameCandidate struct {
	label string
	value func(model.Account) (string, bool)
}

// customerCandidates lists the comparison values for customer consistency,
// in precedence order. The website-derived values compare the account name
// against the company-identifying label of the registrable domain.
var customerCandidates = []nameCandidate{
	{
		label: "Account Name vs Website domain",
		value: func(a model.Account) (string, bool) { return domainCompany(a.Website) },
	},
	{
		label: "Account Name vs ZI Company Name",
		value: func(a model.Account) (string, bool) {
			if a.ZICompanyName == "" {
				return "", false
			}
			return a.ZICompanyName, true
		},
	},
	{
		label: "Account Name vs ZI Website domain",
		value: func(a model.Account) (string, bool) { return domainCompany(a.ZIWebsite) },
	},
}

// domainCompany normalizes a website URL and extracts its company label.
func domainCompany(website string) (string, bool) {
	if website == "" {
		return "", false
	}
	d, err := domain.Normalize(website)
	if err != nil {
		return "", false
	}
	label := domain.CompanyLabel(d)
	return label, label != ""
}

// CustomerConsistency scores how well an account's own name agrees with its
// website domain and enrichment fields. The best pairing wins and is named
// in the explanation.
func CustomerConsistency(acct model.Account) model.ScoreFlag {
	if acct.Website == "" && acct.ZIWebsite == "" {
		return model.ScoreFlag{Score: 0, Explanation: "no website data available"}
	}
	if acct.Name == "" {
		return model.ScoreFlag{Score: 0, Explanation: "insufficient data: account has no name"}
	}

	best := -1
	bestLabel := ""
	bestValue := ""
	for _, c := range customerCandidates {
		v, ok := c.value(acct)
		if !ok {
			continue
		}
		if s := fuzzy.Score(acct.Name, v); s > best {
			best = s
			bestLabel = c.label
			bestValue = v
		}
	}

	if best < 0 {
		return model.ScoreFlag{Score: 0, Explanation: "could not extract a comparable domain from website data"}
	}
	return model.ScoreFlag{
		Score:       best,
		Explanation: fmt.Sprintf("%s scored %d (%q vs %q)", bestLabel, best, acct.Name, bestValue),
	}
}
