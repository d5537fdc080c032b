package domain

import (
	"fmt"
	"strings"

	"github.com/sells-group/shell-assess/internal/model"
)

// CleanExplanation is the explanation attached when no field matched the
// disallow-list.
const CleanExplanation = "no bad domain detected"

// Classifier tests an account's contact fields against a disallow-list. It
// is the first stage of every evaluation: a positive result suppresses all
// further flag computation for that account.
type Classifier struct {
	list *Badlist
}

// NewClassifier creates a Classifier over an already-loaded Badlist.
func NewClassifier(list *Badlist) *Classifier {
	return &Classifier{list: list}
}

// Check inspects the account's email and website, in that order, and returns
// the bad-domain flag. The explanation names each offending field and the
// matched root domain; unparseable field values are skipped rather than
// treated as matches.
func (c *Classifier) Check(acct model.Account) model.BadDomainFlag {
	var matches []string

	if acct.Email != "" {
		if d, err := FromEmail(acct.Email); err == nil {
			if root, ok := c.list.Lookup(d); ok {
				matches = append(matches, fmt.Sprintf("email domain %q matches disallowed root domain %q", d, root))
			}
		}
	}

	if acct.Website != "" {
		if d, err := Normalize(acct.Website); err == nil {
			if root, ok := c.list.Lookup(d); ok {
				matches = append(matches, fmt.Sprintf("website domain %q matches disallowed root domain %q", d, root))
			}
		}
	}

	if len(matches) == 0 {
		return model.BadDomainFlag{IsBad: false, Explanation: CleanExplanation}
	}
	return model.BadDomainFlag{IsBad: true, Explanation: strings.Join(matches, " and ")}
}
