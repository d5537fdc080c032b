package fetcher

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/shell-assess/internal/assess"
	"github.com/sells-group/shell-assess/internal/model"
	"github.com/sells-group/shell-assess/pkg/salesforce"
)

// SalesforceSource loads accounts and their shells straight from the CRM.
type SalesforceSource struct {
	client salesforce.Client
}

func NewSalesforceSource(client salesforce.Client) *SalesforceSource {
	return &SalesforceSource{client: client}
}

// Account fetches one account by ID. Returns nil if no record matches.
func (s *SalesforceSource) Account(ctx context.Context, id string) (*model.Account, error) {
	sfAcct, err := salesforce.GetAccount(ctx, s.client, id)
	if err != nil {
		return nil, err
	}
	if sfAcct == nil {
		return nil, nil
	}
	acct := toModelAccount(*sfAcct)
	return &acct, nil
}

// Pairs fetches the given accounts and resolves each one's shell record,
// preserving the input ID order for accounts that exist.
func (s *SalesforceSource) Pairs(ctx context.Context, ids []string) ([]assess.Pair, error) {
	children, err := salesforce.GetAccounts(ctx, s.client, ids)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: load accounts")
	}

	parents, err := salesforce.ResolveParents(ctx, s.client, children)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: resolve shells")
	}

	byID := make(map[string]salesforce.Account, len(children))
	for _, c := range children {
		if key, err := salesforce.To15(c.ID); err == nil {
			byID[key] = c
		}
	}

	var pairs []assess.Pair
	for _, id := range ids {
		key, err := salesforce.To15(id)
		if err != nil {
			continue
		}
		child, ok := byID[key]
		if !ok {
			continue
		}

		pair := assess.Pair{Account: toModelAccount(child)}
		if child.ParentID != "" {
			if pkey, err := salesforce.To15(child.ParentID); err == nil {
				if parent, ok := parents[pkey]; ok {
					p := toModelAccount(parent)
					pair.Parent = &p
				}
			}
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// PairsFromQuery resolves accounts matched by a caller-supplied Id-only
// SOQL query.
func (s *SalesforceSource) PairsFromQuery(ctx context.Context, soql string) ([]assess.Pair, error) {
	ids, err := salesforce.AccountIDsFromQuery(ctx, s.client, soql)
	if err != nil {
		return nil, err
	}
	return s.Pairs(ctx, ids)
}

// PairsFromAccounts builds pairs from a file-loaded account set, resolving
// shells against other rows of the same file when present.
func PairsFromAccounts(accounts []model.Account) []assess.Pair {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		if key, err := salesforce.To15(a.ID); err == nil {
			byID[key] = a
		}
	}

	pairs := make([]assess.Pair, len(accounts))
	for i, a := range accounts {
		pairs[i] = assess.Pair{Account: a}
		if a.ParentID == "" {
			continue
		}
		if pkey, err := salesforce.To15(a.ParentID); err == nil {
			if parent, ok := byID[pkey]; ok {
				p := parent
				pairs[i].Parent = &p
			}
		}
	}
	return pairs
}

func toModelAccount(a salesforce.Account) model.Account {
	out := model.Account{
		ID:                a.ID,
		Name:              a.Name,
		Website:           a.Website,
		Email:             a.ContactEmail,
		BillingState:      a.BillingState,
		BillingCountry:    a.BillingCountry,
		BillingPostalCode: a.BillingPostalCode,
		ZICompanyName:     a.ZICompanyName,
		ZIWebsite:         a.ZIWebsite,
		ZIState:           a.ZIState,
		ZICountry:         a.ZICountry,
		ZIPostalCode:      a.ZIPostalCode,
		ParentID:          a.ParentID,
	}
	if a.Parent != nil {
		out.ParentName = a.Parent.Name
	}
	return out
}
