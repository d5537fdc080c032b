package salesforce

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// chunkSize is how many IDs go into a single SOQL IN clause.
const chunkSize = 200

// ParentRef is the relationship projection on a child Account.
type ParentRef struct {
	Name string `json:"Name" salesforce:"Name"`
}

// Account represents a Salesforce Account record with the enrichment
// fields the assessment reads.
type Account struct {
	ID                string     `json:"Id" salesforce:"Id"`
	Name              string     `json:"Name" salesforce:"Name"`
	Website           string     `json:"Website" salesforce:"Website"`
	BillingState      string     `json:"BillingState" salesforce:"BillingState"`
	BillingCountry    string     `json:"BillingCountry" salesforce:"BillingCountry"`
	BillingPostalCode string     `json:"BillingPostalCode" salesforce:"BillingPostalCode"`
	ParentID          string     `json:"ParentId" salesforce:"ParentId"`
	Parent            *ParentRef `json:"Parent" salesforce:"Parent"`
	ContactEmail      string     `json:"Contact_Most_Frequent_Email__c" salesforce:"Contact_Most_Frequent_Email__c"`
	ZICompanyName     string     `json:"ZI_Company_Name__c" salesforce:"ZI_Company_Name__c"`
	ZIWebsite         string     `json:"ZI_Website__c" salesforce:"ZI_Website__c"`
	ZIState           string     `json:"ZI_Company_State__c" salesforce:"ZI_Company_State__c"`
	ZICountry         string     `json:"ZI_Company_Country__c" salesforce:"ZI_Company_Country__c"`
	ZIPostalCode      string     `json:"ZI_Company_Zip_Code__c" salesforce:"ZI_Company_Zip_Code__c"`
}

// accountFields are the SOQL fields selected for Account queries.
var accountFields = []string{
	"Id", "Name", "Website",
	"BillingState", "BillingCountry", "BillingPostalCode",
	"ParentId", "Parent.Name",
	"Contact_Most_Frequent_Email__c",
	"ZI_Company_Name__c", "ZI_Website__c",
	"ZI_Company_State__c", "ZI_Company_Country__c", "ZI_Company_Zip_Code__c",
}

// GetAccount fetches a single Account by ID. Returns nil if no account
// matches.
func GetAccount(ctx context.Context, c Client, id string) (*Account, error) {
	if !IsValidAccountID(id) {
		return nil, eris.New(fmt.Sprintf("sf: %q is not a valid Account ID", id))
	}
	soql := fmt.Sprintf(
		"SELECT %s FROM Account WHERE Id = '%s' LIMIT 1",
		strings.Join(accountFields, ", "),
		escapeSoql(id),
	)

	var accounts []Account
	if err := c.Query(ctx, soql, &accounts); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("sf: get account %s", id))
	}
	if len(accounts) == 0 {
		return nil, nil
	}
	return &accounts[0], nil
}

// GetAccounts fetches a batch of Accounts by ID, chunking the IN clause.
// IDs that match no record are simply absent from the result.
func GetAccounts(ctx context.Context, c Client, ids []string) ([]Account, error) {
	for _, id := range ids {
		if !IsValidAccountID(id) {
			return nil, eris.New(fmt.Sprintf("sf: %q is not a valid Account ID", id))
		}
	}

	var out []Account
	for start := 0; start < len(ids); start += chunkSize {
		end := min(start+chunkSize, len(ids))
		quoted := make([]string, 0, end-start)
		for _, id := range ids[start:end] {
			quoted = append(quoted, "'"+escapeSoql(id)+"'")
		}
		soql := fmt.Sprintf(
			"SELECT %s FROM Account WHERE Id IN (%s)",
			strings.Join(accountFields, ", "),
			strings.Join(quoted, ", "),
		)

		var accounts []Account
		if err := c.Query(ctx, soql, &accounts); err != nil {
			return nil, eris.Wrap(err, "sf: get accounts chunk")
		}
		out = append(out, accounts...)
	}
	return out, nil
}

// ResolveParents fetches the distinct parent Accounts referenced by the
// given child records, keyed by the 15-character form of their ID.
func ResolveParents(ctx context.Context, c Client, children []Account) (map[string]Account, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, child := range children {
		if child.ParentID == "" {
			continue
		}
		key, err := To15(child.ParentID)
		if err != nil {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		ids = append(ids, child.ParentID)
	}
	if len(ids) == 0 {
		return map[string]Account{}, nil
	}

	parents, err := GetAccounts(ctx, c, ids)
	if err != nil {
		return nil, eris.Wrap(err, "sf: resolve parents")
	}

	byID := make(map[string]Account, len(parents))
	for _, p := range parents {
		key, err := To15(p.ID)
		if err != nil {
			continue
		}
		byID[key] = p
	}
	return byID, nil
}

// AccountIDsFromQuery runs a caller-supplied Id-only SOQL query after
// validating it, and returns the matched Account IDs.
func AccountIDsFromQuery(ctx context.Context, c Client, soql string) ([]string, error) {
	validated, err := ValidateIDQuery(soql)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID string `json:"Id" salesforce:"Id"`
	}
	if err := c.Query(ctx, validated, &rows); err != nil {
		return nil, eris.Wrap(err, "sf: account ids from query")
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids, nil
}
