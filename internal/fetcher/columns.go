package fetcher

import (
	"strings"

	"github.com/sells-group/shell-assess/internal/model"
)

// columnSetters maps normalized header names to Account field setters.
// Both Salesforce API names and snake_case exports are accepted.
var columnSetters = map[string]func(*model.Account, string){
	"id":                         func(a *model.Account, v string) { a.ID = v },
	"name":                       func(a *model.Account, v string) { a.Name = v },
	"accountname":                func(a *model.Account, v string) { a.Name = v },
	"website":                    func(a *model.Account, v string) { a.Website = v },
	"email":                      func(a *model.Account, v string) { a.Email = v },
	"contactmostfrequentemailc":  func(a *model.Account, v string) { a.Email = v },
	"billingstate":               func(a *model.Account, v string) { a.BillingState = v },
	"billingcountry":             func(a *model.Account, v string) { a.BillingCountry = v },
	"billingpostalcode":          func(a *model.Account, v string) { a.BillingPostalCode = v },
	"zicompanynamec":             func(a *model.Account, v string) { a.ZICompanyName = v },
	"zicompanyname":              func(a *model.Account, v string) { a.ZICompanyName = v },
	"ziwebsitec":                 func(a *model.Account, v string) { a.ZIWebsite = v },
	"ziwebsite":                  func(a *model.Account, v string) { a.ZIWebsite = v },
	"zicompanystatec":            func(a *model.Account, v string) { a.ZIState = v },
	"zistate":                    func(a *model.Account, v string) { a.ZIState = v },
	"zicompanycountryc":          func(a *model.Account, v string) { a.ZICountry = v },
	"zicountry":                  func(a *model.Account, v string) { a.ZICountry = v },
	"zicompanyzipcodec":          func(a *model.Account, v string) { a.ZIPostalCode = v },
	"zipostalcode":               func(a *model.Account, v string) { a.ZIPostalCode = v },
	"parentid":                   func(a *model.Account, v string) { a.ParentID = v },
	"parentname":                 func(a *model.Account, v string) { a.ParentName = v },
}

// normalizeHeader reduces a header cell to its comparable form: lowercase
// alphanumerics only, so "ZI_Company_Name__c" and "zi company name" match
// the same key.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// rowToAccount applies a parsed row against the header layout.
func rowToAccount(headers, row []string) model.Account {
	var acct model.Account
	for i, h := range headers {
		if i >= len(row) {
			break
		}
		if set, ok := columnSetters[normalizeHeader(h)]; ok {
			set(&acct, strings.TrimSpace(row[i]))
		}
	}
	return acct
}
