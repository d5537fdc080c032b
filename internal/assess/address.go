package assess

import (
	"fmt"
	"strings"

	"github.com/sells-group/shell-assess/internal/model"
)

// addressCandidate is one rung of the comparison precedence ladder.
type addressCandidate struct {
	customerLabel string
	shellLabel    string
	customer      func(model.Account) model.Address
	shell         func(model.Account) model.Address
}

// addressCandidates is ordered by source trustworthiness: billing fields
// outrank enrichment fields, and the customer side outranks the shell side.
// The first rung where both sides have any usable data wins.
var addressCandidates = []addressCandidate{
	{
		customerLabel: "Customer Billing Address",
		shellLabel:    "Parent Enrichment Address",
		customer:      model.Account.BillingAddress,
		shell:         model.Account.ZIBillingAddress,
	},
	{
		customerLabel: "Customer Billing Address",
		shellLabel:    "Parent Billing Address",
		customer:      model.Account.BillingAddress,
		shell:         model.Account.BillingAddress,
	},
	{
		customerLabel: "Customer Enrichment Address",
		shellLabel:    "Parent Enrichment Address",
		customer:      model.Account.ZIBillingAddress,
		shell:         model.Account.ZIBillingAddress,
	},
	{
		customerLabel: "Customer Enrichment Address",
		shellLabel:    "Parent Billing Address",
		customer:      model.Account.ZIBillingAddress,
		shell:         model.Account.BillingAddress,
	},
}

// AddressConsistency compares the customer's address against the shell's,
// walking the candidate ladder until a rung has usable data on both sides.
func AddressConsistency(child, parent model.Account, cfg Config) model.AddressFlag {
	for _, cand := range addressCandidates {
		ca, sa := cand.customer(child), cand.shell(parent)
		if ca.Empty() || sa.Empty() {
			continue
		}
		ok, why := compareAddresses(ca, sa, cfg)
		return model.AddressFlag{
			IsConsistent:   ok,
			Explanation:    fmt.Sprintf("%s vs %s: %s", cand.customerLabel, cand.shellLabel, why),
			FieldsCompared: [2]string{cand.customerLabel, cand.shellLabel},
		}
	}
	return model.AddressFlag{
		IsConsistent: false,
		Explanation:  "no comparable address data",
	}
}

// compareAddresses holds state and country to exact case-insensitive
// equality. Postal codes follow the configured tolerance: under
// "any-missing" a blank postal code on either side does not break the
// match, under "require" both must be present and equal.
func compareAddresses(a, b model.Address, cfg Config) (bool, string) {
	var mismatches []string

	if !fieldEqual(a.State, b.State) {
		mismatches = append(mismatches, fmt.Sprintf("state %q != %q", a.State, b.State))
	}
	if !fieldEqual(a.Country, b.Country) {
		mismatches = append(mismatches, fmt.Sprintf("country %q != %q", a.Country, b.Country))
	}

	switch {
	case a.PostalCode == "" || b.PostalCode == "":
		if cfg.AddressPostalTolerance == ToleranceRequire {
			mismatches = append(mismatches, "postal code missing on one side")
		}
	case !strings.EqualFold(strings.TrimSpace(a.PostalCode), strings.TrimSpace(b.PostalCode)):
		mismatches = append(mismatches, fmt.Sprintf("postal code %q != %q", a.PostalCode, b.PostalCode))
	}

	if len(mismatches) > 0 {
		return false, strings.Join(mismatches, ", ")
	}
	return true, fmt.Sprintf("state %q, country %q match", a.State, a.Country)
}

// fieldEqual treats a blank value on either side as compatible; only two
// present, differing values count as a mismatch.
func fieldEqual(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return true
	}
	return strings.EqualFold(a, b)
}
