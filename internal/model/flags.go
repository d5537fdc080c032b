package model

// BadDomainFlag is the always-computed gate result.
type BadDomainFlag struct {
	IsBad       bool   `json:"is_bad"`
	Explanation string `json:"explanation"`
}

// ScoreFlag is a 0-100 integer score with a human-readable explanation.
type ScoreFlag struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// AddressFlag is the boolean address comparison result. FieldsCompared names
// the two field sets that were actually compared (e.g. "Customer Billing
// Address" and "Parent Enrichment Address").
type AddressFlag struct {
	IsConsistent   bool      `json:"is_consistent"`
	Explanation    string    `json:"explanation"`
	FieldsCompared [2]string `json:"fields_compared"`
}

// RelationshipFlags is the structured signal bundle attached to an account
// after evaluation. Optional members are pointers so that "never populated
// unless its precondition held" is visible in the value itself:
//
//   - everything past BadDomain is nil when the bad-domain gate fired;
//   - CustomerShellCoherence and AddressConsistency are nil unless HasShell
//     is present and true.
type RelationshipFlags struct {
	BadDomain              BadDomainFlag `json:"bad_domain"`
	HasShell               *bool         `json:"has_shell,omitempty"`
	CustomerConsistency    *ScoreFlag    `json:"customer_consistency,omitempty"`
	CustomerShellCoherence *ScoreFlag    `json:"customer_shell_coherence,omitempty"`
	AddressConsistency     *AddressFlag  `json:"address_consistency,omitempty"`
}

// Gated reports whether the bad-domain gate suppressed downstream flags.
func (f RelationshipFlags) Gated() bool {
	return f.BadDomain.IsBad
}

// ShellLinked reports whether the account was determined to roll up to a
// shell account. False when the gate fired or no parent link exists.
func (f RelationshipFlags) ShellLinked() bool {
	return f.HasShell != nil && *f.HasShell
}
