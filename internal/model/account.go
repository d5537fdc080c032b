// Package model defines the core domain types shared across the assessment
// pipeline: accounts, relationship flags, assessments, and runs.
package model

import "strings"

// Account is a single Salesforce business account with the fields the
// relationship assessment needs. Raw CRM fields are trusted; ZI-prefixed
// fields are ZoomInfo-enriched copies and treated as semi-reliable.
type Account struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Email   string `json:"email,omitempty"` // most frequent contact email

	BillingState      string `json:"billing_state,omitempty"`
	BillingCountry    string `json:"billing_country,omitempty"`
	BillingPostalCode string `json:"billing_postal_code,omitempty"`

	ZICompanyName string `json:"zi_company_name,omitempty"`
	ZIWebsite     string `json:"zi_website,omitempty"`
	ZIState       string `json:"zi_state,omitempty"`
	ZICountry     string `json:"zi_country,omitempty"`
	ZIPostalCode  string `json:"zi_postal_code,omitempty"`

	ParentID   string `json:"parent_id,omitempty"`
	ParentName string `json:"parent_name,omitempty"` // denormalized Parent.Name
}

// Address is one comparable billing address field set.
type Address struct {
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Empty reports whether no component of the address is populated.
func (a Address) Empty() bool {
	return a.State == "" && a.Country == "" && a.PostalCode == ""
}

// String renders the populated components as "State, Country, Postal".
func (a Address) String() string {
	var parts []string
	for _, p := range []string{a.State, a.Country, a.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// BillingAddress returns the account's own billing address field set.
func (a Account) BillingAddress() Address {
	return Address{State: a.BillingState, Country: a.BillingCountry, PostalCode: a.BillingPostalCode}
}

// ZIBillingAddress returns the enrichment-sourced billing address field set.
func (a Account) ZIBillingAddress() Address {
	return Address{State: a.ZIState, Country: a.ZICountry, PostalCode: a.ZIPostalCode}
}
