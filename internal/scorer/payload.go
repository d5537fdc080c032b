package scorer

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/shell-assess/internal/model"
)

// accountPayload is the slice of an account record the model sees.
type accountPayload struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Website        string `json:"website,omitempty"`
	Email          string `json:"email,omitempty"`
	BillingAddress string `json:"billing_address,omitempty"`
	ZICompanyName  string `json:"zi_company_name,omitempty"`
	ZIWebsite      string `json:"zi_website,omitempty"`
	ZIAddress      string `json:"zi_address,omitempty"`
}

// promptPayload is the full JSON document sent as the user message.
type promptPayload struct {
	Customer accountPayload          `json:"customer"`
	Shell    *accountPayload         `json:"shell,omitempty"`
	Flags    model.RelationshipFlags `json:"relationship_flags"`
}

// buildPayload renders the assessment into the JSON document the prompt
// contract expects.
func buildPayload(a model.Assessment) (string, error) {
	p := promptPayload{
		Customer: toAccountPayload(a.Account),
		Flags:    a.Flags,
	}
	if a.Parent != nil {
		shell := toAccountPayload(*a.Parent)
		p.Shell = &shell
	}

	raw, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return "", eris.Wrap(err, "scorer: marshal payload")
	}
	return string(raw), nil
}

func toAccountPayload(a model.Account) accountPayload {
	return accountPayload{
		ID:             a.ID,
		Name:           a.Name,
		Website:        a.Website,
		Email:          a.Email,
		BillingAddress: a.BillingAddress().String(),
		ZICompanyName:  a.ZICompanyName,
		ZIWebsite:      a.ZIWebsite,
		ZIAddress:      a.ZIBillingAddress().String(),
	}
}
