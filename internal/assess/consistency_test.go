package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/shell-assess/internal/model"
)

func TestCustomerConsistency_WebsiteMatch(t *testing.T) {
	flag := CustomerConsistency(model.Account{
		Name:    "Acme West LLC",
		Website: "https://west.acme.com",
	})
	assert.Equal(t, 100, flag.Score)
	assert.Contains(t, flag.Explanation, "Account Name vs Website domain")
}

func TestCustomerConsistency_BestPairingWins(t *testing.T) {
	flag := CustomerConsistency(model.Account{
		Name:          "Meridian Logistics",
		Website:       "https://totally-unrelated.com",
		ZICompanyName: "Meridian Logistics Inc",
	})
	assert.Equal(t, 100, flag.Score)
	assert.Contains(t, flag.Explanation, "Account Name vs ZI Company Name")
}

func TestCustomerConsistency_ZIWebsiteFallback(t *testing.T) {
	flag := CustomerConsistency(model.Account{
		Name:      "Northwind Traders",
		ZIWebsite: "northwind.com",
	})
	assert.Greater(t, flag.Score, 50)
	assert.Contains(t, flag.Explanation, "Account Name vs ZI Website domain")
}

func TestCustomerConsistency_NoWebsiteData(t *testing.T) {
	flag := CustomerConsistency(model.Account{Name: "Acme"})
	assert.Equal(t, 0, flag.Score)
	assert.Equal(t, "no website data available", flag.Explanation)
}

func TestCustomerConsistency_NoName(t *testing.T) {
	flag := CustomerConsistency(model.Account{Website: "acme.com"})
	assert.Equal(t, 0, flag.Score)
	assert.Contains(t, flag.Explanation, "no name")
}

func TestCustomerConsistency_UnparseableWebsite(t *testing.T) {
	flag := CustomerConsistency(model.Account{
		Name:    "Acme",
		Website: "not a url at all",
	})
	assert.Equal(t, 0, flag.Score)
	assert.Contains(t, flag.Explanation, "could not extract")
}

func TestCustomerConsistency_Mismatch(t *testing.T) {
	flag := CustomerConsistency(model.Account{
		Name:    "Acme",
		Website: "https://zenith-partners.com",
	})
	assert.Less(t, flag.Score, 50)
	assert.NotEmpty(t, flag.Explanation)
}
