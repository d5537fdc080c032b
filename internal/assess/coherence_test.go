package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/shell-assess/internal/model"
)

func TestShellCoherence_SubsidiaryNameSharedDomain(t *testing.T) {
	child := model.Account{
		Name:    "Acme West LLC",
		Website: "https://west.acme.com",
	}
	parent := model.Account{
		Name:    "Acme Holdings",
		Website: "https://acme.com",
	}
	flag := ShellCoherence(child, parent, DefaultConfig())
	assert.GreaterOrEqual(t, flag.Score, 70)
	assert.Contains(t, flag.Explanation, "Customer Name vs Parent Name")
	assert.Contains(t, flag.Explanation, "Customer Website domain vs Parent Website domain")
}

func TestShellCoherence_IdenticalDomainsScorePerfectWebsite(t *testing.T) {
	child := model.Account{Website: "https://www.acme.com/contact"}
	parent := model.Account{Website: "acme.com"}
	flag := ShellCoherence(child, parent, DefaultConfig())
	assert.Equal(t, 100, flag.Score)
	assert.Contains(t, flag.Explanation, "scored 100")
	assert.Contains(t, flag.Explanation, "no comparable name data")
}

func TestShellCoherence_EnrichmentPairingWins(t *testing.T) {
	child := model.Account{
		Name:          "NW-T #4471",
		ZICompanyName: "Northwind Traders",
	}
	parent := model.Account{
		ZICompanyName: "Northwind Traders",
	}
	flag := ShellCoherence(child, parent, DefaultConfig())
	assert.Contains(t, flag.Explanation, "Customer ZI Company Name vs Parent ZI Company Name scored 100")
}

func TestShellCoherence_NameOnly(t *testing.T) {
	child := model.Account{Name: "Globex"}
	parent := model.Account{Name: "Globex"}
	flag := ShellCoherence(child, parent, DefaultConfig())
	assert.Equal(t, 100, flag.Score)
	assert.Contains(t, flag.Explanation, "no comparable website data")
}

func TestShellCoherence_NoComparableData(t *testing.T) {
	flag := ShellCoherence(model.Account{}, model.Account{}, DefaultConfig())
	assert.Equal(t, 0, flag.Score)
	assert.Contains(t, flag.Explanation, "insufficient data")
}

func TestShellCoherence_UnrelatedAccounts(t *testing.T) {
	child := model.Account{Name: "Zenith", Website: "zenith-partners.com"}
	parent := model.Account{Name: "Acme", Website: "acme.com"}
	flag := ShellCoherence(child, parent, DefaultConfig())
	assert.Less(t, flag.Score, 50)
	assert.GreaterOrEqual(t, flag.Score, 0)
}

func TestShellCoherence_WeightBlend(t *testing.T) {
	child := model.Account{Name: "Globex", Website: "globex.com"}
	parent := model.Account{Name: "Globex", Website: "initech.com"}

	even := ShellCoherence(child, parent, Config{NameWeight: 0.5, WebsiteWeight: 0.5})
	nameHeavy := ShellCoherence(child, parent, Config{NameWeight: 0.9, WebsiteWeight: 0.1})
	assert.Greater(t, nameHeavy.Score, even.Score)
	assert.LessOrEqual(t, nameHeavy.Score, 100)
}
