package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBadlist() *Badlist {
	return NewBadlist([]string{"gmail.com", "yahoo.com", "ringcentral.com", "mailinator.com"})
}

func TestParseBadlistCSV(t *testing.T) {
	csv := "bad_domains\ngmail.com\nyahoo.com\n"
	entries, err := ParseBadlistCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"gmail.com", "yahoo.com"}, entries)
}

func TestParseBadlistCSV_BOMHeader(t *testing.T) {
	csv := "\uFEFFbad_domains\ngmail.com\n"
	entries, err := ParseBadlistCSV(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []string{"gmail.com"}, entries)
}

func TestParseBadlistCSV_MissingColumn(t *testing.T) {
	_, err := ParseBadlistCSV(strings.NewReader("domains\ngmail.com\n"))
	assert.Error(t, err)
}

func TestLookup_Exact(t *testing.T) {
	root, ok := testBadlist().Lookup("gmail.com")
	assert.True(t, ok)
	assert.Equal(t, "gmail.com", root)
}

func TestLookup_Subdomain(t *testing.T) {
	root, ok := testBadlist().Lookup("test.ringcentral.com")
	assert.True(t, ok)
	assert.Equal(t, "ringcentral.com", root)
}

func TestLookup_NotListed(t *testing.T) {
	_, ok := testBadlist().Lookup("acme.com")
	assert.False(t, ok)
}

func TestRepair_TrailingJunk(t *testing.T) {
	assert.Equal(t, "gmail.com", testBadlist().Repair("gmail.comno"))
	assert.Equal(t, "yahoo.com", testBadlist().Repair("yahoo.com1"))
}

func TestRepair_InvalidTrailingLabel(t *testing.T) {
	// "gmail.con" is not a real TLD; com/net/org are tried against the list.
	assert.Equal(t, "gmail.com", testBadlist().Repair("gmail.con"))
}

func TestRepair_NeverRewritesValidTLD(t *testing.T) {
	// gmail.io is a legitimate-looking domain; no rewrite even though
	// gmail.com is listed.
	assert.Equal(t, "gmail.io", testBadlist().Repair("gmail.io"))
}

func TestRepair_LeavesUnknownAlone(t *testing.T) {
	assert.Equal(t, "acme.comxyz", testBadlist().Repair("acme.comxyz"))
}

func TestContains(t *testing.T) {
	b := testBadlist()
	assert.True(t, b.Contains("GMAIL.COM "))
	assert.False(t, b.Contains("acme.com"))
}
