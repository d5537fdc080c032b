package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_StripsSchemeAndWWW(t *testing.T) {
	for _, in := range []string{
		"https://www.acme.com",
		"http://acme.com/products?ref=1",
		"www.acme.com",
		"ACME.COM",
		"acme.com.",
	} {
		got, err := Normalize(in)
		require.NoError(t, err, in)
		assert.Equal(t, "acme.com", got, in)
	}
}

func TestNormalize_ReducesToRegistrable(t *testing.T) {
	got, err := Normalize("https://app.portal.acme.co.uk/login")
	require.NoError(t, err)
	assert.Equal(t, "acme.co.uk", got)
}

func TestNormalize_Idempotent(t *testing.T) {
	first, err := Normalize("https://www.west.acme.com")
	require.NoError(t, err)
	second, err := Normalize(first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalize_Rejects(t *testing.T) {
	for _, in := range []string{"", "   ", "not a url at all", "localhost", "http://"} {
		_, err := Normalize(in)
		assert.Error(t, err, "%q", in)
	}
}

func TestFromEmail(t *testing.T) {
	got, err := FromEmail("jane.doe@mail.acme.com")
	require.NoError(t, err)
	assert.Equal(t, "acme.com", got)

	_, err = FromEmail("not-an-email")
	assert.Error(t, err)
	_, err = FromEmail("trailing@")
	assert.Error(t, err)
}

func TestCompanyLabel(t *testing.T) {
	assert.Equal(t, "acme", CompanyLabel("acme.com"))
	assert.Equal(t, "acmecorp", CompanyLabel("acme-corp.co.uk"))
	assert.Equal(t, "", CompanyLabel(""))
}
