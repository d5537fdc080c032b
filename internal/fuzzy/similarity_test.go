package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_identical(t *testing.T) {
	assert.Equal(t, 100, Score("Acme Corporation", "Acme Corporation"))
}

func TestScore_LegalSuffixIgnored(t *testing.T) {
	assert.Equal(t, 100, Score("Acme West LLC", "Acme West"))
	assert.Equal(t, 100, Score("Acme, Inc.", "Acme"))
}

func TestScore_WordOrderIgnored(t *testing.T) {
	assert.Equal(t, 100, Score("West Acme", "Acme West"))
}

func TestScore_SubsetScoresHigh(t *testing.T) {
	// Token-set pairing matches the shared "acme" against both fulls.
	s := Score("Acme", "Acme West")
	assert.GreaterOrEqual(t, s, 60)
}

func TestScore_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"Acme West", "Acme Corporation"},
		{"Globex", "Initech"},
		{"Stark Industries", "Stark Industrial"},
	}
	for _, p := range pairs {
		assert.Equal(t, Score(p[0], p[1]), Score(p[1], p[0]), "%q vs %q", p[0], p[1])
	}
}

func TestScore_EmptyInput(t *testing.T) {
	assert.Equal(t, 0, Score("", "Acme"))
	assert.Equal(t, 0, Score("Acme", ""))
	assert.Equal(t, 0, Score("", ""))
	// Normalizes to empty.
	assert.Equal(t, 0, Score("LLC", "Acme"))
}

func TestScore_Disjoint(t *testing.T) {
	assert.Less(t, Score("Globex", "Initech"), 60)
}

func TestScore_Range(t *testing.T) {
	inputs := []string{"", "a", "Acme West LLC", "Véritable Café & Co", "x y z"}
	for _, a := range inputs {
		for _, b := range inputs {
			s := Score(a, b)
			assert.GreaterOrEqual(t, s, 0)
			assert.LessOrEqual(t, s, 100)
		}
	}
}

func TestNormalizeName_Diacritics(t *testing.T) {
	assert.Equal(t, "cafe veritable", NormalizeName("Café Véritable"))
}

func TestNormalizeName_Ampersand(t *testing.T) {
	assert.Equal(t, "smith and jones", NormalizeName("Smith & Jones, LLC"))
}

func TestNormalizeName_Punctuation(t *testing.T) {
	assert.Equal(t, "o reilly media", NormalizeName("O'Reilly Media, Inc."))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"acme", "west"}, Tokens("acme west"))
	assert.Nil(t, Tokens(""))
}
