package exporter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/shell-assess/internal/model"
)

func exportRows(t *testing.T, assessments []model.Assessment) [][]string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, assessments))
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestExportCSV_HeaderOnly(t *testing.T) {
	rows := exportRows(t, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, reportColumns, rows[0])
}

func TestExportCSV_FullyEvaluatedAccount(t *testing.T) {
	hasShell := true
	rows := exportRows(t, []model.Assessment{{
		Account: model.Account{
			ID:       "001000000000001AAA",
			Name:     "Acme West LLC",
			Website:  "west.acme.com",
			ParentID: "001000000000002AAA",
		},
		Flags: model.RelationshipFlags{
			BadDomain:              model.BadDomainFlag{IsBad: false, Explanation: "no bad domain detected"},
			HasShell:               &hasShell,
			CustomerConsistency:    &model.ScoreFlag{Score: 100, Explanation: "name matches website"},
			CustomerShellCoherence: &model.ScoreFlag{Score: 82, Explanation: "names and domains align"},
			AddressConsistency:     &model.AddressFlag{IsConsistent: true, Explanation: "state and country match"},
		},
		AI: &model.AIAssessment{Success: true, ConfidenceScore: 90, ExplanationBullets: []string{"strong link", "shared domain"}},
	}})

	require.Len(t, rows, 2)
	row := rows[1]
	require.Len(t, row, len(reportColumns))
	assert.Equal(t, "001000000000001AAA", row[0])
	assert.Equal(t, "false", row[5])
	assert.Equal(t, "true", row[7])
	assert.Equal(t, "100", row[8])
	assert.Equal(t, "82", row[10])
	assert.Equal(t, "true", row[12])
	assert.Equal(t, "90", row[14])
	assert.Equal(t, "strong link; shared domain", row[15])
}

func TestExportCSV_GatedAccountHasBlankCells(t *testing.T) {
	rows := exportRows(t, []model.Assessment{{
		Account: model.Account{ID: "001000000000001AAA", Name: "Acme"},
		Flags: model.RelationshipFlags{
			BadDomain: model.BadDomainFlag{IsBad: true, Explanation: `email domain "gmail.com" matches disallowed root domain "gmail.com"`},
		},
	}})

	require.Len(t, rows, 2)
	row := rows[1]
	require.Len(t, row, len(reportColumns))
	assert.Equal(t, "true", row[5])
	for _, i := range []int{7, 8, 9, 10, 11, 12, 13, 14, 15} {
		assert.Empty(t, row[i], "column %d should be blank", i)
	}
}

func TestExportCSV_FailedAIShowsError(t *testing.T) {
	rows := exportRows(t, []model.Assessment{{
		Account: model.Account{ID: "001000000000001AAA"},
		AI:      &model.AIAssessment{Success: false, Error: "scorer: response contains no JSON object"},
	}})

	require.Len(t, rows, 2)
	assert.Empty(t, rows[1][14])
	assert.Equal(t, "scorer: response contains no JSON object", rows[1][15])
}
