package fetcher

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/shell-assess/internal/model"
)

// ReadAccountsCSV parses a CSV export of accounts. The first row is the
// header; unknown columns are ignored, rows with no ID or Name are skipped.
func ReadAccountsCSV(r io.Reader) ([]model.Account, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("csv: file is empty")
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	var accounts []model.Account
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}

		acct := rowToAccount(header, row)
		if acct.ID == "" && acct.Name == "" {
			continue
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}
