package salesforce

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// maxQueryLimit caps how many Account IDs a caller-supplied query may return.
const maxQueryLimit = 10000

var (
	selectIDRe = regexp.MustCompile(`(?i)^\s*select\s+id\s+from\s+account\b`)
	limitRe    = regexp.MustCompile(`(?i)\blimit\s+(\d+)\s*$`)
)

// dangerousKeywords are rejected anywhere in a caller-supplied query. SOQL
// is read-only by definition, but the query string is interpolated into an
// API call and gets no second chance.
var dangerousKeywords = []string{
	"insert", "update", "delete", "upsert", "merge", "drop", "truncate", "--", "/*",
}

// ValidateIDQuery checks that a caller-supplied SOQL query is a plain
// Id-only SELECT against Account, and returns the query with its LIMIT
// clamped to maxQueryLimit (appending one if absent).
func ValidateIDQuery(soql string) (string, error) {
	q := strings.TrimSpace(soql)
	if q == "" {
		return "", eris.New("sf: empty query")
	}
	if !selectIDRe.MatchString(q) {
		return "", eris.New("sf: query must be of the form SELECT Id FROM Account ...")
	}

	lower := strings.ToLower(q)
	for _, kw := range dangerousKeywords {
		if strings.Contains(lower, kw) {
			return "", eris.New(fmt.Sprintf("sf: query contains disallowed token %q", kw))
		}
	}

	if m := limitRe.FindStringSubmatch(q); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 {
			return "", eris.New("sf: invalid LIMIT clause")
		}
		if n > maxQueryLimit {
			q = limitRe.ReplaceAllString(q, fmt.Sprintf("LIMIT %d", maxQueryLimit))
		}
		return q, nil
	}
	return fmt.Sprintf("%s LIMIT %d", q, maxQueryLimit), nil
}

// escapeSoql escapes single quotes in SOQL string literals to prevent injection.
func escapeSoql(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}
