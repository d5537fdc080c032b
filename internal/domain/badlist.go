package domain

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// validShortTLDs are real TLDs that the malformed-suffix repair must never
// rewrite ("acme.io" is not a typo for "acme.com").
var validShortTLDs = map[string]struct{}{
	"com": {}, "net": {}, "org": {}, "edu": {}, "gov": {}, "mil": {}, "int": {},
	"co": {}, "io": {}, "ai": {}, "us": {}, "uk": {}, "de": {}, "ca": {}, "au": {},
	"biz": {}, "info": {}, "app": {}, "dev": {}, "xyz": {}, "me": {}, "tv": {},
}

// repairTLDs are the TLDs tried when repairing a malformed trailing label.
var repairTLDs = []string{"com", "net", "org"}

// Badlist is an immutable set of disallowed root domains. It is loaded once
// at startup and shared read-only across all evaluations.
type Badlist struct {
	roots map[string]struct{}
}

// NewBadlist builds a Badlist from raw domain entries. Entries are lowercased
// and trimmed; empties are dropped.
func NewBadlist(entries []string) *Badlist {
	roots := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		d := cleanEntry(e)
		if d != "" {
			roots[d] = struct{}{}
		}
	}
	return &Badlist{roots: roots}
}

// ParseBadlistCSV reads a single-column CSV with a "bad_domains" header and
// returns the listed domains. A UTF-8 BOM on the header is tolerated.
func ParseBadlistCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, eris.Wrap(err, "badlist: read header")
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF"), "bad_domains") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, eris.Errorf("badlist: no bad_domains column in header %v", header)
	}

	var entries []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "badlist: read row")
		}
		if col < len(row) {
			entries = append(entries, row[col])
		}
	}
	return entries, nil
}

func cleanEntry(e string) string {
	d := strings.ToLower(strings.TrimSpace(e))
	d = strings.TrimPrefix(d, "\uFEFF")
	d = strings.NewReplacer("\t", "", `"`, "").Replace(d)
	return d
}

// Len returns the number of listed root domains.
func (b *Badlist) Len() int {
	return len(b.roots)
}

// Contains reports whether the exact domain is listed.
func (b *Badlist) Contains(domain string) bool {
	_, ok := b.roots[strings.ToLower(strings.TrimSpace(domain))]
	return ok
}

// Lookup tests a normalized domain against the list and returns the matched
// root. Matches exact entries, entries reachable by stripping leading
// subdomain labels, and entries recovered by malformed-suffix repair.
func (b *Badlist) Lookup(domain string) (string, bool) {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" {
		return "", false
	}

	if _, ok := b.roots[d]; ok {
		return d, true
	}

	// Strip leading subdomain labels: test.ringcentral.com -> ringcentral.com.
	rest := d
	for {
		i := strings.Index(rest, ".")
		if i < 0 {
			break
		}
		rest = rest[i+1:]
		if _, ok := b.roots[rest]; ok {
			return rest, true
		}
	}

	if repaired := b.Repair(d); repaired != d {
		if _, ok := b.roots[repaired]; ok {
			return repaired, true
		}
	}

	return "", false
}

// Repair applies list-driven corrections for known malformed-domain
// artifacts and returns the corrected domain, or the input unchanged when no
// correction applies. Two patterns are handled:
//
//  1. A listed domain with trailing junk appended: "gmail.comno" -> "gmail.com"
//     when the residue is short and alphanumeric.
//  2. A garbage trailing label replacing a common TLD: "gmail.comno" also
//     resolves via "gmail" + each of com/net/org when the trailing label is
//     not a real TLD.
//
// The heuristic is list-driven and can miscorrect legitimate unusual domains;
// it only ever rewrites to a domain already on the list.
func (b *Badlist) Repair(domain string) string {
	d := strings.ToLower(strings.TrimSpace(domain))
	if d == "" {
		return d
	}
	if _, ok := b.roots[d]; ok {
		return d
	}

	// Pattern 1: listed root plus a short alphanumeric residue.
	for root := range b.roots {
		if strings.HasPrefix(d, root) && len(d) > len(root) {
			extra := d[len(root):]
			if len(extra) <= 4 && isAlnum(extra) {
				return root
			}
		}
	}

	// Pattern 2: replace a clearly invalid trailing label with a common TLD.
	if i := strings.LastIndex(d, "."); i > 0 {
		base, tld := d[:i], d[i+1:]
		if _, valid := validShortTLDs[tld]; !valid && isAlnum(tld) {
			for _, repl := range repairTLDs {
				candidate := base + "." + repl
				if _, ok := b.roots[candidate]; ok {
					return candidate
				}
			}
		}
	}

	return d
}

func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
