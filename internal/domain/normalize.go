// Package domain extracts and canonicalizes registrable domains from URLs and
// email addresses, and classifies them against a disallow-list of consumer,
// disposable, and test domains.
package domain

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/net/publicsuffix"
)

var hostRe = regexp.MustCompile(`^[a-z0-9]([a-z0-9.-]*[a-z0-9])?$`)

// Normalize extracts the lowercase, scheme-stripped, www-stripped registrable
// domain (eTLD+1) from a URL or bare hostname. It is idempotent: normalizing
// an already-normalized domain returns it unchanged.
func Normalize(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", eris.New("domain: empty input")
	}

	if !strings.Contains(s, "://") {
		s = "http://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return "", eris.Wrap(err, "domain: parse url")
	}

	host := strings.TrimSuffix(u.Hostname(), ".")
	host = strings.TrimPrefix(host, "www.")
	if host == "" || !hostRe.MatchString(host) {
		return "", eris.Errorf("domain: no usable host in %q", raw)
	}
	if !strings.Contains(host, ".") {
		return "", eris.Errorf("domain: %q has no registrable suffix", host)
	}

	// Reduce to the registrable domain so "app.portal.acme.co.uk" and
	// "acme.co.uk" normalize identically.
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil && etld1 != "" {
		return etld1, nil
	}
	return host, nil
}

// FromEmail extracts and normalizes the domain of an email address.
func FromEmail(email string) (string, error) {
	e := strings.TrimSpace(email)
	at := strings.LastIndex(e, "@")
	if at < 0 || at == len(e)-1 {
		return "", eris.Errorf("domain: %q is not an email address", email)
	}
	return Normalize(e[at+1:])
}

// CompanyLabel returns the company-identifying portion of a normalized
// domain: the registrable label with the public suffix removed and any
// remaining non-alphanumerics stripped ("acme-corp.co.uk" -> "acmecorp").
// Returns "" when nothing identifying remains.
func CompanyLabel(normalized string) string {
	d := strings.ToLower(strings.TrimSpace(normalized))
	if d == "" {
		return ""
	}

	suffix, _ := publicsuffix.PublicSuffix(d)
	if suffix != "" && suffix != d {
		d = strings.TrimSuffix(d, "."+suffix)
	}
	// Keep only the last label in case a subdomain survived.
	if i := strings.LastIndex(d, "."); i >= 0 {
		d = d[i+1:]
	}

	var b strings.Builder
	for _, r := range d {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
