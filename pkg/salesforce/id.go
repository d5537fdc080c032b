package salesforce

import (
	"strings"

	"github.com/rotisserie/eris"
)

// suffixAlphabet maps a 5-bit case signature to its checksum character.
const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ012345"

// To18 converts a 15-character case-sensitive Salesforce ID into its
// 18-character case-insensitive form by appending a 3-character checksum.
// An ID already 18 characters long is returned unchanged.
func To18(id string) (string, error) {
	id = strings.TrimSpace(id)
	switch len(id) {
	case 18:
		return id, nil
	case 15:
	default:
		return "", eris.New("sf: id must be 15 or 18 characters")
	}

	var suffix [3]byte
	for chunk := 0; chunk < 3; chunk++ {
		bits := 0
		for i := 0; i < 5; i++ {
			ch := id[chunk*5+i]
			if ch >= 'A' && ch <= 'Z' {
				bits |= 1 << i
			}
		}
		suffix[chunk] = suffixAlphabet[bits]
	}
	return id + string(suffix[:]), nil
}

// To15 truncates an 18-character Salesforce ID to its 15-character form.
func To15(id string) (string, error) {
	id = strings.TrimSpace(id)
	switch len(id) {
	case 15:
		return id, nil
	case 18:
		return id[:15], nil
	default:
		return "", eris.New("sf: id must be 15 or 18 characters")
	}
}

// SameID reports whether two IDs refer to the same record, tolerating
// mixed 15 and 18 character forms. The shared 15-character prefix is
// case-sensitive.
func SameID(a, b string) bool {
	sa, errA := To15(a)
	sb, errB := To15(b)
	if errA != nil || errB != nil {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	return sa == sb
}

// ValidateIDs splits a list of candidate Account IDs into well-formed and
// malformed, preserving order within each group.
func ValidateIDs(ids []string) (valid, malformed []string) {
	for _, id := range ids {
		if IsValidAccountID(id) {
			valid = append(valid, id)
		} else {
			malformed = append(malformed, id)
		}
	}
	return valid, malformed
}

// IsValidAccountID reports whether id looks like a Salesforce Account
// record ID: the 001 key prefix and an alphanumeric body of 15 or 18
// characters.
func IsValidAccountID(id string) bool {
	id = strings.TrimSpace(id)
	if len(id) != 15 && len(id) != 18 {
		return false
	}
	if !strings.HasPrefix(id, "001") {
		return false
	}
	for i := 0; i < len(id); i++ {
		ch := id[i]
		switch {
		case ch >= '0' && ch <= '9':
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		default:
			return false
		}
	}
	return true
}
