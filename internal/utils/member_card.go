package utils

import "strings"

// ValidMemberCardNumber reports whether a member card number is
// acceptable.  The number is optional: empty input is valid.  A present
// number must start with "ODI" followed by exactly ten digits, thirteen
// characters in total.
func ValidMemberCardNumber(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	if !strings.HasPrefix(s, "ODI") {
		return false
	}
	if len(s) != 13 {
		return false
	}
	for _, r := range s[3:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
