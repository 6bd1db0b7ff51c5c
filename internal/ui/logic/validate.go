package logic

import "regexp"

// Syntactic check only: local@domain.tld shape, no whitespace.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email looks like a deliverable address.
// It gates subscription submission; an invalid address never reaches
// the network.
func IsValidEmail(email string) bool {
	return emailRE.MatchString(email)
}
