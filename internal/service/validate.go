package service

import (
	"fmt"
	"regexp"
	"strings"
)

// minPasswordLength is the minimum accepted password length for
// registration. Longer requirements (symbols, case mixing) are not
// enforced.
const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// missingFieldsMessage formats the failure message for absent or empty
// required fields, preserving the order in which fields were checked.
func missingFieldsMessage(fields []string) string {
	return fmt.Sprintf("Missing required fields: %s", strings.Join(fields, ", "))
}

// validEmailFormat reports whether the email matches the accepted
// address shape. This is a syntactic check only; deliverability is not
// verified.
func validEmailFormat(email string) bool {
	return emailPattern.MatchString(email)
}

// validPasswordStrength reports whether the password meets the minimum
// length requirement.
func validPasswordStrength(password string) bool {
	return len(password) >= minPasswordLength
}
