package vault

import (
	"strings"
	"unicode"
)

// MinPasswordLength is the minimum length requirement for passwords.
const MinPasswordLength = 12

// specialChars is the set of characters that satisfy the special-character
// requirement.
const specialChars = "!@#$%^&*()-_=+[]{};:'\",.<>/?`~|\\"

// deniedSubstrings are common passwords and fragments that must not appear
// anywhere in a password, case-insensitively.
var deniedSubstrings = []string{
	"password",
	"123456",
	"qwerty",
	"letmein",
	"admin",
	"welcome",
	"secret",
	"iloveyou",
	"dragon",
	"monkey",
}

// requiredScore is the minimum score for a password to count as strong:
// at most one of the six requirements may fail.
const requiredScore = 5

// ValidationResult reports how a password scored against the policy.
type ValidationResult struct {
	// Strong is true iff Score >= 5.
	Strong bool

	// Score is the number of satisfied requirements, 0 through 6.
	Score int

	// Unmet lists the requirements that failed, in policy order.
	Unmet []string
}

// ValidatePassword scores a password against the fixed strength policy.
// Each satisfied check contributes one point: minimum length, uppercase,
// lowercase, digit, special character, and absence of deny-listed
// substrings. Pure and deterministic; performs no I/O.
func ValidatePassword(password string) ValidationResult {
	result := ValidationResult{}

	check := func(ok bool, requirement string) {
		if ok {
			result.Score++
		} else {
			result.Unmet = append(result.Unmet, requirement)
		}
	}

	check(len(password) >= MinPasswordLength, "at least 12 characters")
	check(strings.ContainsFunc(password, unicode.IsUpper), "an uppercase letter")
	check(strings.ContainsFunc(password, unicode.IsLower), "a lowercase letter")
	check(strings.ContainsFunc(password, unicode.IsDigit), "a digit")
	check(strings.ContainsAny(password, specialChars), "a special character")
	check(!containsDeniedSubstring(password), "no common password fragments")

	result.Strong = result.Score >= requiredScore
	return result
}

func containsDeniedSubstring(password string) bool {
	lowered := strings.ToLower(password)
	for _, denied := range deniedSubstrings {
		if strings.Contains(lowered, denied) {
			return true
		}
	}
	return false
}
