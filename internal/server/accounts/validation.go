package accounts

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/jumpaku/accountd/internal/apperr"
)

const (
	loginIDMinLen     = 1
	loginIDMaxLen     = 50
	passwordMinLen    = 8
	passwordMaxLen    = 128
	displayNameMinLen = 1
	displayNameMaxLen = 50
)

// rule is a single named validation predicate; ok reports whether the value
// passes.
type rule struct {
	ok      func(string) bool
	message string
}

// check evaluates every rule and collects the messages of those that failed.
// All rules run even after a failure so callers see every violation at once.
func check(value string, rules []rule) []string {
	var violations []string
	for _, r := range rules {
		if !r.ok(value) {
			violations = append(violations, r.message)
		}
	}
	return violations
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}

// hasForbiddenRune reports whether s contains whitespace, control or format
// characters.
func hasForbiddenRune(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || unicode.Is(unicode.Cf, r) {
			return true
		}
	}
	return false
}

func lengthWithin(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return min <= n && n <= max
}

func validateLoginID(loginID string) []string {
	return check(loginID, []rule{
		{func(s string) bool { return s != "" }, "loginId must be not empty"},
		{func(s string) bool { return !hasForbiddenRune(s) }, "loginId must not contain control character or spaces"},
		{func(s string) bool { return lengthWithin(s, loginIDMinLen, loginIDMaxLen) },
			fmt.Sprintf("loginId must be length of [%d, %d]", loginIDMinLen, loginIDMaxLen)},
		{isASCII, "loginId must contain only ASCII characters"},
	})
}

func validatePassword(password string) []string {
	return check(password, []rule{
		{isASCII, "password must contain only ASCII characters"},
		{func(s string) bool { return !hasForbiddenRune(s) }, "password must not contain control characters or spaces"},
		{func(s string) bool { return lengthWithin(s, passwordMinLen, passwordMaxLen) },
			fmt.Sprintf("password must be length in [%d, %d]", passwordMinLen, passwordMaxLen)},
	})
}

func validateDisplayName(displayName string) []string {
	return check(displayName, []rule{
		{func(s string) bool { return s != "" }, "displayName must be not empty"},
		{func(s string) bool { return !hasForbiddenRune(s) }, "displayName must not contain control character or spaces"},
		{func(s string) bool { return lengthWithin(s, displayNameMinLen, displayNameMaxLen) },
			fmt.Sprintf("displayName must be length of [%d, %d]", displayNameMinLen, displayNameMaxLen)},
	})
}

// validateCreateParams checks all three fields, even when an earlier one has
// already failed, and aggregates every violation into one InvalidParams
// error. Returns nil when all fields are valid.
func validateCreateParams(params CreateParams) *apperr.Error {
	var violations []string
	violations = append(violations, validateLoginID(params.LoginID)...)
	violations = append(violations, validatePassword(params.Password)...)
	violations = append(violations, validateDisplayName(params.DisplayName)...)
	if len(violations) == 0 {
		return nil
	}
	return apperr.New(apperr.InvalidParams, "Request validation failed").WithDetails(violations...)
}
