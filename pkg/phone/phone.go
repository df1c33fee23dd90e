// Package phone validates and normalizes phone numbers to E.164.
//
// The same rules live in the database as normalize_phone/is_valid_e164 so
// triggers and backfills agree with the application layer.
package phone

import (
	"regexp"
	"strings"

	pkgerrors "github.com/get-hunter/hero365-app-sub002/pkg/errors"
)

// e164Re matches a + followed by a non-zero digit and up to 14 more digits.
var e164Re = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

var nonDigitRe = regexp.MustCompile(`[^0-9+]`)

// IsValidE164 reports whether the input is a well-formed E.164 number.
func IsValidE164(number string) bool {
	return e164Re.MatchString(number)
}

// CountryCode extracts the leading country code from a valid E.164 number.
// North American numbers (country code 1) return "1"; other numbers return
// the first two digits, matching the fixed-offset extraction the database
// functions use.
func CountryCode(number string) (string, error) {
	if !IsValidE164(number) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "not a valid E.164 number")
	}
	digits := strings.TrimPrefix(number, "+")
	if strings.HasPrefix(digits, "1") {
		return "1", nil
	}
	if len(digits) < 2 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "number too short for country code")
	}
	return digits[:2], nil
}

// Normalize coerces arbitrary input into E.164. Already-valid numbers are
// returned unchanged. Otherwise formatting characters are stripped, the
// default country code is prefixed, and the result is re-validated.
func Normalize(raw, defaultCountryCode string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "phone number is empty")
	}
	if IsValidE164(trimmed) {
		return trimmed, nil
	}

	hadPlus := strings.HasPrefix(trimmed, "+")
	digits := nonDigitRe.ReplaceAllString(trimmed, "")
	digits = strings.TrimPrefix(digits, "+")
	if digits == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "phone number has no digits")
	}

	// Input that already carried a + keeps its own country code; everything
	// else gets the default prefixed before re-validation.
	var candidate string
	if hadPlus {
		candidate = "+" + digits
	} else {
		code := strings.TrimSpace(defaultCountryCode)
		if code == "" {
			code = "1"
		}
		candidate = "+" + code + digits
	}

	if IsValidE164(candidate) {
		return candidate, nil
	}

	return "", pkgerrors.New(pkgerrors.CodeValidation, "could not normalize phone number").
		WithDetails(map[string]any{"input": raw})
}
