package validation

import "strings"

const (
	rgLen  = 9
	cnhLen = 11
)

// NormalizeRG upper-cases raw and keeps only digits and X, cutting everything
// after the first X and limiting the result to nine characters.
func NormalizeRG(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if b.Len() == rgLen {
			break
		}
		if r == 'X' {
			b.WriteRune(r)
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeCNH keeps only the digits of a driver's licence number.
func NormalizeCNH(raw string) string {
	return Digits(raw)
}

// RG checks that a non-empty RG has exactly nine characters.
func RG(fieldName string) Validator {
	return func(v string) string {
		if v != "" && len(v) != rgLen {
			return fieldName + " must contain 9 characters."
		}
		return ""
	}
}

// CNH checks that a non-empty CNH has exactly eleven digits.
func CNH(fieldName string) Validator {
	return func(v string) string {
		if v != "" && (len(v) != cnhLen || Digits(v) != v) {
			return fieldName + " must contain 11 digits."
		}
		return ""
	}
}

// CPF checks the checksum of a non-empty CPF.
func CPF(fieldName string) Validator {
	return func(v string) string {
		if v != "" && !ValidateCPF(v) {
			return fieldName + " is invalid."
		}
		return ""
	}
}
