package validation

import "strings"

const (
	cpfDigits    = 11
	cpfMaskedLen = 14 // 000.000.000-00
)

// Digits returns v with every character that is not an ASCII digit removed.
func Digits(v string) string {
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		if c := v[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ValidateCPF reports whether raw holds a valid CPF. Mask characters are
// ignored; the remaining digits must be eleven, not all equal, and carry both
// mod-11 check digits.
func ValidateCPF(raw string) bool {
	d := Digits(raw)
	if len(d) != cpfDigits || allSame(d) {
		return false
	}
	return cpfCheckDigit(d, 9) == int(d[9]-'0') && cpfCheckDigit(d, 10) == int(d[10]-'0')
}

// cpfCheckDigit computes the check digit over the first n digits, weighting
// them n+1 down to 2.
func cpfCheckDigit(d string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(d[i]-'0') * (n + 1 - i)
	}
	rem := (sum * 10) % 11
	if rem == 10 || rem == 11 {
		rem = 0
	}
	return rem
}

func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// MaskCPF formats the digits of raw progressively as 000.000.000-00.
// Partial input yields a partial mask; extra digits are dropped.
func MaskCPF(raw string) string {
	d := Digits(raw)
	var out string
	switch n := len(d); {
	case n <= 3:
		out = d
	case n <= 6:
		out = d[:3] + "." + d[3:]
	case n <= 9:
		out = d[:3] + "." + d[3:6] + "." + d[6:]
	default:
		out = d[:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:]
	}
	if len(out) > cpfMaskedLen {
		out = out[:cpfMaskedLen]
	}
	return out
}
