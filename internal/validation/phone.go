package validation

const (
	areaCodeLen    = 2
	phonePrefixLen = 5
	phoneSuffixLen = 4
)

// MaskPhone formats the digits of raw progressively as (XX) XXXXX-XXXX.
// The dash appears once a sixth subscriber digit arrives; digits beyond the
// eleven-digit mobile format are dropped.
func MaskPhone(raw string) string {
	d := Digits(raw)
	if len(d) <= areaCodeLen {
		return d
	}

	sub := d[areaCodeLen:]
	if len(sub) > phonePrefixLen {
		tail := sub[phonePrefixLen:]
		if len(tail) > phoneSuffixLen {
			tail = tail[:phoneSuffixLen]
		}
		sub = sub[:phonePrefixLen] + "-" + tail
	}
	return "(" + d[:areaCodeLen] + ") " + sub
}
