package diagram

import (
	"strconv"
	"strings"
)

// FormatValue renders a raw scalar's textual representation for display.
// The rules, in order:
//
//   - already double-quoted text is returned verbatim, which makes the
//     function idempotent: FormatValue(FormatValue(s)) == FormatValue(s)
//   - the keywords true, false, and null render lowercase and unquoted
//   - anything parseable as a float renders in canonical numeric form
//   - everything else is wrapped in double quotes
//
// Numeric-looking strings lose their original formatting (leading
// zeros, exponent case) when round-tripped through the float parser.
// That normalization is accepted as lossy.
func FormatValue(raw string) string {
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		return raw
	}
	switch strings.ToLower(raw) {
	case "true", "false", "null":
		return strings.ToLower(raw)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return `"` + raw + `"`
}
