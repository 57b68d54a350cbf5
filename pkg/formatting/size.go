// Package formatting converts between byte counts and the human-readable
// sizes used in configuration and logs.
package formatting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const unit = 1024

// multipliers maps accepted unit spellings to their base-1024 factor.
// SI spellings (MB) and IEC spellings (MiB) are both read as binary units.
var multipliers = map[string]float64{
	"":    1,
	"B":   1,
	"KB":  unit,
	"KIB": unit,
	"MB":  unit * unit,
	"MIB": unit * unit,
	"GB":  unit * unit * unit,
	"GIB": unit * unit * unit,
	"TB":  unit * unit * unit * unit,
	"TIB": unit * unit * unit * unit,
	"PB":  unit * unit * unit * unit * unit,
	"PIB": unit * unit * unit * unit * unit,
}

var suffixes = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// ParseBytes reads a size such as "100MB", "1.5 GiB", or "4096".
// Units are case-insensitive and a bare number is a byte count.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	num, suffix := s, ""
	if split >= 0 {
		num, suffix = s[:split], strings.TrimSpace(s[split:])
	}
	if num == "" {
		return 0, fmt.Errorf("invalid byte size %q: missing number", s)
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}

	mult, ok := multipliers[strings.ToUpper(suffix)]
	if !ok {
		return 0, fmt.Errorf("invalid byte size %q: unknown unit %q", s, suffix)
	}

	n := value * mult
	if n >= math.MaxInt64 {
		return 0, fmt.Errorf("invalid byte size %q: overflows int64", s)
	}
	return int64(n), nil
}

// FormatBytes renders n in the largest base-1024 unit that keeps the value
// at or above 1, with the given number of decimal places.
func FormatBytes(n int64, precision int) string {
	sign, value := "", float64(n)
	if n < 0 {
		sign, value = "-", -value
	}
	if value < unit {
		return sign + strconv.FormatFloat(value, 'f', 0, 64) + " B"
	}

	i := 0
	for value >= unit && i < len(suffixes)-1 {
		value /= unit
		i++
	}
	return sign + strconv.FormatFloat(value, 'f', max(precision, 0), 64) + " " + suffixes[i]
}
