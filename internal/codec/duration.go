package codec

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	day = 24 * time.Hour
	// month and year are the mean Gregorian lengths.
	month = 2_630_016 * time.Second
	year  = 31_557_600 * time.Second
)

var durationUnits = map[string]time.Duration{
	"ns":      time.Nanosecond,
	"nsec":    time.Nanosecond,
	"us":      time.Microsecond,
	"µs":      time.Microsecond,
	"usec":    time.Microsecond,
	"ms":      time.Millisecond,
	"msec":    time.Millisecond,
	"s":       time.Second,
	"sec":     time.Second,
	"secs":    time.Second,
	"second":  time.Second,
	"seconds": time.Second,
	"m":       time.Minute,
	"min":     time.Minute,
	"mins":    time.Minute,
	"minute":  time.Minute,
	"minutes": time.Minute,
	"h":       time.Hour,
	"hr":      time.Hour,
	"hrs":     time.Hour,
	"hour":    time.Hour,
	"hours":   time.Hour,
	"d":       day,
	"day":     day,
	"days":    day,
	"w":       7 * day,
	"week":    7 * day,
	"weeks":   7 * day,
	"M":       month,
	"month":   month,
	"months":  month,
	"y":       year,
	"year":    year,
	"years":   year,
}

// formatUnits is the output order, largest first.
var formatUnits = []struct {
	suffix string
	size   time.Duration
}{
	{"d", day},
	{"h", time.Hour},
	{"m", time.Minute},
	{"s", time.Second},
	{"ms", time.Millisecond},
	{"us", time.Microsecond},
	{"ns", time.Nanosecond},
}

// ParseDuration parses a span written as integer+unit tokens, e.g. "15m",
// "2h30m", "1h 30m" or "15 m". Units are case sensitive ("M" is months).
// Fractions, signs and unit-less numbers are rejected.
func ParseDuration(text string) (time.Duration, error) {
	input := strings.TrimSpace(text)
	if input == "" {
		return 0, fmt.Errorf("empty duration")
	}

	var total time.Duration
	position := 0
	for position < len(input) {
		if input[position] == ' ' {
			position++
			continue
		}

		numberStart := position
		for position < len(input) && isDigit(input[position]) {
			position++
		}
		if numberStart == position {
			return 0, fmt.Errorf("duration %q: expected number at offset %d", text, numberStart)
		}
		magnitude, parseErr := strconv.ParseInt(input[numberStart:position], 10, 64)
		if parseErr != nil {
			return 0, fmt.Errorf("duration %q: number out of range", text)
		}

		for position < len(input) && input[position] == ' ' {
			position++
		}
		unitStart := position
		for position < len(input) && !isDigit(input[position]) && input[position] != ' ' {
			position++
		}
		unitText := input[unitStart:position]
		if unitText == "" {
			return 0, fmt.Errorf("duration %q: missing unit after %d", text, magnitude)
		}
		unit, known := durationUnits[unitText]
		if !known {
			return 0, fmt.Errorf("duration %q: unknown unit %q", text, unitText)
		}

		if magnitude > int64(math.MaxInt64/unit) {
			return 0, fmt.Errorf("duration %q: overflow", text)
		}
		step := time.Duration(magnitude) * unit
		if total > math.MaxInt64-step {
			return 0, fmt.Errorf("duration %q: overflow", text)
		}
		total += step
	}

	return total, nil
}

// FormatDuration renders d compactly, largest unit first ("1h30m", "45s").
// Zero renders as "0s".
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}

	var builder strings.Builder
	remaining := uint64(d)
	if d < 0 {
		builder.WriteByte('-')
		remaining = uint64(-(d + 1)) + 1
	}

	for _, unit := range formatUnits {
		size := uint64(unit.size)
		if remaining < size {
			continue
		}
		builder.WriteString(strconv.FormatUint(remaining/size, 10))
		builder.WriteString(unit.suffix)
		remaining %= size
	}
	return builder.String()
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
