package codec

import "time"

// ParseTimestamp accepts RFC3339 with or without fractional seconds and any
// UTC offset. The result is normalised to UTC.
func ParseTimestamp(text string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339Nano, text)
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

// FormatTimestamp renders t in UTC using RFC3339Nano (trailing zeros trimmed).
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
