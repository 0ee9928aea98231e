package domain

import "fmt"

// FormatCents renders a non-negative amount of minor currency units as a
// major-unit decimal with exactly two places: 2100 -> "21.00".
// Integer arithmetic keeps the output exact for any cent amount.
func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// ShortID returns the first 8 characters of an identifier, the form used
// in CSV exports, email subjects and generated filenames.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
