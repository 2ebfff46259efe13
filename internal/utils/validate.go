package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// IsBlank reports whether the value is empty after trimming whitespace.
func IsBlank(s string) bool { return strings.TrimSpace(s) == "" }

// ValidEmail applies the legacy address rule: the value must contain
// "@gmail.com". Deliberately not a general RFC check.
func ValidEmail(s string) bool { return strings.Contains(s, "@gmail.com") }

// ValidPhone accepts exactly 10 digits and nothing else.
func ValidPhone(s string) bool { return phonePattern.MatchString(s) }

// HasDigits reports whether the value contains any digit. City and
// nationality names must not.
func HasDigits(s string) bool { return strings.ContainsAny(s, "0123456789") }

// ValidPrice reports whether the value parses as a finite decimal number.
// ParseFloat also accepts "NaN" and "Inf", which a DECIMAL column cannot
// store, so those are rejected here as a validation error.
func ValidPrice(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ValidDate reports whether the value is an ISO date (YYYY-MM-DD).
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// NormalizeTime validates a clock value and returns it in HH:MM:SS form.
// Five-character HH:MM input is padded with ":00" seconds, matching how the
// show forms submit times.
func NormalizeTime(s string) (string, bool) {
	if len(s) == 5 {
		s += ":00"
	}
	if _, err := time.Parse("15:04:05", s); err != nil {
		return "", false
	}
	return s, true
}
