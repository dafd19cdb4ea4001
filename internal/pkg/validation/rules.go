package validation

import (
	"regexp"
	"strconv"
)

// Validation rule patterns
var (
	// EmailPattern matches ordinary lowercase email addresses.
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// ValidEmail reports whether the value looks like an email address.
func ValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// ParsePeriod validates mes/ano query values and returns them as integers.
// Month must be 1..12 and year a plausible four digit value.
func ParsePeriod(mes, ano string) (month, year int, ok bool) {
	month, err := strconv.Atoi(mes)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	year, err = strconv.Atoi(ano)
	if err != nil || year < 2000 || year > 2100 {
		return 0, 0, false
	}
	return month, year, true
}
