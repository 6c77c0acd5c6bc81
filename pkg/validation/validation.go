package validation

import (
	"regexp"
	"strings"
)

var (
	tcinRegex    = regexp.MustCompile(`^\d{8,10}$`)
	gtinRegex    = regexp.MustCompile(`^\d{8,14}$`)
	zipcodeRegex = regexp.MustCompile(`^\d{5}$`)
)

// IsValidTCIN validates a Target product identifier (8-10 digits)
func IsValidTCIN(tcin string) bool {
	return tcinRegex.MatchString(tcin)
}

// IsValidGTIN validates a barcode identifier (8-14 digits)
func IsValidGTIN(gtin string) bool {
	return gtinRegex.MatchString(gtin)
}

// IsValidZipcode validates a US zip code (5 digits)
func IsValidZipcode(zipcode string) bool {
	return zipcodeRegex.MatchString(zipcode)
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
