// Package producturl converts between TCINs and target.com product page URLs.
package producturl

import "regexp"

var tcinFromURLRegex = regexp.MustCompile(`/-/A-(\d{8,10})(?:[/?#]|$)`)

// ExtractTCIN pulls the TCIN out of a target.com product URL.
// Returns an empty string when the URL does not contain one.
func ExtractTCIN(url string) string {
	matches := tcinFromURLRegex.FindStringSubmatch(url)
	if matches == nil {
		return ""
	}
	return matches[1]
}

// ProductURL builds the canonical target.com product page URL for a TCIN.
func ProductURL(tcin string) string {
	return "https://www.target.com/p/-/A-" + tcin
}
