package resolve

import (
	"regexp"
	"strings"
)

var (
	// Trailing legal-entity suffixes, optionally dotted: "Acme Corp." -> "Acme".
	legalSuffixRe = regexp.MustCompile(`(?i)\b(inc|corp|co|llc|ltd|gmbh|ag|sas|bv)\b\.?\s*$`)

	// Names that already carry a TLD, e.g. "IndustrialMind.ai".
	embeddedTLDRe = regexp.MustCompile(`(?i)([a-z0-9\-]+)\.([a-z]{2,})$`)

	slugCleaner = strings.NewReplacer(" ", "", ".", "", ",", "")
)

// SlugAndTLD derives the domain-guessing slug from a company name. When the
// name ends in something that reads as "name.tld", that TLD (with leading
// dot) comes back as the only candidate; otherwise tld is "".
func SlugAndTLD(companyName string) (slug, tld string) {
	name := strings.TrimSpace(companyName)
	name = strings.TrimSpace(legalSuffixRe.ReplaceAllString(name, ""))

	if m := embeddedTLDRe.FindStringSubmatch(name); m != nil {
		return strings.ToLower(m[1]), "." + strings.ToLower(m[2])
	}
	return slugCleaner.Replace(strings.ToLower(name)), ""
}
