package resolve

import (
	"net/url"
	"strings"
)

// NormalizeDomain canonicalizes a raw URL or bare host to "https://host".
// Returns "" when the host lands on the parked/for-sale blocklist.
func NormalizeDomain(raw string, blocklist []string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" || hostBlocked(host, blocklist) {
		return ""
	}
	return "https://" + host
}

func hostBlocked(host string, blocklist []string) bool {
	for _, b := range blocklist {
		if b != "" && strings.Contains(host, b) {
			return true
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}
