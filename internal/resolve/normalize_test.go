package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDomain(t *testing.T) {
	blocklist := []string{"godaddy.com", "sedo.com"}

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare host", "acme.io", "https://acme.io"},
		{"strips www", "https://www.acme.io", "https://acme.io"},
		{"strips path and query", "https://acme.io/about?ref=x", "https://acme.io"},
		{"http upgraded", "http://acme.io", "https://acme.io"},
		{"uppercase host lowered", "https://ACME.IO", "https://acme.io"},
		{"blocklisted", "https://www.godaddy.com/parked", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDomain(tt.raw, blocklist))
		})
	}
}

func TestSlugAndTLD(t *testing.T) {
	tests := []struct {
		name     string
		company  string
		wantSlug string
		wantTLD  string
	}{
		{"plain name", "Acme", "acme", ""},
		{"spaces collapsed", "Blue River Tech", "bluerivertech", ""},
		{"legal suffix dropped", "Acme Inc.", "acme", ""},
		{"legal suffix undotted", "Acme Ltd", "acme", ""},
		{"embedded tld", "IndustrialMind.ai", "industrialmind", ".ai"},
		{"embedded tld after suffix", "Vercel Inc", "vercel", ""},
		{"commas removed", "Foo, Bar", "foobar", ""},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, tld := SlugAndTLD(tt.company)
			assert.Equal(t, tt.wantSlug, slug)
			assert.Equal(t, tt.wantTLD, tld)
		})
	}
}
