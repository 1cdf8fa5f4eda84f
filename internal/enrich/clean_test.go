package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnrichmentPlainJSON(t *testing.T) {
	got, err := ParseEnrichment(`{
		"company_name": "Acme Robotics",
		"website_url": "https://acme.io",
		"linkedin_url": null,
		"amount_raised_usd": 5000000,
		"funding_round": "Series A",
		"investors": ["North Fund", "Beta Capital"],
		"lead_investor": "North Fund",
		"headquarter_country": "Germany"
	}`)
	require.NoError(t, err)

	assert.Equal(t, "Acme Robotics", got.CompanyName)
	assert.Equal(t, "https://acme.io", got.WebsiteURL)
	assert.Empty(t, got.LinkedInURL)
	require.NotNil(t, got.AmountRaisedUSD)
	assert.Equal(t, int64(5_000_000), *got.AmountRaisedUSD)
	assert.Equal(t, []string{"North Fund", "Beta Capital"}, got.Investors)
	assert.Equal(t, "Germany", got.HeadquarterCountry)
}

func TestParseEnrichmentFencedWithProse(t *testing.T) {
	raw := "Here is the extraction you asked for:\n```json\n" +
		`{"company_name": "Acme", "funding_round": "seed"}` +
		"\n```\nLet me know if you need anything else."

	got, err := ParseEnrichment(raw)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)
	assert.Equal(t, "seed", got.FundingRound)
}

func TestParseEnrichmentTrailingComma(t *testing.T) {
	got, err := ParseEnrichment(`{"company_name": "Acme", "investors": ["North Fund"],}`)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)
}

func TestParseEnrichmentGarbage(t *testing.T) {
	_, err := ParseEnrichment("I could not find any funding details in this article.")
	assert.Error(t, err)
}

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", `sure: {"a":1} hope that helps`, `{"a":1}`},
		{"no object", "nothing here", "nothing here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSONBlock(tt.raw))
		})
	}
}
