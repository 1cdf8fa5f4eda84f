package enrich

import (
	"encoding/json"
	"fmt"
	"strings"

	"fundscout-engine/internal/domain"
)

type rawEnrichment struct {
	CompanyName        *string  `json:"company_name"`
	WebsiteURL         *string  `json:"website_url"`
	LinkedInURL        *string  `json:"linkedin_url"`
	AmountRaisedUSD    *int64   `json:"amount_raised_usd"`
	FundingRound       *string  `json:"funding_round"`
	Investors          []string `json:"investors"`
	LeadInvestor       *string  `json:"lead_investor"`
	HeadquarterCountry *string  `json:"headquarter_country"`
}

// ParseEnrichment decodes a model reply, tolerating markdown fences, prose
// around the object and trailing commas.
func ParseEnrichment(raw string) (*domain.Enrichment, error) {
	cleaned := CleanJSONBlock(raw)

	var r rawEnrichment
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		// last-ditch repair for trailing commas
		repaired := strings.ReplaceAll(cleaned, ",}", "}")
		repaired = strings.ReplaceAll(repaired, ", ]", "]")
		if err2 := json.Unmarshal([]byte(repaired), &r); err2 != nil {
			return nil, fmt.Errorf("parse enrichment: %w", err)
		}
	}

	return &domain.Enrichment{
		CompanyName:        deref(r.CompanyName),
		WebsiteURL:         deref(r.WebsiteURL),
		LinkedInURL:        deref(r.LinkedInURL),
		AmountRaisedUSD:    r.AmountRaisedUSD,
		FundingRound:       deref(r.FundingRound),
		Investors:          r.Investors,
		LeadInvestor:       deref(r.LeadInvestor),
		HeadquarterCountry: deref(r.HeadquarterCountry),
	}, nil
}

// CleanJSONBlock strips ```json fences and trims to the outermost braces.
func CleanJSONBlock(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
