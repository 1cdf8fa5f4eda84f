package ats

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fundscout-engine/internal/domain"
)

// postingsFromJSONLD pulls schema.org JobPosting metadata out of
// <script type="application/ld+json"> blocks. Payloads may be a single
// posting object or a list of them.
func postingsFromJSONLD(doc *goquery.Document, pageURL string) []domain.JobPosting {
	var out []domain.JobPosting

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}

		switch v := payload.(type) {
		case map[string]any:
			if p, ok := jobPostingFromMap(v, pageURL); ok {
				out = append(out, p)
			}
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok {
					if p, ok := jobPostingFromMap(m, pageURL); ok {
						out = append(out, p)
					}
				}
			}
		}
	})
	return out
}

func jobPostingFromMap(m map[string]any, pageURL string) (domain.JobPosting, bool) {
	if t, _ := m["@type"].(string); t != "JobPosting" {
		return domain.JobPosting{}, false
	}

	title, _ := m["title"].(string)
	datePosted, _ := m["datePosted"].(string)

	var u string
	if org, ok := m["hiringOrganization"].(map[string]any); ok {
		u, _ = org["sameAs"].(string)
	}
	if u == "" {
		u, _ = m["url"].(string)
	}
	if u == "" {
		u = pageURL
	}

	return domain.JobPosting{
		Title:    strings.TrimSpace(title),
		URL:      u,
		PostedAt: parseISO(datePosted),
	}, true
}
