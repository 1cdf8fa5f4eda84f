package ats

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"fundscout-engine/internal/domain"
	"fundscout-engine/internal/web"
)

// htmlBoard covers every provider without a stable public API: Ashby,
// Workable, BambooHR and internal careers pages. All share the same
// structured-data and anchor-scanning primitives; only the selection
// heuristic differs per kind.
type htmlBoard struct {
	kind         domain.Provider
	client       *web.Client
	techKeywords []string
}

func newHTMLBoard(kind domain.Provider, client *web.Client, techKeywords []string) *htmlBoard {
	return &htmlBoard{kind: kind, client: client, techKeywords: techKeywords}
}

func (b *htmlBoard) Kind() domain.Provider { return b.kind }

func (b *htmlBoard) FetchJobs(ctx context.Context, careersURL string) ([]domain.JobPosting, error) {
	doc, err := b.client.Document(ctx, careersURL)
	if err != nil {
		return nil, err
	}

	switch b.kind {
	case domain.ProviderWorkable:
		// Workable job links look like apply.workable.com/<company>/j/<id>.
		return b.scanAnchors(doc, careersURL, func(text, href string) bool {
			return strings.Contains(href, "/j/")
		}), nil

	case domain.ProviderBambooHR:
		return b.scanAnchors(doc, careersURL, b.textLooksTechnical), nil

	default: // Ashby, Internal: structured metadata first, anchors as fallback
		if postings := postingsFromJSONLD(doc, careersURL); len(postings) > 0 {
			return postings, nil
		}
		return b.scanAnchors(doc, careersURL, b.textLooksTechnical), nil
	}
}

func (b *htmlBoard) textLooksTechnical(text, _ string) bool {
	low := strings.ToLower(text)
	for _, kw := range b.techKeywords {
		if strings.Contains(low, kw) {
			return true
		}
	}
	return false
}

// scanAnchors yields one dateless posting per anchor the selector accepts.
func (b *htmlBoard) scanAnchors(doc *goquery.Document, pageURL string, accept func(text, href string) bool) []domain.JobPosting {
	var out []domain.JobPosting
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		text := web.CleanText(a.Text())
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if text == "" || href == "" {
			return
		}
		if !accept(text, href) {
			return
		}
		out = append(out, domain.JobPosting{
			Title: text,
			URL:   web.Resolve(pageURL, href),
		})
	})
	return out
}
