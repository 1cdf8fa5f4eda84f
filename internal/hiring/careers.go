package hiring

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"fundscout-engine/internal/web"
)

type careersPage struct {
	URL string
}

// findCareersLink hunts the homepage for a careers entry point in three
// priority passes. Each pass scans the full anchor set before falling
// through to the next; the first hit in a pass wins.
func (d *Detector) findCareersLink(ctx context.Context, domainURL string) *careersPage {
	doc, err := d.client.Document(ctx, domainURL)
	if err != nil {
		d.log.Debug("homepage fetch failed", zap.String("url", domainURL), zap.Error(err))
		return nil
	}

	anchors := doc.Find("a[href]")

	// Priority 1: direct link to a known ATS host.
	var found *careersPage
	anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		abs := web.Resolve(domainURL, a.AttrOr("href", ""))
		host := strings.ToLower(web.Host(abs))
		if host == "" {
			return true
		}
		for pattern := range d.atsPatterns {
			if strings.Contains(host, pattern) {
				found = &careersPage{URL: abs}
				return false
			}
		}
		return true
	})
	if found != nil {
		return found
	}

	// Priority 2: internal careers link by href fragment.
	anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.ToLower(strings.TrimSpace(a.AttrOr("href", "")))
		for _, hint := range d.cfg.CareersHints {
			if strings.Contains(href, hint) {
				found = &careersPage{URL: web.Resolve(domainURL, a.AttrOr("href", ""))}
				return false
			}
		}
		return true
	})
	if found != nil {
		return found
	}

	// Priority 3: exact anchor-text match.
	anchors.EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := strings.ToLower(web.CleanText(a.Text()))
		for _, want := range d.cfg.CareersText {
			if text == want {
				found = &careersPage{URL: web.Resolve(domainURL, a.AttrOr("href", ""))}
				return false
			}
		}
		return true
	})
	return found
}
