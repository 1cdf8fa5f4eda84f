package resolve

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"fundscout-engine/internal/config"
	"fundscout-engine/internal/domain"
	"fundscout-engine/internal/web"
)

const (
	confPressRelease = 0.92
	confSearch       = 0.85
	confGuess        = 0.60

	defaultSearchBase = "https://duckduckgo.com/html/"
)

// Resolver finds a company's official website by cascading three strategies
// in strict priority order; the first non-empty normalized domain wins.
type Resolver struct {
	cfg    config.Resolver
	client *web.Client
	log    *zap.Logger

	// overridable seams for tests
	searchBase string
	probe      func(ctx context.Context, candidate string) (finalURL string, err error)
}

func New(cfg config.Resolver, client *web.Client, log *zap.Logger) *Resolver {
	r := &Resolver{
		cfg:        cfg,
		client:     client,
		log:        log,
		searchBase: defaultSearchBase,
	}
	r.probe = r.client.Probe
	return r
}

// Resolve runs the cascade. Failure is not an error: it degrades to
// {Domain:"", Confidence:0, Source:failed} and the caller decides what that
// means downstream.
func (r *Resolver) Resolve(ctx context.Context, companyName, articleURL string) domain.Resolution {
	if d := r.fromPressRelease(ctx, articleURL); d != "" {
		return domain.Resolution{Domain: d, Confidence: confPressRelease, Source: domain.SourcePressRelease}
	}

	if d := r.viaSearch(ctx, companyName); d != "" {
		return domain.Resolution{Domain: d, Confidence: confSearch, Source: domain.SourceSearch}
	}

	r.log.Warn("search failed, attempting active guessing", zap.String("company", companyName))
	if d := r.viaGuess(ctx, companyName); d != "" {
		return domain.Resolution{Domain: d, Confidence: confGuess, Source: domain.SourceGuess}
	}

	return domain.Resolution{Source: domain.SourceFailed}
}

// fromPressRelease scans the source article for the first outbound anchor
// that is not social, not blocklisted and not the article's own host.
func (r *Resolver) fromPressRelease(ctx context.Context, articleURL string) string {
	if articleURL == "" {
		return ""
	}
	doc, err := r.client.Document(ctx, articleURL)
	if err != nil {
		r.log.Debug("press release fetch failed", zap.String("url", articleURL), zap.Error(err))
		return ""
	}

	articleHost := web.Host(articleURL)

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if !strings.HasPrefix(href, "http") {
			return true
		}
		if containsAny(href, r.cfg.Blocklist) || containsAny(href, r.cfg.SocialHosts) {
			return true
		}

		clean := NormalizeDomain(href, r.cfg.Blocklist)
		if clean == "" {
			return true
		}
		host := web.Host(clean)
		if host == articleHost {
			return true
		}
		if containsAny(host, r.cfg.SocialHosts) || hostBlocked(host, r.cfg.Blocklist) {
			return true
		}

		found = clean
		return false
	})
	return found
}

// viaSearch asks the search engine for `<company> official site` and takes
// the top organic result, unwrapping the redirect wrapper if present.
func (r *Resolver) viaSearch(ctx context.Context, companyName string) string {
	query := fmt.Sprintf("%s official site", companyName)
	searchURL := r.searchBase + "?q=" + url.QueryEscape(query)

	// the client's host limiter supplies the politeness delay
	doc, err := r.client.Document(ctx, searchURL)
	if err != nil {
		r.log.Debug("search fetch failed", zap.String("company", companyName), zap.Error(err))
		return ""
	}

	link := doc.Find("a.result__a").First()
	if link.Length() == 0 {
		return ""
	}

	href := unwrapRedirect(link.AttrOr("href", ""))
	if containsAny(href, r.cfg.SearchRejectHosts) {
		return ""
	}
	return NormalizeDomain(href, r.cfg.Blocklist)
}

// unwrapRedirect recovers the target from DDG's /l/?uddg=<urlencoded> links.
func unwrapRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if uddg := u.Query().Get("uddg"); uddg != "" {
		if dec, err := url.QueryUnescape(uddg); err == nil && dec != "" {
			return dec
		}
	}
	return href
}

// viaGuess probes slug+TLD candidates until one answers and survives the
// blocklist after redirects.
func (r *Resolver) viaGuess(ctx context.Context, companyName string) string {
	slug, tld := SlugAndTLD(companyName)
	if slug == "" {
		return ""
	}

	tlds := r.cfg.GuessTLDs
	if tld != "" {
		tlds = []string{tld}
	}

	for _, ext := range tlds {
		candidate := "https://" + slug + ext
		final, err := r.probe(ctx, candidate)
		if err != nil {
			continue
		}
		if containsAny(strings.ToLower(final), r.cfg.Blocklist) {
			continue
		}
		if d := NormalizeDomain(final, r.cfg.Blocklist); d != "" {
			return d
		}
	}
	return ""
}
