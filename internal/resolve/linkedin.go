package resolve

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"fundscout-engine/internal/web"
)

// LinkedInFinder discovers a company's LinkedIn page via scored search
// results. It is an optional fallback behind a feature toggle; when absent
// nothing else in the pipeline changes.
type LinkedInFinder struct {
	client     *web.Client
	log        *zap.Logger
	searchBase string
}

func NewLinkedInFinder(client *web.Client, log *zap.Logger) *LinkedInFinder {
	return &LinkedInFinder{client: client, log: log, searchBase: defaultSearchBase}
}

type linkedInCandidate struct {
	URL   string
	Title string
	Score int
}

var nonAlnumRe = regexp.MustCompile(`\W+`)

func squash(s string) string {
	return strings.ToLower(nonAlnumRe.ReplaceAllString(s, ""))
}

// scoreCandidate favours linkedin.com/company/* pages and penalises people
// profiles, job listings and tracking redirects.
func scoreCandidate(companyName, companyHost, candidateURL, title string) int {
	score := 0
	urlLower := strings.ToLower(candidateURL)
	titleLower := strings.ToLower(title)
	normName := squash(companyName)

	if strings.Contains(urlLower, "linkedin.com/company/") {
		score += 50
	}
	if companyName != "" && strings.Contains(titleLower, strings.ToLower(companyName)) {
		score += 30
	}

	if u, err := url.Parse(urlLower); err == nil {
		pathWords := strings.NewReplacer("/", " ", "-", " ").Replace(u.Path)
		if normName != "" && strings.Contains(squash(pathWords), normName) {
			score += 20
		}
	}
	if companyHost != "" && strings.Contains(urlLower, squash(companyHost)) {
		score += 10
	}

	if strings.Contains(urlLower, "linkedin.com/in/") {
		score -= 30
	}
	if strings.Contains(urlLower, "/jobs/") || strings.Contains(urlLower, "/job/") {
		score -= 20
	}
	if strings.Contains(urlLower, "redirector") || strings.Contains(urlLower, "trk=") ||
		strings.Contains(urlLower, "/posts/") {
		score -= 10
	}
	return score
}

// FindBest returns the highest-scoring LinkedIn URL, or "" when nothing
// scores above zero.
func (f *LinkedInFinder) FindBest(ctx context.Context, companyName, companyHost string) string {
	if companyName == "" {
		return ""
	}

	queries := []string{
		fmt.Sprintf(`"%s" site:linkedin.com/company`, companyName),
		fmt.Sprintf(`%s linkedin company`, companyName),
	}
	if companyHost != "" {
		queries = append(queries[:1], append([]string{
			fmt.Sprintf(`"%s" "%s" site:linkedin.com`, companyName, companyHost),
		}, queries[1:]...)...)
	}

	seen := map[string]bool{}
	var candidates []linkedInCandidate

	for _, q := range queries {
		results, err := f.search(ctx, q)
		if err != nil {
			f.log.Debug("linkedin search failed", zap.String("query", q), zap.Error(err))
			continue
		}
		for _, res := range results {
			if !strings.Contains(res.URL, "linkedin.com") {
				continue
			}
			clean := strings.TrimRight(strings.SplitN(res.URL, "?", 2)[0], "/")
			if seen[clean] {
				continue
			}
			seen[clean] = true

			if s := scoreCandidate(companyName, companyHost, clean, res.Title); s > 0 {
				candidates = append(candidates, linkedInCandidate{URL: clean, Title: res.Title, Score: s})
			}
		}
	}

	if len(candidates) == 0 {
		return ""
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Score > candidates[j].Score })
	return candidates[0].URL
}

type searchHit struct {
	URL   string
	Title string
}

func (f *LinkedInFinder) search(ctx context.Context, query string) ([]searchHit, error) {
	searchURL := f.searchBase + "?q=" + url.QueryEscape(query)
	doc, err := f.client.Document(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	var hits []searchHit
	doc.Find("a.result__a").EachWithBreak(func(i int, a *goquery.Selection) bool {
		if i >= 5 {
			return false
		}
		href := unwrapRedirect(a.AttrOr("href", ""))
		if href != "" {
			hits = append(hits, searchHit{URL: href, Title: web.CleanText(a.Text())})
		}
		return true
	})
	return hits, nil
}
