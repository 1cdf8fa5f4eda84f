package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fundscout-engine/internal/domain"
	"fundscout-engine/internal/web"
)

type lever struct {
	client  *web.Client
	apiBase string
}

func newLever(client *web.Client) *lever {
	return &lever{client: client, apiBase: "https://api.lever.co"}
}

func (l *lever) Kind() domain.Provider { return domain.ProviderLever }

type leverPosting struct {
	Text       string `json:"text"` // title
	HostedURL  string `json:"hostedUrl"`
	ApplyURL   string `json:"applyUrl"`
	CreatedAt  int64  `json:"createdAt"` // ms epoch
	ListedAt   int64  `json:"listedAt"`
	Categories struct {
		Location string `json:"location"`
	} `json:"categories"`
}

// FetchJobs hits the public postings endpoint for the board slug.
func (l *lever) FetchJobs(ctx context.Context, careersURL string) ([]domain.JobPosting, error) {
	slug := boardSlug(careersURL)
	if slug == "" {
		return nil, fmt.Errorf("lever: no board slug in %q", careersURL)
	}

	api := fmt.Sprintf("%s/v0/postings/%s?mode=json", l.apiBase, slug)
	res, err := l.client.Get(ctx, api)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var postings []leverPosting
	if err := json.NewDecoder(res.Body).Decode(&postings); err != nil {
		return nil, fmt.Errorf("lever decode: %w", err)
	}

	out := make([]domain.JobPosting, 0, len(postings))
	for _, p := range postings {
		posted := epochMillis(p.CreatedAt)
		if posted == nil {
			posted = epochMillis(p.ListedAt)
		}
		u := p.HostedURL
		if u == "" {
			u = p.ApplyURL
		}
		out = append(out, domain.JobPosting{
			Title:    strings.TrimSpace(p.Text),
			Location: p.Categories.Location,
			URL:      u,
			PostedAt: posted,
		})
	}
	return out, nil
}

func epochMillis(ms int64) *time.Time {
	if ms <= 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}
