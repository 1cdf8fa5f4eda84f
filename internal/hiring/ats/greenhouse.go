package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fundscout-engine/internal/domain"
	"fundscout-engine/internal/web"
)

type greenhouse struct {
	client  *web.Client
	apiBase string // overridable in tests
}

func newGreenhouse(client *web.Client) *greenhouse {
	return &greenhouse{client: client, apiBase: "https://boards-api.greenhouse.io"}
}

func (g *greenhouse) Kind() domain.Provider { return domain.ProviderGreenhouse }

type greenhouseJob struct {
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	UpdatedAt   string `json:"updated_at"`
	CreatedAt   string `json:"created_at"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
}

type greenhouseBoard struct {
	Jobs []greenhouseJob `json:"jobs"`
}

// FetchJobs hits the public JSON job-board endpoint for the board slug.
func (g *greenhouse) FetchJobs(ctx context.Context, careersURL string) ([]domain.JobPosting, error) {
	slug := boardSlug(careersURL)
	if slug == "" {
		return nil, fmt.Errorf("greenhouse: no board slug in %q", careersURL)
	}

	api := fmt.Sprintf("%s/v1/boards/%s/jobs", g.apiBase, slug)
	res, err := g.client.Get(ctx, api)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var board greenhouseBoard
	if err := json.NewDecoder(res.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("greenhouse decode: %w", err)
	}

	out := make([]domain.JobPosting, 0, len(board.Jobs))
	for _, j := range board.Jobs {
		posted := parseISO(j.UpdatedAt)
		if posted == nil {
			posted = parseISO(j.CreatedAt)
		}
		out = append(out, domain.JobPosting{
			Title:    strings.TrimSpace(j.Title),
			Location: j.Location.Name,
			URL:      j.AbsoluteURL,
			PostedAt: posted,
		})
	}
	return out, nil
}

// parseISO accepts full RFC3339 timestamps and bare dates; schema.org
// datePosted is usually just "2006-01-02".
func parseISO(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
	}
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

func urlPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Path
}
