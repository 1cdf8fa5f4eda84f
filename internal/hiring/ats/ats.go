// Package ats fetches and normalizes job postings from applicant tracking
// systems. Each provider is one Adapter implementation; the provider is
// identified once from the careers URL and never re-dispatched downstream.
package ats

import (
	"context"
	"strings"

	"fundscout-engine/internal/domain"
	"fundscout-engine/internal/web"
)

// Adapter turns a careers URL into uniform postings. Implementations return
// errors for diagnostics only; callers treat any error as an empty list.
type Adapter interface {
	Kind() domain.Provider
	FetchJobs(ctx context.Context, careersURL string) ([]domain.JobPosting, error)
}

// Identify maps a careers URL onto a provider via host-pattern matching,
// defaulting to Internal for anything unrecognized.
func Identify(careersURL string, patterns map[string]domain.Provider) domain.Provider {
	host := strings.ToLower(web.Host(careersURL))
	if host == "" {
		return domain.ProviderInternal
	}
	for pattern, provider := range patterns {
		if strings.Contains(host, pattern) {
			return provider
		}
	}
	return domain.ProviderInternal
}

// Registry holds one adapter per provider kind.
type Registry struct {
	adapters map[domain.Provider]Adapter
	fallback Adapter
}

// NewRegistry wires every known provider. techKeywords feeds the anchor-scan
// fallback of the HTML-based adapters.
func NewRegistry(client *web.Client, techKeywords []string) *Registry {
	internal := newHTMLBoard(domain.ProviderInternal, client, techKeywords)
	r := &Registry{
		adapters: map[domain.Provider]Adapter{
			domain.ProviderGreenhouse: newGreenhouse(client),
			domain.ProviderLever:      newLever(client),
			domain.ProviderAshby:      newHTMLBoard(domain.ProviderAshby, client, techKeywords),
			domain.ProviderWorkable:   newHTMLBoard(domain.ProviderWorkable, client, techKeywords),
			domain.ProviderBambooHR:   newHTMLBoard(domain.ProviderBambooHR, client, techKeywords),
			domain.ProviderInternal:   internal,
		},
		fallback: internal,
	}
	return r
}

// For selects the adapter for a provider, falling back to Internal.
func (r *Registry) For(p domain.Provider) Adapter {
	if a, ok := r.adapters[p]; ok {
		return a
	}
	return r.fallback
}

// boardSlug extracts the first path segment: boards.greenhouse.io/<slug>,
// jobs.lever.co/<slug>.
func boardSlug(boardURL string) string {
	path := strings.Trim(urlPath(boardURL), "/")
	if path == "" {
		return ""
	}
	return strings.SplitN(path, "/", 2)[0]
}
