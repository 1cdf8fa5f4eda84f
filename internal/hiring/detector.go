// Package hiring turns a resolved company domain into a graded hiring
// signal: locate the careers page, identify its ATS, fetch postings and
// classify by technical-role recency.
package hiring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"fundscout-engine/internal/config"
	"fundscout-engine/internal/domain"
	"fundscout-engine/internal/hiring/ats"
	"fundscout-engine/internal/web"
)

type Detector struct {
	cfg         config.Hiring
	client      *web.Client
	registry    *ats.Registry
	atsPatterns map[string]domain.Provider
	log         *zap.Logger

	now func() time.Time // test seam
}

func NewDetector(cfg config.Hiring, client *web.Client, registry *ats.Registry, log *zap.Logger) *Detector {
	patterns := make(map[string]domain.Provider, len(cfg.ATSPatterns))
	for pattern, name := range cfg.ATSPatterns {
		patterns[pattern] = domain.Provider(name)
	}
	return &Detector{
		cfg:         cfg,
		client:      client,
		registry:    registry,
		atsPatterns: patterns,
		log:         log,
		now:         time.Now,
	}
}

// Detect never fails: every degraded path collapses to tier C with a
// diagnostic detail string.
func (d *Detector) Detect(ctx context.Context, domainURL string) domain.HiringSignal {
	if domainURL == "" {
		return domain.HiringSignal{Tier: domain.TierC, Details: "no_domain"}
	}

	page := d.findCareersLink(ctx, domainURL)
	if page == nil {
		return domain.HiringSignal{Tier: domain.TierC, Details: "no_careers_link_found"}
	}

	provider := ats.Identify(page.URL, d.atsPatterns)

	adapter := d.registry.For(provider)
	postings, err := adapter.FetchJobs(ctx, page.URL)
	if err != nil {
		// fail soft: an unreachable board reads as zero postings
		d.log.Debug("adapter fetch failed",
			zap.String("provider", string(provider)),
			zap.String("url", page.URL),
			zap.Error(err))
		postings = nil
	}

	signal := d.classify(postings)
	signal.CareersURL = page.URL
	signal.Provider = provider
	return signal
}

// classify filters postings to technical titles and grades them by recency.
// Undated postings count toward TechRoles (and tier B) but never tier A.
func (d *Detector) classify(postings []domain.JobPosting) domain.HiringSignal {
	now := d.now().UTC()
	cutoff := now.AddDate(0, 0, -d.cfg.RecentDays)

	var (
		techRoles int
		recent    int
		latest    *time.Time
	)
	for _, p := range postings {
		if !titleIsTechnical(p.Title, d.cfg.TechTitleKeywords) {
			continue
		}
		techRoles++
		if p.PostedAt == nil {
			continue
		}
		if latest == nil || p.PostedAt.After(*latest) {
			latest = p.PostedAt
		}
		if !p.PostedAt.Before(cutoff) {
			recent++
		}
	}

	signal := domain.HiringSignal{TechRoles: techRoles}
	if latest != nil {
		days := int(now.Sub(*latest).Hours() / 24)
		if days < 0 {
			days = 0
		}
		signal.LatestPostedDays = &days
	}

	switch {
	case recent > 0:
		signal.Tier = domain.TierA
		signal.Details = fmt.Sprintf("recent_tech_roles=%d (<=%dd)", recent, d.cfg.RecentDays)
	case techRoles > 0:
		signal.Tier = domain.TierB
		signal.Details = "tech_roles_present_but_not_recent"
	default:
		signal.Tier = domain.TierC
		signal.Details = "no_tech_roles_found"
	}
	return signal
}

func titleIsTechnical(title string, keywords []string) bool {
	low := strings.ToLower(title)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(low, kw) {
			return true
		}
	}
	return false
}
