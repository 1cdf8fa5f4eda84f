// Package pipeline orchestrates one end-to-end run: ingest funding articles,
// skip ones already stored, enrich, resolve the company domain, classify the
// hiring signal, persist, and publish. Leads are processed strictly one at a
// time; each company is an independent unit of work and failures never halt
// the batch.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fundscout-engine/internal/config"
	"fundscout-engine/internal/domain"
	"fundscout-engine/internal/store"
	"fundscout-engine/internal/web"
)

const llmExplicitConfidence = 0.98

type Ingester interface {
	FetchRecent(ctx context.Context) ([]domain.Article, error)
}

type Enricher interface {
	Enrich(ctx context.Context, art domain.Article) (*domain.Enrichment, error)
}

type Resolver interface {
	Resolve(ctx context.Context, companyName, articleURL string) domain.Resolution
}

type Detector interface {
	Detect(ctx context.Context, domainURL string) domain.HiringSignal
}

// LinkedInFinder is the optional feature-toggled fallback; nil disables it
// without affecting resolution or classification.
type LinkedInFinder interface {
	FindBest(ctx context.Context, companyName, companyHost string) string
}

type Alerter interface {
	Alert(ctx context.Context, lead domain.Lead) error
}

type SheetSink interface {
	Append(ctx context.Context, leads []domain.Lead) error
}

type Pipeline struct {
	cfg      config.Config
	db       *store.DB
	ingester Ingester
	enricher Enricher
	resolver Resolver
	detector Detector
	linkedin LinkedInFinder // nil when the toggle is off
	alerter  Alerter        // nil when Telegram is unconfigured
	sheet    SheetSink      // nil when Sheets is unconfigured
	probe    *web.Client
	log      *zap.Logger

	now func() time.Time
}

type Deps struct {
	DB       *store.DB
	Ingester Ingester
	Enricher Enricher
	Resolver Resolver
	Detector Detector
	LinkedIn LinkedInFinder
	Alerter  Alerter
	Sheet    SheetSink
	Probe    *web.Client
	Log      *zap.Logger
}

func New(cfg config.Config, d Deps) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		db:       d.DB,
		ingester: d.Ingester,
		enricher: d.Enricher,
		resolver: d.Resolver,
		detector: d.Detector,
		linkedin: d.LinkedIn,
		alerter:  d.Alerter,
		sheet:    d.Sheet,
		probe:    d.Probe,
		log:      d.Log,
	}
}

// Run executes one batch and returns the leads it processed.
func (p *Pipeline) Run(ctx context.Context) ([]domain.Lead, error) {
	articles, err := p.ingester.FetchRecent(ctx)
	if err != nil {
		return nil, err
	}
	p.log.Info("articles fetched", zap.Int("count", len(articles)))
	if len(articles) == 0 {
		return nil, nil
	}

	fresh, err := p.dropSeen(ctx, articles)
	if err != nil {
		return nil, err
	}
	p.log.Info("preflight dedup",
		zap.Int("new", len(fresh)),
		zap.Int("skipped", len(articles)-len(fresh)))
	if len(fresh) == 0 {
		return nil, nil
	}

	// Per-run cap bounds wall-clock time and external-API cost.
	if limit := p.cfg.App.MaxNewLeads; limit > 0 && len(fresh) > limit {
		p.log.Warn("truncating batch", zap.Int("cap", limit), zap.Int("dropped", len(fresh)-limit))
		fresh = fresh[:limit]
	}

	var processed []domain.Lead
	for _, art := range fresh {
		lead, ok := p.processArticle(ctx, art)
		if !ok {
			continue
		}
		processed = append(processed, lead)
	}

	if p.sheet != nil && len(processed) > 0 {
		if err := p.sheet.Append(ctx, processed); err != nil {
			p.log.Error("sheet publish failed", zap.Error(err))
		}
	}

	p.log.Info("pipeline complete", zap.Int("processed", len(processed)))
	return processed, nil
}

// dropSeen removes articles whose source URL is already stored, before any
// resolution work begins.
func (p *Pipeline) dropSeen(ctx context.Context, articles []domain.Article) ([]domain.Article, error) {
	urls := make([]string, 0, len(articles))
	for _, a := range articles {
		if a.URL != "" {
			urls = append(urls, a.URL)
		}
	}
	seen, err := store.SeenSourceURLs(ctx, p.db.Pool, urls)
	if err != nil {
		return nil, err
	}

	out := articles[:0]
	for _, a := range articles {
		if a.URL == "" || seen[a.URL] {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// processArticle runs one lead end to end: enrich, resolve, classify,
// persist, alert. Returns false when the article yields no usable lead.
func (p *Pipeline) processArticle(ctx context.Context, art domain.Article) (domain.Lead, bool) {
	enr, err := p.enricher.Enrich(ctx, art)
	if err != nil {
		p.log.Warn("enrichment failed", zap.String("url", art.URL), zap.Error(err))
		return domain.Lead{}, false
	}
	if enr == nil || enr.CompanyName == "" {
		p.log.Debug("no usable enrichment", zap.String("title", art.Title))
		return domain.Lead{}, false
	}

	res := p.resolveWebsite(ctx, enr, art)
	p.log.Info("resolved",
		zap.String("company", enr.CompanyName),
		zap.String("domain", res.Domain),
		zap.Float64("confidence", res.Confidence),
		zap.String("source", string(res.Source)))

	linkedInURL := enr.LinkedInURL
	if p.linkedin != nil && linkedInURL == "" {
		linkedInURL = p.linkedin.FindBest(ctx, enr.CompanyName, web.Host(res.Domain))
	}

	signal := p.detector.Detect(ctx, res.Domain)
	p.log.Info("hiring signal",
		zap.String("company", enr.CompanyName),
		zap.String("tier", string(signal.Tier)),
		zap.String("details", signal.Details))

	lead := assembleLead(art, enr, res, signal, linkedInURL, p.clock())

	if err := store.UpsertLead(ctx, p.db.Pool, lead); err != nil {
		// reported, not fatal: the next company is independent work
		p.log.Error("store upsert failed", zap.String("company", lead.CompanyName), zap.Error(err))
	}

	if p.alerter != nil && (signal.Tier == domain.TierA || signal.Tier == domain.TierB) {
		if err := p.alerter.Alert(ctx, lead); err != nil {
			p.log.Warn("alert failed", zap.String("company", lead.CompanyName), zap.Error(err))
		}
	}

	return lead, true
}

// resolveWebsite prefers an explicitly extracted website that is actually
// alive (confidence 0.98); otherwise it runs the cascade.
func (p *Pipeline) resolveWebsite(ctx context.Context, enr *domain.Enrichment, art domain.Article) domain.Resolution {
	if enr.WebsiteURL != "" && p.urlAlive(ctx, enr.WebsiteURL) {
		return domain.Resolution{
			Domain:     enr.WebsiteURL,
			Confidence: llmExplicitConfidence,
			Source:     domain.SourceLLMExplicit,
		}
	}
	return p.resolver.Resolve(ctx, enr.CompanyName, art.URL)
}

func (p *Pipeline) urlAlive(ctx context.Context, url string) bool {
	if p.probe == nil {
		return false
	}
	_, err := p.probe.Probe(ctx, url)
	return err == nil
}

func (p *Pipeline) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

func assembleLead(art domain.Article, enr *domain.Enrichment, res domain.Resolution,
	signal domain.HiringSignal, linkedInURL string, now time.Time) domain.Lead {

	website := res.Domain
	if website == "" {
		website = enr.WebsiteURL
	}

	announcement := ""
	if art.PublishedAt != nil {
		announcement = art.PublishedAt.UTC().Format("2006-01-02")
	}

	techRoles := signal.TechRoles
	return domain.Lead{
		CompanyName:        enr.CompanyName,
		WebsiteURL:         website,
		LinkedInURL:        linkedInURL,
		AmountRaisedUSD:    enr.AmountRaisedUSD,
		FundingRound:       enr.FundingRound,
		Investors:          enr.Investors,
		LeadInvestor:       enr.LeadInvestor,
		HeadquarterCountry: enr.HeadquarterCountry,
		AnnouncementDate:   announcement,
		HiringTier:         signal.Tier,
		TechRoles:          &techRoles,
		CareersURL:         signal.CareersURL,
		ATSProvider:        signal.Provider,
		SourceURL:          art.URL,
		LastSeen:           now.UTC(),
	}
}
