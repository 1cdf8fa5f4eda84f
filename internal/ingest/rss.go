// Package ingest pulls funding-news candidates from RSS feeds and filters
// them down to articles whose titles read like funding announcements.
package ingest

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fundscout-engine/internal/config"
	"fundscout-engine/internal/domain"
)

type Ingester struct {
	cfg    config.Ingest
	parser *gofeed.Parser
	log    *zap.Logger

	now func() time.Time
}

func New(cfg config.Ingest, log *zap.Logger) *Ingester {
	return &Ingester{
		cfg:    cfg,
		parser: gofeed.NewParser(),
		log:    log,
		now:    time.Now,
	}
}

var dashRe = regexp.MustCompile(`[-–—]`)

// FetchRecent reads every configured feed and keeps entries newer than the
// cutoff whose titles match the funding filter. One dead feed never fails
// the batch.
func (i *Ingester) FetchRecent(ctx context.Context) ([]domain.Article, error) {
	cutoff := i.now().UTC().AddDate(0, 0, -i.cfg.DaysBack)

	var (
		mu       sync.Mutex
		articles []domain.Article
	)

	var g errgroup.Group
	for _, feedURL := range i.cfg.Feeds {
		g.Go(func() error {
			feed, err := i.parser.ParseURLWithContext(feedURL, ctx)
			if err != nil {
				i.log.Warn("feed fetch failed", zap.String("feed", feedURL), zap.Error(err))
				return nil
			}

			var batch []domain.Article
			for _, entry := range feed.Items {
				title := strings.TrimSpace(entry.Title)
				if !i.MatchesFundingTitle(title) {
					continue
				}

				var published *time.Time
				if entry.PublishedParsed != nil {
					t := entry.PublishedParsed.UTC()
					if t.Before(cutoff) {
						continue
					}
					published = &t
				}

				batch = append(batch, domain.Article{
					Title:       title,
					URL:         entry.Link,
					PublishedAt: published,
					Source:      feedURL,
				})
			}

			mu.Lock()
			articles = append(articles, batch...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	i.log.Info("feeds ingested",
		zap.Int("feeds", len(i.cfg.Feeds)),
		zap.Int("articles", len(articles)))
	return articles, nil
}

// MatchesFundingTitle accepts a title containing a strong funding verb, or a
// round-context keyword together with a money indicator.
func (i *Ingester) MatchesFundingTitle(title string) bool {
	low := strings.ToLower(dashRe.ReplaceAllString(title, " "))

	strong := containsAny(low, i.cfg.StrongKeywords)
	context := containsAny(low, i.cfg.ContextKeywords)
	money := containsAny(low, i.cfg.MoneyIndicators)

	return strong || (context && money)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(s, n) {
			return true
		}
	}
	return false
}
