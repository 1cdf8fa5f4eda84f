package web

import (
	"context"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Browser-like UA; several news sites and boards refuse obvious bots.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client is the shared HTTP front door for every external fetch: fixed
// timeout, single attempt, optional per-host politeness limiting.
type Client struct {
	hc      *http.Client
	limiter *HostLimiter
}

func NewClient(timeout time.Duration, limiter *HostLimiter) *Client {
	return &Client{
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

// Get performs a single GET. Any transport error or >=400 status comes back
// as a *web.Error with its kind classified; the body is open on success.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, malformedErr(url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.7")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, url); err != nil {
			return nil, wrapErr(url, err)
		}
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, wrapErr(url, err)
	}
	if res.StatusCode >= 400 {
		res.Body.Close()
		return nil, statusErr(url, res.StatusCode)
	}
	return res, nil
}

// Document fetches a page and parses it with goquery.
func (c *Client) Document(ctx context.Context, url string) (*goquery.Document, error) {
	res, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, malformedErr(url, err)
	}
	return doc, nil
}

// Probe issues a HEAD-style existence check, following redirects, and
// returns the final URL after redirects.
func (c *Client) Probe(ctx context.Context, url string) (finalURL string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return "", malformedErr(url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.hc.Do(req)
	if err != nil {
		return "", wrapErr(url, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return "", statusErr(url, res.StatusCode)
	}
	return res.Request.URL.String(), nil
}
