package resolve

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fundscout-engine/internal/config"
	"fundscout-engine/internal/domain"
	"fundscout-engine/internal/web"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	cfg := config.Default().Resolver
	client := web.NewClient(2*time.Second, nil)
	r := New(cfg, client, zap.NewNop())
	// never reach out during tests unless a case overrides these
	r.searchBase = "http://127.0.0.1:0/html/"
	r.probe = func(context.Context, string) (string, error) {
		return "", fmt.Errorf("probe disabled")
	}
	return r
}

func TestResolvePressReleaseWins(t *testing.T) {
	article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/internal/nav">nav</a>
			<a href="https://twitter.com/acme">tweet</a>
			<a href="https://www.godaddy.com/whatever">parked</a>
			<a href="https://www.acme.io/product">Acme</a>
		</body></html>`)
	}))
	defer article.Close()

	r := testResolver(t)
	res := r.Resolve(context.Background(), "Acme", article.URL+"/news/acme-raises")

	assert.Equal(t, "https://acme.io", res.Domain)
	assert.Equal(t, domain.SourcePressRelease, res.Source)
	assert.InDelta(t, 0.92, res.Confidence, 1e-9)
	assert.False(t, res.Failed())
}

func TestResolvePressReleaseSkipsOwnHost(t *testing.T) {
	// the only outbound-looking link points back to the article's host
	var article *httptest.Server
	article = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<a href="%s/more-news">more</a>`, article.URL)
	}))
	defer article.Close()

	r := testResolver(t)
	res := r.Resolve(context.Background(), "Acme", article.URL+"/post")
	assert.Equal(t, domain.SourceFailed, res.Source)
	assert.True(t, res.Failed())
}

func TestResolveSearchFallback(t *testing.T) {
	target := url.QueryEscape("https://acme.io/")
	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Acme official site", r.URL.Query().Get("q"))
		fmt.Fprintf(w, `<a class="result__a" href="https://duckduckgo.com/l/?uddg=%s">Acme</a>`, target)
	}))
	defer search.Close()

	r := testResolver(t)
	r.searchBase = search.URL + "/html/"
	res := r.Resolve(context.Background(), "Acme", "") // no article -> press release pass is a no-op

	assert.Equal(t, "https://acme.io", res.Domain)
	assert.Equal(t, domain.SourceSearch, res.Source)
	assert.InDelta(t, 0.85, res.Confidence, 1e-9)
}

func TestResolveSearchRejectsAggregators(t *testing.T) {
	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<a class="result__a" href="https://www.linkedin.com/company/acme">Acme</a>`)
	}))
	defer search.Close()

	r := testResolver(t)
	r.searchBase = search.URL + "/html/"
	res := r.Resolve(context.Background(), "Acme", "")
	assert.Equal(t, domain.SourceFailed, res.Source)
}

func TestResolveGuessFallback(t *testing.T) {
	r := testResolver(t)
	var tried []string
	r.probe = func(_ context.Context, candidate string) (string, error) {
		tried = append(tried, candidate)
		if candidate == "https://acme.io" {
			return "https://www.acme.io/", nil
		}
		return "", fmt.Errorf("no such host")
	}

	res := r.Resolve(context.Background(), "Acme", "")
	assert.Equal(t, "https://acme.io", res.Domain)
	assert.Equal(t, domain.SourceGuess, res.Source)
	assert.InDelta(t, 0.60, res.Confidence, 1e-9)
	// .com is tried before .io per the configured order
	require.GreaterOrEqual(t, len(tried), 2)
	assert.Equal(t, "https://acme.com", tried[0])
}

func TestResolveGuessHonoursEmbeddedTLD(t *testing.T) {
	r := testResolver(t)
	var tried []string
	r.probe = func(_ context.Context, candidate string) (string, error) {
		tried = append(tried, candidate)
		return candidate, nil
	}

	res := r.Resolve(context.Background(), "IndustrialMind.ai", "")
	assert.Equal(t, []string{"https://industrialmind.ai"}, tried)
	assert.Equal(t, "https://industrialmind.ai", res.Domain)
}

func TestResolveGuessRejectsParkedRedirect(t *testing.T) {
	r := testResolver(t)
	r.probe = func(_ context.Context, candidate string) (string, error) {
		// every candidate redirects to a domain marketplace
		return "https://www.godaddy.com/forsale", nil
	}

	res := r.Resolve(context.Background(), "Acme", "")
	assert.Equal(t, domain.SourceFailed, res.Source)
	assert.Empty(t, res.Domain)
	assert.Zero(t, res.Confidence)
}

func TestUnwrapRedirect(t *testing.T) {
	assert.Equal(t, "https://acme.io/",
		unwrapRedirect("https://duckduckgo.com/l/?uddg=https%3A%2F%2Facme.io%2F"))
	assert.Equal(t, "https://acme.io",
		unwrapRedirect("https://acme.io"))
}
