package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"fundscout-engine/internal/config"
	"fundscout-engine/internal/web"
)

func TestFetchArticleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<p>Acme Robotics announced a $5 million Series A.</p>
			<nav><a href="/x">skip me</a></nav>
			<p>  The round was led   by North Fund. </p>
		</body></html>`)
	}))
	defer srv.Close()

	e := &Extractor{
		web: web.NewClient(2*time.Second, nil),
		cfg: config.Enrich{MaxBodyLen: 1800},
		log: zap.NewNop(),
	}

	got := e.fetchArticleText(context.Background(), srv.URL)
	assert.Equal(t,
		"Acme Robotics announced a $5 million Series A. The round was led by North Fund.",
		got)
}

func TestFetchArticleTextCapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<html><body><p>%s</p></body></html>", strings.Repeat("funding ", 500))
	}))
	defer srv.Close()

	e := &Extractor{
		web: web.NewClient(2*time.Second, nil),
		cfg: config.Enrich{MaxBodyLen: 100},
		log: zap.NewNop(),
	}

	got := e.fetchArticleText(context.Background(), srv.URL)
	assert.Len(t, got, 100)
}

func TestFetchArticleTextUnreachable(t *testing.T) {
	e := &Extractor{
		web: web.NewClient(time.Second, nil),
		cfg: config.Enrich{MaxBodyLen: 100},
		log: zap.NewNop(),
	}
	assert.Empty(t, e.fetchArticleText(context.Background(), "http://127.0.0.1:0/article"))
}
