package publish

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fundscout-engine/internal/domain"
)

func TestTelegramAlert(t *testing.T) {
	amount := int64(5_000_000)
	lead := domain.Lead{
		CompanyName:     "Acme Robotics",
		WebsiteURL:      "https://acme.io",
		CareersURL:      "https://acme.io/careers",
		AmountRaisedUSD: &amount,
		FundingRound:    "Series A",
		HiringTier:      domain.TierA,
	}

	var gotPath string
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := NewTelegramAlerter("TOKEN123", "-100777", zap.NewNop())
	a.apiBase = srv.URL

	require.NoError(t, a.Alert(context.Background(), lead))

	assert.Equal(t, "/botTOKEN123/sendMessage", gotPath)
	assert.Equal(t, "-100777", payload["chat_id"])
	assert.Equal(t, "HTML", payload["parse_mode"])
	assert.Equal(t, true, payload["disable_web_page_preview"])

	text, _ := payload["text"].(string)
	assert.Contains(t, text, "Tier A")
	assert.Contains(t, text, "Acme Robotics")
	assert.Contains(t, text, "$5,000,000")
	assert.Contains(t, text, "https://acme.io/careers")
}

func TestTelegramAlertUndisclosedAmount(t *testing.T) {
	msg := formatAlert(domain.Lead{CompanyName: "Acme", HiringTier: domain.TierB})
	assert.Contains(t, msg, "Undisclosed")
	assert.Contains(t, msg, "N/A")
}

func TestTelegramAlertServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "flood", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	a := NewTelegramAlerter("TOKEN123", "-100777", zap.NewNop())
	a.apiBase = srv.URL

	err := a.Alert(context.Background(), domain.Lead{CompanyName: "Acme"})
	assert.Error(t, err)
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{5000000, "5,000,000"},
		{123456789, "123,456,789"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, groupDigits(tt.in))
	}
}
