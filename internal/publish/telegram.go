// Package publish delivers finished leads to the outside world: a Telegram
// side-channel for hot tiers and a Google Sheet for everything processed.
package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"fundscout-engine/internal/domain"
)

// TelegramAlerter sends one rich-HTML message per tier A/B lead through the
// Bot API. A lost alert is logged and forgotten; it never fails the run.
type TelegramAlerter struct {
	token   string
	chatID  string
	apiBase string
	hc      *http.Client
	log     *zap.Logger
}

func NewTelegramAlerter(token, chatID string, log *zap.Logger) *TelegramAlerter {
	return &TelegramAlerter{
		token:   token,
		chatID:  chatID,
		apiBase: "https://api.telegram.org",
		hc:      &http.Client{Timeout: 5 * time.Second},
		log:     log,
	}
}

func (t *TelegramAlerter) Alert(ctx context.Context, lead domain.Lead) error {
	payload := map[string]any{
		"chat_id":                  t.chatID,
		"text":                     formatAlert(lead),
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := t.hc.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram status %d", res.StatusCode)
	}

	t.log.Info("telegram alert sent", zap.String("company", lead.CompanyName))
	return nil
}

func formatAlert(lead domain.Lead) string {
	amount := "Undisclosed"
	if lead.AmountRaisedUSD != nil && *lead.AmountRaisedUSD > 0 {
		amount = "$" + groupDigits(*lead.AmountRaisedUSD)
	}
	round := lead.FundingRound
	if round == "" {
		round = "N/A"
	}

	return fmt.Sprintf(
		"<b>🔥 New Tier %s Lead: %s</b>\n\n"+
			"<b>Amount:</b> %s\n"+
			"<b>Round:</b> %s\n\n"+
			"<a href='%s'>Visit Website</a>  •  <a href='%s'>View Careers</a>",
		lead.HiringTier, lead.CompanyName, amount, round,
		lead.WebsiteURL, lead.CareersURL,
	)
}

// groupDigits renders 5000000 as "5,000,000".
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
