// Package enrich extracts structured funding facts from article text with
// Gemini. Fields the model cannot find stay null; nothing is fabricated.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"fundscout-engine/internal/config"
	"fundscout-engine/internal/domain"
	"fundscout-engine/internal/web"
)

const prompt = `You are a precise financial data extraction model.
Return ONLY valid JSON. No commentary.

RULES:
- Do not guess. If a value is not clearly stated, return null.
- Extract website_url AND linkedin_url ONLY if explicitly mentioned in the text. Do NOT guess.
- Convert funding amounts to integer USD values.
- Investors must be a list of strings. If none, return [].

Return EXACT JSON structure:

{
  "company_name": string or null,
  "website_url": string or null,
  "linkedin_url": string or null,
  "amount_raised_usd": integer or null,
  "funding_round": string or null,
  "investors": list,
  "lead_investor": string or null,
  "headquarter_country": string or null
}

TEXT:
`

type Extractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
	web    *web.Client
	cfg    config.Enrich
	log    *zap.Logger
}

func NewExtractor(ctx context.Context, apiKey string, cfg config.Enrich, webClient *web.Client, log *zap.Logger) (*Extractor, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0.1) // consistent extraction over creativity
	model.ResponseMIMEType = "application/json"

	return &Extractor{client: client, model: model, web: webClient, cfg: cfg, log: log}, nil
}

func (e *Extractor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Enrich fetches the article body and asks the model for structured fields.
// A nil result with nil error means the article yielded nothing usable.
func (e *Extractor) Enrich(ctx context.Context, art domain.Article) (*domain.Enrichment, error) {
	body := e.fetchArticleText(ctx, art.URL)
	if body == "" {
		return nil, nil
	}

	input := fmt.Sprintf("TITLE: %s\nBODY: %s", art.Title, body)

	resp, err := e.model.GenerateContent(ctx, genai.Text(prompt+input))
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	raw, err := textFromResponse(resp)
	if err != nil {
		return nil, err
	}

	enr, err := ParseEnrichment(raw)
	if err != nil {
		return nil, err
	}
	if enr.CompanyName == "" {
		return nil, nil
	}
	return enr, nil
}

// fetchArticleText joins paragraph text, capped to keep token cost bounded.
func (e *Extractor) fetchArticleText(ctx context.Context, url string) string {
	doc, err := e.web.Document(ctx, url)
	if err != nil {
		e.log.Debug("article fetch failed", zap.String("url", url), zap.Error(err))
		return ""
	}

	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if t := web.CleanText(p.Text()); t != "" {
			parts = append(parts, t)
		}
	})

	text := strings.Join(parts, " ")
	if max := e.cfg.MaxBodyLen; max > 0 && len(text) > max {
		text = text[:max]
	}
	return text
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty model response")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text parts in model response")
	}
	return sb.String(), nil
}
