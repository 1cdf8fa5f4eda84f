package publish

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"fundscout-engine/internal/domain"
)

var sheetHeader = []any{
	"Company", "Domain", "LinkedIn", "Amount (USD)", "Round", "Investors",
	"Lead Investor", "Country", "Date Announced", "Hiring Tier",
	"Tech Roles", "ATS Provider", "Careers URL", "Source URL", "Last Updated",
}

// SheetPublisher appends every processed lead to a Google Sheet via a
// service account.
type SheetPublisher struct {
	svc           *sheets.Service
	spreadsheetID string
	log           *zap.Logger
}

func NewSheetPublisher(ctx context.Context, credsFile, spreadsheetID string, log *zap.Logger) (*SheetPublisher, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(credsFile))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &SheetPublisher{svc: svc, spreadsheetID: spreadsheetID, log: log}, nil
}

// Append writes the header once, then appends one row per lead starting at
// the first empty row.
func (p *SheetPublisher) Append(ctx context.Context, leads []domain.Lead) error {
	if len(leads) == 0 {
		p.log.Info("nothing to publish to sheet")
		return nil
	}

	if err := p.ensureHeader(ctx); err != nil {
		return err
	}

	rows := make([][]any, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, leadRow(lead))
	}

	_, err := p.svc.Spreadsheets.Values.
		Append(p.spreadsheetID, "A1", &sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheet append: %w", err)
	}

	p.log.Info("published to sheet", zap.Int("rows", len(rows)))
	return nil
}

func (p *SheetPublisher) ensureHeader(ctx context.Context) error {
	resp, err := p.svc.Spreadsheets.Values.
		Get(p.spreadsheetID, "A1:O1").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheet header check: %w", err)
	}

	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		if s, ok := resp.Values[0][0].(string); ok && strings.TrimSpace(s) == sheetHeader[0] {
			return nil
		}
	}

	_, err = p.svc.Spreadsheets.Values.
		Update(p.spreadsheetID, "A1:O1", &sheets.ValueRange{Values: [][]any{sheetHeader}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheet header write: %w", err)
	}
	return nil
}

func leadRow(lead domain.Lead) []any {
	var amount any
	if lead.AmountRaisedUSD != nil {
		amount = *lead.AmountRaisedUSD
	}
	techRoles := 0
	if lead.TechRoles != nil {
		techRoles = *lead.TechRoles
	}

	return []any{
		lead.CompanyName,
		lead.WebsiteURL,
		lead.LinkedInURL,
		amount,
		lead.FundingRound,
		strings.Join(lead.Investors, ", "),
		lead.LeadInvestor,
		lead.HeadquarterCountry,
		lead.AnnouncementDate,
		string(lead.HiringTier),
		techRoles,
		string(lead.ATSProvider),
		lead.CareersURL,
		lead.SourceURL,
		time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
}
