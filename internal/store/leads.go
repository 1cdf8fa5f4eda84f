package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fundscout-engine/internal/domain"
)

// UpsertLead inserts a new funding event or merges a repeat observation of
// the same (company_name, funding_round, announcement_date) key.
//
// Merge rule per field:
//   - identity/financial fields (amount, website, linkedin, lead investor,
//     tech_roles) keep the stored value unless the incoming one is non-null;
//   - hiring status (investors, hiring_tier, careers_url, ats_provider,
//     last_seen) always reflects the latest check.
func UpsertLead(ctx context.Context, db *sql.DB, lead domain.Lead) error {
	investorsJSON, err := json.Marshal(nonNilList(lead.Investors))
	if err != nil {
		return fmt.Errorf("marshal investors: %w", err)
	}

	// tech_roles defaults to 0 rather than NULL so the merge COALESCE
	// never erases a previous count with nothing.
	techRoles := 0
	if lead.TechRoles != nil {
		techRoles = *lead.TechRoles
	}

	_, err = db.ExecContext(ctx, `
INSERT INTO funded_companies (
  company_name, website_url, linkedin_url, amount_raised_usd, funding_round,
  investors, lead_investor, headquarter_country, announcement_date,
  hiring_tier, tech_roles, careers_url, ats_provider, source_url, last_seen
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(company_name, funding_round, announcement_date)
DO UPDATE SET
  amount_raised_usd = COALESCE(excluded.amount_raised_usd, amount_raised_usd),
  website_url       = COALESCE(excluded.website_url,       website_url),
  linkedin_url      = COALESCE(excluded.linkedin_url,      linkedin_url),
  investors         = excluded.investors,
  lead_investor     = COALESCE(excluded.lead_investor,     lead_investor),
  hiring_tier       = excluded.hiring_tier,
  tech_roles        = COALESCE(excluded.tech_roles,        tech_roles),
  careers_url       = excluded.careers_url,
  ats_provider      = excluded.ats_provider,
  last_seen         = excluded.last_seen;
`,
		lead.CompanyName,
		nullStr(lead.WebsiteURL),
		nullStr(lead.LinkedInURL),
		nullInt(lead.AmountRaisedUSD),
		nullStr(lead.FundingRound),
		string(investorsJSON),
		nullStr(lead.LeadInvestor),
		nullStr(lead.HeadquarterCountry),
		nullStr(lead.AnnouncementDate),
		nullStr(string(lead.HiringTier)),
		techRoles,
		nullStr(lead.CareersURL),
		nullStr(string(lead.ATSProvider)),
		nullStr(lead.SourceURL),
		lead.LastSeen.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert %q: %w", lead.CompanyName, err)
	}
	return nil
}

// SeenSourceURLs returns the subset of article URLs already in the store, so
// the orchestrator can skip re-running the whole pipeline for them.
func SeenSourceURLs(ctx context.Context, db *sql.DB, urls []string) (map[string]bool, error) {
	seen := make(map[string]bool)
	if len(urls) == 0 {
		return seen, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(urls)), ",")
	query := fmt.Sprintf(
		`SELECT source_url FROM funded_companies WHERE source_url IN (%s);`,
		placeholders,
	)

	args := make([]any, len(urls))
	for i, u := range urls {
		args[i] = u
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		seen[u] = true
	}
	return seen, rows.Err()
}

// GetLead reads one stored record back by its identity key.
func GetLead(ctx context.Context, db *sql.DB, companyName, fundingRound, announcementDate string) (*domain.Lead, error) {
	row := db.QueryRowContext(ctx, `
SELECT company_name, website_url, linkedin_url, amount_raised_usd,
       funding_round, investors, lead_investor, headquarter_country,
       announcement_date, hiring_tier, tech_roles, careers_url,
       ats_provider, source_url, last_seen
FROM funded_companies
WHERE company_name = ?
  AND funding_round IS ?
  AND announcement_date IS ?
LIMIT 1;`,
		companyName, nullStr(fundingRound), nullStr(announcementDate))

	var (
		lead          domain.Lead
		website       sql.NullString
		linkedin      sql.NullString
		amount        sql.NullInt64
		round         sql.NullString
		investorsJSON string
		leadInvestor  sql.NullString
		country       sql.NullString
		date          sql.NullString
		tier          sql.NullString
		techRoles     sql.NullInt64
		careers       sql.NullString
		provider      sql.NullString
		sourceURL     sql.NullString
		lastSeen      string
	)
	err := row.Scan(&lead.CompanyName, &website, &linkedin, &amount, &round,
		&investorsJSON, &leadInvestor, &country, &date, &tier, &techRoles,
		&careers, &provider, &sourceURL, &lastSeen)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lead.WebsiteURL = website.String
	lead.LinkedInURL = linkedin.String
	if amount.Valid {
		lead.AmountRaisedUSD = &amount.Int64
	}
	lead.FundingRound = round.String
	_ = json.Unmarshal([]byte(investorsJSON), &lead.Investors)
	lead.LeadInvestor = leadInvestor.String
	lead.HeadquarterCountry = country.String
	lead.AnnouncementDate = date.String
	lead.HiringTier = domain.Tier(tier.String)
	if techRoles.Valid {
		n := int(techRoles.Int64)
		lead.TechRoles = &n
	}
	lead.CareersURL = careers.String
	lead.ATSProvider = domain.Provider(provider.String)
	lead.SourceURL = sourceURL.String
	lead.LastSeen, _ = time.Parse(time.RFC3339, lastSeen)
	return &lead, nil
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}

func nonNilList(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
