package store

import "database/sql"

// Migrate applies the schema, versioned via PRAGMA user_version.
func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS funded_companies (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  company_name TEXT NOT NULL,
  website_url TEXT,
  linkedin_url TEXT,
  amount_raised_usd INTEGER,
  funding_round TEXT,
  investors TEXT NOT NULL DEFAULT '[]',
  lead_investor TEXT,
  headquarter_country TEXT,
  announcement_date TEXT,
  hiring_tier TEXT,
  tech_roles INTEGER DEFAULT 0,
  careers_url TEXT,
  ats_provider TEXT,
  source_url TEXT,
  last_seen TEXT NOT NULL,
  UNIQUE(company_name, funding_round, announcement_date)
);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_funded_companies_source_url
ON funded_companies(source_url);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_funded_companies_hiring_tier
ON funded_companies(hiring_tier);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}
