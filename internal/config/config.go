package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type App struct {
	DataDir                string `yaml:"data_dir"`
	MaxNewLeads            int    `yaml:"max_new_leads"`
	EnableLinkedInFallback bool   `yaml:"enable_linkedin_fallback"`
}

type Resolver struct {
	// Domain-marketplace / parking hosts; any host containing one of these
	// substrings is never accepted as a company domain.
	Blocklist []string `yaml:"blocklist"`
	// Social platforms skipped during press-release extraction.
	SocialHosts []string `yaml:"social_hosts"`
	// Hosts rejected when they come back as the top search result.
	SearchRejectHosts []string `yaml:"search_reject_hosts"`
	// Candidate TLDs tried by the guessing strategy, in order.
	GuessTLDs []string `yaml:"guess_tlds"`
	// Politeness budget for the search engine, requests per second.
	SearchPerSec float64 `yaml:"search_per_sec"`

	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`
	ProbeTimeoutSeconds int `yaml:"probe_timeout_seconds"`
}

type Hiring struct {
	// careers-page host fragment -> provider name
	ATSPatterns map[string]string `yaml:"ats_patterns"`
	// href fragments that mark an internal careers link
	CareersHints []string `yaml:"careers_hints"`
	// exact anchor-text matches for the last-resort pass
	CareersText []string `yaml:"careers_text"`
	// substrings that mark a job title as technical
	TechTitleKeywords   []string `yaml:"tech_title_keywords"`
	RecentDays          int      `yaml:"recent_days"`
	FetchTimeoutSeconds int      `yaml:"fetch_timeout_seconds"`
}

type Ingest struct {
	Feeds           []string `yaml:"feeds"`
	DaysBack        int      `yaml:"days_back"`
	StrongKeywords  []string `yaml:"strong_keywords"`
	ContextKeywords []string `yaml:"context_keywords"`
	MoneyIndicators []string `yaml:"money_indicators"`
}

type Enrich struct {
	Model      string `yaml:"model"`
	MaxBodyLen int    `yaml:"max_body_len"`
}

type Publish struct {
	TelegramChatID string `yaml:"telegram_chat_id"`
	SpreadsheetID  string `yaml:"spreadsheet_id"`
	CredsFile      string `yaml:"creds_file"`
}

type Config struct {
	App      App      `yaml:"app"`
	Resolver Resolver `yaml:"resolver"`
	Hiring   Hiring   `yaml:"hiring"`
	Ingest   Ingest   `yaml:"ingest"`
	Enrich   Enrich   `yaml:"enrich"`
	Publish  Publish  `yaml:"publish"`
}

// Default carries the hand-tuned lists. They are config data, not code:
// a user file loaded via Load overrides any of them wholesale.
func Default() Config {
	var cfg Config

	cfg.App = App{
		DataDir:     ".",
		MaxNewLeads: 20,
	}

	cfg.Resolver = Resolver{
		Blocklist: []string{
			"domains.atom.com", "sedo.com", "godaddy.com", "namecheap.com",
			"dan.com", "hugedomains.com", "afternic.com", "wix.com",
			"squarespace.com", "uniregistry.com", "brandpa.com",
		},
		SocialHosts: []string{
			"linkedin.com", "twitter.com", "x.com", "facebook.com",
			"instagram.com", "youtube.com", "tiktok.com", "threads.net",
			"whatsapp.com", "api.whatsapp.com",
		},
		SearchRejectHosts:   []string{"linkedin.com", "crunchbase.com"},
		GuessTLDs:           []string{".com", ".io", ".ai", ".co"},
		SearchPerSec:        1.0,
		FetchTimeoutSeconds: 10,
		ProbeTimeoutSeconds: 4,
	}

	cfg.Hiring = Hiring{
		ATSPatterns: map[string]string{
			"boards.greenhouse.io": "Greenhouse",
			"jobs.lever.co":        "Lever",
			"ashbyhq.com":          "Ashby",
			"apply.workable.com":   "Workable",
			"bamboohr.com":         "BambooHR",
		},
		CareersHints: []string{"/careers", "/jobs", "join-us", "work-with-us"},
		CareersText:  []string{"careers", "career", "jobs", "join us", "team"},
		TechTitleKeywords: []string{
			"software", "engineer", "developer", "backend", "front end",
			"frontend", "full stack", "full-stack", "data engineer",
			"data scientist", "ml", "machine learning", "ai", "mle",
			"platform", "devops", "sre", "infra", "infrastructure",
			"android", "ios", "mobile",
		},
		RecentDays:          14,
		FetchTimeoutSeconds: 12,
	}

	cfg.Ingest = Ingest{
		Feeds: []string{
			"https://techcrunch.com/category/startups/funding/feed/",
			"https://venturebeat.com/category/venture-capital/feed/",
			"https://www.finsmes.com/feed",
			"https://inc42.com/buzz/funding/feed/",
			"https://entrackr.com/category/funding/feed/",
			"https://yourstory.com/feed/category/funding",
		},
		DaysBack: 7,
		StrongKeywords: []string{
			"raises", "secures", "bags", "closes round", "lands", "nabs",
			"funding", "invests",
		},
		ContextKeywords: []string{
			"series a", "series b", "series c", "series d", "series e",
			"seed", "pre-seed", "angel", "valuation", "venture capital",
			"equity",
		},
		MoneyIndicators: []string{"$", "million", "mn", "cr", "crore", "billion", "bn"},
	}

	cfg.Enrich = Enrich{
		Model:      "gemini-2.5-flash",
		MaxBodyLen: 1800,
	}

	cfg.Publish = Publish{
		CredsFile: "google_creds.json",
	}

	return cfg
}

// Load reads a YAML file over the compiled-in defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
