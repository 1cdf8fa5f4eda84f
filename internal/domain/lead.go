package domain

import "time"

// ResolutionSource reports which strategy produced a domain.
type ResolutionSource string

const (
	SourceLLMExplicit  ResolutionSource = "llm_explicit"
	SourcePressRelease ResolutionSource = "press_release"
	SourceSearch       ResolutionSource = "search"
	SourceGuess        ResolutionSource = "guess"
	SourceFailed       ResolutionSource = "failed"
)

// Resolution is the outcome of the domain-resolution cascade.
// Domain is empty exactly when Confidence is 0 and Source is SourceFailed.
type Resolution struct {
	Domain     string // canonical "https://host", no path
	Confidence float64
	Source     ResolutionSource
}

func (r Resolution) Failed() bool { return r.Domain == "" }

// Provider identifies the applicant tracking system behind a careers page.
type Provider string

const (
	ProviderGreenhouse Provider = "Greenhouse"
	ProviderLever      Provider = "Lever"
	ProviderAshby      Provider = "Ashby"
	ProviderWorkable   Provider = "Workable"
	ProviderBambooHR   Provider = "BambooHR"
	ProviderInternal   Provider = "Internal"
)

// Tier grades a company's hiring signal.
type Tier string

const (
	TierA Tier = "A" // technical roles posted within the recency window
	TierB Tier = "B" // technical roles present, none recent
	TierC Tier = "C" // nothing found or undeterminable
)

// Article is a candidate funding-news item from the feed ingester.
type Article struct {
	Title       string
	URL         string
	PublishedAt *time.Time
	Source      string
}

// Enrichment holds the structured fields extracted from an article.
// Absent fields stay empty/nil; the extractor never fabricates them.
type Enrichment struct {
	CompanyName        string
	WebsiteURL         string
	LinkedInURL        string
	AmountRaisedUSD    *int64
	FundingRound       string
	Investors          []string
	LeadInvestor       string
	HeadquarterCountry string
}

// JobPosting is the uniform shape every provider adapter produces.
// Postings are not deduplicated across providers.
type JobPosting struct {
	Title    string
	Location string
	URL      string
	PostedAt *time.Time // UTC; nil when the provider exposes no date
}

// HiringSignal is the classifier's verdict for one company.
type HiringSignal struct {
	Tier             Tier
	CareersURL       string
	Provider         Provider // empty when no careers page was found
	TechRoles        int
	LatestPostedDays *int // age of the newest dated technical posting
	Details          string
}

// Lead is one funded-company record as persisted by the store.
// Identity key: (CompanyName, FundingRound, AnnouncementDate).
type Lead struct {
	CompanyName        string
	WebsiteURL         string
	LinkedInURL        string
	AmountRaisedUSD    *int64
	FundingRound       string
	Investors          []string
	LeadInvestor       string
	HeadquarterCountry string
	AnnouncementDate   string // YYYY-MM-DD, empty when unknown
	HiringTier         Tier
	TechRoles          *int
	CareersURL         string
	ATSProvider        Provider
	SourceURL          string
	LastSeen           time.Time
}
