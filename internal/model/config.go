package model

import "time"

// Config is the complete runtime configuration tree
type Config struct {
	RequestTimeout time.Duration `yaml:"request_timeout"` // End-to-end deadline per verification request

	HTTP       HTTPConfig       `yaml:"http"`
	Extract    ExtractConfig    `yaml:"extract"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Verifier   VerifierConfig   `yaml:"verifier"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Cache      CacheConfig      `yaml:"cache"`
	Store      StoreConfig      `yaml:"store"`
	Output     OutputConfig     `yaml:"output"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
}

// ExtractConfig controls claim extraction
type ExtractConfig struct {
	MaxClaims     int `yaml:"max_claims"`      // Cap on extracted claims
	MinTokens     int `yaml:"min_tokens"`      // Sentences shorter than this are discarded
	LongSentence  int `yaml:"long_sentence"`   // Entity-bearing sentences at least this long qualify without factual phrasing
	MinInputChars int `yaml:"min_input_chars"` // Verify rejects shorter trimmed input
}

// RetrievalConfig controls the evidence retriever
type RetrievalConfig struct {
	FactCheckAPIKey    string            `yaml:"fact_check_api_key"`
	FactCheckBaseURL   string            `yaml:"fact_check_base_url"`
	WikipediaBaseURL   string            `yaml:"wikipedia_base_url"`
	PerClaimFactChecks int               `yaml:"per_claim_fact_checks"` // Top matches per claim from the fact-check source
	PerClaimPages      int               `yaml:"per_claim_pages"`       // Top pages per claim from the encyclopedia source
	MaxItems           int               `yaml:"max_items"`             // Cap on the aggregated evidence set
	MaxExtractChars    int               `yaml:"max_extract_chars"`     // Truncate encyclopedia extracts to this length
	Workers            int               `yaml:"workers"`               // Concurrent (claim x source) queries
	RequestsPerSecond  float64           `yaml:"requests_per_second"`   // Per-domain pacing
	Burst              int               `yaml:"burst"`
	TrustedDomains     map[string]string `yaml:"trusted_domains"` // Domain substring -> publisher display name
}

// ClassifierConfig selects and configures the stance classifier
type ClassifierConfig struct {
	Provider  string        `yaml:"provider"` // "rules", "openai", or "" for rules
	Model     string        `yaml:"model"`
	APIKey    string        `yaml:"api_key"`
	BaseURL   string        `yaml:"base_url"` // Any OpenAI-compatible endpoint
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// VerifierConfig controls stance verification batching and pacing
type VerifierConfig struct {
	BatchSize        int           `yaml:"batch_size"`         // Concurrent classifier calls per batch
	BatchDelay       time.Duration `yaml:"batch_delay"`        // Pause between successive batches
	MinEvidenceChars int           `yaml:"min_evidence_chars"` // Pairs with shorter usable text are skipped
	MaxEvidenceChars int           `yaml:"max_evidence_chars"` // Evidence text sent to the classifier is truncated here
}

// ScoringConfig holds the aggregation constants. The magnitudes and bonus
// values have no documented calibration, so they are configuration rather
// than hard constants.
type ScoringConfig struct {
	StanceMagnitude  float64 `yaml:"stance_magnitude"`   // SUPPORT adds this, REFUTE subtracts it (pre-confidence)
	ReputationBonus  float64 `yaml:"reputation_bonus"`   // Per trusted-domain evidence item
	ReputationCap    float64 `yaml:"reputation_cap"`     // Total bonus never exceeds this
	TrueThreshold    int     `yaml:"true_threshold"`     // Final score at or above -> Likely True
	UnknownThreshold int     `yaml:"unknown_threshold"`  // At or above (but below true) -> Not Enough Information
	MaxReportSources int     `yaml:"max_report_sources"` // Sources listed on the report
}

// CacheConfig controls the memoization caches
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// StoreConfig controls the optional verification history database
type StoreConfig struct {
	Path string `yaml:"path"` // SQLite file path; empty disables history
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		RequestTimeout: 2 * time.Minute,
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "TruthLens/0.1 (+https://github.com/truthlens/truthlens)",
			MaxBodyBytes: 2_000_000,
		},
		Extract: ExtractConfig{
			MaxClaims:     5,
			MinTokens:     5,
			LongSentence:  8,
			MinInputChars: 10,
		},
		Retrieval: RetrievalConfig{
			FactCheckBaseURL:   "https://factchecktools.googleapis.com/v1alpha1/claims:search",
			WikipediaBaseURL:   "https://en.wikipedia.org/w/api.php",
			PerClaimFactChecks: 3,
			PerClaimPages:      2,
			MaxItems:           5,
			MaxExtractChars:    500,
			Workers:            10,
			RequestsPerSecond:  4,
			Burst:              4,
			TrustedDomains:     DefaultTrustedDomains(),
		},
		Classifier: ClassifierConfig{
			Provider:  "rules",
			Timeout:   30 * time.Second,
			MaxTokens: 150,
		},
		Verifier: VerifierConfig{
			BatchSize:        5,
			BatchDelay:       500 * time.Millisecond,
			MinEvidenceChars: 20,
			MaxEvidenceChars: 1000,
		},
		Scoring: ScoringConfig{
			StanceMagnitude:  60,
			ReputationBonus:  20,
			ReputationCap:    40,
			TrueThreshold:    70,
			UnknownThreshold: 40,
			MaxReportSources: 5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Minute,
		},
		Output: OutputConfig{},
	}
}

// DefaultTrustedDomains returns the built-in reputation table
func DefaultTrustedDomains() map[string]string {
	return map[string]string{
		"who.int":        "WHO",
		"cdc.gov":        "CDC",
		"reuters.com":    "Reuters",
		"bbc.com":        "BBC",
		"apnews.com":     "AP News",
		"factcheck.org":  "FactCheck.org",
		"snopes.com":     "Snopes",
		"politifact.com": "PolitiFact",
	}
}
