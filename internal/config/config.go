package config

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

type ServerConfig struct {
	Scheme string `koanf:"scheme" default:"http"`
	Port   int    `koanf:"port" default:"8082"`
	Host   string `koanf:"host" default:"localhost"`

	ReadTimeout     time.Duration `koanf:"read_timeout" default:"5s"`
	WriteTimeout    time.Duration `koanf:"write_timeout" default:"30s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" default:"30s"`

	AllowOrigins []string `koanf:"alloworigins" default:"[]"`
	HealthCheck  bool     `koanf:"health_check" default:"true"`
}

func (s *ServerConfig) GetServerURL() string {
	return s.Scheme + "://" + s.Host + ":" + strconv.Itoa(s.Port)
}

type APPConfig struct {
	Environtment string        `koanf:"environtment" default:"development"`
	LogLevel     zerolog.Level `koanf:"log_level" default:"debug"`
}

// ModelConfig points at the trained booster artifact. The artifact carries
// its own feature schema; Threshold is the phishing decision boundary
// (strictly greater than, so a probability of exactly Threshold stays
// legitimate).
type ModelConfig struct {
	Path      string  `koanf:"path" default:"xgb_url_model.json"`
	Threshold float64 `koanf:"threshold" default:"0.5"`
}

// ExtractorConfig selects the deployed variant. Baseline keeps only the
// lexical extractor; the page and reputation extractors each add their own
// slot groups and outbound I/O.
type ExtractorConfig struct {
	EnablePage       bool `koanf:"enable_page" default:"false"`
	EnableReputation bool `koanf:"enable_reputation" default:"false"`
}

type WhitelistConfig struct {
	// Domains overrides the built-in trusted registrable-domain set when
	// non-empty.
	Domains []string `koanf:"domains"`
}

type FetcherConfig struct {
	MaxRedirects int           `koanf:"max_redirects" default:"10"`
	MaxSize      int           `koanf:"max_size" default:"1048576"`
	Retries      int           `koanf:"retries" default:"2"`
	UserAgent    string        `koanf:"user_agent" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3"`
	TimeOut      time.Duration `koanf:"timeout" default:"12s"`
}

type ReputationConfig struct {
	WhoisTimeout time.Duration `koanf:"whois_timeout" default:"10s"`
	DNSResolver  string        `koanf:"dns_resolver" default:"1.1.1.1:53"`
	DNSTimeout   time.Duration `koanf:"dns_timeout" default:"5s"`
	TLSTimeout   time.Duration `koanf:"tls_timeout" default:"5s"`
}

type CacheSettings struct {
	Enabled    bool          `koanf:"enabled" default:"true"`
	BadgerPath string        `koanf:"badger_path" default:""`
	InMemory   bool          `koanf:"in_memory" default:"true"`
	UseBloom   bool          `koanf:"use_bloom" default:"true"`
	TTL        time.Duration `koanf:"ttl" default:"1h"`
	SweepCron  string        `koanf:"sweep_cron" default:"0 */10 * * * *"`
}

type CrawlerConfig struct {
	InputFile  string        `koanf:"input_file" default:"balanced_dataset.csv"`
	OutputFile string        `koanf:"output_file" default:"feature_dataset.csv"`
	FailureLog string        `koanf:"failure_log" default:"skipped_urls.csv"`
	DBPath     string        `koanf:"db_path" default:"phishdetect.db"`
	Pause      time.Duration `koanf:"pause" default:"300ms"`
}

type Config struct {
	APP        APPConfig
	Server     ServerConfig
	Model      ModelConfig
	Extractor  ExtractorConfig
	Whitelist  WhitelistConfig
	Fetcher    FetcherConfig
	Reputation ReputationConfig
	Cache      CacheSettings
	Crawler    CrawlerConfig
}
