package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration. Values are fixed
// at startup; nothing mutates them during a run.
type Config struct {
	Sources SourcesConfig `yaml:"sources" envconfig:"SOURCES"`
	Export  ExportConfig  `yaml:"export" envconfig:"EXPORT"`
	Batch   BatchConfig   `yaml:"batch" envconfig:"BATCH"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// SourcesConfig contains the external data-provider endpoints
type SourcesConfig struct {
	ConstituentsURL     string        `yaml:"constituents_url" envconfig:"CONSTITUENTS_URL" default:"https://en.wikipedia.org/wiki/NIFTY_50"`
	YahooBaseURL        string        `yaml:"yahoo_base_url" envconfig:"YAHOO_BASE_URL" default:"https://query1.finance.yahoo.com"`
	NSEBaseURL          string        `yaml:"nse_base_url" envconfig:"NSE_BASE_URL" default:"https://www.nseindia.com"`
	UserAgent           string        `yaml:"user_agent" envconfig:"USER_AGENT" default:"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`
	ConstituentsTimeout time.Duration `yaml:"constituents_timeout" envconfig:"CONSTITUENTS_TIMEOUT" default:"20s"`
	HistoricalTimeout   time.Duration `yaml:"historical_timeout" envconfig:"HISTORICAL_TIMEOUT" default:"30s"`
}

// ExportConfig contains output file configuration
type ExportConfig struct {
	OutDir          string `yaml:"out_dir" envconfig:"OUT_DIR" default:"nifty50_csv"`
	SummaryWorkbook string `yaml:"summary_workbook" envconfig:"SUMMARY_WORKBOOK" default:"run_summary.xlsx"`
	WriteSummary    bool   `yaml:"write_summary" envconfig:"WRITE_SUMMARY" default:"true"`
}

// BatchConfig contains the run parameters shared by every ticker
type BatchConfig struct {
	RequestDelay   time.Duration `yaml:"request_delay" envconfig:"REQUEST_DELAY" default:"500ms"`
	LookbackYears  int           `yaml:"lookback_years" envconfig:"LOOKBACK_YEARS" default:"5"`
	ExchangeSuffix string        `yaml:"exchange_suffix" envconfig:"EXCHANGE_SUFFIX" default:".NS"`
	EnrichDelivery bool          `yaml:"enrich_delivery" envconfig:"ENRICH_DELIVERY" default:"true"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/nifty50.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// Load loads configuration from the environment and an optional YAML file.
// Struct-tag defaults and NIFTY_* environment variables are applied first;
// values present in the file then override them — the file is the most
// explicit input, passed per run. Keys absent from the file leave the
// env/default value untouched.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("NIFTY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// envconfig fills every field (defaults included), so the file has to be
	// merged on top of the processed config, not the other way around.
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile merges a YAML file into cfg; keys absent from the document
// leave the existing values in place
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate checks that the configuration is internally consistent
func (c *Config) validate() error {
	if c.Sources.ConstituentsURL == "" {
		return fmt.Errorf("sources.constituents_url must not be empty")
	}
	if c.Sources.YahooBaseURL == "" {
		return fmt.Errorf("sources.yahoo_base_url must not be empty")
	}
	if c.Batch.EnrichDelivery && c.Sources.NSEBaseURL == "" {
		return fmt.Errorf("sources.nse_base_url must not be empty when delivery enrichment is enabled")
	}
	if c.Export.OutDir == "" {
		return fmt.Errorf("export.out_dir must not be empty")
	}
	if c.Batch.LookbackYears <= 0 {
		return fmt.Errorf("batch.lookback_years must be positive, got %d", c.Batch.LookbackYears)
	}
	if c.Batch.RequestDelay < 0 {
		return fmt.Errorf("batch.request_delay must not be negative, got %s", c.Batch.RequestDelay)
	}
	if !strings.HasPrefix(c.Batch.ExchangeSuffix, ".") {
		return fmt.Errorf("batch.exchange_suffix must start with a dot, got %q", c.Batch.ExchangeSuffix)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug/info/warn/error, got %q", c.Logging.Level)
	}
	return nil
}
