package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/devpulse/devpulse/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit  = 25
	MaxResultLimit      = 1000
	DefaultPrecision    = 2
	DefaultRequestDelay = time.Second
	DefaultHTTPTimeout  = 30 * time.Second
	DefaultCronSpec     = "0 0 * * *" // daily at midnight
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the validated runtime configuration for a pipeline run.
type Config struct {
	CatalogPath string
	Backend     schema.DatabaseBackend
	DBConnect   string
	GitHubToken string

	// ProcessDate is the "as of" date for merge and retention decisions.
	ProcessDate time.Time

	Technology  string // optional per-technology filter for queries
	Date        string // optional snapshot date filter (YYYY-MM-DD)
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	UseColors   bool
	Width       int // Terminal width override (0 = auto-detect)

	RequestDelay time.Duration
	HTTPTimeout  time.Duration
	CronSpec     string
}

// Clone returns a copy of the config safe for per-request mutation.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	CatalogPath string `mapstructure:"catalog"`
	Backend     string `mapstructure:"backend"`
	DBConnect   string `mapstructure:"db-connect"`
	GitHubToken string `mapstructure:"github-token"`
	ProcessDate string `mapstructure:"date"`
	Technology  string `mapstructure:"technology"`
	ResultLimit int    `mapstructure:"limit"`
	Precision   int    `mapstructure:"precision"`
	Output      string `mapstructure:"output"`
	OutputFile  string `mapstructure:"output-file"`
	Color       string `mapstructure:"color"`
	Width       int    `mapstructure:"width"`
	Delay       string `mapstructure:"delay"`
	Timeout     string `mapstructure:"timeout"`
	CronSpec    string `mapstructure:"cron"`
}

// ProcessAndValidate turns raw input into a validated Config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(input.Backend)))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidBackends[backend]; !ok {
		return fmt.Errorf("invalid backend %q: must be sqlite, mysql or postgresql", input.Backend)
	}
	cfg.Backend = backend
	cfg.DBConnect = input.DBConnect
	cfg.CatalogPath = input.CatalogPath
	cfg.GitHubToken = input.GitHubToken
	cfg.Technology = input.Technology

	cfg.ProcessDate = time.Now().UTC()
	if input.ProcessDate != "" {
		d, err := time.Parse(schema.DateFormat, input.ProcessDate)
		if err != nil {
			return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", input.ProcessDate)
		}
		cfg.ProcessDate = d
		cfg.Date = input.ProcessDate
	}

	if input.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	} else if input.ResultLimit > MaxResultLimit {
		return fmt.Errorf("limit cannot exceed %d", MaxResultLimit)
	} else {
		cfg.ResultLimit = input.ResultLimit
	}

	cfg.Precision = input.Precision
	if cfg.Precision < 0 || cfg.Precision > 6 {
		return fmt.Errorf("precision must be between 0 and 6, got %d", input.Precision)
	}

	output := schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output mode %q: must be text, csv or json", input.Output)
	}
	cfg.Output = output
	cfg.OutputFile = input.OutputFile
	cfg.UseColors = parseBoolish(input.Color, true)
	cfg.Width = input.Width

	cfg.RequestDelay = DefaultRequestDelay
	if input.Delay != "" {
		d, err := time.ParseDuration(input.Delay)
		if err != nil {
			return fmt.Errorf("invalid delay %q: %w", input.Delay, err)
		}
		cfg.RequestDelay = d
	}

	cfg.HTTPTimeout = DefaultHTTPTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", input.Timeout, err)
		}
		cfg.HTTPTimeout = d
	}

	cfg.CronSpec = input.CronSpec
	if cfg.CronSpec == "" {
		cfg.CronSpec = DefaultCronSpec
	}

	return nil
}

// parseBoolish interprets yes/no/true/false/1/0 with a fallback default.
func parseBoolish(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return def
	}
}
