package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains runtime settings for every binary
type Config struct {
	LogLevel  string
	DebugMode bool
	Host      string // default 0.0.0.0
	Port      string // default PORT env or 8080

	Sheets struct {
		CredentialsPath string
		SpreadsheetID   string
		SheetName       string
		SkipCompleted   bool
	}

	Browser struct {
		Headless          bool
		UserAgent         string
		NavigationTimeout time.Duration
		SettleDelay       time.Duration
		RulesPath         string // optional YAML selector override
	}

	Batch struct {
		RowDelay   time.Duration
		PacingMode string
	}

	Monday struct {
		APIKey    string
		BoardID   string
		APIURL    string
		ItemDelay time.Duration
		Columns   struct {
			Company     string
			Location    string
			Link        string
			Description string
		}
	}

	Telegram struct {
		Token  string
		ChatID int64
	} // optional run summaries
}

// Load reads .env when present, then populates config from environment variables
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel: "info",
		Host:     "0.0.0.0",
		Port:     "8080",
	}
	cfg.Sheets.SheetName = "Job Data"
	cfg.Browser.Headless = true
	cfg.Batch.PacingMode = "interval"
	cfg.Monday.APIURL = "https://api.monday.com/v2"
	cfg.Monday.Columns.Company = "text_mknhnrja"
	cfg.Monday.Columns.Location = "text_mknjamzd"
	cfg.Monday.Columns.Link = "link_mknhdsm8"
	cfg.Monday.Columns.Description = "long_text_mknhxgw"

	p := parser{}

	setString(&cfg.LogLevel, "LOG_LEVEL")
	cfg.DebugMode = p.bool("DEBUG_MODE", false)
	if cfg.DebugMode {
		cfg.LogLevel = "debug"
	}
	setString(&cfg.Host, "HOST")
	setString(&cfg.Port, "PORT")

	cfg.Sheets.CredentialsPath = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	cfg.Sheets.SpreadsheetID = os.Getenv("SPREADSHEET_ID")
	setString(&cfg.Sheets.SheetName, "SHEET_NAME")
	cfg.Sheets.SkipCompleted = p.bool("QUEUE_SKIP_COMPLETED", false)

	cfg.Browser.Headless = p.bool("BROWSER_HEADLESS", true)
	cfg.Browser.UserAgent = os.Getenv("BROWSER_USER_AGENT")
	cfg.Browser.NavigationTimeout = p.millis("NAVIGATION_TIMEOUT_MS", 30000)
	cfg.Browser.SettleDelay = p.millis("SETTLE_DELAY_MS", 2000)
	cfg.Browser.RulesPath = os.Getenv("SELECTOR_RULES_PATH")

	cfg.Batch.RowDelay = p.millis("ROW_DELAY_MS", 2000)
	setString(&cfg.Batch.PacingMode, "PACING_MODE")
	switch cfg.Batch.PacingMode {
	case "interval", "token", "none":
	default:
		p.errs = append(p.errs, fmt.Sprintf("PACING_MODE must be interval, token or none, got %q", cfg.Batch.PacingMode))
	}

	cfg.Monday.APIKey = os.Getenv("MONDAY_API_KEY")
	cfg.Monday.BoardID = os.Getenv("MONDAY_BOARD_ID")
	setString(&cfg.Monday.APIURL, "MONDAY_API_URL")
	setString(&cfg.Monday.Columns.Company, "MONDAY_COLUMN_COMPANY")
	setString(&cfg.Monday.Columns.Location, "MONDAY_COLUMN_LOCATION")
	setString(&cfg.Monday.Columns.Link, "MONDAY_COLUMN_LINK")
	setString(&cfg.Monday.Columns.Description, "MONDAY_COLUMN_DESCRIPTION")
	cfg.Monday.ItemDelay = p.millis("EXPORT_ITEM_DELAY_MS", 1000)

	cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.errs = append(p.errs, fmt.Sprintf("TELEGRAM_CHAT_ID must be an integer, got %q", v))
		}
		cfg.Telegram.ChatID = id
	}

	if len(p.errs) > 0 {
		return cfg, fmt.Errorf("invalid environment variables: %s", strings.Join(p.errs, "; "))
	}

	return cfg, nil
}

// RequireStore checks the variables needed to reach the spreadsheet
func (c Config) RequireStore() error {
	var missingVars []string

	if c.Sheets.CredentialsPath == "" {
		missingVars = append(missingVars, "GOOGLE_APPLICATION_CREDENTIALS")
	}

	if c.Sheets.SpreadsheetID == "" {
		missingVars = append(missingVars, "SPREADSHEET_ID")
	}

	return missing(missingVars)
}

// RequireExport checks the store variables plus the Monday.com credentials
func (c Config) RequireExport() error {
	var missingVars []string

	if c.Sheets.CredentialsPath == "" {
		missingVars = append(missingVars, "GOOGLE_APPLICATION_CREDENTIALS")
	}

	if c.Sheets.SpreadsheetID == "" {
		missingVars = append(missingVars, "SPREADSHEET_ID")
	}

	if c.Monday.APIKey == "" {
		missingVars = append(missingVars, "MONDAY_API_KEY")
	}

	if c.Monday.BoardID == "" {
		missingVars = append(missingVars, "MONDAY_BOARD_ID")
	}

	return missing(missingVars)
}

// TelegramEnabled reports whether run summaries should be sent
func (c Config) TelegramEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}

func missing(vars []string) error {
	if len(vars) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(vars, ", "))
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// parser collects every malformed value instead of stopping at the first
type parser struct {
	errs []string
}

func (p *parser) bool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = append(p.errs, fmt.Sprintf("%s must be a boolean, got %q", key, v))
		return def
	}
	return b
}

func (p *parser) millis(key string, def int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(def) * time.Millisecond
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		p.errs = append(p.errs, fmt.Sprintf("%s must be a non-negative integer, got %q", key, v))
		return time.Duration(def) * time.Millisecond
	}
	return time.Duration(n) * time.Millisecond
}
