package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"resume-studio/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	LogLevel        string

	DatabaseURL string
	RedisURL    string
	SessionTTL  time.Duration

	// ObjectStoreType is "local" or "s3".
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	S3Endpoint      string
	SSEKMSKeyID     string

	JWTSecret string

	ChromePath           string
	RasterTimeout        time.Duration
	ExportCreditCost     int
	ExportFilenamePrefix string
	ExportLinkTTL        time.Duration
	WatermarkText        string
	PublicBaseURL        string

	BalanceAPIURL       string
	BalanceClientID     string
	BalanceClientSecret string
	BalanceTokenURL     string
	DevCreditGrant      int

	LLMProvider   string
	LLMModel      string
	OpenAIAPIKey  string
	OpenAIBaseURL string
}

// Load reads the environment, after merging .env files that do not override set variables.
// Unparseable values fall back to their default and are logged.
func Load() Config {
	loadEnvFiles(".env", "cmd/.env")

	var e envReader
	cfg := Config{
		Port:            e.str("PORT", "8080"),
		CORSAllowOrigin: e.list("CORS_ALLOW_ORIGINS", "http://localhost:5173"),
		Env:             normalizeEnv(e.str("ENV", "dev")),
		LogLevel:        e.str("LOG_LEVEL", "info"),

		DatabaseURL: e.str("DATABASE_URL", ""),
		RedisURL:    e.str("REDIS_URL", ""),
		SessionTTL:  e.duration("SESSION_TTL", 24*time.Hour),

		ObjectStoreType: strings.ToLower(e.str("OBJECT_STORE", "local")),
		LocalStoreDir:   e.str("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       e.str("AWS_REGION", ""),
		S3Bucket:        e.str("S3_BUCKET", ""),
		S3Prefix:        e.str("S3_PREFIX", ""),
		S3Endpoint:      e.str("S3_ENDPOINT", ""),
		SSEKMSKeyID:     e.str("SSE_KMS_KEY_ID", ""),

		JWTSecret: e.str("JWT_SECRET", ""),

		ChromePath:           e.str("CHROME_PATH", ""),
		RasterTimeout:        e.duration("RASTER_TIMEOUT", 60*time.Second),
		ExportCreditCost:     e.number("EXPORT_CREDIT_COST", 2),
		ExportFilenamePrefix: e.str("EXPORT_FILENAME_PREFIX", "BaraCV"),
		ExportLinkTTL:        e.duration("EXPORT_LINK_TTL", 15*time.Minute),
		WatermarkText:        e.str("WATERMARK_TEXT", "BaraCV Preview"),
		PublicBaseURL:        strings.TrimRight(e.str("PUBLIC_BASE_URL", ""), "/"),

		BalanceAPIURL:       strings.TrimRight(e.str("BALANCE_API_URL", ""), "/"),
		BalanceClientID:     e.str("BALANCE_CLIENT_ID", ""),
		BalanceClientSecret: e.str("BALANCE_CLIENT_SECRET", ""),
		BalanceTokenURL:     e.str("BALANCE_TOKEN_URL", ""),
		DevCreditGrant:      e.number("DEV_CREDIT_GRANT", 10),

		LLMProvider:   strings.ToLower(e.str("LLM_PROVIDER", "openai")),
		LLMModel:      e.str("LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:  e.str("OPENAI_API_KEY", ""),
		OpenAIBaseURL: e.str("OPENAI_BASE_URL", "https://api.openai.com/v1"),
	}
	if cfg.ObjectStoreType != "s3" {
		cfg.ObjectStoreType = "local"
	}
	if cfg.ExportCreditCost < 0 {
		e.invalid("EXPORT_CREDIT_COST", strconv.Itoa(cfg.ExportCreditCost), 2)
		cfg.ExportCreditCost = 2
	}
	return cfg
}

// IsDev reports whether the environment allows dev-only routes and memory fallbacks.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "local"
}

// Validate reports settings a deployed environment cannot run without.
// Dev environments fall back to in-memory backends and always pass.
func (c Config) Validate() error {
	if c.IsDev() {
		return nil
	}
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.RedisURL == "" {
		errs = append(errs, errors.New("REDIS_URL is required"))
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.ObjectStoreType == "s3" && c.S3Bucket == "" {
		errs = append(errs, errors.New("OBJECT_STORE=s3 requires S3_BUCKET"))
	}
	return errors.Join(errs...)
}

type envReader struct{}

func (envReader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (e envReader) list(key, def string) []string {
	var out []string
	for _, part := range strings.Split(e.str(key, def), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (e envReader) number(key string, def int) int {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		e.invalid(key, raw, def)
		return def
	}
	return n
}

// duration accepts Go durations ("90s") or a bare number of seconds.
func (e envReader) duration(key string, def time.Duration) time.Duration {
	raw := e.str(key, "")
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	e.invalid(key, raw, def)
	return def
}

func (envReader) invalid(key, raw string, def any) {
	telemetry.Warn("config.invalid_value", map[string]any{"key": key, "value": raw, "default": def})
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(raw) {
	case "production", "prod":
		return "production"
	case "staging", "stage":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
