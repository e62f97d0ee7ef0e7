package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   provider webhook URLs) and secrets (trigger token)
// - default: Values common across all environments (timeouts, retry budgets,
//   token TTL, portal path)
// The whole struct is resolved once at process start; core logic only ever
// receives the resolved Config, never reads the environment directly.
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Delivery  DeliveryConfig
	Portal    PortalConfig
	Contact   ContactConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Australia/Perth"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Trigger-Token"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Australia/Perth"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"28800"` // 8*60*60
}

// SchedulerConfig drives campaign materialization and the trigger surface.
// CronSpec is optional; when empty the scheduler only runs on the HTTP trigger.
type SchedulerConfig struct {
	TriggerToken   string `envconfig:"SCHEDULER_TRIGGER_TOKEN" required:"true"`
	CronSpec       string `envconfig:"SCHEDULER_CRON" default:""`
	MaxConcurrency int    `envconfig:"SCHEDULER_MAX_CONCURRENCY" default:"8"`
}

// DeliveryConfig selects the automation provider and bounds the retry policy.
// MaxRetries counts additional attempts after the first (2 => up to 3 calls).
type DeliveryConfig struct {
	Provider      string        `envconfig:"DELIVERY_PROVIDER" default:"make"`
	MakeWebhook   string        `envconfig:"MAKE_WEBHOOK_URL" default:""`
	N8nWebhook    string        `envconfig:"N8N_WEBHOOK_URL" default:""`
	WebhookSecret string        `envconfig:"DELIVERY_WEBHOOK_SECRET" default:""`
	Timeout       time.Duration `envconfig:"DELIVERY_TIMEOUT" default:"10s"`
	MaxRetries    int           `envconfig:"DELIVERY_MAX_RETRIES" default:"2"`
	BackoffBase   time.Duration `envconfig:"DELIVERY_BACKOFF_BASE" default:"300ms"`
	BackoffGrowth float64       `envconfig:"DELIVERY_BACKOFF_GROWTH" default:"3.0"`
	RatePerSec    float64       `envconfig:"DELIVERY_RATE_PER_SEC" default:"10"`
}

type PortalConfig struct {
	BaseURL  string        `envconfig:"PORTAL_BASE_URL" default:"http://localhost:8080"`
	Path     string        `envconfig:"PORTAL_PATH" default:"portal"`
	TokenTTL time.Duration `envconfig:"PORTAL_TOKEN_TTL" default:"168h"` // 7 days
}

// ContactConfig is rendered into reminder emails so contractors can reach a
// human when the portal link fails them.
type ContactConfig struct {
	Phone string `envconfig:"CONTACT_PHONE" default:""`
	Email string `envconfig:"CONTACT_EMAIL" default:""`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// WebhookURL resolves the active provider's endpoint. An empty result is a
// configuration fault the pipeline classifies as ErrConfig, never retried.
func (c *DeliveryConfig) WebhookURL() string {
	switch c.Provider {
	case "n8n":
		return c.N8nWebhook
	default:
		return c.MakeWebhook
	}
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Australia/Perth",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Australia/Perth",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 28800,
		},
		Scheduler: SchedulerConfig{
			TriggerToken:   "test-trigger-token",
			MaxConcurrency: 4,
		},
		Delivery: DeliveryConfig{
			Provider:      "make",
			MakeWebhook:   "http://localhost:9999/hook",
			Timeout:       2 * time.Second,
			MaxRetries:    2,
			BackoffBase:   time.Millisecond,
			BackoffGrowth: 3.0,
			RatePerSec:    1000,
		},
		Portal: PortalConfig{
			BaseURL:  "http://localhost:8889",
			Path:     "portal",
			TokenTTL: 168 * time.Hour,
		},
	}
}
