package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Meta         Meta         `mapstructure:",squash"`
	Retry        Retry        `mapstructure:",squash"`
	Sync         Sync         `mapstructure:",squash"`
	Alerts       Alerts       `mapstructure:",squash"`
	Notification Notification `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	Crypto       Crypto       `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Meta struct {
	BaseURL           string        `mapstructure:"meta_base_url"`
	URL               string        `mapstructure:"-"`
	Version           string        `mapstructure:"meta_version"`
	RequestTimeout    time.Duration `mapstructure:"meta_request_timeout"`
	RequestsPerSecond float64       `mapstructure:"meta_requests_per_second"`
	PageLimit         int           `mapstructure:"meta_page_limit"`
}

// Retry define a política de novas tentativas das chamadas à Graph API
type Retry struct {
	MaxAttempts    int           `mapstructure:"meta_retry_max_attempts"`
	BaseDelay      time.Duration `mapstructure:"meta_retry_base_delay"`
	RateLimitDelay time.Duration `mapstructure:"meta_retry_rate_limit_delay"`
}

type Sync struct {
	CronSchedule           string        `mapstructure:"sync_cron"`
	Enabled                bool          `mapstructure:"sync_enabled"`
	LookbackDays           int           `mapstructure:"sync_lookback_days"`
	MaxConcurrentAccounts  int           `mapstructure:"sync_max_concurrent_accounts"`
	AdBatchSize            int           `mapstructure:"sync_ad_batch_size"`
	AdBatchPause           time.Duration `mapstructure:"sync_ad_batch_pause"`
	DailyBreakdown         bool          `mapstructure:"sync_daily_breakdown"`
	DefaultCampaignOwnerID string        `mapstructure:"sync_default_campaign_owner_id"`
}

type Alerts struct {
	RoasFloor           float64 `mapstructure:"alert_roas_floor"`
	SpendBudgetFraction float64 `mapstructure:"alert_spend_budget_fraction"`
}

type Notification struct {
	BufferSize int `mapstructure:"notification_buffer_size"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type Crypto struct {
	CredentialKey string `mapstructure:"credential_encryption_key"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/ads_sync?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "")

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_REQUEST_TIMEOUT", "30s")
	viper.SetDefault("META_REQUESTS_PER_SECOND", 5)
	viper.SetDefault("META_PAGE_LIMIT", 100)

	viper.SetDefault("META_RETRY_MAX_ATTEMPTS", 3)
	viper.SetDefault("META_RETRY_BASE_DELAY", "1s")        // 1s, 2s, 4s...
	viper.SetDefault("META_RETRY_RATE_LIMIT_DELAY", "10s") // throttling espera mais

	viper.SetDefault("SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("SYNC_ENABLED", false)
	viper.SetDefault("SYNC_LOOKBACK_DAYS", 7)
	viper.SetDefault("SYNC_MAX_CONCURRENT_ACCOUNTS", 3)
	viper.SetDefault("SYNC_AD_BATCH_SIZE", 10)
	viper.SetDefault("SYNC_AD_BATCH_PAUSE", "1s")
	viper.SetDefault("SYNC_DAILY_BREAKDOWN", true)
	viper.SetDefault("SYNC_DEFAULT_CAMPAIGN_OWNER_ID", "")

	viper.SetDefault("ALERT_ROAS_FLOOR", 1.0)
	viper.SetDefault("ALERT_SPEND_BUDGET_FRACTION", 0.9)

	viper.SetDefault("NOTIFICATION_BUFFER_SIZE", 256)

	viper.SetDefault("AUTH_SECRET", "")
	viper.SetDefault("CREDENTIAL_ENCRYPTION_KEY", "")

	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", strings.TrimRight(config.Meta.BaseURL, "/"), config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate garante valores utilizáveis para a sincronização
func (c *Config) Validate() error {
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("META_RETRY_MAX_ATTEMPTS deve ser >= 1, recebido %d", c.Retry.MaxAttempts)
	}

	if c.Sync.LookbackDays < 1 {
		return fmt.Errorf("SYNC_LOOKBACK_DAYS deve ser >= 1, recebido %d", c.Sync.LookbackDays)
	}

	if c.Sync.MaxConcurrentAccounts < 1 {
		c.Sync.MaxConcurrentAccounts = 1
	}

	if c.Sync.AdBatchSize < 1 {
		c.Sync.AdBatchSize = 1
	}

	if c.Meta.PageLimit < 1 {
		c.Meta.PageLimit = 100
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
