package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// DefaultTenantID is used when a single-company install sets no tenant
const DefaultTenantID = "00000000-0000-0000-0000-000000000001"

// Config holds all application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Storage   StorageConfig   `mapstructure:"storage"`
	PDF       PDFConfig       `mapstructure:"pdf"`
	Opex      OpexConfig      `mapstructure:"opex"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
	Output string `mapstructure:"output"` // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
	// Timezone used for date-only fields such as due dates
	Timezone string `mapstructure:"timezone"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// RedisConfig holds Redis connection settings. An empty host disables
// Redis and the in-memory token blacklist is used instead.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                 string        `mapstructure:"secret"`
	RefreshSecret          string        `mapstructure:"refresh_secret"`
	AccessTokenExpiration  time.Duration `mapstructure:"access_token_expiration"`
	RefreshTokenExpiration time.Duration `mapstructure:"refresh_token_expiration"`
	Issuer                 string        `mapstructure:"issuer"`
}

// HTTPConfig holds HTTP server configuration. Empty CORS method and header
// lists fall back to the middleware defaults.
type HTTPConfig struct {
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	MaxHeaderBytes    int           `mapstructure:"max_header_bytes"`
	MaxBodySize       int64         `mapstructure:"max_body_size"`
	RateLimitEnabled  bool          `mapstructure:"rate_limit_enabled"`
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`
	// AuthRateLimit* throttle login and refresh per client address
	AuthRateLimitRequests int           `mapstructure:"auth_rate_limit_requests"`
	AuthRateLimitWindow   time.Duration `mapstructure:"auth_rate_limit_window"`
	CORSAllowOrigins      []string      `mapstructure:"cors_allow_origins"`
	CORSAllowMethods      []string      `mapstructure:"cors_allow_methods"`
	CORSAllowHeaders      []string      `mapstructure:"cors_allow_headers"`
	TrustedProxies        []string      `mapstructure:"trusted_proxies"`
}

// StorageConfig holds S3-compatible object storage settings used for
// archiving generated PDFs.
type StorageConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	Endpoint          string        `mapstructure:"endpoint"`
	Region            string        `mapstructure:"region"`
	Bucket            string        `mapstructure:"bucket"`
	AccessKey         string        `mapstructure:"access_key"`
	SecretKey         string        `mapstructure:"secret_key"`
	UseSSL            bool          `mapstructure:"use_ssl"`
	PresignExpiration time.Duration `mapstructure:"presign_expiration"`
}

// PDFConfig holds headless Chrome settings for PDF rendering
type PDFConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	RemoteURL string        `mapstructure:"remote_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	NoSandbox bool          `mapstructure:"no_sandbox"`
}

// OpexConfig holds settings of the OPEX matrix
type OpexConfig struct {
	// DebounceInterval is the quiet period before an edited cell is saved
	DebounceInterval time.Duration `mapstructure:"debounce_interval"`
}

// BootstrapConfig seeds the first admin user. An empty AdminEmail skips seeding.
type BootstrapConfig struct {
	TenantID      string `mapstructure:"tenant_id"`
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
	AdminName     string `mapstructure:"admin_name"`
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	CollectorEndpoint string        `mapstructure:"collector_endpoint"`
	SamplingRatio     float64       `mapstructure:"sampling_ratio"`
	ServiceName       string        `mapstructure:"service_name"`
	Insecure          bool          `mapstructure:"insecure"`
	DBTraceEnabled    bool          `mapstructure:"db_trace_enabled"`
	DBLogFullSQL      bool          `mapstructure:"db_log_full_sql"`
	DBSlowQueryThresh time.Duration `mapstructure:"db_slow_query_threshold"`
	MetricsInterval   time.Duration `mapstructure:"metrics_interval"`
	LogExportEnabled  bool          `mapstructure:"log_export_enabled"`
	// ProfilingEndpoint is the Pyroscope server; empty disables profiling
	ProfilingEndpoint string `mapstructure:"profiling_endpoint"`
}

// defaults lists every key. Keys without a useful default are still
// registered so ISLETME_* variables reach them through Unmarshal.
var defaults = map[string]any{
	"app.name":     "isletme-backend",
	"app.env":      "development",
	"app.port":     "8080",
	"app.timezone": "Europe/Istanbul",

	"database.host":               "localhost",
	"database.port":               5432,
	"database.user":               "postgres",
	"database.password":           "",
	"database.dbname":             "isletme",
	"database.sslmode":            "disable",
	"database.max_open_conns":     25,
	"database.max_idle_conns":     5,
	"database.conn_max_lifetime":  time.Hour,
	"database.conn_max_idle_time": 30 * time.Minute,
	"database.auto_migrate":       false,

	"redis.host":     "",
	"redis.port":     6379,
	"redis.password": "",
	"redis.db":       0,

	"jwt.secret":                   "",
	"jwt.refresh_secret":           "",
	"jwt.access_token_expiration":  15 * time.Minute,
	"jwt.refresh_token_expiration": 7 * 24 * time.Hour,
	"jwt.issuer":                   "isletme-backend",

	"log.level":  "info",
	"log.format": "console",
	"log.output": "stdout",

	"http.read_timeout":             15 * time.Second,
	"http.write_timeout":            30 * time.Second,
	"http.idle_timeout":             60 * time.Second,
	"http.max_header_bytes":         1 << 20,
	"http.max_body_size":            10 << 20,
	"http.rate_limit_enabled":       false,
	"http.rate_limit_requests":      100,
	"http.rate_limit_window":        time.Minute,
	"http.auth_rate_limit_requests": 5,
	"http.auth_rate_limit_window":   time.Minute,
	"http.cors_allow_origins":       []string{},
	"http.cors_allow_methods":       []string{},
	"http.cors_allow_headers":       []string{},
	"http.trusted_proxies":          []string{},

	"storage.enabled":            false,
	"storage.endpoint":           "",
	"storage.region":             "us-east-1",
	"storage.bucket":             "isletme-documents",
	"storage.access_key":         "",
	"storage.secret_key":         "",
	"storage.use_ssl":            false,
	"storage.presign_expiration": 15 * time.Minute,

	"pdf.enabled":    false,
	"pdf.remote_url": "",
	"pdf.timeout":    30 * time.Second,
	"pdf.no_sandbox": false,

	"opex.debounce_interval": time.Second,

	"telemetry.enabled":                 false,
	"telemetry.collector_endpoint":      "localhost:4317",
	"telemetry.sampling_ratio":          1.0,
	"telemetry.service_name":            "",
	"telemetry.insecure":                false,
	"telemetry.db_trace_enabled":        false,
	"telemetry.db_log_full_sql":         false,
	"telemetry.db_slow_query_threshold": 200 * time.Millisecond,
	"telemetry.metrics_interval":        time.Minute,
	"telemetry.log_export_enabled":      false,
	"telemetry.profiling_endpoint":      "",

	"bootstrap.tenant_id":      DefaultTenantID,
	"bootstrap.admin_email":    "",
	"bootstrap.admin_password": "",
	"bootstrap.admin_name":     "Yönetici",
}

// Load reads configuration. Priority, highest first:
//  1. ISLETME_ environment variables (ISLETME_DATABASE_PASSWORD)
//  2. config.toml in the working directory or /app
//  3. built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("ISLETME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return errors.New("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return errors.New("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Opex.DebounceInterval < 0 {
		return errors.New("opex.debounce_interval cannot be negative")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("app.timezone: %w", err)
	}
	if c.Storage.Enabled && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
		return errors.New("storage.access_key and storage.secret_key are required when storage is enabled")
	}
	if _, err := uuid.Parse(c.Bootstrap.TenantID); err != nil {
		return fmt.Errorf("bootstrap.tenant_id: %w", err)
	}
	if c.Bootstrap.AdminEmail != "" && c.Bootstrap.AdminPassword == "" {
		return errors.New("bootstrap.admin_password is required when bootstrap.admin_email is set")
	}
	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}
	if c.IsProduction() {
		return c.validateProduction()
	}
	return nil
}

func (c *Config) validateProduction() error {
	switch {
	case len(c.JWT.Secret) < 32:
		return errors.New("jwt.secret must be at least 32 characters in production")
	case c.Database.Password == "":
		return errors.New("database.password is required in production")
	case c.Database.SSLMode == "disable":
		return errors.New("database.sslmode cannot be 'disable' in production")
	case c.Telemetry.DBLogFullSQL:
		return errors.New("telemetry.db_log_full_sql must be false in production")
	}
	for _, origin := range c.HTTP.CORSAllowOrigins {
		if origin == "*" {
			return errors.New("http.cors_allow_origins cannot be '*' in production")
		}
	}
	return nil
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Location returns the configured time zone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DSN returns the database connection string with escaped credentials
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.DBName,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}
