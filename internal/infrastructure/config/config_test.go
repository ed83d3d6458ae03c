package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"ISLETME_APP_NAME",
	"ISLETME_APP_ENV",
	"ISLETME_APP_PORT",
	"ISLETME_APP_TIMEZONE",
	"ISLETME_DATABASE_HOST",
	"ISLETME_DATABASE_PORT",
	"ISLETME_DATABASE_PASSWORD",
	"ISLETME_DATABASE_DBNAME",
	"ISLETME_DATABASE_SSLMODE",
	"ISLETME_DATABASE_MAX_OPEN_CONNS",
	"ISLETME_DATABASE_MAX_IDLE_CONNS",
	"ISLETME_DATABASE_CONN_MAX_LIFETIME",
	"ISLETME_JWT_SECRET",
	"ISLETME_HTTP_CORS_ALLOW_ORIGINS",
	"ISLETME_OPEX_DEBOUNCE_INTERVAL",
	"ISLETME_STORAGE_ENABLED",
	"ISLETME_STORAGE_ACCESS_KEY",
	"ISLETME_STORAGE_SECRET_KEY",
	"ISLETME_TELEMETRY_SAMPLING_RATIO",
	"ISLETME_BOOTSTRAP_TENANT_ID",
	"ISLETME_BOOTSTRAP_ADMIN_EMAIL",
	"ISLETME_BOOTSTRAP_ADMIN_PASSWORD",
}

// clearEnv unsets every config variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "isletme-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "Europe/Istanbul", cfg.App.Timezone)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "isletme", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenExpiration)
		assert.Equal(t, time.Second, cfg.Opex.DebounceInterval)
		assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
		assert.Equal(t, "isletme-documents", cfg.Storage.Bucket)
		assert.Equal(t, 30*time.Second, cfg.PDF.Timeout)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.Equal(t, "isletme-backend", cfg.Telemetry.ServiceName)
		assert.Empty(t, cfg.HTTP.CORSAllowOrigins)
		assert.Equal(t, DefaultTenantID, cfg.Bootstrap.TenantID)
		assert.Empty(t, cfg.Bootstrap.AdminEmail)
	})

	t.Run("loads values from environment variables with ISLETME prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ISLETME_APP_NAME", "test-app")
		t.Setenv("ISLETME_APP_PORT", "9000")
		t.Setenv("ISLETME_DATABASE_HOST", "testdb.local")
		t.Setenv("ISLETME_DATABASE_PORT", "5433")
		t.Setenv("ISLETME_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("ISLETME_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("ISLETME_OPEX_DEBOUNCE_INTERVAL", "250ms")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, 250*time.Millisecond, cfg.Opex.DebounceInterval)
	})

	t.Run("decodes durations and comma separated lists", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ISLETME_DATABASE_CONN_MAX_LIFETIME", "90m")
		t.Setenv("ISLETME_HTTP_CORS_ALLOW_ORIGINS", "https://panel.firma.com.tr,https://mobil.firma.com.tr")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 90*time.Minute, cfg.Database.ConnMaxLifetime)
		assert.Equal(t, []string{"https://panel.firma.com.tr", "https://mobil.firma.com.tr"}, cfg.HTTP.CORSAllowOrigins)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ISLETME_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("ISLETME_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown timezone", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ISLETME_APP_TIMEZONE", "Mars/Olympus")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.timezone")
	})

	t.Run("storage requires credentials when enabled", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ISLETME_STORAGE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.access_key")

		t.Setenv("ISLETME_STORAGE_ACCESS_KEY", "key")
		t.Setenv("ISLETME_STORAGE_SECRET_KEY", "secret")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Storage.Enabled)
	})

	t.Run("bootstrap admin needs a password", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ISLETME_BOOTSTRAP_ADMIN_EMAIL", "admin@firma.com.tr")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bootstrap.admin_password")
	})

	t.Run("rejects a malformed bootstrap tenant", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ISLETME_BOOTSTRAP_TENANT_ID", "firma-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bootstrap.tenant_id")
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ISLETME_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ISLETME_APP_ENV", "production")
		t.Setenv("ISLETME_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		t.Setenv("ISLETME_DATABASE_PASSWORD", "secure-password")
		t.Setenv("ISLETME_DATABASE_SSLMODE", "require")
	}

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("ISLETME_JWT_SECRET", "short-secret")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		os.Unsetenv("ISLETME_DATABASE_PASSWORD")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("ISLETME_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "/testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}

func TestConfig_Location(t *testing.T) {
	cfg := &Config{App: AppConfig{Timezone: "Europe/Istanbul"}}
	assert.Equal(t, "Europe/Istanbul", cfg.Location().String())

	cfg.App.Timezone = "nowhere"
	assert.Equal(t, time.UTC, cfg.Location())
}
