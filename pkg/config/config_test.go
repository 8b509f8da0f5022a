package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.App.IsDevelopment())
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.True(t, cfg.Bootstrap.Enabled)
	assert.Empty(t, cfg.Bootstrap.Admins)
	assert.Equal(t, 10*time.Second, cfg.Directory.Timeout)
	assert.Equal(t, "ideas_session", cfg.JWT.CookieName)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Production(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("STORAGE_DRIVER", "Memory")
	v.Set("BOOTSTRAP_ADMINS", " jefa@corp.local, ,jefe ")
	v.Set("AD_TIMEOUT_SECONDS", "3")
	v.Set("DB_AUTO_MIGRATE", "true")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.DB.Driver)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Bootstrap.Enabled)
	assert.Equal(t, []string{"jefa@corp.local", "jefe"}, cfg.Bootstrap.Admins)
	assert.Equal(t, 3*time.Second, cfg.Directory.Timeout)
}

func TestFromViper_Invalid(t *testing.T) {
	v := viper.New()
	v.Set("APP_ENV", "production")
	_, err := fromViper(v)
	assert.Error(t, err)

	v = viper.New()
	v.Set("STORAGE_DRIVER", "mysql")
	_, err = fromViper(v)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "ideas", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/ideas?sslmode=disable", c.DSN())
	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
