package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Estoque-api/pkg/config"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 10, cfg.Stock.LowStockThreshold)
	assert.False(t, cfg.JWT.Enabled())
	assert.Equal(t, "postgres://postgres:@localhost:5432/estoque_db?sslmode=disable", cfg.DB.ConnectionString())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "Postgres")
	v.Set("DATABASE_URL", "postgres://u:p@db:5432/x")
	v.Set("HTTP_PORT", "9090")
	v.Set("LOW_STOCK_THRESHOLD", 3)
	v.Set("JWT_SECRET", "s3cr3t")

	cfg, err := config.FromViper(v)
	require.NoError(t, err)

	assert.Equal(t, config.StoragePostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Stock.LowStockThreshold)
	assert.True(t, cfg.JWT.Enabled())
}

func TestFromViper_DriverInvalido(t *testing.T) {
	v := viper.New()
	v.Set("STORAGE_DRIVER", "mongo")

	_, err := config.FromViper(v)
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "h", Port: 5432, User: "u", Password: "p@ss/word", DBName: "d", SSLMode: "require"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@h:5432/d?sslmode=require", c.DSN())
}
