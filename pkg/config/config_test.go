package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molisur/molino-api/pkg/config"
)

func TestDSN_EscapaCaracteresEspeciales(t *testing.T) {
	c := config.DBConfig{
		Host: "db.molino.local", Port: 5432,
		User: "molino", Password: "p@ss:word/áñ",
		DBName: "molino", SSLMode: "require",
	}

	dsn := c.DSN()
	assert.Contains(t, dsn, "postgres://molino:")
	assert.Contains(t, dsn, "@db.molino.local:5432/molino")
	assert.Contains(t, dsn, "sslmode=require")
	assert.NotContains(t, dsn, "p@ss:word", "la contraseña va URL-encoded")
}

func TestConnectionString_PrefiereDatabaseURL(t *testing.T) {
	c := config.DBConfig{
		DatabaseURL: "postgresql://u:p@host:5432/db?sslmode=require",
		Host:        "otro", Port: 5432,
	}
	assert.Equal(t, c.DatabaseURL, c.ConnectionString())
}

func TestLoad_TamanoDelPoolDesdeEntorno(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "8")
	t.Setenv("DB_MIN_CONNS", "1")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, int32(8), cfg.DB.MaxConns)
	assert.Equal(t, int32(1), cfg.DB.MinConns)
}

func TestLoad_TamanoDelPoolPorDefecto(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, int32(25), cfg.DB.MaxConns)
	assert.Equal(t, int32(2), cfg.DB.MinConns)
}
