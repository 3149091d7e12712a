package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "stock-ledger", cfg.App.Name)
	assert.Equal(t, "stock-ledger", cfg.JWT.Issuer)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "stock_ledger", cfg.DB.DBName)
}

func TestDBConfig_DSN_EscapaCaracteresEspeciales(t *testing.T) {
	c := DBConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "stock_ledger",
		SSLMode:  "disable",
	}
	dsn := c.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "p%40ss%2Fword", "la contraseña debe ir URL-encoded")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestDBConfig_ConnectionString_PrefiereDatabaseURL(t *testing.T) {
	c := DBConfig{
		DatabaseURL: "postgresql://u:p@db.example.com:5432/prod?sslmode=require",
		Host:        "ignorado",
	}
	assert.Equal(t, c.DatabaseURL, c.ConnectionString())
}

func TestHTTPConfig_Addr(t *testing.T) {
	c := HTTPConfig{Host: "0.0.0.0", Port: 8080}
	assert.Equal(t, "0.0.0.0:8080", c.Addr())
}
