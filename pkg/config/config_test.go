package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/greenstore-api/pkg/config"
)

func TestLoad_ValoresPorDefectoEnDesarrollo(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "greenstore-api", cfg.App.Name)
	assert.Equal(t, config.StoreDriverPostgres, cfg.App.StoreDriver)
	assert.Equal(t, "development-secret", cfg.JWT.Secret, "en desarrollo se usa un secreto temporal")
	assert.Equal(t, cfg.JWT.Secret, cfg.Approval.TokenSecret, "el secreto de aprobaciones cae al de JWT")
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
}

func TestLoad_ProduccionExigeSecretoLargo(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "corto")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_ProduccionRechazaStoreMemoria(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("STORE_DRIVER", "memory")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDSN_CodificaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "pos", Password: "p@ss/word", DBName: "greenstore", SSLMode: "disable"}
	assert.Equal(t, "postgres://pos:p%40ss%2Fword@db:5432/greenstore?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otra"
	assert.Equal(t, "postgres://otra", c.ConnectionString())
}
