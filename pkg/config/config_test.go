package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/pkg/config"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]interface{}{"JWT_SECRET": "s3cret"}))
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, 30*24*60, cfg.JWT.Expiration, "el token dura 30 días por defecto")
	assert.Equal(t, "public/uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxBytes())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
}

func TestFromViper_SinSecret(t *testing.T) {
	_, err := config.FromViper(newViper(nil))
	assert.Error(t, err)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	_, err := config.FromViper(newViper(map[string]interface{}{
		"JWT_SECRET": "s3cret",
		"DB_DRIVER":  "sqlite",
	}))
	assert.Error(t, err)
}

func TestFromViper_ValoresComoString(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]interface{}{
		"JWT_SECRET":      "s3cret",
		"DB_DRIVER":       "MONGO",
		"HTTP_PORT":       "9090",
		"PUBLIC_BASE_URL": "https://tienda.example.com/",
	}))
	require.NoError(t, err)
	assert.Equal(t, config.DriverMongo, cfg.DB.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "https://tienda.example.com", cfg.App.PublicBaseURL)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "tienda", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/tienda?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://other"
	assert.Equal(t, "postgres://other", c.ConnectionString())
}
