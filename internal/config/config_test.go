package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(5<<20), cfg.Storage.MaxImageSize)
}

func TestLoadParsesLists(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"https://shop.example.com"}, cfg.Server.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Environment: "production",
			Store:       StoreConfig{Driver: StoreDriverPostgres},
			JWT:         JWTConfig{SecretKey: "s3cret"},
			Database:    DatabaseConfig{Password: "pw"},
		}
	}

	assert.NoError(t, base().Validate())

	cfg := base()
	cfg.JWT.SecretKey = defaultJWTSecret
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Store.Driver = StoreDriverMemory
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Store.Driver = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Seed.Enabled = true
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: "5432", User: "shop", Password: "pw", Database: "mvshop", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=shop password=pw dbname=mvshop sslmode=disable TimeZone=UTC application_name=mvshop-backend", d.DSN())

	d.URL = "postgres://shop:pw@db:5432/mvshop?sslmode=require"
	assert.Equal(t, d.URL, d.DSN())
}
