package config

import (
	"reflect"
	"strings"
	"time"

	"product-catalog/core/companies"
	"product-catalog/core/database"
	"product-catalog/core/logger"
	"product-catalog/core/messaging"
	"product-catalog/core/server"
	"product-catalog/core/staging"
	"product-catalog/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the product database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the object storage used by the staging archive.
	Storage storage.Config `mapstructure:"storage"`
	// Archive controls snapshots of the staging batch in object storage.
	Archive ArchiveConfig `mapstructure:"archive"`
	// Staging holds configuration for the staging cache of ingested SAP products.
	Staging staging.Config `mapstructure:"staging"`
	// Redis holds the connection used by the redis staging driver.
	Redis staging.RedisConfig `mapstructure:"redis"`
	// Messaging holds configuration for the event bus.
	Messaging messaging.Config `mapstructure:"messaging"`
	// Upstream holds configuration for the company roster service.
	Upstream companies.Config `mapstructure:"upstream"`
	// Auth holds configuration for bearer token parsing.
	Auth AuthConfig `mapstructure:"auth"`
	// Refresh holds configuration for the scheduled reconciliation job.
	Refresh RefreshConfig `mapstructure:"refresh"`
}

// ArchiveConfig controls staging snapshots.
type ArchiveConfig struct {
	// Enabled turns snapshot writes and restore-on-start on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Prefix is the object key prefix for snapshots.
	Prefix string `mapstructure:"prefix" default:"staging/sap-products"`
}

// AuthConfig holds the HMAC secret for bearer tokens.
type AuthConfig struct {
	// Secret verifies HS256 tokens. An empty secret disables token parsing.
	Secret string `mapstructure:"secret" default:""`
}

// RefreshConfig holds the scheduled refresh settings.
type RefreshConfig struct {
	// Interval between scheduled refresh runs. Zero disables the job.
	Interval time.Duration `mapstructure:"interval" default:"0s"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. UPSTREAM_BASE_URL -> upstream.base_url)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
