// Package config provides configuration management for the product catalog service.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live next to each setting as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP port and route prefix
//   - Database: MySQL (or SQLite) connection details
//   - Storage / Archive: S3/MinIO credentials and staging snapshot settings
//   - Staging / Redis: staging cache driver and expiration policy
//   - Messaging: event bus driver, brokers and topic prefix
//   - Upstream: company roster endpoint and timeout
//   - Auth: bearer token secret
//   - Refresh: scheduled reconciliation interval
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Upstream.BaseURL)
package config
