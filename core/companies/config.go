package companies

import "time"

// Config holds configuration for the upstream company service.
type Config struct {
	// BaseURL is the reference data service root (e.g. http://rdata.internal).
	BaseURL string `mapstructure:"base_url" default:""`
	// CompaniesEndpoint is the path of the company listing.
	CompaniesEndpoint string `mapstructure:"companies_endpoint" default:"/api/companies"`
	// Timeout bounds a single upstream call.
	Timeout time.Duration `mapstructure:"timeout" default:"30s"`
}
