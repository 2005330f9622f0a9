// Package companies fetches the company roster from the upstream reference data service.
//
// The service answers GET {base_url}{companies_endpoint} with an envelope of the form
//
//	{"data": {"data": {"companies": [{"code": "...", "name": "...", "countryCode": "..."}]}}}
//
// Usage:
//
//	client := companies.NewClient(cfg.Upstream)
//	list, err := client.ListCompanies(ctx)
package companies
