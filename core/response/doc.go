// Package response renders the uniform JSON envelope returned by every endpoint.
//
//	{"success": true, "message": "...", "data": {...}}
//	{"success": false, "message": "...", "code": "VALIDATION_FAILED", "errors": {"field": ["..."]}}
//
// Handlers return *APIError values; ErrorHandler renders them (and any other error)
// in the same envelope.
package response
