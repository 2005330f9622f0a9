// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this package
// defines the listen port, the versioned route prefix features are mounted under,
// and the request body limit.
package server
