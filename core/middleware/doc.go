// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: resolves the caller's numeric user id from an optional HS256 bearer token.
//     It never rejects; handlers that need a caller read auth.UserID.
//   - rayid: assigns every request a ray id, stored in locals and echoed in the
//     X-Ray-ID response header for tracing.
package middleware
