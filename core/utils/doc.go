// Package utils provides loose type conversion helpers used when reading untyped
// values such as JWT claims and query parameters.
package utils
