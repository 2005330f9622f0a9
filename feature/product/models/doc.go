// Package models holds the product tables, the staged SAP record, request and
// response projections, and the event payloads.
package models
