// Package product implements the product catalog: a staging cache for SAP product
// batches, reconciliation of staged products into the product store, activation of
// products and the HTTP routes exposing them.
//
// # Flow
//
//  1. SAP pushes batches to POST /products; they are merged into the staging cache
//     by SAP number and optionally archived to object storage.
//  2. GET /products/autoRefresh fetches the company roster, keeps the staged products
//     of known companies, creates or updates products by SAP number in one
//     transaction, then publishes one product-refreshed event.
//  3. POST /products/activate flips a product between Active and InActive and
//     publishes a product-updated event.
//
// Events are best effort: a failed publish is logged and counted, never rolled back.
package product
