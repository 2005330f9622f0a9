// Package staging holds the most recently ingested external batch until it is
// reconciled.
//
// A staging store keeps exactly one batch per store. Callers never replace the batch
// directly: Merge folds a new batch into the existing one, deduplicating by a caller
// supplied key (last write wins, first position kept), and Clear drops it.
//
// # Expiration
//
// The whole batch is a single cache unit with a compound policy: it expires after
// Policy.Sliding without access, or Policy.Absolute after the last merge, whichever
// comes first. Reads refresh the sliding window but never extend past the absolute
// deadline. Nothing else evicts the batch.
//
// # Drivers
//
//   - MemoryStore: process-local, mutex guarded. Merges are atomic.
//   - RedisStore: shared between replicas and the refresh CLI. Merges run in a
//     WATCH/MULTI transaction retried on conflict.
package staging
