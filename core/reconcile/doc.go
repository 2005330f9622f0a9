// Package reconcile provides a generic plan/apply engine for reconciling a batch of
// incoming source items against persisted records sharing a natural key.
//
// # Architecture
//
// 1. Adapter: model-specific logic that extracts keys and maps a source item onto a
// new or existing target.
//
// 2. Plan: BuildPlan walks the source in order and produces create and update actions.
// Items the adapter refuses are reported as skipped. Nothing is ever planned for
// deletion.
//
// 3. Apply: ApplyPlan hands every planned target to a Mutator in a single Commit.
// Empty plans and dry runs never reach the Mutator.
//
// # Usage Example
//
//	plan := reconcile.BuildPlan[SapProduct, *Product](adapter, staged, persisted)
//	n, err := reconcile.ApplyPlan(ctx, repo, plan, reconcile.ReconcileOptions{DryRun: dryRun})
package reconcile
