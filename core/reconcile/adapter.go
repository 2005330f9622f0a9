package reconcile

import "context"

// Adapter defines the model-specific part of a reconciliation.
// S is the incoming source item, T the persisted target.
type Adapter[S, T any] interface {
	// Name returns the unique name of this adapter (e.g., "products").
	Name() string

	// SourceKey returns the natural key of a source item.
	SourceKey(item S) string

	// TargetKey returns the natural key of a persisted target.
	TargetKey(item T) string

	// Create builds a new target from a source item.
	// An error skips the item; the message becomes the skip reason.
	Create(item S) (T, error)

	// Update overwrites target with the source item and returns it.
	// target is either a persisted record or a target planned earlier in the same run.
	Update(target T, item S) (T, error)
}

// Mutator persists the targets of a plan.
type Mutator[T any] interface {
	// Commit writes creates and updates in a single transaction.
	Commit(ctx context.Context, creates, updates []T) error
}
