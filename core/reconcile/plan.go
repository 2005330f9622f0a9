package reconcile

import (
	"context"
	"fmt"
)

// BuildPlan diffs source against the persisted targets by natural key.
// It does NOT execute actions; use ApplyPlan for that.
//
// A key seen twice in source updates the action already planned for it, so a run
// never creates the same key twice. Targets absent from source are left alone.
func BuildPlan[S, T any](adapter Adapter[S, T], source []S, existing []T) *ReconcilePlan[T] {
	persisted := make(map[string]T, len(existing))
	for _, item := range existing {
		persisted[adapter.TargetKey(item)] = item
	}

	plan := &ReconcilePlan[T]{}
	pending := make(map[string]int, len(source))

	for _, item := range source {
		key := adapter.SourceKey(item)
		plan.Summary.TotalItems++

		if i, ok := pending[key]; ok {
			target, err := adapter.Update(plan.Actions[i].Target, item)
			if err != nil {
				plan.Skipped = append(plan.Skipped, Skip{Key: key, Reason: err.Error()})
				continue
			}
			plan.Actions[i].Target = target
			continue
		}

		var (
			action Action[T]
			err    error
		)
		if target, ok := persisted[key]; ok {
			action = Action[T]{Type: ActionUpdate, Key: key}
			action.Target, err = adapter.Update(target, item)
		} else {
			action = Action[T]{Type: ActionCreate, Key: key}
			action.Target, err = adapter.Create(item)
		}
		if err != nil {
			plan.Skipped = append(plan.Skipped, Skip{Key: key, Reason: err.Error()})
			continue
		}

		pending[key] = len(plan.Actions)
		plan.Actions = append(plan.Actions, action)
	}

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionCreate:
			plan.Summary.Creates++
		case ActionUpdate:
			plan.Summary.Updates++
		}
	}
	plan.Summary.Skipped = len(plan.Skipped)

	return plan
}

// ApplyPlan executes the actions in a reconcile plan through one Commit call.
// Returns the number of actions executed. Empty plans and dry runs execute nothing.
func ApplyPlan[T any](ctx context.Context, mutator Mutator[T], plan *ReconcilePlan[T], opts ReconcileOptions) (int, error) {
	if opts.DryRun || plan.Empty() {
		return 0, nil
	}

	creates, updates := plan.Targets()
	if err := mutator.Commit(ctx, creates, updates); err != nil {
		return 0, fmt.Errorf("failed to commit reconcile plan: %w", err)
	}
	return len(creates) + len(updates), nil
}
