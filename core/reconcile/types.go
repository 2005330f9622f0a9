package reconcile

// ActionType represents the type of mutation action.
type ActionType string

const (
	// ActionCreate inserts a new target built from a source item.
	ActionCreate ActionType = "create"
	// ActionUpdate overwrites an existing target in place.
	ActionUpdate ActionType = "update"
)

// Action represents a planned mutation operation.
type Action[T any] struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the natural key shared by source and target.
	Key string `json:"key"`

	// Target is the record to persist.
	Target T `json:"-"`
}

// Skip records a source item the adapter refused to map.
type Skip struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// ReconcilePlan contains planned actions and refused items.
type ReconcilePlan[T any] struct {
	// Actions contains planned mutation operations in source order.
	Actions []Action[T] `json:"actions"`

	// Skipped lists source items that produced no action.
	Skipped []Skip `json:"skipped"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a reconcile plan.
type PlanSummary struct {
	// TotalItems is the number of source items considered.
	TotalItems int `json:"total_items"`

	// Creates counts planned create actions.
	Creates int `json:"creates"`

	// Updates counts planned update actions.
	Updates int `json:"updates"`

	// Skipped counts refused source items.
	Skipped int `json:"skipped"`
}

// Empty reports whether the plan has nothing to apply.
func (p *ReconcilePlan[T]) Empty() bool {
	return p == nil || len(p.Actions) == 0
}

// Targets splits the planned targets into creates and updates.
func (p *ReconcilePlan[T]) Targets() (creates, updates []T) {
	if p == nil {
		return nil, nil
	}
	for _, action := range p.Actions {
		switch action.Type {
		case ActionCreate:
			creates = append(creates, action.Target)
		case ActionUpdate:
			updates = append(updates, action.Target)
		}
	}
	return creates, updates
}

// ReconcileOptions controls how a plan is applied.
type ReconcileOptions struct {
	// DryRun prevents execution of any mutations if true.
	DryRun bool
}
