package tracking

import "github.com/matst80/slask-dashboard/pkg/types"

type Action string

const (
	ActionToggle  Action = "toggle"
	ActionName    Action = "name"
	ActionReset   Action = "reset"
	ActionNL      Action = "nl"
	ActionShared  Action = "shared"
	ActionRestore Action = "restore"
	ActionExport  Action = "export"
)

// Changes reports whether the action replaced or mutated the filter set.
func (a Action) Changes() bool {
	return a != ActionExport
}

type FilterEvent struct {
	Action Action
	Facet  types.Facet
	Value  string
	Text   string
	Query  string
	Spec   types.FilterSpec
}

// Tracking receives every dashboard interaction. Implementations must not
// block the caller on delivery failures.
type Tracking interface {
	TrackFilter(event FilterEvent)
}

type NoopTracking struct{}

func (NoopTracking) TrackFilter(FilterEvent) {}
