package messaging

import "github.com/matst80/slask-dashboard/pkg/types"

type ChangeTopic string

const (
	FiltersChanged ChangeTopic = "filters_changed"
	Tracking       ChangeTopic = "tracking"
)

// FilterBroadcast announces the filter set a session just settled on, so
// other dashboards following that session can mirror it.
type FilterBroadcast struct {
	SessionId string           `json:"session_id"`
	Origin    string           `json:"origin"`
	Filters   types.FilterSpec `json:"filters"`
}

// Publisher sends a message to a topic.
type Publisher interface {
	Publish(topic ChangeTopic, data any) error
}
