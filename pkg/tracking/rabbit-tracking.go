package tracking

import (
	"log"
	"time"

	"github.com/matst80/slask-dashboard/pkg/messaging"
	"github.com/matst80/slask-dashboard/pkg/types"
)

type BaseEvent struct {
	SessionId string `json:"session_id"`
	Context   string `json:"context,omitempty"`
	Event     uint16 `json:"event"`
	Timestamp int64  `json:"ts"`
}

type FilterEventData struct {
	*BaseEvent
	Action string      `json:"action"`
	Facet  types.Facet `json:"facet,omitempty"`
	Value  string      `json:"value,omitempty"`
	Text   string      `json:"text,omitempty"`
	Query  string      `json:"query"`
}

const filterEventId = 10

// RabbitTracking publishes interactions on the tracking topic and the
// resulting filter set on the filters_changed topic.
type RabbitTracking struct {
	sessionId string
	publisher messaging.Publisher
	now       func() time.Time
}

func NewRabbitTracking(publisher messaging.Publisher, sessionId string) *RabbitTracking {
	return &RabbitTracking{
		sessionId: sessionId,
		publisher: publisher,
		now:       time.Now,
	}
}

func (rt *RabbitTracking) TrackFilter(event FilterEvent) {
	err := rt.publisher.Publish(messaging.Tracking, &FilterEventData{
		BaseEvent: &BaseEvent{Event: filterEventId, SessionId: rt.sessionId, Context: "dashboard", Timestamp: rt.now().Unix()},
		Action:    string(event.Action),
		Facet:     event.Facet,
		Value:     event.Value,
		Text:      event.Text,
		Query:     event.Query,
	})
	if err != nil {
		log.Println("Error sending filter event: ", err)
	}
	// shared filters came from another session and must not echo back
	if !event.Action.Changes() || event.Action == ActionShared {
		return
	}
	err = rt.publisher.Publish(messaging.FiltersChanged, &messaging.FilterBroadcast{
		SessionId: rt.sessionId,
		Origin:    string(event.Action),
		Filters:   event.Spec,
	})
	if err != nil {
		log.Println("Error sending filter broadcast: ", err)
	}
}
