package tracking

import (
	"errors"
	"testing"
	"time"

	"github.com/matst80/slask-dashboard/pkg/messaging"
	"github.com/matst80/slask-dashboard/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	topic messaging.ChangeTopic
	data  any
}

type fakePublisher struct {
	sent []published
	err  error
}

func (p *fakePublisher) Publish(topic messaging.ChangeTopic, data any) error {
	p.sent = append(p.sent, published{topic, data})
	return p.err
}

func newTracking(p messaging.Publisher) *RabbitTracking {
	rt := NewRabbitTracking(p, "session-1")
	rt.now = func() time.Time { return time.Unix(1700000000, 0) }
	return rt
}

func TestRabbitTracking_ToggleBroadcastsFilters(t *testing.T) {
	p := &fakePublisher{}
	spec := types.FilterSpec{Genre: types.StringList{"Action"}}
	newTracking(p).TrackFilter(FilterEvent{Action: ActionToggle, Facet: types.FacetGenre, Value: "Action", Query: "genre=Action", Spec: spec})

	require.Len(t, p.sent, 2)
	assert.Equal(t, messaging.Tracking, p.sent[0].topic)
	ev := p.sent[0].data.(*FilterEventData)
	assert.Equal(t, "toggle", ev.Action)
	assert.Equal(t, "session-1", ev.SessionId)
	assert.Equal(t, int64(1700000000), ev.Timestamp)

	assert.Equal(t, messaging.FiltersChanged, p.sent[1].topic)
	msg := p.sent[1].data.(*messaging.FilterBroadcast)
	assert.Equal(t, spec, msg.Filters)
	assert.Equal(t, "toggle", msg.Origin)
}

func TestRabbitTracking_ExportAndSharedDoNotBroadcast(t *testing.T) {
	p := &fakePublisher{}
	rt := newTracking(p)
	rt.TrackFilter(FilterEvent{Action: ActionExport})
	rt.TrackFilter(FilterEvent{Action: ActionShared})
	require.Len(t, p.sent, 2)
	for _, s := range p.sent {
		assert.Equal(t, messaging.Tracking, s.topic)
	}
}

func TestRabbitTracking_PublishErrorsAreSwallowed(t *testing.T) {
	p := &fakePublisher{err: errors.New("closed")}
	assert.NotPanics(t, func() {
		newTracking(p).TrackFilter(FilterEvent{Action: ActionReset})
	})
	assert.Len(t, p.sent, 2)
}
