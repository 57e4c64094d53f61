package options

import (
	"context"
	"errors"
	"testing"

	"github.com/matst80/slask-dashboard/pkg/client"
	"github.com/matst80/slask-dashboard/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticOptions struct {
	opts *client.Options
	err  error
}

func (s staticOptions) Options(context.Context) (*client.Options, error) {
	return s.opts, s.err
}

type recordingView struct {
	changes map[types.Facet][]Control
}

func (v *recordingView) ControlsChanged(facet types.Facet, controls []Control) {
	if v.changes == nil {
		v.changes = make(map[types.Facet][]Control)
	}
	v.changes[facet] = controls
}

var testOptions = &client.Options{
	Years:      types.StringList{"2006", "2007"},
	Genres:     types.StringList{"Action", "Sports"},
	Platforms:  types.StringList{"Wii"},
	Publishers: types.StringList{"Nintendo"},
	Regions:    types.StringList{"NA", "EU", "JP", "Other"},
}

func loaded(t *testing.T, state *types.FilterState, view ControlView) *Registry {
	t.Helper()
	r := NewRegistry(state, view)
	require.NoError(t, r.Load(context.Background(), staticOptions{opts: testOptions}))
	return r
}

func TestRegistry_LoadBuildsControlsInServerOrder(t *testing.T) {
	view := &recordingView{}
	r := loaded(t, types.NewFilterState(), view)
	controls := r.Controls(types.FacetRegion)
	require.Len(t, controls, 4)
	assert.Equal(t, "NA", controls[0].Value)
	assert.Equal(t, "Other", controls[3].Value)
	assert.Len(t, view.changes, len(types.AllFacets))
}

func TestRegistry_ToggleUpdatesStateAndControl(t *testing.T) {
	state := types.NewFilterState()
	r := loaded(t, state, nil)
	require.NoError(t, r.Toggle(types.FacetGenre, "Action"))
	assert.True(t, state.Has(types.FacetGenre, "Action"))
	assert.Equal(t, []string{"Action"}, r.Checked(types.FacetGenre))

	require.NoError(t, r.Toggle(types.FacetGenre, "Action"))
	assert.Empty(t, r.Checked(types.FacetGenre))
	assert.False(t, state.Has(types.FacetGenre, "Action"))
}

func TestRegistry_UnknownValueStillRecorded(t *testing.T) {
	state := types.NewFilterState()
	r := loaded(t, state, nil)
	require.NoError(t, r.Toggle(types.FacetPlatform, "Dreamcast 2"))
	assert.True(t, state.Has(types.FacetPlatform, "Dreamcast 2"))
	assert.False(t, r.Known(types.FacetPlatform, "Dreamcast 2"))
	assert.Empty(t, r.Checked(types.FacetPlatform))
}

func TestRegistry_SyncMirrorsState(t *testing.T) {
	state := types.NewFilterState()
	r := loaded(t, state, nil)
	require.NoError(t, r.Toggle(types.FacetRegion, "EU"))
	require.NoError(t, r.Toggle(types.FacetYear, "2006"))

	state.ReplaceFrom(types.FilterSpec{Genre: types.StringList{"Sports"}})
	r.Sync()

	assert.Empty(t, r.Checked(types.FacetRegion))
	assert.Empty(t, r.Checked(types.FacetYear))
	assert.Equal(t, []string{"Sports"}, r.Checked(types.FacetGenre))
}

func TestRegistry_LoadChecksSelectedValues(t *testing.T) {
	state := types.NewFilterState()
	_ = state.Toggle(types.FacetYear, "2007")
	r := loaded(t, state, nil)
	assert.Equal(t, []string{"2007"}, r.Checked(types.FacetYear))
}

func TestRegistry_LoadFailureKeepsControls(t *testing.T) {
	r := loaded(t, types.NewFilterState(), nil)
	err := r.Load(context.Background(), staticOptions{err: errors.New("offline")})
	assert.Error(t, err)
	assert.Len(t, r.Controls(types.FacetGenre), 2)
}
