package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterState_ToggleFlipsMembership(t *testing.T) {
	s := NewFilterState()
	require.NoError(t, s.Toggle(FacetGenre, "Action"))
	assert.True(t, s.Has(FacetGenre, "Action"))
	require.NoError(t, s.Toggle(FacetGenre, "Action"))
	assert.False(t, s.Has(FacetGenre, "Action"))
	assert.True(t, s.IsEmpty())
	assert.Equal(t, uint64(2), s.Revision())
}

func TestFilterState_ToggleUnknownFacet(t *testing.T) {
	s := NewFilterState()
	assert.ErrorIs(t, s.Toggle(Facet("color"), "red"), ErrUnknownFacet)
	assert.Equal(t, uint64(0), s.Revision())
}

func TestFilterState_SetName(t *testing.T) {
	s := NewFilterState()
	s.SetName("  mario ")
	name, ok := s.Name()
	assert.True(t, ok)
	assert.Equal(t, "mario", name)

	s.SetName("   ")
	_, ok = s.Name()
	assert.False(t, ok)
}

func TestFilterState_Reset(t *testing.T) {
	s := NewFilterState()
	_ = s.Toggle(FacetYear, "2006")
	_ = s.Toggle(FacetRegion, "JP")
	s.SetName("zelda")
	s.Reset()
	assert.True(t, s.IsEmpty())
	for _, f := range AllFacets {
		assert.Empty(t, s.Values(f))
	}
}

func TestFilterState_ReplaceFromClearsUnmentionedFacets(t *testing.T) {
	s := NewFilterState()
	_ = s.Toggle(FacetRegion, "NA")
	_ = s.Toggle(FacetRegion, "EU")
	s.SetName("old search")

	s.ReplaceFrom(FilterSpec{Genre: StringList{"Action"}})

	assert.Empty(t, s.Values(FacetRegion))
	assert.Equal(t, []string{"Action"}, s.Values(FacetGenre))
	_, ok := s.Name()
	assert.False(t, ok)
}

func TestFilterState_ReplaceFromKeepsUnknownValues(t *testing.T) {
	s := NewFilterState()
	name := " Tetris "
	s.ReplaceFrom(FilterSpec{Platform: StringList{"Atari 9000"}, Name: &name})
	assert.Equal(t, []string{"Atari 9000"}, s.Values(FacetPlatform))
	got, ok := s.Name()
	assert.True(t, ok)
	assert.Equal(t, "Tetris", got)
}

func TestFilterState_ReportUsesNullGame(t *testing.T) {
	s := NewFilterState()
	_ = s.Toggle(FacetPublisher, "Nintendo")
	body, err := json.Marshal(ReportRequest{Filters: s.Report()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"filters":{"year":[],"genre":[],"platform":[],"publisher":["Nintendo"],"region":[],"game":null}}`, string(body))

	s.SetName("Mario")
	body, err = json.Marshal(ReportRequest{Filters: s.Report()})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"game":"Mario"`)
}

func TestStringList_AcceptsNumbers(t *testing.T) {
	var resp NLResponse
	err := json.Unmarshal([]byte(`{"filters":{"year":[2006,"2007"],"region":["NA"],"genre":null,"name":null}}`), &resp)
	require.NoError(t, err)
	assert.Equal(t, StringList{"2006", "2007"}, resp.Filters.Year)
	assert.Equal(t, StringList{"NA"}, resp.Filters.Region)
	_, ok := resp.Filters.Values(FacetGenre)
	assert.False(t, ok)
	assert.Nil(t, resp.Filters.Name)
}

func TestStringList_RejectsObjects(t *testing.T) {
	var l StringList
	assert.Error(t, json.Unmarshal([]byte(`[{"a":1}]`), &l))
}

func TestStringList_NonArrayFacetIsAbsent(t *testing.T) {
	var resp NLResponse
	err := json.Unmarshal([]byte(`{"filters":{"genre":"Action","year":{"from":2006},"platform":7,"region":["NA"],"name":""}}`), &resp)
	require.NoError(t, err)
	assert.Equal(t, StringList{"NA"}, resp.Filters.Region)
	for _, f := range []Facet{FacetGenre, FacetYear, FacetPlatform} {
		_, ok := resp.Filters.Values(f)
		assert.False(t, ok, f)
	}

	s := NewFilterState()
	require.NoError(t, s.Toggle(FacetGenre, "Sports"))
	s.ReplaceFrom(resp.Filters)
	assert.Equal(t, []string{"NA"}, s.Values(FacetRegion))
	assert.Empty(t, s.Values(FacetGenre))
	_, ok := s.Name()
	assert.False(t, ok)
}
