package storage

import (
	"context"
	"testing"

	"github.com/matst80/slask-dashboard/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveLoad(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	name := "zelda"
	spec := types.FilterSpec{Genre: types.StringList{"Adventure"}, Name: &name}
	require.NoError(t, s.Save(context.Background(), "abc", spec))
	got, err := s.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, spec, got)
	assert.NoError(t, s.Close())
}

func TestRedisFilterStore_UnreachableIsNotNotFound(t *testing.T) {
	s := NewRedisFilterStore("127.0.0.1:1", "", 0)
	defer s.Close()
	_, err := s.Load(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
