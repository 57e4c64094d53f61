package storage

import (
	"context"
	"errors"

	"github.com/matst80/slask-dashboard/pkg/types"
)

var ErrNotFound = errors.New("no saved filters")

// FilterStore keeps the last filter set of a session so a dashboard can be
// reopened where it was left. Fetched data is never stored.
type FilterStore interface {
	Save(ctx context.Context, sessionId string, spec types.FilterSpec) error
	Load(ctx context.Context, sessionId string) (types.FilterSpec, error)
	Close() error
}
