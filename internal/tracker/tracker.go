// Package tracker records entities created by a workflow run, so that
// partially completed runs can be cleaned up later.
package tracker

import (
	"context"

	"github.com/umalmyha/dataverse/internal/odata"
)

// Ref references created entity
type Ref struct {
	Kind odata.Kind `msgpack:"kind"`
	ID   string     `msgpack:"id"`
}

// Tracker stores refs of entities created within runs
type Tracker interface {
	Track(context.Context, string, Ref) error
	Refs(context.Context, string) ([]Ref, error)
	Forget(context.Context, string) error
	Runs(context.Context) ([]string, error)
}
