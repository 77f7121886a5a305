package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsphweid/rhythmdex/model"
)

var ErrNotFound = errors.New("round not found")

// Store keeps closed round results.
type Store interface {
	Save(ctx context.Context, r model.RoundResult) error
	Get(ctx context.Context, id string) (model.RoundResult, error)
	// List returns results oldest first.
	List(ctx context.Context) ([]model.RoundResult, error)
}

type Options struct {
	Driver   string
	Endpoint string
	Region   string
	Table    string
}

// Open picks a store by driver name.
func Open(o Options) (Store, error) {
	switch o.Driver {
	case "", "memory":
		return NewMemory(), nil
	case "dynamodb":
		return NewDynamo(o.Endpoint, o.Region, o.Table)
	default:
		return nil, fmt.Errorf("unknown store driver %q", o.Driver)
	}
}
