package records

import (
	"context"
	"errors"
)

var ErrRecordNotFound = errors.New("record not found")

// ListFilter acota el listado. Cero valores = sin filtro.
type ListFilter struct {
	Kind  Kind
	Limit int
}

type Repository interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	ListByBaby(ctx context.Context, babyID string, filter ListFilter) ([]Record, error)
}
