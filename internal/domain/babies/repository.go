package babies

import (
	"context"
	"errors"
)

var ErrBabyNotFound = errors.New("baby not found")

type Repository interface {
	Create(ctx context.Context, b Baby) error
	GetByID(ctx context.Context, id string) (Baby, error)
	ListByIDs(ctx context.Context, ids []string) ([]Baby, error)
	Delete(ctx context.Context, id string) error
}
