package caregivers

import (
	"context"
	"errors"
)

// Sentinels que los repos (memory y postgres) devuelven para que el
// service y el guard puedan distinguir "no existe" de una falla real.
var (
	ErrGrantNotFound  = errors.New("grant not found")
	ErrDuplicateGrant = errors.New("grant already exists for baby and user")
)

type Repository interface {
	Create(ctx context.Context, g Grant) error
	GetByBabyAndUser(ctx context.Context, babyID, userID string) (Grant, error)
	ListByBaby(ctx context.Context, babyID string) ([]Grant, error)
	ListByUser(ctx context.Context, userID string) ([]Grant, error)
	Delete(ctx context.Context, babyID, userID string) error
}
