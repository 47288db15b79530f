package cache

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mgrech/go_sales/internal/domain"
)

type ProductCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var ErrCacheMiss = errors.New("cache miss")
