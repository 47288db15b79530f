package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/mgrech/go_sales/internal/cache"
	"github.com/mgrech/go_sales/internal/domain"
	"github.com/mgrech/go_sales/internal/repository"
)

// ProductFinder is the cached read path for products.
type ProductFinder struct {
	repo  repository.ProductRepository
	cache cache.ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewProductFinder(repo repository.ProductRepository, cache cache.ProductCache) *ProductFinder {
	return &ProductFinder{
		repo:  repo,
		cache: cache,
	}
}

func (f *ProductFinder) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	// Use singleflight so concurrent misses for the same product hit the
	// database once.
	v, err, _ := f.sfg.Do(id.String(), func() (interface{}, error) {

		product, err := f.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		product, errGet := f.repo.GetProduct(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			if errSet := f.cache.Set(context.Background(), product); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

// Invalidate drops the cached copy, used after availability changes.
func (f *ProductFinder) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := f.cache.Delete(ctx, id); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
