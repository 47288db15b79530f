package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/mgrech/go_sales/internal/domain"
	"github.com/mgrech/go_sales/internal/repository"
)

// SuggestionService finds a substitute when the requested product is off
// sale. A nil product with a nil error means "no suggestion".
type SuggestionService interface {
	SuggestEquivalent(ctx context.Context, product *domain.Product, client *domain.Client) (*domain.Product, error)
}

// EquivalentProductSuggester looks up an available product of the same type
// in the catalog. Lookups go through a circuit breaker so a struggling
// catalog store degrades into "no suggestion" instead of failing the whole
// add-product flow.
type EquivalentProductSuggester struct {
	products repository.ProductRepository
	breaker  *gobreaker.CircuitBreaker[*domain.Product]
}

func NewEquivalentProductSuggester(products repository.ProductRepository) *EquivalentProductSuggester {
	settings := gobreaker.Settings{
		Name:    "suggestion-lookup",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// An empty lookup result is a valid answer, not a store failure;
		// only real errors may trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, repository.ErrProductNotFound)
		},
	}
	return &EquivalentProductSuggester{
		products: products,
		breaker:  gobreaker.NewCircuitBreaker[*domain.Product](settings),
	}
}

func (s *EquivalentProductSuggester) SuggestEquivalent(ctx context.Context, product *domain.Product, client *domain.Client) (*domain.Product, error) {
	suggested, err := s.breaker.Execute(func() (*domain.Product, error) {
		return s.products.FindEquivalent(ctx, product.ID, product.Type)
	})
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		log.Printf("suggestion lookup short-circuited for product %v: %v", product.ID, err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return suggested, nil
}
