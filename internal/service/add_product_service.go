package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mgrech/go_sales/internal/domain"
	"github.com/mgrech/go_sales/internal/repository"
)

// ProductLoader is the read path for products. Satisfied by ProductFinder.
type ProductLoader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
}

type AddProductCommand struct {
	ReservationID uuid.UUID
	ProductID     uuid.UUID
	Quantity      int
}

// AddProductService adds a product to an open reservation, falling back to
// an equivalent product when the requested one is off sale.
type AddProductService struct {
	reservations repository.ReservationRepository
	products     ProductLoader
	clients      repository.ClientRepository
	suggestions  SuggestionService
}

func NewAddProductService(
	reservations repository.ReservationRepository,
	products ProductLoader,
	clients repository.ClientRepository,
	suggestions SuggestionService,
) *AddProductService {
	return &AddProductService{
		reservations: reservations,
		products:     products,
		clients:      clients,
		suggestions:  suggestions,
	}
}

// Handle loads the reservation and product, adds the product (or a
// suggested substitute when it is unavailable) and saves the reservation.
// When the product is unavailable and nothing can be suggested the
// reservation is saved unchanged; that is not an error.
func (s *AddProductService) Handle(ctx context.Context, cmd AddProductCommand) error {
	reservation, err := s.reservations.GetReservation(ctx, cmd.ReservationID)
	if err != nil {
		return fmt.Errorf("load reservation %s: %w", cmd.ReservationID, err)
	}

	product, err := s.products.GetProduct(ctx, cmd.ProductID)
	if err != nil {
		return fmt.Errorf("load product %s: %w", cmd.ProductID, err)
	}

	if !product.IsAvailable() {
		product, err = s.suggestReplacement(ctx, reservation, product)
		if err != nil {
			return err
		}
	}

	if product != nil {
		if errAdd := reservation.Add(product, cmd.Quantity, time.Now().UTC()); errAdd != nil {
			return errAdd
		}
	}

	if err := s.reservations.SaveReservation(ctx, reservation); err != nil {
		return fmt.Errorf("save reservation %s: %w", cmd.ReservationID, err)
	}
	return nil
}

func (s *AddProductService) suggestReplacement(ctx context.Context, reservation *domain.Reservation, product *domain.Product) (*domain.Product, error) {
	client, err := s.clients.GetClient(ctx, reservation.Client.ClientID)
	if err != nil {
		return nil, fmt.Errorf("load client %s: %w", reservation.Client.ClientID, err)
	}

	suggested, err := s.suggestions.SuggestEquivalent(ctx, product, client)
	if err != nil {
		return nil, fmt.Errorf("suggest equivalent for product %s: %w", product.ID, err)
	}
	if suggested == nil {
		log.Printf("no equivalent for unavailable product %v, reservation %v left as is", product.ID, reservation.ID)
		return nil, nil
	}
	return suggested, nil
}
