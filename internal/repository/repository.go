package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mgrech/go_sales/internal/domain"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrClientNotFound      = errors.New("client not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type ProductRepository interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// FindEquivalent returns an available product of the same type as the
	// given one, excluding the product itself. Returns ErrProductNotFound
	// when nothing qualifies.
	FindEquivalent(ctx context.Context, productID uuid.UUID, productType domain.ProductType) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	MarkProductRemoved(ctx context.Context, id uuid.UUID) error
}

type ClientRepository interface {
	GetClient(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	CreateClient(ctx context.Context, client *domain.Client) error
}

type ReservationRepository interface {
	GetReservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	SaveReservation(ctx context.Context, reservation *domain.Reservation) error
	CreateReservation(ctx context.Context, reservation *domain.Reservation) error
}

// InvoiceRepository persists issued invoices. CreateInvoice also writes an
// outbox event in the same transaction so the poller can publish it later.
type InvoiceRepository interface {
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) error
	GetInvoiceByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int) error
}

// OutboxEvent is one row of the transactional outbox.
type OutboxEvent struct {
	ID          int
	AggregateID string
	EventType   string
	Payload     []byte
}
