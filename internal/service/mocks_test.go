package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mgrech/go_sales/internal/domain"
	"github.com/mgrech/go_sales/internal/repository"
)

type mockReservationRepo struct {
	reservation *domain.Reservation
	getErr      error
	saveErr     error
	saved       *domain.Reservation
	saveCalls   int
}

func (m *mockReservationRepo) GetReservation(context.Context, uuid.UUID) (*domain.Reservation, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.reservation, nil
}

func (m *mockReservationRepo) SaveReservation(_ context.Context, r *domain.Reservation) error {
	m.saveCalls++
	m.saved = r
	return m.saveErr
}

func (m *mockReservationRepo) CreateReservation(_ context.Context, r *domain.Reservation) error {
	m.reservation = r
	return nil
}

type mockProductLoader struct {
	products map[uuid.UUID]*domain.Product
	err      error
	calls    int
}

func (m *mockProductLoader) GetProduct(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, repository.ErrProductNotFound
}

type mockClientRepo struct {
	client *domain.Client
	err    error
	calls  int
}

func (m *mockClientRepo) GetClient(context.Context, uuid.UUID) (*domain.Client, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.client, nil
}

func (m *mockClientRepo) CreateClient(_ context.Context, c *domain.Client) error {
	m.client = c
	return nil
}

type mockSuggestionService struct {
	suggested   *domain.Product
	err         error
	calls       int
	lastProduct *domain.Product
	lastClient  *domain.Client
}

func (m *mockSuggestionService) SuggestEquivalent(_ context.Context, product *domain.Product, client *domain.Client) (*domain.Product, error) {
	m.calls++
	m.lastProduct = product
	m.lastClient = client
	if m.err != nil {
		return nil, m.err
	}
	return m.suggested, nil
}

// countingTaxPolicy records every CalculateTax invocation.
type countingTaxPolicy struct {
	tax   domain.Tax
	err   error
	calls []domain.ProductType
}

func (p *countingTaxPolicy) CalculateTax(productType domain.ProductType, _ domain.Money) (domain.Tax, error) {
	p.calls = append(p.calls, productType)
	if p.err != nil {
		return domain.Tax{}, p.err
	}
	return p.tax, nil
}

type mockInvoiceRepo struct {
	created   *domain.Invoice
	createErr error
}

func (m *mockInvoiceRepo) CreateInvoice(_ context.Context, invoice *domain.Invoice) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = invoice
	return nil
}

func (m *mockInvoiceRepo) GetInvoiceByID(context.Context, uuid.UUID) (*domain.Invoice, error) {
	if m.created == nil {
		return nil, repository.ErrInvoiceNotFound
	}
	return m.created, nil
}

func (m *mockInvoiceRepo) GetUnprocessedEvents(context.Context, int) ([]*repository.OutboxEvent, error) {
	return nil, nil
}

func (m *mockInvoiceRepo) MarkEventAsProcessed(context.Context, int) error {
	return nil
}

type mockProductRepo struct {
	equivalent *domain.Product
	findErr    error
	findCalls  int
	products   map[uuid.UUID]*domain.Product
}

func (m *mockProductRepo) GetProduct(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepo) FindEquivalent(context.Context, uuid.UUID, domain.ProductType) (*domain.Product, error) {
	m.findCalls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.equivalent == nil {
		return nil, repository.ErrProductNotFound
	}
	return m.equivalent, nil
}

func (m *mockProductRepo) CreateProduct(_ context.Context, p *domain.Product) error {
	if m.products == nil {
		m.products = map[uuid.UUID]*domain.Product{}
	}
	m.products[p.ID] = p
	return nil
}

func (m *mockProductRepo) MarkProductRemoved(_ context.Context, id uuid.UUID) error {
	if p, ok := m.products[id]; ok {
		p.MarkAsRemoved()
		return nil
	}
	return repository.ErrProductNotFound
}
