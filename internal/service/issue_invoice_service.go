package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mgrech/go_sales/internal/domain"
	"github.com/mgrech/go_sales/internal/repository"
)

// IssueInvoiceItem references a catalog product; TotalCost comes from the
// upstream pricing step and is passed through untouched.
type IssueInvoiceItem struct {
	ProductID uuid.UUID
	Quantity  int
	TotalCost domain.Money
}

// IssueInvoiceService is the application workflow around the invoicing
// engine: it resolves snapshots, issues the invoice and persists it
// together with its outbox event.
type IssueInvoiceService struct {
	clients  repository.ClientRepository
	products ProductLoader
	invoices repository.InvoiceRepository
	engine   *InvoicingService
	policy   TaxPolicy
}

func NewIssueInvoiceService(
	clients repository.ClientRepository,
	products ProductLoader,
	invoices repository.InvoiceRepository,
	engine *InvoicingService,
	policy TaxPolicy,
) *IssueInvoiceService {
	return &IssueInvoiceService{
		clients:  clients,
		products: products,
		invoices: invoices,
		engine:   engine,
		policy:   policy,
	}
}

func (s *IssueInvoiceService) IssueInvoice(ctx context.Context, clientID uuid.UUID, items []IssueInvoiceItem) (*domain.Invoice, error) {
	client, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load client %s: %w", clientID, err)
	}

	request := domain.NewInvoiceRequest(client.Snapshot())
	now := time.Now().UTC()

	for _, item := range items {
		product, errGet := s.products.GetProduct(ctx, item.ProductID)
		if errGet != nil {
			return nil, fmt.Errorf("load product %s: %w", item.ProductID, errGet)
		}
		request.Add(domain.RequestItem{
			Product:   product.Snapshot(now),
			Quantity:  item.Quantity,
			TotalCost: item.TotalCost,
		})
	}

	invoice, err := s.engine.Issue(ctx, request, s.policy)
	if err != nil {
		return nil, err
	}

	if err := s.invoices.CreateInvoice(ctx, invoice); err != nil {
		return nil, fmt.Errorf("persist invoice %s: %w", invoice.ID, err)
	}

	return invoice, nil
}
