package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mgrech/go_sales/internal/domain"
)

// TaxPolicy computes the tax owed for a product type and a net amount.
// Implementations are free to apply any regime (flat, bracketed, per-type,
// zero-rated); the invoicing engine never inspects the result.
type TaxPolicy interface {
	CalculateTax(productType domain.ProductType, net domain.Money) (domain.Tax, error)
}

// InvoicingService turns an invoice request into an immutable invoice by
// asking the supplied tax policy once per item.
type InvoicingService struct{}

func NewInvoicingService() *InvoicingService {
	return &InvoicingService{}
}

// Issue builds an invoice with one line per request item, in request order.
// A request with no items yields an invoice with no lines. The first policy
// error aborts the whole issuance; no partial invoice is returned.
func (s *InvoicingService) Issue(ctx context.Context, request *domain.InvoiceRequest, policy TaxPolicy) (*domain.Invoice, error) {
	invoice := domain.NewInvoice(uuid.New(), request.Client, time.Now().UTC())

	for _, item := range request.Items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tax, err := policy.CalculateTax(item.Product.Type, item.TotalCost)
		if err != nil {
			return nil, fmt.Errorf("calculate tax for product %s: %w", item.Product.ProductID, err)
		}

		invoice.AddLine(domain.InvoiceLine{Tax: tax, Item: item})
	}

	return invoice, nil
}
