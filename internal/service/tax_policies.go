package service

import (
	"fmt"

	"github.com/mgrech/go_sales/internal/domain"
)

// FlatTaxPolicy applies one rate to every product type.
type FlatTaxPolicy struct {
	RatePercent int64
}

func (p FlatTaxPolicy) CalculateTax(_ domain.ProductType, net domain.Money) (domain.Tax, error) {
	amount, err := domain.NewMoney(net.Amount*p.RatePercent/100, net.Currency)
	if err != nil {
		return domain.Tax{}, fmt.Errorf("flat tax: %w", err)
	}
	return domain.Tax{
		Amount:      amount,
		Description: fmt.Sprintf("flat %d%%", p.RatePercent),
	}, nil
}

// VATPolicy applies a per-product-type rate.
type VATPolicy struct {
	rates map[domain.ProductType]int64
}

// NewVATPolicy returns the default VAT table: 23% standard, 7% food,
// 5% drugs.
func NewVATPolicy() *VATPolicy {
	return &VATPolicy{
		rates: map[domain.ProductType]int64{
			domain.ProductTypeStandard: 23,
			domain.ProductTypeFood:     7,
			domain.ProductTypeDrug:     5,
		},
	}
}

func (p *VATPolicy) CalculateTax(productType domain.ProductType, net domain.Money) (domain.Tax, error) {
	rate, ok := p.rates[productType]
	if !ok {
		return domain.Tax{}, fmt.Errorf("no VAT rate for product type %q", productType)
	}
	amount, err := domain.NewMoney(net.Amount*rate/100, net.Currency)
	if err != nil {
		return domain.Tax{}, fmt.Errorf("vat: %w", err)
	}
	return domain.Tax{
		Amount:      amount,
		Description: fmt.Sprintf("%d%% VAT (%s)", rate, productType),
	}, nil
}

// TaxPolicyByName resolves the configured policy. Unknown names fall back
// to the VAT table.
func TaxPolicyByName(name string) TaxPolicy {
	switch name {
	case "flat":
		return FlatTaxPolicy{RatePercent: 10}
	default:
		return NewVATPolicy()
	}
}
