package domain

import (
	"time"

	"github.com/google/uuid"
)

type ProductType string

const (
	ProductTypeStandard ProductType = "STANDARD"
	ProductTypeFood     ProductType = "FOOD"
	ProductTypeDrug     ProductType = "DRUG"
)

// Product is a catalog entry. Products are created available and can only
// be taken off sale via MarkAsRemoved; there is no way back.
type Product struct {
	ID        uuid.UUID
	Price     Money
	Name      string
	Type      ProductType
	Removed   bool
	CreatedAt time.Time
}

func NewProduct(id uuid.UUID, price Money, name string, productType ProductType, now time.Time) *Product {
	return &Product{
		ID:        id,
		Price:     price,
		Name:      name,
		Type:      productType,
		CreatedAt: now,
	}
}

func (p *Product) IsAvailable() bool {
	return !p.Removed
}

func (p *Product) MarkAsRemoved() {
	p.Removed = true
}

// Snapshot captures the product fields relevant for invoicing. The copy is
// structurally independent so catalog changes never alter issued invoices.
func (p *Product) Snapshot(now time.Time) ProductData {
	return ProductData{
		ProductID:  p.ID,
		Price:      p.Price,
		Name:       p.Name,
		Type:       p.Type,
		SnapshotAt: now,
	}
}

// ProductData is a point-in-time copy of a product.
type ProductData struct {
	ProductID  uuid.UUID   `json:"product_id"`
	Price      Money       `json:"price"`
	Name       string      `json:"name"`
	Type       ProductType `json:"type"`
	SnapshotAt time.Time   `json:"snapshot_at"`
}
