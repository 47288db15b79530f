package domain

import (
	"time"

	"github.com/google/uuid"
)

// RequestItem is one purchased line of an invoice request. TotalCost is
// computed upstream (pricing is not this service's job).
type RequestItem struct {
	Product   ProductData `json:"product"`
	Quantity  int         `json:"quantity"`
	TotalCost Money       `json:"total_cost"`
}

// InvoiceRequest is an ordered bundle of purchased items for one client.
// Order is preserved and duplicates are allowed.
type InvoiceRequest struct {
	Client ClientData
	Items  []RequestItem
}

func NewInvoiceRequest(client ClientData) *InvoiceRequest {
	return &InvoiceRequest{Client: client}
}

func (r *InvoiceRequest) Add(item RequestItem) {
	r.Items = append(r.Items, item)
}

// Tax is whatever the tax policy computed for one item. The invoicing
// engine treats it as opaque.
type Tax struct {
	Amount      Money  `json:"amount"`
	Description string `json:"description"`
}

// InvoiceLine binds one tax computation to one purchased item.
type InvoiceLine struct {
	Tax  Tax         `json:"tax"`
	Item RequestItem `json:"item"`
}

// Invoice is the issued document. Lines are appended during issuance only;
// once handed to the caller the invoice is treated as immutable.
type Invoice struct {
	ID       uuid.UUID
	Client   ClientData
	Lines    []InvoiceLine
	IssuedAt time.Time
}

func NewInvoice(id uuid.UUID, client ClientData, issuedAt time.Time) *Invoice {
	return &Invoice{
		ID:       id,
		Client:   client,
		IssuedAt: issuedAt,
	}
}

func (i *Invoice) AddLine(line InvoiceLine) {
	i.Lines = append(i.Lines, line)
}

// Net sums the total cost of all lines. All lines must share a currency.
func (i *Invoice) Net() (Money, error) {
	var total Money
	for idx, line := range i.Lines {
		if idx == 0 {
			total = line.Item.TotalCost
			continue
		}
		sum, err := total.Add(line.Item.TotalCost)
		if err != nil {
			return Money{}, err
		}
		total = sum
	}
	return total, nil
}
