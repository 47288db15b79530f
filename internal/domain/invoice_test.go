package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLine(totalCents int64, currency string) InvoiceLine {
	return InvoiceLine{
		Tax: Tax{Amount: Money{Amount: totalCents / 10, Currency: currency}},
		Item: RequestItem{
			Product:   ProductData{ProductID: uuid.New(), Name: "product", Type: ProductTypeStandard},
			Quantity:  1,
			TotalCost: Money{Amount: totalCents, Currency: currency},
		},
	}
}

func TestInvoiceRequest_PreservesOrderAndDuplicates(t *testing.T) {
	request := NewInvoiceRequest(ClientData{ClientID: uuid.New(), Name: "client"})
	item := testLine(1000, "EUR").Item

	request.Add(item)
	request.Add(item)

	require.Len(t, request.Items, 2)
	assert.Equal(t, item, request.Items[0])
	assert.Equal(t, item, request.Items[1])
}

func TestNet_SumsLineTotals(t *testing.T) {
	invoice := NewInvoice(uuid.New(), ClientData{ClientID: uuid.New(), Name: "client"}, time.Now())
	invoice.AddLine(testLine(1000, "EUR"))
	invoice.AddLine(testLine(2500, "EUR"))

	net, err := invoice.Net()
	require.NoError(t, err)
	assert.Equal(t, Money{Amount: 3500, Currency: "EUR"}, net)
}

func TestNet_EmptyInvoice(t *testing.T) {
	invoice := NewInvoice(uuid.New(), ClientData{ClientID: uuid.New(), Name: "client"}, time.Now())

	net, err := invoice.Net()
	require.NoError(t, err)
	assert.True(t, net.IsZero())
}

func TestNet_MixedCurrencies(t *testing.T) {
	invoice := NewInvoice(uuid.New(), ClientData{ClientID: uuid.New(), Name: "client"}, time.Now())
	invoice.AddLine(testLine(1000, "EUR"))
	invoice.AddLine(testLine(2500, "USD"))

	_, err := invoice.Net()
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}
