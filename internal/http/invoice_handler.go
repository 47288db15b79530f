package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mgrech/go_sales/internal/domain"
	"github.com/mgrech/go_sales/internal/service"
)

type InvoiceIssuer interface {
	IssueInvoice(ctx context.Context, clientID uuid.UUID, items []service.IssueInvoiceItem) (*domain.Invoice, error)
}

type InvoiceReader interface {
	GetInvoiceByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
}

type InvoiceHandler struct {
	issuer  InvoiceIssuer
	reader  InvoiceReader
	timeout time.Duration
}

func NewInvoiceHandler(issuer InvoiceIssuer, reader InvoiceReader, timeout time.Duration) *InvoiceHandler {
	return &InvoiceHandler{
		issuer:  issuer,
		reader:  reader,
		timeout: timeout,
	}
}

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type IssueInvoiceItemDTO struct {
	ProductID string   `json:"product_id"`
	Quantity  int      `json:"quantity"`
	TotalCost MoneyDTO `json:"total_cost"`
}

type IssueInvoiceRequestDTO struct {
	ClientID string                `json:"client_id"`
	Items    []IssueInvoiceItemDTO `json:"items"`
}

type InvoiceResponseDTO struct {
	ID       string               `json:"id"`
	Client   domain.ClientData    `json:"client"`
	Lines    []domain.InvoiceLine `json:"lines"`
	IssuedAt time.Time            `json:"issued_at"`
}

func (h *InvoiceHandler) Issue(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req IssueInvoiceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_client_id", "client_id must be a uuid")
		return
	}

	items := make([]service.IssueInvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, errParse := uuid.Parse(item.ProductID)
		if errParse != nil {
			respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a uuid")
			return
		}
		if item.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
			return
		}
		cost, errMoney := domain.NewMoney(item.TotalCost.Amount, item.TotalCost.Currency)
		if errMoney != nil {
			respondError(w, http.StatusBadRequest, "invalid_money", errMoney.Error())
			return
		}
		items = append(items, service.IssueInvoiceItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			TotalCost: cost,
		})
	}

	invoice, err := h.issuer.IssueInvoice(ctx, clientID, items)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toInvoiceDTO(invoice))
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	invoiceID, err := uuid.Parse(chi.URLParam(r, "invoice_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_invoice_id", "invoice_id must be a uuid")
		return
	}

	invoice, err := h.reader.GetInvoiceByID(ctx, invoiceID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toInvoiceDTO(invoice))
}

func toInvoiceDTO(invoice *domain.Invoice) InvoiceResponseDTO {
	return InvoiceResponseDTO{
		ID:       invoice.ID.String(),
		Client:   invoice.Client,
		Lines:    invoice.Lines,
		IssuedAt: invoice.IssuedAt,
	}
}
