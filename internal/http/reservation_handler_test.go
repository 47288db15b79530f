package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mgrech/go_sales/internal/repository"
	"github.com/mgrech/go_sales/internal/service"
)

type addProductMock struct {
	err  error
	cmds []service.AddProductCommand
}

func (m *addProductMock) Handle(_ context.Context, cmd service.AddProductCommand) error {
	m.cmds = append(m.cmds, cmd)
	return m.err
}

func reservationRouter(mock *addProductMock) http.Handler {
	handler := NewReservationHandler(mock, 5*time.Second)
	r := chi.NewRouter()
	r.Post("/api/v1/reservations/{reservation_id}/items", handler.AddItem)
	return r
}

func TestAddItem_Success(t *testing.T) {
	mock := &addProductMock{}
	router := reservationRouter(mock)

	reservationID := uuid.New()
	productID := uuid.New()
	body, _ := json.Marshal(AddItemRequestDTO{ProductID: productID.String(), Quantity: 10})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/reservations/%s/items", reservationID), bytes.NewReader(body))

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusNoContent {
		t.Errorf("Expected status code %d, got %d", http.StatusNoContent, recorder.Code)
	}
	if len(mock.cmds) != 1 {
		t.Fatalf("Expected 1 command, got %d", len(mock.cmds))
	}
	if mock.cmds[0].ReservationID != reservationID {
		t.Errorf("Expected reservation id %s, got %s", reservationID, mock.cmds[0].ReservationID)
	}
	if mock.cmds[0].ProductID != productID {
		t.Errorf("Expected product id %s, got %s", productID, mock.cmds[0].ProductID)
	}
	if mock.cmds[0].Quantity != 10 {
		t.Errorf("Expected quantity 10, got %d", mock.cmds[0].Quantity)
	}
}

func TestAddItem_InvalidReservationID(t *testing.T) {
	router := reservationRouter(&addProductMock{})

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: uuid.New().String(), Quantity: 1})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/api/v1/reservations/not-a-uuid/items", bytes.NewReader(body))

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	mock := &addProductMock{}
	router := reservationRouter(mock)

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: uuid.New().String(), Quantity: 0})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/reservations/%s/items", uuid.New()), bytes.NewReader(body))

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
	if len(mock.cmds) != 0 {
		t.Errorf("Expected no command, got %d", len(mock.cmds))
	}
}

func TestAddItem_ReservationNotFound(t *testing.T) {
	mock := &addProductMock{err: fmt.Errorf("load reservation: %w", repository.ErrReservationNotFound)}
	router := reservationRouter(mock)

	body, _ := json.Marshal(AddItemRequestDTO{ProductID: uuid.New().String(), Quantity: 1})
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", fmt.Sprintf("/api/v1/reservations/%s/items", uuid.New()), bytes.NewReader(body))

	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}

	var response ErrorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Code != "not_found" {
		t.Errorf("Expected code 'not_found', got '%s'", response.Code)
	}
}
