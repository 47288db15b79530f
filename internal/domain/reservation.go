package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrReservationClosed = errors.New("reservation is not opened")

type ReservationStatus string

const (
	ReservationStatusOpened    ReservationStatus = "OPENED"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// ReservationItem is one reserved product with its quantity. The product is
// stored as a snapshot so the reservation keeps the price it was made at.
type ReservationItem struct {
	Product  ProductData `json:"product"`
	Quantity int         `json:"quantity"`
	AddedAt  time.Time   `json:"added_at"`
}

// Reservation is an open pre-order for a single client. Items can only be
// added while the status is OPENED; the aggregate enforces that itself.
type Reservation struct {
	ID        uuid.UUID
	Status    ReservationStatus
	Client    ClientData
	Items     []ReservationItem
	CreatedAt time.Time
}

func NewReservation(id uuid.UUID, client ClientData, now time.Time) *Reservation {
	return &Reservation{
		ID:        id,
		Status:    ReservationStatusOpened,
		Client:    client,
		CreatedAt: now,
	}
}

// Add appends a product to the reservation. Re-adding a product that is
// already on the reservation is allowed and results in another line.
func (r *Reservation) Add(product *Product, quantity int, now time.Time) error {
	if r.Status != ReservationStatusOpened {
		return ErrReservationClosed
	}
	r.Items = append(r.Items, ReservationItem{
		Product:  product.Snapshot(now),
		Quantity: quantity,
		AddedAt:  now,
	})
	return nil
}

// Contains reports whether a product with the given id has been reserved.
func (r *Reservation) Contains(productID uuid.UUID) bool {
	for _, item := range r.Items {
		if item.Product.ProductID == productID {
			return true
		}
	}
	return false
}
