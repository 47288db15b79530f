package domain

import "github.com/google/uuid"

// Client is the buyer aggregate. Only identity and display name matter to
// this service; account details live elsewhere.
type Client struct {
	ID   uuid.UUID
	Name string
}

// ClientData is an immutable snapshot of a client taken when a request is
// made, so later changes to the client never show up on issued documents.
type ClientData struct {
	ClientID uuid.UUID `json:"client_id"`
	Name     string    `json:"name"`
}

func (c *Client) Snapshot() ClientData {
	return ClientData{ClientID: c.ID, Name: c.Name}
}
