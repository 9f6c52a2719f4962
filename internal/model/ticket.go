package model

import "time"

type TicketCategory struct {
	PartyID string `json:"party_id"`
	Title   string `json:"title"`
	ID      int64  `json:"id"`
}

type Ticket struct {
	CreatedAt   time.Time `json:"created_at"`
	BundleID    *int64    `json:"bundle_id,omitempty"`
	OrderNumber *string   `json:"order_number,omitempty"`
	UsedByID    *int64    `json:"used_by_id,omitempty"`
	PartyID     string    `json:"party_id"`
	Code        string    `json:"code"`
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	OwnedByID   int64     `json:"owned_by_id"`
	Revoked     bool      `json:"revoked"`
}

type TicketBundle struct {
	CreatedAt      time.Time `json:"created_at"`
	Label          *string   `json:"label,omitempty"`
	PartyID        string    `json:"party_id"`
	ID             int64     `json:"id"`
	CategoryID     int64     `json:"category_id"`
	OwnedByID      int64     `json:"owned_by_id"`
	TicketQuantity int       `json:"ticket_quantity"`
	Revoked        bool      `json:"revoked"`
	Tickets        []Ticket  `json:"tickets,omitempty"`
}
