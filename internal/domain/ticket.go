package domain

import (
	"time"

	"github.com/The0mikkel/byceps/internal/model"
)

const (
	LogEntryTicketCreated       = "ticket-created"
	LogEntryTicketRevoked       = "ticket-revoked"
	LogEntryTicketBundleCreated = "ticket-bundle-created"
	LogEntryTicketBundleRevoked = "ticket-bundle-revoked"
)

func TicketCreatedLogEntry(orderID int64, ticket model.Ticket) model.OrderLogEntry {
	return newLogEntry(orderID, ticket.CreatedAt, LogEntryTicketCreated, map[string]any{
		"ticket_id":          formatID(ticket.ID),
		"ticket_code":        ticket.Code,
		"ticket_category_id": formatID(ticket.CategoryID),
		"ticket_owner_id":    formatID(ticket.OwnedByID),
	})
}

func TicketRevokedLogEntry(orderID int64, ticket model.Ticket, initiator model.User) model.OrderLogEntry {
	return newLogEntry(orderID, time.Now().UTC(), LogEntryTicketRevoked, map[string]any{
		"ticket_id":    formatID(ticket.ID),
		"ticket_code":  ticket.Code,
		"initiator_id": formatID(initiator.ID),
	})
}

func TicketBundleCreatedLogEntry(orderID int64, bundle model.TicketBundle) model.OrderLogEntry {
	return newLogEntry(orderID, bundle.CreatedAt, LogEntryTicketBundleCreated, map[string]any{
		"ticket_bundle_id":              formatID(bundle.ID),
		"ticket_bundle_category_id":     formatID(bundle.CategoryID),
		"ticket_bundle_ticket_quantity": bundle.TicketQuantity,
		"ticket_bundle_owner_id":        formatID(bundle.OwnedByID),
	})
}

func TicketBundleRevokedLogEntry(orderID int64, bundle model.TicketBundle, initiator model.User) model.OrderLogEntry {
	return newLogEntry(orderID, time.Now().UTC(), LogEntryTicketBundleRevoked, map[string]any{
		"ticket_bundle_id": formatID(bundle.ID),
		"initiator_id":     formatID(initiator.ID),
	})
}

// NewTicketsSoldEvent builds the event announced after tickets were created for an order.
func NewTicketsSoldEvent(
	occurredAt time.Time,
	order model.Order,
	category model.TicketCategory,
	owner model.User,
	quantity int,
	initiator model.User,
) TicketsSoldEvent {
	return TicketsSoldEvent{
		BaseEvent:  NewBaseEvent(occurredAt, EventUserPtr(initiator)),
		PartyID:    category.PartyID,
		OrderID:    order.ID,
		CategoryID: category.ID,
		Owner:      EventUserFrom(owner),
		Quantity:   quantity,
	}
}
