package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/The0mikkel/byceps/internal/model"
)

// Event is implemented by every domain event. Concrete events embed BaseEvent
// and are published by value.
type Event interface {
	Base() BaseEvent
}

// Selectable is implemented by events that webhooks can filter on with
// event selectors (e.g. only postings of a given board).
type Selectable interface {
	SelectorAttributes() map[string]string
}

// BaseEvent carries what every domain event has in common.
type BaseEvent struct {
	OccurredAt time.Time  `json:"occurred_at"`
	Initiator  *EventUser `json:"initiator,omitempty"`
	ID         uuid.UUID  `json:"event_id"`
}

func (e BaseEvent) Base() BaseEvent {
	return e
}

// NewBaseEvent stamps a new event with a time-ordered UUID used for deduplication
// when events travel through the queue.
func NewBaseEvent(occurredAt time.Time, initiator *EventUser) BaseEvent {
	return BaseEvent{
		ID:         uuid.Must(uuid.NewV7()),
		OccurredAt: occurredAt,
		Initiator:  initiator,
	}
}

// EventUser is the snapshot of a user taken when the event occurred.
type EventUser struct {
	ScreenName *string `json:"screen_name,omitempty"`
	ID         int64   `json:"id"`
}

func EventUserFrom(u model.User) EventUser {
	return EventUser{ID: u.ID, ScreenName: u.ScreenName}
}

func EventUserPtr(u model.User) *EventUser {
	eu := EventUserFrom(u)
	return &eu
}

// DisplayName returns the screen name, or "Someone" for users without one.
func (u *EventUser) DisplayName() string {
	if u == nil || u.ScreenName == nil || *u.ScreenName == "" {
		return "Someone"
	}
	return *u.ScreenName
}

// shop

type ShopOrderPlacedEvent struct {
	BaseEvent
	ShopID      string    `json:"shop_id"`
	OrderNumber string    `json:"order_number"`
	Orderer     EventUser `json:"orderer"`
	OrderID     int64     `json:"order_id"`
}

type ShopOrderPaidEvent struct {
	BaseEvent
	ShopID        string    `json:"shop_id"`
	OrderNumber   string    `json:"order_number"`
	PaymentMethod string    `json:"payment_method"`
	Orderer       EventUser `json:"orderer"`
	OrderID       int64     `json:"order_id"`
}

type ShopOrderCanceledEvent struct {
	BaseEvent
	ShopID      string    `json:"shop_id"`
	OrderNumber string    `json:"order_number"`
	Orderer     EventUser `json:"orderer"`
	OrderID     int64     `json:"order_id"`
}

func (e ShopOrderPlacedEvent) SelectorAttributes() map[string]string {
	return map[string]string{"shop_id": e.ShopID}
}

func (e ShopOrderPaidEvent) SelectorAttributes() map[string]string {
	return map[string]string{"shop_id": e.ShopID}
}

func (e ShopOrderCanceledEvent) SelectorAttributes() map[string]string {
	return map[string]string{"shop_id": e.ShopID}
}

// ticketing

type TicketCheckedInEvent struct {
	BaseEvent
	TicketCode string    `json:"ticket_code"`
	User       EventUser `json:"user"`
	TicketID   int64     `json:"ticket_id"`
}

type TicketsSoldEvent struct {
	BaseEvent
	PartyID    string    `json:"party_id"`
	Owner      EventUser `json:"owner"`
	OrderID    int64     `json:"order_id"`
	CategoryID int64     `json:"category_id"`
	Quantity   int       `json:"quantity"`
}

// user

type UserLoggedInEvent struct {
	BaseEvent
	SiteID *string   `json:"site_id,omitempty"`
	User   EventUser `json:"user"`
}

type UserAccountCreatedEvent struct {
	BaseEvent
	SiteID    *string   `json:"site_id,omitempty"`
	SiteTitle *string   `json:"site_title,omitempty"`
	User      EventUser `json:"user"`
}

type UserAccountDeletedEvent struct {
	BaseEvent
	User EventUser `json:"user"`
}

type UserAccountSuspendedEvent struct {
	BaseEvent
	User EventUser `json:"user"`
}

type UserAccountUnsuspendedEvent struct {
	BaseEvent
	User EventUser `json:"user"`
}

type UserDetailsUpdatedEvent struct {
	BaseEvent
	User EventUser `json:"user"`
}

type UserEmailAddressChangedEvent struct {
	BaseEvent
	User EventUser `json:"user"`
}

type UserEmailAddressInvalidatedEvent struct {
	BaseEvent
	User EventUser `json:"user"`
}

type UserScreenNameChangedEvent struct {
	BaseEvent
	OldScreenName *string `json:"old_screen_name,omitempty"`
	NewScreenName *string `json:"new_screen_name,omitempty"`
	UserID        int64   `json:"user_id"`
}

type UserBadgeAwardedEvent struct {
	BaseEvent
	BadgeID    string    `json:"badge_id"`
	BadgeLabel string    `json:"badge_label"`
	Awardee    EventUser `json:"awardee"`
}
