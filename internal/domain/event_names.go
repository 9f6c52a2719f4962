package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
)

var ErrUnregisteredEvent = errors.New("event type has no registered name")

// eventTypesToNames is the wire contract between event types and the names
// webhook selectors are configured with. Renaming a type must not change its name.
var eventTypesToNames = map[reflect.Type]string{
	typeOf[UserLoggedInEvent]():                "user-logged-in",
	typeOf[BoardPostingCreatedEvent]():         "board-posting-created",
	typeOf[BoardPostingHiddenEvent]():          "board-posting-hidden",
	typeOf[BoardPostingUnhiddenEvent]():        "board-posting-unhidden",
	typeOf[BoardTopicCreatedEvent]():           "board-topic-created",
	typeOf[BoardTopicHiddenEvent]():            "board-topic-hidden",
	typeOf[BoardTopicLockedEvent]():            "board-topic-locked",
	typeOf[BoardTopicMovedEvent]():             "board-topic-moved",
	typeOf[BoardTopicPinnedEvent]():            "board-topic-pinned",
	typeOf[BoardTopicUnhiddenEvent]():          "board-topic-unhidden",
	typeOf[BoardTopicUnlockedEvent]():          "board-topic-unlocked",
	typeOf[BoardTopicUnpinnedEvent]():          "board-topic-unpinned",
	typeOf[GuestServerRegisteredEvent]():       "guest-server-registered",
	typeOf[NewsItemPublishedEvent]():           "news-item-published",
	typeOf[PageCreatedEvent]():                 "page-created",
	typeOf[PageDeletedEvent]():                 "page-deleted",
	typeOf[PageUpdatedEvent]():                 "page-updated",
	typeOf[ShopOrderCanceledEvent]():           "shop-order-canceled",
	typeOf[ShopOrderPaidEvent]():               "shop-order-paid",
	typeOf[ShopOrderPlacedEvent]():             "shop-order-placed",
	typeOf[SnippetCreatedEvent]():              "snippet-created",
	typeOf[SnippetDeletedEvent]():              "snippet-deleted",
	typeOf[SnippetUpdatedEvent]():              "snippet-updated",
	typeOf[TicketCheckedInEvent]():             "ticket-checked-in",
	typeOf[TicketsSoldEvent]():                 "tickets-sold",
	typeOf[UserAccountCreatedEvent]():          "user-account-created",
	typeOf[UserAccountDeletedEvent]():          "user-account-deleted",
	typeOf[UserAccountSuspendedEvent]():        "user-account-suspended",
	typeOf[UserAccountUnsuspendedEvent]():      "user-account-unsuspended",
	typeOf[UserBadgeAwardedEvent]():            "user-badge-awarded",
	typeOf[UserDetailsUpdatedEvent]():          "user-details-updated",
	typeOf[UserEmailAddressChangedEvent]():     "user-email-address-changed",
	typeOf[UserEmailAddressInvalidatedEvent](): "user-email-address-invalidated",
	typeOf[UserScreenNameChangedEvent]():       "user-screen-name-changed",
}

var namesToEventTypes = func() map[string]reflect.Type {
	m := make(map[string]reflect.Type, len(eventTypesToNames))
	for t, name := range eventTypesToNames {
		if _, dup := m[name]; dup {
			panic("duplicate event name: " + name)
		}
		m[name] = t
	}
	return m
}()

func typeOf[T Event]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// EventName returns the registered name for the event's concrete type.
// An unknown type is a programming error and must not be swallowed by callers.
func EventName(e Event) (string, error) {
	t := reflect.TypeOf(e)
	name, ok := eventTypesToNames[t]
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrUnregisteredEvent, t)
	}
	return name, nil
}

// IsRegisteredName reports whether name belongs to a registered event type.
func IsRegisteredName(name string) bool {
	_, ok := namesToEventTypes[name]
	return ok
}

// EventNames returns all registered names, sorted.
func EventNames() []string {
	names := make([]string, 0, len(namesToEventTypes))
	for name := range namesToEventTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DecodeEvent rebuilds an event from its registered name and JSON payload.
func DecodeEvent(name string, payload []byte) (Event, error) {
	t, ok := namesToEventTypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnregisteredEvent, name)
	}

	ptr := reflect.New(t)
	if err := json.Unmarshal(payload, ptr.Interface()); err != nil {
		return nil, fmt.Errorf("decoding %s payload: %w", name, err)
	}

	event, ok := ptr.Elem().Interface().(Event)
	if !ok {
		return nil, fmt.Errorf("%w: %v is not an event", ErrUnregisteredEvent, t)
	}
	return event, nil
}
