package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/The0mikkel/byceps/common/id"
	"github.com/The0mikkel/byceps/internal/domain"
	"github.com/The0mikkel/byceps/internal/model"
	"github.com/The0mikkel/byceps/internal/store"
)

// actionRunner executes the order actions registered for the articles of an
// order once it reaches a payment state. It runs inside the caller's
// transaction; any error aborts the transition.
type actionRunner struct {
	codes  CodeSource
	logger *slog.Logger
}

func newActionRunner(codes CodeSource) *actionRunner {
	return &actionRunner{
		codes:  codes,
		logger: slog.Default().With("component", "byceps.service.order_action"),
	}
}

// Run returns the events produced by the actions. They must only be
// published after the surrounding transaction committed.
func (r *actionRunner) Run(
	ctx context.Context,
	stores StoreProvider,
	order model.Order,
	state model.PaymentState,
	initiator model.User,
) ([]domain.Event, error) {
	articleIDs := make([]int64, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		if !slices.Contains(articleIDs, item.ArticleID) {
			articleIDs = append(articleIDs, item.ArticleID)
		}
	}
	if len(articleIDs) == 0 {
		return nil, nil
	}

	actions, err := stores.OrderActions().ListForArticles(ctx, articleIDs, state)
	if err != nil {
		return nil, fmt.Errorf("listing order actions: %w", err)
	}
	byArticle := make(map[int64][]model.Action, len(actions))
	for _, action := range actions {
		byArticle[action.ArticleID] = append(byArticle[action.ArticleID], action)
	}

	var events []domain.Event
	for i := range order.LineItems {
		item := &order.LineItems[i]
		for _, action := range byArticle[item.ArticleID] {
			produced, err := r.execute(ctx, stores, order, item, action, initiator)
			if err != nil {
				return nil, fmt.Errorf("running %s for line item %d: %w", action.Procedure, item.ID, err)
			}
			events = append(events, produced...)
		}
	}
	return events, nil
}

func (r *actionRunner) execute(
	ctx context.Context,
	stores StoreProvider,
	order model.Order,
	item *model.LineItem,
	action model.Action,
	initiator model.User,
) ([]domain.Event, error) {
	r.logger.InfoContext(ctx, "executing order action",
		"action_id", action.ID,
		"procedure", action.Procedure,
		"line_item_id", item.ID)

	switch params := action.Parameters.(type) {
	case model.CreateTicketsParameters:
		event, err := r.createTickets(ctx, stores, order, item, params, initiator)
		if err != nil {
			return nil, err
		}
		return []domain.Event{event}, nil
	case model.CreateTicketBundlesParameters:
		event, err := r.createTicketBundles(ctx, stores, order, item, params, initiator)
		if err != nil {
			return nil, err
		}
		return []domain.Event{event}, nil
	case model.RevokeTicketsParameters:
		return nil, r.revokeTickets(ctx, stores, order, *item, initiator)
	case model.RevokeTicketBundlesParameters:
		return nil, r.revokeTicketBundles(ctx, stores, order, *item, initiator)
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownProcedure, action.Procedure)
	}
}

func (r *actionRunner) createTickets(
	ctx context.Context,
	stores StoreProvider,
	order model.Order,
	item *model.LineItem,
	params model.CreateTicketsParameters,
	initiator model.User,
) (domain.Event, error) {
	tickets := stores.Tickets()

	category, err := tickets.GetCategory(ctx, params.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("loading ticket category %d: %w", params.CategoryID, err)
	}

	owner := order.PlacedBy
	now := time.Now().UTC()
	codes := newTicketCodeGenerator(tickets, r.codes)

	ticketIDs := make([]int64, 0, item.Quantity)
	entries := make([]model.OrderLogEntry, 0, item.Quantity)
	for range item.Quantity {
		ticket, err := r.createTicket(ctx, tickets, codes, *category, owner.ID, order.OrderNumber, nil, now)
		if err != nil {
			return nil, err
		}
		ticketIDs = append(ticketIDs, ticket.ID)
		entries = append(entries, domain.TicketCreatedLogEntry(order.ID, *ticket))
	}

	if err := stores.OrderLog().Append(ctx, entries...); err != nil {
		return nil, fmt.Errorf("appending ticket log entries: %w", err)
	}

	slices.Sort(ticketIDs)
	item.ProcessingResult.TicketIDs = ticketIDs
	if err := stores.Orders().UpdateLineItemProcessingResult(ctx, item.ID, item.ProcessingResult); err != nil {
		return nil, fmt.Errorf("storing processing result: %w", err)
	}

	return domain.NewTicketsSoldEvent(now, order, *category, owner, item.Quantity, initiator), nil
}

func (r *actionRunner) createTicketBundles(
	ctx context.Context,
	stores StoreProvider,
	order model.Order,
	item *model.LineItem,
	params model.CreateTicketBundlesParameters,
	initiator model.User,
) (domain.Event, error) {
	tickets := stores.Tickets()

	category, err := tickets.GetCategory(ctx, params.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("loading ticket category %d: %w", params.CategoryID, err)
	}

	owner := order.PlacedBy
	now := time.Now().UTC()
	codes := newTicketCodeGenerator(tickets, r.codes)

	bundleIDs := make([]int64, 0, item.Quantity)
	for range item.Quantity {
		bundle, err := tickets.CreateBundle(ctx, model.TicketBundle{
			ID:             id.New(),
			CreatedAt:      now,
			PartyID:        category.PartyID,
			CategoryID:     category.ID,
			OwnedByID:      owner.ID,
			TicketQuantity: params.TicketQuantity,
		})
		if err != nil {
			return nil, fmt.Errorf("creating ticket bundle: %w", err)
		}

		for range params.TicketQuantity {
			if _, err := r.createTicket(ctx, tickets, codes, *category, owner.ID, order.OrderNumber, &bundle.ID, now); err != nil {
				return nil, err
			}
		}

		if err := stores.OrderLog().Append(ctx, domain.TicketBundleCreatedLogEntry(order.ID, *bundle)); err != nil {
			return nil, fmt.Errorf("appending ticket bundle log entry: %w", err)
		}
		bundleIDs = append(bundleIDs, bundle.ID)
	}

	slices.Sort(bundleIDs)
	item.ProcessingResult.TicketBundleIDs = bundleIDs
	if err := stores.Orders().UpdateLineItemProcessingResult(ctx, item.ID, item.ProcessingResult); err != nil {
		return nil, fmt.Errorf("storing processing result: %w", err)
	}

	total := params.TicketQuantity * item.Quantity
	return domain.NewTicketsSoldEvent(now, order, *category, owner, total, initiator), nil
}

func (r *actionRunner) createTicket(
	ctx context.Context,
	tickets store.TicketStore,
	codes *ticketCodeGenerator,
	category model.TicketCategory,
	ownerID int64,
	orderNumber string,
	bundleID *int64,
	createdAt time.Time,
) (*model.Ticket, error) {
	code, err := codes.Next(ctx, category.PartyID)
	if err != nil {
		return nil, err
	}

	ticket, err := tickets.CreateTicket(ctx, model.Ticket{
		ID:          id.New(),
		CreatedAt:   createdAt,
		PartyID:     category.PartyID,
		Code:        code,
		BundleID:    bundleID,
		CategoryID:  category.ID,
		OwnedByID:   ownerID,
		OrderNumber: &orderNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("creating ticket: %w", err)
	}
	return ticket, nil
}

// revokeTickets revokes each ticket in its own savepoint. A failing ticket
// is logged and skipped; the others and their log entries are kept.
func (r *actionRunner) revokeTickets(
	ctx context.Context,
	stores StoreProvider,
	order model.Order,
	item model.LineItem,
	initiator model.User,
) error {
	for _, ticketID := range item.ProcessingResult.TicketIDs {
		err := savepoint(ctx, stores, func(stores StoreProvider) error {
			return r.revokeTicket(ctx, stores, order.ID, ticketID, initiator)
		})
		if err != nil {
			r.logger.ErrorContext(ctx, "revoking ticket failed, continuing",
				"ticket_id", ticketID, "error", err)
		}
	}
	return nil
}

func (r *actionRunner) revokeTicket(
	ctx context.Context,
	stores StoreProvider,
	orderID, ticketID int64,
	initiator model.User,
) error {
	tickets := stores.Tickets()

	ticket, err := tickets.GetTicket(ctx, ticketID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.logger.WarnContext(ctx, "ticket to revoke not found, skipping", "ticket_id", ticketID)
			return nil
		}
		return fmt.Errorf("loading ticket %d: %w", ticketID, err)
	}

	revoked, err := tickets.RevokeTicket(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("revoking ticket %d: %w", ticketID, err)
	}
	if !revoked {
		return nil
	}

	if err := stores.OrderLog().Append(ctx, domain.TicketRevokedLogEntry(orderID, *ticket, initiator)); err != nil {
		return fmt.Errorf("appending revocation log entry for ticket %d: %w", ticketID, err)
	}
	return nil
}

func (r *actionRunner) revokeTicketBundles(
	ctx context.Context,
	stores StoreProvider,
	order model.Order,
	item model.LineItem,
	initiator model.User,
) error {
	for _, bundleID := range item.ProcessingResult.TicketBundleIDs {
		err := savepoint(ctx, stores, func(stores StoreProvider) error {
			return r.revokeTicketBundle(ctx, stores, order.ID, bundleID, initiator)
		})
		if err != nil {
			r.logger.ErrorContext(ctx, "revoking ticket bundle failed, continuing",
				"ticket_bundle_id", bundleID, "error", err)
		}
	}
	return nil
}

func (r *actionRunner) revokeTicketBundle(
	ctx context.Context,
	stores StoreProvider,
	orderID, bundleID int64,
	initiator model.User,
) error {
	tickets := stores.Tickets()

	bundle, err := tickets.GetBundle(ctx, bundleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.logger.WarnContext(ctx, "ticket bundle to revoke not found, skipping", "ticket_bundle_id", bundleID)
			return nil
		}
		return fmt.Errorf("loading ticket bundle %d: %w", bundleID, err)
	}

	revoked, err := tickets.RevokeBundle(ctx, bundleID)
	if err != nil {
		return fmt.Errorf("revoking ticket bundle %d: %w", bundleID, err)
	}
	if !revoked {
		return nil
	}

	if err := stores.OrderLog().Append(ctx, domain.TicketBundleRevokedLogEntry(orderID, *bundle, initiator)); err != nil {
		return fmt.Errorf("appending revocation log entry for bundle %d: %w", bundleID, err)
	}
	return nil
}
