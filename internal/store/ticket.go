package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/The0mikkel/byceps/core/db/sqlc"
	"github.com/The0mikkel/byceps/internal/model"
)

type ticketStore struct {
	queries *sqlc.Queries
}

func newTicketStore(queries *sqlc.Queries) TicketStore {
	return &ticketStore{queries: queries}
}

func (s *ticketStore) GetCategory(ctx context.Context, id int64) (*model.TicketCategory, error) {
	row, err := s.queries.GetTicketCategory(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &model.TicketCategory{ID: row.ID, PartyID: row.PartyID, Title: row.Title}, nil
}

func (s *ticketStore) CodeExists(ctx context.Context, partyID, code string) (bool, error) {
	return s.queries.TicketCodeExists(ctx, sqlc.TicketCodeExistsParams{
		PartyID: partyID,
		Code:    code,
	})
}

func (s *ticketStore) CreateTicket(ctx context.Context, ticket model.Ticket) (*model.Ticket, error) {
	row, err := s.queries.CreateTicket(ctx, sqlc.CreateTicketParams{
		ID:          ticket.ID,
		CreatedAt:   toTimestamptz(ticket.CreatedAt),
		PartyID:     ticket.PartyID,
		Code:        ticket.Code,
		BundleID:    ticket.BundleID,
		CategoryID:  ticket.CategoryID,
		OwnedByID:   ticket.OwnedByID,
		OrderNumber: ticket.OrderNumber,
	})
	if err != nil {
		return nil, err
	}
	return toTicketModel(row), nil
}

func (s *ticketStore) GetTicket(ctx context.Context, id int64) (*model.Ticket, error) {
	row, err := s.queries.GetTicket(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toTicketModel(row), nil
}

func (s *ticketStore) RevokeTicket(ctx context.Context, id int64) (bool, error) {
	affected, err := s.queries.RevokeTicket(ctx, id)
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (s *ticketStore) CreateBundle(ctx context.Context, bundle model.TicketBundle) (*model.TicketBundle, error) {
	row, err := s.queries.CreateTicketBundle(ctx, sqlc.CreateTicketBundleParams{
		ID:             bundle.ID,
		CreatedAt:      toTimestamptz(bundle.CreatedAt),
		PartyID:        bundle.PartyID,
		CategoryID:     bundle.CategoryID,
		TicketQuantity: int32(bundle.TicketQuantity),
		OwnedByID:      bundle.OwnedByID,
		Label:          bundle.Label,
	})
	if err != nil {
		return nil, err
	}
	return toTicketBundleModel(row), nil
}

func (s *ticketStore) GetBundle(ctx context.Context, id int64) (*model.TicketBundle, error) {
	row, err := s.queries.GetTicketBundle(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	bundle := toTicketBundleModel(row)
	tickets, err := s.queries.ListTicketsByBundle(ctx, &row.ID)
	if err != nil {
		return nil, fmt.Errorf("listing tickets of bundle %d: %w", id, err)
	}
	bundle.Tickets = make([]model.Ticket, 0, len(tickets))
	for _, t := range tickets {
		bundle.Tickets = append(bundle.Tickets, *toTicketModel(t))
	}
	return bundle, nil
}

func (s *ticketStore) RevokeBundle(ctx context.Context, id int64) (bool, error) {
	affected, err := s.queries.RevokeTicketBundle(ctx, id)
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}
	if err := s.queries.RevokeTicketsInBundle(ctx, &id); err != nil {
		return false, fmt.Errorf("revoking tickets of bundle %d: %w", id, err)
	}
	return true, nil
}

func toTicketModel(row sqlc.Ticket) *model.Ticket {
	return &model.Ticket{
		ID:          row.ID,
		CreatedAt:   row.CreatedAt.Time,
		PartyID:     row.PartyID,
		Code:        row.Code,
		BundleID:    row.BundleID,
		CategoryID:  row.CategoryID,
		OwnedByID:   row.OwnedByID,
		OrderNumber: row.OrderNumber,
		UsedByID:    row.UsedByID,
		Revoked:     row.Revoked,
	}
}

func toTicketBundleModel(row sqlc.TicketBundle) *model.TicketBundle {
	return &model.TicketBundle{
		ID:             row.ID,
		CreatedAt:      row.CreatedAt.Time,
		PartyID:        row.PartyID,
		CategoryID:     row.CategoryID,
		TicketQuantity: int(row.TicketQuantity),
		OwnedByID:      row.OwnedByID,
		Label:          row.Label,
		Revoked:        row.Revoked,
	}
}
