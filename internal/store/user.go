package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/The0mikkel/byceps/core/db/sqlc"
	"github.com/The0mikkel/byceps/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &model.User{ID: row.ID, ScreenName: row.ScreenName}, nil
}
