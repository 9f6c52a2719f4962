package domain

import "errors"

var (
	ErrOrderAlreadyMarkedAsPaid = errors.New("order is already marked as paid")
	ErrOrderAlreadyCanceled     = errors.New("order is already canceled")
	ErrOrderNotShippable        = errors.New("order contains no items that require shipping")
)
