package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/The0mikkel/byceps/internal/store"
)

const (
	ticketCodeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	ticketCodeLength      = 5
	ticketCodeMaxAttempts = 4
)

var ErrTicketCodeGenerationFailed = fmt.Errorf("could not generate unique ticket code after %d attempts", ticketCodeMaxAttempts)

// CodeSource returns candidate ticket codes. Tests replace it to force collisions.
type CodeSource func() (string, error)

func randomTicketCode() (string, error) {
	max := big.NewInt(int64(len(ticketCodeAlphabet)))
	code := make([]byte, ticketCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = ticketCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}

// ticketCodeGenerator hands out codes unique within a party. Codes reserved
// earlier in the same batch count as taken even before they hit the store.
type ticketCodeGenerator struct {
	tickets  store.TicketStore
	source   CodeSource
	reserved map[string]struct{}
}

func newTicketCodeGenerator(tickets store.TicketStore, source CodeSource) *ticketCodeGenerator {
	if source == nil {
		source = randomTicketCode
	}
	return &ticketCodeGenerator{
		tickets:  tickets,
		source:   source,
		reserved: make(map[string]struct{}),
	}
}

func (g *ticketCodeGenerator) Next(ctx context.Context, partyID string) (string, error) {
	for range ticketCodeMaxAttempts {
		code, err := g.source()
		if err != nil {
			return "", fmt.Errorf("generating ticket code: %w", err)
		}

		key := partyID + "/" + code
		if _, taken := g.reserved[key]; taken {
			continue
		}

		exists, err := g.tickets.CodeExists(ctx, partyID, code)
		if err != nil {
			return "", fmt.Errorf("checking ticket code: %w", err)
		}
		if exists {
			continue
		}

		g.reserved[key] = struct{}{}
		return code, nil
	}
	return "", ErrTicketCodeGenerationFailed
}

