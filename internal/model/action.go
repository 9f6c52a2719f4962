package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Procedure names the side effect an order action performs.
type Procedure string

const (
	ProcedureCreateTickets       Procedure = "create_tickets"
	ProcedureCreateTicketBundles Procedure = "create_ticket_bundles"
	ProcedureRevokeTickets       Procedure = "revoke_tickets"
	ProcedureRevokeTicketBundles Procedure = "revoke_ticket_bundles"
)

var ErrUnknownProcedure = errors.New("unknown order action procedure")

// Procedures lists every procedure in a stable order.
var Procedures = []Procedure{
	ProcedureCreateTickets,
	ProcedureCreateTicketBundles,
	ProcedureRevokeTickets,
	ProcedureRevokeTicketBundles,
}

func (p Procedure) Valid() bool {
	switch p {
	case ProcedureCreateTickets, ProcedureCreateTicketBundles, ProcedureRevokeTickets, ProcedureRevokeTicketBundles:
		return true
	}
	return false
}

// ActionParameters is implemented by the parameter struct of each procedure.
// The set is closed: only the types in this file implement it.
type ActionParameters interface {
	Procedure() Procedure
	isActionParameters()
}

type CreateTicketsParameters struct {
	CategoryID int64 `json:"category_id" jsonschema:"required,description=Ticket category the created tickets belong to"`
}

type CreateTicketBundlesParameters struct {
	CategoryID     int64 `json:"category_id" jsonschema:"required,description=Ticket category of the tickets in each bundle"`
	TicketQuantity int   `json:"ticket_quantity" jsonschema:"required,minimum=1,description=Number of tickets per bundle"`
}

type RevokeTicketsParameters struct{}

type RevokeTicketBundlesParameters struct{}

func (CreateTicketsParameters) Procedure() Procedure       { return ProcedureCreateTickets }
func (CreateTicketBundlesParameters) Procedure() Procedure { return ProcedureCreateTicketBundles }
func (RevokeTicketsParameters) Procedure() Procedure       { return ProcedureRevokeTickets }
func (RevokeTicketBundlesParameters) Procedure() Procedure { return ProcedureRevokeTicketBundles }

func (CreateTicketsParameters) isActionParameters()       {}
func (CreateTicketBundlesParameters) isActionParameters() {}
func (RevokeTicketsParameters) isActionParameters()       {}
func (RevokeTicketBundlesParameters) isActionParameters() {}

// Action is an admin-configured procedure that runs for line items of an
// article once their order reaches PaymentState.
type Action struct {
	Parameters   ActionParameters `json:"parameters"`
	PaymentState PaymentState     `json:"payment_state"`
	Procedure    Procedure        `json:"procedure"`
	ID           int64            `json:"id"`
	ArticleID    int64            `json:"article_id"`
}

// DecodeActionParameters parses stored parameters into the variant for procedure.
func DecodeActionParameters(procedure Procedure, raw []byte) (ActionParameters, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}

	switch procedure {
	case ProcedureCreateTickets:
		var p CreateTicketsParameters
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding %s parameters: %w", procedure, err)
		}
		if p.CategoryID == 0 {
			return nil, fmt.Errorf("%s parameters: category_id is required", procedure)
		}
		return p, nil
	case ProcedureCreateTicketBundles:
		var p CreateTicketBundlesParameters
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decoding %s parameters: %w", procedure, err)
		}
		if p.CategoryID == 0 || p.TicketQuantity < 1 {
			return nil, fmt.Errorf("%s parameters: category_id and a positive ticket_quantity are required", procedure)
		}
		return p, nil
	case ProcedureRevokeTickets:
		return RevokeTicketsParameters{}, nil
	case ProcedureRevokeTicketBundles:
		return RevokeTicketBundlesParameters{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProcedure, procedure)
	}
}

// ActionParametersSchemas returns the JSON schema of each procedure's parameters,
// keyed by procedure name.
func ActionParametersSchemas() map[Procedure]*jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}

	return map[Procedure]*jsonschema.Schema{
		ProcedureCreateTickets:       reflector.Reflect(CreateTicketsParameters{}),
		ProcedureCreateTicketBundles: reflector.Reflect(CreateTicketBundlesParameters{}),
		ProcedureRevokeTickets:       reflector.Reflect(RevokeTicketsParameters{}),
		ProcedureRevokeTicketBundles: reflector.Reflect(RevokeTicketBundlesParameters{}),
	}
}
