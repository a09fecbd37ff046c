// Package lambda adapts a cruddy handler to AWS Lambda. Events carry an
// operation name and an item payload; the flattened response envelope is
// returned as the function result.
package lambda

import (
	"context"
	"fmt"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/suparena/cruddy"
)

// Event is the Lambda invocation payload.
type Event struct {
	// Operation is the operation name (create, update, get, delete, list, query).
	Operation string `json:"operation"`

	// Table selects a registered handler when routing through a Mux.
	Table string `json:"table,omitempty"`

	// Item is the item payload for create/update, and may carry "id" or
	// "query" for the other operations.
	Item cruddy.Item `json:"item,omitempty"`

	// ID is a convenience field for get/delete.
	ID string `json:"id,omitempty"`

	// Query is a convenience field for query expressions.
	Query string `json:"query,omitempty"`

	// Decrypt requests plaintext for encrypted attributes on get.
	Decrypt bool `json:"decrypt,omitempty"`
}

// HandlerFunc is the Lambda-compatible function signature produced here.
type HandlerFunc func(ctx context.Context, ev Event) (map[string]any, error)

// NewHandler wraps a single cruddy handler.
func NewHandler(h *cruddy.Handler) HandlerFunc {
	return func(ctx context.Context, ev Event) (map[string]any, error) {
		return invoke(ctx, h, ev), nil
	}
}

// NewMux routes events to registered handlers by their Table field.
func NewMux(reg *cruddy.Registry) HandlerFunc {
	return func(ctx context.Context, ev Event) (map[string]any, error) {
		h, err := reg.Get(ev.Table)
		if err != nil {
			return nil, fmt.Errorf("no handler for table %q", ev.Table)
		}
		return invoke(ctx, h, ev), nil
	}
}

// Start runs the Lambda runtime with a handler for a single table.
func Start(h *cruddy.Handler) {
	awslambda.Start(NewHandler(h))
}

// StartMux runs the Lambda runtime with table-based routing.
func StartMux(reg *cruddy.Registry) {
	awslambda.Start(NewMux(reg))
}

func invoke(ctx context.Context, h *cruddy.Handler, ev Event) map[string]any {
	item := ev.Item
	if item == nil {
		item = cruddy.Item{}
	}
	if ev.ID != "" {
		item["id"] = ev.ID
	}
	if ev.Query != "" {
		item["query"] = ev.Query
	}

	// Dispatch does not decrypt; an explicit decrypting get goes straight
	// to the handler method, which still enforces the allow-list.
	if ev.Operation == "get" && ev.Decrypt {
		id, _ := item["id"].(string)
		return h.Get(ctx, id, true).Flatten()
	}
	return h.Dispatch(ctx, ev.Operation, item).Flatten()
}
