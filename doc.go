/*
Package cruddy is a thin CRUD adaptation layer over a single hash-keyed
DynamoDB table. It exposes create, update, get, delete, list and query
operations and normalizes every outcome — success, validation failure, or
provider error — into a uniform Response envelope.

All durability, indexing and query execution are delegated to DynamoDB.
cruddy's own responsibilities are deliberately small:

  - Table introspection: at construction the table's key schema is
    validated (a single hash key named "id") and an attribute→index map is
    built from the single-key global secondary indexes.
  - Default filling: newly created items receive a generated id, creation
    timestamp, and any configured defaults, with token values ("<uuid>",
    "<timestamp>", "<datetime>") resolved through an explicit generator table.
  - Attribute codec: numbers read back from DynamoDB are converted to
    int64 or float64, and configured attributes are encrypted via KMS on
    write and optionally decrypted on read.
  - Operation dispatch: named operations are routed through a configurable
    allow-list.

Basic Usage:

	cfg := cruddy.Config{
	    TableName: "widgets",
	    Region:    "us-east-1",
	}
	h, err := cruddy.Connect(ctx, cfg)
	if err != nil {
	    return err
	}

	resp := h.Create(ctx, cruddy.Item{"name": "sprocket"})
	if !resp.IsSuccessful() {
	    log.Printf("%s: %s", resp.ErrorType, resp.ErrorMessage)
	}

Operations never return Go errors; inspect the envelope instead. There are
no retries, no pagination and no transactions: each operation issues exactly
one DynamoDB request (two for an encrypted get with decryption).
*/
package cruddy
