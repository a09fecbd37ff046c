/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cruddy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/cruddy/errors"
)

// Item is an unordered mapping from attribute name to value. The "id"
// attribute is the table hash key; "created_at" and "modified_at" are
// handler-managed epoch-millisecond timestamps.
type Item map[string]any

// Handler exposes generic CRUD operations against a single hash-keyed
// DynamoDB table, normalizing every outcome into a Response envelope.
//
// A Handler is safe for concurrent use: all fields are written once during
// construction and read-only afterwards.
type Handler struct {
	client    DynamoDBAPI
	kms       KMSAPI
	table     string
	indexes   map[string]string
	defaults  map[string]any
	supported map[string]struct{}
	encrypted []EncryptedAttribute
	debug     bool
	logger    *slog.Logger
}

// New constructs a Handler over an existing DynamoDB client. The table's
// key schema is introspected once; construction fails fast if the table
// does not have a single hash key named "id".
func New(ctx context.Context, client DynamoDBAPI, cfg Config) (*Handler, error) {
	return NewWithKMS(ctx, client, nil, cfg)
}

// NewWithKMS constructs a Handler with an explicit KMS client for
// encrypted attributes.
func NewWithKMS(ctx context.Context, client DynamoDBAPI, kmsClient KMSAPI, cfg Config) (*Handler, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(cfg.EncryptedAttributes) > 0 && kmsClient == nil {
		return nil, fmt.Errorf("cruddy: encrypted attributes configured but no KMS client provided")
	}

	h := &Handler{
		client:    client,
		kms:       kmsClient,
		table:     cfg.TableName,
		indexes:   make(map[string]string),
		defaults:  cfg.Defaults,
		supported: make(map[string]struct{}, len(cfg.SupportedOps)),
		encrypted: cfg.EncryptedAttributes,
		debug:     cfg.Debug,
		logger:    slog.Default(),
	}
	for _, op := range cfg.SupportedOps {
		h.supported[strings.ToLower(op)] = struct{}{}
	}

	if err := h.analyzeTable(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("cruddy handler initialized",
		"table", h.table, "indexes", len(h.indexes))
	return h, nil
}

// SetLogger replaces the handler's logger. Call before the handler is
// shared between goroutines.
func (h *Handler) SetLogger(logger *slog.Logger) {
	if logger != nil {
		h.logger = logger
	}
}

// TableName returns the backing table name.
func (h *Handler) TableName() string {
	return h.table
}

// Indexes returns a copy of the attribute→index map built at construction.
func (h *Handler) Indexes() map[string]string {
	indexes := make(map[string]string, len(h.indexes))
	for k, v := range h.indexes {
		indexes[k] = v
	}
	return indexes
}

// analyzeTable validates the key schema and builds the index map from the
// table's global secondary indexes. GSIs with composite keys are skipped;
// only single-attribute hash indexes are queryable.
func (h *Handler) analyzeTable(ctx context.Context) error {
	out, err := h.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(h.table),
	})
	if err != nil {
		return fmt.Errorf("failed to describe table %q: %w", h.table, err)
	}

	schema := out.Table.KeySchema
	if len(schema) != 1 {
		return errors.NewKeySchemaError(h.table, "cruddy does not support RANGE keys")
	}
	if name := aws.ToString(schema[0].AttributeName); name != "id" {
		return errors.NewKeyNameError(h.table, name)
	}

	for _, gsi := range out.Table.GlobalSecondaryIndexes {
		if len(gsi.KeySchema) != 1 {
			continue
		}
		attr := aws.ToString(gsi.KeySchema[0].AttributeName)
		h.indexes[attr] = aws.ToString(gsi.IndexName)
	}
	return nil
}

// checkSupported short-circuits operations outside the allow-list.
func (h *Handler) checkSupported(op string, resp *Response) bool {
	if _, ok := h.supported[op]; !ok {
		resp.fail(ErrorTypeUnsupportedOperation, errors.NewUnsupportedOperationError(op).Error())
		return false
	}
	return true
}

// fillDefaults populates missing item fields from the defaults map,
// resolving token values.
func (h *Handler) fillDefaults(item Item) {
	for key, def := range h.defaults {
		if _, ok := item[key]; ok {
			continue
		}
		item[key] = resolveToken(def)
	}
}

// Create fills missing defaults (generating a fresh id and creation
// timestamp), copies created_at into modified_at, encrypts configured
// attributes and writes the item unconditionally. The stored item is
// returned as the envelope data.
func (h *Handler) Create(ctx context.Context, item Item) *Response {
	resp := newResponse(h.debug)
	if h.checkSupported("create", resp) {
		stored := copyItem(item)
		h.fillDefaults(stored)
		stored["modified_at"] = stored["created_at"]
		h.putItem(ctx, stored, resp)
	}
	resp.Prepare()
	return resp
}

// Update refreshes modified_at, encrypts configured attributes and writes
// the full item unconditionally. There is no partial-update merge and no
// concurrency check; the last writer wins.
func (h *Handler) Update(ctx context.Context, item Item) *Response {
	resp := newResponse(h.debug)
	if h.checkSupported("update", resp) {
		stored := copyItem(item)
		stored["modified_at"] = tokenGenerators["timestamp"]()
		h.putItem(ctx, stored, resp)
	}
	resp.Prepare()
	return resp
}

func (h *Handler) putItem(ctx context.Context, item Item, resp *Response) {
	if err := h.encryptAttributes(ctx, item); err != nil {
		h.logger.Debug("encrypt failed", "table", h.table, "error", err)
		resp.failFromError(err)
		return
	}
	av, err := attributevalue.MarshalMap(map[string]any(item))
	if err != nil {
		resp.failFromError(err)
		return
	}
	out, err := h.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(h.table),
		Item:      av,
	})
	if err != nil {
		h.logger.Debug("PutItem failed", "table", h.table, "error", err)
		resp.failFromError(err)
		return
	}
	resp.Raw = out
	resp.Data = item
}

// Get performs a strongly consistent point read. A missing item yields a
// NotFound error on the envelope. When decrypt is true, configured
// encrypted attributes are restored to plaintext.
func (h *Handler) Get(ctx context.Context, id string, decrypt bool) *Response {
	resp := newResponse(h.debug)
	if !h.checkSupported("get", resp) {
		resp.Prepare()
		return resp
	}
	if id == "" {
		resp.fail(ErrorTypeIDRequired, "Get requires an id")
		resp.Prepare()
		return resp
	}

	out, err := h.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(h.table),
		Key:            hashKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		h.logger.Debug("GetItem failed", "table", h.table, "error", err)
		resp.failFromError(err)
		resp.Prepare()
		return resp
	}
	resp.Raw = out

	if out.Item == nil {
		resp.fail(ErrorTypeNotFound, errors.NewNotFoundError(id).Error())
		resp.Prepare()
		return resp
	}

	item := decodeItem(out.Item)
	if decrypt {
		if err := h.decryptAttributes(ctx, item); err != nil {
			h.logger.Debug("decrypt failed", "table", h.table, "error", err)
			resp.failFromError(err)
			resp.Prepare()
			return resp
		}
	}
	resp.Data = item
	resp.Prepare()
	return resp
}

// Delete removes the item with the given id. Deleting an absent item is
// indistinguishable from success.
func (h *Handler) Delete(ctx context.Context, id string) *Response {
	resp := newResponse(h.debug)
	if h.checkSupported("delete", resp) {
		if id == "" {
			resp.fail(ErrorTypeIDRequired, "Delete requires an id")
		} else {
			out, err := h.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(h.table),
				Key:       hashKey(id),
			})
			if err != nil {
				h.logger.Debug("DeleteItem failed", "table", h.table, "error", err)
				resp.failFromError(err)
			} else {
				resp.Raw = out
			}
		}
	}
	resp.Prepare()
	return resp
}

// List returns every item in the table from a single unpaginated scan.
func (h *Handler) List(ctx context.Context) *Response {
	resp := newResponse(h.debug)
	if h.checkSupported("list", resp) {
		out, err := h.client.Scan(ctx, &dynamodb.ScanInput{
			TableName: aws.String(h.table),
		})
		if err != nil {
			h.logger.Debug("Scan failed", "table", h.table, "error", err)
			resp.failFromError(err)
		} else {
			resp.Raw = out
			resp.Data = decodeItems(out.Items)
		}
	}
	resp.Prepare()
	return resp
}

// Query evaluates a single "attribute=value" equality expression against
// the index map. Only equality on a single indexed attribute is supported.
func (h *Handler) Query(ctx context.Context, queryString string) *Response {
	resp := newResponse(h.debug)
	if !h.checkSupported("query", resp) {
		resp.Prepare()
		return resp
	}

	eq := strings.Index(queryString, "=")
	if eq < 0 {
		resp.fail(ErrorTypeInvalidQuery, "Only the = operation is supported")
		resp.Prepare()
		return resp
	}
	key := queryString[:eq]
	value := queryString[eq+1:]

	indexName, ok := h.indexes[key]
	if !ok {
		resp.fail(ErrorTypeInvalidQuery, fmt.Sprintf("Attribute %s is not indexed", key))
		resp.Prepare()
		return resp
	}

	out, err := h.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(h.table),
		IndexName:                aws.String(indexName),
		KeyConditionExpression:   aws.String("#attr = :value"),
		ExpressionAttributeNames: map[string]string{"#attr": key},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":value": &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		h.logger.Debug("Query failed", "table", h.table, "index", indexName, "error", err)
		resp.failFromError(err)
		resp.Prepare()
		return resp
	}
	resp.Raw = out
	resp.Data = decodeItems(out.Items)
	resp.Prepare()
	return resp
}

// Dispatch routes a named operation to the corresponding handler method.
// The id for get/delete and the expression for query are read from the
// item payload.
func (h *Handler) Dispatch(ctx context.Context, operation string, item Item) *Response {
	op := strings.ToLower(operation)
	resp := newResponse(h.debug)
	if !h.checkSupported(op, resp) {
		resp.Prepare()
		return resp
	}
	switch op {
	case "list":
		return h.List(ctx)
	case "get":
		return h.Get(ctx, stringField(item, "id"), false)
	case "create":
		return h.Create(ctx, item)
	case "update":
		return h.Update(ctx, item)
	case "delete":
		return h.Delete(ctx, stringField(item, "id"))
	case "query":
		return h.Query(ctx, stringField(item, "query"))
	}
	resp.Prepare()
	return resp
}

func hashKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func decodeItems(raw []map[string]types.AttributeValue) []Item {
	items := make([]Item, len(raw))
	for i, r := range raw {
		items[i] = decodeItem(r)
	}
	return items
}

func copyItem(item Item) Item {
	dup := make(Item, len(item)+2)
	for k, v := range item {
		dup[k] = v
	}
	return dup
}

func stringField(item Item, key string) string {
	if item == nil {
		return ""
	}
	s, _ := item[key].(string)
	return s
}
