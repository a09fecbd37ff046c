package lambda

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/cruddy"
)

// fakeTable is a minimal in-memory DynamoDB stand-in for adapter tests.
type fakeTable struct {
	items map[string]map[string]types.AttributeValue
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeTable) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName: params.TableName,
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
		},
	}, nil
}

func (f *fakeTable) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	id := params.Key["id"].(*types.AttributeValueMemberS).Value
	item, ok := f.items[id]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeTable) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	id := params.Item["id"].(*types.AttributeValueMemberS).Value
	f.items[id] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	id := params.Key["id"].(*types.AttributeValueMemberS).Value
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeTable) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	var items []map[string]types.AttributeValue
	for _, item := range f.items {
		items = append(items, item)
	}
	n := int32(len(items))
	return &dynamodb.ScanOutput{Items: items, Count: n, ScannedCount: n}, nil
}

func (f *fakeTable) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return &dynamodb.QueryOutput{}, nil
}

func newHandler(t *testing.T) *cruddy.Handler {
	t.Helper()
	h, err := cruddy.New(context.Background(), newFakeTable(), cruddy.Config{TableName: "widgets"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return h
}

func TestHandlerCreateAndGet(t *testing.T) {
	fn := NewHandler(newHandler(t))
	ctx := context.Background()

	out, err := fn(ctx, Event{Operation: "create", Item: cruddy.Item{"name": "sprocket"}})
	if err != nil {
		t.Fatalf("create invocation failed: %v", err)
	}
	if out["status"] != "success" {
		t.Fatalf("expected success, got %v", out)
	}
	id := out["data"].(cruddy.Item)["id"].(string)

	out, err = fn(ctx, Event{Operation: "get", ID: id})
	if err != nil {
		t.Fatalf("get invocation failed: %v", err)
	}
	if out["status"] != "success" {
		t.Fatalf("expected success, got %v", out)
	}
}

func TestHandlerUnsupportedOperation(t *testing.T) {
	fn := NewHandler(newHandler(t))

	out, err := fn(context.Background(), Event{Operation: "truncate"})
	if err != nil {
		t.Fatalf("invocation failed: %v", err)
	}
	if out["status"] != "error" {
		t.Fatalf("expected error envelope, got %v", out)
	}
	if out["error_type"] != "UnsupportedOperation" {
		t.Errorf("expected UnsupportedOperation, got %v", out["error_type"])
	}
}

func TestMuxRoutesByTable(t *testing.T) {
	reg := cruddy.NewRegistry()
	if err := reg.Register("widgets", newHandler(t)); err != nil {
		t.Fatal(err)
	}
	fn := NewMux(reg)
	ctx := context.Background()

	out, err := fn(ctx, Event{Table: "widgets", Operation: "list"})
	if err != nil {
		t.Fatalf("list invocation failed: %v", err)
	}
	if out["status"] != "success" {
		t.Fatalf("expected success, got %v", out)
	}

	if _, err := fn(ctx, Event{Table: "gadgets", Operation: "list"}); err == nil {
		t.Fatal("expected error for unregistered table")
	}
}
