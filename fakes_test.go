/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cruddy_test

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/kms"
)

// fakeDynamoDB is an in-memory stand-in for the DynamoDB client, keyed by
// the "id" attribute like the real table.
type fakeDynamoDB struct {
	describeOut *dynamodb.DescribeTableOutput
	items       map[string]map[string]types.AttributeValue

	queryItems []map[string]types.AttributeValue

	lastGet   *dynamodb.GetItemInput
	lastPut   *dynamodb.PutItemInput
	lastQuery *dynamodb.QueryInput

	// err fails the next data-plane call when set.
	err error

	// dataCalls counts data-plane requests (everything but DescribeTable).
	dataCalls int
}

func newFakeDynamoDB(describeOut *dynamodb.DescribeTableOutput) *fakeDynamoDB {
	return &fakeDynamoDB{
		describeOut: describeOut,
		items:       make(map[string]map[string]types.AttributeValue),
	}
}

func (f *fakeDynamoDB) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return f.describeOut, nil
}

func (f *fakeDynamoDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.dataCalls++
	f.lastGet = params
	if f.err != nil {
		return nil, f.err
	}
	id, err := keyID(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := f.items[id]
	if !ok {
		return &dynamodb.GetItemOutput{}, nil
	}
	return &dynamodb.GetItemOutput{Item: item}, nil
}

func (f *fakeDynamoDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.dataCalls++
	f.lastPut = params
	if f.err != nil {
		return nil, f.err
	}
	id, err := keyID(params.Item)
	if err != nil {
		return nil, err
	}
	f.items[id] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamoDB) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.dataCalls++
	if f.err != nil {
		return nil, f.err
	}
	id, err := keyID(params.Key)
	if err != nil {
		return nil, err
	}
	delete(f.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamoDB) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.dataCalls++
	if f.err != nil {
		return nil, f.err
	}
	var items []map[string]types.AttributeValue
	for _, item := range f.items {
		items = append(items, item)
	}
	n := int32(len(items))
	return &dynamodb.ScanOutput{Items: items, Count: n, ScannedCount: n}, nil
}

func (f *fakeDynamoDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.dataCalls++
	f.lastQuery = params
	if f.err != nil {
		return nil, f.err
	}
	n := int32(len(f.queryItems))
	return &dynamodb.QueryOutput{Items: f.queryItems, Count: n, ScannedCount: n}, nil
}

func keyID(attrs map[string]types.AttributeValue) (string, error) {
	v, ok := attrs["id"]
	if !ok {
		return "", fmt.Errorf("fake: missing id attribute")
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("fake: id is not a string")
	}
	return s.Value, nil
}

// fakeKMS applies a reversible prefix so tests can tell ciphertext from
// plaintext without real key material.
type fakeKMS struct {
	encryptCalls int
	decryptCalls int
}

func (f *fakeKMS) Encrypt(ctx context.Context, params *kms.EncryptInput, optFns ...func(*kms.Options)) (*kms.EncryptOutput, error) {
	f.encryptCalls++
	blob := append([]byte(aws.ToString(params.KeyId)+"|"), params.Plaintext...)
	return &kms.EncryptOutput{CiphertextBlob: blob}, nil
}

func (f *fakeKMS) Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error) {
	f.decryptCalls++
	blob := params.CiphertextBlob
	for i, b := range blob {
		if b == '|' {
			return &kms.DecryptOutput{Plaintext: blob[i+1:]}, nil
		}
	}
	return nil, fmt.Errorf("fake: malformed ciphertext")
}

// --- DescribeTable fixtures ---

func hashTable(gsis ...types.GlobalSecondaryIndexDescription) *dynamodb.DescribeTableOutput {
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName: aws.String("widgets"),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
			GlobalSecondaryIndexes: gsis,
		},
	}
}

func hashIndex(name, attr string) types.GlobalSecondaryIndexDescription {
	return types.GlobalSecondaryIndexDescription{
		IndexName: aws.String(name),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(attr), KeyType: types.KeyTypeHash},
		},
	}
}

func compositeIndex(name, hashAttr, rangeAttr string) types.GlobalSecondaryIndexDescription {
	return types.GlobalSecondaryIndexDescription{
		IndexName: aws.String(name),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(hashAttr), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(rangeAttr), KeyType: types.KeyTypeRange},
		},
	}
}
