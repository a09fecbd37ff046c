/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cruddy

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/kms"
)

// decodeItem converts a raw DynamoDB item into native Go values. DynamoDB
// reports every number as an arbitrary-precision decimal string; integral
// values come back as int64 and fractional ones as float64, recursively
// through maps and lists.
func decodeItem(raw map[string]types.AttributeValue) Item {
	item := make(Item, len(raw))
	for k, v := range raw {
		item[k] = decodeValue(v)
	}
	return item
}

func decodeValue(av types.AttributeValue) any {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value
	case *types.AttributeValueMemberN:
		return decodeNumber(tv.Value)
	case *types.AttributeValueMemberBOOL:
		return tv.Value
	case *types.AttributeValueMemberNULL:
		return nil
	case *types.AttributeValueMemberB:
		return tv.Value
	case *types.AttributeValueMemberM:
		m := make(map[string]any, len(tv.Value))
		for k, v := range tv.Value {
			m[k] = decodeValue(v)
		}
		return m
	case *types.AttributeValueMemberL:
		l := make([]any, len(tv.Value))
		for i, v := range tv.Value {
			l[i] = decodeValue(v)
		}
		return l
	case *types.AttributeValueMemberSS:
		return tv.Value
	case *types.AttributeValueMemberNS:
		ns := make([]any, len(tv.Value))
		for i, n := range tv.Value {
			ns[i] = decodeNumber(n)
		}
		return ns
	case *types.AttributeValueMemberBS:
		return tv.Value
	default:
		return nil
	}
}

func decodeNumber(n string) any {
	if !strings.ContainsAny(n, ".eE") {
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return i
		}
	}
	f, err := strconv.ParseFloat(n, 64)
	if err != nil {
		// Out-of-range decimal; keep the provider's string form.
		return n
	}
	return f
}

// encryptAttributes replaces the plaintext of each configured attribute
// present in the item with base64-encoded KMS ciphertext.
func (h *Handler) encryptAttributes(ctx context.Context, item Item) error {
	for _, attr := range h.encrypted {
		v, ok := item[attr.Name]
		if !ok {
			continue
		}
		plaintext, ok := v.(string)
		if !ok {
			return fmt.Errorf("attribute %q is not a string, cannot encrypt", attr.Name)
		}
		out, err := h.kms.Encrypt(ctx, &kms.EncryptInput{
			KeyId:     aws.String(attr.KeyID),
			Plaintext: []byte(plaintext),
		})
		if err != nil {
			return err
		}
		item[attr.Name] = base64.StdEncoding.EncodeToString(out.CiphertextBlob)
	}
	return nil
}

// decryptAttributes reverses encryptAttributes for each configured
// attribute present in the item.
func (h *Handler) decryptAttributes(ctx context.Context, item Item) error {
	for _, attr := range h.encrypted {
		v, ok := item[attr.Name]
		if !ok {
			continue
		}
		encoded, ok := v.(string)
		if !ok {
			return fmt.Errorf("attribute %q is not a string, cannot decrypt", attr.Name)
		}
		blob, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return fmt.Errorf("attribute %q is not valid base64: %w", attr.Name, err)
		}
		out, err := h.kms.Decrypt(ctx, &kms.DecryptInput{CiphertextBlob: blob})
		if err != nil {
			return err
		}
		item[attr.Name] = string(out.Plaintext)
	}
	return nil
}
