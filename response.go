/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cruddy

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"
)

// Response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error types reported on the envelope for failures detected by the
// handler itself. Provider errors carry the provider's own type/code.
const (
	ErrorTypeUnsupportedOperation = "UnsupportedOperation"
	ErrorTypeInvalidQuery         = "InvalidQuery"
	ErrorTypeIDRequired           = "IDRequired"
	ErrorTypeNotFound             = "NotFound"
)

// Response is the uniform envelope returned by every operation. Errors are
// folded into the envelope rather than returned to the caller.
type Response struct {
	Status       string         `json:"status"`
	Data         any            `json:"data,omitempty"`
	ErrorType    string         `json:"error_type,omitempty"`
	ErrorCode    string         `json:"error_code,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`

	// Raw holds the raw provider response until Prepare runs; it survives
	// Prepare only in debug mode.
	Raw any `json:"-"`

	debug bool
}

func newResponse(debug bool) *Response {
	return &Response{Status: StatusSuccess, debug: debug}
}

// IsSuccessful reports whether the operation succeeded.
func (r *Response) IsSuccessful() bool {
	return r.Status == StatusSuccess
}

// fail marks the response as a handler-detected error.
func (r *Response) fail(errorType, message string) {
	r.Status = StatusError
	r.ErrorType = errorType
	r.ErrorMessage = message
}

// failFromError folds an underlying error into the envelope. AWS API errors
// keep their code, message and fault verbatim; anything else is captured as
// its Go type and message.
func (r *Response) failFromError(err error) {
	r.Status = StatusError
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		r.ErrorCode = apiErr.ErrorCode()
		r.ErrorMessage = apiErr.ErrorMessage()
		r.ErrorType = apiErr.ErrorFault().String()
		return
	}
	r.ErrorType = fmt.Sprintf("%T", err)
	r.ErrorMessage = err.Error()
}

// Prepare finalizes the envelope: result counts from scan/query responses
// move into Metadata, and the raw provider response is dropped unless the
// handler runs in debug mode.
func (r *Response) Prepare() {
	if r.Raw == nil {
		return
	}
	switch out := r.Raw.(type) {
	case *dynamodb.ScanOutput:
		r.Metadata = map[string]any{
			"count":         out.Count,
			"scanned_count": out.ScannedCount,
		}
	case *dynamodb.QueryOutput:
		r.Metadata = map[string]any{
			"count":         out.Count,
			"scanned_count": out.ScannedCount,
		}
	}
	if !r.debug {
		r.Raw = nil
	}
}

// Flatten returns the envelope as a plain map, suitable for JSON encoding
// in Lambda or CLI surfaces. The raw response is included only in debug mode.
func (r *Response) Flatten() map[string]any {
	flat := map[string]any{
		"status": r.Status,
	}
	if r.Data != nil {
		flat["data"] = r.Data
	}
	if r.ErrorType != "" {
		flat["error_type"] = r.ErrorType
	}
	if r.ErrorCode != "" {
		flat["error_code"] = r.ErrorCode
	}
	if r.ErrorMessage != "" {
		flat["error_message"] = r.ErrorMessage
	}
	if r.Metadata != nil {
		flat["metadata"] = r.Metadata
	}
	if r.debug && r.Raw != nil {
		flat["raw_response"] = r.Raw
	}
	return flat
}
