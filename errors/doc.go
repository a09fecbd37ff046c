/*
Package errors provides semantic error types for the cruddy library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound             = errors.New("item not found")
	    ErrIDRequired           = errors.New("id required")
	    ErrUnsupportedOperation = errors.New("unsupported operation")
	    ErrInvalidQuery         = errors.New("invalid query")
	    ErrKeySchema            = errors.New("unsupported key schema")
	    ErrKeyName              = errors.New("unsupported key name")
	)

Usage:

	// Check error type returned during handler construction
	h, err := cruddy.Connect(ctx, cfg)
	if err != nil {
	    if errors.Is(err, errors.ErrKeySchema) {
	        // Table has a composite (hash+range) key; cruddy only handles hash keys
	        return err
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewNotFoundError("123")
	err := errors.NewInvalidQueryError("Only the = operation is supported")

Operation methods never return these errors directly; they are folded into
the response envelope. The typed errors carry the envelope wording so both
surfaces stay consistent.
*/
package errors
