/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cruddy

import (
	"regexp"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// Default values may be token strings that resolve to a generated value at
// create/update time. Token kinds are an explicit, closed set; anything not
// in the table passes through as a literal.

var tokenPattern = regexp.MustCompile(`^<([^\s<>]+)>$`)

var tokenGenerators = map[string]func() any{
	// "<uuid>" resolves to a fresh v4 UUID string.
	"uuid": func() any { return uuid.NewString() },

	// "<timestamp>" resolves to the current time in epoch milliseconds.
	"timestamp": func() any { return time.Now().UnixMilli() },

	// "<datetime>" resolves to the current time as an RFC 3339 string.
	"datetime": func() any { return strfmt.DateTime(time.Now().UTC()).String() },
}

// resolveToken returns the generated value for a recognized token string,
// or the input unchanged.
func resolveToken(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	m := tokenPattern.FindStringSubmatch(s)
	if m == nil {
		return v
	}
	gen, ok := tokenGenerators[m[1]]
	if !ok {
		return v
	}
	return gen()
}
