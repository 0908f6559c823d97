package domain

import (
	"fmt"
	"strings"
)

// UnresolvedSiteError reports requested site names the feed did not return.
// Names may be empty when the count check fails but every distinct requested
// name was returned (e.g. a duplicated request).
type UnresolvedSiteError struct {
	Names []string
}

func (e *UnresolvedSiteError) Error() string {
	return fmt.Sprintf("the following beaches do not exist in the Beachwatch database: [%s]",
		strings.Join(e.Names, ", "))
}

// MalformedFeatureError reports a feature whose required top-level key is
// missing or has the wrong shape. Reason is empty when the key is missing.
type MalformedFeatureError struct {
	Key    string
	Reason string
}

func (e *MalformedFeatureError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("malformed feature: %q %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("malformed feature: missing %q", e.Key)
}

// FieldError reports a property that is present but cannot be coerced into
// its expected type.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("field %s: invalid value %s", e.Field, e.Value)
	}
	return fmt.Sprintf("field %s: invalid value %s: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
