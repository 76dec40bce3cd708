package entity

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedInput = errors.New("malformed input")
	ErrMissingColumn  = fmt.Errorf("%w: missing column", ErrMalformedInput)
	ErrEmptyExtract   = fmt.Errorf("%w: extract has no rows", ErrMalformedInput)
	ErrNotFound       = errors.New("not found")
)

// Pipeline branches
const (
	BranchDocument = "document"
	BranchLoyalty  = "loyalty"
)

// BranchError reports the failure of one independent pipeline branch
type BranchError struct {
	Branch string
	Err    error
}

func (e *BranchError) Error() string {
	return fmt.Sprintf("%s branch failed: %v", e.Branch, e.Err)
}

func (e *BranchError) Unwrap() error {
	return e.Err
}
