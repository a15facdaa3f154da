package complib

import "github.com/pkg/errors"

var (
	errNotFixedInputs = errors.New("complib: NOT gate input count is fixed")
	errBadInputCount  = errors.New("complib: input count must be at least 1")
	errBadSelBits     = errors.New("complib: selector width must be at least 1")
)
