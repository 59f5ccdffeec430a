// ABOUTME: Error values shared by the estimation engine and its callers
// ABOUTME: Contract violations are the only failures surfaced to API clients as 4xx

package models

import (
	"errors"
	"fmt"
)

// ErrContractViolation is the root of every error caused by a caller
// failing a precondition. Match with errors.Is.
var ErrContractViolation = errors.New("caller contract violation")

var (
	ErrMissingLocation   = fmt.Errorf("%w: district and station are required", ErrContractViolation)
	ErrEmptyCatalogue    = fmt.Errorf("%w: component catalogue is empty", ErrContractViolation)
	ErrInvalidWindow     = fmt.Errorf("%w: forecast end year precedes start year", ErrContractViolation)
	ErrMissingSystemType = fmt.Errorf("%w: system type is required", ErrContractViolation)
)

// ErrStationNotFound means the dataset has no observations for a station.
var ErrStationNotFound = errors.New("no rainfall records found for station")

// ContractError attaches the offending field to a contract violation.
type ContractError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ContractError) Unwrap() error {
	if e.Err == nil {
		return ErrContractViolation
	}
	return e.Err
}
