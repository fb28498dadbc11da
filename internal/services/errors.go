package services

import "errors"

// Validation errors surfaced to the client as 400s. The wording of the
// submission errors is fixed in internal/orderentry; these cover the
// master-data side.
var (
	ErrNameRequired      = errors.New("Name is required.")
	ErrNamePhoneRequired = errors.New("Customer name and phone are required.")
	ErrTooManyImages     = errors.New("too many images")
)
