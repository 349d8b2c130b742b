package services

import "errors"

var (
	// ErrInvalidInput indicates a missing or unparseable form field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateMobile indicates the mobile number is already registered.
	ErrDuplicateMobile = errors.New("mobile number already registered")
	// ErrDuplicateEmail indicates the email address is already registered.
	ErrDuplicateEmail = errors.New("email address already registered")
	// ErrStoreUnavailable indicates no database connection is available.
	ErrStoreUnavailable = errors.New("store unavailable")
)
