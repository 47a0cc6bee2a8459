package edi

import "errors"

var (
	ErrMissingAuthorization = errors.New("edi: authorization is required")
	ErrMissingPatient       = errors.New("edi: authorization has no patient")
	ErrMissingProvider      = errors.New("edi: authorization has no provider")
	ErrMissingInsurance     = errors.New("edi: authorization has no insurance")
)
