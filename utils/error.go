package utils

import (
	"errors"
	"fmt"
)

var ErrorRecordNotFound = errors.New("record not found")

// ErrorInvalidInput marks malformed domain input (negative quantities,
// empty content to hash, bad NIT). Caller's fault, not retryable.
var ErrorInvalidInput = errors.New("invalid input")

// ErrorMissingCredential marks a configuration gap on the primary mail
// transport. The dispatcher falls back to SMTP only on this error.
var ErrorMissingCredential = errors.New("missing mail credential")

// DeliveryError is a transport-level failure (non-2xx response, timeout,
// SMTP refusal). Never retried automatically; the attempt is recorded as
// fallido.
type DeliveryError struct {
	Proveedor string
	Detalle   string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("envio fallido (%s): %s", e.Proveedor, e.Detalle)
}

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
