package contract

import "errors"

var (
	ErrModelInvoke           = errors.New("model invoke failed")
	ErrSchemaViolation       = errors.New("model response violates schema")
	ErrPromptMissing         = errors.New("required prompt is missing")
	ErrValidation            = errors.New("validation failed")
	ErrClassifierUnavailable = errors.New("intent classifier unavailable")
	ErrMalformedResponse     = errors.New("intent classifier response is malformed")
	ErrUnknownWorker         = errors.New("unknown worker")
)
