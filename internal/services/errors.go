package services

import (
	"errors"
)

// Sentinel errors the handlers translate into HTTP statuses. Validation and
// policy violations map to 400, missing entities to 404, bad credentials to
// 401 and failed external calls to 500.
var (
	ErrCreatorNotFound    = errors.New("creator not found")
	ErrConditionsNotFound = errors.New("conditions not found for creator")
	ErrNotEarlyBird       = errors.New("creator is not early bird")
	ErrWindowExpired      = errors.New("the 10-day window to complete the conditions has passed")

	ErrNoWallet           = errors.New("no wallet address set for creator")
	ErrTxInvalid          = errors.New("transaction invalid or unconfirmed")
	ErrAmountMismatch     = errors.New("transaction amount does not match")
	ErrTxAlreadyProcessed = errors.New("transaction already processed")
	ErrDisbursement       = errors.New("failed to send funds to creator")

	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
