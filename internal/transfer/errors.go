package transfer

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrAuthenticationRequired means the active wallet carries no private key,
	// or the transfer is not for the active wallet.
	ErrAuthenticationRequired = errors.New("authentication required: private key is not available")
	// ErrInvalidState is returned by Confirm when no transfer awaits approval.
	ErrInvalidState = errors.New("no transfer awaiting approval")
	// ErrFlowBusy is returned while a prepare, sign or execute call is outstanding.
	ErrFlowBusy = errors.New("transfer flow is busy")
)

// TransferRejectedError is returned when the prepare phase is declined.
// Reason is shown to the user as is.
type TransferRejectedError struct {
	Reason string
	Err    error
}

func (e *TransferRejectedError) Error() string {
	return e.Reason
}

func (e *TransferRejectedError) Unwrap() error {
	return e.Err
}

// TransferFailedError is returned when signing or execution fails after approval.
type TransferFailedError struct {
	Phase  string
	Reason string
	Err    error
}

func (e *TransferFailedError) Error() string {
	return e.Reason
}

func (e *TransferFailedError) Unwrap() error {
	return e.Err
}

// CooldownError is returned by Prepare while the post-transfer cooldown runs.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active, please wait %v", e.Remaining.Round(time.Second))
}
