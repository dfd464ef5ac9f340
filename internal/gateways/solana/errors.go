package solana

import (
	"errors"
	"fmt"
)

var ErrInvalidAmount = errors.New("payment amount must be positive")

// InsufficientFundsError is returned when the payer cannot cover a native payment.
type InsufficientFundsError struct {
	Required  uint64
	Available uint64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: available balance is %s SOL, %s SOL required",
		FormatSOL(e.Available), FormatSOL(e.Required))
}
