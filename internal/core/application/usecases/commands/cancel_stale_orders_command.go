package commands

import (
	"errors"
	"time"

	"bookstore/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
	ErrMaxAgeIsInvalid = errors.New("max age must be greater than 0")
)

// CancelStaleOrdersCommand represents a request to cancel abandoned orders:
// orders still in "New" status with no recorded payments that are older than
// the given age. Issued periodically by the background cleanup job.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	maxAge time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to cancel orders older than maxAge.
func NewCancelStaleOrdersCommand(maxAge time.Duration) (CancelStaleOrdersCommand, error) {
	cmd := CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setMaxAge(maxAge); err != nil {
		return CancelStaleOrdersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// MaxAge returns how old an unpaid order must be before it is cancelled.
func (c CancelStaleOrdersCommand) MaxAge() time.Duration {
	return c.maxAge
}

func (c *CancelStaleOrdersCommand) setMaxAge(maxAge time.Duration) error {
	if maxAge <= 0 {
		return ErrMaxAgeIsInvalid
	}

	c.maxAge = maxAge
	return nil
}
