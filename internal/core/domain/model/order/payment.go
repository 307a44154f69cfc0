package order

import (
	"errors"
	"fmt"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var (
	// ErrPaymentAmountIsInvalid is returned when a payment of zero or less is recorded.
	ErrPaymentAmountIsInvalid = errs.NewValueIsInvalidError("payment amount must be greater than 0")

	// ErrPaymentIsNotConstructed is returned when using an improperly initialized Payment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")
)

// PaymentKind tags the instrument a payment was made with.
type PaymentKind int

const (
	// PaymentKindUnknown represents an invalid or undefined payment kind.
	PaymentKindUnknown PaymentKind = iota

	// PaymentKindCard is a credit or debit card payment.
	PaymentKindCard

	// PaymentKindCash is a cash-on-delivery payment.
	PaymentKindCash

	// PaymentKindGiftCertificate is a payment redeemed from a gift certificate.
	PaymentKindGiftCertificate
)

func getPaymentKindStrings() map[PaymentKind]string {
	return map[PaymentKind]string{
		PaymentKindUnknown:         "Unknown",
		PaymentKindCard:            "Card",
		PaymentKindCash:            "Cash",
		PaymentKindGiftCertificate: "GiftCertificate",
	}
}

// Validate checks if the PaymentKind is a member of the closed enumeration.
func (k PaymentKind) Validate() error {
	if _, ok := getPaymentKindStrings()[k]; !ok || k == PaymentKindUnknown {
		return errs.NewValueIsInvalidErrorWithCause("payment kind is invalid",
			fmt.Errorf("%d is not a valid payment kind", k))
	}
	return nil
}

// String returns the human-readable name of the payment kind.
// This method implements the fmt.Stringer interface.
func (k PaymentKind) String() string {
	if str, ok := getPaymentKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// Payment is an immutable value record of money received against an order.
// Payments are only ever appended; there are no partial edits or removals.
// A payment amount is always positive; refunds are out of the order's scope.
type Payment struct { //nolint:recvcheck //using for validation
	kind   PaymentKind
	amount kernel.Money
	guard  guard.ConstructorGuard
}

// NewPayment creates a payment of the given kind and positive amount.
// Returns ErrPaymentAmountIsInvalid when amount <= 0.
func NewPayment(kind PaymentKind, amount kernel.Money) (Payment, error) {
	payment := Payment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		payment.setKind(kind),
		payment.setAmount(amount),
	); err != nil {
		return Payment{}, err
	}

	return payment, nil
}

// Validate ensures the payment was created through NewPayment.
func (p Payment) Validate() error {
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

// Kind returns the payment instrument tag.
func (p Payment) Kind() PaymentKind {
	return p.kind
}

// Amount returns the paid amount. Always positive.
func (p Payment) Amount() kernel.Money {
	return p.amount
}

func (p *Payment) setKind(kind PaymentKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	p.kind = kind
	return nil
}

func (p *Payment) setAmount(amount kernel.Money) error {
	if !amount.IsPositive() {
		return ErrPaymentAmountIsInvalid
	}

	p.amount = amount
	return nil
}
