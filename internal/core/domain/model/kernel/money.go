package kernel

import (
	"fmt"

	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is an immutable amount in a currency. Amounts are always held at the currency scale,
// rounded half-up (half away from zero), so 10.005 USD is 10.01 USD.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney rounds amount to the currency scale.
func NewMoney(amount decimal.Decimal, cur Currency) (Money, error) {
	if err := cur.Validate(); err != nil {
		return Money{}, err
	}
	return cur.Amount(amount), nil
}

// ParseMoney builds Money from a decimal string and an ISO currency code.
func ParseMoney(amount, currencyCode string) (Money, error) {
	cur, err := ParseCurrency(currencyCode)
	if err != nil {
		return Money{}, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return cur.Amount(d), nil
}

// Amount builds Money in c without error handling; c is assumed valid.
func (c Currency) Amount(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(c.Scale()), currency: c}
}

// Zero is the zero amount in c.
func (c Currency) Zero() Money {
	return Money{amount: decimal.Zero, currency: c}
}

func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) Currency() Currency {
	return m.currency
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return m.currency.Amount(m.amount.Add(other.amount)), nil
}

func (m Money) Sub(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return m.currency.Amount(m.amount.Sub(other.amount)), nil
}

// Times multiplies by a quantity, as for unit price times line quantity.
func (m Money) Times(quantity int) Money {
	return m.currency.Amount(m.amount.Mul(decimal.NewFromInt(int64(quantity))))
}

// Cmp returns -1, 0 or +1; amounts in different currencies are not comparable.
func (m Money) Cmp(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	return m.amount.Cmp(other.amount), nil
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) IsEqual(other Money) bool {
	return m.currency.IsEqual(other.currency) && m.amount.Equal(other.amount)
}

func (m Money) Validate() error {
	return m.currency.Validate()
}

// String renders "USD 12.50".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.currency.Code(), m.amount.StringFixed(m.currency.Scale()))
}

func (m Money) sameCurrency(other Money) error {
	if !m.currency.IsEqual(other.currency) {
		return errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%s does not match %s", other.currency.Code(), m.currency.Code()),
		)
	}
	return nil
}
