// Package store describes the storefronts orders are placed in.
package store

import (
	"errors"
	"fmt"
	"strings"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"
)

var ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")

// Store is a storefront. Orders inherit its default currency and locale, and inventory for its
// orders is allocated from its warehouse.
type Store struct {
	code            string
	name            string
	warehouseID     int64
	defaultCurrency kernel.Currency
	defaultLocale   kernel.Locale

	guard guard.ConstructorGuard
}

func NewStore(
	code, name string,
	warehouseID int64,
	defaultCurrency kernel.Currency,
	defaultLocale kernel.Locale,
) (*Store, error) {
	s := &Store{name: name, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		s.setCode(code),
		s.setWarehouseID(warehouseID),
		defaultCurrency.Validate(),
		defaultLocale.Validate(),
	); err != nil {
		return nil, err
	}
	s.defaultCurrency = defaultCurrency
	s.defaultLocale = defaultLocale
	return s, nil
}

func (s *Store) Validate() error {
	if s == nil {
		return ErrStoreIsNotConstructed
	}
	return s.guard.Validate(ErrStoreIsNotConstructed)
}

func (s *Store) Code() string                     { return s.code }
func (s *Store) Name() string                     { return s.name }
func (s *Store) WarehouseID() int64               { return s.warehouseID }
func (s *Store) DefaultCurrency() kernel.Currency { return s.defaultCurrency }
func (s *Store) DefaultLocale() kernel.Locale     { return s.defaultLocale }

func (s *Store) setCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("store code")
	}
	s.code = code
	return nil
}

func (s *Store) setWarehouseID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("warehouse", fmt.Errorf("%d is not greater than 0", id))
	}
	s.warehouseID = id
	return nil
}
