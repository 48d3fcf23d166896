package catalog

import (
	"errors"
	"fmt"
	"strings"

	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"
	"commerce/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrProductSkuIsNotConstructed = errors.New("ProductSku must be created via NewProductSku constructor")

// Dimensions are the shippable measurements of a sku. None may be negative.
type Dimensions struct {
	Weight decimal.Decimal
	Height decimal.Decimal
	Width  decimal.Decimal
	Length decimal.Decimal
}

// Validate returns a ValueIsInvalidError naming the first negative dimension.
func (d Dimensions) Validate() error {
	named := []struct {
		name  string
		value decimal.Decimal
	}{
		{"weight", d.Weight}, {"height", d.Height}, {"width", d.Width}, {"length", d.Length},
	}
	for _, n := range named {
		if n.value.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(n.name, fmt.Errorf("%s is negative", n.value))
		}
	}
	return nil
}

// ProductSku is the purchasable unit an OrderSku refers to by GUID.
type ProductSku struct {
	guid                     kernel.UUID
	skuCode                  string
	productCode              string
	criteria                 AvailabilityCriteria
	shippable                bool
	dimensions               Dimensions
	preOrBackOrderLimit      int
	preOrBackOrderedQuantity int

	guard guard.ConstructorGuard
}

// NewProductSku creates a sku with no pre/back-orders taken yet.
func NewProductSku(
	guid kernel.UUID,
	skuCode, productCode string,
	criteria AvailabilityCriteria,
	shippable bool,
	dimensions Dimensions,
	preOrBackOrderLimit int,
) (*ProductSku, error) {
	sku := &ProductSku{
		shippable:           shippable,
		preOrBackOrderLimit: preOrBackOrderLimit,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		sku.setGUID(guid),
		sku.setSkuCode(skuCode),
		sku.setProductCode(productCode),
		sku.setCriteria(criteria),
		sku.setDimensions(dimensions),
	); err != nil {
		return nil, err
	}

	return sku, nil
}

// RestoreProductSku rebuilds a persisted sku including its running pre/back-ordered quantity.
func RestoreProductSku(
	guid kernel.UUID,
	skuCode, productCode string,
	criteria AvailabilityCriteria,
	shippable bool,
	dimensions Dimensions,
	preOrBackOrderLimit, preOrBackOrderedQuantity int,
) (*ProductSku, error) {
	sku, err := NewProductSku(guid, skuCode, productCode, criteria, shippable, dimensions, preOrBackOrderLimit)
	if err != nil {
		return nil, err
	}
	sku.preOrBackOrderedQuantity = preOrBackOrderedQuantity
	return sku, nil
}

func (s *ProductSku) Validate() error {
	if s == nil {
		return ErrProductSkuIsNotConstructed
	}
	return s.guard.Validate(ErrProductSkuIsNotConstructed)
}

func (s *ProductSku) GUID() kernel.UUID                          { return s.guid }
func (s *ProductSku) SkuCode() string                            { return s.skuCode }
func (s *ProductSku) ProductCode() string                        { return s.productCode }
func (s *ProductSku) AvailabilityCriteria() AvailabilityCriteria { return s.criteria }
func (s *ProductSku) IsShippable() bool                          { return s.shippable }
func (s *ProductSku) Dimensions() Dimensions                     { return s.dimensions }
func (s *ProductSku) PreOrBackOrderLimit() int                   { return s.preOrBackOrderLimit }
func (s *ProductSku) PreOrBackOrderedQuantity() int              { return s.preOrBackOrderedQuantity }

// PreOrBackOrderDetails reports the sku's own limit and running quantity.
func (s *ProductSku) PreOrBackOrderDetails() PreOrBackOrderDetails {
	return PreOrBackOrderDetails{
		SkuCode:  s.skuCode,
		Limit:    s.preOrBackOrderLimit,
		Quantity: s.preOrBackOrderedQuantity,
	}
}

// ReleasePreOrBackOrdered takes quantity off the running pre/back-ordered quantity, never below zero.
func (s *ProductSku) ReleasePreOrBackOrdered(quantity int) {
	s.addPreOrBackOrderedQuantity(-quantity)
}

func (s *ProductSku) addPreOrBackOrderedQuantity(quantity int) {
	s.preOrBackOrderedQuantity = max(s.preOrBackOrderedQuantity+quantity, 0)
}

func (s *ProductSku) setGUID(guid kernel.UUID) error {
	if err := guid.Validate(); err != nil {
		return err
	}
	s.guid = guid
	return nil
}

func (s *ProductSku) setSkuCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("sku code")
	}
	s.skuCode = code
	return nil
}

func (s *ProductSku) setProductCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("product code")
	}
	s.productCode = code
	return nil
}

func (s *ProductSku) setCriteria(criteria AvailabilityCriteria) error {
	if err := criteria.Validate(); err != nil {
		return err
	}
	s.criteria = criteria
	return nil
}

func (s *ProductSku) setDimensions(dimensions Dimensions) error {
	if err := dimensions.Validate(); err != nil {
		return err
	}
	s.dimensions = dimensions
	return nil
}
