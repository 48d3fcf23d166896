package importexport

import (
	"encoding/xml"

	"commerce/internal/core/domain/model/catalog"
	"commerce/internal/core/domain/model/kernel"
	"commerce/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ProductSkuDTO is the feed record of a product sku.
type ProductSkuDTO struct {
	XMLName             xml.Name      `xml:"productsku"`
	GUID                string        `xml:"guid"`
	SkuCode             string        `xml:"skucode"`
	ProductCode         string        `xml:"productcode"`
	Availability        string        `xml:"availability"`
	Shippable           bool          `xml:"shippable"`
	Shipping            DimensionsDTO `xml:"shippingproperties"`
	PreOrBackOrderLimit int           `xml:"preorbackorderlimit"`
}

// DimensionsDTO holds decimal strings; an empty value means zero.
type DimensionsDTO struct {
	Weight string `xml:"weight"`
	Height string `xml:"height"`
	Width  string `xml:"width"`
	Length string `xml:"length"`
}

type ProductSkuAdapter struct{}

func NewProductSkuAdapter() ProductSkuAdapter {
	return ProductSkuAdapter{}
}

func (a ProductSkuAdapter) PopulateDTO(sku *catalog.ProductSku) ProductSkuDTO {
	dims := sku.Dimensions()
	return ProductSkuDTO{
		GUID:         sku.GUID().String(),
		SkuCode:      sku.SkuCode(),
		ProductCode:  sku.ProductCode(),
		Availability: sku.AvailabilityCriteria().String(),
		Shippable:    sku.IsShippable(),
		Shipping: DimensionsDTO{
			Weight: dims.Weight.String(),
			Height: dims.Height.String(),
			Width:  dims.Width.String(),
			Length: dims.Length.String(),
		},
		PreOrBackOrderLimit: sku.PreOrBackOrderLimit(),
	}
}

// PopulateDomain builds a new sku from dto. A missing identifier rolls the unit back; an
// unknown availability or a negative dimension fails the record.
func (a ProductSkuAdapter) PopulateDomain(dto ProductSkuDTO) (*catalog.ProductSku, error) {
	if err := requireFields(dto.SkuCode,
		requiredField{"guid", dto.GUID},
		requiredField{"skucode", dto.SkuCode},
		requiredField{"productcode", dto.ProductCode},
		requiredField{"availability", dto.Availability},
	); err != nil {
		return nil, err
	}

	guid, err := kernel.UUIDFromString(dto.GUID)
	if err != nil {
		return nil, errs.NewPopulationRollbackErrorWithCause(CodeRequiredFieldMissing, err, "guid", dto.SkuCode)
	}

	criteria, err := catalog.ParseAvailabilityCriteria(dto.Availability)
	if err == nil {
		err = criteria.Validate()
	}
	if err != nil {
		return nil, errs.NewPopulationRuntimeErrorWithCause(CodeUnknownAvailability, err, dto.Availability)
	}

	dims, err := a.populateDimensions(dto)
	if err != nil {
		return nil, err
	}

	return catalog.NewProductSku(guid, dto.SkuCode, dto.ProductCode, criteria, dto.Shippable, dims,
		dto.PreOrBackOrderLimit)
}

func (a ProductSkuAdapter) populateDimensions(dto ProductSkuDTO) (catalog.Dimensions, error) {
	values := make([]decimal.Decimal, 0, 4)
	for _, f := range []requiredField{
		{"weight", dto.Shipping.Weight},
		{"height", dto.Shipping.Height},
		{"width", dto.Shipping.Width},
		{"length", dto.Shipping.Length},
	} {
		value := decimal.Zero
		if f.value != "" {
			parsed, err := decimal.NewFromString(f.value)
			if err != nil {
				return catalog.Dimensions{}, errs.NewPopulationRuntimeErrorWithCause(
					CodeNegativeDimension, err, f.name, dto.SkuCode)
			}
			value = parsed
		}
		if value.IsNegative() {
			return catalog.Dimensions{}, errs.NewPopulationRuntimeError(CodeNegativeDimension, f.name, dto.SkuCode)
		}
		values = append(values, value)
	}

	return catalog.Dimensions{Weight: values[0], Height: values[1], Width: values[2], Length: values[3]}, nil
}
