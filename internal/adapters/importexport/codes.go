// Package importexport converts catalog skus and orders to and from the XML records of the
// import/export feed. Population failures carry an IE code: a runtime error skips the field or
// record, a rollback error discards the whole import unit.
package importexport

import (
	"strings"

	"commerce/internal/pkg/errs"
)

const (
	CodeUnsupportedCurrency  = "IE-10000"
	CodeUnknownAvailability  = "IE-10301"
	CodeLocaleParseFailure   = "IE-10306"
	CodeRequiredFieldMissing = "IE-10309"
	CodeNegativeDimension    = "IE-10317"
)

type requiredField struct {
	name  string
	value string
}

// requireFields returns a rollback error naming the first blank field and the record.
func requireFields(record string, fields ...requiredField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return errs.NewPopulationRollbackError(CodeRequiredFieldMissing, f.name, record)
		}
	}
	return nil
}
