// Package sqlerr recognises unique-key violations across the SQL drivers the order store has
// run on and turns them into domain errors.
package sqlerr

import (
	"errors"
	"strings"

	"commerce/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation    = "23505"
	mysqlDuplicateEntry  = "Error 1062"
	oracleUniqueViolated = "ORA-00001"
)

// IsUniqueViolation reports whether err was raised by a unique index or primary key.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}

	msg := err.Error()
	return strings.Contains(msg, mysqlDuplicateEntry) || strings.Contains(msg, oracleUniqueViolated)
}

// TranslateError maps a unique violation raised while saving an order to DuplicateOrderError.
// Other errors are returned unchanged.
func TranslateError(err error, orderNumber string) error {
	if IsUniqueViolation(err) {
		return errs.NewDuplicateOrderError(orderNumber, err)
	}
	return err
}
