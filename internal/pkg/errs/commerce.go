package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOrderNotPersisted  = errors.New("order is not persisted")
	ErrService            = errors.New("service error")
	ErrInvalidUnlocker    = errors.New("invalid unlocker")
	ErrIllegalReturnState = errors.New("illegal return state")
	ErrDuplicateOrder     = errors.New("duplicate order")
	ErrPopulationRuntime  = errors.New("population failed")
	ErrPopulationRollback = errors.New("population failed, import unit rolled back")
)

// OrderNotPersistedError is returned when a shipment is attached to an order that has no storage identity yet.
type OrderNotPersistedError struct {
	OrderNumber string
}

func NewOrderNotPersistedError(orderNumber string) *OrderNotPersistedError {
	return &OrderNotPersistedError{OrderNumber: orderNumber}
}

func (e *OrderNotPersistedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrOrderNotPersisted, e.OrderNumber))
}

func (e *OrderNotPersistedError) Unwrap() error {
	return ErrOrderNotPersisted
}

// ServiceError is a generic precondition failure raised by services
// (missing store code, unknown filter, exceeded returnable quantity).
type ServiceError struct {
	Message string
	Cause   error
}

func NewServiceError(message string) *ServiceError {
	return &ServiceError{Message: message}
}

func NewServiceErrorWithCause(message string, cause error) *ServiceError {
	return &ServiceError{Message: message, Cause: cause}
}

func (e *ServiceError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrService, e.Message), e.Cause)
}

func (e *ServiceError) Unwrap() error {
	return ErrService
}

// InvalidUnlockerError is returned when a user other than the owner releases an order lock.
type InvalidUnlockerError struct {
	OrderNumber string
	OwnerID     string
	UnlockerID  string
}

func NewInvalidUnlockerError(orderNumber, ownerID, unlockerID string) *InvalidUnlockerError {
	return &InvalidUnlockerError{OrderNumber: orderNumber, OwnerID: ownerID, UnlockerID: unlockerID}
}

func (e *InvalidUnlockerError) Error() string {
	return sanitize(fmt.Sprintf("%s: user %s cannot release the lock on order %s owned by user %s",
		ErrInvalidUnlocker, e.UnlockerID, e.OrderNumber, e.OwnerID))
}

func (e *InvalidUnlockerError) Unwrap() error {
	return ErrInvalidUnlocker
}

// IllegalReturnStateError is returned when a completed or cancelled return is edited.
type IllegalReturnStateError struct {
	RMACode string
	Status  string
}

func NewIllegalReturnStateError(rmaCode, status string) *IllegalReturnStateError {
	return &IllegalReturnStateError{RMACode: rmaCode, Status: status}
}

func (e *IllegalReturnStateError) Error() string {
	return sanitize(fmt.Sprintf("%s: return %s is %s", ErrIllegalReturnState, e.RMACode, e.Status))
}

func (e *IllegalReturnStateError) Unwrap() error {
	return ErrIllegalReturnState
}

// DuplicateOrderError is returned when saving an order violates a unique constraint.
type DuplicateOrderError struct {
	OrderNumber string
	Cause       error
}

func NewDuplicateOrderError(orderNumber string, cause error) *DuplicateOrderError {
	return &DuplicateOrderError{OrderNumber: orderNumber, Cause: cause}
}

func (e *DuplicateOrderError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrDuplicateOrder, e.OrderNumber), e.Cause)
}

func (e *DuplicateOrderError) Unwrap() error {
	return ErrDuplicateOrder
}

// PopulationRuntimeError is a field-level import failure identified by an IE code.
type PopulationRuntimeError struct {
	Code   string
	Params []string
	Cause  error
}

func NewPopulationRuntimeError(code string, params ...string) *PopulationRuntimeError {
	return &PopulationRuntimeError{Code: code, Params: params}
}

func NewPopulationRuntimeErrorWithCause(code string, cause error, params ...string) *PopulationRuntimeError {
	return &PopulationRuntimeError{Code: code, Params: params, Cause: cause}
}

func (e *PopulationRuntimeError) Error() string {
	return withCause(populationMessage(ErrPopulationRuntime, e.Code, e.Params), e.Cause)
}

func (e *PopulationRuntimeError) Unwrap() error {
	return ErrPopulationRuntime
}

// PopulationRollbackError means the whole import unit must be discarded.
type PopulationRollbackError struct {
	Code   string
	Params []string
	Cause  error
}

func NewPopulationRollbackError(code string, params ...string) *PopulationRollbackError {
	return &PopulationRollbackError{Code: code, Params: params}
}

func NewPopulationRollbackErrorWithCause(code string, cause error, params ...string) *PopulationRollbackError {
	return &PopulationRollbackError{Code: code, Params: params, Cause: cause}
}

func (e *PopulationRollbackError) Error() string {
	return withCause(populationMessage(ErrPopulationRollback, e.Code, e.Params), e.Cause)
}

func (e *PopulationRollbackError) Unwrap() error {
	return ErrPopulationRollback
}

func populationMessage(sentinel error, code string, params []string) string {
	if len(params) == 0 {
		return fmt.Sprintf("%s: %s", sentinel, code)
	}
	return fmt.Sprintf("%s: %s [%s]", sentinel, code, strings.Join(params, ", "))
}
