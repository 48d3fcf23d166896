// Package errs provides the error types shared by the commerce domain, application and adapters.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrValueIsRequired, ErrOrderNotPersisted, ...) usable with errors.Is
//   - a struct carrying the details, usable with errors.As
//   - NewX and NewXWithCause constructors
//   - Error() producing a single-line message and Unwrap() returning the sentinel
//
// Generic validation errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
// ObjectNotFoundError, VersionIsInvalidError) sit next to the order-management taxonomy:
// OrderNotPersistedError, ServiceError, InvalidUnlockerError, IllegalReturnStateError,
// DuplicateOrderError and the import/export PopulationRuntimeError / PopulationRollbackError pair.
package errs
