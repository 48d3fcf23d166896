package orderlock

// ValidationResult is the outcome of checking a presented lock before saving an edited order.
type ValidationResult int

const (
	UnknownResult ValidationResult = iota
	OrderIsLocked
	OrderWasModified
	OrderWasUnlocked
	LockIsAlien
	ValidatedSuccessfully
)

func (r ValidationResult) String() string {
	switch r {
	case OrderIsLocked:
		return "ORDER_IS_LOCKED"
	case OrderWasModified:
		return "ORDER_WAS_MODIFIED"
	case OrderWasUnlocked:
		return "ORDER_WAS_UNLOCKED"
	case LockIsAlien:
		return "LOCK_IS_ALIEN"
	case ValidatedSuccessfully:
		return "VALIDATED_SUCCESSFULLY"
	case UnknownResult:
	}
	return "UNKNOWN"
}

func (r ValidationResult) IsSuccess() bool {
	return r == ValidatedSuccessfully
}
