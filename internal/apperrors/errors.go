package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current state")

// Validation errors. Always surfaced to the caller with full detail lists,
// never retried automatically.
var (
	// ErrInvalidAmount indicates an unparsable monetary amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrAccountsNotFound indicates that one or more referenced accounts do not
	// resolve to an active account. The wrapping error lists every missing reference.
	ErrAccountsNotFound = errors.New("accounts not found")

	// ErrAccountRelationMismatch indicates ledger lines whose detail account does
	// not belong to the referenced general account.
	ErrAccountRelationMismatch = errors.New("detail account does not belong to general account")

	// ErrUnbalancedJournal indicates that a batch's debit and credit totals differ.
	ErrUnbalancedJournal = errors.New("ledger batch does not balance")
)

// State-conflict errors. Callers may retry with corrected input; the engine
// itself never retries.
var (
	// ErrAlreadyPosted indicates a posting run already covers the target date.
	ErrAlreadyPosted = errors.New("date already posted")

	// ErrNothingToPost indicates no pending ledger lines exist for the target date.
	ErrNothingToPost = errors.New("nothing to post")

	// ErrCannotUnpost indicates that journal aggregates for the date already had
	// their balances applied; they must be reverted first.
	ErrCannotUnpost = errors.New("cannot unpost: balances already applied for date")

	// ErrNothingToUnpost indicates no posted ledger lines exist for the target date.
	ErrNothingToUnpost = errors.New("nothing to unpost")

	// ErrPeriodClosed indicates the period result for the year is locked.
	ErrPeriodClosed = errors.New("period is closed")

	// ErrReferenceCollision indicates a generated batch reference already exists;
	// the whole batch is rejected and the caller should retry with a fresh token.
	ErrReferenceCollision = errors.New("batch reference collision")
)

// Integrity errors. Fatal for the current transaction; it is always aborted fully.
var (
	// ErrAccountDetailNotFound indicates a journal aggregate references a detail
	// account number that no longer resolves.
	ErrAccountDetailNotFound = errors.New("detail account not found")

	// ErrResultAccountNotFound indicates the equity account designated to receive
	// the period net result does not exist.
	ErrResultAccountNotFound = errors.New("net result equity account not found")

	// ErrHasDependents indicates an account cannot be deleted because ledger lines
	// or child accounts still reference it.
	ErrHasDependents = errors.New("account has dependents")
)

// AppError carries an error with an HTTP-ish status code and a message for
// repository-level failures that have no dedicated sentinel.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that unwraps to ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
