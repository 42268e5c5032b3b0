package services

import "errors"

// Business-rule rejections. Expected and recoverable: the caller matches
// them with errors.Is and continues. Storage failures are never wrapped in
// these; they surface through the internal/db taxonomy instead.
var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
	ErrAlreadyDecided      = errors.New("loan already decided")
	ErrInvalidRate         = errors.New("invalid interest rate")
	ErrInvalidAccountKind  = errors.New("invalid account kind")
	ErrInvalidCreditLimit  = errors.New("invalid credit limit")
	ErrNameRequired        = errors.New("name is required")

	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrAccountNotFound  = errors.New("account not found")
	ErrCardNotFound     = errors.New("credit card not found")
	ErrLoanNotFound     = errors.New("loan not found")
)

// IsRejection reports whether err is a business-rule rejection rather than
// a storage failure.
func IsRejection(err error) bool {
	for _, rejection := range []error{
		ErrInvalidAmount, ErrInsufficientFunds, ErrCreditLimitExceeded,
		ErrAlreadyDecided, ErrInvalidRate, ErrInvalidAccountKind,
		ErrInvalidCreditLimit, ErrNameRequired,
		ErrCustomerNotFound, ErrEmployeeNotFound, ErrAccountNotFound,
		ErrCardNotFound, ErrLoanNotFound,
	} {
		if errors.Is(err, rejection) {
			return true
		}
	}
	return false
}
