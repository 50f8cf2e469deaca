package contract

import "errors"

var (
	ErrContractNotFound  = errors.New("contract not found")
	ErrInvalidPaymentDay = errors.New("payment day must be between 1 and 31")
)
