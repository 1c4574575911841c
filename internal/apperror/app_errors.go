package apperror

import "errors"

var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrPurchaseFailed      = errors.New("purchase failed")
	ErrNoOwner             = errors.New("tile has no owner")
	ErrInvalidUtilityCount = errors.New("invalid utility count")
	ErrInvalidTile         = errors.New("invalid tile definition")
)
