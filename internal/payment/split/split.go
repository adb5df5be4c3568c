package split

import "errors"

// Type identifies the split policy of a payment
type Type string

const (
	TypeEqual  Type = "EQUAL"
	TypeCustom Type = "CUSTOM"
	TypeProxy  Type = "PROXY"
)

// Share is one member's owed portion of a single payment, in yen
type Share struct {
	PaymentID int64 `json:"payment_id"`
	UserID    int64 `json:"user_id"`
	Amount    int64 `json:"amount"`
}

var (
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrNotFinite            = errors.New("amount must be a finite number")
	ErrInvalidMemberCount   = errors.New("member count must be a positive integer")
	ErrBeneficiaryIsPayer   = errors.New("beneficiary cannot be the payer")
	ErrBeneficiaryNotMember = errors.New("beneficiary is not a group member")
	ErrUnknownSplitType     = errors.New("unknown split type")
)

// ParseType validates a split type string from an API request
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeEqual, TypeCustom, TypeProxy:
		return Type(s), nil
	default:
		return "", ErrUnknownSplitType
	}
}
