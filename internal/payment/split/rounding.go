package split

import "math"

// EqualShare is the result of dividing an amount evenly: the per-person
// amount, the undistributable remainder, and the total that was actually
// distributed (remainder excluded).
type EqualShare struct {
	AmountPerPerson int64 `json:"amount_per_person"`
	Remainder       int64 `json:"remainder"`
	Total           int64 `json:"total"`
}

// FloorToYen floors a fractional currency amount to whole yen
func FloorToYen(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrNotFinite
	}
	if amount < 0 {
		return 0, ErrNegativeAmount
	}
	return int64(math.Floor(amount)), nil
}

// SplitEqually divides amount across memberCount people.
// The remainder is reported, never silently distributed; every call site
// that needs the total to balance must assign it to the payer. Both the
// equal-split calculator and the balance aggregator go through here so the
// remainder policy cannot drift between them.
func SplitEqually(amount int64, memberCount int) (EqualShare, error) {
	if amount < 0 {
		return EqualShare{}, ErrNegativeAmount
	}
	if memberCount <= 0 {
		return EqualShare{}, ErrInvalidMemberCount
	}

	perPerson := amount / int64(memberCount)
	remainder := amount - perPerson*int64(memberCount)

	return EqualShare{
		AmountPerPerson: perPerson,
		Remainder:       remainder,
		Total:           perPerson * int64(memberCount),
	}, nil
}
