package domain

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

type PayoutKind string

const (
	PayoutKindCPA      PayoutKind = "cpa"
	PayoutKindFixed    PayoutKind = "fixed"
	PayoutKindCPAFixed PayoutKind = "cpa_fixed"
)

// amountPattern is the only accepted wire form for money.
var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// MaxAmount is the exclusive upper bound of a NUMERIC(10,2) column.
var MaxAmount = decimal.New(1, 8)

func (k PayoutKind) Valid() bool {
	switch k {
	case PayoutKindCPA, PayoutKindFixed, PayoutKindCPAFixed:
		return true
	}
	return false
}

// NeedsCPA reports whether the kind carries a CPA amount.
func (k PayoutKind) NeedsCPA() bool {
	return k == PayoutKindCPA || k == PayoutKindCPAFixed
}

// NeedsFixed reports whether the kind carries a fixed amount.
func (k PayoutKind) NeedsFixed() bool {
	return k == PayoutKindFixed || k == PayoutKindCPAFixed
}

// Payout is a payout value. CPAAmount is set iff Kind.NeedsCPA, FixedAmount
// iff Kind.NeedsFixed.
type Payout struct {
	Kind        PayoutKind
	CPAAmount   *decimal.Decimal
	FixedAmount *decimal.Decimal
}

// ParseAmount parses a monetary string such as "25" or "25.00".
func ParseAmount(s string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: amount %q must use decimal notation (e.g. \"25.00\")", ErrInvalidPayout, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q: %v", ErrInvalidPayout, s, err)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: amount must be greater than 0", ErrInvalidPayout)
	}
	if d.GreaterThanOrEqual(MaxAmount) {
		return decimal.Zero, fmt.Errorf("%w: amount must be less than %s", ErrInvalidPayout, MaxAmount.String())
	}
	return d, nil
}

// ParsePayout builds a validated payout from request fields. A nil amount
// was not supplied; every non-nil amount, including "", must parse.
func ParsePayout(kind PayoutKind, cpaAmount, fixedAmount *string) (Payout, error) {
	p := Payout{Kind: kind}
	if cpaAmount != nil {
		d, err := ParseAmount(*cpaAmount)
		if err != nil {
			return Payout{}, fmt.Errorf("cpaAmount: %w", err)
		}
		p.CPAAmount = &d
	}
	if fixedAmount != nil {
		d, err := ParseAmount(*fixedAmount)
		if err != nil {
			return Payout{}, fmt.Errorf("fixedAmount: %w", err)
		}
		p.FixedAmount = &d
	}
	if err := Validate(p); err != nil {
		return Payout{}, err
	}
	return p, nil
}

// NewPayout is ParsePayout for literal amounts, where "" means absent.
func NewPayout(kind PayoutKind, cpaAmount, fixedAmount string) (Payout, error) {
	return ParsePayout(kind, optional(cpaAmount), optional(fixedAmount))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Validate checks the kind/field presence rule and that every present
// amount is positive with at most two fractional digits.
func Validate(p Payout) error {
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: payout type must be \"cpa\", \"fixed\", or \"cpa_fixed\"", ErrInvalidPayout)
	}

	switch {
	case p.Kind.NeedsCPA() && p.CPAAmount == nil:
		return fmt.Errorf("%w: CPA amount is required for this payout type", ErrInvalidPayout)
	case !p.Kind.NeedsCPA() && p.CPAAmount != nil:
		return fmt.Errorf("%w: CPA amount is not allowed for this payout type", ErrInvalidPayout)
	case p.Kind.NeedsFixed() && p.FixedAmount == nil:
		return fmt.Errorf("%w: fixed amount is required for this payout type", ErrInvalidPayout)
	case !p.Kind.NeedsFixed() && p.FixedAmount != nil:
		return fmt.Errorf("%w: fixed amount is not allowed for this payout type", ErrInvalidPayout)
	}

	for _, amount := range []*decimal.Decimal{p.CPAAmount, p.FixedAmount} {
		if amount == nil {
			continue
		}
		if !amount.IsPositive() {
			return fmt.Errorf("%w: amount must be greater than 0", ErrInvalidPayout)
		}
		if amount.GreaterThanOrEqual(MaxAmount) {
			return fmt.Errorf("%w: amount must be less than %s", ErrInvalidPayout, MaxAmount.String())
		}
		if !amount.Equal(amount.Truncate(2)) {
			return fmt.Errorf("%w: amount %s has more than 2 decimal places", ErrInvalidPayout, amount.String())
		}
	}
	return nil
}

// Normalize drops any amount the kind does not use. Stored rows and partial
// requests may carry such leftovers; comparisons must never see them.
func Normalize(kind PayoutKind, cpaAmount, fixedAmount *decimal.Decimal) Payout {
	p := Payout{Kind: kind}
	if kind.NeedsCPA() && cpaAmount != nil {
		d := *cpaAmount
		p.CPAAmount = &d
	}
	if kind.NeedsFixed() && fixedAmount != nil {
		d := *fixedAmount
		p.FixedAmount = &d
	}
	return p
}

// Normalized returns p with unused amounts removed.
func (p Payout) Normalized() Payout {
	return Normalize(p.Kind, p.CPAAmount, p.FixedAmount)
}

// Equal compares the normalized forms of a and b by kind and by numeric
// value of every amount the kind uses, so "25.0" equals "25.00".
func Equal(a, b Payout) bool {
	a, b = a.Normalized(), b.Normalized()
	if a.Kind != b.Kind {
		return false
	}
	return amountsEqual(a.CPAAmount, b.CPAAmount) && amountsEqual(a.FixedAmount, b.FixedAmount)
}

func amountsEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// FormatAmount renders an amount with exactly two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
