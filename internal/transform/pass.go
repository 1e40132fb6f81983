package transform

import (
	"fmt"

	"github.com/rgehrsitz/passrefund/internal/domain"
	"github.com/shopspring/decimal"
)

// SetTier changes the pass tier. Fares are left as they are.
type SetTier struct {
	Tier domain.PassTier
}

func (s *SetTier) Name() string {
	return "set_tier"
}

func (s *SetTier) Description() string {
	return fmt.Sprintf("Treat the pass as a %s pass", s.Tier)
}

func (s *SetTier) Validate(base *domain.RefundCase) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base case cannot be nil", nil)
	}
	if !s.Tier.IsValid() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("unsupported tier %d", int(s.Tier)), nil)
	}
	return nil
}

func (s *SetTier) Apply(base *domain.RefundCase) (*domain.RefundCase, error) {
	modified := base.DeepCopy()
	modified.Tier = s.Tier
	return modified, nil
}

// SetPurchasePrice changes the price paid for the pass.
type SetPurchasePrice struct {
	Amount decimal.Decimal
}

func (s *SetPurchasePrice) Name() string {
	return "set_price"
}

func (s *SetPurchasePrice) Description() string {
	return fmt.Sprintf("Set the purchase price to %s", domain.FormatYen(s.Amount))
}

func (s *SetPurchasePrice) Validate(base *domain.RefundCase) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base case cannot be nil", nil)
	}
	if !s.Amount.IsPositive() {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", s.Amount), nil)
	}
	return nil
}

func (s *SetPurchasePrice) Apply(base *domain.RefundCase) (*domain.RefundCase, error) {
	modified := base.DeepCopy()
	modified.PurchasePrice = s.Amount
	return modified, nil
}

// SetKind switches the rule a case is refunded under.
type SetKind struct {
	Kind domain.RefundKind
}

func (s *SetKind) Name() string {
	return "set_kind"
}

func (s *SetKind) Description() string {
	return fmt.Sprintf("Refund under the %s rule", s.Kind)
}

func (s *SetKind) Validate(base *domain.RefundCase) error {
	if base == nil {
		return NewTransformError(s.Name(), "validate", "base case cannot be nil", nil)
	}
	if s.Kind != domain.KindRegular && s.Kind != domain.KindSectionChange {
		return NewTransformError(s.Name(), "validate", fmt.Sprintf("unknown refund kind %q", s.Kind), nil)
	}
	return nil
}

func (s *SetKind) Apply(base *domain.RefundCase) (*domain.RefundCase, error) {
	modified := base.DeepCopy()
	modified.Kind = s.Kind
	return modified, nil
}
