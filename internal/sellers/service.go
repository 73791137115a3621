package sellers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
)

// Service resolves per-seller commission settings.
type Service interface {
	CommissionPercentFor(ctx context.Context, sellerID uuid.UUID) decimal.Decimal
}

type service struct {
	repo           Repository
	logg           *logger.Logger
	defaultPercent decimal.Decimal
}

// NewService builds the seller settings service. defaultPercent is applied
// whenever a seller is missing or carries no usable rate.
func NewService(repo Repository, logg *logger.Logger, defaultPercent decimal.Decimal) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sellers repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, defaultPercent: defaultPercent}, nil
}

// CommissionPercentFor never fails: settlement must not stall on a bad seller
// record, so lookup problems degrade to the configured default rate.
func (s *service) CommissionPercentFor(ctx context.Context, sellerID uuid.UUID) decimal.Decimal {
	ctx = s.logg.WithSellerID(ctx, sellerID.String())

	seller, err := s.repo.FindByID(ctx, sellerID)
	if err != nil {
		s.logg.Warn(ctx, "seller lookup failed, using default commission percent")
		return s.defaultPercent
	}
	if !seller.CommissionPercent.IsPositive() {
		s.logg.Warn(ctx, "seller has no commission percent, using default")
		return s.defaultPercent
	}
	return seller.CommissionPercent
}
