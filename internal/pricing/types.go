package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

// CartItem is an immutable product snapshot taken at calculation time.
type CartItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	Title          string    `json:"title"`
	UnitPriceCents int       `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
}

// SubtotalCents returns the line total for the item.
func (i CartItem) SubtotalCents() int {
	return i.UnitPriceCents * i.Quantity
}

// CustomerProfile is the commercial classification the resolver prices
// against. All fields are inputs; the resolver never loads data itself.
type CustomerProfile struct {
	Type                  enums.CustomerType
	OnboardingComplete    bool
	SellerDiscountPercent decimal.Decimal
	// CategoryDiscounts maps category code to a discount percentage. Only
	// meaningful for representative-linked customers.
	CategoryDiscounts map[string]decimal.Decimal
}

// ItemDiscount is the per-item breakdown produced by the representative
// category policy.
type ItemDiscount struct {
	ProductID     uuid.UUID       `json:"product_id"`
	Title         string          `json:"title"`
	Category      string          `json:"category,omitempty"`
	Percent       decimal.Decimal `json:"percent"`
	DiscountCents int             `json:"discount_cents"`
}

// TraceEntry is one auditable line recording which policy and percentage
// applied to an item. Callers must log every entry; support relies on these
// for dispute resolution.
type TraceEntry struct {
	ProductID     uuid.UUID            `json:"product_id"`
	Title         string               `json:"title"`
	Policy        enums.DiscountPolicy `json:"policy"`
	Percent       decimal.Decimal      `json:"percent"`
	DiscountCents int                  `json:"discount_cents"`
}

// CalculatedDiscount is the outcome of one resolution. Exactly one policy
// tag is chosen per calculation and TotalCents is always
// SubtotalCents - DiscountCents.
type CalculatedDiscount struct {
	SubtotalCents int                  `json:"subtotal_cents"`
	Policy        enums.DiscountPolicy `json:"policy"`
	Percent       decimal.Decimal      `json:"percent"`
	DiscountCents int                  `json:"discount_cents"`
	TotalCents    int                  `json:"total_cents"`
	Tier          string               `json:"faixa,omitempty"`
	SpecialItems  []string             `json:"special_items,omitempty"`
	Items         []ItemDiscount       `json:"items,omitempty"`

	Trace []TraceEntry `json:"-"`
}
