package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rafaelmoret/comissoes-backend/api/responses"
	"github.com/rafaelmoret/comissoes-backend/api/validators"
	"github.com/rafaelmoret/comissoes-backend/internal/pricing"
	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
	pkgerrors "github.com/rafaelmoret/comissoes-backend/pkg/errors"
	"github.com/rafaelmoret/comissoes-backend/pkg/logger"
)

type quoteItemRequest struct {
	ProductID      uuid.UUID `json:"produto_id" validate:"required"`
	Title          string    `json:"titulo" validate:"required"`
	UnitPriceCents int       `json:"preco_unitario_cents" validate:"min=0"`
	Quantity       int       `json:"quantidade" validate:"min=1"`
}

type quoteCustomerRequest struct {
	Type                  string                     `json:"tipo" validate:"required"`
	OnboardingComplete    bool                       `json:"implantacao_concluida"`
	SellerDiscountPercent decimal.Decimal            `json:"desconto_vendedor"`
	CategoryDiscounts     map[string]decimal.Decimal `json:"descontos_categoria"`
}

type quoteRequest struct {
	Items    []quoteItemRequest   `json:"itens" validate:"required,min=1,dive"`
	Customer quoteCustomerRequest `json:"cliente" validate:"required"`
}

type quoteItemResponse struct {
	ProductID     uuid.UUID       `json:"produto_id"`
	Title         string          `json:"titulo"`
	Category      string          `json:"categoria"`
	Percent       decimal.Decimal `json:"percentual"`
	DiscountCents int             `json:"desconto_cents"`
}

type quoteResponse struct {
	SubtotalCents int                 `json:"subtotal_cents"`
	Policy        string              `json:"politica"`
	Percent       decimal.Decimal     `json:"percentual"`
	DiscountCents int                 `json:"desconto_cents"`
	TotalCents    int                 `json:"total_cents"`
	Tier          string              `json:"faixa,omitempty"`
	SpecialItems  []string            `json:"itens_especiais,omitempty"`
	Items         []quoteItemResponse `json:"itens,omitempty"`
}

// CheckoutQuote resolves the discount policy for a cart. A profile the rules
// do not recognize still quotes, it just carries no discount.
func CheckoutQuote(catalog *pricing.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rule catalog unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart := make([]pricing.CartItem, 0, len(payload.Items))
		for _, item := range payload.Items {
			cart = append(cart, pricing.CartItem{
				ProductID:      item.ProductID,
				Title:          item.Title,
				UnitPriceCents: item.UnitPriceCents,
				Quantity:       item.Quantity,
			})
		}
		profile := pricing.CustomerProfile{
			Type:                  enums.CustomerType(payload.Customer.Type),
			OnboardingComplete:    payload.Customer.OnboardingComplete,
			SellerDiscountPercent: payload.Customer.SellerDiscountPercent,
			CategoryDiscounts:     payload.Customer.CategoryDiscounts,
		}

		result := pricing.Resolve(cart, profile, catalog)
		logTrace(r, logg, result)

		items := make([]quoteItemResponse, 0, len(result.Items))
		for _, item := range result.Items {
			items = append(items, quoteItemResponse{
				ProductID:     item.ProductID,
				Title:         item.Title,
				Category:      item.Category,
				Percent:       item.Percent,
				DiscountCents: item.DiscountCents,
			})
		}

		responses.WriteSuccess(w, quoteResponse{
			SubtotalCents: result.SubtotalCents,
			Policy:        result.Policy.String(),
			Percent:       result.Percent,
			DiscountCents: result.DiscountCents,
			TotalCents:    result.TotalCents,
			Tier:          result.Tier,
			SpecialItems:  result.SpecialItems,
			Items:         items,
		})
	}
}

// logTrace emits one audit line per affected item so support can reconstruct
// which policy and percentage applied.
func logTrace(r *http.Request, logg *logger.Logger, result pricing.CalculatedDiscount) {
	if logg == nil {
		return
	}
	for _, entry := range result.Trace {
		ctx := logg.WithFields(r.Context(), map[string]any{
			"event":          "pricing.trace",
			"produto_id":     entry.ProductID,
			"titulo":         entry.Title,
			"politica":       entry.Policy.String(),
			"percentual":     entry.Percent,
			"desconto_cents": entry.DiscountCents,
		})
		logg.Info(ctx, "discount applied")
	}
}
