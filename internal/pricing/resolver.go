package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/rafaelmoret/comissoes-backend/pkg/enums"
)

var (
	oneHundred      = decimal.NewFromInt(100)
	advecSpecialPct = decimal.NewFromInt(50)
	advecBlanketPct = decimal.NewFromInt(40)
)

type ruleInput struct {
	cart          []CartItem
	profile       CustomerProfile
	catalog       *Catalog
	subtotalCents int
}

// rule pairs a predicate with its handler. Rules are evaluated in order and
// the first match wins; policies never combine.
type rule struct {
	name    string
	applies func(ruleInput) bool
	apply   func(ruleInput) CalculatedDiscount
}

var resolutionOrder = []rule{
	{name: "representative-category", applies: representativeApplies, apply: applyRepresentative},
	{name: "seller-assigned", applies: sellerApplies, apply: applySeller},
	{name: "advec", applies: advecApplies, apply: applyAdvec},
	{name: "setup-progressive", applies: setupApplies, apply: applySetup},
	{name: "reseller-escalating", applies: resellerApplies, apply: applyReseller},
}

// Resolve picks exactly one discount policy for the cart and computes the
// breakdown. It is pure: all data comes in through the arguments and a
// malformed profile degrades to "no discount" instead of failing, since
// checkout must always render a price.
func Resolve(cart []CartItem, profile CustomerProfile, catalog *Catalog) CalculatedDiscount {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	subtotal := 0
	for _, item := range cart {
		subtotal += item.SubtotalCents()
	}

	in := ruleInput{cart: cart, profile: profile, catalog: catalog, subtotalCents: subtotal}
	if subtotal <= 0 {
		return noDiscount(in)
	}

	for _, r := range resolutionOrder {
		if r.applies(in) {
			return r.apply(in)
		}
	}
	return noDiscount(in)
}

func representativeApplies(in ruleInput) bool {
	if in.profile.Type != enums.CustomerTypeRepresentative {
		return false
	}
	for _, pct := range in.profile.CategoryDiscounts {
		if pct.IsPositive() {
			return true
		}
	}
	return false
}

func applyRepresentative(in ruleInput) CalculatedDiscount {
	discount := decimal.Zero
	items := make([]ItemDiscount, 0, len(in.cart))
	trace := make([]TraceEntry, 0, len(in.cart))

	for _, item := range in.cart {
		category := in.catalog.CategoryOf(item)
		pct := in.profile.CategoryDiscounts[category]
		line := centsToDecimal(item.SubtotalCents()).Mul(pct).Div(oneHundred)
		discount = discount.Add(line)

		lineCents := decimalToCents(line)
		items = append(items, ItemDiscount{
			ProductID:     item.ProductID,
			Title:         item.Title,
			Category:      category,
			Percent:       pct,
			DiscountCents: lineCents,
		})
		if pct.IsPositive() {
			trace = append(trace, TraceEntry{
				ProductID:     item.ProductID,
				Title:         item.Title,
				Policy:        enums.DiscountPolicyRepresentative,
				Percent:       pct,
				DiscountCents: lineCents,
			})
		}
	}

	return finishResult(in, enums.DiscountPolicyRepresentative, discount, blendedPercent(decimalToCents(discount), in.subtotalCents), func(r *CalculatedDiscount) {
		r.Items = items
		r.Trace = trace
	})
}

func sellerApplies(in ruleInput) bool {
	return in.profile.SellerDiscountPercent.IsPositive()
}

func applySeller(in ruleInput) CalculatedDiscount {
	pct := in.profile.SellerDiscountPercent
	discount := centsToDecimal(in.subtotalCents).Mul(pct).Div(oneHundred)
	return finishResult(in, enums.DiscountPolicySeller, discount, pct.Round(2), func(r *CalculatedDiscount) {
		r.Trace = flatTrace(in.cart, enums.DiscountPolicySeller, pct)
	})
}

func advecApplies(in ruleInput) bool {
	return in.profile.Type == enums.CustomerTypeAdvec
}

func applyAdvec(in ruleInput) CalculatedDiscount {
	discount := decimal.Zero
	specials := []string{}
	trace := make([]TraceEntry, 0, len(in.cart))

	for _, item := range in.cart {
		pct := advecBlanketPct
		if in.catalog.IsAdvecSpecial(item) {
			pct = advecSpecialPct
			specials = append(specials, item.Title)
		}
		line := centsToDecimal(item.SubtotalCents()).Mul(pct).Div(oneHundred)
		discount = discount.Add(line)
		trace = append(trace, TraceEntry{
			ProductID:     item.ProductID,
			Title:         item.Title,
			Policy:        enums.DiscountPolicyAdvec50,
			Percent:       pct,
			DiscountCents: decimalToCents(line),
		})
	}

	// Legacy behavior: the 40% blanket still applies, but the policy tag
	// degrades to "nenhum" when nothing matched the 50% allow-list.
	policy := enums.DiscountPolicyAdvec50
	if len(specials) == 0 {
		policy = enums.DiscountPolicyNone
	}

	return finishResult(in, policy, discount, blendedPercent(decimalToCents(discount), in.subtotalCents), func(r *CalculatedDiscount) {
		r.SpecialItems = specials
		r.Trace = trace
	})
}

func setupApplies(in ruleInput) bool {
	return in.profile.Type.IsChurch() && in.profile.OnboardingComplete
}

func applySetup(in ruleInput) CalculatedDiscount {
	bracket, ok := in.catalog.SetupPercentFor(in.subtotalCents)
	if !ok {
		return noDiscount(in)
	}
	discount := centsToDecimal(in.subtotalCents).Mul(bracket.Percent).Div(oneHundred)
	return finishResult(in, enums.DiscountPolicySetup, discount, bracket.Percent.Round(2), func(r *CalculatedDiscount) {
		r.Tier = bracket.Label
		r.Trace = flatTrace(in.cart, enums.DiscountPolicySetup, bracket.Percent)
	})
}

func resellerApplies(in ruleInput) bool {
	return in.profile.Type == enums.CustomerTypeReseller
}

func applyReseller(in ruleInput) CalculatedDiscount {
	pct, ok := in.catalog.ResellerPercentFor(in.subtotalCents)
	if !ok {
		return noDiscount(in)
	}
	discount := centsToDecimal(in.subtotalCents).Mul(pct).Div(oneHundred)
	return finishResult(in, enums.DiscountPolicyReseller, discount, pct.Round(2), func(r *CalculatedDiscount) {
		r.Trace = flatTrace(in.cart, enums.DiscountPolicyReseller, pct)
	})
}

func noDiscount(in ruleInput) CalculatedDiscount {
	return CalculatedDiscount{
		SubtotalCents: in.subtotalCents,
		Policy:        enums.DiscountPolicyNone,
		Percent:       decimal.Zero,
		DiscountCents: 0,
		TotalCents:    in.subtotalCents,
	}
}

// finishResult rounds the accumulated discount to cents and enforces
// total = subtotal - discount.
func finishResult(in ruleInput, policy enums.DiscountPolicy, discount decimal.Decimal, percent decimal.Decimal, decorate func(*CalculatedDiscount)) CalculatedDiscount {
	discountCents := decimalToCents(discount)
	if discountCents > in.subtotalCents {
		discountCents = in.subtotalCents
	}

	result := CalculatedDiscount{
		SubtotalCents: in.subtotalCents,
		Policy:        policy,
		Percent:       percent,
		DiscountCents: discountCents,
		TotalCents:    in.subtotalCents - discountCents,
	}
	if decorate != nil {
		decorate(&result)
	}
	return result
}

func flatTrace(cart []CartItem, policy enums.DiscountPolicy, pct decimal.Decimal) []TraceEntry {
	trace := make([]TraceEntry, 0, len(cart))
	for _, item := range cart {
		line := centsToDecimal(item.SubtotalCents()).Mul(pct).Div(oneHundred)
		trace = append(trace, TraceEntry{
			ProductID:     item.ProductID,
			Title:         item.Title,
			Policy:        policy,
			Percent:       pct,
			DiscountCents: decimalToCents(line),
		})
	}
	return trace
}

func blendedPercent(discountCents, subtotalCents int) decimal.Decimal {
	if subtotalCents <= 0 {
		return decimal.Zero
	}
	return decimal.New(int64(discountCents), 0).
		Div(decimal.New(int64(subtotalCents), 0)).
		Mul(oneHundred).
		Round(2)
}

func centsToDecimal(cents int) decimal.Decimal {
	return decimal.New(int64(cents), -2)
}

func decimalToCents(d decimal.Decimal) int {
	return int(d.Round(2).Mul(oneHundred).IntPart())
}
