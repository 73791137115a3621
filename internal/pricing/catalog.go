package pricing

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdvecProduct identifies one entry of the 50%-off allow-list. Matching is
// by product id first, then by case-insensitive title substring.
type AdvecProduct struct {
	ProductID     uuid.UUID
	TitleContains string
}

// SetupBracket is one step of the progressive setup discount.
type SetupBracket struct {
	Label    string
	MinCents int
	// MaxCents of zero means the bracket is open-ended.
	MaxCents int
	Percent  decimal.Decimal
}

// PriceBracket is one step of the reseller escalating discount.
type PriceBracket struct {
	MinCents int
	MaxCents int
	Percent  decimal.Decimal
}

// Catalog carries the configured rule data the resolver prices against:
// category detection, the ADVEC allow-list and the discount brackets.
type Catalog struct {
	// ProductCategories maps known product ids to a category code.
	ProductCategories map[uuid.UUID]string
	// CategoryKeywords is the title-substring fallback for category
	// detection, keyed by category code.
	CategoryKeywords map[string][]string

	AdvecAllowList []AdvecProduct

	SetupBrackets    []SetupBracket
	ResellerBrackets []PriceBracket
}

// CategoryOf detects the category for an item, or returns the empty string.
func (c *Catalog) CategoryOf(item CartItem) string {
	if cat, ok := c.ProductCategories[item.ProductID]; ok {
		return cat
	}
	title := strings.ToLower(item.Title)
	for cat, keywords := range c.CategoryKeywords {
		for _, kw := range keywords {
			if kw != "" && strings.Contains(title, strings.ToLower(kw)) {
				return cat
			}
		}
	}
	return ""
}

// IsAdvecSpecial reports whether the item is on the 50%-off allow-list.
func (c *Catalog) IsAdvecSpecial(item CartItem) bool {
	for _, p := range c.AdvecAllowList {
		if p.ProductID != uuid.Nil && p.ProductID == item.ProductID {
			return true
		}
	}
	title := strings.ToLower(item.Title)
	for _, p := range c.AdvecAllowList {
		if p.TitleContains != "" && strings.Contains(title, strings.ToLower(p.TitleContains)) {
			return true
		}
	}
	return false
}

// SetupPercentFor returns the progressive discount bracket for a subtotal,
// or a zero bracket when the subtotal is zero.
func (c *Catalog) SetupPercentFor(subtotalCents int) (SetupBracket, bool) {
	if subtotalCents <= 0 {
		return SetupBracket{}, false
	}
	for _, b := range c.SetupBrackets {
		if subtotalCents >= b.MinCents && (b.MaxCents == 0 || subtotalCents <= b.MaxCents) {
			return b, true
		}
	}
	return SetupBracket{}, false
}

// ResellerPercentFor returns the escalating discount for a subtotal, or
// false when no bracket matches.
func (c *Catalog) ResellerPercentFor(subtotalCents int) (decimal.Decimal, bool) {
	for _, b := range c.ResellerBrackets {
		if subtotalCents >= b.MinCents && (b.MaxCents == 0 || subtotalCents <= b.MaxCents) {
			return b.Percent, true
		}
	}
	return decimal.Zero, false
}

// DefaultCatalog returns the production rule data.
func DefaultCatalog() *Catalog {
	return &Catalog{
		ProductCategories: map[uuid.UUID]string{},
		CategoryKeywords: map[string][]string{
			"livros":      {"livro", "bíblia", "biblia"},
			"materiais":   {"apostila", "manual", "revista"},
			"cursos":      {"curso", "treinamento"},
			"assinaturas": {"assinatura", "plano"},
		},
		AdvecAllowList: []AdvecProduct{
			{TitleContains: "kit boas-vindas"},
			{TitleContains: "manual do membro"},
			{TitleContains: "cartão de membro"},
			{TitleContains: "certificado"},
		},
		SetupBrackets: []SetupBracket{
			{Label: "Básico", MinCents: 1, MaxCents: 30_000, Percent: decimal.NewFromInt(20)},
			{Label: "Avançado", MinCents: 30_001, MaxCents: 50_000, Percent: decimal.NewFromInt(25)},
			{Label: "Premium", MinCents: 50_001, Percent: decimal.NewFromInt(30)},
		},
		ResellerBrackets: []PriceBracket{
			{MinCents: 29_990, MaxCents: 49_989, Percent: decimal.NewFromInt(20)},
			{MinCents: 49_990, MaxCents: 69_989, Percent: decimal.NewFromInt(25)},
			{MinCents: 69_990, Percent: decimal.NewFromInt(30)},
		},
	}
}
