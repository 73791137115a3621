package enums

import "fmt"

// DiscountPolicy tags which pricing rule won a checkout calculation.
// Exactly one policy applies per calculation.
type DiscountPolicy string

const (
	DiscountPolicyRepresentative DiscountPolicy = "representante"
	DiscountPolicySeller         DiscountPolicy = "vendedor"
	DiscountPolicyAdvec50        DiscountPolicy = "advec_50"
	DiscountPolicySetup          DiscountPolicy = "setup"
	DiscountPolicyReseller       DiscountPolicy = "revendedor"
	DiscountPolicyNone           DiscountPolicy = "nenhum"
)

var validDiscountPolicies = []DiscountPolicy{
	DiscountPolicyRepresentative,
	DiscountPolicySeller,
	DiscountPolicyAdvec50,
	DiscountPolicySetup,
	DiscountPolicyReseller,
	DiscountPolicyNone,
}

// String implements fmt.Stringer.
func (p DiscountPolicy) String() string {
	return string(p)
}

// IsValid reports whether the value is a known DiscountPolicy.
func (p DiscountPolicy) IsValid() bool {
	for _, candidate := range validDiscountPolicies {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseDiscountPolicy converts raw input into a DiscountPolicy.
func ParseDiscountPolicy(value string) (DiscountPolicy, error) {
	for _, candidate := range validDiscountPolicies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount policy %q", value)
}
