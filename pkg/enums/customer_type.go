package enums

import "fmt"

// CustomerType is the commercial classification assigned during onboarding.
type CustomerType string

const (
	CustomerTypeCPF            CustomerType = "CPF"
	CustomerTypeCNPJ           CustomerType = "CNPJ"
	CustomerTypeAdvec          CustomerType = "ADVEC"
	CustomerTypeReseller       CustomerType = "REVENDEDOR"
	CustomerTypeRepresentative CustomerType = "REPRESENTANTE"
	CustomerTypeNone           CustomerType = ""
)

var validCustomerTypes = []CustomerType{
	CustomerTypeCPF,
	CustomerTypeCNPJ,
	CustomerTypeAdvec,
	CustomerTypeReseller,
	CustomerTypeRepresentative,
}

// String implements fmt.Stringer.
func (c CustomerType) String() string {
	return string(c)
}

// IsChurch reports whether the customer is a standard church account
// (CPF or CNPJ, not ADVEC-affiliated).
func (c CustomerType) IsChurch() bool {
	return c == CustomerTypeCPF || c == CustomerTypeCNPJ
}

// IsValid reports whether the value is a known CustomerType.
func (c CustomerType) IsValid() bool {
	for _, candidate := range validCustomerTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerType converts raw input into a CustomerType. The empty string
// is accepted and means "no classification".
func ParseCustomerType(value string) (CustomerType, error) {
	if value == "" {
		return CustomerTypeNone, nil
	}
	for _, candidate := range validCustomerTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer type %q", value)
}
