package enums

import "fmt"

// InstallmentOrigin identifies which settlement channel produced an
// installment series.
type InstallmentOrigin string

const (
	InstallmentOriginInvoiced    InstallmentOrigin = "faturado"
	InstallmentOriginMercadoPago InstallmentOrigin = "mercadopago"
	InstallmentOriginOnline      InstallmentOrigin = "online"
)

var validInstallmentOrigins = []InstallmentOrigin{
	InstallmentOriginInvoiced,
	InstallmentOriginMercadoPago,
	InstallmentOriginOnline,
}

// String implements fmt.Stringer.
func (o InstallmentOrigin) String() string {
	return string(o)
}

// IsValid reports whether the origin is recognized.
func (o InstallmentOrigin) IsValid() bool {
	for _, candidate := range validInstallmentOrigins {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseInstallmentOrigin converts a raw string into an InstallmentOrigin.
func ParseInstallmentOrigin(value string) (InstallmentOrigin, error) {
	for _, candidate := range validInstallmentOrigins {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid installment origin %q", value)
}
