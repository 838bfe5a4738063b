package enums

import "fmt"

// PaymentMethod describes how an order is paid. Only cash on delivery is
// currently processed; the wallet and card methods are advertised but rejected
// at checkout until the gateway integration lands.
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodCard   PaymentMethod = "card"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCOD,
	PaymentMethodWallet,
	PaymentMethodCard,
}

// IsValid reports whether the value matches a known payment method.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// Supported reports whether the method can actually be processed today.
func (p PaymentMethod) Supported() bool {
	return p == PaymentMethodCOD
}

// ParsePaymentMethod converts the raw string to PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
