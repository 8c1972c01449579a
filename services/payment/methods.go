package payment

import (
	"fmt"
	"strings"

	"globaled/models"
)

// BindAlipay appends a bound Alipay method unless the student already has one.
// The input student is not modified.
func BindAlipay(student *models.Student) (*models.Student, bool) {
	next := student.Clone()
	if HasAlipay(next) {
		return next, false
	}
	next.PaymentMethods = append(next.PaymentMethods, models.AlipayMethod{Bound: true})
	return next, true
}

// HasAlipay reports whether any Alipay method is attached.
func HasAlipay(student *models.Student) bool {
	for _, m := range student.PaymentMethods {
		if _, ok := m.(models.AlipayMethod); ok {
			return true
		}
	}
	return false
}

// AddCard appends a card derived from a raw card number. This is demo-only:
// there is no length or checksum validation and the number is not stored.
func AddCard(student *models.Student, cardNumber string) (*models.Student, models.CardMethod) {
	digits := normalizeCardNumber(cardNumber)
	card := models.CardMethod{
		Last4: lastN(digits, 4),
		Brand: CardBrandFor(digits),
	}
	next := student.Clone()
	next.PaymentMethods = append(next.PaymentMethods, card)
	return next, card
}

// CardBrandFor infers the brand from the leading digit, defaulting to visa.
func CardBrandFor(cardNumber string) models.CardBrand {
	switch {
	case strings.HasPrefix(cardNumber, "4"):
		return models.CardVisa
	case strings.HasPrefix(cardNumber, "5"):
		return models.CardMastercard
	case strings.HasPrefix(cardNumber, "3"):
		return models.CardAmex
	default:
		return models.CardVisa
	}
}

// ValidCardNumber reports whether the number, ignoring spaces and dashes, is at
// least four digits long and contains nothing but digits.
func ValidCardNumber(cardNumber string) bool {
	digits := normalizeCardNumber(cardNumber)
	if len(digits) < 4 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func normalizeCardNumber(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
}

func lastN(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

// BrandName is the display name of a card brand.
func BrandName(brand models.CardBrand) string {
	switch brand {
	case models.CardMastercard:
		return "Mastercard"
	case models.CardAmex:
		return "American Express"
	default:
		return "Visa"
	}
}

// MethodLabel renders a payment method for receipts and pickers.
func MethodLabel(method models.PaymentMethod) string {
	switch m := method.(type) {
	case models.AlipayMethod:
		return "Alipay"
	case models.CardMethod:
		return fmt.Sprintf("%s ending in %s", BrandName(m.Brand), m.Last4)
	default:
		return "Unknown"
	}
}
