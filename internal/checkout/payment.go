// internal/checkout/payment.go
package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"bookstall/internal/config"
	"bookstall/internal/pricing"
)

const (
	MethodUPI  = "UPI"
	MethodWise = "Wise"
)

// Instructions tell the buyer how to pay. They depend only on the country and total.
type Instructions struct {
	Method       string  `json:"method"`
	Country      string  `json:"country"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"total_display"`
	PayeeID      string  `json:"payee_id,omitempty"`
	PayeeName    string  `json:"payee_name,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	CopyText     string  `json:"copy_text,omitempty"`
	Message      string  `json:"message"`
}

// IsDomestic compares countries ignoring case and surrounding spaces.
func IsDomestic(country, domestic string) bool {
	return strings.EqualFold(strings.TrimSpace(country), strings.TrimSpace(domestic))
}

func PaymentMethod(country, domestic string) string {
	if IsDomestic(country, domestic) {
		return MethodUPI
	}
	return MethodWise
}

// BuildInstructions derives the payment instructions shown for country.
func BuildInstructions(cfg config.PaymentConfig, country string, total float64) Instructions {
	instr := Instructions{
		Method:       PaymentMethod(country, cfg.DomesticCountry),
		Country:      strings.TrimSpace(country),
		Total:        total,
		TotalDisplay: pricing.Display(total),
	}

	if instr.Method == MethodUPI && !cfg.UPIConfigured() {
		instr.Message = fmt.Sprintf("Pay %s via UPI. The seller will share the UPI ID with you", instr.TotalDisplay)
		return instr
	}
	if instr.Method == MethodUPI {
		instr.PayeeID = strings.TrimSpace(cfg.PayeeID)
		instr.PayeeName = cfg.PayeeName
		instr.Currency = cfg.Currency
		instr.CopyText = instr.PayeeID
		instr.Message = fmt.Sprintf("Pay %s via UPI to %s", instr.TotalDisplay, instr.PayeeID)
		return instr
	}

	instr.Message = fmt.Sprintf("An invoice for %s will be requested via Wise", instr.TotalDisplay)
	return instr
}

// DeepLink builds the upi:// payment link. Only domestic instructions have one.
func (i Instructions) DeepLink() (string, error) {
	if i.Method != MethodUPI || i.PayeeID == "" {
		return "", ErrNoPaymentLink
	}
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s&cu=%s",
		escapeVPA(i.PayeeID),
		escape(i.PayeeName),
		pricing.Fixed2(i.Total),
		escape(i.Currency),
	), nil
}

// ManualMessage is shown instead of submitting when no notifier is configured.
func (i Instructions) ManualMessage() string {
	if i.Method == MethodUPI && i.PayeeID == "" {
		return fmt.Sprintf("Please send your order details to the seller to receive the UPI ID for paying %s.", i.TotalDisplay)
	}
	if i.Method == MethodUPI {
		return fmt.Sprintf("Please pay %s via UPI to %s and send the payment screenshot with your order details to the seller.",
			i.TotalDisplay, i.PayeeID)
	}
	return fmt.Sprintf("Please contact the seller to request a Wise invoice for %s with your order details.", i.TotalDisplay)
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// escapeVPA keeps the '@' of a UPI address literal; several UPI apps read pa
// without decoding it.
func escapeVPA(s string) string {
	return strings.ReplaceAll(escape(s), "%40", "@")
}
