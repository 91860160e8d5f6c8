// internal/checkout/order.go
package checkout

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bookstall/internal/cart"
	"bookstall/internal/pricing"
)

// OrderLine is one entry of the Items field.
type OrderLine struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	Qty   int     `json:"qty"`
	Unit  float64 `json:"unit"`
}

// OrderRequest is the payload sent to the order notifier. Items carries the
// order lines as a JSON-encoded string.
type OrderRequest struct {
	OrderID       string `json:"OrderID"`
	Name          string `json:"Name"`
	Email         string `json:"Email"`
	Address       string `json:"Address"`
	Country       string `json:"Country"`
	Items         string `json:"Items"`
	TotalAmount   string `json:"TotalAmount"`
	PaymentMethod string `json:"PaymentMethod"`
}

// NewOrderID returns a fresh identifier for one submission attempt.
func NewOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString())
}

// NewOrderRequest snapshots the cart and buyer into an order payload.
func NewOrderRequest(orderID string, buyer Buyer, lines []cart.Line, total float64, domestic string) (OrderRequest, error) {
	orderLines := make([]OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, OrderLine{
			ID:    line.ID,
			Title: line.Title,
			Qty:   line.Quantity,
			Unit:  line.UnitPrice,
		})
	}

	items, err := json.Marshal(orderLines)
	if err != nil {
		return OrderRequest{}, fmt.Errorf("failed to marshal order items: %w", err)
	}

	return OrderRequest{
		OrderID:       orderID,
		Name:          strings.TrimSpace(buyer.Name),
		Email:         strings.TrimSpace(buyer.Email),
		Address:       strings.TrimSpace(buyer.Address),
		Country:       strings.TrimSpace(buyer.Country),
		Items:         string(items),
		TotalAmount:   pricing.Fixed2(total),
		PaymentMethod: PaymentMethod(buyer.Country, domestic),
	}, nil
}
