// internal/cart/domain.go
package cart

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrItemSold = errors.New("item is sold and cannot be added to the cart")
)

// Line is one book in the cart. UnitPrice is captured on the first add and kept
// even if the catalog is reloaded with a different price.
type Line struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	CoverURL  string  `json:"cover_url"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (l Line) LineTotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// Summary is published to subscribers after every cart mutation.
type Summary struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// ParseQuantity turns user input into a valid quantity. Anything that is not a
// positive integer becomes 1.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return clampQuantity(n)
}

func clampQuantity(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
