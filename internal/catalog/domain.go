// internal/catalog/domain.go
package catalog

import (
	"errors"
	"strings"

	"bookstall/internal/pricing"
)

var (
	ErrFeedUnavailable = errors.New("catalog feed unavailable")
	ErrItemNotFound    = errors.New("catalog item not found")
)

// Field names recognised in feed rows. Matching is case-sensitive.
const (
	FieldID        = "ID"
	FieldTitle     = "BookName"
	FieldAuthor    = "Author"
	FieldCategory  = "Category"
	FieldCondition = "Condition"
	FieldYear      = "Year"
	FieldAmount    = "Amount"
	FieldDiscount  = "Discount"
	FieldCover     = "BookCover"
	FieldStatus    = "Status"
)

const (
	// AllCategories is the category value meaning "no filter".
	AllCategories    = "All"
	DefaultCategory  = "General"
	PlaceholderCover = "https://via.placeholder.com/300x400?text=No+Cover"

	statusSold = "sold"
)

// Row is one record of the tabular feed, keyed by header name.
type Row map[string]string

// Item represents a book offered in the catalog.
type Item struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Category        string  `json:"category,omitempty"`
	Condition       string  `json:"condition,omitempty"`
	Year            string  `json:"year,omitempty"`
	ListedAmount    float64 `json:"listed_amount"`
	AmountValid     bool    `json:"amount_valid"`
	DiscountPercent float64 `json:"discount_percent"`
	CoverRef        string  `json:"cover_ref,omitempty"`
	Status          string  `json:"status,omitempty"`
}

// IsSold reports whether the item is marked sold. Sold items cannot be bought.
func (i Item) IsSold() bool {
	return strings.EqualFold(strings.TrimSpace(i.Status), statusSold)
}

// Discounted reports whether a discount should be shown for the item.
func (i Item) Discounted() bool {
	return i.DiscountPercent > 0 && !i.IsSold()
}

func (i Item) EffectivePrice() float64 {
	return pricing.EffectivePrice(i.ListedAmount, i.DiscountPercent)
}

// CoverURL returns a directly fetchable cover image, or the placeholder.
func (i Item) CoverURL() string {
	if url, ok := NormalizeCoverURL(i.CoverRef); ok {
		return url
	}
	return PlaceholderCover
}

func (i Item) DisplayCategory() string {
	if i.Category == "" {
		return DefaultCategory
	}
	return i.Category
}

// Identity derives the cart key for a book: its ID, or title and author combined.
func Identity(id, title, author string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return strings.TrimSpace(title) + "|" + strings.TrimSpace(author)
}
