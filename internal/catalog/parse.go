// internal/catalog/parse.go
package catalog

import (
	"math"
	"strconv"
	"strings"
)

// amountReplacer strips the decorations sheet editors tend to type into number cells.
var amountReplacer = strings.NewReplacer(",", "", "₹", "", "%", "", " ", "")

// ParseRow converts a loosely typed feed row into an Item.
func ParseRow(row Row) Item {
	field := func(name string) string {
		return strings.TrimSpace(row[name])
	}

	amount, amountOK := parseNumber(field(FieldAmount))
	discount, discountOK := parseNumber(field(FieldDiscount))
	if !discountOK || discount < 0 {
		discount = 0
	}

	title := field(FieldTitle)
	author := field(FieldAuthor)

	return Item{
		ID:              Identity(field(FieldID), title, author),
		Title:           title,
		Author:          author,
		Category:        field(FieldCategory),
		Condition:       field(FieldCondition),
		Year:            field(FieldYear),
		ListedAmount:    amount,
		AmountValid:     amountOK,
		DiscountPercent: discount,
		CoverRef:        field(FieldCover),
		Status:          field(FieldStatus),
	}
}

func ParseRows(rows []Row) []Item {
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, ParseRow(row))
	}
	return items
}

// parseNumber returns 0 and false for anything that is not a finite number.
func parseNumber(raw string) (float64, bool) {
	cleaned := amountReplacer.Replace(raw)
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
