// internal/catalog/demo.go
package catalog

// DemoRows is shown when no feed has been configured. It covers a discounted
// book, an undiscounted one, a sold one, and books without a cover.
func DemoRows() []Row {
	return []Row{
		{FieldID: "1", FieldTitle: "Postal History of Travancore", FieldAuthor: "N.S. Mooss", FieldCategory: "Princely States", FieldCondition: "USED - FINE", FieldYear: "1984", FieldAmount: "4500", FieldDiscount: "0", FieldCover: "", FieldStatus: "Available"},
		{FieldID: "2", FieldTitle: "India: The 1854 Lithographs", FieldAuthor: "D.R. Martin", FieldCategory: "British India", FieldCondition: "USED - GOOD", FieldYear: "1928", FieldAmount: "12000", FieldDiscount: "10", FieldCover: "", FieldStatus: "Available"},
		{FieldID: "3", FieldTitle: "The Scinde Dawk", FieldAuthor: "L.E. Dawson", FieldCategory: "British India", FieldCondition: "USED - FINE", FieldYear: "1968", FieldAmount: "3500", FieldDiscount: "0", FieldCover: "", FieldStatus: "Sold"},
		{FieldID: "4", FieldTitle: "Maritime Mail of the Indian Ocean", FieldAuthor: "Philip Cockrill", FieldCategory: "Maritime", FieldCondition: "NEW", FieldYear: "1987", FieldAmount: "3200", FieldDiscount: "15", FieldCover: "", FieldStatus: "Available"},
	}
}
