package grocery

// Category groups grocery items into shopping sections.
type Category string

const (
	CategoryLegumes   Category = "legumes"
	CategoryFruits    Category = "fruits"
	CategoryProteines Category = "proteines"
	CategoryFrais     Category = "frais"
	CategoryEpicerie  Category = "epicerie"
	CategoryBoissons  Category = "boissons"
	CategorySurgeles  Category = "surgeles"
	CategoryAutre     Category = "autre"
)

// categoryOrder is the fixed shopping order used for sorting and display.
var categoryOrder = []Category{
	CategoryLegumes,
	CategoryFruits,
	CategoryProteines,
	CategoryFrais,
	CategoryEpicerie,
	CategoryBoissons,
	CategorySurgeles,
	CategoryAutre,
}

// categoryRank maps each category to its position in categoryOrder.
var categoryRank = func() map[Category]int {
	m := make(map[Category]int, len(categoryOrder))
	for i, c := range categoryOrder {
		m[c] = i
	}
	return m
}()

// MatchedProduct is the catalog product resolved for a grocery item.
type MatchedProduct struct {
	Name  string  `json:"name"`
	ID    string  `json:"id"` // catalog identifier or URL
	Price float64 `json:"price"`
	Score float64 `json:"score"`
}

// ListItem is one entry on the aggregated grocery list. Product stays
// nil until matching runs, and stays nil when no candidate clears the
// acceptance threshold.
type ListItem struct {
	IngredientName string          `json:"ingredient_name"` // canonical (lowercased, trimmed)
	TotalQuantity  float64         `json:"total_quantity"`  // in canonical unit
	Unit           string          `json:"unit"`
	Category       Category        `json:"category"`
	Product        *MatchedProduct `json:"product,omitempty"`
}

// List is the aggregated grocery list for one weekly plan.
type List struct {
	Week  string     `json:"week"`
	Items []ListItem `json:"items"`
}

// TotalItems returns the number of entries on the list.
func (l *List) TotalItems() int {
	return len(l.Items)
}

// ByCategory returns items grouped by category. Within a group the
// aggregation order (alphabetical) is preserved.
func (l *List) ByCategory() map[Category][]ListItem {
	result := make(map[Category][]ListItem)
	for _, item := range l.Items {
		result[item.Category] = append(result[item.Category], item)
	}
	return result
}
