package model

import "fmt"

// Macros holds nutritional values per portion.
type Macros struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// Ingredient is a single recipe ingredient with quantity and category.
type Ingredient struct {
	Name     string  `json:"name"`     // e.g. "tofu ferme"
	Quantity float64 `json:"quantity"` // e.g. 400
	Unit     string  `json:"unit"`     // e.g. "g", "ml", "pcs"
	Category string  `json:"category"` // e.g. "proteines", "legumes", "base"
}

// Recipe is a batch recipe with ingredients and metadata.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Servings     int          `json:"servings"` // portions the batch yields
	PrepTimeMin  int          `json:"prep_time_min"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Tags         []string     `json:"tags,omitempty"`
	Macros       *Macros      `json:"macros,omitempty"`
	Season       []string     `json:"season,omitempty"`
	StorageDays  int          `json:"storage_days,omitempty"`
	Reheatable   bool         `json:"reheatable,omitempty"`
}

// MealSlot places a recipe into the weekly plan.
type MealSlot struct {
	Day      string `json:"day"`       // "lundi" .. "dimanche"
	MealType string `json:"meal_type"` // "petit-dej", "lunch", "diner"
	RecipeID string `json:"recipe_id"`
	Portions int    `json:"portions"` // portions eaten, not batches cooked
}

// MealPlan is a full weekly plan.
type MealPlan struct {
	Week             string     `json:"week"` // ISO week, e.g. "2026-W06"
	Slots            []MealSlot `json:"slots"`
	PrepOrder        []string   `json:"prep_order,omitempty"` // batch-cooking order for Sunday
	TotalPrepTimeMin int        `json:"total_prep_time_min,omitempty"`
}

// Validate checks the recipe invariants.
func (r Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("recipe has no id")
	}
	if r.Servings < 1 {
		return fmt.Errorf("recipe %q: servings must be >= 1, got %d", r.ID, r.Servings)
	}
	for _, ing := range r.Ingredients {
		if ing.Quantity < 0 {
			return fmt.Errorf("recipe %q: ingredient %q has negative quantity", r.ID, ing.Name)
		}
	}
	return nil
}

// Validate checks the slot invariants. Recipe resolution is checked at
// aggregation time against the recipe set.
func (s MealSlot) Validate() error {
	if s.RecipeID == "" {
		return fmt.Errorf("meal slot %s/%s has no recipe", s.Day, s.MealType)
	}
	if s.Portions < 1 {
		return fmt.Errorf("meal slot %s/%s: portions must be >= 1, got %d", s.Day, s.MealType, s.Portions)
	}
	return nil
}

// Validate checks the plan invariants.
func (p MealPlan) Validate() error {
	if p.Week == "" {
		return fmt.Errorf("meal plan has no week identifier")
	}
	if len(p.Slots) == 0 {
		return fmt.Errorf("meal plan %s has no slots", p.Week)
	}
	for _, slot := range p.Slots {
		if err := slot.Validate(); err != nil {
			return err
		}
	}
	return nil
}
