// Package grocery turns a weekly meal plan into a deduplicated,
// unit-normalized grocery list and renders it for delivery.
package grocery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ehautefa/mealbot/internal/model"
	"github.com/ehautefa/mealbot/internal/units"
)

// UnitConflictError reports two recipes declaring the same ingredient
// in incompatible unit kinds (e.g. grams vs milliliters). The plan
// cannot be aggregated until the upstream data is corrected.
type UnitConflictError struct {
	Ingredient string
	Have       units.Kind
	Got        units.Kind
}

func (e *UnitConflictError) Error() string {
	return fmt.Sprintf("ingredient %q aggregated as %s but also declared in a %s unit", e.Ingredient, e.Have, e.Got)
}

// Options configures aggregation. All tables are injected so tests can
// substitute controlled fixtures.
type Options struct {
	// PantryStaples are assumed always on hand and filtered from the
	// final list.
	PantryStaples []string
	// CategoryAliases maps recipe-level category strings ("légumes",
	// "viande", "base", ...) to shopping categories.
	CategoryAliases map[string]Category
	// CategoryOverrides maps canonical ingredient names directly to a
	// shopping category, taking precedence over CategoryAliases.
	CategoryOverrides map[string]Category
}

// DefaultOptions returns the built-in staple and category tables.
func DefaultOptions() Options {
	return Options{
		PantryStaples: []string{
			"sel", "poivre", "huile d'olive", "huile", "vinaigre",
			"sucre", "farine", "eau", "poivre noir", "sel fin", "gros sel",
		},
		CategoryAliases: map[string]Category{
			"legumes":   CategoryLegumes,
			"légumes":   CategoryLegumes,
			"fruits":    CategoryFruits,
			"proteines": CategoryProteines,
			"protéines": CategoryProteines,
			"viande":    CategoryProteines,
			"poisson":   CategoryProteines,
			"epicerie":  CategoryEpicerie,
			"épicerie":  CategoryEpicerie,
			"base":      CategoryEpicerie,
			"frais":     CategoryFrais,
			"surgeles":  CategorySurgeles,
			"surgelés":  CategorySurgeles,
			"boissons":  CategoryBoissons,
		},
	}
}

// CanonicalName normalizes an ingredient name for grouping. Grouping is
// exact-match only: fuzzy tolerance belongs to catalog matching, where
// a wrong merge costs a bad product instead of a conflated quantity.
func CanonicalName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// entry accumulates one distinct ingredient during aggregation.
type entry struct {
	name     string
	quantity float64
	kind     units.Kind
	category Category
}

// Aggregate builds the grocery list for a plan. Every slot's recipe is
// resolved and each ingredient contributes quantity × portions/servings.
// Any unit error aborts the whole build: a malformed plan must not
// produce a partial list that looks complete.
func Aggregate(plan model.MealPlan, recipes map[string]model.Recipe, opts Options) (*List, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	entries := make(map[string]*entry)
	var order []string

	for _, slot := range plan.Slots {
		recipe, ok := recipes[slot.RecipeID]
		if !ok {
			return nil, fmt.Errorf("slot %s/%s references unknown recipe %q", slot.Day, slot.MealType, slot.RecipeID)
		}
		if err := recipe.Validate(); err != nil {
			return nil, err
		}

		// portions eaten over portions the batch yields
		multiplier := float64(slot.Portions) / float64(recipe.Servings)

		for _, ing := range recipe.Ingredients {
			key := CanonicalName(ing.Name)

			kind, err := units.KindOf(ing.Unit)
			if err != nil {
				return nil, fmt.Errorf("recipe %q, ingredient %q: %w", recipe.ID, ing.Name, err)
			}

			canonical, _, err := units.Normalize(ing.Quantity*multiplier, ing.Unit, kind)
			if err != nil {
				return nil, fmt.Errorf("recipe %q, ingredient %q: %w", recipe.ID, ing.Name, err)
			}

			if existing, ok := entries[key]; ok {
				if existing.kind != kind {
					return nil, &UnitConflictError{Ingredient: key, Have: existing.kind, Got: kind}
				}
				existing.quantity += canonical
				continue
			}

			entries[key] = &entry{
				name:     key,
				quantity: canonical,
				kind:     kind,
				category: opts.categoryFor(key, ing.Category),
			}
			order = append(order, key)
		}
	}

	// Pantry staples are filtered after aggregation, not before, so the
	// accumulated quantities stay correct for any future override.
	items := make([]ListItem, 0, len(entries))
	for _, key := range order {
		e := entries[key]
		if opts.isPantryStaple(key) {
			continue
		}
		items = append(items, ListItem{
			IngredientName: e.name,
			TotalQuantity:  e.quantity,
			Unit:           units.CanonicalUnit(e.kind),
			Category:       e.category,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		ri, rj := categoryRank[items[i].Category], categoryRank[items[j].Category]
		if ri != rj {
			return ri < rj
		}
		return items[i].IngredientName < items[j].IngredientName
	})

	return &List{Week: plan.Week, Items: items}, nil
}

func (o Options) categoryFor(name, recipeCategory string) Category {
	if c, ok := o.CategoryOverrides[name]; ok {
		return c
	}
	if c, ok := o.CategoryAliases[strings.ToLower(strings.TrimSpace(recipeCategory))]; ok {
		return c
	}
	return CategoryAutre
}

// isPantryStaple is an exact membership test on the canonical name.
// Substring matching would conflate distinct items ("eau" hides
// "poireau"), so staples must be listed explicitly.
func (o Options) isPantryStaple(name string) bool {
	for _, staple := range o.PantryStaples {
		if CanonicalName(staple) == name {
			return true
		}
	}
	return false
}
