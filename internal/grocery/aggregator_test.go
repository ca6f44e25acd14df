package grocery

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ehautefa/mealbot/internal/model"
)

func recipeCurry() model.Recipe {
	return model.Recipe{
		ID:       "curry-tofu",
		Name:     "Curry tofu",
		Servings: 4,
		Ingredients: []model.Ingredient{
			{Name: "tofu ferme", Quantity: 400, Unit: "g", Category: "proteines"},
			{Name: "boisson coco", Quantity: 400, Unit: "ml", Category: "base"},
			{Name: "courge butternut", Quantity: 500, Unit: "g", Category: "legumes"},
			{Name: "huile d'olive", Quantity: 20, Unit: "ml", Category: "base"},
			{Name: "sel", Quantity: 5, Unit: "g", Category: "base"},
		},
		Instructions: []string{"Cook"},
	}
}

func recipeSoup() model.Recipe {
	return model.Recipe{
		ID:       "soupe",
		Name:     "Soupe legumes",
		Servings: 4,
		Ingredients: []model.Ingredient{
			{Name: "carotte", Quantity: 200, Unit: "g", Category: "legumes"},
			{Name: "poireau", Quantity: 300, Unit: "g", Category: "legumes"},
			{Name: "boisson coco", Quantity: 200, Unit: "ml", Category: "base"},
			{Name: "sel", Quantity: 5, Unit: "g", Category: "base"},
		},
		Instructions: []string{"Cook"},
	}
}

func recipesByID(recipes ...model.Recipe) map[string]model.Recipe {
	m := make(map[string]model.Recipe, len(recipes))
	for _, r := range recipes {
		m[r.ID] = r
	}
	return m
}

func findItem(t *testing.T, list *List, name string) *ListItem {
	t.Helper()
	for i := range list.Items {
		if list.Items[i].IngredientName == name {
			return &list.Items[i]
		}
	}
	return nil
}

func TestAggregateScalesByPortionsOverServings(t *testing.T) {
	// Soup has 200g carotte for 4 servings; one portion is 50g.
	plan := model.MealPlan{
		Week: "2026-W06",
		Slots: []model.MealSlot{
			{Day: "lundi", MealType: "diner", RecipeID: "soupe", Portions: 1},
		},
	}

	list, err := Aggregate(plan, recipesByID(recipeSoup()), DefaultOptions())
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	carotte := findItem(t, list, "carotte")
	if carotte == nil {
		t.Fatal("Expected carotte on the list")
	}
	if carotte.TotalQuantity != 50 {
		t.Errorf("Expected 50g carotte, got %v", carotte.TotalQuantity)
	}
}

func TestAggregateCombinesSameIngredientAcrossSlots(t *testing.T) {
	// Curry: 400ml coco / 4 servings, soup: 200ml / 4 servings.
	plan := model.MealPlan{
		Week: "2026-W06",
		Slots: []model.MealSlot{
			{Day: "lundi", MealType: "lunch", RecipeID: "curry-tofu", Portions: 1},
			{Day: "lundi", MealType: "diner", RecipeID: "soupe", Portions: 1},
		},
	}

	list, err := Aggregate(plan, recipesByID(recipeCurry(), recipeSoup()), DefaultOptions())
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	coco := findItem(t, list, "boisson coco")
	if coco == nil {
		t.Fatal("Expected boisson coco on the list")
	}
	if coco.TotalQuantity != 150 {
		t.Errorf("Expected 150ml coco, got %v", coco.TotalQuantity)
	}
	if coco.Unit != "ml" {
		t.Errorf("Expected unit ml, got %q", coco.Unit)
	}
}

func TestAggregateNormalizesMixedUnitsWithinKind(t *testing.T) {
	// Same ingredient declared in kg and g must sum in grams.
	recipeA := model.Recipe{
		ID: "a", Name: "A", Servings: 1,
		Ingredients: []model.Ingredient{{Name: "lentilles", Quantity: 0.2, Unit: "kg", Category: "proteines"}},
	}
	recipeB := model.Recipe{
		ID: "b", Name: "B", Servings: 1,
		Ingredients: []model.Ingredient{{Name: "Lentilles ", Quantity: 150, Unit: "g", Category: "proteines"}},
	}
	plan := model.MealPlan{
		Week: "2026-W06",
		Slots: []model.MealSlot{
			{Day: "lundi", MealType: "lunch", RecipeID: "a", Portions: 1},
			{Day: "mardi", MealType: "lunch", RecipeID: "b", Portions: 1},
		},
	}

	list, err := Aggregate(plan, recipesByID(recipeA, recipeB), DefaultOptions())
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	lentilles := findItem(t, list, "lentilles")
	if lentilles == nil {
		t.Fatal("Expected lentilles on the list")
	}
	if lentilles.TotalQuantity != 350 {
		t.Errorf("Expected 350g lentilles, got %v", lentilles.TotalQuantity)
	}
}

func TestAggregateUnitConflict(t *testing.T) {
	// Mass in one recipe, volume in another, no conversion declared.
	recipeA := model.Recipe{
		ID: "a", Name: "A", Servings: 1,
		Ingredients: []model.Ingredient{{Name: "miel", Quantity: 50, Unit: "g", Category: "base"}},
	}
	recipeB := model.Recipe{
		ID: "b", Name: "B", Servings: 1,
		Ingredients: []model.Ingredient{{Name: "miel", Quantity: 30, Unit: "ml", Category: "base"}},
	}
	plan := model.MealPlan{
		Week: "2026-W06",
		Slots: []model.MealSlot{
			{Day: "lundi", MealType: "lunch", RecipeID: "a", Portions: 1},
			{Day: "mardi", MealType: "lunch", RecipeID: "b", Portions: 1},
		},
	}

	_, err := Aggregate(plan, recipesByID(recipeA, recipeB), DefaultOptions())
	if err == nil {
		t.Fatal("Expected UnitConflictError, got nil")
	}
	var conflict *UnitConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Expected UnitConflictError, got %T: %v", err, err)
	}
	if conflict.Ingredient != "miel" {
		t.Errorf("Expected offending ingredient 'miel', got %q", conflict.Ingredient)
	}
}

func TestAggregateExcludesPantryStaples(t *testing.T) {
	plan := model.MealPlan{
		Week: "2026-W06",
		Slots: []model.MealSlot{
			{Day: "lundi", MealType: "lunch", RecipeID: "curry-tofu", Portions: 1},
		},
	}

	list, err := Aggregate(plan, recipesByID(recipeCurry()), DefaultOptions())
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	for _, item := range list.Items {
		if item.IngredientName == "sel" || item.IngredientName == "huile d'olive" {
			t.Errorf("Pantry staple %q should not appear on the list", item.IngredientName)
		}
	}
}

func TestAggregateUnknownRecipeFails(t *testing.T) {
	plan := model.MealPlan{
		Week: "2026-W06",
		Slots: []model.MealSlot{
			{Day: "lundi", MealType: "lunch", RecipeID: "missing", Portions: 1},
		},
	}

	if _, err := Aggregate(plan, recipesByID(recipeCurry()), DefaultOptions()); err == nil {
		t.Fatal("Expected an error for unresolved recipe reference, got nil")
	}
}

func TestAggregateUnknownCategoryDefaultsToAutre(t *testing.T) {
	recipe := model.Recipe{
		ID: "mystery", Name: "Mystery", Servings: 1,
		Ingredients: []model.Ingredient{{Name: "levure maltée", Quantity: 10, Unit: "g", Category: "condiment"}},
	}
	plan := model.MealPlan{
		Week:  "2026-W06",
		Slots: []model.MealSlot{{Day: "lundi", MealType: "lunch", RecipeID: "mystery", Portions: 1}},
	}

	list, err := Aggregate(plan, recipesByID(recipe), DefaultOptions())
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	item := findItem(t, list, "levure maltée")
	if item == nil {
		t.Fatal("Expected levure maltée on the list")
	}
	if item.Category != CategoryAutre {
		t.Errorf("Expected category autre, got %q", item.Category)
	}
}

func TestAggregateCategoryOverrideWins(t *testing.T) {
	opts := DefaultOptions()
	opts.CategoryOverrides = map[string]Category{"boisson coco": CategoryBoissons}

	plan := model.MealPlan{
		Week:  "2026-W06",
		Slots: []model.MealSlot{{Day: "lundi", MealType: "lunch", RecipeID: "curry-tofu", Portions: 1}},
	}

	list, err := Aggregate(plan, recipesByID(recipeCurry()), opts)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	coco := findItem(t, list, "boisson coco")
	if coco == nil {
		t.Fatal("Expected boisson coco on the list")
	}
	if coco.Category != CategoryBoissons {
		t.Errorf("Expected override category boissons, got %q", coco.Category)
	}
}

func TestAggregateDeterministicOrdering(t *testing.T) {
	plan := model.MealPlan{
		Week: "2026-W06",
		Slots: []model.MealSlot{
			{Day: "lundi", MealType: "lunch", RecipeID: "curry-tofu", Portions: 2},
			{Day: "mardi", MealType: "diner", RecipeID: "soupe", Portions: 1},
		},
	}
	recipes := recipesByID(recipeCurry(), recipeSoup())

	first, err := Aggregate(plan, recipes, DefaultOptions())
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	for run := 0; run < 10; run++ {
		again, err := Aggregate(plan, recipes, DefaultOptions())
		if err != nil {
			t.Fatalf("Aggregate failed on run %d: %v", run, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Aggregation is not deterministic: run %d differs", run)
		}
	}

	// Categories appear in shopping order, names alphabetical within.
	for i := 1; i < len(first.Items); i++ {
		prev, cur := first.Items[i-1], first.Items[i]
		if categoryRank[prev.Category] > categoryRank[cur.Category] {
			t.Fatalf("Categories out of order: %q before %q", prev.Category, cur.Category)
		}
		if prev.Category == cur.Category && prev.IngredientName > cur.IngredientName {
			t.Fatalf("Names out of order within %q: %q before %q", cur.Category, prev.IngredientName, cur.IngredientName)
		}
	}
}

func TestAggregateEndToEndTofuCurry(t *testing.T) {
	// Two slots of the same servings=4 recipe at portions 1 and 2:
	// 400×(1/4) + 400×(2/4) = 300g.
	recipe := model.Recipe{
		ID: "tofu-curry", Name: "Tofu Curry", Servings: 4,
		Ingredients: []model.Ingredient{
			{Name: "tofu ferme", Quantity: 400, Unit: "g", Category: "proteines"},
			{Name: "sel", Quantity: 5, Unit: "g", Category: "base"},
		},
	}
	plan := model.MealPlan{
		Week: "2026-W06",
		Slots: []model.MealSlot{
			{Day: "lundi", MealType: "lunch", RecipeID: "tofu-curry", Portions: 1},
			{Day: "mardi", MealType: "diner", RecipeID: "tofu-curry", Portions: 2},
		},
	}

	list, err := Aggregate(plan, recipesByID(recipe), DefaultOptions())
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	tofu := findItem(t, list, "tofu ferme")
	if tofu == nil {
		t.Fatal("Expected tofu ferme on the list")
	}
	if tofu.TotalQuantity != 300 {
		t.Errorf("Expected 300g tofu, got %v", tofu.TotalQuantity)
	}
	if tofu.Category != CategoryProteines {
		t.Errorf("Expected category proteines, got %q", tofu.Category)
	}
	if tofu.Product != nil {
		t.Error("Expected no matched product before enrichment")
	}
	if findItem(t, list, "sel") != nil {
		t.Error("Pantry staple sel should be filtered")
	}
}
