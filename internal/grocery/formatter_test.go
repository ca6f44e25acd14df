package grocery

import (
	"strings"
	"testing"

	"github.com/ehautefa/mealbot/internal/model"
)

func sampleList() *List {
	return &List{
		Week: "2026-W06",
		Items: []ListItem{
			{IngredientName: "carotte", TotalQuantity: 350, Unit: "g", Category: CategoryLegumes},
			{IngredientName: "courge butternut", TotalQuantity: 500, Unit: "g", Category: CategoryLegumes},
			{IngredientName: "tofu ferme", TotalQuantity: 300, Unit: "g", Category: CategoryProteines,
				Product: &MatchedProduct{Name: "Coop Naturaplan Tofu Bio ferme 2x200g", ID: "p-1", Price: 3.95}},
			{IngredientName: "boisson coco", TotalQuantity: 600, Unit: "ml", Category: CategoryEpicerie},
		},
	}
}

func TestFormatList(t *testing.T) {
	formatted := FormatList(sampleList())

	t.Run("SectionHeaders", func(t *testing.T) {
		if !strings.Contains(formatted, "*Légumes*") {
			t.Error("Expected Légumes section header")
		}
		if !strings.Contains(formatted, "*Protéines*") {
			t.Error("Expected Protéines section header")
		}
	})

	t.Run("ItemsAndQuantities", func(t *testing.T) {
		if !strings.Contains(formatted, "carotte - 350g") {
			t.Errorf("Expected carotte line, got:\n%s", formatted)
		}
		if !strings.Contains(formatted, "boisson coco - 600ml") {
			t.Errorf("Expected boisson coco line, got:\n%s", formatted)
		}
	})

	t.Run("MatchedProductLine", func(t *testing.T) {
		if !strings.Contains(formatted, "Coop Naturaplan Tofu Bio ferme 2x200g (CHF 3.95)") {
			t.Errorf("Expected matched product line, got:\n%s", formatted)
		}
	})

	t.Run("UnmatchedMarker", func(t *testing.T) {
		if !strings.Contains(formatted, "_introuvable_") {
			t.Errorf("Expected introuvable marker for unmatched items, got:\n%s", formatted)
		}
	})

	t.Run("Totals", func(t *testing.T) {
		if !strings.Contains(formatted, "4 articles") {
			t.Errorf("Expected total item count, got:\n%s", formatted)
		}
		if !strings.Contains(formatted, "1 trouvés") {
			t.Errorf("Expected matched count, got:\n%s", formatted)
		}
	})

	t.Run("CategoryOrder", func(t *testing.T) {
		legumes := strings.Index(formatted, "*Légumes*")
		proteines := strings.Index(formatted, "*Protéines*")
		epicerie := strings.Index(formatted, "*Épicerie*")
		if !(legumes < proteines && proteines < epicerie) {
			t.Errorf("Categories out of shopping order: legumes=%d proteines=%d epicerie=%d", legumes, proteines, epicerie)
		}
	})
}

func TestFormatListEmpty(t *testing.T) {
	formatted := FormatList(&List{Week: "2026-W06"})
	if !strings.Contains(formatted, "_Aucun article_") {
		t.Errorf("Expected empty-list marker, got:\n%s", formatted)
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{300, "300"},
		{0.5, "0.5"},
		{133.333333, "133.3"},
		{100.04, "100"},
	}
	for _, tc := range cases {
		if got := FormatQuantity(tc.in); got != tc.want {
			t.Errorf("FormatQuantity(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatMealPlan(t *testing.T) {
	plan := model.MealPlan{
		Week: "2026-W06",
		Slots: []model.MealSlot{
			{Day: "lundi", MealType: "diner", RecipeID: "soupe", Portions: 1},
			{Day: "lundi", MealType: "lunch", RecipeID: "curry-tofu", Portions: 1},
		},
		PrepOrder:        []string{"curry-tofu", "soupe"},
		TotalPrepTimeMin: 75,
	}
	recipes := map[string]model.Recipe{
		"curry-tofu": {ID: "curry-tofu", Name: "Curry tofu", Servings: 4},
		"soupe":      {ID: "soupe", Name: "Soupe legumes", Servings: 4},
	}

	formatted := FormatMealPlan(plan, recipes)

	if !strings.Contains(formatted, "*Lundi*") {
		t.Error("Expected Lundi header")
	}
	// Lunch sorts before dinner within a day.
	lunch := strings.Index(formatted, "Déjeuner")
	diner := strings.Index(formatted, "Dîner")
	if lunch < 0 || diner < 0 || lunch > diner {
		t.Errorf("Expected lunch before dinner, got:\n%s", formatted)
	}
	if !strings.Contains(formatted, "Curry tofu") {
		t.Error("Expected recipe name from the recipe set")
	}
	if !strings.Contains(formatted, "Ordre de préparation") {
		t.Error("Expected prep order section")
	}
	if !strings.Contains(formatted, "1h15") {
		t.Errorf("Expected total prep time 1h15, got:\n%s", formatted)
	}
}
