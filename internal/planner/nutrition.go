package planner

import "github.com/ehautefa/mealbot/internal/model"

// Nutrition targets and thresholds.
const (
	DailyProteinMinG   = 60.0
	DailyCarbsMaxG     = 150.0
	HighCarbThresholdG = 50.0
)

// ValidationResult holds the outcome of one nutrition check.
type ValidationResult struct {
	Valid   bool
	Total   float64
	Target  float64
	Deficit float64 // protein below target
	Excess  float64 // carbs above limit
}

// NutritionValidation holds the full daily validation of a plan.
type NutritionValidation struct {
	ProteinValid    bool
	CarbsValid      bool
	ProteinTotal    float64
	CarbsTotal      float64
	HighCarbRecipes []string
}

// Valid reports whether all nutrition checks passed.
func (n NutritionValidation) Valid() bool {
	return n.ProteinValid && n.CarbsValid
}

// ValidateDailyProtein checks the daily protein minimum across meals.
func ValidateDailyProtein(dailyMacros []model.Macros) ValidationResult {
	total := 0.0
	for _, m := range dailyMacros {
		total += m.ProteinG
	}
	deficit := DailyProteinMinG - total
	if deficit < 0 {
		deficit = 0
	}
	return ValidationResult{
		Valid:   total >= DailyProteinMinG,
		Total:   total,
		Target:  DailyProteinMinG,
		Deficit: deficit,
	}
}

// ValidateDailyCarbs checks the daily carbs maximum across meals.
func ValidateDailyCarbs(dailyMacros []model.Macros) ValidationResult {
	total := 0.0
	for _, m := range dailyMacros {
		total += m.CarbsG
	}
	excess := total - DailyCarbsMaxG
	if excess < 0 {
		excess = 0
	}
	return ValidationResult{
		Valid:  total <= DailyCarbsMaxG,
		Total:  total,
		Target: DailyCarbsMaxG,
		Excess: excess,
	}
}

// IsHighCarbRecipe reports whether a recipe exceeds the per-portion
// carbs threshold. Recipes without macros are never flagged.
func IsHighCarbRecipe(recipe model.Recipe) bool {
	if recipe.Macros == nil {
		return false
	}
	return recipe.Macros.CarbsG > HighCarbThresholdG
}

// ValidatePlanNutrition validates one day of a meal plan against the
// protein and carbs targets.
func ValidatePlanNutrition(plan model.MealPlan, recipes map[string]model.Recipe, day string) NutritionValidation {
	var dailyMacros []model.Macros
	var highCarb []string

	for _, slot := range plan.Slots {
		if slot.Day != day {
			continue
		}
		recipe, ok := recipes[slot.RecipeID]
		if !ok || recipe.Macros == nil {
			continue
		}
		dailyMacros = append(dailyMacros, *recipe.Macros)
		if IsHighCarbRecipe(recipe) {
			highCarb = append(highCarb, recipe.ID)
		}
	}

	protein := ValidateDailyProtein(dailyMacros)
	carbs := ValidateDailyCarbs(dailyMacros)

	return NutritionValidation{
		ProteinValid:    protein.Valid,
		CarbsValid:      carbs.Valid,
		ProteinTotal:    protein.Total,
		CarbsTotal:      carbs.Total,
		HighCarbRecipes: highCarb,
	}
}
