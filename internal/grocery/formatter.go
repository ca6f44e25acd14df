package grocery

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ehautefa/mealbot/internal/model"
)

var categoryEmojis = map[Category]string{
	CategoryLegumes:   "🥬",
	CategoryFruits:    "🍎",
	CategoryProteines: "🥩",
	CategoryEpicerie:  "🏪",
	CategoryFrais:     "🧀",
	CategorySurgeles:  "🧊",
	CategoryBoissons:  "🥤",
	CategoryAutre:     "📦",
}

var categoryNames = map[Category]string{
	CategoryLegumes:   "Légumes",
	CategoryFruits:    "Fruits",
	CategoryProteines: "Protéines",
	CategoryEpicerie:  "Épicerie",
	CategoryFrais:     "Frais",
	CategorySurgeles:  "Surgelés",
	CategoryBoissons:  "Boissons",
	CategoryAutre:     "Autres",
}

var dayEmojis = map[string]string{
	"lundi":    "1️⃣",
	"mardi":    "2️⃣",
	"mercredi": "3️⃣",
	"jeudi":    "4️⃣",
	"vendredi": "5️⃣",
	"samedi":   "6️⃣",
	"dimanche": "7️⃣",
}

var mealTypeNames = map[string]string{
	"petit-dej": "🌅 Petit-déjeuner",
	"lunch":     "☀️ Déjeuner",
	"diner":     "🌙 Dîner",
}

// FormatQuantity renders a quantity with at most one decimal and no
// trailing zero. This is the only place quantities are rounded.
func FormatQuantity(quantity float64) string {
	s := fmt.Sprintf("%.1f", quantity)
	return strings.TrimSuffix(s, ".0")
}

func formatItem(item ListItem) string {
	line := fmt.Sprintf("☐ %s - %s%s", item.IngredientName, FormatQuantity(item.TotalQuantity), item.Unit)
	if item.Product != nil {
		return fmt.Sprintf("%s\n   ↳ %s (CHF %.2f)", line, item.Product.Name, item.Product.Price)
	}
	return fmt.Sprintf("%s\n   ↳ _introuvable_", line)
}

// FormatList renders a matched grocery list as a Telegram markdown
// message, grouped by category in shopping order. Items without a
// matched product are marked so they can be resolved by hand.
func FormatList(list *List) string {
	if list == nil || len(list.Items) == 0 {
		return "🛒 *Liste de courses*\n\n_Aucun article_"
	}

	lines := []string{fmt.Sprintf("🛒 *Liste de courses - %s*", list.Week), ""}

	byCategory := list.ByCategory()
	for _, category := range categoryOrder {
		items := byCategory[category]
		if len(items) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s *%s*", categoryEmojis[category], categoryNames[category]))
		for _, item := range items {
			lines = append(lines, formatItem(item))
		}
		lines = append(lines, "")
	}

	total := 0.0
	matched := 0
	for _, item := range list.Items {
		if item.Product != nil {
			matched++
			total += item.Product.Price
		}
	}
	lines = append(lines, fmt.Sprintf("_Total: %d articles, %d trouvés, ~CHF %.2f_", len(list.Items), matched, total))

	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FormatMealPlan renders a weekly plan as a Telegram markdown message.
func FormatMealPlan(plan model.MealPlan, recipes map[string]model.Recipe) string {
	lines := []string{fmt.Sprintf("📅 *Plan repas - %s*", plan.Week), ""}

	daysOrder := []string{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"}
	slotsByDay := make(map[string][]model.MealSlot)
	for _, slot := range plan.Slots {
		slotsByDay[slot.Day] = append(slotsByDay[slot.Day], slot)
	}

	mealRank := map[string]int{"petit-dej": 0, "lunch": 1, "diner": 2}

	for _, day := range daysOrder {
		daySlots := slotsByDay[day]
		if len(daySlots) == 0 {
			continue
		}
		emoji, ok := dayEmojis[day]
		if !ok {
			emoji = "📆"
		}
		lines = append(lines, fmt.Sprintf("%s *%s*", emoji, capitalize(day)))

		sort.SliceStable(daySlots, func(i, j int) bool {
			ri, ok := mealRank[daySlots[i].MealType]
			if !ok {
				ri = 99
			}
			rj, ok := mealRank[daySlots[j].MealType]
			if !ok {
				rj = 99
			}
			return ri < rj
		})

		for _, slot := range daySlots {
			name := slot.RecipeID
			if recipe, ok := recipes[slot.RecipeID]; ok {
				name = recipe.Name
			}
			display, ok := mealTypeNames[slot.MealType]
			if !ok {
				display = slot.MealType
			}
			lines = append(lines, fmt.Sprintf("  %s: %s", display, name))
		}
		lines = append(lines, "")
	}

	if len(plan.PrepOrder) > 0 {
		lines = append(lines, "🍳 *Ordre de préparation (dimanche)*")
		for i, recipeID := range plan.PrepOrder {
			name := recipeID
			if recipe, ok := recipes[recipeID]; ok {
				name = recipe.Name
			}
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, name))
		}
		lines = append(lines, "")
	}

	if plan.TotalPrepTimeMin > 0 {
		hours := plan.TotalPrepTimeMin / 60
		minutes := plan.TotalPrepTimeMin % 60
		if hours > 0 {
			lines = append(lines, fmt.Sprintf("⏱ _Temps total de préparation: %dh%02d_", hours, minutes))
		} else {
			lines = append(lines, fmt.Sprintf("⏱ _Temps total de préparation: %dmin_", minutes))
		}
	}

	return strings.Join(lines, "\n")
}
