package planner

import (
	"fmt"
	"strings"
)

// SeasonalCategory groups the seasonal calendar entries.
type SeasonalCategory string

const (
	SeasonalLegumes SeasonalCategory = "legumes"
	SeasonalFruits  SeasonalCategory = "fruits"
	SeasonalHerbes  SeasonalCategory = "herbes"
)

// Swiss seasonal calendar by month, compiled from farmer-market and
// local agriculture calendars.
var seasonalCalendar = map[int]map[SeasonalCategory][]string{
	1: {
		SeasonalLegumes: {"carotte", "panais", "celeri-rave", "poireau", "chou", "chou-rouge", "chou-frise", "betterave", "navet", "rutabaga", "topinambour", "salsifis", "endive", "mache"},
		SeasonalFruits:  {"pomme", "poire"},
		SeasonalHerbes:  {"persil", "romarin", "thym", "sauge"},
	},
	2: {
		SeasonalLegumes: {"carotte", "panais", "celeri-rave", "poireau", "chou", "chou-rouge", "chou-frise", "betterave", "navet", "rutabaga", "topinambour", "salsifis", "endive", "mache", "epinard"},
		SeasonalFruits:  {"pomme", "poire"},
		SeasonalHerbes:  {"persil", "romarin", "thym", "sauge"},
	},
	3: {
		SeasonalLegumes: {"carotte", "panais", "celeri-rave", "poireau", "chou", "epinard", "mache", "radis", "cresson"},
		SeasonalFruits:  {"pomme", "poire", "rhubarbe"},
		SeasonalHerbes:  {"persil", "ciboulette", "ail-des-ours"},
	},
	4: {
		SeasonalLegumes: {"asperge", "radis", "epinard", "cresson", "laitue", "oignon-nouveau", "carotte-nouvelle"},
		SeasonalFruits:  {"rhubarbe"},
		SeasonalHerbes:  {"persil", "ciboulette", "ail-des-ours", "cerfeuil"},
	},
	5: {
		SeasonalLegumes: {"asperge", "radis", "epinard", "laitue", "petit-pois", "feve", "oignon-nouveau", "carotte-nouvelle", "chou-rave"},
		SeasonalFruits:  {"rhubarbe", "fraise"},
		SeasonalHerbes:  {"persil", "ciboulette", "basilic", "menthe", "cerfeuil", "estragon"},
	},
	6: {
		SeasonalLegumes: {"asperge", "petit-pois", "feve", "haricot-vert", "courgette", "concombre", "laitue", "radis", "chou-rave", "fenouil", "bette"},
		SeasonalFruits:  {"fraise", "cerise", "framboise", "groseille"},
		SeasonalHerbes:  {"persil", "ciboulette", "basilic", "menthe", "aneth", "coriandre"},
	},
	7: {
		SeasonalLegumes: {"tomate", "courgette", "aubergine", "poivron", "concombre", "haricot-vert", "petit-pois", "fenouil", "bette", "mais", "laitue", "celeri-branche"},
		SeasonalFruits:  {"fraise", "framboise", "myrtille", "groseille", "cerise", "abricot", "peche", "prune"},
		SeasonalHerbes:  {"basilic", "persil", "ciboulette", "menthe", "aneth", "coriandre", "origan", "marjolaine"},
	},
	8: {
		SeasonalLegumes: {"tomate", "courgette", "aubergine", "poivron", "concombre", "haricot-vert", "fenouil", "bette", "mais", "oignon", "ail"},
		SeasonalFruits:  {"framboise", "myrtille", "mure", "prune", "peche", "poire", "pomme", "melon", "pasteque"},
		SeasonalHerbes:  {"basilic", "persil", "ciboulette", "menthe", "aneth", "coriandre", "origan", "thym"},
	},
	9: {
		SeasonalLegumes: {"tomate", "courgette", "aubergine", "poivron", "courge", "potimarron", "butternut", "haricot-vert", "fenouil", "bette", "chou", "poireau", "carotte"},
		SeasonalFruits:  {"pomme", "poire", "prune", "raisin", "figue", "mure"},
		SeasonalHerbes:  {"persil", "ciboulette", "thym", "romarin", "sauge"},
	},
	10: {
		SeasonalLegumes: {"courge", "potimarron", "butternut", "chou", "chou-rouge", "chou-frise", "poireau", "carotte", "panais", "celeri-rave", "betterave", "navet", "fenouil", "brocoli"},
		SeasonalFruits:  {"pomme", "poire", "raisin", "coing", "chataigne", "noix"},
		SeasonalHerbes:  {"persil", "thym", "romarin", "sauge"},
	},
	11: {
		SeasonalLegumes: {"courge", "potimarron", "butternut", "chou", "chou-rouge", "chou-frise", "chou-de-bruxelles", "poireau", "carotte", "panais", "celeri-rave", "betterave", "navet", "topinambour", "salsifis", "endive", "mache"},
		SeasonalFruits:  {"pomme", "poire", "coing", "chataigne", "noix"},
		SeasonalHerbes:  {"persil", "thym", "romarin", "sauge"},
	},
	12: {
		SeasonalLegumes: {"chou", "chou-rouge", "chou-frise", "chou-de-bruxelles", "poireau", "carotte", "panais", "celeri-rave", "betterave", "navet", "rutabaga", "topinambour", "salsifis", "endive", "mache"},
		SeasonalFruits:  {"pomme", "poire"},
		SeasonalHerbes:  {"persil", "thym", "romarin", "sauge"},
	},
}

// SeasonalIngredients returns the Swiss seasonal produce for a month (1-12).
func SeasonalIngredients(month int) (map[SeasonalCategory][]string, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	return seasonalCalendar[month], nil
}

// InSeason reports whether an ingredient is in season for the month.
func InSeason(ingredient string, month int) (bool, error) {
	seasonal, err := SeasonalIngredients(month)
	if err != nil {
		return false, err
	}
	name := strings.ToLower(strings.TrimSpace(ingredient))
	for _, items := range seasonal {
		for _, item := range items {
			if item == name {
				return true, nil
			}
		}
	}
	return false, nil
}
