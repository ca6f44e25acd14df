// Package planner generates weekly meal plans through an external
// language-generation service and validates them against seasonal and
// nutrition rules. The grocery engine only consumes its output.
package planner

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/ehautefa/mealbot/internal/llm"
	"github.com/ehautefa/mealbot/internal/model"
)

//go:embed generator_prompt.md
var generatorPrompt string

// Constraints bound meal plan generation.
type Constraints struct {
	ExcludeIngredients []string
	MaxMeatFishPerWeek int
	MinProteinPerDay   float64
	MaxCarbsPerDay     float64
	QuickDinnerMaxMin  int
}

// DefaultConstraints returns the household defaults.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxMeatFishPerWeek: 1,
		MinProteinPerDay:   DailyProteinMinG,
		MaxCarbsPerDay:     DailyCarbsMaxG,
		QuickDinnerMaxMin:  15,
	}
}

// GeneratorResult is a generated plan plus the recipes it references.
type GeneratorResult struct {
	MealPlan model.MealPlan `json:"meal_plan"`
	Recipes  []model.Recipe `json:"recipes"`
}

// Generator produces meal plans via a text-generation backend.
type Generator struct {
	textGen llm.TextGenerator
}

// NewGenerator creates a Generator.
func NewGenerator(textGen llm.TextGenerator) *Generator {
	return &Generator{textGen: textGen}
}

// Generate builds the prompt for the given week and month, calls the
// backend and parses the returned plan and recipes.
func (g *Generator) Generate(ctx context.Context, week string, month int, constraints Constraints) (*GeneratorResult, error) {
	prompt, err := buildGeneratorPrompt(week, month, constraints)
	if err != nil {
		return nil, err
	}

	response, err := g.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate meal plan: %w", err)
	}

	result, err := parseGeneratorResponse(response)
	if err != nil {
		return nil, err
	}

	if err := result.MealPlan.Validate(); err != nil {
		return nil, fmt.Errorf("generated plan is invalid: %w", err)
	}
	for _, recipe := range result.Recipes {
		if err := recipe.Validate(); err != nil {
			return nil, fmt.Errorf("generated recipe is invalid: %w", err)
		}
	}

	return result, nil
}

// RecipesByID indexes the generated recipes for aggregation.
func (r *GeneratorResult) RecipesByID() map[string]model.Recipe {
	recipes := make(map[string]model.Recipe, len(r.Recipes))
	for _, recipe := range r.Recipes {
		recipes[recipe.ID] = recipe
	}
	return recipes
}

type promptData struct {
	Week                string
	Month               int
	ExcludedIngredients string
	MaxMeatFishPerWeek  int
	MinProteinPerDay    float64
	MaxCarbsPerDay      float64
	QuickDinnerMaxMin   int
	SeasonalVegetables  string
	SeasonalFruits      string
	SeasonalHerbs       string
}

func buildGeneratorPrompt(week string, month int, constraints Constraints) (string, error) {
	seasonal, err := SeasonalIngredients(month)
	if err != nil {
		return "", err
	}

	excluded := "aucun"
	if len(constraints.ExcludeIngredients) > 0 {
		excluded = strings.Join(constraints.ExcludeIngredients, ", ")
	}

	data := promptData{
		Week:                week,
		Month:               month,
		ExcludedIngredients: excluded,
		MaxMeatFishPerWeek:  constraints.MaxMeatFishPerWeek,
		MinProteinPerDay:    constraints.MinProteinPerDay,
		MaxCarbsPerDay:      constraints.MaxCarbsPerDay,
		QuickDinnerMaxMin:   constraints.QuickDinnerMaxMin,
		SeasonalVegetables:  strings.Join(seasonal[SeasonalLegumes], ", "),
		SeasonalFruits:      strings.Join(seasonal[SeasonalFruits], ", "),
		SeasonalHerbs:       strings.Join(seasonal[SeasonalHerbes], ", "),
	}

	tmpl, err := template.New("generator").Parse(generatorPrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// parseGeneratorResponse tolerates markdown code fences around the JSON.
func parseGeneratorResponse(response string) (*GeneratorResult, error) {
	jsonStr := response
	if start := strings.Index(response, "```json"); start >= 0 {
		rest := response[start+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			jsonStr = rest[:end]
		}
	} else if start := strings.Index(response, "```"); start >= 0 {
		rest := response[start+3:]
		if end := strings.Index(rest, "```"); end >= 0 {
			jsonStr = rest[:end]
		}
	}

	var result GeneratorResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(jsonStr)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse generated plan: %w. Response: %s", err, response)
	}
	return &result, nil
}
