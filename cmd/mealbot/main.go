package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ehautefa/mealbot/internal/catalog"
	"github.com/ehautefa/mealbot/internal/config"
	"github.com/ehautefa/mealbot/internal/coop"
	"github.com/ehautefa/mealbot/internal/database"
	"github.com/ehautefa/mealbot/internal/grocery"
	"github.com/ehautefa/mealbot/internal/llm"
	"github.com/ehautefa/mealbot/internal/model"
	"github.com/ehautefa/mealbot/internal/planner"
	"github.com/ehautefa/mealbot/internal/storage"
	"github.com/ehautefa/mealbot/internal/telegram"
)

func main() {
	var planPath string
	var offline bool
	flag.StringVar(&planPath, "plan", "", "Path to a meal plan JSON file (skips generation)")
	flag.BoolVar(&offline, "offline", false, "Skip catalog search; all items stay unmatched")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts, err := config.LoadOptions(cfg.OptionsPath)
	if err != nil {
		log.Fatalf("Failed to load engine options: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	listRepo := grocery.NewRepository(db.SQL)

	recipeStore, err := storage.NewRecipeStore(cfg.RecipeStoragePath)
	if err != nil {
		log.Fatalf("Failed to initialize recipe store: %v", err)
	}

	plan, recipes, err := obtainPlan(ctx, cfg, planPath, recipeStore)
	if err != nil {
		log.Fatalf("Failed to obtain meal plan: %v", err)
	}

	list, err := grocery.Aggregate(*plan, recipes, opts.AggregateOptions())
	if err != nil {
		log.Fatalf("Failed to aggregate grocery list: %v", err)
	}
	log.Printf("Aggregated %d grocery items for week %s", list.TotalItems(), list.Week)

	if !offline {
		matcher := catalog.NewMatcher(opts.MatcherConfig())
		enricher := catalog.NewEnricher(coop.NewClient(""), matcher, 20*time.Second)
		matched := enricher.Enrich(ctx, list)
		log.Printf("Matched %d/%d items against the catalog", matched, list.TotalItems())
	}

	if err := listRepo.Save(ctx, list); err != nil {
		log.Printf("Warning: failed to save grocery list: %v", err)
	}

	message := grocery.FormatList(list)
	fmt.Println(message)

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		notifier, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to initialize telegram notifier: %v", err)
		}
		if err := notifier.Send(grocery.FormatMealPlan(*plan, recipes)); err != nil {
			log.Printf("Warning: failed to send meal plan: %v", err)
		}
		if err := notifier.Send(message); err != nil {
			log.Printf("Warning: failed to send grocery list: %v", err)
		}
	}
}

// obtainPlan loads a plan from a file against the stored recipe
// library, or generates a fresh one for the current week.
func obtainPlan(ctx context.Context, cfg *config.Config, planPath string, store *storage.RecipeStore) (*model.MealPlan, map[string]model.Recipe, error) {
	if planPath != "" {
		data, err := os.ReadFile(planPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read plan file: %w", err)
		}
		var plan model.MealPlan
		if err := json.Unmarshal(data, &plan); err != nil {
			return nil, nil, fmt.Errorf("failed to parse plan file: %w", err)
		}
		recipes, err := store.LoadAll()
		if err != nil {
			return nil, nil, err
		}
		return &plan, recipes, nil
	}

	if err := cfg.RequireGeminiKey(); err != nil {
		return nil, nil, err
	}
	gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, nil, err
	}
	if closer, ok := gemini.(llm.Closer); ok {
		defer closer.Close()
	}

	now := time.Now()
	year, week := now.ISOWeek()
	weekID := fmt.Sprintf("%d-W%02d", year, week)

	generator := planner.NewGenerator(gemini)
	result, err := generator.Generate(ctx, weekID, int(now.Month()), planner.DefaultConstraints())
	if err != nil {
		return nil, nil, err
	}

	// Keep the generated recipes so the plan can be re-run from a file.
	for _, recipe := range result.Recipes {
		if err := store.Save(recipe); err != nil {
			log.Printf("Warning: failed to save recipe %q: %v", recipe.ID, err)
		}
	}

	return &result.MealPlan, result.RecipesByID(), nil
}
