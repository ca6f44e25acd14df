package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ehautefa/mealbot/internal/model"
)

// RecipeStore provides file-based storage for the recipe library.
type RecipeStore struct {
	basePath string
}

// NewRecipeStore creates a new RecipeStore and ensures the base directory exists.
func NewRecipeStore(basePath string) (*RecipeStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &RecipeStore{basePath: basePath}, nil
}

func (s *RecipeStore) path(recipeID string) string {
	return filepath.Join(s.basePath, recipeID+".json")
}

// Save stores a recipe to a file, overwriting any previous version.
func (s *RecipeStore) Save(recipe model.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	if err := os.WriteFile(s.path(recipe.ID), data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// Load retrieves a recipe by ID.
func (s *RecipeStore) Load(recipeID string) (*model.Recipe, error) {
	data, err := os.ReadFile(s.path(recipeID))
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var recipe model.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &recipe, nil
}

// Exists checks if a recipe file exists.
func (s *RecipeStore) Exists(recipeID string) bool {
	_, err := os.Stat(s.path(recipeID))
	return !os.IsNotExist(err)
}

// LoadAll returns every recipe in the library, keyed by ID.
func (s *RecipeStore) LoadAll() (map[string]model.Recipe, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list storage directory: %w", err)
	}

	recipes := make(map[string]model.Recipe)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		recipeID := strings.TrimSuffix(entry.Name(), ".json")
		recipe, err := s.Load(recipeID)
		if err != nil {
			return nil, err
		}
		recipes[recipe.ID] = *recipe
	}
	return recipes, nil
}
