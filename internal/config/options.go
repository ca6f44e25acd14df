package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/ehautefa/mealbot/internal/catalog"
	"github.com/ehautefa/mealbot/internal/grocery"
)

// Options are the engine tables: pantry staples, category lookups and
// matching rules. They load from a YAML file so deployments and tests
// can swap them without a rebuild; missing fields keep the defaults.
type Options struct {
	PantryStaples     []string                `yaml:"pantry_staples"`
	CategoryAliases   map[string]string       `yaml:"category_aliases"`
	CategoryOverrides map[string]string       `yaml:"category_overrides"`
	Stopwords         []string                `yaml:"stopwords"`
	Qualifiers        []catalog.QualifierRule `yaml:"qualifiers"`
	MatchThreshold    float64                 `yaml:"match_threshold"`
}

// LoadOptions reads the options file. An empty path returns the
// defaults unchanged.
func LoadOptions(path string) (*Options, error) {
	opts := defaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse options file %s: %w", path, err)
	}
	if opts.MatchThreshold < 0 || opts.MatchThreshold > 1 {
		return nil, fmt.Errorf("match_threshold must be between 0 and 1, got %v", opts.MatchThreshold)
	}
	return opts, nil
}

func defaultOptions() *Options {
	aggregate := grocery.DefaultOptions()
	matcher := catalog.DefaultConfig()

	aliases := make(map[string]string, len(aggregate.CategoryAliases))
	for alias, category := range aggregate.CategoryAliases {
		aliases[alias] = string(category)
	}

	return &Options{
		PantryStaples:   aggregate.PantryStaples,
		CategoryAliases: aliases,
		Stopwords:       matcher.Stopwords,
		Qualifiers:      matcher.Qualifiers,
		MatchThreshold:  matcher.Threshold,
	}
}

// AggregateOptions converts the loaded tables into aggregator options.
func (o *Options) AggregateOptions() grocery.Options {
	aliases := make(map[string]grocery.Category, len(o.CategoryAliases))
	for alias, category := range o.CategoryAliases {
		aliases[alias] = grocery.Category(category)
	}
	overrides := make(map[string]grocery.Category, len(o.CategoryOverrides))
	for name, category := range o.CategoryOverrides {
		overrides[grocery.CanonicalName(name)] = grocery.Category(category)
	}
	return grocery.Options{
		PantryStaples:     o.PantryStaples,
		CategoryAliases:   aliases,
		CategoryOverrides: overrides,
	}
}

// MatcherConfig converts the loaded tables into matcher config.
func (o *Options) MatcherConfig() catalog.Config {
	return catalog.Config{
		Stopwords:  o.Stopwords,
		Qualifiers: o.Qualifiers,
		Threshold:  o.MatchThreshold,
	}
}
