// Package config loads the defaults of the simpletable command.
//
// Values are layered with increasing precedence:
// built-in defaults, an optional config file read with viper,
// and SIMPLETABLE_* environment variables.
package config

import (
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"

	simpletable "github.com/domonda/go-simpletable"
	"github.com/domonda/go-simpletable/localeselect"
)

// EnvPrefix of all environment variables
const EnvPrefix = "SIMPLETABLE_"

// Defaults for rendering tables
type Defaults struct {
	// RowsPerPage are the selectable page sizes
	RowsPerPage []int `mapstructure:"rows_per_page" env:"ROWS_PER_PAGE" envSeparator:","`
	// EmptyMessage is shown when no row is visible
	EmptyMessage string `mapstructure:"empty_message" env:"EMPTY_MESSAGE"`
	// Format is the output format: text, html, csv or xlsx
	Format string `mapstructure:"format" env:"FORMAT"`
	// Locale for sorting text
	Locale string `mapstructure:"locale" env:"LOCALE"`
	// Locales that can be selected
	Locales []string `mapstructure:"locales" env:"LOCALES" envSeparator:","`
	// Prefix of the URL query keys
	Prefix string `mapstructure:"prefix" env:"PREFIX"`
	// IgnoreCase sorts text case-insensitively
	IgnoreCase bool `mapstructure:"ignore_case" env:"IGNORE_CASE"`
	// SearchCriteria are the row paths matched by a search
	SearchCriteria []string `mapstructure:"search_criteria" env:"SEARCH_CRITERIA" envSeparator:","`
}

// NewDefaults returns the built-in defaults.
func NewDefaults() *Defaults {
	return &Defaults{
		RowsPerPage:  slices.Clone(simpletable.DefaultRowsPerPage),
		EmptyMessage: simpletable.DefaultEmptyMessage,
		Format:       "text",
		Locale:       localeselect.DefaultLocale,
		Locales:      []string{"en", "de", "es", "fr", "it", "ja", "ko", "pt", "zh", "zh-tw", "hi", "ta"},
	}
}

// Load returns the defaults overridden by configFile if not empty
// and by environment variables.
func Load(configFile string) (*Defaults, error) {
	v := viper.New()
	def := NewDefaults()
	v.SetDefault("rows_per_page", def.RowsPerPage)
	v.SetDefault("empty_message", def.EmptyMessage)
	v.SetDefault("format", def.Format)
	v.SetDefault("locale", def.Locale)
	v.SetDefault("locales", def.Locales)
	v.SetDefault("prefix", def.Prefix)
	v.SetDefault("ignore_case", def.IgnoreCase)
	v.SetDefault("search_criteria", def.SearchCriteria)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	}

	var d Defaults
	if err := v.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := env.ParseWithOptions(&d, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &d, nil
}
