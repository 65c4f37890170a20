package config

import (
	"fmt"

	"github.com/lgbarn/cgtcase/internal/errors"
	"github.com/lgbarn/cgtcase/internal/gamecase"
)

// ErrInvalidConfig is re-exported for callers that only import config.
var ErrInvalidConfig = errors.ErrInvalidConfig

// FilterConfig holds settings for case selection.
type FilterConfig struct {
	// Families keeps cases with at least one game of a listed family
	Families []string

	// Players keeps cases whose run command names a listed player ("B", "W", "N")
	Players []string
}

// NewFilterConfig creates a FilterConfig with default values.
// Empty lists disable filtering.
func NewFilterConfig() *FilterConfig {
	return &FilterConfig{}
}

func (f *FilterConfig) clone() *FilterConfig {
	return &FilterConfig{
		Families: append([]string(nil), f.Families...),
		Players:  append([]string(nil), f.Players...),
	}
}

// Active reports whether any filter is set.
func (f *FilterConfig) Active() bool {
	return len(f.Families) > 0 || len(f.Players) > 0
}

// Validate checks that the filter configuration is valid.
func (f *FilterConfig) Validate() error {
	for _, p := range f.Players {
		if _, ok := gamecase.ParsePlayer(p); !ok {
			return fmt.Errorf("player filter %q: %w", p, errors.ErrInvalidConfig)
		}
	}
	for _, fam := range f.Families {
		if fam == "" {
			return fmt.Errorf("empty family filter: %w", errors.ErrInvalidConfig)
		}
	}
	return nil
}

// Matches reports whether c passes every active filter.
func (f *FilterConfig) Matches(c *gamecase.Case) bool {
	if len(f.Players) > 0 && !contains(f.Players, c.Command.Player.String()) {
		return false
	}
	if len(f.Families) > 0 {
		found := false
		for _, fam := range c.Families() {
			if contains(f.Families, fam) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
