// Package extract turns a PageSnapshot into typed lead fields through
// ordered fallback strategies, regex detectors, and keyword classifiers.
package extract

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadgen-cli/internal/model"
)

// Strategy is one independent extraction attempt over a snapshot.
// Returning ("", nil) means no match; an error also counts as no match
// once it crosses the chain boundary.
type Strategy struct {
	Name string
	Fn   func(snap *model.PageSnapshot) (string, error)
}

// Chain tries strategies in priority order, returning the first
// non-empty trimmed result. Ordering encodes precedence: the most
// semantically reliable signal first, the most generic last. There is
// no re-ranking across strategies.
type Chain struct {
	Field      string
	strategies []Strategy
}

// NewChain creates a chain for the named field.
func NewChain(field string, strategies ...Strategy) *Chain {
	return &Chain{Field: field, strategies: strategies}
}

// First evaluates the chain and returns the first strategy's non-empty
// trimmed result, or nil if every strategy yields empty or whitespace.
// A failing strategy is treated as no match and never aborts the chain.
func (c *Chain) First(snap *model.PageSnapshot) *string {
	for _, s := range c.strategies {
		value, err := runStrategy(s, snap)
		if err != nil {
			zap.L().Debug("extract: strategy failed, trying next",
				zap.String("field", c.Field),
				zap.String("strategy", s.Name),
				zap.Error(err),
			)
			continue
		}
		if value != "" {
			return &value
		}
	}
	return nil
}

// runStrategy invokes a single strategy, converting a panic into an
// error so one misbehaving pattern cannot take down the chain.
func runStrategy(s Strategy, snap *model.PageSnapshot) (value string, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = ""
			err = eris.Errorf("extract: strategy %s panicked: %v", s.Name, r)
		}
	}()
	raw, err := s.Fn(snap)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}
