// Package mealgen picks meals for a user profile from the food catalog.
//
// Every operation is a pure function of the catalog, the profile and the
// random source. Nothing here logs or retries; failures are returned to the
// caller as typed errors.
package mealgen

import (
	"math/rand"
	"time"

	"diet-planner/internal/catalog"
)

// Intn returns an index in [0, n). n is always > 0.
type Intn func(n int) int

type Generator struct {
	catalog *catalog.Catalog
	intn    Intn
	newID   func() string
	now     func() time.Time
}

type Option func(*Generator)

// WithIntn injects the random source used for picks and shuffles.
func WithIntn(fn Intn) Option {
	return func(g *Generator) {
		g.intn = fn
	}
}

func WithIDFunc(fn func() string) Option {
	return func(g *Generator) {
		g.newID = fn
	}
}

func WithClock(fn func() time.Time) Option {
	return func(g *Generator) {
		g.now = fn
	}
}

func New(cat *catalog.Catalog, opts ...Option) *Generator {
	g := &Generator{
		catalog: cat,
		intn:    rand.Intn,
		newID:   newUUID,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// shuffle is a Fisher-Yates shuffle driven by the injected source.
func shuffle[T any](intn Intn, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
