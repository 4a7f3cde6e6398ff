// Package scenario registers the end-to-end scenarios run against the shop.
package scenario

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"e2eperf/internal/browser"
)

// Env is what a scenario gets to drive the browser
type Env struct {
	Page    browser.Page
	BaseURL string
	Log     logrus.FieldLogger
}

// Scenario is one named test case
type Scenario struct {
	Name    string
	Feature string
	Run     func(ctx context.Context, env Env) error
}

// Registry keeps scenarios in registration order
type Registry struct {
	scenarios []Scenario
	filter    *Filter
}

func NewRegistry(scenarios ...Scenario) *Registry {
	r := &Registry{filter: NewFilter()}
	for _, s := range scenarios {
		r.Register(s)
	}
	return r
}

// Register appends a scenario. Names must be unique.
func (r *Registry) Register(s Scenario) {
	for _, existing := range r.scenarios {
		if existing.Name == s.Name {
			panic(fmt.Sprintf("scenario %q registered twice", s.Name))
		}
	}
	r.scenarios = append(r.scenarios, s)
}

func (r *Registry) All() []Scenario {
	return append([]Scenario(nil), r.scenarios...)
}

// Select returns the scenarios whose name matches pattern
func (r *Registry) Select(pattern string) []Scenario {
	var selected []Scenario
	for _, s := range r.scenarios {
		if r.filter.Match(s.Name, pattern) {
			selected = append(selected, s)
		}
	}
	return selected
}
