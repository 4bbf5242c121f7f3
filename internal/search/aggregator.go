// Package search aggregates free-text search across projects, customers
// and resources. The three collections are fetched in parallel and
// filtered client-side; the backend has no search endpoint.
package search

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/voguesoftware/projectdash/internal/models"
)

// Source is the slice of the gateway the aggregator needs.
type Source interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListResources(ctx context.Context) ([]models.Resource, error)
}

// Match is the minimal projection shown in result lists; ID is enough to
// navigate to the detail view.
type Match struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Results struct {
	Projects  []Match `json:"projects"`
	Customers []Match `json:"customers"`
	Resources []Match `json:"resources"`
}

func emptyResults() Results {
	return Results{Projects: []Match{}, Customers: []Match{}, Resources: []Match{}}
}

type Aggregator struct {
	src Source
}

func New(src Source) *Aggregator { return &Aggregator{src: src} }

// Search runs the aggregation for a query. A trimmed-empty query returns
// empty groups without touching the network. Any one collection failing
// fails the whole search with a single error; per-kind partial results
// are not reported.
func (a *Aggregator) Search(ctx context.Context, query string) (Results, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return emptyResults(), nil
	}
	lower := strings.ToLower(q)

	res := emptyResults()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		projects, err := a.src.ListProjects(ctx)
		if err != nil {
			return err
		}
		for _, p := range projects {
			if matchProject(p, lower) {
				res.Projects = append(res.Projects, Match{ID: p.ID, Name: p.Name})
			}
		}
		return nil
	})
	g.Go(func() error {
		customers, err := a.src.ListCustomers(ctx)
		if err != nil {
			return err
		}
		for _, c := range customers {
			if matchCustomer(c, q, lower) {
				res.Customers = append(res.Customers, Match{ID: c.ID, Name: c.Name})
			}
		}
		return nil
	})
	g.Go(func() error {
		resources, err := a.src.ListResources(ctx)
		if err != nil {
			return err
		}
		for _, r := range resources {
			if matchResource(r, lower) {
				res.Resources = append(res.Resources, Match{ID: r.ID, Name: r.Name})
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return emptyResults(), fmt.Errorf("search %q: %w", q, err)
	}
	return res, nil
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

func matchProject(p models.Project, lower string) bool {
	return containsFold(p.Name, lower) || containsFold(p.Description, lower)
}

// Phone is matched as an exact substring, not lowercased, matching the
// source behavior for that one field.
func matchCustomer(c models.Customer, raw, lower string) bool {
	return containsFold(c.Name, lower) ||
		containsFold(c.ContactPerson, lower) ||
		containsFold(c.Email, lower) ||
		strings.Contains(c.Phone, raw) ||
		containsFold(c.Address, lower)
}

func matchResource(r models.Resource, lower string) bool {
	if containsFold(r.Name, lower) {
		return true
	}
	for _, f := range r.Files {
		if containsFold(f.FileName, lower) {
			return true
		}
	}
	return false
}
