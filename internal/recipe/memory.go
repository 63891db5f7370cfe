// Package recipe provides an in-memory recipe collection and serves it over
// the same HTTP surface the client consumes. It backs `recipedesk serve`
// and the end-to-end tests.
package recipe

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// MemoryStore holds recipes in memory. Safe for concurrent access.
// Recipe and ingredient ids are assigned by the store.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes map[int]*domain.RecipeSummary
	nextID  int
	nextIng int
	log     *logger.Logger
}

// NewMemoryStore creates a store preloaded with built-in recipes.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	s := &MemoryStore{
		recipes: make(map[int]*domain.RecipeSummary),
		nextID:  1,
		nextIng: 1,
		log:     log,
	}
	s.seed()
	return s
}

// List returns all recipes ordered by id.
func (s *MemoryStore) List(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all recipes, count=%d", len(s.recipes))
	return s.collect(func(*domain.RecipeSummary) bool { return true }), nil
}

// Search returns recipes whose name, procedure or any ingredient contains
// the query, case-insensitively.
func (s *MemoryStore) Search(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	s.log.Debug("searching recipes for: %s", q)
	return s.collect(func(r *domain.RecipeSummary) bool { return matches(r, q) }), nil
}

// Get returns a recipe by id.
func (s *MemoryStore) Get(ctx context.Context, id int) (*domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[id]
	if !ok {
		s.log.Debug("recipe not found: %d", id)
		return nil, domain.ErrNotFound
	}
	cp := clone(r)
	return &cp, nil
}

// Create stores a new recipe and returns it with its assigned ids.
func (s *MemoryStore) Create(ctx context.Context, name, procedure string, ingredients []string) (*domain.RecipeSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := &domain.RecipeSummary{
		ID:          s.nextID,
		Name:        name,
		Procedure:   procedure,
		Ingredients: s.ingredients(ingredients),
	}
	s.nextID++
	s.recipes[r.ID] = r
	s.log.Info("recipe created: %s (#%d)", r.Name, r.ID)
	cp := clone(r)
	return &cp, nil
}

// Update replaces a recipe's fields. Ingredients get fresh ids.
func (s *MemoryStore) Update(ctx context.Context, id int, name, procedure string, ingredients []string) (*domain.RecipeSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recipes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.Name = name
	r.Procedure = procedure
	r.Ingredients = s.ingredients(ingredients)
	s.log.Info("recipe updated: %s (#%d)", r.Name, r.ID)
	cp := clone(r)
	return &cp, nil
}

// Delete removes a recipe.
func (s *MemoryStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.recipes, id)
	s.log.Debug("deleted recipe #%d", id)
	return nil
}

// ingredients wraps names with fresh ids. Caller holds the write lock.
func (s *MemoryStore) ingredients(names []string) []domain.Ingredient {
	out := make([]domain.Ingredient, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Ingredient{ID: s.nextIng, Name: n})
		s.nextIng++
	}
	return out
}

// collect copies matching recipes out, ordered by id. Caller holds a lock.
func (s *MemoryStore) collect(keep func(*domain.RecipeSummary) bool) []domain.RecipeSummary {
	out := make([]domain.RecipeSummary, 0, len(s.recipes))
	for _, r := range s.recipes {
		if keep(r) {
			out = append(out, clone(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func matches(r *domain.RecipeSummary, query string) bool {
	if strings.Contains(strings.ToLower(r.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Procedure), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing.Name), query) {
			return true
		}
	}
	return false
}

func clone(r *domain.RecipeSummary) domain.RecipeSummary {
	cp := *r
	cp.Ingredients = append([]domain.Ingredient(nil), r.Ingredients...)
	return cp
}

// seed populates the store with built-in recipes.
func (s *MemoryStore) seed() {
	builtin := []struct {
		name, procedure string
		ingredients     []string
	}{
		{
			"Chicken Alfredo",
			"Boil the spaghetti, sear the chicken, melt margarine with garlic and creme fraiche, fold in the gruyere and toss everything together.",
			[]string{"spaghetti", "chicken breast", "creme fraiche", "gruyere cheese", "margarine", "garlic"},
		},
		{
			"Vegetable Stir Fry",
			"Cook the rice, stir fry the vegetables on high heat, add soy sauce and serve over the rice.",
			[]string{"rice", "broccoli", "bell pepper", "carrot", "soy sauce"},
		},
	}
	for _, b := range builtin {
		r := &domain.RecipeSummary{
			ID:          s.nextID,
			Name:        b.name,
			Procedure:   b.procedure,
			Ingredients: s.ingredients(b.ingredients),
		}
		s.nextID++
		s.recipes[r.ID] = r
	}
	s.log.Debug("seeded %d recipes", len(builtin))
}
