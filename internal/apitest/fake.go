// Package apitest provides a scriptable in-process domain.RecipeAPI for
// tests of the components that talk to the recipe server.
package apitest

import (
	"context"
	"sync"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// Compile-time interface check.
var _ domain.RecipeAPI = (*Fake)(nil)

// Call is one recorded API call.
type Call struct {
	Method string // GET, POST, PUT, DELETE
	Filter *string
	ID     domain.RecordID
	Edit   domain.RecipeEdit
}

// Fake answers with the configured results and records every call.
// Safe for concurrent use.
type Fake struct {
	mu    sync.Mutex
	calls []Call

	ListResult []domain.RecipeSummary
	ListErr    error
	GetResult  *domain.RecipeSummary
	GetErr     error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
}

// Calls returns a snapshot of the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many calls used method.
func (f *Fake) Count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *Fake) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *Fake) List(ctx context.Context, filter *string) ([]domain.RecipeSummary, error) {
	var fc *string
	if filter != nil {
		v := *filter
		fc = &v
	}
	f.record(Call{Method: "GET", Filter: fc})
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return append([]domain.RecipeSummary(nil), f.ListResult...), nil
}

func (f *Fake) Get(ctx context.Context, id domain.RecordID) (*domain.RecipeSummary, error) {
	f.record(Call{Method: "GET", ID: id})
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	if f.GetResult == nil {
		return nil, domain.ErrNotFound
	}
	r := *f.GetResult
	return &r, nil
}

func (f *Fake) Create(ctx context.Context, edit domain.RecipeEdit) error {
	f.record(Call{Method: "POST", Edit: edit})
	return f.CreateErr
}

func (f *Fake) Update(ctx context.Context, edit domain.RecipeEdit) error {
	f.record(Call{Method: "PUT", ID: edit.ID, Edit: edit})
	return f.UpdateErr
}

func (f *Fake) Delete(ctx context.Context, id domain.RecordID) error {
	f.record(Call{Method: "DELETE", ID: id})
	return f.DeleteErr
}

// Notifier records urgent notifications.
type Notifier struct {
	mu     sync.Mutex
	normal []string
	urgent []string
}

// Compile-time interface check.
var _ domain.Notifier = (*Notifier)(nil)

func (n *Notifier) Notify(ctx context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.normal = append(n.normal, message)
	return nil
}

func (n *Notifier) NotifyUrgent(ctx context.Context, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.urgent = append(n.urgent, message)
	return nil
}

// Urgent returns the urgent messages seen so far.
func (n *Notifier) Urgent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.urgent...)
}
