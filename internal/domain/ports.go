package domain

import "context"

// RecipeAPI is the remote recipe collection. The HTTP client implements it;
// tests substitute fakes.
type RecipeAPI interface {
	// List returns all summaries, or those matching filter when it is non-nil.
	List(ctx context.Context, filter *string) ([]RecipeSummary, error)
	// Get returns a single recipe. An empty body yields ErrNotFound.
	Get(ctx context.Context, id RecordID) (*RecipeSummary, error)
	Create(ctx context.Context, edit RecipeEdit) error
	Update(ctx context.Context, edit RecipeEdit) error
	Delete(ctx context.Context, id RecordID) error
}

// Notifier delivers messages to the user. NotifyUrgent is the blocking
// kind: the user has to acknowledge it.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
