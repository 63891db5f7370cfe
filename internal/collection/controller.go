// Package collection owns the list of recipe summaries shown on the home
// screen and keeps it in step with the server.
//
// Operations return Bubble Tea commands. A command performs the request off
// the update loop and yields a [ListMsg]; [Controller.Apply] folds it into
// the state on the loop. Completions for a torn down controller, or for a
// request superseded by a newer one, are dropped.
package collection

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/recipedesk/internal/api"
	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/lifecycle"
	"github.com/hammamikhairi/recipedesk/internal/logger"
	"github.com/hammamikhairi/recipedesk/internal/nav"
	"github.com/hammamikhairi/recipedesk/internal/wire"
)

// Status is the outcome of the last completed fetch.
type Status int

const (
	StatusPending Status = iota
	StatusOK
	StatusError
)

// String returns a human-readable status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return "pending"
	}
}

// State is replaced wholesale on every fetch completion.
type State struct {
	Recipes []domain.RecipeSummary
	Status  Status
	Detail  string
}

// InlineText is what the list's status region shows.
func (s State) InlineText() string {
	switch s.Status {
	case StatusOK:
		return "OK"
	case StatusError:
		return s.Detail
	default:
		return ""
	}
}

// Row is the display projection of one summary.
type Row struct {
	ID          domain.RecordID
	Name        string
	Procedure   string
	Ingredients string
	Link        string
}

// ListMsg carries a list fetch completion.
type ListMsg struct {
	stamp   lifecycle.Stamp
	Filter  *string
	Recipes []domain.RecipeSummary
	Err     error
}

// Controller owns the collection state. Its methods are meant to be called
// from a single goroutine (the update loop).
type Controller struct {
	ctx      context.Context
	api      domain.RecipeAPI
	notifier domain.Notifier
	log      *logger.Logger
	token    *lifecycle.Token
	state    State
	filter   *string
}

// New creates a controller with an empty, pending state. ctx bounds the
// requests it issues.
func New(ctx context.Context, recipes domain.RecipeAPI, notifier domain.Notifier, log *logger.Logger) *Controller {
	return &Controller{
		ctx:      ctx,
		api:      recipes,
		notifier: notifier,
		log:      log,
		token:    lifecycle.New(),
	}
}

// State returns the current state. The recipe slice is shared; do not
// modify it.
func (c *Controller) State() State { return c.state }

// Filter returns the filter of the most recent fetch, if any.
func (c *Controller) Filter() (string, bool) {
	if c.filter == nil {
		return "", false
	}
	return *c.filter, true
}

// FetchList issues a list request, filtered when filter is non-nil. It
// returns nil once the controller is torn down.
func (c *Controller) FetchList(filter *string) tea.Cmd {
	if !c.token.Alive() {
		return nil
	}

	var f *string
	if filter != nil {
		v := *filter
		f = &v
	}
	c.filter = f

	stamp := c.token.Stamp()
	ctx, recipes, log := c.ctx, c.api, c.log
	return func() tea.Msg {
		if f != nil {
			log.Debug("collection: fetching recipes (q=%q)", *f)
		} else {
			log.Debug("collection: fetching recipes")
		}
		out, err := recipes.List(ctx, f)
		return ListMsg{stamp: stamp, Filter: f, Recipes: out, Err: err}
	}
}

// Refresh re-issues an unfiltered fetch.
func (c *Controller) Refresh() tea.Cmd { return c.FetchList(nil) }

// ApplyStaleSignal consumes the stale signal and, if it was raised,
// returns an unfiltered fetch.
func (c *Controller) ApplyStaleSignal(sig *nav.Signal) tea.Cmd {
	if sig == nil || !sig.Consume() {
		return nil
	}
	c.log.Debug("collection: stale signal consumed, refetching")
	return c.FetchList(nil)
}

// Apply folds a completion into the state. Failures that are not HTTP
// statuses also produce a command delivering a blocking notification.
func (c *Controller) Apply(msg ListMsg) tea.Cmd {
	if !c.token.Current(msg.stamp) {
		c.log.Debug("collection: dropping stale list completion")
		return nil
	}

	if msg.Err != nil {
		c.state = State{Status: StatusError, Detail: msg.Err.Error()}
		c.log.Warn("collection: fetch failed: %v", msg.Err)
		if api.IsHTTPError(msg.Err) {
			return nil
		}
		ctx, notifier, log, text := c.ctx, c.notifier, c.log, msg.Err.Error()
		return func() tea.Msg {
			if err := notifier.NotifyUrgent(ctx, text); err != nil {
				log.Error("collection: alert failed: %v", err)
			}
			return nil
		}
	}

	recipes := msg.Recipes
	if recipes == nil {
		recipes = []domain.RecipeSummary{}
	}
	c.state = State{Recipes: recipes, Status: StatusOK}
	c.log.Debug("collection: %d recipes loaded", len(recipes))
	return nil
}

// Rows projects the current recipes for display, one per summary.
func (c *Controller) Rows() []Row {
	rows := make([]Row, len(c.state.Recipes))
	for i, r := range c.state.Recipes {
		id := domain.RecordIDOf(r.ID)
		rows[i] = Row{
			ID:          id,
			Name:        r.Name,
			Procedure:   r.Procedure,
			Ingredients: wire.JoinIngredients(wire.IngredientNames(r.Ingredients)),
			Link:        nav.EditPath(id),
		}
	}
	return rows
}

// Find returns a copy of the summary the id refers to, for seeding an
// editor without a network round trip.
func (c *Controller) Find(id domain.RecordID) (*domain.RecipeSummary, bool) {
	for _, r := range c.state.Recipes {
		if id.Matches(r.ID) {
			cp := r
			cp.Ingredients = append([]domain.Ingredient(nil), r.Ingredients...)
			return &cp, true
		}
	}
	return nil, false
}

// Teardown stops the controller from accepting completions.
func (c *Controller) Teardown() {
	if c.token.Teardown() {
		c.log.Debug("collection: torn down")
	}
}
