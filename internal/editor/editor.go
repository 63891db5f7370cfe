// Package editor owns the state of a single recipe while it is created or
// edited: loading it, field edits, submission and deletion.
//
// Like the collection controller, every network operation returns a Bubble
// Tea command whose message is folded back in by [Editor.Apply] on the
// update loop. A successful mutation, or a record that turns out not to
// exist, ends the editor's life with a single navigation request.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/lifecycle"
	"github.com/hammamikhairi/recipedesk/internal/logger"
	"github.com/hammamikhairi/recipedesk/internal/wire"
)

// Errors returned by field edits and validation.
var (
	ErrRequired  = errors.New("required field is empty")
	ErrFieldType = errors.New("wrong value type for field")
)

// Phase is where the editor is in its lifecycle.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseLoading
	PhaseSubmitting
	PhaseDeleting
	PhaseFailed
	PhaseDone
)

// String returns a human-readable phase.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseLoading:
		return "loading"
	case PhaseSubmitting:
		return "submitting"
	case PhaseDeleting:
		return "deleting"
	case PhaseFailed:
		return "failed"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Interactive reports whether the user may edit and trigger actions.
func (p Phase) Interactive() bool { return p == PhaseReady || p == PhaseFailed }

// Field names an editable field of the draft.
type Field int

const (
	FieldName Field = iota
	FieldProcedure
	FieldIngredients
)

// String returns the field's input name.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldProcedure:
		return "procedure"
	case FieldIngredients:
		return "ingredients"
	default:
		return "unknown"
	}
}

// Seed selects the construction mode. A non-nil Recipe seeds the draft
// directly; otherwise a valid RecordID triggers a fetch; otherwise the
// editor creates a new recipe.
type Seed struct {
	Recipe   *domain.RecipeSummary
	RecordID domain.RecordID
}

// State is a snapshot of the editor.
type State struct {
	RecordID     domain.RecordID // empty in creation mode
	Draft        domain.RecipeEdit
	NavigateAway bool
	Detail       string
	Phase        Phase
}

// Completion messages.
type (
	// RecordMsg carries a single-record fetch completion.
	RecordMsg struct {
		stamp  lifecycle.Stamp
		Recipe *domain.RecipeSummary
		Err    error
	}
	// SubmitMsg carries a create or update completion.
	SubmitMsg struct {
		stamp lifecycle.Stamp
		Err   error
	}
	// DeleteMsg carries a delete completion.
	DeleteMsg struct {
		stamp lifecycle.Stamp
		Err   error
	}
)

// Editor owns one recipe's edit state. Its methods are meant to be called
// from a single goroutine (the update loop).
type Editor struct {
	ctx   context.Context
	api   domain.RecipeAPI
	log   *logger.Logger
	token *lifecycle.Token
	state State
}

// New builds an editor in the mode selected by seed. The returned command
// is the initial fetch when the record has to be loaded, nil otherwise.
func New(ctx context.Context, recipes domain.RecipeAPI, log *logger.Logger, seed Seed) (*Editor, tea.Cmd) {
	e := &Editor{
		ctx:   ctx,
		api:   recipes,
		log:   log,
		token: lifecycle.New(),
	}

	switch {
	case seed.Recipe != nil:
		id := seed.RecordID
		if !id.Valid() {
			id = domain.RecordIDOf(seed.Recipe.ID)
		}
		e.state = State{RecordID: id, Draft: wire.ToEdit(*seed.Recipe, id), Phase: PhaseReady}
		log.Debug("editor: seeded with recipe %s", id)
		return e, nil

	case seed.RecordID.Valid():
		e.state = State{RecordID: seed.RecordID, Draft: domain.RecipeEdit{ID: seed.RecordID}}
		log.Debug("editor: loading recipe %s", seed.RecordID)
		return e, e.FetchRecord(seed.RecordID)

	default:
		e.state = State{Phase: PhaseReady}
		log.Debug("editor: creating new recipe")
		return e, nil
	}
}

// State returns a snapshot. The draft's ingredient slice is copied.
func (e *Editor) State() State {
	s := e.state
	s.Draft.Ingredients = append([]string(nil), e.state.Draft.Ingredients...)
	return s
}

// Creating reports whether the editor is in creation mode.
func (e *Editor) Creating() bool { return e.state.RecordID == "" }

// Title is the heading shown above the form.
func (e *Editor) Title() string {
	if e.Creating() {
		return "Create new recipe"
	}
	return "Currently editing recipe no " + e.state.RecordID.String()
}

// FetchRecord loads the record into the draft. It returns nil for an id
// that is not a non-negative integer.
func (e *Editor) FetchRecord(id domain.RecordID) tea.Cmd {
	if !id.Valid() || !e.token.Alive() {
		return nil
	}
	e.state.Phase = PhaseLoading

	stamp := e.token.Stamp()
	ctx, recipes := e.ctx, e.api
	return func() tea.Msg {
		r, err := recipes.Get(ctx, id)
		return RecordMsg{stamp: stamp, Recipe: r, Err: err}
	}
}

// EditField overwrites one field of the draft. Name and procedure take a
// string; ingredients take a []string already split by the caller.
func (e *Editor) EditField(field Field, value any) error {
	switch field {
	case FieldName, FieldProcedure:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("editor: %s: %w (%T)", field, ErrFieldType, value)
		}
		if field == FieldName {
			e.state.Draft.Name = s
		} else {
			e.state.Draft.Procedure = s
		}
	case FieldIngredients:
		list, ok := value.([]string)
		if !ok {
			return fmt.Errorf("editor: %s: %w (%T)", field, ErrFieldType, value)
		}
		e.state.Draft.Ingredients = append([]string(nil), list...)
	default:
		return fmt.Errorf("editor: unknown field %d", field)
	}
	return nil
}

// SetName sets the draft's name.
func (e *Editor) SetName(s string) { _ = e.EditField(FieldName, s) }

// SetProcedure sets the draft's procedure.
func (e *Editor) SetProcedure(s string) { _ = e.EditField(FieldProcedure, s) }

// SetIngredientsText splits comma separated input into the draft's
// ingredients.
func (e *Editor) SetIngredientsText(s string) {
	_ = e.EditField(FieldIngredients, wire.SplitIngredients(s))
}

// Validate checks the required fields.
func (e *Editor) Validate() error {
	var missing []string
	if strings.TrimSpace(e.state.Draft.Name) == "" {
		missing = append(missing, FieldName.String())
	}
	if strings.TrimSpace(e.state.Draft.Procedure) == "" {
		missing = append(missing, FieldProcedure.String())
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrRequired, strings.Join(missing, ", "))
	}
	return nil
}

// Submit creates or updates the recipe. It returns nil, and nothing is
// sent, when a required field is empty or the editor is not interactive
// (loading, busy or finished).
func (e *Editor) Submit() tea.Cmd {
	if !e.state.Phase.Interactive() || !e.token.Alive() {
		e.log.Debug("editor: submit ignored in phase %s", e.state.Phase)
		return nil
	}
	if err := e.Validate(); err != nil {
		e.log.Debug("editor: submit blocked: %v", err)
		return nil
	}

	draft := e.State().Draft
	draft.ID = e.state.RecordID
	e.state.Phase = PhaseSubmitting

	stamp := e.token.Stamp()
	ctx, recipes, log := e.ctx, e.api, e.log
	return func() tea.Msg {
		var err error
		if draft.IsNew() {
			log.Debug("editor: creating %q", draft.Name)
			err = recipes.Create(ctx, draft)
		} else {
			log.Debug("editor: updating %s", draft.ID)
			err = recipes.Update(ctx, draft)
		}
		return SubmitMsg{stamp: stamp, Err: err}
	}
}

// Delete removes the record being edited. It returns nil in creation mode
// and whenever Submit would.
func (e *Editor) Delete() tea.Cmd {
	if e.Creating() || !e.state.Phase.Interactive() || !e.token.Alive() {
		return nil
	}
	e.state.Phase = PhaseDeleting

	id := e.state.RecordID
	stamp := e.token.Stamp()
	ctx, recipes := e.ctx, e.api
	return func() tea.Msg {
		return DeleteMsg{stamp: stamp, Err: recipes.Delete(ctx, id)}
	}
}

// Apply folds a completion into the state. It reports true exactly once,
// when the editor first decides the caller should navigate away.
func (e *Editor) Apply(msg tea.Msg) bool {
	var stamp lifecycle.Stamp
	switch m := msg.(type) {
	case RecordMsg:
		stamp = m.stamp
	case SubmitMsg:
		stamp = m.stamp
	case DeleteMsg:
		stamp = m.stamp
	default:
		return false
	}
	if !e.token.Current(stamp) {
		e.log.Debug("editor: dropping stale %T", msg)
		return false
	}

	before := e.state.NavigateAway
	switch m := msg.(type) {
	case RecordMsg:
		e.applyRecord(m)
	case SubmitMsg:
		e.applyMutation("submit", m.Err)
	case DeleteMsg:
		e.applyMutation("delete", m.Err)
	}
	return !before && e.state.NavigateAway
}

func (e *Editor) applyRecord(m RecordMsg) {
	switch {
	case errors.Is(m.Err, domain.ErrNotFound), m.Err == nil && m.Recipe == nil:
		e.log.Info("editor: recipe %s not found, leaving", e.state.RecordID)
		e.state.NavigateAway = true
		e.state.Phase = PhaseDone
	case m.Err != nil:
		e.log.Warn("editor: load %s failed: %v", e.state.RecordID, m.Err)
		e.state.Detail = m.Err.Error()
		e.state.Phase = PhaseFailed
	default:
		e.state.Draft = wire.ToEdit(*m.Recipe, e.state.RecordID)
		e.state.Detail = ""
		e.state.Phase = PhaseReady
	}
}

func (e *Editor) applyMutation(op string, err error) {
	if err != nil {
		e.log.Warn("editor: %s failed: %v", op, err)
		e.state.NavigateAway = false
		e.state.Detail = err.Error()
		e.state.Phase = PhaseFailed
		return
	}
	e.log.Info("editor: %s succeeded", op)
	e.state.NavigateAway = true
	e.state.Detail = ""
	e.state.Phase = PhaseDone
}

// Teardown stops the editor from accepting completions.
func (e *Editor) Teardown() {
	if e.token.Teardown() {
		e.log.Debug("editor: torn down")
	}
}
