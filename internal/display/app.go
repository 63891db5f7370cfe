package display

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/recipedesk/internal/collection"
	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/editor"
	"github.com/hammamikhairi/recipedesk/internal/logger"
	"github.com/hammamikhairi/recipedesk/internal/nav"
	"github.com/hammamikhairi/recipedesk/internal/wire"
)

// Messages handled by the App itself.
type (
	navigateMsg nav.Intent
	flashMsg    string
	alertMsg    struct {
		text string
		ack  chan struct{}
	}
)

// Navigate returns a command that asks the App to show intent.Path.
func Navigate(intent nav.Intent) tea.Cmd {
	return func() tea.Msg { return navigateMsg(intent) }
}

// form field order on the editor screen.
var formFields = []ElementID{ElemNameInput, ElemProcedureInput, ElemIngredientsInput}

// App is the root Bubble Tea model.
type App struct {
	ctx      context.Context
	api      domain.RecipeAPI
	log      *logger.Logger
	coll     *collection.Controller
	editor   *editor.Editor // nil unless an editor route is shown
	stale    nav.Signal
	route    nav.Route
	startAt  string
	quitting bool

	// list screen
	filter textinput.Model
	table  table.Model

	// editor screen
	inputs    map[ElementID]*textinput.Model
	formFocus int

	alert  *alertMsg
	queued []alertMsg // alerts waiting behind the one shown
	flash  string
	width  int
}

// NewApp builds the root model. The collection controller reports list
// failures through notifier. startPath is the first route shown.
func NewApp(ctx context.Context, recipes domain.RecipeAPI, notifier domain.Notifier, log *logger.Logger, startPath string) *App {
	filter := textinput.New()
	filter.Prompt = "filter> "
	filter.Placeholder = "Filter recipes"
	filter.PromptStyle = promptStyle
	filter.CharLimit = 200
	filter.Width = 40
	filter.Cursor.SetMode(cursor.CursorStatic)

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithHeight(12),
		table.WithFocused(true),
	)

	if startPath == "" {
		startPath = nav.PathHome
	}
	return &App{
		ctx:     ctx,
		api:     recipes,
		log:     log,
		coll:    collection.New(ctx, recipes, notifier, log),
		startAt: startPath,
		filter:  filter,
		table:   t,
	}
}

func columns(width int) []table.Column {
	if width < 60 {
		width = 60
	}
	w := width - 8
	return []table.Column{
		{Title: "Name", Width: w / 4},
		{Title: "Procedure", Width: w / 2},
		{Title: "Ingredients", Width: w / 4},
	}
}

// Init issues the initial list fetch and shows the start route.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.coll.FetchList(nil),
		Navigate(nav.Intent{Path: a.startAt}),
	)
}

// Update is the single place where state changes.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.table.SetColumns(columns(msg.Width))
		a.table.SetWidth(msg.Width - 2)
		return a, nil

	case alertMsg:
		if a.quitting {
			close(msg.ack)
			return a, nil
		}
		if a.alert != nil {
			a.queued = append(a.queued, msg)
			return a, nil
		}
		a.alert = &msg
		return a, nil

	case flashMsg:
		a.flash = string(msg)
		return a, nil

	case navigateMsg:
		return a, a.navigate(nav.Intent(msg))

	case collection.ListMsg:
		cmd := a.coll.Apply(msg)
		a.syncTable()
		return a, cmd

	case editor.RecordMsg, editor.SubmitMsg, editor.DeleteMsg:
		if a.editor == nil {
			// The editor was torn down before its request resolved.
			return a, nil
		}
		leave := a.editor.Apply(msg)
		a.syncInputsFromDraft(msg)
		if leave {
			return a, Navigate(nav.Home())
		}
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)
	}

	return a, a.updateFocused(msg)
}

// navigate tears down the current screen and builds the one for intent.
func (a *App) navigate(intent nav.Intent) tea.Cmd {
	if intent.Refresh {
		a.stale.Mark()
	}
	if a.editor != nil {
		a.editor.Teardown()
		a.editor = nil
		a.inputs = nil
	}

	route := nav.Match(intent.Path)
	a.log.Debug("display: navigate %s -> %s", intent.Path, route.Kind)
	a.route = route
	a.flash = ""

	switch route.Kind {
	case nav.RouteList:
		a.filter.Focus()
		a.syncTable()
		return a.coll.ApplyStaleSignal(&a.stale)

	case nav.RouteCreate:
		a.filter.Blur()
		e, cmd := editor.New(a.ctx, a.api, a.log, editor.Seed{RecordID: domain.NewRecord})
		a.openEditor(e)
		return cmd

	case nav.RouteEdit:
		a.filter.Blur()
		rec, _ := a.coll.Find(route.ID)
		e, cmd := editor.New(a.ctx, a.api, a.log, editor.Seed{Recipe: rec, RecordID: route.ID})
		a.openEditor(e)
		return cmd
	}

	a.log.Warn("display: no route for %q", intent.Path)
	return a.navigate(nav.Intent{Path: nav.PathHome})
}

func (a *App) openEditor(e *editor.Editor) {
	a.editor = e
	a.inputs = make(map[ElementID]*textinput.Model, len(formFields))
	a.formFocus = 0

	required := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return editor.ErrRequired
		}
		return nil
	}

	for i, id := range formFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 1000
		ti.Width = 60
		ti.Cursor.SetMode(cursor.CursorStatic)
		switch id {
		case ElemNameInput:
			ti.Validate = required
		case ElemProcedureInput:
			ti.Validate = required
		case ElemIngredientsInput:
			ti.Placeholder = "comma separated"
		}
		if i == 0 {
			ti.Focus()
		}
		a.inputs[id] = &ti
	}
	a.fillInputs()
}

// fillInputs copies the editor draft into the inputs.
func (a *App) fillInputs() {
	d := a.editor.State().Draft
	a.inputs[ElemNameInput].SetValue(d.Name)
	a.inputs[ElemProcedureInput].SetValue(d.Procedure)
	a.inputs[ElemIngredientsInput].SetValue(wire.JoinIngredients(d.Ingredients))
}

// syncInputsFromDraft refreshes the inputs after a record load; other
// completions leave what the user typed alone.
func (a *App) syncInputsFromDraft(msg tea.Msg) {
	if _, ok := msg.(editor.RecordMsg); ok && a.editor != nil {
		a.fillInputs()
	}
}

// syncTable rebuilds the table rows from the controller.
func (a *App) syncTable() {
	rows := a.coll.Rows()
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row{r.Name, r.Procedure, r.Ingredients}
	}
	a.table.SetRows(out)
	if c := a.table.Cursor(); c >= len(out) && len(out) > 0 {
		a.table.SetCursor(len(out) - 1)
	}
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		a.quit()
		return tea.Quit
	}

	if a.alert != nil {
		// The alert blocks everything until acknowledged.
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeySpace:
			a.dismissAlert()
		}
		return nil
	}

	switch a.route.Kind {
	case nav.RouteList:
		return a.handleListKey(msg)
	case nav.RouteCreate, nav.RouteEdit:
		return a.handleFormKey(msg)
	}
	return nil
}

func (a *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		a.quit()
		return tea.Quit
	case tea.KeyCtrlR:
		return a.coll.Refresh()
	case tea.KeyCtrlN:
		return Navigate(nav.Intent{Path: nav.PathCreate})
	case tea.KeyUp:
		a.table.MoveUp(1)
		return nil
	case tea.KeyDown:
		a.table.MoveDown(1)
		return nil
	case tea.KeyEnter:
		rows := a.coll.Rows()
		if c := a.table.Cursor(); c >= 0 && c < len(rows) {
			return Navigate(nav.Intent{Path: rows[c].Link})
		}
		return nil
	}

	before := a.filter.Value()
	var cmd tea.Cmd
	a.filter, cmd = a.filter.Update(msg)
	if v := a.filter.Value(); v != before {
		return tea.Batch(cmd, a.coll.FetchList(&v))
	}
	return cmd
}

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		return Navigate(nav.Intent{Path: nav.PathHome})
	case tea.KeyTab, tea.KeyDown:
		a.focusField(a.formFocus + 1)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.focusField(a.formFocus - 1)
		return nil
	}

	// Actions and typing wait while the record loads or a request is out.
	if !a.editor.State().Phase.Interactive() {
		return nil
	}

	switch msg.Type {
	case tea.KeyCtrlS:
		return a.submit()
	case tea.KeyEnter:
		if a.formFocus == len(formFields)-1 {
			return a.submit()
		}
		a.focusField(a.formFocus + 1)
		return nil
	case tea.KeyCtrlD:
		return a.editor.Delete()
	}

	id := formFields[a.formFocus]
	in := a.inputs[id]
	updated, cmd := in.Update(msg)
	*in = updated
	a.pushField(id, in.Value())
	return cmd
}

// pushField forwards one input's text to the editor draft.
func (a *App) pushField(id ElementID, value string) {
	switch id {
	case ElemNameInput:
		a.editor.SetName(value)
	case ElemProcedureInput:
		a.editor.SetProcedure(value)
	case ElemIngredientsInput:
		a.editor.SetIngredientsText(value)
	}
}

// submit fires only when every required input is filled in.
func (a *App) submit() tea.Cmd {
	for _, id := range formFields {
		in := a.inputs[id]
		if in.Validate != nil {
			if err := in.Validate(in.Value()); err != nil {
				a.flash = "name and procedure are required"
				a.focusField(indexOf(id))
				return nil
			}
		}
	}
	a.flash = ""
	return a.editor.Submit()
}

func (a *App) focusField(i int) {
	n := len(formFields)
	i = ((i % n) + n) % n
	a.inputs[formFields[a.formFocus]].Blur()
	a.formFocus = i
	a.inputs[formFields[i]].Focus()
}

func indexOf(id ElementID) int {
	for i, f := range formFields {
		if f == id {
			return i
		}
	}
	return 0
}

// updateFocused forwards non-key messages (cursor blink) to the focused input.
func (a *App) updateFocused(msg tea.Msg) tea.Cmd {
	switch a.route.Kind {
	case nav.RouteList:
		var cmd tea.Cmd
		a.filter, cmd = a.filter.Update(msg)
		return cmd
	case nav.RouteCreate, nav.RouteEdit:
		if a.inputs == nil {
			return nil
		}
		in := a.inputs[formFields[a.formFocus]]
		updated, cmd := in.Update(msg)
		*in = updated
		return cmd
	}
	return nil
}

func (a *App) quit() {
	if a.quitting {
		return
	}
	a.quitting = true
	if a.editor != nil {
		a.editor.Teardown()
	}
	a.coll.Teardown()
	for a.alert != nil {
		a.dismissAlert()
	}
}

// dismissAlert acknowledges the alert shown and brings up the next one.
func (a *App) dismissAlert() {
	close(a.alert.ack)
	a.alert = nil
	if len(a.queued) > 0 {
		next := a.queued[0]
		a.queued = a.queued[1:]
		a.alert = &next
	}
}

// Route returns the route currently shown.
func (a *App) Route() nav.Route { return a.route }

// Editor returns the open editor, or nil on the list screen.
func (a *App) Editor() *editor.Editor { return a.editor }

// Collection returns the list controller.
func (a *App) Collection() *collection.Controller { return a.coll }
