package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipedesk/internal/collection"
	"github.com/hammamikhairi/recipedesk/internal/editor"
	"github.com/hammamikhairi/recipedesk/internal/nav"
)

// View renders the current screen, or the alert on top of everything.
func (a *App) View() string {
	if a.quitting {
		return ""
	}
	if a.alert != nil {
		return a.viewAlert()
	}

	var b strings.Builder
	b.WriteString(hintStyle.Render(hint("ctrl+n", ElemGoToCreate) + "   " + hint("esc", ElemGoHome)))
	b.WriteString("\n\n")

	switch a.route.Kind {
	case nav.RouteCreate, nav.RouteEdit:
		b.WriteString(a.viewForm())
	default:
		b.WriteString(a.viewList())
	}

	if a.flash != "" {
		b.WriteString("\n")
		b.WriteString(flashStyle.Render(a.flash))
	}
	b.WriteByte('\n')
	return b.String()
}

func (a *App) viewList() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recipes"))
	b.WriteString("\n\n")
	b.WriteString(a.table.View())
	b.WriteString("\n\n")
	b.WriteString(a.filter.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(hint("enter", ElemEditButton) + "   " + hint("ctrl+r", ElemFetchButton) + "   " + hint("ctrl+n", ElemNewButton)))

	st := a.coll.State()
	if text := st.InlineText(); text != "" {
		b.WriteString("\n")
		if st.Status == collection.StatusError {
			b.WriteString(errorStyle.Render(text))
		} else {
			b.WriteString(okStyle.Render(text))
		}
	}
	return b.String()
}

func (a *App) viewForm() string {
	if a.editor == nil || a.inputs == nil {
		return ""
	}
	st := a.editor.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render(a.editor.Title()))
	b.WriteString("\n\n")

	if st.Phase == editor.PhaseLoading {
		b.WriteString(hintStyle.Render("loading…"))
		b.WriteString("\n\n")
	}

	labels := map[ElementID]string{
		ElemNameInput:        "Name:",
		ElemProcedureInput:   "Procedure:",
		ElemIngredientsInput: "Ingredients (comma separated):",
	}
	for i, id := range formFields {
		style := promptStyle
		if i == a.formFocus {
			style = focusedPromptStyle
		}
		b.WriteString(style.Render(labels[id]))
		b.WriteByte('\n')
		b.WriteString(a.inputs[id].View())
		b.WriteString("\n\n")
	}

	actions := hint("ctrl+s", ElemSubmitButton)
	if !a.editor.Creating() {
		actions += "   " + hint("ctrl+d", ElemDeleteButton)
	}
	actions += "   [esc] Back"
	b.WriteString(hintStyle.Render(actions))

	switch st.Phase {
	case editor.PhaseSubmitting:
		b.WriteString("\n" + labelStyle.Render("saving…"))
	case editor.PhaseDeleting:
		b.WriteString("\n" + labelStyle.Render("deleting…"))
	}
	if st.Detail != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(st.Detail))
	}
	return b.String()
}

func (a *App) viewAlert() string {
	box := alertStyle.Render(a.alert.text + "\n\n" + hintStyle.Render("[enter] OK"))
	if a.width > 0 {
		return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box)
	}
	return box
}

// Element returns the plain-text content of a UI region, for tests and
// scripted front ends. Unknown or hidden regions yield "".
func (a *App) Element(id ElementID) string {
	switch id {
	case ElemResultTable:
		rows := a.coll.Rows()
		lines := make([]string, len(rows))
		for i, r := range rows {
			lines[i] = strings.Join([]string{r.Name, r.Procedure, r.Ingredients}, "\t")
		}
		return strings.Join(lines, "\n")
	case ElemFilterText:
		return a.filter.Value()
	case ElemListError:
		return a.coll.State().InlineText()
	case ElemNameInput, ElemProcedureInput, ElemIngredientsInput:
		if a.inputs == nil {
			return ""
		}
		return a.inputs[id].Value()
	case ElemViewError:
		if a.editor == nil {
			return ""
		}
		return a.editor.State().Detail
	case ElemRecipeForm:
		if a.editor == nil {
			return ""
		}
		return a.editor.Title()
	case ElemDeleteButton:
		if a.editor == nil || a.editor.Creating() {
			return ""
		}
		return labels[id]
	case ElemSubmitButton:
		if a.editor == nil {
			return ""
		}
		return labels[id]
	case ElemFetchButton, ElemNewButton:
		if a.route.Kind != nav.RouteList {
			return ""
		}
		return labels[id]
	case ElemEditButton:
		// The link of the selected row.
		rows := a.coll.Rows()
		if a.route.Kind != nav.RouteList || len(rows) == 0 {
			return ""
		}
		if c := a.table.Cursor(); c >= 0 && c < len(rows) {
			return rows[c].Link
		}
		return ""
	case ElemGoToCreate, ElemGoHome:
		return labels[id]
	}
	return ""
}

// Alert returns the text of the pending blocking alert, if any.
func (a *App) Alert() (string, bool) {
	if a.alert == nil {
		return "", false
	}
	return a.alert.text, true
}
