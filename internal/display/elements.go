package display

// ElementID names a region of the UI. The ids are stable so tests and
// alternative front ends can target the same seams.
type ElementID string

// List screen.
const (
	ElemResultTable ElementID = "resultTable"
	ElemFilterText  ElementID = "filtertext"
	ElemFetchButton ElementID = "fetchButton"
	ElemNewButton   ElementID = "newButton"
	ElemEditButton  ElementID = "editButton"
	ElemListError   ElementID = "recipelisterror"
)

// Editor screen.
const (
	ElemRecipeForm       ElementID = "recipe-form"
	ElemNameInput        ElementID = "nameinput"
	ElemProcedureInput   ElementID = "procedureinput"
	ElemIngredientsInput ElementID = "ingredientsinput"
	ElemSubmitButton     ElementID = "createrecipebtn"
	ElemDeleteButton     ElementID = "deletebtn"
	ElemViewError        ElementID = "recipeviewerror"
)

// Navigation.
const (
	ElemGoToCreate ElementID = "gotocreate"
	ElemGoHome     ElementID = "gohome"
)

// labels are the captions of the action regions.
var labels = map[ElementID]string{
	ElemFetchButton:  "Get Recipes",
	ElemNewButton:    "New Recipe",
	ElemEditButton:   "Edit",
	ElemSubmitButton: "Submit",
	ElemDeleteButton: "Delete",
	ElemGoToCreate:   "Create Recipe",
	ElemGoHome:       "See Recipe List",
}

// hint renders a key binding next to the caption of id.
func hint(key string, id ElementID) string {
	return "[" + key + "] " + labels[id]
}
