// Package wire converts recipes between the server's wire shape, where
// ingredients are {id, name} objects, and the edit shape used while a
// recipe is composed, where ingredients are plain names. Every function is
// pure; neither shape is ever mutated into the other.
package wire

import (
	"strings"

	"github.com/hammamikhairi/recipedesk/internal/domain"
)

// IngredientSeparator joins and splits ingredient names in text inputs.
const IngredientSeparator = ","

// Payload is the create/update request body. ID is only set for updates
// and keeps the record id exactly as routed.
type Payload struct {
	Name        string           `json:"name"`
	Procedure   string           `json:"procedure"`
	Ingredients []IngredientName `json:"ingredients"`
	ID          domain.RecordID  `json:"id,omitempty"`
}

// IngredientName is an ingredient on the write path. The server owns
// ingredient identity, so no id is sent.
type IngredientName struct {
	Name string `json:"name"`
}

// IngredientNames projects wire ingredients to their names, in order.
func IngredientNames(in []domain.Ingredient) []string {
	out := make([]string, len(in))
	for i, ing := range in {
		out[i] = ing.Name
	}
	return out
}

// ToEdit adapts a fetched recipe to the edit shape under the given id.
func ToEdit(r domain.RecipeSummary, id domain.RecordID) domain.RecipeEdit {
	return domain.RecipeEdit{
		ID:          id,
		Name:        r.Name,
		Procedure:   r.Procedure,
		Ingredients: IngredientNames(r.Ingredients),
	}
}

// ToPayload builds the request body for a draft.
func ToPayload(e domain.RecipeEdit) Payload {
	ings := make([]IngredientName, len(e.Ingredients))
	for i, name := range e.Ingredients {
		ings[i] = IngredientName{Name: name}
	}
	return Payload{
		Name:        e.Name,
		Procedure:   e.Procedure,
		Ingredients: ings,
		ID:          e.ID,
	}
}

// JoinIngredients renders names for a single-line display or input.
func JoinIngredients(names []string) string {
	return strings.Join(names, IngredientSeparator)
}

// SplitIngredients parses comma separated input into trimmed names.
// Empty entries are dropped and inner spaces kept, so "soy sauce, ,rice"
// yields [soy sauce rice] rather than a blank ingredient or "soysauce".
func SplitIngredients(input string) []string {
	parts := strings.Split(input, IngredientSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
