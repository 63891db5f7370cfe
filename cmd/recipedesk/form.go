package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/wire"
)

var errAborted = errors.New("aborted")

// recipeForm lets the user fill in edit interactively. Fields already set
// are shown as the starting values.
func recipeForm(title string, edit *domain.RecipeEdit) error {
	ingredients := wire.JoinIngredients(edit.Ingredients)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(title),
			huh.NewInput().
				Title("Name").
				Placeholder("e.g., Chicken Alfredo").
				Value(&edit.Name).
				Validate(required("name")),
			huh.NewText().
				Title("Procedure").
				Description("How to make it (required)").
				Value(&edit.Procedure).
				Validate(required("procedure")),
			huh.NewInput().
				Title("Ingredients").
				Description("Comma-separated").
				Placeholder("e.g., pasta, cream, chicken").
				Value(&ingredients),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errAborted
		}
		return fmt.Errorf("form: %w", err)
	}
	edit.Ingredients = wire.SplitIngredients(ingredients)
	return nil
}

// confirm asks a yes/no question, defaulting to no.
func confirm(question string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
