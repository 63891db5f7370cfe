package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipedesk/internal/collection"
	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/editor"
	"github.com/hammamikhairi/recipedesk/internal/wire"
)

// settle runs a component command inline, the way the event loop would
// off the UI goroutine.
func settle(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func newListCommand(env *appEnv) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recipes, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coll := collection.New(cmd.Context(), env.client(), env.notifier(cmd), env.log)
			defer coll.Teardown()

			var f *string
			if cmd.Flags().Changed("filter") {
				f = &filter
			}
			msg, _ := settle(coll.FetchList(f)).(collection.ListMsg)
			alert := coll.Apply(msg)
			settle(alert)

			st := coll.State()
			if st.Status == collection.StatusError {
				if alert != nil {
					return errReported
				}
				return errors.New(st.Detail)
			}
			if len(st.Recipes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no recipes")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecipes(coll.Rows()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only recipes matching this text")
	return cmd
}

func newShowCommand(env *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := openRecord(cmd, env, args[0])
			if err != nil {
				return err
			}
			defer ed.Teardown()
			st := ed.State()
			fmt.Fprintln(cmd.OutOrStdout(), renderRecipe(st.RecordID, st.Draft))
			return nil
		},
	}
}

func newCreateCommand(env *appEnv) *cobra.Command {
	var name, procedure, ingredients string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recipe (opens a form when fields are missing)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			edit := domain.RecipeEdit{
				Name:        name,
				Procedure:   procedure,
				Ingredients: wire.SplitIngredients(ingredients),
			}
			if (edit.Name == "" || edit.Procedure == "") && interactive() {
				if err := recipeForm("Create new recipe", &edit); err != nil {
					return err
				}
			}

			ed, _ := editor.New(cmd.Context(), env.client(), env.log, editor.Seed{RecordID: domain.NewRecord})
			defer ed.Teardown()
			ed.SetName(edit.Name)
			ed.SetProcedure(edit.Procedure)
			_ = ed.EditField(editor.FieldIngredients, edit.Ingredients)

			if err := submit(ed); err != nil {
				return err
			}
			return env.notifier(cmd).Notify(cmd.Context(), fmt.Sprintf("created recipe %q", edit.Name))
		},
	}
	f := cmd.Flags()
	f.StringVarP(&name, "name", "n", "", "recipe name")
	f.StringVarP(&procedure, "procedure", "p", "", "how to make it")
	f.StringVarP(&ingredients, "ingredients", "i", "", "comma-separated ingredient names")
	return cmd
}

func newUpdateCommand(env *appEnv) *cobra.Command {
	var name, procedure, ingredients string
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a recipe (opens a form when no field flag is given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := openRecord(cmd, env, args[0])
			if err != nil {
				return err
			}
			defer ed.Teardown()

			flags := cmd.Flags()
			changed := flags.Changed("name") || flags.Changed("procedure") || flags.Changed("ingredients")
			switch {
			case changed:
				if flags.Changed("name") {
					ed.SetName(name)
				}
				if flags.Changed("procedure") {
					ed.SetProcedure(procedure)
				}
				if flags.Changed("ingredients") {
					ed.SetIngredientsText(ingredients)
				}
			case interactive():
				edit := ed.State().Draft
				if err := recipeForm(ed.Title(), &edit); err != nil {
					return err
				}
				ed.SetName(edit.Name)
				ed.SetProcedure(edit.Procedure)
				_ = ed.EditField(editor.FieldIngredients, edit.Ingredients)
			default:
				return errors.New("nothing to update: pass --name, --procedure or --ingredients")
			}

			if err := submit(ed); err != nil {
				return err
			}
			return env.notifier(cmd).Notify(cmd.Context(), "updated recipe "+args[0])
		},
	}
	f := cmd.Flags()
	f.StringVarP(&name, "name", "n", "", "new name")
	f.StringVarP(&procedure, "procedure", "p", "", "new procedure")
	f.StringVarP(&ingredients, "ingredients", "i", "", "new comma-separated ingredient names")
	return cmd
}

func newDeleteCommand(env *appEnv) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, err := openRecord(cmd, env, args[0])
			if err != nil {
				return err
			}
			defer ed.Teardown()

			if !yes {
				if !interactive() {
					return errors.New("refusing to delete without --yes")
				}
				ok, err := confirm(fmt.Sprintf("Delete %q?", ed.State().Draft.Name))
				if err != nil {
					return err
				}
				if !ok {
					return errAborted
				}
			}

			ed.Apply(settle(ed.Delete()))
			if st := ed.State(); !st.NavigateAway {
				return errors.New(st.Detail)
			}
			return env.notifier(cmd).Notify(cmd.Context(), "deleted recipe "+args[0])
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// openRecord builds an editor for raw and loads the record into it.
func openRecord(cmd *cobra.Command, env *appEnv, raw string) (*editor.Editor, error) {
	id := domain.RecordID(raw)
	if !id.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidID, raw)
	}

	ed, fetch := editor.New(cmd.Context(), env.client(), env.log, editor.Seed{RecordID: id})
	ed.Apply(settle(fetch))

	st := ed.State()
	switch {
	case st.NavigateAway:
		ed.Teardown()
		return nil, fmt.Errorf("recipe %s: %w", id, domain.ErrNotFound)
	case st.Phase == editor.PhaseFailed:
		ed.Teardown()
		return nil, errors.New(st.Detail)
	}
	return ed, nil
}

// submit sends the editor's draft and waits for the outcome.
func submit(ed *editor.Editor) error {
	if err := ed.Validate(); err != nil {
		return err
	}
	cmd := ed.Submit()
	if cmd == nil {
		return errors.New("recipe cannot be submitted")
	}
	ed.Apply(settle(cmd))
	if st := ed.State(); !st.NavigateAway {
		return errors.New(st.Detail)
	}
	return nil
}
