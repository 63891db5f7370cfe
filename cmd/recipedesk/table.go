package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hammamikhairi/recipedesk/internal/collection"
	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/wire"
)

func renderRecipes(rows []collection.Row) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Name", "Procedure", "Ingredients"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.ID, r.Name, r.Procedure, r.Ingredients})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, WidthMax: 60},
	})
	return tw.Render()
}

func renderRecipe(id domain.RecordID, edit domain.RecipeEdit) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendRows([]table.Row{
		{"ID", id},
		{"Name", edit.Name},
		{"Procedure", edit.Procedure},
		{"Ingredients", wire.JoinIngredients(edit.Ingredients)},
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: text.Colors{text.Bold}},
		{Number: 2, WidthMax: 72},
	})
	return tw.Render()
}
