package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/recipedesk/internal/display"
)

func newTUICommand(env *appEnv) *cobra.Command {
	var start string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive recipe browser (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, env, start)
		},
	}
	cmd.Flags().StringVar(&start, "open", "", `screen to open first, e.g. "/create" or "/edit/3"`)
	return cmd
}

func runTUI(cmd *cobra.Command, env *appEnv, start string) error {
	// Cancelled when the UI quits so in-flight requests and alerts end.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	client := env.client()
	ui := display.NewUI()
	app := display.NewApp(ctx, client, ui, env.log, start)

	fmt.Fprint(cmd.OutOrStdout(), display.Banner(client.BaseURL()))
	env.log.Info("tui: starting against %s", client.BaseURL())

	// Bubble Tea owns the terminal until quit.
	if err := ui.Run(app); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}
