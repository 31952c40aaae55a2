package main

import (
	"errors"

	"github.com/spf13/cobra"

	"gamelib/internal/catalog"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var candidate catalog.Candidate

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Find or create the catalog record for a game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if candidate.RAWGID == "" && candidate.SteamAppID == "" && candidate.Title == "" {
				return errors.New("one of --rawg-id, --steam-app-id or --title is required")
			}

			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}

			game, err := a.resolver.Resolve(cmd.Context(), candidate)
			if err != nil {
				return err
			}
			return writeJSON(cmd, game)
		},
	}

	cmd.Flags().StringVar(&candidate.RAWGID, "rawg-id", "", "RAWG game id")
	cmd.Flags().StringVar(&candidate.SteamAppID, "steam-app-id", "", "Steam app id")
	cmd.Flags().StringVar(&candidate.Title, "title", "", "Game title")

	return cmd
}
