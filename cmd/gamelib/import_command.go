package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"gamelib/internal/ingest"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var (
		userID      string
		handle      string
		limit       int
		minPlaytime int
		noEnrich    bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a Steam library into a user's game library",
		Long: "Import resolves the Steam handle, reconciles the most played titles into the\n" +
			"user's library and prints the import report as JSON. Interrupting the command\n" +
			"stops it before the next title.",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID = strings.TrimSpace(userID)
			handle = strings.TrimSpace(handle)
			if userID == "" {
				return errors.New("--user is required")
			}
			if handle == "" {
				return errors.New("--steam is required")
			}

			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}

			opts := ingest.DefaultOptions()
			opts.Limit = limit
			opts.MinPlaytimeMinutes = minPlaytime
			opts.Enrich = !noEnrich

			report, err := a.importer.Run(cmd.Context(), userID, handle, opts)
			if err != nil {
				return err
			}
			return writeJSON(cmd, report)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User id that owns the library")
	cmd.Flags().StringVar(&handle, "steam", "", "Steam id, vanity name or profile URL")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of titles to import (0 uses the configured default)")
	cmd.Flags().IntVar(&minPlaytime, "min-playtime", 0, "Skip titles played fewer minutes than this")
	cmd.Flags().BoolVar(&noEnrich, "no-enrich", false, "Do not look up RAWG metadata for new titles")

	return cmd
}
