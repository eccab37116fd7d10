package command

import (
	"github.com/marqueehq/marquee/internal/browse"
	"github.com/spf13/cobra"
)

// NewBrowseCmd creates the interactive browse command.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse events interactively",
		Long:  "Full-screen browser for events, favorites, and tickets. Toggle favorites with 'f'; changes apply instantly and reconcile with the server in the background.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if err := requireAuth(ctx); err != nil {
				return writeCommandError(cmd, err)
			}

			return browse.Run(browse.Options{
				Session:   ctx.Session,
				Events:    ctx.Events,
				Tickets:   ctx.Tickets,
				Favorites: ctx.Favorites,
			})
		},
	}
}
