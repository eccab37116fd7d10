package command

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewFaveCmd creates the fave command.
func NewFaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fave <event-id>",
		Short: "Mark an event as a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if err := requireAuth(ctx); err != nil {
				return writeCommandError(cmd, err)
			}

			eventID := args[0]
			if _, err := ctx.Favorites.Favorites(cmd.Context()); err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.Favorites.IsFavorite(eventID) {
				if ctx.JSONMode {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
						"already_faved": true,
						"event_id":      eventID,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Already a favorite: %s\n", eventID)
				return nil
			}

			// The optimistic append needs the event payload.
			event, err := ctx.Events.EventByID(cmd.Context(), eventID)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if err := <-ctx.Favorites.Toggle(cmd.Context(), eventID, &event); err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"faved":    true,
					"event_id": eventID,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Faved %s\n", event.Title)
			return nil
		},
	}
}

// NewUnfaveCmd creates the unfave command.
func NewUnfaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unfave <event-id>",
		Short: "Remove an event from favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if err := requireAuth(ctx); err != nil {
				return writeCommandError(cmd, err)
			}

			eventID := args[0]
			if _, err := ctx.Favorites.Favorites(cmd.Context()); err != nil {
				return writeCommandError(cmd, err)
			}

			if !ctx.Favorites.IsFavorite(eventID) {
				if ctx.JSONMode {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
						"not_faved": true,
						"event_id":  eventID,
					})
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Not a favorite: %s\n", eventID)
				return nil
			}

			if err := <-ctx.Favorites.Toggle(cmd.Context(), eventID, nil); err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"unfaved":  true,
					"event_id": eventID,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Unfaved %s\n", eventID)
			return nil
		},
	}
}

// NewFavesCmd creates the faves listing command.
func NewFavesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "faves",
		Short: "List your favorite events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if err := requireAuth(ctx); err != nil {
				return writeCommandError(cmd, err)
			}

			faves, err := ctx.Favorites.Favorites(cmd.Context())
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(faves)
			}

			if len(faves) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Favorites (%d events)\n\n", len(faves))
			for _, event := range faves {
				fmt.Fprintf(out, "  %s  %s · %s\n", event.ID, event.Title, event.City)
			}
			return nil
		},
	}
}
