package command

import (
	"encoding/json"
	"fmt"

	"github.com/marqueehq/marquee/internal/events"
	"github.com/marqueehq/marquee/internal/types"
	"github.com/spf13/cobra"
)

// NewEventsCmd creates the events listing command.
func NewEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List upcoming events",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if err := requireAuth(ctx); err != nil {
				return writeCommandError(cmd, err)
			}

			listing, err := ctx.Events.Events(cmd.Context())
			if err != nil {
				return writeCommandError(cmd, err)
			}

			match, _ := cmd.Flags().GetString("match")
			category, _ := cmd.Flags().GetString("category")
			listing, err = events.Filter(listing, match, category)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(listing)
			}

			if len(listing) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No events")
				return nil
			}

			out := cmd.OutOrStdout()
			for _, event := range listing {
				fmt.Fprintf(out, "  %s  %s · %s · %s\n", event.ID, event.Title, event.City, formatPrice(event))
			}
			return nil
		},
	}

	cmd.Flags().String("match", "", "glob pattern over title, name, and city")
	cmd.Flags().String("category", "", "filter by category name")

	return cmd
}

// NewEventCmd creates the single-event command.
func NewEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "event <id>",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			event, err := ctx.Events.EventByID(cmd.Context(), args[0])
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(event)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", event.Title)
			if event.Description != "" {
				fmt.Fprintf(out, "%s\n", event.Description)
			}
			fmt.Fprintf(out, "Where: %s, %s\n", event.EventLocationName, event.City)
			fmt.Fprintf(out, "When:  %s - %s\n", event.StartsAt, event.EndsAt)
			fmt.Fprintf(out, "Price: %s\n", formatPrice(event))
			if len(event.Categories) > 0 {
				fmt.Fprint(out, "Tags: ")
				for i, c := range event.Categories {
					if i > 0 {
						fmt.Fprint(out, ", ")
					}
					fmt.Fprint(out, c.Name)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func formatPrice(event types.Event) string {
	if event.IsFree {
		return "free"
	}
	return fmt.Sprintf("$%.2f", event.BaseTicketPrice)
}
