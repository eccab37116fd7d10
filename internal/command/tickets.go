package command

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewBuyCmd creates the ticket purchase command.
func NewBuyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy <event-id>",
		Short: "Buy tickets for an event",
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

			quantity, _ := cmd.Flags().GetInt("quantity")
			if quantity < 1 {
				return writeCommandError(cmd, fmt.Errorf("quantity must be at least 1"))
			}

			ticket, err := ctx.Tickets.Purchase(cmd.Context(), args[0], quantity)
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(ticket)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Purchased ticket %s (%s)\n", ticket.ID, ticket.Status)
			return nil
		},
	}

	cmd.Flags().Int("quantity", 1, "number of tickets")

	return cmd
}

// NewTicketsCmd creates the my-tickets listing command.
func NewTicketsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tickets",
		Short: "List your purchased tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := GetContext(cmd)
			if err != nil {
				return writeCommandError(cmd, err)
			}
			defer ctx.Close()

			if err := requireAuth(ctx); err != nil {
				return writeCommandError(cmd, err)
			}

			list, err := ctx.Tickets.MyTickets(cmd.Context())
			if err != nil {
				return writeCommandError(cmd, err)
			}

			if ctx.JSONMode {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(list)
			}

			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tickets")
				return nil
			}

			out := cmd.OutOrStdout()
			for _, ticket := range list {
				name := ticket.EventID
				if ticket.EventName != nil {
					name = *ticket.EventName
				}
				fmt.Fprintf(out, "  %s  %s · %s · %s\n", ticket.ID, name, ticket.Status, ticket.Price)
			}
			return nil
		},
	}
}
