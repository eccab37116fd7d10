package command

import (
	"os"

	"github.com/spf13/cobra"
)

const AppName = "mq"

// Version is overwritten at build time using -ldflags.
var Version = "dev"

func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           AppName,
		Short:         "Marquee - terminal client for event discovery and tickets",
		Long:          "Marquee is a terminal client for browsing events, buying tickets, and keeping favorites in sync.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.Version = version
	cmd.SetVersionTemplate(AppName + " version {{.Version}}\n")
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().Bool("json", false, "output in JSON format")
	cmd.PersistentFlags().Bool("verbose", false, "log diagnostics to stderr")

	cmd.AddCommand(
		NewLoginCmd(),
		NewRegisterCmd(),
		NewLogoutCmd(),
		NewWhoamiCmd(),
		NewEventsCmd(),
		NewEventCmd(),
		NewFaveCmd(),
		NewUnfaveCmd(),
		NewFavesCmd(),
		NewBuyCmd(),
		NewTicketsCmd(),
		NewBrowseCmd(),
		NewConfigCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCmd(Version).Execute()
}
