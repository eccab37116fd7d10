package command

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/marqueehq/marquee/internal/api"
	"github.com/spf13/cobra"
)

func writeCommandError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())

	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		fmt.Fprintf(cmd.ErrOrStderr(), "Hint: Your session may have expired. Try: %s login\n", AppName)
	}

	return err
}
