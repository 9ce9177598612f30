package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// panic --yes: send the alert now, for scripts and shortcuts.
func panicCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "panic",
		Short: "Send the emergency alert without holding the button",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to send without --yes")
			}
			r, err := appCtx.Alerts.Dispatch(cmd.Context())
			return printReport(cmd, r, err)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm sending the alert")
	return cmd
}
