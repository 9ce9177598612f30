package commands

import (
	"github.com/spf13/cobra"
)

const welcomeText = `Welcome.

This looks like a stopwatch and works like one. Tap start to time something.

Hold start for six seconds to open safe mode. You will feel a pulse every
second. In safe mode you can keep emergency contacts and notes, and holding
the panic button for six seconds texts your location to every contact.

Everything is stored on this device only.
`

func welcomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "welcome",
		Short: "Show the first-launch guide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printf(cmd, "%s", welcomeText)
			if !appCtx.Store.Settings().IsFirstLaunch {
				return nil
			}
			return appCtx.Store.CompleteFirstLaunch(cmd.Context())
		},
	}
}
