package commands

import (
	"github.com/spf13/cobra"

	"wtime/internal/domain"
	"wtime/internal/services/alert"
)

func contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage emergency contacts",
	}
	cmd.AddCommand(contactsListCmd(), contactsAddCmd(), contactsUpdateCmd(), contactsRemoveCmd())
	return cmd
}

func contactsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contacts and emergency numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			contacts := appCtx.Vault.Contacts()
			printf(cmd, "Emergency contacts (%d/%d)\n", len(contacts), domain.MaxEmergencyContacts)
			if len(contacts) == 0 {
				printf(cmd, "  none yet, add one with: wtime contacts add <name> <phone>\n")
			}
			for _, c := range contacts {
				printf(cmd, "  %s  %s  %s\n", c.ID, c.Name, c.Phone)
			}
			printf(cmd, "Emergency numbers\n")
			for _, n := range alert.EmergencyNumbers {
				printf(cmd, "  %s\n", n)
			}
			return nil
		},
	}
}

func contactsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <phone>",
		Short: "Add a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := appCtx.Vault.AddContact(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			printf(cmd, "added %s\n", c.ID)
			return nil
		},
	}
}

func contactsUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> <name> <phone>",
		Short: "Replace a contact's name and phone",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Vault.UpdateContact(cmd.Context(), domain.ContactID(args[0]), args[1], args[2]); err != nil {
				return err
			}
			printf(cmd, "updated %s\n", args[0])
			return nil
		},
	}
}

func contactsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Vault.RemoveContact(cmd.Context(), domain.ContactID(args[0])); err != nil {
				return err
			}
			printf(cmd, "removed %s\n", args[0])
			return nil
		},
	}
}
