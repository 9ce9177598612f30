package commands

import (
	"github.com/spf13/cobra"

	"wtime/internal/domain"
)

func notesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage secure notes",
	}
	cmd.AddCommand(notesListCmd(), notesAddCmd(), notesUpdateCmd(), notesRemoveCmd())
	return cmd
}

func notesListCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			notes := appCtx.Vault.NotesByDate()
			if len(notes) == 0 {
				printf(cmd, "no notes\n")
				return nil
			}
			for _, n := range notes {
				printf(cmd, "%s  %s  [%s]  %s\n", n.ID, n.Time().Format("2006-01-02 15:04"), n.Type, n.Title)
				if full {
					printf(cmd, "    %s\n", n.Content)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "print note content")
	return cmd
}

func notesAddCmd() *cobra.Command {
	var title, content, typ string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseNoteType(typ)
			if err != nil {
				return err
			}
			n, err := appCtx.Vault.AddNote(cmd.Context(), domain.NoteDraft{Title: title, Content: content, Type: t})
			if err != nil {
				return err
			}
			printf(cmd, "added %s\n", n.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "note title")
	cmd.Flags().StringVar(&content, "content", "", "note content")
	cmd.Flags().StringVar(&typ, "type", string(domain.NoteIncident), "incident, medical, legal or other")
	return cmd
}

func notesUpdateCmd() *cobra.Command {
	var title, content, typ string
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a note; the date is kept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.NotePatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}
			if cmd.Flags().Changed("type") {
				t, err := domain.ParseNoteType(typ)
				if err != nil {
					return err
				}
				patch.Type = &t
			}
			if err := appCtx.Vault.UpdateNote(cmd.Context(), domain.NoteID(args[0]), patch); err != nil {
				return err
			}
			printf(cmd, "updated %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new content")
	cmd.Flags().StringVar(&typ, "type", "", "new type")
	return cmd
}

func notesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Vault.RemoveNote(cmd.Context(), domain.NoteID(args[0])); err != nil {
				return err
			}
			printf(cmd, "removed %s\n", args[0])
			return nil
		},
	}
}
