package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	deckerrors "github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/note"
	"github.com/taskdeck/taskdeck/internal/storage"
)

// noteCmd implements 'deck note'.
func noteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage notes",
	}
	cmd.AddCommand(
		noteAddCmd(),
		noteListCmd(),
		noteShowCmd(),
		noteEditCmd(),
		notePinCmd(),
		noteRmCmd(),
	)
	return cmd
}

// loadNote resolves an ID or unique ID prefix and loads the note.
func loadNote(store *storage.Store, idOrPrefix string) *note.Note {
	id, err := store.ResolveNoteID(idOrPrefix)
	if err != nil {
		printError(err)
	}
	n, err := store.LoadNote(id)
	if err != nil {
		printError(err)
	}
	return n
}

func noteAddCmd() *cobra.Command {
	var content, color string
	var pinned bool
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new note",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			n, err := getStore().CreateNote(storage.NewNote{
				Title:   args[0],
				Content: content,
				Pinned:  pinned,
				Color:   optionalString(color),
			})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatNote(n))
		},
	}
	cmd.Flags().StringVarP(&content, "content", "m", "", "Note body")
	cmd.Flags().StringVar(&color, "color", "", "Color label")
	cmd.Flags().BoolVar(&pinned, "pin", false, "Pin the note")
	return cmd
}

func noteListCmd() *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, pinned first",
		Run: func(_ *cobra.Command, _ []string) {
			notes, err := getStore().ListNotes()
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatNoteList(note.Search(notes, search)))
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Only notes whose title or content contains this text")
	return cmd
}

func noteShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a note",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			printOutput(formatter.FormatNote(loadNote(getStore(), args[0])))
		},
	}
}

func noteEditCmd() *cobra.Command {
	var title, content, color string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a note",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store := getStore()
			n := loadNote(store, args[0])

			changed := cmd.Flags().Changed
			if changed("title") {
				if strings.TrimSpace(title) == "" {
					printError(deckerrors.MissingTitleError{})
				}
				n.Title = title
			}
			if changed("content") {
				n.Content = content
			}
			if changed("color") {
				n.Color = optionalString(color)
			}

			if err := store.SaveNote(n); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatNote(n))
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "New body")
	cmd.Flags().StringVar(&color, "color", "", "New color label (empty to clear)")
	return cmd
}

func notePinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id>",
		Short: "Pin or unpin a note",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store := getStore()
			n := loadNote(store, args[0])
			n.TogglePin()
			if err := store.SaveNote(n); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatNote(n))
		},
	}
}

func noteRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a note",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store := getStore()
			id, err := store.ResolveNoteID(args[0])
			if err != nil {
				printError(err)
			}
			if err = store.DeleteNote(id); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Removed note %s", id)))
		},
	}
}
