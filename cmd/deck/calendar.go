package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/calendar"
	"github.com/taskdeck/taskdeck/internal/cursor"
	deckerrors "github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/storage"
)

// calCmd implements 'deck cal'. Without a subcommand it shows the stored month.
func calCmd() *cobra.Command {
	show := func(_ *cobra.Command, _ []string) {
		store := getStore()
		c, err := cursor.Current(store.BasePath(), today())
		if err != nil {
			printError(err)
		}
		showMonth(store, c)
	}
	cmd := &cobra.Command{
		Use:   "cal",
		Short: "Show the month calendar",
		Run:   show,
	}

	cmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Show the stored month", Run: show},
		calStepCmd("next", "Move the calendar one month forward"),
		calStepCmd("prev", "Move the calendar one month back"),
		calTodayCmd(),
		calGotoCmd(),
	)
	return cmd
}

// calStepCmd builds 'deck cal next' and 'deck cal prev'.
func calStepCmd(use, short string) *cobra.Command {
	dir, _ := calendar.ParseDirection(use)
	return &cobra.Command{
		Use:     use,
		Aliases: aliasesFor(dir),
		Short:   short,
		Run: func(_ *cobra.Command, _ []string) {
			store := getStore()
			if !store.IsInitialized() {
				printError(deckerrors.NotInitializedError{})
			}
			c, err := cursor.Step(store.BasePath(), dir, today(), time.Now())
			if err != nil {
				printError(err)
			}
			logger.Debug("moved calendar", "month", c.Key())
			showMonth(store, c)
		},
	}
}

func aliasesFor(dir calendar.Direction) []string {
	if dir == calendar.Prev {
		return []string{"previous"}
	}
	return nil
}

// calTodayCmd implements 'deck cal today'.
func calTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Return the calendar to the current month",
		Run: func(_ *cobra.Command, _ []string) {
			store := getStore()
			if err := cursor.Delete(store.BasePath()); err != nil {
				printError(err)
			}
			showMonth(store, calendar.CursorFor(today()))
		},
	}
}

// calGotoCmd implements 'deck cal goto'.
func calGotoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goto <YYYY-MM>",
		Short: "Jump the calendar to a month",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			c, err := calendar.ParseMonth(args[0])
			if err != nil {
				printError(err)
			}

			store := getStore()
			if !store.IsInitialized() {
				printError(deckerrors.NotInitializedError{})
			}
			if err = cursor.Set(store.BasePath(), c, time.Now()); err != nil {
				printError(err)
			}
			showMonth(store, c)
		},
	}
}

func showMonth(store *storage.Store, c calendar.Cursor) {
	tasks, err := store.List(storage.StatusFilter{})
	if err != nil {
		printError(err)
	}
	printOutput(formatter.FormatMonth(output.NewMonthView(tasks, c, today())))
}
