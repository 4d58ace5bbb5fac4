package main

import (
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/agenda"
	"github.com/taskdeck/taskdeck/internal/storage"
)

// dayCmd implements 'deck day'.
func dayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "List tasks due on a date (default today)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			d, err := parseDateOr(arg, today())
			if err != nil {
				printError(err)
			}

			tasks, err := getStore().List(storage.StatusFilter{})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatDay(d, agenda.OnDate(tasks, d.Year, int(d.Month)-1, d.Day)))
		},
	}
}

// upcomingCmd implements 'deck upcoming'.
func upcomingCmd() *cobra.Command {
	var from string
	var pendingOnly bool
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List tasks due today or later, soonest first",
		Run: func(_ *cobra.Command, _ []string) {
			start, err := parseDateOr(from, today())
			if err != nil {
				printError(err)
			}

			tasks, err := getStore().List(storage.StatusFilter{})
			if err != nil {
				printError(err)
			}
			if pendingOnly {
				tasks = agenda.Pending(tasks)
			}
			printOutput(formatter.FormatTaskList(agenda.Upcoming(tasks, start)))
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Start date as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&pendingOnly, "pending", false, "Hide completed tasks")
	return cmd
}

// statsCmd implements 'deck stats'.
func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task totals and completion rate",
		Run: func(_ *cobra.Command, _ []string) {
			tasks, err := getStore().List(storage.StatusFilter{})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatStats(agenda.Summarize(tasks)))
		},
	}
}
