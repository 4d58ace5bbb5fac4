package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/calendar"
	"github.com/taskdeck/taskdeck/internal/config"
	deckerrors "github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/output"
	"github.com/taskdeck/taskdeck/internal/storage"
	"github.com/taskdeck/taskdeck/internal/task"
)

//nolint:gochecknoglobals // CLI flags and shared state are package-level by design
var (
	jsonOutput  bool
	verbose     bool
	dirFlag     string
	profileFlag string
	configFlag  string

	formatter output.Formatter
	logger    *slog.Logger
	cfg       *config.Config
	cfgPath   string
	settings  config.Settings
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree and binds the global flags.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "deck",
		Short: "A personal calendar, task and note keeper",
		Long:  "deck - A file-based personal dashboard: tasks with deadlines, a month calendar and notes.",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if jsonOutput {
				formatter = output.NewJSONFormatter()
			} else {
				formatter = output.NewHumanFormatter(os.Stdout)
			}
			logger = logging.New(os.Stderr, verbose)

			if err := loadSettings(); err != nil {
				printError(err)
			}
			logger.Debug("resolved settings", "data_dir", settings.DataDir, "profile", settings.Profile)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	flags.StringVar(&dirFlag, "dir", "", "Data directory (default ~/.taskdeck)")
	flags.StringVarP(&profileFlag, "profile", "P", "", "Profile to use (default \"default\")")
	flags.StringVar(&configFlag, "config", "", "Config file (default ~/.config/taskdeck/config.yaml)")

	rootCmd.AddCommand(
		initCmd(),
		addCmd(),
		listCmd(),
		showCmd(),
		editCmd(),
		toggleCmd(),
		rmCmd(),
		pruneCmd(),
		dayCmd(),
		upcomingCmd(),
		statsCmd(),
		calCmd(),
		noteCmd(),
		profileCmd(),
	)
	return rootCmd
}

// loadSettings reads .env, the config file and the environment, then applies flags on top.
func loadSettings() error {
	if err := config.LoadEnv(".env"); err != nil {
		return err
	}

	cfgPath = configFlag
	if cfgPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		cfgPath = p
	}

	var err error
	if cfg, err = config.Load(cfgPath); err != nil {
		return err
	}
	settings, err = cfg.Resolve(config.Overrides{DataDir: dirFlag, Profile: profileFlag})
	return err
}

func getStore() *storage.Store {
	return storage.NewStore(settings.DataDir, settings.Profile, logger)
}

func today() calendar.Date {
	return calendar.Today(time.Now())
}

func printOutput(s string) {
	os.Stdout.WriteString(s) //nolint:gosec // stdout write errors are unrecoverable
}

func printError(err error) {
	os.Stdout.WriteString(formatter.FormatError(err)) //nolint:gosec // stdout write errors are unrecoverable
	os.Exit(1)
}

// parseDateOr parses s, or returns fallback when s is empty.
func parseDateOr(s string, fallback calendar.Date) (calendar.Date, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	return calendar.ParseDate(s)
}

// optionalString returns nil for blank input so empty categories and colors are not stored.
func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// initCmd implements 'deck init'.
func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the data directory for the current profile",
		Run: func(_ *cobra.Command, _ []string) {
			store := getStore()
			if err := store.Init(force); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Initialized taskdeck at %s", store.BasePath())))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinitialize even if already exists")
	return cmd
}

// addCmd implements 'deck add'.
func addCmd() *cobra.Command {
	var description, priority, deadline, category string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			p, ok := task.ParsePriority(priority)
			if !ok {
				printError(deckerrors.InvalidPriorityError{Value: priority})
			}
			d, err := parseDateOr(deadline, today())
			if err != nil {
				printError(err)
			}

			t, err := getStore().CreateTask(storage.NewTask{
				Title:       args[0],
				Description: description,
				Priority:    p,
				Deadline:    d,
				Category:    optionalString(category),
			})
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "Priority (high, medium, low)")
	cmd.Flags().StringVarP(&deadline, "deadline", "D", "", "Deadline as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Category label")
	return cmd
}

// listCmd implements 'deck list'.
func listCmd() *cobra.Command {
	var showPending, showCompleted bool
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by deadline",
		Run: func(_ *cobra.Command, _ []string) {
			tasks, err := getStore().List(storage.StatusFilter{
				Pending:   showPending,
				Completed: showCompleted,
			})
			if err != nil {
				printError(err)
			}

			if category != "" {
				filtered := tasks[:0]
				for _, t := range tasks {
					if strings.EqualFold(t.CategoryName(), category) {
						filtered = append(filtered, t)
					}
				}
				tasks = filtered
			}
			printOutput(formatter.FormatTaskList(tasks))
		},
	}
	cmd.Flags().BoolVar(&showPending, "pending", false, "Show only pending tasks")
	cmd.Flags().BoolVar(&showCompleted, "completed", false, "Show only completed tasks")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Show only tasks in this category")
	return cmd
}

// showCmd implements 'deck show'.
func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			t, err := getStore().Load(args[0])
			if err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
}

// editCmd implements 'deck edit'. Only flags that are given change the task.
func editCmd() *cobra.Command {
	var title, description, priority, deadline, category, status string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store := getStore()
			t, err := store.Load(args[0])
			if err != nil {
				printError(err)
			}

			changed := cmd.Flags().Changed
			if changed("title") {
				if strings.TrimSpace(title) == "" {
					printError(deckerrors.MissingTitleError{})
				}
				t.Title = title
			}
			if changed("description") {
				t.Description = description
			}
			if changed("priority") {
				p, ok := task.ParsePriority(priority)
				if !ok {
					printError(deckerrors.InvalidPriorityError{Value: priority})
				}
				t.Priority = p
			}
			if changed("deadline") {
				d, parseErr := calendar.ParseDate(deadline)
				if parseErr != nil {
					printError(parseErr)
				}
				t.Deadline = d
			}
			if changed("category") {
				t.Category = optionalString(category)
			}
			if changed("status") {
				st, ok := task.ParseStatus(status)
				if !ok {
					printError(deckerrors.InvalidStatusError{Value: status})
				}
				t.Status = st
			}

			if err = store.Save(t); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority (high, medium, low)")
	cmd.Flags().StringVarP(&deadline, "deadline", "D", "", "New deadline as YYYY-MM-DD")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category (empty to clear)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "New status (pending, completed)")
	return cmd
}

// toggleCmd implements 'deck toggle'.
func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			store := getStore()
			t, err := store.Load(args[0])
			if err != nil {
				printError(err)
			}

			t.Toggle()
			if err = store.Save(t); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatTask(t))
		},
	}
}

// rmCmd implements 'deck rm'.
func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task",
		Args:  cobra.ExactArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := getStore().Delete(args[0]); err != nil {
				printError(err)
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Removed task %s", args[0])))
		},
	}
}

// pruneCmd implements 'deck prune'.
func pruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove all completed tasks",
		Run: func(_ *cobra.Command, _ []string) {
			store := getStore()
			tasks, err := store.List(storage.StatusFilter{Completed: true})
			if err != nil {
				printError(err)
			}

			if len(tasks) == 0 {
				printOutput(formatter.FormatMessage("No completed tasks to prune"))
				return
			}

			for _, t := range tasks {
				if err = store.Delete(t.ID); err != nil {
					printError(err)
				}
			}
			printOutput(formatter.FormatMessage(fmt.Sprintf("Pruned %d completed task(s)", len(tasks))))
		},
	}
}
