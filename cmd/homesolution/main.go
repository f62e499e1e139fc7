package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emilianohg/homesolution/internal/config"
	"github.com/emilianohg/homesolution/internal/db"
	"github.com/emilianohg/homesolution/internal/journal"
	"github.com/emilianohg/homesolution/internal/repository"
	"github.com/emilianohg/homesolution/internal/tui"
)

var noJournal bool

var rootCmd = &cobra.Command{
	Use:   "homesolution",
	Short: "Schedule renovation projects, tasks and employees",
	Long: `HomeSolution keeps a registry of employees and renovation projects,
assigns tasks to free employees (FIFO or fewest delays first), tracks delays
and computes project costs.

Run without arguments to open the interactive dashboard.`,
	Run: withSession("tui", func(cmd *cobra.Command, a *app, args []string) error {
		return tui.Run(a.session, a.cfg)
	}),
}

// app is what every command runs against: the loaded config and a session
// whose registry has been rebuilt from the journal.
type app struct {
	cfg     *config.Config
	session *journal.Session
}

func openApp() (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if noJournal || !cfg.Journal {
		session, err := journal.Open(nil, nil)
		if err != nil {
			return nil, nil, err
		}
		return &app{cfg: cfg, session: session}, func() {}, nil
	}

	path, err := cfg.ResolvedDatabasePath()
	if err != nil {
		return nil, nil, err
	}
	database, err := db.OpenAndMigrate(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	session, err := journal.Open(repository.NewJournalRepo(database), nil)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return &app{cfg: cfg, session: session}, func() { db.Close() }, nil
}

// withSession adapts fn to a cobra Run func. Errors are printed, appended
// to the error log under name, and end the process with status 1.
func withSession(name string, fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, closeFn, err := openApp()
		if err != nil {
			fail(name, err)
		}
		err = fn(cmd, a, args)
		closeFn()
		if err != nil {
			fail(name, err)
		}
	}
}

func fail(name string, err error) {
	logError(name, err)
	color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func parseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%s id %q is not a number", what, arg)
	}
	return id, nil
}

func parseNumber(arg, what string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number", what, arg)
	}
	return v, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noJournal, "no-journal", false, "Run against an empty in-memory registry")

	rootCmd.AddCommand(employeeCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(journalCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func logError(name string, err error) {
	logPath, pathErr := config.ErrorLogPath()
	if pathErr != nil {
		return
	}

	if err := config.EnsureDirectories(); err != nil {
		return
	}

	f, fileErr := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if fileErr != nil {
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "[%s] %v\n", name, err)
}
