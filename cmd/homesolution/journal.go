package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emilianohg/homesolution/internal/config"
	"github.com/emilianohg/homesolution/internal/db"
	"github.com/emilianohg/homesolution/internal/repository"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect or clear the operation journal",
}

var journalStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the journal lives and how many operations it holds",
	Run: withSession("journal status", func(cmd *cobra.Command, a *app, args []string) error {
		if !a.session.Persistent() {
			fmt.Println(color.YellowString("Journal disabled; the registry lives in memory for this run only."))
			return nil
		}
		path, err := a.cfg.ResolvedDatabasePath()
		if err != nil {
			return err
		}
		count, err := repository.NewJournalRepo(db.Get()).Count()
		if err != nil {
			return err
		}
		status, err := db.GetMigrationStatus()
		if err != nil {
			return err
		}

		fmt.Printf("Database: %s\n", path)
		fmt.Printf("Schema version: %d of %d\n", status.CurrentVersion, status.LatestVersion)
		if status.Dirty {
			fmt.Println(color.RedString("Schema is dirty; a migration failed halfway."))
		}
		fmt.Printf("Operations: %d\n", count)
		return nil
	}),
}

// journalResetCmd clears the store without replaying it, so a journal that
// no longer replays can still be reset.
var journalResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every recorded operation",
	Run: func(cmd *cobra.Command, args []string) {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fail("journal reset", fmt.Errorf("journal reset deletes all employees and projects; rerun with --yes"))
		}

		cfg, err := config.Load()
		if err != nil {
			fail("journal reset", err)
		}
		path, err := cfg.ResolvedDatabasePath()
		if err != nil {
			fail("journal reset", err)
		}
		database, err := db.OpenAndMigrate(path)
		if err != nil {
			fail("journal reset", err)
		}
		err = repository.NewJournalRepo(database).Clear()
		db.Close()
		if err != nil {
			fail("journal reset", err)
		}
		color.Green("Journal cleared.")
	},
}

func init() {
	journalResetCmd.Flags().Bool("yes", false, "Confirm the reset")

	journalCmd.AddCommand(journalStatusCmd)
	journalCmd.AddCommand(journalResetCmd)
}
