package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emilianohg/homesolution/internal/config"
	"github.com/emilianohg/homesolution/internal/journal"
	"github.com/emilianohg/homesolution/internal/models"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Add, assign, delay and finish tasks",
}

// taskArgs parses the PROJECT_ID TITLE pair every task command starts with.
func taskArgs(args []string) (int, string, error) {
	id, err := parseID(args[0], "project")
	if err != nil {
		return 0, "", err
	}
	return id, args[1], nil
}

var taskAddCmd = &cobra.Command{
	Use:   "add PROJECT_ID TITLE DAYS [DESCRIPTION]",
	Short: "Add a task to an unfinished project",
	Args:  cobra.RangeArgs(3, 4),
	Run: withSession("task add", func(cmd *cobra.Command, a *app, args []string) error {
		pid, title, err := taskArgs(args)
		if err != nil {
			return err
		}
		days, err := parseNumber(args[2], "days")
		if err != nil {
			return err
		}
		desc := ""
		if len(args) == 4 {
			desc = args[3]
		}
		if _, err := a.session.Do(journal.AddTask(pid, title, desc, days)); err != nil {
			return err
		}
		color.Green("Added %q to project %d", title, pid)
		return nil
	}),
}

var taskAssignCmd = &cobra.Command{
	Use:   "assign PROJECT_ID TITLE",
	Short: "Assign a task to a free employee",
	Long:  `Assign a task to a free employee. --policy picks "fifo" (longest waiting) or "least-delay" (fewest delays, lowest id); the default comes from the config file.`,
	Args:  cobra.ExactArgs(2),
	Run: withSession("task assign", func(cmd *cobra.Command, a *app, args []string) error {
		pid, title, err := taskArgs(args)
		if err != nil {
			return err
		}
		policy, _ := cmd.Flags().GetString("policy")
		if policy == "" {
			policy = a.cfg.DefaultPolicy
		}
		if policy != config.PolicyFIFO && policy != config.PolicyLeastDelay {
			return fmt.Errorf("policy must be %q or %q, got %q", config.PolicyFIFO, config.PolicyLeastDelay, policy)
		}

		id, err := a.session.Do(journal.Assign(policy == config.PolicyLeastDelay, pid, title))
		if err != nil {
			return err
		}
		color.Green("Assigned %q to employee %d (%s)", title, id, policy)
		return nil
	}),
}

var taskDelayCmd = &cobra.Command{
	Use:   "delay PROJECT_ID TITLE DAYS",
	Short: "Record a delay on an assigned task",
	Args:  cobra.ExactArgs(3),
	Run: withSession("task delay", func(cmd *cobra.Command, a *app, args []string) error {
		pid, title, err := taskArgs(args)
		if err != nil {
			return err
		}
		days, err := parseNumber(args[2], "days")
		if err != nil {
			return err
		}
		if _, err := a.session.Do(journal.RegisterDelay(pid, title, days)); err != nil {
			return err
		}
		color.Yellow("Delayed %q by %d day(s)", title, models.WholeDays(days))
		return nil
	}),
}

var taskFinishCmd = &cobra.Command{
	Use:   "finish PROJECT_ID TITLE",
	Short: "Mark a task finished today",
	Args:  cobra.ExactArgs(2),
	Run: withSession("task finish", func(cmd *cobra.Command, a *app, args []string) error {
		pid, title, err := taskArgs(args)
		if err != nil {
			return err
		}
		if _, err := a.session.Do(journal.FinishTask(pid, title)); err != nil {
			return err
		}
		color.Green("Finished %q", title)
		if a.session.Registry().IsFinished(pid) {
			color.Green("Project %d is complete", pid)
		}
		return nil
	}),
}

var taskReassignCmd = &cobra.Command{
	Use:   "reassign PROJECT_ID TITLE",
	Short: "Hand an assigned task to another free employee",
	Long:  "Hand an assigned task to --employee, or to the free employee with the fewest delays when no employee is given.",
	Args:  cobra.ExactArgs(2),
	Run: withSession("task reassign", func(cmd *cobra.Command, a *app, args []string) error {
		pid, title, err := taskArgs(args)
		if err != nil {
			return err
		}
		employee, _ := cmd.Flags().GetInt("employee")

		op := journal.ReassignLeastDelay(pid, title)
		if cmd.Flags().Changed("employee") {
			op = journal.Reassign(pid, employee, title)
		}
		id, err := a.session.Do(op)
		if err != nil {
			return err
		}
		color.Green("Reassigned %q to employee %d", title, id)
		return nil
	}),
}

var taskListCmd = &cobra.Command{
	Use:   "list PROJECT_ID",
	Short: "List a project's task titles",
	Args:  cobra.ExactArgs(1),
	Run: withSession("task list", func(cmd *cobra.Command, a *app, args []string) error {
		pid, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		reg := a.session.Registry()
		unassigned, _ := cmd.Flags().GetBool("unassigned")
		unfinished, _ := cmd.Flags().GetBool("unfinished")

		var titles []string
		switch {
		case unassigned:
			titles, err = reg.UnassignedTasks(pid)
		case unfinished:
			titles, err = reg.UnfinishedTasks(pid)
		default:
			titles, err = reg.ProjectTasks(pid)
		}
		if err != nil {
			return err
		}

		for _, title := range titles {
			who := color.HiBlackString("unassigned")
			if id, ok, err := reg.TaskResponsible(pid, title); err == nil && ok {
				who = fmt.Sprintf("employee %d", id)
			}
			fmt.Printf("  %-30s %s\n", title, who)
		}
		if len(titles) == 0 {
			fmt.Println(color.HiBlackString("No tasks."))
		}
		return nil
	}),
}

func init() {
	taskAssignCmd.Flags().String("policy", "", `Assignment policy: "fifo" or "least-delay"`)
	taskReassignCmd.Flags().Int("employee", 0, "Employee id to hand the task to")
	taskListCmd.Flags().Bool("unassigned", false, "Only tasks nobody is responsible for")
	taskListCmd.Flags().Bool("unfinished", false, "Only tasks not yet finished")
	taskListCmd.MarkFlagsMutuallyExclusive("unassigned", "unfinished")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskAssignCmd)
	taskCmd.AddCommand(taskDelayCmd)
	taskCmd.AddCommand(taskFinishCmd)
	taskCmd.AddCommand(taskReassignCmd)
	taskCmd.AddCommand(taskListCmd)
}
