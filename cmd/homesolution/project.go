package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emilianohg/homesolution/internal/journal"
	"github.com/emilianohg/homesolution/internal/models"
	"github.com/emilianohg/homesolution/internal/scheduler"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Register, inspect and finish projects",
}

var projectAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a project with its tasks",
	Long: `Register a project with its tasks.

Each --task is "title:days" or "title:days:description".

Example:
  homesolution project add --address "Calle 1" --client Ana --client Beto \
    --start 2025-01-01 --end 2025-01-20 --task pintar:2.5 --task "limpiar:1:patio"`,
	Args: cobra.NoArgs,
	Run: withSession("project add", func(cmd *cobra.Command, a *app, args []string) error {
		address, _ := cmd.Flags().GetString("address")
		clients, _ := cmd.Flags().GetStringArray("client")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		taskFlags, _ := cmd.Flags().GetStringArray("task")

		payload := journal.ProjectPayload{
			Titles:       []string{},
			Descriptions: []string{},
			Durations:    []float64{},
			Address:      address,
			Clients:      clients,
			Start:        start,
			End:          end,
		}
		for _, raw := range taskFlags {
			parts := strings.SplitN(raw, ":", 3)
			if len(parts) < 2 {
				return fmt.Errorf("task %q must be title:days[:description]", raw)
			}
			days, err := parseNumber(parts[1], "task days")
			if err != nil {
				return err
			}
			desc := ""
			if len(parts) == 3 {
				desc = parts[2]
			}
			payload.Titles = append(payload.Titles, parts[0])
			payload.Descriptions = append(payload.Descriptions, desc)
			payload.Durations = append(payload.Durations, days)
		}

		id, err := a.session.Do(journal.RegisterProject(payload))
		if err != nil {
			return err
		}
		color.Green("Registered project %d at %s with %d task(s)", id, address, len(taskFlags))
		return nil
	}),
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Run: withSession("project list", func(cmd *cobra.Command, a *app, args []string) error {
		reg := a.session.Registry()
		finished, _ := cmd.Flags().GetBool("finished")
		pending, _ := cmd.Flags().GetBool("pending")
		active, _ := cmd.Flags().GetBool("active")

		var refs []scheduler.ProjectRef
		switch {
		case finished:
			refs = reg.FinishedProjects()
		case pending:
			refs = reg.PendingProjects()
		case active:
			refs = reg.ActiveProjects()
		default:
			for _, p := range reg.Projects() {
				refs = append(refs, scheduler.ProjectRef{ID: p.ID, Address: p.Address})
			}
		}

		if len(refs) == 0 {
			fmt.Println(color.HiBlackString("No projects."))
			return nil
		}
		for _, ref := range refs {
			status := color.YellowString("pending")
			if reg.IsFinished(ref.ID) {
				status = color.GreenString("finished")
			}
			fmt.Printf("%3d  %-30s %s\n", ref.ID, ref.Address, status)
		}
		return nil
	}),
}

var projectShowCmd = &cobra.Command{
	Use:   "show PROJECT_ID",
	Short: "Show a project's tasks, staff and cost",
	Args:  cobra.ExactArgs(1),
	Run: withSession("project show", func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		reg := a.session.Registry()

		summary, err := reg.ProjectSummary(id)
		if err != nil {
			return err
		}
		fmt.Print(summary)

		current, err := reg.EmployeesOnProject(id)
		if err != nil {
			return err
		}
		history, err := reg.ProjectHistory(id)
		if err != nil {
			return err
		}
		fmt.Printf("Working now: %s\n", formatRefs(current))
		fmt.Printf("Ever assigned: %s\n", formatRefs(history))

		cost, err := reg.ProjectCost(id)
		if err != nil {
			return err
		}
		fmt.Printf("Cost: %s\n", color.CyanString("%.2f", cost))
		return nil
	}),
}

var projectCostCmd = &cobra.Command{
	Use:   "cost PROJECT_ID",
	Short: "Print a project's cost",
	Args:  cobra.ExactArgs(1),
	Run: withSession("project cost", func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		cost, err := a.session.Registry().ProjectCost(id)
		if err != nil {
			return err
		}
		fmt.Printf("%.2f\n", cost)
		return nil
	}),
}

var projectFinishCmd = &cobra.Command{
	Use:   "finish PROJECT_ID [END_DATE]",
	Short: "Finish a project, freeing its employees",
	Long:  "Finish a project on END_DATE (YYYY-MM-DD, default today). The date may not precede the planned end.",
	Args:  cobra.RangeArgs(1, 2),
	Run: withSession("project finish", func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		end := models.FormatDate(a.session.Registry().Today())
		if len(args) == 2 {
			end = args[1]
		}
		if _, err := a.session.Do(journal.FinishProject(id, end)); err != nil {
			return err
		}
		color.Green("Project %d finished on %s", id, end)
		return nil
	}),
}

var projectDebugCmd = &cobra.Command{
	Use:    "debug PROJECT_ID",
	Short:  "Dump a project's tasks and every employee's counters",
	Args:   cobra.ExactArgs(1),
	Hidden: true,
	Run: withSession("project debug", func(cmd *cobra.Command, a *app, args []string) error {
		id, err := parseID(args[0], "project")
		if err != nil {
			return err
		}
		fmt.Print(a.session.Registry().DebugState(id))
		return nil
	}),
}

func formatRefs(refs []scheduler.EmployeeRef) string {
	if len(refs) == 0 {
		return color.HiBlackString("nobody")
	}
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = fmt.Sprintf("%s (%d)", r.Name, r.ID)
	}
	return strings.Join(parts, ", ")
}

func init() {
	projectAddCmd.Flags().String("address", "", "Street address of the project")
	projectAddCmd.Flags().StringArray("client", nil, "Client name (repeatable)")
	projectAddCmd.Flags().String("start", "", "Start date, YYYY-MM-DD")
	projectAddCmd.Flags().String("end", "", "Planned end date, YYYY-MM-DD")
	projectAddCmd.Flags().StringArray("task", nil, "Task as title:days[:description] (repeatable)")
	projectAddCmd.MarkFlagRequired("address")
	projectAddCmd.MarkFlagRequired("client")
	projectAddCmd.MarkFlagRequired("start")
	projectAddCmd.MarkFlagRequired("end")

	projectListCmd.Flags().Bool("finished", false, "Only finished projects")
	projectListCmd.Flags().Bool("pending", false, "Only unfinished projects")
	projectListCmd.Flags().Bool("active", false, "Only unfinished projects with tasks")
	projectListCmd.MarkFlagsMutuallyExclusive("finished", "pending", "active")

	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectCostCmd)
	projectCmd.AddCommand(projectFinishCmd)
	projectCmd.AddCommand(projectDebugCmd)
}
