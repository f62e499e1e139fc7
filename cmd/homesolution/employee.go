package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/emilianohg/homesolution/internal/journal"
	"github.com/emilianohg/homesolution/internal/models"
)

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Register and list employees",
}

var employeeAddContractedCmd = &cobra.Command{
	Use:   "add-contracted NAME HOURLY_RATE",
	Short: "Register an employee paid by the hour",
	Args:  cobra.ExactArgs(2),
	Run: withSession("employee add-contracted", func(cmd *cobra.Command, a *app, args []string) error {
		rate, err := parseNumber(args[1], "hourly rate")
		if err != nil {
			return err
		}
		id, err := a.session.Do(journal.RegisterContracted(args[0], rate))
		if err != nil {
			return err
		}
		color.Green("Registered %s with id %d", args[0], id)
		return nil
	}),
}

var employeeAddSalariedCmd = &cobra.Command{
	Use:   "add-salaried NAME DAILY_RATE CATEGORY",
	Short: "Register an employee paid by the day",
	Long:  fmt.Sprintf("Register an employee paid by the day. CATEGORY is one of %v.", models.Categories),
	Args:  cobra.ExactArgs(3),
	Run: withSession("employee add-salaried", func(cmd *cobra.Command, a *app, args []string) error {
		rate, err := parseNumber(args[1], "daily rate")
		if err != nil {
			return err
		}
		id, err := a.session.Do(journal.RegisterSalaried(args[0], rate, args[2]))
		if err != nil {
			return err
		}
		color.Green("Registered %s with id %d", args[0], id)
		return nil
	}),
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	Run: withSession("employee list", func(cmd *cobra.Command, a *app, args []string) error {
		reg := a.session.Registry()
		free, _ := cmd.Flags().GetBool("free")
		byDelay, _ := cmd.Flags().GetBool("by-delay")

		employees := reg.EmployeeDetails()
		if byDelay {
			employees = nil
			for _, ref := range reg.DelayOrdering() {
				if e, ok := reg.Employee(ref.ID); ok {
					employees = append(employees, e)
				}
			}
		}

		shown := 0
		for _, e := range employees {
			if free && e.Assigned {
				continue
			}
			printEmployee(e)
			shown++
		}
		if shown == 0 {
			fmt.Println(color.HiBlackString("No employees."))
		}
		return nil
	}),
}

var employeeQueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the FIFO free queue and the least-delay ordering",
	Run: withSession("employee queue", func(cmd *cobra.Command, a *app, args []string) error {
		reg := a.session.Registry()
		fmt.Println(color.CyanString("Free queue (oldest first):"))
		for _, id := range reg.FreeQueue() {
			e, ok := reg.Employee(id)
			if !ok || e.Assigned {
				continue
			}
			fmt.Printf("  %d %s\n", e.ID, e.Name)
		}
		fmt.Println(color.CyanString("Least-delay ordering:"))
		for _, ref := range reg.DelayOrdering() {
			fmt.Printf("  %d %s (%d delays)\n", ref.ID, ref.Name, reg.DelayCount(ref.ID))
		}
		return nil
	}),
}

func printEmployee(e models.Employee) {
	rate := fmt.Sprintf("%.2f/hour", e.Rate)
	if e.Kind == models.KindSalaried {
		rate = fmt.Sprintf("%.2f/day %s", e.Rate, e.Category)
	}
	state := color.GreenString("free")
	if e.Assigned {
		state = color.YellowString("assigned")
	}
	delays := fmt.Sprintf("%d delays", e.Delays)
	if e.HasDelays() {
		delays = color.RedString(delays)
	}
	fmt.Printf("%d  %-20s %-10s %-22s %s  %s\n", e.ID, e.Name, e.Kind, rate, delays, state)
}

func init() {
	employeeListCmd.Flags().Bool("free", false, "Only employees without a task")
	employeeListCmd.Flags().Bool("by-delay", false, "Order by delay count instead of id")

	employeeCmd.AddCommand(employeeAddContractedCmd)
	employeeCmd.AddCommand(employeeAddSalariedCmd)
	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeQueueCmd)
}
