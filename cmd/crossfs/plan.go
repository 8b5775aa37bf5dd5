package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/crossfs/pkg/crossfs"
	"github.com/arthur-debert/crossfs/pkg/crossfs/filesystem"
)

func newPlanCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Manage operation plans",
		Long:  "Create, validate and execute serialized operation plans",
	}

	cmd.AddCommand(newPlanCreateCommand())
	cmd.AddCommand(newPlanValidateCommand())
	cmd.AddCommand(newPlanExecuteCommand(a))
	return cmd
}

func readPlan(planFile string) (*crossfs.Plan, error) {
	data, err := os.ReadFile(planFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file %s: %w", planFile, err)
	}
	plan, err := crossfs.UnmarshalPlan(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse plan: %w", err)
	}
	return plan, nil
}

func newPlanCreateCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "create <description>",
		Short: "Create an empty operation plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := crossfs.MarshalPlan(crossfs.NewPlan(args[0]))
			if err != nil {
				return fmt.Errorf("failed to marshal plan: %w", err)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write plan file %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created plan file: %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "plan.json", "output plan file")
	return cmd
}

func newPlanValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <plan-file>",
		Short: "Validate an operation plan",
		Long:  "Check the structure and dependencies of a plan and print the order it would run in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := readPlan(args[0])
			if err != nil {
				return err
			}
			queue, err := plan.ToQueue()
			if err != nil {
				return fmt.Errorf("plan validation failed: %w", err)
			}
			if err := queue.Validate(); err != nil {
				return fmt.Errorf("plan validation failed: %w", err)
			}
			if err := queue.Resolve(); err != nil {
				return fmt.Errorf("plan validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Plan file is valid\n")
			fmt.Fprintf(out, "Description: %s\n", plan.Metadata.Description)
			fmt.Fprintf(out, "Version: %s\n", plan.Metadata.Version)
			fmt.Fprintf(out, "Operations: %d\n", len(plan.Operations))
			for i, op := range queue.Operations() {
				desc := op.Describe()
				fmt.Fprintf(out, "  %d. %s: %s (%s)\n", i+1, op.ID(), desc.Path, desc.Type)
			}
			return nil
		},
	}
}

func newPlanExecuteCommand(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "execute <plan-file>",
		Short: "Execute an operation plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := readPlan(args[0])
			if err != nil {
				return err
			}
			queue, err := plan.ToQueue()
			if err != nil {
				return err
			}

			fs := a.fs
			var dry *filesystem.DryRunFileSystem
			if dryRun {
				dry = filesystem.NewDryRunFileSystem(fs.FileSystem(), a.logger)
				fs = fs.WithFileSystem(dry)
			}
			result := crossfs.NewExecutor(a.logger).Run(cmd.Context(), fs, queue)

			out := cmd.OutOrStdout()
			if dry != nil {
				fmt.Fprintf(out, "DRY RUN: Plan '%s' execution summary:\n", plan.Metadata.Description)
			} else {
				fmt.Fprintf(out, "Plan '%s' execution summary:\n", plan.Metadata.Description)
			}
			for _, opResult := range result.Operations {
				fmt.Fprintf(out, "  %s %s - %v\n", opResult.OperationID, opResult.Status, opResult.Duration)
				if opResult.Error != nil {
					fmt.Fprintf(out, "    Error: %v\n", opResult.Error)
				}
			}

			if !result.Success {
				return fmt.Errorf("plan execution failed: %w", result.FirstError())
			}
			if dry != nil {
				fmt.Fprintf(out, "Changes that would be made:\n")
				for _, change := range dry.Changes() {
					fmt.Fprintf(out, "  %s\n", change)
				}
			}
			fmt.Fprintf(out, "Plan executed successfully in %v\n", result.Duration)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Simulate execution without making changes")
	return cmd
}
