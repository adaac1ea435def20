package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/turboladen/selfie/internal/validate"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and validate the selfie configuration",
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the loaded configuration for structural issues",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result := validate.ConfigResult(validate.Config{
			Environment:      appCfg.Environment,
			PackageDirectory: appCfg.PackageDirectory,
		}, filepath.IsAbs)

		for _, issue := range result.Errors() {
			printIssue(cmd, "error", issue)
		}
		for _, issue := range result.Warnings() {
			printIssue(cmd, "warning", issue)
		}

		if result.IsValid() {
			fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
			return nil
		}
		os.Exit(1)
		return nil
	},
}

func printIssue(cmd *cobra.Command, level string, issue validate.Issue) {
	label := level
	if appCfg.UseColors && !flagNoColor {
		c := color.New(color.FgYellow)
		if level == "error" {
			c = color.New(color.FgRed)
		}
		label = c.Sprint(level)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", label, issue.Field, issue.Message)
	if issue.Suggestion != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", issue.Suggestion)
	}
}

func init() {
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}
