package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <package>",
	Short: "Check a package definition for structural issues",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch := newEngine().Validate(context.Background(), args[0])
		result, err := newRenderer().Drain(ch)
		if err != nil {
			return err
		}
		if !result.Success {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
