package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create <package>",
	Short: "Scaffold a new package definition in the package directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch := newEngine().Create(context.Background(), args[0])
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
	rootCmd.AddCommand(createCmd)
}
