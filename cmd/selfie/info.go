package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <package>",
	Short: "Show a package's metadata and per-environment status",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch := newEngine().Info(context.Background(), args[0])
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
	rootCmd.AddCommand(infoCmd)
}
