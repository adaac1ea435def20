package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Run a package's install command for the active environment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch := newEngine().Install(context.Background(), args[0])
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
	rootCmd.AddCommand(installCmd)
}
