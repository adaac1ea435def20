package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <package>",
	Short: "Report whether a package's check command says it is installed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ch := newEngine().Check(context.Background(), args[0])
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
	rootCmd.AddCommand(checkCmd)
}
