package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <package>",
	Short: "Delete a package definition from the package directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		eng := newEngine()

		if dependents, err := eng.Dependents(name); err == nil && len(dependents) > 0 {
			names := make([]string, 0, len(dependents))
			for _, dep := range dependents {
				names = append(names, dep.Name)
			}
			fmt.Fprintf(os.Stderr, "warning: %d package(s) depend on %q: %v\n", len(names), name, names)
		}

		if err := eng.Remove(name); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed package %q\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
