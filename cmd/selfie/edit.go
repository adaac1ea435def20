package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
)

// editCmd opens a package definition in $EDITOR. Interactive editing is an
// external collaborator (spec.md §1/§6): the engine never launches a
// subprocess editor itself, so this command resolves the file's path
// through the same <name>.yaml/<name>.yml convention the repository uses
// and shells out directly.
var editCmd = &cobra.Command{
	Use:   "edit <package>",
	Short: "Open a package definition in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		var path string
		for _, ext := range []string{".yaml", ".yml"} {
			candidate := filepath.Join(appCfg.PackageDirectory, name+ext)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return fmt.Errorf("package %q not found in %s", name, appCfg.PackageDirectory)
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			return fmt.Errorf("EDITOR is not set")
		}

		c := exec.Command(editor, path)
		c.Stdin, c.Stdout, c.Stderr = os.Stdin, os.Stdout, os.Stderr
		return c.Run()
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
