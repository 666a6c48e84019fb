package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/kite/internal/config"
	kerrors "github.com/vango-dev/kite/internal/errors"
)

func initCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default kite.json",
		Long: `Write a kite.json with the default settings into the given directory
(the current directory by default). An existing file is kept unless
--force is set.

Examples:
  kite init
  kite init ./app --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path := filepath.Join(dir, config.ConfigFileName)

			if _, err := os.Stat(path); err == nil && !force {
				return kerrors.New("K050").
					WithDetail(path + " already exists").
					WithSuggestion("Use --force to overwrite it")
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing kite.json")

	return cmd
}
