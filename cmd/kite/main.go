package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	kerrors "github.com/vango-dev/kite/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦╔═┬┌┬┐┌─┐
  ╠╩╗│ │ ├┤
  ╩ ╩┴ ┴ └─┘
`

func main() {
	if err := newRootCmd().Execute(); err != nil {
		kerrors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kite",
		Short: "Inspect virtual DOM trees and their reconciliation",
		Long: `Kite renders virtual DOM literals with the kite reconciler.

Trees are JSON vnode literals:

  {"tag": "ul", "props": {"class": "list"}, "children": ["a", {"text": "b"}]}

Commands render a tree to HTML or print the DOM mutations needed to turn
one tree into another.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", ".", "Directory containing kite.json")

	rootCmd.AddCommand(
		initCmd(),
		renderCmd(),
		diffCmd(),
		versionCmd(),
	)
	return rootCmd
}

// printBanner prints the Kite ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}
