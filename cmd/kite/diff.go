package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/kite/pkg/dom/memdom"
	"github.com/vango-dev/kite/pkg/render"
)

func diffCmd() *cobra.Command {
	var (
		count    bool
		showHTML bool
	)

	cmd := &cobra.Command{
		Use:   "diff <from.json> <to.json>",
		Short: "Print the DOM mutations between two trees",
		Long: `Render the first tree, reconcile the second against it and print every
DOM write the reconciler issued, one per line as "target op name value".

Examples:
  kite diff before.json after.json
  kite diff --count before.json after.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := readTree(cmd, args[0])
			if err != nil {
				return err
			}
			to, err := readTree(cmd, args[1])
			if err != nil {
				return err
			}

			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := s.mount(from); err != nil {
				return err
			}
			s.doc.ResetMutations()
			if err := s.mount(to); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if count {
				fmt.Fprintln(out, s.doc.MutationCount())
			} else {
				for _, line := range memdom.Strings(s.doc.Mutations()) {
					fmt.Fprintln(out, line)
				}
			}
			if showHTML {
				fmt.Fprintln(out, render.InnerHTML(s.root))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&count, "count", "c", false, "Print only the number of mutations")
	cmd.Flags().BoolVar(&showHTML, "html", false, "Print the resulting HTML after the mutations")

	return cmd
}
