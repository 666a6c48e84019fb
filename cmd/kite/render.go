package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/kite/pkg/render"
)

func renderCmd() *cobra.Command {
	var (
		pretty     bool
		properties bool
	)

	cmd := &cobra.Command{
		Use:   "render <tree.json>",
		Short: "Render a vnode literal to HTML",
		Long: `Render a JSON vnode literal into an in-memory document and print the
resulting HTML. Use "-" to read the literal from stdin.

Examples:
  kite render tree.json
  kite render --pretty tree.json
  echo '["a", {"tag": "b", "children": ["c"]}]' | kite render -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readTree(cmd, args[0])
			if err != nil {
				return err
			}
			s, err := newSession(cmd)
			if err != nil {
				return err
			}
			if err := s.mount(v); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := render.NewRenderer(render.RendererConfig{Pretty: pretty, Properties: properties})
			if err := r.RenderChildren(out, s.root); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent block elements")
	cmd.Flags().BoolVar(&properties, "properties", false, "Write live properties as attributes")

	return cmd
}
