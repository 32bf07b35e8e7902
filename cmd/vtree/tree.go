package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/pkg/vdom"
)

func treeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <file.html>",
		Short: "Print a view tree with traversal indices",
		Long: `Parse an HTML fragment into a view tree and print it as an outline.

Each node shows its pre-order traversal index, the number patches are
addressed by, and its descendant count. Elements whose element children
all carry data-key are keyed.

Examples:
  vtree tree page.html
  cat page.html | vtree tree -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := readView(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), vdom.Dump(v))
			return nil
		},
	}
	return cmd
}
