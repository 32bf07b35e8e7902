package main

import (
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom/htmldom"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

type diffOptions struct {
	format string
	apply  bool
}

func diffCmd() *cobra.Command {
	opts := diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff <old.html> <new.html>",
		Short: "Diff two HTML fragments and print the patches",
		Long: `Parse two HTML fragments into view trees, diff them and print the
patch list.

With --apply the old fragment is rendered into an in-memory DOM, the
patches are applied and the resulting HTML is printed along with the
number of DOM mutations it took.

Examples:
  vtree diff before.html after.html
  vtree diff before.html after.html --format yaml
  vtree diff before.html after.html --apply`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			old, err := readView(args[0])
			if err != nil {
				return err
			}
			next, err := readView(args[1])
			if err != nil {
				return err
			}
			return runDiff(cmd.OutOrStdout(), old, next, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text or yaml")
	cmd.Flags().BoolVarP(&opts.apply, "apply", "a", false, "Apply the patches to a rendering of the old fragment")

	return cmd
}

func runDiff(out io.Writer, old, next *vdom.VNode, opts diffOptions) error {
	patches := vdom.Diff(old, next)

	switch opts.format {
	case "text":
		if len(patches) == 0 {
			success(out, "No changes")
		} else {
			fmt.Fprint(out, vdom.DumpPatches(patches))
		}
	case "yaml":
		data, err := yaml.Marshal(reportPatches(patches))
		if err != nil {
			return err
		}
		out.Write(data)
	default:
		return errors.New("E400").WithDetailf("Unknown format %q; use text or yaml", opts.format)
	}

	if !opts.apply {
		return nil
	}
	return applyAndPrint(out, old, next, patches)
}

// applyAndPrint renders old, applies patches and prints the result. The
// result is checked against a fresh rendering of next.
func applyAndPrint(out io.Writer, old, next *vdom.VNode, patches []*vdom.Patch) error {
	doc := htmldom.New()
	r := render.NewRenderer(doc, render.RendererConfig{})
	events := render.NewEventRoot(func(vdom.Msg, bool) {})

	root := r.Render(old, events)
	doc.Root().AppendChild(root)
	doc.ResetStats()

	root = r.Apply(root, render.Locate(root, old, patches, events), patches)
	stats := doc.Stats()

	got, err := htmldom.OuterHTML(root)
	if err != nil {
		return err
	}
	want, err := htmldom.OuterHTML(render.NewRenderer(htmldom.New(), render.RendererConfig{}).Render(next, events))
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, got)
	fmt.Fprintln(out)
	if diff := cmp.Diff(want, got); diff != "" {
		warn(out, "Patched DOM differs from a fresh render (-want +got):\n%s", diff)
	} else {
		success(out, "Patched DOM matches a fresh render")
	}
	info(out, "%d mutations, %d nodes created", stats.Mutations(), stats.Created)
	return nil
}
