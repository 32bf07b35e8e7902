package vdom

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders a view tree as an indented outline, with each node's
// traversal index and descendant count. Lazy nodes show their cached tree
// if one exists.
func Dump(node *VNode) string {
	tree := treeprint.New()
	dumpNode(tree, node, 0)
	return tree.String()
}

func dumpNode(tree treeprint.Tree, v *VNode, index int) {
	label := fmt.Sprintf("[%d] %s", index, describe(v))
	switch v.Kind {
	case KindText, KindCustom:
		tree.AddNode(label)
	case KindElement, KindKeyedElement:
		branch := tree.AddBranch(label)
		for i := 0; i < v.ChildCount(); i++ {
			index++
			child := v.ChildNode(i)
			if v.Kind == KindKeyedElement {
				dumpNode(branch.AddBranch("key="+strconv.Quote(v.KeyOf(i))), child, index)
			} else {
				dumpNode(branch, child, index)
			}
			index += child.Descendants
		}
	case KindMapped:
		_, child := FlattenTaggers(v)
		dumpNode(tree.AddBranch(label), child, index+1)
	case KindLazy:
		branch := tree.AddBranch(label)
		if v.Memo.Cached != nil {
			dumpNode(branch, v.Memo.Cached, 0)
		}
	default:
		tree.AddNode(label)
	}
}

func describe(v *VNode) string {
	switch v.Kind {
	case KindText:
		return "text " + strconv.Quote(v.Text)
	case KindElement, KindKeyedElement:
		var b strings.Builder
		b.WriteString("<" + v.Tag)
		if v.Namespace != "" {
			b.WriteString(" ns=" + strconv.Quote(v.Namespace))
		}
		keys := make([]string, 0, len(v.Facts.Attrs))
		for k := range v.Facts.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%q", k, v.Facts.Attrs[k])
		}
		if n := len(v.Facts.Events); n > 0 {
			fmt.Fprintf(&b, " events=%d", n)
		}
		fmt.Fprintf(&b, "> descendants=%d", v.Descendants)
		if v.Kind == KindKeyedElement {
			b.WriteString(" keyed")
		}
		return b.String()
	case KindCustom:
		return fmt.Sprintf("custom %T", v.Widget)
	case KindMapped:
		taggers, _ := FlattenTaggers(v)
		return fmt.Sprintf("map taggers=%d", len(taggers))
	case KindLazy:
		return fmt.Sprintf("lazy deps=%d", len(v.Memo.Deps))
	default:
		return "unknown"
	}
}

// DumpPatches renders a patch list as an outline. Patches nested in memo,
// reorder and removal patches are shown under their carrier.
func DumpPatches(patches []*Patch) string {
	tree := treeprint.New()
	dumpPatches(tree, patches)
	return tree.String()
}

func dumpPatches(tree treeprint.Tree, patches []*Patch) {
	for _, p := range patches {
		label := fmt.Sprintf("[%d] %s%s", p.Index, p.Kind, patchDetail(p))
		switch {
		case p.Kind == PatchMemo:
			dumpPatches(tree.AddBranch(label), p.Sub)
		case p.Kind == PatchReorder:
			branch := tree.AddBranch(label)
			dumpPatches(branch, p.Reorder.Local)
			for _, ins := range p.Reorder.Inserts {
				branch.AddNode(describeInsert(ins))
			}
			for _, ins := range p.Reorder.Trailing {
				branch.AddNode(describeInsert(ins))
			}
		case p.Kind == PatchRemoveKeyed && p.Removal != nil && len(p.Removal.Sub) > 0:
			dumpPatches(tree.AddBranch(label), p.Removal.Sub)
		default:
			tree.AddNode(label)
		}
	}
}

func patchDetail(p *Patch) string {
	switch p.Kind {
	case PatchRedraw:
		return " " + describe(p.Node)
	case PatchText:
		return " " + strconv.Quote(p.Text)
	case PatchFacts:
		return fmt.Sprintf(" changes=%d", p.Facts.Len())
	case PatchTagger:
		return fmt.Sprintf(" taggers=%d", len(p.Taggers))
	case PatchRemoveLast:
		return fmt.Sprintf(" count=%d", p.Count)
	case PatchAppend:
		return fmt.Sprintf(" from=%d to=%d", p.From, len(p.Nodes))
	case PatchRemoveKeyed:
		if p.Removal != nil {
			return " moved"
		}
	}
	return ""
}

func describeInsert(ins Insert) string {
	at := "end"
	if ins.Position >= 0 {
		at = strconv.Itoa(ins.Position)
	}
	if ins.Entry.Status == EntryMoved {
		return "move to " + at
	}
	return "insert at " + at + " " + describe(ins.Entry.Node)
}
