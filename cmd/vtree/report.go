package main

import (
	"fmt"
	"sort"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// patchDoc is the YAML form of a patch.
type patchDoc struct {
	Kind    string            `yaml:"kind"`
	Index   int               `yaml:"index"`
	Text    string            `yaml:"text,omitempty"`
	Node    string            `yaml:"node,omitempty"`
	Facts   map[string]string `yaml:"facts,omitempty"`
	Count   int               `yaml:"count,omitempty"`
	Append  []string          `yaml:"append,omitempty"`
	Moved   bool              `yaml:"moved,omitempty"`
	Sub     []patchDoc        `yaml:"sub,omitempty"`
	Inserts []insertDoc       `yaml:"inserts,omitempty"`
}

type insertDoc struct {
	Position string `yaml:"position"`
	Moved    bool   `yaml:"moved,omitempty"`
	Node     string `yaml:"node,omitempty"`
}

func reportPatches(patches []*vdom.Patch) []patchDoc {
	docs := make([]patchDoc, 0, len(patches))
	for _, p := range patches {
		docs = append(docs, reportPatch(p))
	}
	return docs
}

func reportPatch(p *vdom.Patch) patchDoc {
	d := patchDoc{Kind: p.Kind.String(), Index: p.Index}

	switch p.Kind {
	case vdom.PatchRedraw:
		d.Node = nodeLabel(p.Node)
	case vdom.PatchText:
		d.Text = p.Text
	case vdom.PatchFacts:
		d.Facts = reportFacts(p.Facts)
	case vdom.PatchMemo:
		d.Sub = reportPatches(p.Sub)
	case vdom.PatchRemoveLast:
		d.Count = p.Count
	case vdom.PatchAppend:
		for _, n := range p.Nodes[p.From:] {
			d.Append = append(d.Append, nodeLabel(n))
		}
	case vdom.PatchReorder:
		d.Sub = reportPatches(p.Reorder.Local)
		for _, ins := range append(append([]vdom.Insert(nil), p.Reorder.Inserts...), p.Reorder.Trailing...) {
			d.Inserts = append(d.Inserts, reportInsert(ins))
		}
	case vdom.PatchRemoveKeyed:
		if p.Removal != nil {
			d.Moved = true
			d.Sub = reportPatches(p.Removal.Sub)
		}
	case vdom.PatchCustom, vdom.PatchCallback:
		d.Node = fmt.Sprintf("%T", p.Payload)
	}
	return d
}

func reportInsert(ins vdom.Insert) insertDoc {
	d := insertDoc{Position: "end"}
	if ins.Position >= 0 {
		d.Position = fmt.Sprint(ins.Position)
	}
	if ins.Entry.Status == vdom.EntryMoved {
		d.Moved = true
	} else {
		d.Node = nodeLabel(ins.Entry.Node)
	}
	return d
}

// reportFacts flattens a facts delta into "category:key" entries.
func reportFacts(delta *vdom.FactsDelta) map[string]string {
	out := make(map[string]string, delta.Len())
	for k, v := range delta.Props {
		out["prop:"+k] = fmt.Sprint(v)
	}
	for k, v := range delta.Styles {
		out["style:"+k] = v
	}
	for k, c := range delta.Attrs {
		out["attr:"+k] = changeLabel(c.Value, c.Removed)
	}
	for k, c := range delta.AttrsNS {
		out["attr:"+k] = changeLabel(c.Value.Value, c.Removed)
	}
	for k, c := range delta.Events {
		label := "handler"
		if c.Removed {
			label = "removed"
		}
		out["event:"+k] = label
	}
	return out
}

func changeLabel(value string, removed bool) string {
	if removed {
		return "removed"
	}
	return value
}

func nodeLabel(v *vdom.VNode) string {
	switch v.Kind {
	case vdom.KindText:
		return fmt.Sprintf("%q", v.Text)
	case vdom.KindElement, vdom.KindKeyedElement:
		keys := make([]string, 0, len(v.Facts.Attrs))
		for k := range v.Facts.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		label := "<" + v.Tag
		for _, k := range keys {
			label += fmt.Sprintf(" %s=%q", k, v.Facts.Attrs[k])
		}
		return label + ">"
	default:
		return v.Kind.String()
	}
}
