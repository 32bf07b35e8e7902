package vdom

import (
	"strings"
	"testing"
)

func TestParseHTML(t *testing.T) {
	src := `
<ul class="list">
  <li data-key="a">Alice</li>
  <li data-key="b">Bob <b>B.</b></li>
</ul>`

	node, err := ParseHTML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}

	if node.Kind != KindKeyedElement || node.Tag != "ul" {
		t.Fatalf("root = %v <%s>, want keyed <ul>", node.Kind, node.Tag)
	}
	if node.Facts.Attrs["class"] != "list" {
		t.Errorf("class = %q, want list", node.Facts.Attrs["class"])
	}
	if node.KeyOf(0) != "a" || node.KeyOf(1) != "b" {
		t.Errorf("keys = %q, %q", node.KeyOf(0), node.KeyOf(1))
	}
	bob := node.ChildNode(1)
	if bob.Kind != KindElement || len(bob.Children) != 2 {
		t.Fatalf("second child = %+v", bob)
	}
	// ul, li, "Alice", li, "Bob ", b, "B."
	if node.Descendants != 6 {
		t.Errorf("Descendants = %d, want 6", node.Descendants)
	}
}

func TestParseHTMLNamespaces(t *testing.T) {
	node, err := ParseHTML(strings.NewReader(`<svg><use xlink:href="#icon"></use></svg>`))
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}
	if node.Namespace != NamespaceSVG {
		t.Errorf("Namespace = %q, want svg", node.Namespace)
	}
	use := node.Children[0]
	if use.Namespace != NamespaceSVG {
		t.Errorf("use Namespace = %q, want svg", use.Namespace)
	}
	attr := use.Facts.AttrsNS["xlink:href"]
	if attr.Namespace != NamespaceXLink || attr.Value != "#icon" {
		t.Errorf("xlink:href = %+v", attr)
	}
}

func TestParseHTMLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"two roots", "<p>a</p><p>b</p>"},
		{"stray text", "hello <p>a</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseHTML(strings.NewReader(tt.src)); err == nil {
				t.Error("ParseHTML() error = nil, want error")
			}
		})
	}
}

func TestDump(t *testing.T) {
	tree := Div(ID("root"), Ul(Key("a", Li("A"))), Map(testTagger, P("x")))

	out := Dump(tree)
	for _, want := range []string{
		`[0] <div id="root"> descendants=6`,
		`[1] <ul> descendants=2 keyed`,
		`key="a"`,
		`[3] text "A"`,
		`[4] map taggers=1`,
		`[5] <p> descendants=1`,
		`[6] text "x"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() missing %q in:\n%s", want, out)
		}
	}
}

func TestDumpPatches(t *testing.T) {
	x := Div(Ul(Key("a", Li("A")), Key("b", Li("B"))), P("old"))
	y := Div(Ul(Key("b", Li("B")), Key("a", Li("A"))), P("new"))

	out := DumpPatches(Diff(x, y))
	for _, want := range []string{
		`Reorder`,
		`RemoveKeyed moved`,
		`move to`,
		`Text "new"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DumpPatches() missing %q in:\n%s", want, out)
		}
	}
}
