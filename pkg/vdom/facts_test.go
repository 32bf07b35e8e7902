package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func factsOf(facts ...Fact) *Facts {
	var f Facts
	for _, fact := range facts {
		f.add(fact)
	}
	return &f
}

func TestDiffFactsEqual(t *testing.T) {
	click := Succeed("clicked")
	a := factsOf(ID("x"), Style("color", "red"), Prop("title", "t"), On("click", click), XLinkHref("#a"))
	b := factsOf(ID("x"), Style("color", "red"), Prop("title", "t"), On("click", click), XLinkHref("#a"))

	if d := diffFacts(a, b); d != nil {
		t.Errorf("diffFacts of equal facts = %+v, want nil", d)
	}
}

func TestDiffFactsCategories(t *testing.T) {
	tests := []struct {
		name  string
		x, y  *Facts
		check func(t *testing.T, d *FactsDelta)
	}{
		{
			name: "attribute added, changed and removed",
			x:    factsOf(Attr("a", "1"), Attr("b", "2")),
			y:    factsOf(Attr("a", "9"), Attr("c", "3")),
			check: func(t *testing.T, d *FactsDelta) {
				want := map[string]Change[string]{
					"a": {Value: "9"},
					"b": {Value: "2", Removed: true},
					"c": {Value: "3"},
				}
				if diff := cmp.Diff(want, d.Attrs); diff != "" {
					t.Errorf("Attrs mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "style removed becomes empty",
			x:    factsOf(Style("color", "red"), Style("margin", "0")),
			y:    factsOf(Style("color", "blue")),
			check: func(t *testing.T, d *FactsDelta) {
				want := map[string]string{"color": "blue", "margin": ""}
				if diff := cmp.Diff(want, d.Styles); diff != "" {
					t.Errorf("Styles mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "removed string property is cleared, others deleted",
			x:    factsOf(Prop("title", "t"), Prop("tabIndex", 1)),
			y:    factsOf(),
			check: func(t *testing.T, d *FactsDelta) {
				want := map[string]any{"title": "", "tabIndex": nil}
				if diff := cmp.Diff(want, d.Props); diff != "" {
					t.Errorf("Props mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "unchanged value and checked are skipped",
			x:    factsOf(Value("same"), Checked(true)),
			y:    factsOf(Value("same"), Checked(true)),
			check: func(t *testing.T, d *FactsDelta) {
				if d != nil {
					t.Errorf("delta = %+v, want nil", d)
				}
			},
		},
		{
			name: "changed value is emitted",
			x:    factsOf(Value("a"), Checked(true)),
			y:    factsOf(Value("b"), Checked(true)),
			check: func(t *testing.T, d *FactsDelta) {
				want := map[string]any{"value": "b"}
				if diff := cmp.Diff(want, d.Props); diff != "" {
					t.Errorf("Props mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name: "namespaced attribute removal keeps namespace",
			x:    factsOf(XLinkHref("#a")),
			y:    factsOf(),
			check: func(t *testing.T, d *FactsDelta) {
				c := d.AttrsNS["xlink:href"]
				if !c.Removed || c.Value.Namespace != NamespaceXLink {
					t.Errorf("AttrsNS[xlink:href] = %+v", c)
				}
			},
		},
		{
			name: "handler with a different message",
			x:    factsOf(OnClick("a")),
			y:    factsOf(OnClick("b")),
			check: func(t *testing.T, d *FactsDelta) {
				c, ok := d.Events["click"]
				if !ok || c.Removed {
					t.Fatalf("Events[click] = %+v", c)
				}
				got, _ := c.Value.Decoder.Decode(nil)
				if got.Msg != "b" {
					t.Errorf("new handler decodes %v, want b", got.Msg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := diffFacts(tt.x, tt.y)
			if d == nil {
				t.Fatal("diffFacts = nil, want a delta")
			}
			tt.check(t, d)
		})
	}
}

func TestHandlerEqual(t *testing.T) {
	shared := Field("value", func(s string) Msg { return s })

	tests := []struct {
		name string
		a, b Handler
		want bool
	}{
		{
			name: "same constant message",
			a:    Handler{Kind: HandlerNormal, Decoder: Succeed(1)},
			b:    Handler{Kind: HandlerNormal, Decoder: Succeed(1)},
			want: true,
		},
		{
			name: "different constant message",
			a:    Handler{Kind: HandlerNormal, Decoder: Succeed(1)},
			b:    Handler{Kind: HandlerNormal, Decoder: Succeed(2)},
			want: false,
		},
		{
			name: "same decoder instance",
			a:    Handler{Kind: HandlerNormal, Decoder: shared},
			b:    Handler{Kind: HandlerNormal, Decoder: shared},
			want: true,
		},
		{
			name: "separately built decoders",
			a:    Handler{Kind: HandlerNormal, Decoder: Field("value", func(s string) Msg { return s })},
			b:    Handler{Kind: HandlerNormal, Decoder: Field("value", func(s string) Msg { return s })},
			want: false,
		},
		{
			name: "different kind",
			a:    Handler{Kind: HandlerNormal, Decoder: shared},
			b:    Handler{Kind: HandlerCustom, Decoder: shared},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandlerResolve(t *testing.T) {
	all := Decoded{Msg: 1, StopPropagation: true, PreventDefault: true}

	tests := []struct {
		kind        HandlerKind
		wantStop    bool
		wantPrevent bool
	}{
		{HandlerNormal, false, false},
		{HandlerMayStopPropagation, true, false},
		{HandlerMayPreventDefault, false, true},
		{HandlerCustom, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := Handler{Kind: tt.kind}.Resolve(all)
			if got.StopPropagation != tt.wantStop || got.PreventDefault != tt.wantPrevent {
				t.Errorf("Resolve() = %+v, want stop=%v prevent=%v", got, tt.wantStop, tt.wantPrevent)
			}
			if got.Msg != 1 {
				t.Errorf("Resolve() changed the message to %v", got.Msg)
			}
		})
	}
}

func TestSameRef(t *testing.T) {
	p := &struct{ n int }{1}
	q := &struct{ n int }{1}
	s := []int{1, 2, 3}
	m := map[string]int{}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"nil nil", nil, nil, true},
		{"nil value", nil, 1, false},
		{"equal ints", 3, 3, true},
		{"different types", 3, int64(3), false},
		{"equal strings", "a", "a", true},
		{"same pointer", p, p, true},
		{"equal pointees", p, q, false},
		{"same slice", s, s, true},
		{"subslice", s, s[:2], false},
		{"same map", m, m, true},
		{"uncomparable struct", struct{ s []int }{s}, struct{ s []int }{s}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameRef(tt.a, tt.b); got != tt.want {
				t.Errorf("SameRef() = %v, want %v", got, tt.want)
			}
		})
	}
}
