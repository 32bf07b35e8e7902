package vdom

// Change is a single fact update. Removed facts carry the old value so the
// patcher knows, for example, which namespace to remove an attribute from.
type Change[V any] struct {
	Value   V
	Removed bool
}

// FactsDelta is the per-category difference between two fact sets.
type FactsDelta struct {
	Props   map[string]any    // nil or "" for removed properties
	Styles  map[string]string // "" for removed styles
	Attrs   map[string]Change[string]
	AttrsNS map[string]Change[NSAttr]
	Events  map[string]Change[Handler]
}

// Len returns the number of changed facts.
func (d *FactsDelta) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Props) + len(d.Styles) + len(d.Attrs) + len(d.AttrsNS) + len(d.Events)
}

// diffFacts returns the delta turning x into y, or nil when they are equal.
func diffFacts(x, y *Facts) *FactsDelta {
	d := &FactsDelta{
		Props:   diffProps(x.Props, y.Props),
		Styles:  diffStyles(x.Styles, y.Styles),
		Attrs:   diffCategory(x.Attrs, y.Attrs, func(a, b string) bool { return a == b }),
		AttrsNS: diffCategory(x.AttrsNS, y.AttrsNS, func(a, b NSAttr) bool { return a == b }),
		Events:  diffCategory(x.Events, y.Events, Handler.Equal),
	}
	if d.Len() == 0 {
		return nil
	}
	return d
}

// diffProps compares properties by reference. A "value" or "checked" the
// view did not change is left alone even if the live node has drifted.
func diffProps(x, y map[string]any) map[string]any {
	var out map[string]any
	set := func(key string, value any) {
		if out == nil {
			out = make(map[string]any)
		}
		out[key] = value
	}

	for key, xv := range x {
		yv, ok := y[key]
		if !ok {
			if _, isString := xv.(string); isString {
				set(key, "")
			} else {
				set(key, nil)
			}
			continue
		}
		if SameRef(xv, yv) {
			continue
		}
		set(key, yv)
	}
	for key, yv := range y {
		if _, ok := x[key]; !ok {
			set(key, yv)
		}
	}
	return out
}

func diffStyles(x, y map[string]string) map[string]string {
	var out map[string]string
	set := func(key, value string) {
		if out == nil {
			out = make(map[string]string)
		}
		out[key] = value
	}

	for key, xv := range x {
		yv, ok := y[key]
		if !ok {
			set(key, "")
			continue
		}
		if xv != yv {
			set(key, yv)
		}
	}
	for key, yv := range y {
		if _, ok := x[key]; !ok {
			set(key, yv)
		}
	}
	return out
}

func diffCategory[V any](x, y map[string]V, equal func(a, b V) bool) map[string]Change[V] {
	var out map[string]Change[V]
	set := func(key string, c Change[V]) {
		if out == nil {
			out = make(map[string]Change[V])
		}
		out[key] = c
	}

	for key, xv := range x {
		yv, ok := y[key]
		if !ok {
			set(key, Change[V]{Value: xv, Removed: true})
			continue
		}
		if !equal(xv, yv) {
			set(key, Change[V]{Value: yv})
		}
	}
	for key, yv := range y {
		if _, ok := x[key]; !ok {
			set(key, Change[V]{Value: yv})
		}
	}
	return out
}
