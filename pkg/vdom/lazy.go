package vdom

import "reflect"

// Memo caches the tree produced by a Lazy node's thunk.
type Memo struct {
	Deps   []any
	Thunk  func() *VNode
	Cached *VNode
}

// Force returns the cached tree, evaluating the thunk on first use.
func (m *Memo) Force() *VNode {
	if m.Cached == nil {
		m.Cached = m.Thunk()
	}
	return m.Cached
}

// Lazy creates a memoized node. When a later view supplies deps that are
// pairwise reference-equal to these, the thunk is not called and the
// previous tree is reused without diffing.
//
// Lazy nodes have no descendants in the enclosing index space; patches
// inside them are addressed relative to the memoized tree.
func Lazy(thunk func() *VNode, deps ...any) *VNode {
	return &VNode{
		Kind: KindLazy,
		Memo: &Memo{Deps: deps, Thunk: thunk},
	}
}

// sameDeps compares two dependency lists pairwise by reference.
func sameDeps(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !SameRef(a[i], b[i]) {
			return false
		}
	}
	return true
}

// SameRef reports whether a and b are the same reference. Pointers, maps,
// channels and functions compare by address, slices by backing array and
// length, and other comparable values by ==. Values that cannot be
// compared are never the same.
//
// Functions compare by code address, so two closures created from the
// same literal are considered equal even if they capture different values.
func SameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if !va.Type().Comparable() {
		return false
	}
	defer func() { _ = recover() }() // interface fields holding uncomparable values
	return a == b
}
