package vdom

// PatchKind is the type of patch operation.
type PatchKind uint8

const (
	PatchRedraw      PatchKind = iota // Replace the subtree with Node
	PatchFacts                        // Apply Facts delta
	PatchText                         // Replace text content
	PatchMemo                         // Apply Sub to a memoized subtree
	PatchTagger                       // Replace the taggers of a mapped subtree
	PatchRemoveLast                   // Remove the last Count children
	PatchAppend                       // Append Nodes[From:] as children
	PatchReorder                      // Keyed children reconciliation
	PatchRemoveKeyed                  // Keyed child removed (or moved away)
	PatchCustom                       // Widget payload
	PatchCallback                     // Imperative callback
)

// String returns the string representation of the PatchKind.
func (k PatchKind) String() string {
	switch k {
	case PatchRedraw:
		return "Redraw"
	case PatchFacts:
		return "Facts"
	case PatchText:
		return "Text"
	case PatchMemo:
		return "Memo"
	case PatchTagger:
		return "Tagger"
	case PatchRemoveLast:
		return "RemoveLast"
	case PatchAppend:
		return "Append"
	case PatchReorder:
		return "Reorder"
	case PatchRemoveKeyed:
		return "RemoveKeyed"
	case PatchCustom:
		return "Custom"
	case PatchCallback:
		return "Callback"
	default:
		return "Unknown"
	}
}

// Patch is a single change addressed by the pre-order traversal index of
// its target in the old tree (the root is 0).
type Patch struct {
	Kind  PatchKind
	Index int

	Node    *VNode      // PatchRedraw; PatchCustom: the new custom node
	Facts   *FactsDelta // PatchFacts
	Text    string      // PatchText
	Sub     []*Patch    // PatchMemo: patches relative to the memoized tree
	Taggers []*Tagger   // PatchTagger, outermost first

	Count int      // PatchRemoveLast
	From  int      // PatchAppend: first new child
	Nodes []*VNode // PatchAppend: the full new child list

	Reorder *Reorder // PatchReorder
	Removal *Removal // PatchRemoveKeyed; nil for a plain removal

	Payload  any      // PatchCustom
	Callback Callback // PatchCallback
}

// EntryStatus tracks what the keyed reconciler has seen of a key.
type EntryStatus uint8

const (
	EntryInserted EntryStatus = iota // Seen only on the new side so far
	EntryRemoved                     // Seen only on the old side so far
	EntryMoved                       // Seen on both sides at different positions
)

// Entry is the reconciliation record of one key.
type Entry struct {
	Status EntryStatus
	Node   *VNode // New node when inserted, old node when removed
	// Index is the old traversal index while the entry is a removal, and
	// the new child position once it is an insertion target (-1 for a
	// trailing insert).
	Index int
	// removal is the PatchRemoveKeyed emitted for a removal-first entry, so
	// a later insert can turn it into a move.
	removal *Patch
}

// Insert places an entry's node at a child position of the keyed parent.
type Insert struct {
	Position int // -1 for trailing inserts
	Entry    *Entry
}

// Removal links a removed keyed child to the entry that reuses its live
// node. Sub patches bring the old node up to date with the new one and are
// addressed in the parent's index space, starting at the old node's index.
type Removal struct {
	Sub   []*Patch
	Entry *Entry
}

// Reorder is the result of keyed children reconciliation.
type Reorder struct {
	Local    []*Patch // Same-position patches and removals
	Inserts  []Insert
	Trailing []Insert
}

// Walk calls fn for every patch in patches and, recursively, every patch
// nested inside memo, reorder and removal patches.
func Walk(patches []*Patch, fn func(*Patch)) {
	for _, p := range patches {
		fn(p)
		switch p.Kind {
		case PatchMemo:
			Walk(p.Sub, fn)
		case PatchReorder:
			Walk(p.Reorder.Local, fn)
		case PatchRemoveKeyed:
			if p.Removal != nil {
				Walk(p.Removal.Sub, fn)
			}
		}
	}
}

// Count returns the number of patches of each kind, nested ones included.
func Count(patches []*Patch) map[PatchKind]int {
	out := make(map[PatchKind]int)
	Walk(patches, func(p *Patch) { out[p.Kind]++ })
	return out
}
