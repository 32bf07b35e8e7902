package vdom

// duplicateSuffix disambiguates a key that appears more than once on one
// side of a keyed list.
const duplicateSuffix = "\x00dup"

// keyedDiff is the state of one keyed children reconciliation.
type keyedDiff struct {
	local    []*Patch
	changes  map[string]*Entry
	inserts  []Insert
	trailing []Insert
}

// diffKeyedChildren reconciles the keyed children of x and y walking both
// lists once with a one-element lookahead. Adjacent swaps, single
// insertions and single removals are detected directly; anything else
// stops the paired walk and the remainder is treated as removals and
// trailing insertions, with keys seen on both sides paired into moves.
func diffKeyedChildren(x, y *VNode, patches *[]*Patch, rootIndex int) {
	kd := &keyedDiff{changes: make(map[string]*Entry)}

	xKids, yKids := x.Keyed, y.Keyed
	xLen, yLen := len(xKids), len(yKids)
	xIndex, yIndex := 0, 0
	index := rootIndex

walk:
	for xIndex < xLen && yIndex < yLen {
		xk, yk := xKids[xIndex], yKids[yIndex]

		if xk.Key == yk.Key {
			index++
			diff(xk.Node, yk.Node, &kd.local, index)
			index += xk.Node.Descendants
			xIndex++
			yIndex++
			continue
		}

		var xNext, yNext *KeyedChild
		if xIndex+1 < xLen {
			xNext = &xKids[xIndex+1]
		}
		if yIndex+1 < yLen {
			yNext = &yKids[yIndex+1]
		}
		oldMatch := xNext != nil && yk.Key == xNext.Key
		newMatch := yNext != nil && xk.Key == yNext.Key

		switch {
		case newMatch && oldMatch:
			// swap x and y
			index++
			diff(xk.Node, yNext.Node, &kd.local, index)
			kd.insert(yk.Key, yk.Node, yIndex, false)
			index += xk.Node.Descendants

			index++
			kd.remove(xNext.Key, xNext.Node, index)
			index += xNext.Node.Descendants

			xIndex += 2
			yIndex += 2

		case newMatch:
			// insert y
			index++
			kd.insert(yk.Key, yk.Node, yIndex, false)
			diff(xk.Node, yNext.Node, &kd.local, index)
			index += xk.Node.Descendants

			xIndex++
			yIndex += 2

		case oldMatch:
			// remove x
			index++
			kd.remove(xk.Key, xk.Node, index)
			index += xk.Node.Descendants

			index++
			diff(xNext.Node, yk.Node, &kd.local, index)
			index += xNext.Node.Descendants

			xIndex += 2
			yIndex++

		case xNext != nil && yNext != nil && xNext.Key == yNext.Key:
			// remove x, insert y
			index++
			kd.remove(xk.Key, xk.Node, index)
			kd.insert(yk.Key, yk.Node, yIndex, false)
			index += xk.Node.Descendants

			index++
			diff(xNext.Node, yNext.Node, &kd.local, index)
			index += xNext.Node.Descendants

			xIndex += 2
			yIndex += 2

		default:
			break walk
		}
	}

	for ; xIndex < xLen; xIndex++ {
		index++
		xk := xKids[xIndex]
		kd.remove(xk.Key, xk.Node, index)
		index += xk.Node.Descendants
	}

	for ; yIndex < yLen; yIndex++ {
		yk := yKids[yIndex]
		kd.insert(yk.Key, yk.Node, -1, true)
	}

	if len(kd.local) > 0 || len(kd.inserts) > 0 || len(kd.trailing) > 0 {
		push(patches, &Patch{
			Kind:  PatchReorder,
			Index: rootIndex,
			Reorder: &Reorder{
				Local:    kd.local,
				Inserts:  kd.inserts,
				Trailing: kd.trailing,
			},
		})
	}
}

// insert records that key appears in the new list at position. If the key
// was removed earlier in the walk the removal becomes a move.
func (kd *keyedDiff) insert(key string, node *VNode, position int, trailing bool) {
	for {
		entry, ok := kd.changes[key]
		switch {
		case !ok:
			entry = &Entry{Status: EntryInserted, Node: node, Index: position}
			kd.addInsert(Insert{Position: position, Entry: entry}, trailing)
			kd.changes[key] = entry
			return

		case entry.Status == EntryRemoved:
			kd.addInsert(Insert{Position: position, Entry: entry}, trailing)
			entry.Status = EntryMoved
			var sub []*Patch
			diff(entry.Node, node, &sub, entry.Index)
			entry.Index = position
			entry.removal.Removal = &Removal{Sub: sub, Entry: entry}
			return
		}
		// already inserted or moved: a duplicate key
		key += duplicateSuffix
	}
}

// remove records that key disappears from the old list at traversal index.
// If the key was inserted earlier in the walk the insertion becomes a move.
func (kd *keyedDiff) remove(key string, node *VNode, index int) {
	for {
		entry, ok := kd.changes[key]
		switch {
		case !ok:
			p := push(&kd.local, &Patch{Kind: PatchRemoveKeyed, Index: index})
			kd.changes[key] = &Entry{Status: EntryRemoved, Node: node, Index: index, removal: p}
			return

		case entry.Status == EntryInserted:
			entry.Status = EntryMoved
			var sub []*Patch
			diff(node, entry.Node, &sub, index)
			push(&kd.local, &Patch{
				Kind:    PatchRemoveKeyed,
				Index:   index,
				Removal: &Removal{Sub: sub, Entry: entry},
			})
			return
		}
		// already removed or moved: a duplicate key
		key += duplicateSuffix
	}
}

func (kd *keyedDiff) addInsert(ins Insert, trailing bool) {
	if trailing {
		kd.trailing = append(kd.trailing, ins)
		return
	}
	kd.inserts = append(kd.inserts, ins)
}
