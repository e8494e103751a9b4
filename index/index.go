package index

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/motifjoin/core"
	"github.com/katalvlaran/motifjoin/lsm"
)

// Index is a multiversion (Node -> Node) relation keyed on its first
// field, the per-relation, per-worker-shard surface for the three WCOJ
// primitives (spec §3, §4.4). Graph node identifiers are dense enough
// that a HashMap-equivalent (Go map) per committed key is the natural
// choice here, matching the original's own note that a `Vec<State>`
// would require dense keys while a map generalizes.
type Index struct {
	compact *CompactIndex[core.Node, core.Node]
	edges   map[core.Node]*lsm.EdgeList[core.Node]
	diffs   *Unsorted[core.Node, core.Node]
}

// New allocates an empty Index.
func New() *Index {
	return &Index{
		compact: NewCompactIndex[core.Node, core.Node](),
		edges:   make(map[core.Node]*lsm.EdgeList[core.Node]),
		diffs:   NewUnsorted[core.Node, core.Node](),
	}
}

// CountEntry is one (prefix, current best bound, winning identifier,
// weight) record processed by Count.
type CountEntry[P core.Indexable] struct {
	Prefix P
	Count  uint64
	Ident  uint64
	Weight core.Weight
}

// ProposeEntry is one (prefix, accumulated extensions, weight) record
// processed by ForwardPropose, ReversePropose, and Intersect.
type ProposeEntry[P core.Indexable] struct {
	Prefix     P
	Extensions []core.Node
	Weight     core.Weight
}

// IntersectOnlyEntry is one (prefix, weight) record processed by
// IntersectOnly.
type IntersectOnlyEntry[P core.Indexable] struct {
	Prefix P
	Weight core.Weight
}

// proposal is a staged (value, weight) candidate extension, summed
// across compact/edges/diffs sources before being consolidated.
type proposal struct {
	value  core.Node
	weight core.Weight
}

// Count updates each entry in data to reflect the smaller of its
// current bound and this Index's count for its key, recording ident as
// the new winner when it improves. The diffs contribution is a
// deliberate over-estimate (the buffer's raw length for the key,
// rather than the exact post-symmetry-breaking count): it is always
// an upper bound, so the worst-case optimal guarantee holds, though a
// suboptimal extender may occasionally be picked when diffs dominate
// (spec §9, open question, left as specified).
func Count[P core.Indexable](ix *Index, data []CountEntry[P], key func(P) core.Node, startTime core.Timestamp, ident uint64) {
	sort.Slice(data, func(i, j int) bool { return key(data[i].Prefix) < key(data[j].Prefix) })

	var cCursor, dCursor int
	possibleDiffs := false
	if mt, ok := ix.diffs.MinTime(); ok && mt.AtOrBefore(startTime) {
		possibleDiffs = true
	}

	index := 0
	for index < len(data) {
		k := key(data[index].Prefix)

		var count uint64
		count += uint64(len(ix.compact.ValuesFrom(k, &cCursor)))
		if entry, ok := ix.edges[k]; ok {
			count += uint64(entry.Count())
		}
		if possibleDiffs {
			count += uint64(len(ix.diffs.ValuesFrom(k, &dCursor)))
		}

		for index < len(data) && key(data[index].Prefix) == k {
			if count < data[index].Count {
				data[index].Count = count
				data[index].Ident = ident
			}
			index++
		}
	}
}

// consolidateProposals sorts proposals by value, sums weights for
// equal values into the later occurrence, and retains only the
// strictly positive results.
func consolidateProposals(proposals []proposal) []proposal {
	if len(proposals) == 0 {
		return proposals
	}
	sort.Slice(proposals, func(i, j int) bool { return proposals[i].value < proposals[j].value })
	for cursor := 0; cursor < len(proposals)-1; cursor++ {
		if proposals[cursor].value == proposals[cursor+1].value {
			proposals[cursor+1].weight += proposals[cursor].weight
			proposals[cursor].weight = 0
		}
	}
	out := proposals[:0]
	for _, p := range proposals {
		if p.weight > 0 {
			out = append(out, p)
		}
	}
	return out
}

// appendExtensions pushes p.weight copies of each proposal's value
// onto entry.Extensions, skipping values already bound in the prefix
// (the duplicate-vertex filter, spec §9).
func appendExtensions[P core.Indexable](entry *ProposeEntry[P], proposals []proposal) {
	for _, p := range proposals {
		for c := core.Weight(0); c < p.weight; c++ {
			if !entry.Prefix.Find(p.value) {
				entry.Extensions = append(entry.Extensions, p.value)
			}
		}
	}
}

// sortBySymmetryKey orders data by (key(prefix), prefix.Src(),
// prefix.Dst()), the order ForwardPropose and ReversePropose both
// require to process same-key runs via the src/dst sub-ranges of the
// symmetry-breaking rule.
func sortBySymmetryKey[P core.Indexable](data []ProposeEntry[P], key func(P) core.Node) {
	sort.Slice(data, func(i, j int) bool {
		ki, kj := key(data[i].Prefix), key(data[j].Prefix)
		if ki != kj {
			return ki < kj
		}
		si, sj := data[i].Prefix.Src(), data[j].Prefix.Src()
		if si != sj {
			return si < sj
		}
		return data[i].Prefix.Dst() < data[j].Prefix.Dst()
	})
}

// stageProposals collects candidate extensions for key from compact,
// committed edges, and diffs strictly earlier than startTime, without
// yet applying the symmetry-breaking rule for same-timestamp diffs
// (the caller folds those in per src/dst sub-range).
func stageProposals(ix *Index, key core.Node, offsetCursor, diffsCursor *int, startTime core.Timestamp) ([]proposal, []Diff[core.Node, core.Node]) {
	var proposals []proposal

	for _, v := range ix.compact.ValuesFrom(key, offsetCursor) {
		proposals = append(proposals, proposal{value: v, weight: 1})
	}
	if entry, ok := ix.edges[key]; ok {
		for _, rec := range entry.Proposals() {
			proposals = append(proposals, proposal{value: rec.Value, weight: rec.Weight})
		}
	}

	diffValues := ix.diffs.ValuesFrom(key, diffsCursor)
	for _, d := range diffValues {
		if d.Time.Before(startTime) {
			proposals = append(proposals, proposal{value: d.Value, weight: d.Weight})
		}
	}

	return proposals, diffValues
}

// ForwardPropose extends each prefix with candidate values for
// key(prefix) viewing the root edge forward (src = prefix.Src(), dst =
// prefix.Dst()). A same-timestamp diff (key, v) is admitted only when
// key < src, or key == src and v < dst — the symmetry-breaking rule
// that gives each automorphic motif occurrence exactly one emission
// (spec §4.4, §8 "symmetry-breaking" invariant).
func ForwardPropose[P core.Indexable](ix *Index, data []ProposeEntry[P], key func(P) core.Node, startTime core.Timestamp) {
	sortBySymmetryKey(data, key)

	var offsetCursor, diffsCursor int
	index := 0
	for index < len(data) {
		k := key(data[index].Prefix)
		proposals, diffValues := stageProposals(ix, k, &offsetCursor, &diffsCursor, startTime)

		dstCursor := 0
		for index < len(data) && key(data[index].Prefix) == k {
			src := data[index].Prefix.Src()

			switch {
			case src < k:
				proposals = consolidateProposals(proposals)
				for index < len(data) && key(data[index].Prefix) == k && data[index].Prefix.Src() < k {
					appendExtensions(&data[index], proposals)
					index++
				}
			case src == k:
				for index < len(data) && key(data[index].Prefix) == k && data[index].Prefix.Src() == src {
					dst := data[index].Prefix.Dst()
					for dstCursor < len(diffValues) && diffValues[dstCursor].Value < dst {
						if diffValues[dstCursor].Time == startTime {
							proposals = append(proposals, proposal{value: diffValues[dstCursor].Value, weight: diffValues[dstCursor].Weight})
						}
						dstCursor++
					}
					proposals = consolidateProposals(proposals)

					for index < len(data) && key(data[index].Prefix) == k &&
						data[index].Prefix.Src() == src && data[index].Prefix.Dst() == dst {
						appendExtensions(&data[index], proposals)
						index++
					}
				}
			default: // src > k
				for dstCursor < len(diffValues) {
					if diffValues[dstCursor].Time == startTime {
						proposals = append(proposals, proposal{value: diffValues[dstCursor].Value, weight: diffValues[dstCursor].Weight})
					}
					dstCursor++
				}
				proposals = consolidateProposals(proposals)
				for index < len(data) && key(data[index].Prefix) == k {
					appendExtensions(&data[index], proposals)
					index++
				}
			}
		}
	}
}

// ReversePropose is ForwardPropose's mirror image, viewing the root
// edge in reverse: a same-timestamp diff (key <- v) is admitted only
// when v < src, or v == src and key < dst.
func ReversePropose[P core.Indexable](ix *Index, data []ProposeEntry[P], key func(P) core.Node, startTime core.Timestamp) {
	sortBySymmetryKey(data, key)

	var offsetCursor, diffsCursor int
	index := 0
	for index < len(data) {
		k := key(data[index].Prefix)
		proposals, diffValues := stageProposals(ix, k, &offsetCursor, &diffsCursor, startTime)

		srcCursor := 0
		for index < len(data) && key(data[index].Prefix) == k {
			dst := data[index].Prefix.Dst()
			src := data[index].Prefix.Src()

			if dst <= k {
				for srcCursor < len(diffValues) && diffValues[srcCursor].Value < src {
					if diffValues[srcCursor].Time == startTime {
						proposals = append(proposals, proposal{value: diffValues[srcCursor].Value, weight: diffValues[srcCursor].Weight})
					}
					srcCursor++
				}
				proposals = consolidateProposals(proposals)
				for index < len(data) && key(data[index].Prefix) == k &&
					data[index].Prefix.Src() == src && data[index].Prefix.Dst() <= k {
					appendExtensions(&data[index], proposals)
					index++
				}
			} else {
				for srcCursor < len(diffValues) && diffValues[srcCursor].Value <= src {
					if diffValues[srcCursor].Time == startTime {
						proposals = append(proposals, proposal{value: diffValues[srcCursor].Value, weight: diffValues[srcCursor].Weight})
					}
					srcCursor++
				}
				proposals = consolidateProposals(proposals)
				for index < len(data) && key(data[index].Prefix) == k && data[index].Prefix.Src() == src {
					appendExtensions(&data[index], proposals)
					index++
				}
			}
		}
	}
}

// symmetryHolds is the shared same-timestamp admission test used by
// both Intersect and IntersectOnly: forward views require key < src,
// or key == src and candidate < dst; reverse views require candidate <
// src, or candidate == src and key < dst.
func symmetryHolds(isForward bool, key, candidate, src, dst core.Node) bool {
	if isForward {
		return key < src || (key == src && candidate < dst)
	}
	return candidate < src || (candidate == src && key < dst)
}

// Intersect validates each prefix's accumulated extension candidates
// against this Index's key, retaining only those with strictly
// positive aggregated weight, in their input order (spec §4.4).
func Intersect[P core.Indexable](ix *Index, data []ProposeEntry[P], key func(P) core.Node, isForward bool, startTime core.Timestamp) {
	sort.Slice(data, func(i, j int) bool { return key(data[i].Prefix) < key(data[j].Prefix) })

	var temp []core.Weight
	var offsetCursor, diffsCursor int

	index := 0
	for index < len(data) {
		k := key(data[index].Prefix)

		effort := 16
		for probe := index; probe < len(data) && key(data[probe].Prefix) == k; probe++ {
			effort += len(data[probe].Extensions)
		}

		compactSlice := ix.compact.ValuesFrom(k, &offsetCursor)
		entry := ix.edges[k]
		if entry != nil {
			entry.Expend(uint32(effort))
		}
		diffsSlice := ix.diffs.ValuesFrom(k, &diffsCursor)

		for index < len(data) && key(data[index].Prefix) == k {
			src := data[index].Prefix.Src()
			dst := data[index].Prefix.Dst()
			proposals := data[index].Extensions

			temp = temp[:0]
			for range proposals {
				temp = append(temp, 0)
			}

			if entry != nil {
				entry.Intersect(proposals, temp)
			}

			cCursor, dCursor := 0, 0
			for pi, cand := range proposals {
				cCursor += lsm.Advance(compactSlice[cCursor:], func(x core.Node) bool { return x < cand })
				for cCursor < len(compactSlice) && compactSlice[cCursor] == cand {
					temp[pi]++
					cCursor++
				}

				dCursor += lsm.Advance(diffsSlice[dCursor:], func(d Diff[core.Node, core.Node]) bool { return d.Value < cand })
				for dCursor < len(diffsSlice) && diffsSlice[dCursor].Value == cand {
					d := diffsSlice[dCursor]
					if d.Time.Before(startTime) || (d.Time == startTime && symmetryHolds(isForward, k, cand, src, dst)) {
						temp[pi] += d.Weight
					}
					dCursor++
				}
			}

			cursor := 0
			for i := range proposals {
				if temp[i] > 0 {
					proposals[cursor] = proposals[i]
					cursor++
				}
			}
			data[index].Extensions = proposals[:cursor]

			index++
		}
	}
}

// IntersectOnly tests, for each prefix, whether key2(prefix) occurs in
// this Index under key1(prefix) (no extension list involved), and
// returns the retained prefix (a new slice header over the same
// backing array). Input order is not preserved globally — data is
// sorted by (key1, key2) to share per-key work — but duplicate
// (key1, key2) pairs immediately following a retained pair are
// retained too, regardless of their own aggregated weight, since they
// carry the same multiplicity verdict (spec §4.4, "multiplicity-
// preserving tail").
func IntersectOnly[P core.Indexable](ix *Index, data []IntersectOnlyEntry[P], key1, key2 func(P) core.Node, isForward bool, startTime core.Timestamp) []IntersectOnlyEntry[P] {
	sort.Slice(data, func(i, j int) bool {
		k1i, k1j := key1(data[i].Prefix), key1(data[j].Prefix)
		if k1i != k1j {
			return k1i < k1j
		}
		return key2(data[i].Prefix) < key2(data[j].Prefix)
	})

	var temp []core.Weight
	var offsetCursor, diffsCursor int
	index := 0
	rCursor := 0

	for index < len(data) {
		k := key1(data[index].Prefix)

		tempIndex := index + lsm.Advance(data[index:], func(e IntersectOnlyEntry[P]) bool { return key1(e.Prefix) <= k })

		compactSlice := ix.compact.ValuesFrom(k, &offsetCursor)
		entry := ix.edges[k]
		effort := 16 + (tempIndex - index)
		if entry != nil {
			entry.Expend(uint32(effort))
		}
		diffsSlice := ix.diffs.ValuesFrom(k, &diffsCursor)

		proposals := make([]core.Node, 0, tempIndex-index)
		for i := index; i < tempIndex; i++ {
			proposals = append(proposals, key2(data[i].Prefix))
		}

		temp = temp[:0]
		for range proposals {
			temp = append(temp, 0)
		}
		if entry != nil {
			entry.Intersect(proposals, temp)
		}

		src := data[index].Prefix.Src()
		dst := data[index].Prefix.Dst()

		cCursor, dCursor := 0, 0
		for pi, cand := range proposals {
			cCursor += lsm.Advance(compactSlice[cCursor:], func(x core.Node) bool { return x < cand })
			for cCursor < len(compactSlice) && compactSlice[cCursor] == cand {
				temp[pi]++
				cCursor++
			}

			dCursor += lsm.Advance(diffsSlice[dCursor:], func(d Diff[core.Node, core.Node]) bool { return d.Value < cand })
			for dCursor < len(diffsSlice) && diffsSlice[dCursor].Value == cand {
				d := diffsSlice[dCursor]
				if d.Time.Before(startTime) || (d.Time == startTime && symmetryHolds(isForward, k, cand, src, dst)) {
					temp[pi] += d.Weight
				}
				dCursor++
			}
		}

		tCursor := 0
		for index < tempIndex {
			dup := rCursor > 0 &&
				key1(data[index].Prefix) == key1(data[rCursor-1].Prefix) &&
				key2(data[index].Prefix) == key2(data[rCursor-1].Prefix)
			if temp[tCursor] != 0 || dup {
				data[rCursor], data[index] = data[index], data[rCursor]
				rCursor++
			}
			tCursor++
			index++
		}
	}

	return data[:rCursor]
}

// MergeTo commits every diff with Time <= time into its key's
// lsm.EdgeList, the sole path by which diffs become resident in edges
// (spec §4.4, §8 "Merge coherence"). A diff's weight is zeroed once
// absorbed; the remaining (Time > time) diffs are unaffected. A
// second MergeTo for the same or an earlier time is a no-op on
// observable state, since every remaining diff has Time > time
// already.
func (ix *Index) MergeTo(time core.Timestamp) {
	updates := ix.diffs.All()

	index := 0
	for index < len(updates) {
		keyIndex := index
		k := updates[keyIndex].Key

		entry, ok := ix.edges[k]
		if !ok {
			entry = lsm.New[core.Node]()
			ix.edges[k] = entry
		}
		priorPosition := entry.Position()

		for index < len(updates) && updates[index].Key == k {
			if updates[index].Time.AtOrBefore(time) {
				entry.Push(updates[index].Value, updates[index].Weight)
				ix.diffs.SetWeight(index, 0)
			}
			index++
		}

		entry.SealFrom(priorPosition)
	}

	ix.diffs.Retain(func(d Diff[core.Node, core.Node]) bool { return d.Weight != 0 })
}

// Update drains updates into the diffs buffer at the given logical
// time (spec §4.4). Until MergeTo commits them into edges, queries read
// them from the diffs tier: admitted when earlier than the query's
// start time, and at the same time only under the symmetry-breaking
// rule.
func (ix *Index) Update(time core.Timestamp, updates []core.Update) {
	items := make([]DiffInput[core.Node, core.Node], len(updates))
	for i, u := range updates {
		items[i] = DiffInput[core.Node, core.Node]{Key: u.Edge.Src, Value: u.Edge.Dst, Weight: u.Weight}
	}
	ix.diffs.Extend(time, items)
}

// Initialize bulk-loads compact from groups, one []core.Node of
// values per ascending key 0, 1, 2, .... Used only at startup (spec
// §4.4). Each group's values must already be sorted in non-decreasing
// order: Intersect and IntersectOnly gallop forward through a key's
// compact values with lsm.Advance, which only finds a value correctly
// if everything before it in the slice is no greater.
func (ix *Index) Initialize(groups [][]core.Node) error {
	length := 0
	for key, g := range groups {
		for i := 1; i < len(g); i++ {
			if g[i] < g[i-1] {
				return fmt.Errorf("%w: key %d", ErrInitializeNotAscending, key)
			}
		}
		length += len(g)
	}

	gi, vi := 0, 0
	for gi < len(groups) && len(groups[gi]) == 0 {
		gi++
	}
	ix.compact.Load(length, func() (core.Node, core.Node, bool) {
		for gi < len(groups) && vi >= len(groups[gi]) {
			gi++
			vi = 0
		}
		if gi >= len(groups) {
			return 0, 0, false
		}
		key := core.Node(gi)
		val := groups[gi][vi]
		vi++
		return key, val, true
	})

	return nil
}
