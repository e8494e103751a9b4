package core

// Indexable is the capability surface the generic-join machinery
// requires of a partial match (spec §9, "Dynamic prefix shape").
// A Prefix is read by position, by its root edge's two endpoints
// (positions 0 and 1, by convention — spec §3), tested for membership
// (the duplicate-vertex filter in propose), and grown by one Node at
// a time.
type Indexable interface {
	// At returns the Node bound at position i.
	At(i int) Node
	// Src returns the root edge's source, Prefix position 0.
	Src() Node
	// Dst returns the root edge's destination, Prefix position 1.
	Dst() Node
	// Find reports whether v is already bound somewhere in the prefix.
	Find(v Node) bool
	// Len returns the number of bound positions.
	Len() int
}

// Prefix is the default Indexable: a growable ordered sequence of
// Nodes, grounded on original_source/src/lib.rs's
// `impl Indexable<Node> for Vec<Node>`.
type Prefix []Node

var _ Indexable = Prefix(nil)

// At implements Indexable.
func (p Prefix) At(i int) Node { return p[i] }

// Src implements Indexable. Panics if len(p) < 1, mirroring the
// original's unchecked Vec index — callers only ever call this on
// prefixes that already contain a root edge (spec §3).
func (p Prefix) Src() Node { return p[0] }

// Dst implements Indexable. Panics if len(p) < 2.
func (p Prefix) Dst() Node { return p[1] }

// Find implements Indexable with a linear scan, matching the
// original's `Vec::contains`: prefixes stay short (bounded by plan
// depth), so this never dominates the join's cost.
func (p Prefix) Find(v Node) bool {
	for _, n := range p {
		if n == v {
			return true
		}
	}
	return false
}

// Len implements Indexable.
func (p Prefix) Len() int { return len(p) }

// Extended returns a new Prefix with v appended, leaving p untouched.
// The executor (plan.Executor) calls this once per proposed extension
// when flat-mapping (p, extensions, w) into one (p++e, w) per e.
func (p Prefix) Extended(v Node) Prefix {
	out := make(Prefix, len(p), len(p)+1)
	copy(out, p)
	return append(out, v)
}

// RootPrefix builds the length-2 Prefix [src, dst] for a delta edge,
// the root prefix that plan.Executor.TrackMotif starts from (spec
// §4.8).
func RootPrefix(e Edge) Prefix {
	return Prefix{e.Src, e.Dst}
}
