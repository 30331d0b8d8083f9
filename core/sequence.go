package core

// Handle addresses one rendered node in a track
// Clones point back to their origin item through OriginIndex
type Handle struct {
	OriginIndex int
	IsClone     bool
}

// Sequence is the append-only arena of rendered handles for one instance
// The base prefix (originals) is the single source of truth for distance
// math; clones are purely additive visual coverage behind it
type Sequence struct {
	items   []Item
	handles []Handle
}

// NewSequence builds the base sequence over the given items
// The item slice is not copied; callers must treat it as immutable
func NewSequence(items []Item) *Sequence {
	handles := make([]Handle, len(items))
	for i := range items {
		handles[i] = Handle{OriginIndex: i}
	}
	return &Sequence{items: items, handles: handles}
}

// Items returns the authoritative item list
func (s *Sequence) Items() []Item {
	return s.items
}

// Handles returns the full rendered order, originals first
func (s *Sequence) Handles() []Handle {
	return s.handles
}

// Len returns the total rendered node count, clones included
func (s *Sequence) Len() int {
	return len(s.handles)
}

// BaseLen returns the original (non-clone) item count
func (s *Sequence) BaseLen() int {
	return len(s.items)
}

// AppendCopy appends one full copy of the base sequence, tagged as clones
func (s *Sequence) AppendCopy() {
	for i := range s.items {
		s.handles = append(s.handles, Handle{OriginIndex: i, IsClone: true})
	}
}

// StripClones drops every clone handle, restoring the base prefix
// Safe to call repeatedly; required before any re-duplication pass
func (s *Sequence) StripClones() {
	s.handles = s.handles[:len(s.items)]
}

// Resolve maps a rendered child index back to its origin item
// Returns false for out-of-range indices
func (s *Sequence) Resolve(child int) (Item, bool) {
	if child < 0 || child >= len(s.handles) {
		return Item{}, false
	}
	return s.items[s.handles[child].OriginIndex], true
}
