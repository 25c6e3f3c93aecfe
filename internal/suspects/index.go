// Package suspects maps clue text to the suspect it implicates using a hash
// table with separate chaining.
package suspects

import "github.com/emirpasic/gods/sets/linkedhashset"

// DefaultBuckets is a small prime; the bucket count only affects chain length.
const DefaultBuckets = 53

type entry struct {
	clue    string
	suspect string
	next    *entry
}

// Index holds one suspect per clue. A later Upsert for the same clue
// replaces the earlier one.
type Index struct {
	buckets []*entry
	size    int
}

// New returns an index with DefaultBuckets buckets.
func New() *Index {
	return NewWithBuckets(DefaultBuckets)
}

// NewWithBuckets returns an index with n buckets (at least one).
func NewWithBuckets(n int) *Index {
	if n < 1 {
		n = 1
	}
	return &Index{buckets: make([]*entry, n)}
}

// djb2
func hash(s string) uint64 {
	h := uint64(5381)
	for i := 0; i < len(s); i++ {
		h = h<<5 + h + uint64(s[i])
	}
	return h
}

func (x *Index) bucket(clue string) int {
	return int(hash(clue) % uint64(len(x.buckets)))
}

// Upsert links clue to suspect, overwriting an existing link in place.
func (x *Index) Upsert(clue, suspect string) {
	b := x.bucket(clue)
	for e := x.buckets[b]; e != nil; e = e.next {
		if e.clue == clue {
			e.suspect = suspect
			return
		}
	}
	x.buckets[b] = &entry{clue: clue, suspect: suspect, next: x.buckets[b]}
	x.size++
}

// Lookup returns the suspect linked to clue.
func (x *Index) Lookup(clue string) (string, bool) {
	for e := x.buckets[x.bucket(clue)]; e != nil; e = e.next {
		if e.clue == clue {
			return e.suspect, true
		}
	}
	return "", false
}

// Suspects lists each distinct suspect once, in bucket-scan order.
func (x *Index) Suspects() []string {
	seen := linkedhashset.New()
	for _, head := range x.buckets {
		for e := head; e != nil; e = e.next {
			seen.Add(e.suspect)
		}
	}
	out := make([]string, 0, seen.Size())
	for _, v := range seen.Values() {
		out = append(out, v.(string))
	}
	return out
}

// Len is the number of linked clues.
func (x *Index) Len() int {
	return x.size
}

// Reset unlinks every clue.
func (x *Index) Reset() {
	clear(x.buckets)
	x.size = 0
}
