// Package clues keeps the clues gathered during an investigation in an
// unbalanced binary search tree ordered by clue text.
package clues

// Record is a gathered clue and how many times it was collected.
type Record struct {
	Text  string
	Count int
}

type node struct {
	text        string
	count       int
	left, right *node
}

// Ledger stores each distinct clue once. Collecting the same text again bumps
// its counter instead of adding a node.
//
// The tree is never rebalanced: clues arriving in sorted order produce a
// chain and operations become linear in the number of clues.
type Ledger struct {
	root *node
	size int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// InsertOrBump records one collection of text. The returned bool is false
// only when text is empty, in which case nothing is stored.
func (l *Ledger) InsertOrBump(text string) (Record, bool) {
	if text == "" {
		return Record{}, false
	}
	link := &l.root
	for *link != nil {
		n := *link
		switch {
		case text < n.text:
			link = &n.left
		case text > n.text:
			link = &n.right
		default:
			n.count++
			return Record{Text: n.text, Count: n.count}, true
		}
	}
	*link = &node{text: text, count: 1}
	l.size++
	return Record{Text: text, Count: 1}, true
}

// Find looks text up without touching its counter.
func (l *Ledger) Find(text string) (Record, bool) {
	n := l.root
	for n != nil {
		switch {
		case text < n.text:
			n = n.left
		case text > n.text:
			n = n.right
		default:
			return Record{Text: n.text, Count: n.count}, true
		}
	}
	return Record{}, false
}

// InOrder returns a closure that yields records in ascending text order, like
// calling Next on an iterator: rec, ok := next(). Once ok is false the
// closure stays exhausted. The ledger must not be modified while iterating.
func (l *Ledger) InOrder() func() (Record, bool) {
	var stack []*node
	cur := l.root
	return func() (Record, bool) {
		for cur != nil {
			stack = append(stack, cur)
			cur = cur.left
		}
		if len(stack) == 0 {
			return Record{}, false
		}
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur = n.right
		return Record{Text: n.text, Count: n.count}, true
	}
}

// Records drains InOrder into a slice.
func (l *Ledger) Records() []Record {
	out := make([]Record, 0, l.size)
	next := l.InOrder()
	for rec, ok := next(); ok; rec, ok = next() {
		out = append(out, rec)
	}
	return out
}

// Len is the number of distinct clues.
func (l *Ledger) Len() int {
	return l.size
}

// Height is the number of nodes on the longest root-to-leaf path.
func (l *Ledger) Height() int {
	return height(l.root)
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}

// Reset drops every record.
func (l *Ledger) Reset() {
	l.root = nil
	l.size = 0
}
