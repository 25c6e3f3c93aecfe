// Package navigator walks a mansion map room by room, keeps the undo history
// and gathers the clue of every room it enters.
package navigator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/tatianab/detective-quest/internal/clues"
	"github.com/tatianab/detective-quest/internal/mansion"
	"github.com/tatianab/detective-quest/internal/suspects"
)

// DefaultMaxDepth bounds the undo history when Options leave it unset.
const DefaultMaxDepth = 128

var (
	// ErrInvalidInput is returned for tokens the navigator does not accept.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIllegalMove is wrapped by every refused move.
	ErrIllegalMove = errors.New("illegal move")

	ErrNoPath       = fmt.Errorf("%w: no such path", ErrIllegalMove)
	ErrNoPriorRoom  = fmt.Errorf("%w: no prior room", ErrIllegalMove)
	ErrUndoCapacity = fmt.Errorf("%w: undo capacity exceeded", ErrIllegalMove)
)

// Action is a player command.
type Action int

const (
	Left Action = iota + 1
	Right
	Back
	Exit
)

func (a Action) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	case Back:
		return "back"
	case Exit:
		return "exit"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction maps e/d/b/s (any case) to an action.
func ParseAction(token string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "e":
		return Left, nil
	case "d":
		return Right, nil
	case "b":
		return Back, nil
	case "s":
		return Exit, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidInput, token)
}

// SightingKind tells how a clue was met on arrival.
type SightingKind int

const (
	// SightingNew is the first collection of this clue text.
	SightingNew SightingKind = iota
	// SightingKnown is another room yielding an already collected text.
	SightingKnown
	// SightingRevisit is a room whose clue was already gathered; nothing is counted.
	SightingRevisit
)

// Sighting is what the player learns about the clue in the room.
type Sighting struct {
	Kind    SightingKind
	Text    string
	Count   int
	Suspect string // "" when the clue implicates nobody known
}

// Arrival describes entering a room.
type Arrival struct {
	Room  mansion.Room
	Via   Action // Left, Right or Back; zero for the initial arrival
	Clue  *Sighting
	Exits Exits
	Final bool // the traversal ended on this arrival
}

// Exits names the rooms reachable from the current one, "" when closed.
type Exits struct {
	Left  string
	Right string
	Back  string
}

// Options configure a navigator.
type Options struct {
	// SupportsUndo enables the back action and the bounded history. Without
	// it the walk ends on the first leaf.
	SupportsUndo bool
	MaxDepth     int
}

// Navigator is the traversal state. It never owns rooms; it only holds
// indices into the map.
type Navigator struct {
	rooms    *mansion.Map
	ledger   *clues.Ledger
	index    *suspects.Index
	opts     Options
	current  int
	history  *arraystack.Stack
	gathered map[int]bool
	entered  bool
	done     bool
}

// New places a navigator at the map entrance. Call Enter before Step.
func New(rooms *mansion.Map, ledger *clues.Ledger, index *suspects.Index, opts Options) *Navigator {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Navigator{
		rooms:    rooms,
		ledger:   ledger,
		index:    index,
		opts:     opts,
		current:  rooms.Entrance(),
		history:  arraystack.New(),
		gathered: make(map[int]bool),
	}
}

// Enter performs the arrival in the entrance. Later calls repeat the
// description of the current room without gathering anything.
func (n *Navigator) Enter() Arrival {
	if n.entered {
		return n.arrive(0, false)
	}
	n.entered = true
	return n.arrive(0, true)
}

// Step applies one action. Exit returns a nil arrival. Refused actions
// return an error and leave the state untouched.
func (n *Navigator) Step(a Action) (*Arrival, error) {
	if n.done {
		return nil, nil
	}
	if !n.entered {
		n.Enter()
	}

	room := n.rooms.Room(n.current)
	switch a {
	case Left, Right:
		next := room.Left
		if a == Right {
			next = room.Right
		}
		if next == mansion.None {
			return nil, ErrNoPath
		}
		if n.opts.SupportsUndo {
			if n.history.Size() >= n.opts.MaxDepth {
				return nil, ErrUndoCapacity
			}
			n.history.Push(n.current)
		}
		n.current = next
		arrival := n.arrive(a, true)
		return &arrival, nil

	case Back:
		if !n.opts.SupportsUndo {
			return nil, fmt.Errorf("%w: back is not available", ErrInvalidInput)
		}
		prev, ok := n.history.Pop()
		if !ok {
			if room.IsLeaf() {
				n.done = true
			}
			return nil, ErrNoPriorRoom
		}
		n.current = prev.(int)
		arrival := n.arrive(Back, false)
		return &arrival, nil

	case Exit:
		n.done = true
		n.history.Clear()
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidInput, a)
}

func (n *Navigator) arrive(via Action, forward bool) Arrival {
	room := n.rooms.Room(n.current)
	arrival := Arrival{Room: room, Via: via}

	if room.HasClue() {
		s := &Sighting{Kind: SightingRevisit, Text: room.Clue}
		if forward && !n.gathered[n.current] {
			n.gathered[n.current] = true
			_, known := n.ledger.Find(room.Clue)
			rec, _ := n.ledger.InsertOrBump(room.Clue)
			s.Count = rec.Count
			s.Kind = SightingNew
			if known {
				s.Kind = SightingKnown
			}
		} else if rec, ok := n.ledger.Find(room.Clue); ok {
			s.Count = rec.Count
		}
		s.Suspect, _ = n.index.Lookup(room.Clue)
		arrival.Clue = s
	}

	if !n.opts.SupportsUndo && room.IsLeaf() {
		n.done = true
		arrival.Final = true
	}
	arrival.Exits = n.Exits()
	return arrival
}

// Exits lists where the player can go from here.
func (n *Navigator) Exits() Exits {
	room := n.rooms.Room(n.current)
	var ex Exits
	if room.Left != mansion.None {
		ex.Left = n.rooms.Room(room.Left).Name
	}
	if room.Right != mansion.None {
		ex.Right = n.rooms.Room(room.Right).Name
	}
	if prev, ok := n.history.Peek(); ok {
		ex.Back = n.rooms.Room(prev.(int)).Name
	}
	return ex
}

// Current is the room the player stands in.
func (n *Navigator) Current() mansion.Room {
	return n.rooms.Room(n.current)
}

// Depth is the number of rooms on the undo history.
func (n *Navigator) Depth() int {
	return n.history.Size()
}

// Done reports whether the traversal has ended.
func (n *Navigator) Done() bool {
	return n.done
}

// SupportsUndo reports whether back is available.
func (n *Navigator) SupportsUndo() bool {
	return n.opts.SupportsUndo
}

// Reason is the player-facing text for a refused token.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNoPath):
		return "no such path"
	case errors.Is(err, ErrNoPriorRoom):
		return "no prior room"
	case errors.Is(err, ErrUndoCapacity):
		return "undo capacity exceeded"
	case errors.Is(err, ErrInvalidInput):
		return "invalid input"
	}
	return err.Error()
}
