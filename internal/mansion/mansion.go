// Package mansion holds the fixed binary map of rooms an investigation walks.
package mansion

import "github.com/tatianab/detective-quest/internal/models"

// None marks a missing child.
const None = -1

// Room is a node of the map. Rooms are addressed by their index in the map.
type Room struct {
	Name  string
	Clue  string
	Left  int
	Right int
}

// HasClue reports whether something was left in the room.
func (r Room) HasClue() bool { return r.Clue != "" }

// IsLeaf reports whether the room has no way forward.
func (r Room) IsLeaf() bool { return r.Left == None && r.Right == None }

// Map owns every room. It is built once and never changes.
type Map struct {
	rooms    []Room
	entrance int
}

// New builds the map described by c.
func New(c *models.Case) (*Map, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(c.Rooms))
	for i, spec := range c.Rooms {
		index[spec.Name] = i
	}
	ref := func(name string) int {
		if name == "" {
			return None
		}
		return index[name]
	}

	rooms := make([]Room, len(c.Rooms))
	for i, spec := range c.Rooms {
		rooms[i] = Room{
			Name:  spec.Name,
			Clue:  spec.Clue,
			Left:  ref(spec.Left),
			Right: ref(spec.Right),
		}
	}
	return &Map{rooms: rooms, entrance: index[c.EntranceName()]}, nil
}

// Entrance is the index of the root room.
func (m *Map) Entrance() int { return m.entrance }

// Room returns the room at index i.
func (m *Map) Room(i int) Room { return m.rooms[i] }

// Len is the number of rooms.
func (m *Map) Len() int { return len(m.rooms) }

// Lookup finds a room index by name.
func (m *Map) Lookup(name string) (int, bool) {
	for i, r := range m.rooms {
		if r.Name == name {
			return i, true
		}
	}
	return None, false
}

// Walk visits rooms depth first, left before right, starting at the
// entrance. depth is 0 for the entrance. Returning false stops the walk.
func (m *Map) Walk(fn func(i, depth int) bool) {
	type frame struct{ i, depth int }
	stack := []frame{{m.entrance, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(f.i, f.depth) {
			return
		}
		r := m.rooms[f.i]
		if r.Right != None {
			stack = append(stack, frame{r.Right, f.depth + 1})
		}
		if r.Left != None {
			stack = append(stack, frame{r.Left, f.depth + 1})
		}
	}
}
